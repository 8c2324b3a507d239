package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func runDispatcher(t *testing.T, cfg Config, n Notification) {
	t.Helper()
	d := NewDispatcher(cfg, zap.NewNop())
	d.Start(context.Background())
	d.Enqueue(n)
	d.Stop() // Stop дожидается доставки того, что уже в очереди
}

func TestDispatcher_WritesNotificationFiles(t *testing.T) {
	dir := t.TempDir()
	reviewedAt := time.Date(2025, time.June, 11, 10, 0, 0, 0, time.UTC)

	runDispatcher(t, Config{Dir: dir, Workers: 1}, Notification{
		FilePath:   "/content/drafts/my-post.md",
		Status:     "approved",
		Notes:      "ship it",
		Actor:      "graham@example.com",
		ReviewedAt: &reviewedAt,
	})

	data, err := os.ReadFile(filepath.Join(dir, "latest-review.json"))
	require.NoError(t, err)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, "review", payload["type"])
	assert.Equal(t, "/content/drafts/my-post.md", payload["file_path"])
	assert.Equal(t, "approved", payload["status"])
	assert.Equal(t, "ship it", payload["notes"])
	assert.Equal(t, reviewedAt.Format(time.RFC3339), payload["reviewed_at"])

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "timestamped file plus latest-review.json")
}

func TestDispatcher_PostsWebhook(t *testing.T) {
	received := make(chan map[string]string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer hook-token", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		var payload map[string]string
		json.Unmarshal(body, &payload)
		received <- payload
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	runDispatcher(t, Config{
		WebhookURL:   srv.URL,
		WebhookToken: "hook-token",
		Workers:      1,
	}, Notification{
		FilePath: "/content/drafts/pokemon-deck-guide.md",
		Status:   "approved",
		Actor:    "graham@example.com",
	})

	select {
	case payload := <-received:
		assert.Contains(t, payload["message"], `"Pokemon Deck Guide"`)
		assert.Contains(t, payload["message"], "approved")
		assert.Contains(t, payload["message"], "graham@example.com")
		assert.Contains(t, payload["message"], "Notes: none")
	case <-time.After(3 * time.Second):
		t.Fatal("webhook was never called")
	}
}

func TestDispatcher_WebhookFailureIsSwallowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	dir := t.TempDir()

	// Ошибка вебхука не мешает файловому уведомлению и ничего не паникует
	runDispatcher(t, Config{
		Dir:        dir,
		WebhookURL: srv.URL,
		Workers:    1,
	}, Notification{
		FilePath: "/content/drafts/post.md",
		Status:   "rejected",
	})

	_, err := os.Stat(filepath.Join(dir, "latest-review.json"))
	assert.NoError(t, err)
}

func TestDispatcher_EnqueueNeverBlocks(t *testing.T) {
	// Воркеры не запущены — очередь заполняется и лишнее отбрасывается
	d := NewDispatcher(Config{Workers: 1}, zap.NewNop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			d.Enqueue(Notification{FilePath: "x.md"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
}

func TestTitleFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/content/drafts/my-first_post.md", "My First Post"},
		{"pokemon-deck-guide.md", "Pokemon Deck Guide"},
		{"simple.md", "Simple"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, titleFromPath(tt.path))
	}
}
