package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Notification — полезная нагрузка одного уведомления о ревью
type Notification struct {
	FilePath   string     `json:"file_path"`
	Status     string     `json:"status"`
	Notes      string     `json:"notes"`
	Actor      string     `json:"actor"`
	ReviewedAt *time.Time `json:"reviewed_at"`
}

type Config struct {
	Dir          string
	WebhookURL   string
	WebhookToken string
	Workers      int
}

// Dispatcher доставляет уведомления best-effort: файл на диск плюс вебхук.
// Ошибки логируются и никогда не возвращаются вызывающему, повторов нет
type Dispatcher struct {
	cfg    Config
	logger *zap.Logger
	client *http.Client
	jobs   chan Notification
	wg     sync.WaitGroup
	stop   chan struct{}
}

func NewDispatcher(cfg Config, logger *zap.Logger) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Dispatcher{
		cfg:    cfg,
		logger: logger,
		client: &http.Client{Timeout: 5 * time.Second},
		jobs:   make(chan Notification, 64),
		stop:   make(chan struct{}),
	}
}

func (d *Dispatcher) Start(ctx context.Context) {
	d.logger.Info("Starting notification dispatcher", zap.Int("workers", d.cfg.Workers))

	for i := 0; i < d.cfg.Workers; i++ {
		d.wg.Add(1)
		go d.worker(ctx, i)
	}
}

func (d *Dispatcher) Stop() {
	close(d.stop)
	d.wg.Wait()
	d.logger.Info("Notification dispatcher stopped")
}

// Enqueue никогда не блокирует: при заполненной очереди уведомление
// отбрасывается с записью в лог
func (d *Dispatcher) Enqueue(n Notification) {
	select {
	case d.jobs <- n:
	default:
		d.logger.Warn("notification queue full, dropping",
			zap.String("file_path", n.FilePath),
		)
	}
}

func (d *Dispatcher) worker(ctx context.Context, id int) {
	defer d.wg.Done()

	for {
		select {
		case <-d.stop:
			// Дослать то, что уже в очереди
			for {
				select {
				case n := <-d.jobs:
					d.deliver(ctx, id, n)
				default:
					return
				}
			}
		case <-ctx.Done():
			return
		case n := <-d.jobs:
			d.deliver(ctx, id, n)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, workerID int, n Notification) {
	if err := d.writeFile(n); err != nil {
		d.logger.Error("failed to write notification file",
			zap.Int("worker", workerID),
			zap.String("file_path", n.FilePath),
			zap.Error(err),
		)
	}
	if err := d.postWebhook(ctx, n); err != nil {
		d.logger.Error("failed to send webhook",
			zap.Int("worker", workerID),
			zap.String("file_path", n.FilePath),
			zap.Error(err),
		)
	}
}

func (d *Dispatcher) writeFile(n Notification) error {
	if d.cfg.Dir == "" {
		return nil
	}
	if err := os.MkdirAll(d.cfg.Dir, 0o755); err != nil {
		return err
	}

	now := time.Now()
	reviewedAt := ""
	if n.ReviewedAt != nil {
		reviewedAt = n.ReviewedAt.Format(time.RFC3339)
	}
	payload := map[string]string{
		"type":        "review",
		"file_path":   n.FilePath,
		"status":      n.Status,
		"notes":       n.Notes,
		"reviewed_at": reviewedAt,
		"timestamp":   now.Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}

	name := fmt.Sprintf("review-%d.json", now.UnixMilli())
	if err := os.WriteFile(filepath.Join(d.cfg.Dir, name), data, 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(d.cfg.Dir, "latest-review.json"), data, 0o644)
}

func (d *Dispatcher) postWebhook(ctx context.Context, n Notification) error {
	if d.cfg.WebhookURL == "" {
		return nil
	}

	notes := strings.TrimSpace(n.Notes)
	if notes == "" {
		notes = "none"
	}
	message := fmt.Sprintf("Dashboard review update: %s marked %q as %s. Notes: %s",
		n.Actor, titleFromPath(n.FilePath), n.Status, notes)

	body, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return err
	}

	reqCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, d.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if d.cfg.WebhookToken != "" {
		req.Header.Set("Authorization", "Bearer "+d.cfg.WebhookToken)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}
	return nil
}

// titleFromPath превращает имя файла черновика в читаемый заголовок:
// "my-first_post.md" -> "My First Post"
func titleFromPath(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), ".md")
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)

	words := strings.Fields(name)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	if len(words) == 0 {
		return path
	}
	return strings.Join(words, " ")
}
