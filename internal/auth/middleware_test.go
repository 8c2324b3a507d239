package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var secret = []byte("test-secret")

func protected(t *testing.T, allowed []string) (http.Handler, *string) {
	t.Helper()
	var seenActor string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenActor = ActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return Authenticator(secret, allowed, zap.NewNop())(next), &seenActor
}

func TestAuthenticator(t *testing.T) {
	validToken, err := SignToken(secret, "graham@example.com", time.Hour)
	require.NoError(t, err)

	wrongKeyToken, err := SignToken([]byte("other-secret"), "graham@example.com", time.Hour)
	require.NoError(t, err)

	expiredToken, err := SignToken(secret, "graham@example.com", -time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		wantCode int
	}{
		{
			name:     "valid token, allowed email",
			header:   "Bearer " + validToken,
			wantCode: http.StatusOK,
		},
		{
			name:     "no header",
			header:   "",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "not a bearer token",
			header:   "Basic abc123",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "wrong signing key",
			header:   "Bearer " + wrongKeyToken,
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "expired token",
			header:   "Bearer " + expiredToken,
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "garbage token",
			header:   "Bearer not.a.jwt",
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := protected(t, []string{"graham@example.com"})

			req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
			}
		})
	}
}

func TestAuthenticator_AllowList(t *testing.T) {
	token, err := SignToken(secret, "stranger@example.com", time.Hour)
	require.NoError(t, err)

	handler, _ := protected(t, []string{"graham@example.com"})

	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticator_AllowListCaseInsensitive(t *testing.T) {
	token, err := SignToken(secret, "Graham@Example.com", time.Hour)
	require.NoError(t, err)

	handler, actor := protected(t, []string{" graham@example.com "})

	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Graham@Example.com", *actor, "actor keeps the email as signed")
}

func TestActorFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", ActorFromContext(req.Context()))
}
