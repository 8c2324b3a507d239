package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/dashboard-api/pkg/respond"
)

type contextKey string

const actorKey contextKey = "actor"

// Authenticator проверяет Bearer-токен и email из него по списку
// разрешенных. Сам вход (OAuth) живет снаружи, сюда приходит уже
// подписанный токен сессии
func Authenticator(secret []byte, allowedEmails []string, logger *zap.Logger) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedEmails))
	for _, e := range allowedEmails {
		allowed[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenStr, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenStr == "" {
				respond.Unauthorized(w, r)
				return
			}

			email, err := ParseToken(secret, tokenStr)
			if err != nil {
				logger.Debug("invalid session token", zap.Error(err))
				respond.Unauthorized(w, r)
				return
			}

			if _, ok := allowed[strings.ToLower(email)]; !ok {
				respond.Unauthorized(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), actorKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorFromContext возвращает email аутентифицированного пользователя
func ActorFromContext(ctx context.Context) string {
	if email, ok := ctx.Value(actorKey).(string); ok {
		return email
	}
	return ""
}

// ParseToken валидирует HMAC-подпись и достает email
func ParseToken(secret []byte, tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return email, nil
}

// SignToken выпускает токен сессии; используется тестами и внешним
// шлюзом аутентификации
func SignToken(secret []byte, email string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
