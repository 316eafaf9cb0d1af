package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-ShareIt/internal/api/handlers"
	"github.com/m04kA/SMC-ShareIt/internal/config"
)

const (
	msgMissingUserID = "не указан идентификатор пользователя"
	msgInvalidUserID = "некорректный идентификатор пользователя"
	msgInvalidToken  = "некорректный токен доступа"
)

type userIDKey struct{}

var (
	errMissingToken = errors.New("missing bearer token")
	errInvalidSub   = errors.New("invalid sub claim")
)

// WithUserID кладёт идентификатор пользователя в контекст
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// GetUserID идентификатор пользователя, установленный Auth
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey{}).(int64)
	return id, ok
}

// Auth определяет пользователя запроса.
// В режиме header id берётся из заголовка (по умолчанию X-Sharer-User-Id), ошибка даёт 400.
// В режиме jwt id берётся из claim sub токена HS256, ошибка даёт 401.
func Auth(cfg config.AuthConfig, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Mode == config.AuthModeJWT {
				userID, err := userFromToken(r.Header.Get("Authorization"), cfg.JWTSecret)
				if err != nil {
					logger.Warn("%s %s - Invalid token: %v", r.Method, r.URL.Path, err)
					handlers.RespondUnauthorized(w, msgInvalidToken)
					return
				}
				next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
				return
			}

			raw := r.Header.Get(cfg.UserHeader)
			if raw == "" {
				logger.Warn("%s %s - Missing %s header", r.Method, r.URL.Path, cfg.UserHeader)
				handlers.RespondBadRequest(w, msgMissingUserID)
				return
			}
			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || userID <= 0 {
				logger.Warn("%s %s - Invalid %s header: %q", r.Method, r.URL.Path, cfg.UserHeader, raw)
				handlers.RespondBadRequest(w, msgInvalidUserID)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func userFromToken(header, secret string) (int64, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return 0, errMissingToken
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, err
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return 0, err
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || userID <= 0 {
		return 0, errInvalidSub
	}
	return userID, nil
}
