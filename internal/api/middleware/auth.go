package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SessionBooking/internal/api/handlers"
)

type contextKey string

const (
	userIDKey contextKey = "userID"

	// UserIDHeader заголовок с идентификатором пользователя (проставляется gateway)
	UserIDHeader = "X-User-ID"

	msgMissingUserID = "отсутствует или некорректен заголовок X-User-ID"
)

// Auth проверяет заголовок X-User-ID и кладёт ID пользователя в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(UserIDHeader), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// WithUserID кладёт ID пользователя в контекст
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID достаёт ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
