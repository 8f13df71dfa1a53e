package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
)

const (
	// HeaderUserID ID пользователя, проставляется шлюзом
	HeaderUserID = "X-User-ID"
	// HeaderUserRole роль пользователя (admin или staff), проставляется шлюзом
	HeaderUserRole = "X-User-Role"

	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidUserID = "некорректный ID пользователя"
	msgInvalidRole   = "некорректная роль пользователя"
)

type contextKey string

const actorKey contextKey = "actor"

// Auth извлекает X-User-ID и X-User-Role и кладет Actor в контекст
// Без роли пользователь считается сотрудником (staff)
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := r.Header.Get(HeaderUserID)
		if rawID == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		role := r.Header.Get(HeaderUserRole)
		switch role {
		case "":
			role = domain.RoleStaff
		case domain.RoleAdmin, domain.RoleStaff:
		default:
			handlers.RespondUnauthorized(w, msgInvalidRole)
			return
		}

		ctx := WithActor(r.Context(), domain.Actor{UserID: userID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithActor кладет Actor в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor достает Actor из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

// GetUserID достает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	actor, ok := GetActor(ctx)
	if !ok {
		return 0, false
	}
	return actor.UserID, true
}
