package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-backoffice/internal/http/response"
	"github.com/magabrotheeeer/gym-backoffice/internal/models"
)

// RequireAccessLevel создает middleware, который пропускает запрос только если
// уровень доступа из контекста входит в список разрешённых. Уровень кладётся
// в контекст JWTMiddleware уже нормализованным.
func RequireAccessLevel(log *slog.Logger, allowed ...models.AccessLevel) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(Role).(string)
			if !ok || role == "" {
				log.Error("access level missing in context")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			for _, level := range allowed {
				if models.AccessLevel(role) == level {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Error("insufficient access level", slog.String("role", role))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("insufficient access level"))
		})
	}
}
