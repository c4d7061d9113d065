package middleware

import (
	"net/http"
	"strings"

	"github.com/s/coursehub/internal/handlers"
	"github.com/s/coursehub/internal/models"
)

// RequireAuth пропускает только аутентифицированных. HTML-запросы
// уводятся на /login, API получает JSON 401.
func RequireAuth(h *handlers.Handler) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if _, ok := h.GetAuthenticatedUserID(r); !ok {
				deny(w, r, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		}
	}
}

// RequireRole создает middleware, требующее конкретной роли. Проверка
// идет по закрытому перечислению ролей; роль читается из БД, а не из
// сессии. Любое несовпадение — отказ до каких-либо чтений/записей
// следующего обработчика.
func RequireRole(h *handlers.Handler, required models.Role) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			// 1. Аутентификация
			user, ok := h.CurrentUser(r)
			if !ok {
				deny(w, r, http.StatusUnauthorized)
				return
			}

			// 2. Роль
			switch user.Role {
			case required:
				next.ServeHTTP(w, r)
			case models.RoleAdmin, models.RoleInstructor, models.RoleUser:
				deny(w, r, http.StatusForbidden)
			default:
				// Неизвестная строка в БД — тоже отказ.
				deny(w, r, http.StatusForbidden)
			}
		}
	}
}

func deny(w http.ResponseWriter, r *http.Request, code int) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		if code == http.StatusForbidden {
			w.Write([]byte(`{"error":"Forbidden"}`))
		} else {
			w.Write([]byte(`{"error":"Unauthorized"}`))
		}
		return
	}
	if code == http.StatusForbidden {
		http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
