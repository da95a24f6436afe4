package auth

import (
	"net/http"

	"robotdemo/internal/models"
)

// LoadSession attaches the current user, if any, to the request context.
// It never rejects a request; a store failure is treated as anonymous.
func LoadSession(svc *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, err := svc.CurrentUser(r)
			if err != nil {
				svc.lg.Warnw("session lookup failed", "error", err)
			}
			if u != nil {
				r = r.WithContext(WithUser(r.Context(), *u))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAuthenticated(r.Context()) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsAuthenticated(r.Context()) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if !HasRole(r.Context(), role) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
