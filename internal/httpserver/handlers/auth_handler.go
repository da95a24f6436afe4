package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"robotdemo/internal/action"
	"robotdemo/internal/auth"
	"robotdemo/internal/metrics"
)

func Login(svc *auth.Service, m *metrics.Metrics, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := readForm(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		st, err := action.Login(w, r, svc, form)
		if err != nil {
			m.Login("error")
			lg.Errorw("login failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		switch {
		case st.Success:
			m.Login("ok")
		case st.Error == action.MsgUserNotFound:
			m.Login("user_not_found")
		default:
			m.Login("rejected")
		}
		respondAction(w, st)
	}
}

func Logout(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.Logout(w, r)
		w.WriteHeader(http.StatusNoContent)
	}
}

// Me expects LoadSession upstream.
func Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := auth.UserFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		respondJSON(w, map[string]any{
			"user":     u,
			"is_admin": auth.IsAdmin(r.Context()),
		})
	}
}

func ListUsers(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, svc.Users().List())
	}
}
