package handlers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"robotdemo/internal/action"
	"robotdemo/internal/metrics"
	"robotdemo/internal/robot"
)

func ListRobots(repo robot.Repository, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rs, err := repo.List(r.Context())
		if err != nil {
			lg.Errorw("list robots", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		respondJSON(w, rs)
	}
}

func ListRobotsPaginated(repo robot.Repository, perPage int, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := ParsePage(r.URL.Query().Get("page"))
		p, err := repo.ListPaginated(r.Context(), page, perPage)
		if err != nil {
			lg.Errorw("list robots page", "page", page, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		respondJSON(w, pageResponse{Page: p, Nav: NewNav(p)})
	}
}

func GetRobot(repo robot.Repository, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		rb, err := repo.GetByID(r.Context(), id)
		if err != nil {
			lg.Errorw("get robot", "id", id, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if rb == nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		respondJSON(w, rb)
	}
}

type robotAction func(ctx context.Context, repo robot.Repository, form url.Values) (action.State, error)

func runRobotAction(op string, fn robotAction, repo robot.Repository, m *metrics.Metrics, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := readForm(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		st, err := fn(r.Context(), repo, form)
		if err != nil {
			m.Mutation(op, "error")
			lg.Errorw("robot action failed", "op", op, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if st.Success {
			m.Mutation(op, "ok")
			lg.Infow("robot action", "op", op, "id", form.Get("id"))
		} else {
			m.Mutation(op, "rejected")
		}
		respondAction(w, st)
	}
}

func CreateRobot(repo robot.Repository, m *metrics.Metrics, lg *zap.SugaredLogger) http.HandlerFunc {
	return runRobotAction("create", action.CreateRobot, repo, m, lg)
}

func UpdateRobot(repo robot.Repository, m *metrics.Metrics, lg *zap.SugaredLogger) http.HandlerFunc {
	return runRobotAction("update", action.UpdateRobot, repo, m, lg)
}

func DeleteRobot(repo robot.Repository, m *metrics.Metrics, lg *zap.SugaredLogger) http.HandlerFunc {
	return runRobotAction("delete", action.DeleteRobot, repo, m, lg)
}
