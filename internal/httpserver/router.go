package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"robotdemo/internal/auth"
	"robotdemo/internal/httpserver/handlers"
	"robotdemo/internal/metrics"
	"robotdemo/internal/models"
	"robotdemo/internal/robot"
)

type Deps struct {
	Robots  robot.Repository
	Auth    *auth.Service
	Metrics *metrics.Metrics
	PerPage int
	Log     *zap.SugaredLogger
}

func NewRouter(d Deps) http.Handler {
	lg := d.Log
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)
	r.Use(d.Metrics.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Handle("/metrics", d.Metrics.Handler())

	r.Group(func(api chi.Router) {
		api.Use(auth.LoadSession(d.Auth))
		api.Post("/v1/auth/login", handlers.Login(d.Auth, d.Metrics, lg))
		api.Post("/v1/auth/logout", handlers.Logout(d.Auth))

		api.Get("/v1/robots", handlers.ListRobots(d.Robots, lg))
		api.Get("/v1/robots/paginated", handlers.ListRobotsPaginated(d.Robots, d.PerPage, lg))
		api.Get("/v1/robots/{id}", handlers.GetRobot(d.Robots, lg))
		api.Post("/v1/robots", handlers.CreateRobot(d.Robots, d.Metrics, lg))
		api.Post("/v1/robots/update", handlers.UpdateRobot(d.Robots, d.Metrics, lg))
		api.Post("/v1/robots/delete", handlers.DeleteRobot(d.Robots, d.Metrics, lg))

		api.Group(func(protected chi.Router) {
			protected.Use(auth.RequireAuth)
			protected.Get("/v1/me", handlers.Me())
		})
		api.Group(func(admin chi.Router) {
			admin.Use(auth.RequireRole(models.RoleAdmin))
			admin.Get("/v1/admin/users", handlers.ListUsers(d.Auth))
		})
	})
	return r
}
