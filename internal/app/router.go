package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/meridian-hr/meridian-hr/internal/applications"
	"github.com/meridian-hr/meridian-hr/internal/attendance"
	"github.com/meridian-hr/meridian-hr/internal/employees"
	"github.com/meridian-hr/meridian-hr/internal/goals"
	"github.com/meridian-hr/meridian-hr/internal/observability"
	"github.com/meridian-hr/meridian-hr/internal/openings"
	"github.com/meridian-hr/meridian-hr/internal/payslips"
	"github.com/meridian-hr/meridian-hr/internal/policies"
	"github.com/meridian-hr/meridian-hr/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	EmployeesHandler    *employees.Handler
	OpeningsHandler     *openings.Handler
	ApplicationsHandler *applications.Handler
	PayslipsHandler     *payslips.Handler
	AttendanceHandler   *attendance.Handler
	PoliciesHandler     *policies.Handler
	GoalsHandler        *goals.Handler
	JobsHandler         *jobs.Handler

	Metrics *observability.Metrics
}

// NewRouter constructs the chi.Router with Meridian defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Route("/employees", params.EmployeesHandler.MountRoutes)
		api.Route("/openings", params.OpeningsHandler.MountRoutes)
		api.Route("/applications", params.ApplicationsHandler.MountRoutes)
		api.Route("/payslips", params.PayslipsHandler.MountRoutes)
		api.Route("/attendance", params.AttendanceHandler.MountRoutes)
		api.Route("/policies", params.PoliciesHandler.MountRoutes)
		api.Route("/goals", params.GoalsHandler.MountRoutes)
		if params.JobsHandler != nil {
			api.Route("/jobs", params.JobsHandler.MountRoutes)
		}
	})

	return r
}
