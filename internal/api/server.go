package api

import (
	_ "embed"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/quartzboard/quartzboard/internal/api/handler"
	mw "github.com/quartzboard/quartzboard/internal/api/middleware"
	"github.com/quartzboard/quartzboard/internal/core"
	"github.com/quartzboard/quartzboard/internal/db"
)

//go:embed docs/swagger.json
var swaggerJSON []byte

type Server struct {
	router   chi.Router
	logger   zerolog.Logger
	services *core.Services
	manager  *db.Manager
}

func NewServer(logger zerolog.Logger, manager *db.Manager) *Server {
	services := core.NewServices(manager)

	s := &Server{
		router:   chi.NewRouter(),
		logger:   logger,
		services: services,
		manager:  manager,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
}

func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint
	s.router.Handle("/metrics", promhttp.Handler())

	// Health check endpoints
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	// API documentation
	s.router.Get("/docs/openapi.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(swaggerJSON)
	})
	s.router.Get("/docs", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(scalarHTML))
	})

	s.router.Route("/api", func(r chi.Router) {
		// Database connections and discovery
		database := handler.NewDatabase(s.manager, s.services.Schema)
		r.Post("/database/test-connection", database.TestConnection)
		r.Post("/database/schemas", database.Schemas)
		r.Post("/database/schemas-with-quartz", database.SchemasWithQuartz)
		r.Post("/database/validate-quartz", database.ValidateQuartz)
		r.Post("/database/table-counts", database.TableCounts)

		// Jobs
		jobs := handler.NewJobs(s.services.Quartz)
		r.Post("/jobs/list", jobs.List)
		r.Post("/jobs/detail", jobs.Detail)
		r.Post("/jobs/delete", jobs.Delete)

		// Triggers
		triggers := handler.NewTriggers(s.services.Quartz)
		r.Post("/triggers/list", triggers.List)
		r.Post("/triggers/executing", triggers.Executing)
		r.Post("/triggers/pause", triggers.Pause)
		r.Post("/triggers/resume", triggers.Resume)
		r.Post("/triggers/update", triggers.UpdateCron)
		r.Post("/triggers/validate-cron", triggers.ValidateCron)

		// Scheduler state
		scheduler := handler.NewScheduler(s.services.Quartz)
		r.Post("/scheduler/info", scheduler.Info)
		r.Post("/scheduler/statistics", scheduler.Statistics)

		// Raw table access
		tables := handler.NewTables(s.services.Quartz)
		r.Post("/database-view/tables", tables.List)
		r.Post("/database-view/table-data", tables.Data)
		r.Post("/database-view/table-schema", tables.Schema)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleReadyz reports process readiness. Target databases are dialed
// per-request, so there is no upstream dependency to check here.
func (s *Server) handleReadyz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"openPools": s.manager.PoolCount(),
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

const scalarHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Quartzboard API</title>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
</head>
<body>
  <script id="api-reference" data-url="/docs/openapi.json"></script>
  <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
</body>
</html>`
