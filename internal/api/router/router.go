package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/medidesk/clinic-platform/internal/http/handlers"
	httpmiddleware "github.com/medidesk/clinic-platform/internal/http/middleware"
	"github.com/medidesk/clinic-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	CalendarHandler    *handlers.CalendarHandler
	DoctorsHandler     *handlers.DoctorsHandler
	AppointmentsAdmin  *handlers.AppointmentsAdminHandler
	MetricsHandler     http.Handler
	StaffAuthSecret    string
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", cfg.CalendarHandler.HealthCheck)
		public.Route("/api", func(api chi.Router) {
			api.Get("/calendar", cfg.CalendarHandler.GetCalendar)
			api.Get("/calendar/legend", cfg.CalendarHandler.GetLegend)
			if cfg.DoctorsHandler != nil {
				api.Get("/doctors", cfg.DoctorsHandler.ListDoctors)
			}
		})
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	// Staff-only endpoints
	if cfg.AppointmentsAdmin != nil {
		r.Group(func(admin chi.Router) {
			admin.Use(httpmiddleware.StaffJWT(cfg.StaffAuthSecret))
			admin.Mount("/admin/appointments", cfg.AppointmentsAdmin.Routes())
		})
	}

	return r
}
