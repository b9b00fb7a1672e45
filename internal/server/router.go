package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"log/slog"

	"servifix-backend/internal/config"
	"servifix-backend/internal/domain"
	"servifix-backend/internal/handler"
)

// NewRouter wires HTTP routes and middleware.
func NewRouter(cfg config.Config,
	logger *slog.Logger,
	health handler.HealthHandler,
	auth handler.AuthHandler,
	orders handler.OrderHandler,
	customers handler.CustomerHandler,
	calendars handler.CalendarHandler,
	staff handler.StaffHandler,
	invoices handler.InvoiceHandler,
	quotes handler.QuoteHandler,
	maintenance handler.MaintenanceHandler,
	equipment handler.EquipmentHandler,
	products handler.ProductHandler,
	accounts handler.AccountHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httprate.LimitByIP(200, 1*time.Minute))

	health.RegisterRoutes(r)
	auth.RegisterRoutes(r)
	orders.RegisterPublicRoutes(r)
	calendars.RegisterPublicRoutes(r)
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Group(func(pr chi.Router) {
		pr.Use(AuthMiddleware(cfg.JWTSecret))
		// all signed-in staff
		pr.Group(func(sr chi.Router) {
			sr.Use(RequireRole(domain.RoleAdmin, domain.RoleCoordinator, domain.RoleTechnician, domain.RoleSecretary))
			orders.RegisterRoutes(sr)
			customers.RegisterRoutes(sr)
			calendars.RegisterRoutes(sr)
			equipment.RegisterRoutes(sr)
			quotes.RegisterRoutes(sr)
			products.RegisterRoutes(sr)
		})
		// admin/coordinator
		pr.Group(func(mr chi.Router) {
			mr.Use(RequireRole(domain.RoleAdmin, domain.RoleCoordinator))
			staff.RegisterRoutes(mr)
			invoices.RegisterRoutes(mr)
			maintenance.RegisterRoutes(mr)
			accounts.RegisterRoutes(mr)
		})
	})

	return r
}
