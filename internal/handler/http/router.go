package http

import (
	"log/slog"
	"net/http"

	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/user"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/handler/http/middleware"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Commission    CommissionHandler
	Payment       PaymentHandler
	Rate          RateHandler
	PayoutWebhook PayoutWebhookHandler
	Metrics       http.Handler
}

func NewRouter(logger *slog.Logger, JWTService jwt.Service, allowedOrigins []string, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Payment rail callbacks carry a shared token, not a user token
		r.Post("/webhooks/payouts", h.PayoutWebhook.HandlePayout)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/service-rates", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionRateView)).Get("/", h.Rate.List)
				r.With(middleware.RequirePermission(user.PermissionRateView)).Get("/{category}", h.Rate.Get)
				r.With(middleware.RequirePermission(user.PermissionRateManage)).Put("/{category}", h.Rate.Upsert)
			})

			r.Route("/commissions", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionCommissionViewOwn))
					r.Get("/", h.Commission.ListRecords)
					r.Get("/summary", h.Commission.GetSummary)
					r.Get("/{id}", h.Commission.GetRecord)
					r.Get("/{id}/adjustments", h.Commission.ListAdjustments)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionCommissionManage))
					r.Post("/", h.Commission.CreateRecord)
					r.Post("/{id}/adjustments", h.Commission.Adjust)
					r.Patch("/{id}/status", h.Commission.UpdateStatus)
				})
			})

			r.Route("/commission-payments", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionPaymentManage))
				r.Get("/", h.Payment.List)
				r.Post("/", h.Payment.Create)
				r.With(middleware.AdminOnly).Post("/auto", h.Payment.AutoBatch)
				r.Get("/{id}", h.Payment.Get)
				r.Post("/{id}/complete", h.Payment.Complete)
				r.Post("/{id}/fail", h.Payment.Fail)
			})
		})
	})
	return r
}
