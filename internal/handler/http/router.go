package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/traum0123-design/traum0123/internal/handler/http/middleware"
	"github.com/traum0123-design/traum0123/internal/pkg/token"
)

func NewRouter(
	tokenService token.Service,
	authHandler AuthHandler,
	companyHandler CompanyHandler,
	payrollHandler PayrollHandler,
	fieldConfigHandler FieldConfigHandler,
	policyHandler PolicyHandler,
	withholdingHandler WithholdingHandler,
	exportHandler ExportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-api"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
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

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/admin/login", authHandler.AdminLogin)
			r.Post("/portal/{slug}/login", authHandler.PortalLogin)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(tokenService.JWTAuth()))
				r.Use(middleware.AuthRequired(tokenService))
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(tokenService.JWTAuth()))
			r.Use(middleware.AuthRequired(tokenService))

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/companies", func(r chi.Router) {
					r.Get("/", companyHandler.List)
					r.Post("/", companyHandler.Create)
				})

				r.Route("/withholding", func(r chi.Router) {
					r.Post("/import", withholdingHandler.Import)
					r.Get("/lookup", withholdingHandler.Lookup)
					r.Get("/years", withholdingHandler.Years)
				})

				// Global policy rows shared by every company.
				r.Route("/policy/{year}", func(r chi.Router) {
					r.Get("/", policyHandler.GetResolved)
					r.Get("/setting", policyHandler.GetSetting)
					r.Put("/", policyHandler.Upsert)
					r.Get("/history", policyHandler.History)
				})
			})

			r.Route("/companies/{companyID}", func(r chi.Router) {
				// Destructive company operations stay admin only.
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Delete("/", companyHandler.Delete)
					r.Post("/reset-access-code", companyHandler.ResetAccessCode)
				})

				// Admin or the company's own portal token.
				r.Group(func(r chi.Router) {
					r.Use(middleware.CompanyAccess)

					r.Get("/", companyHandler.GetByID)
					r.Get("/months", payrollHandler.ListMonths)

					r.Route("/sheets/{year}/{month}", func(r chi.Router) {
						r.Get("/", payrollHandler.GetSheet)
						r.Put("/", payrollHandler.SaveSheet)
						r.Post("/close", payrollHandler.SetClosed)
					})
					r.Post("/rows/compute", payrollHandler.ComputeRow)

					r.Route("/fields", func(r chi.Router) {
						r.Get("/", fieldConfigHandler.GetConfig)
						r.Put("/preferences", fieldConfigHandler.UpsertPreference)
						r.Post("/extra", fieldConfigHandler.CreateExtraField)
						r.Delete("/extra/{fieldID}", fieldConfigHandler.DeleteExtraField)
					})

					r.Route("/policy/{year}", func(r chi.Router) {
						r.Get("/", policyHandler.GetResolved)
						r.Get("/setting", policyHandler.GetSetting)
						r.Put("/", policyHandler.Upsert)
						r.Get("/history", policyHandler.History)
					})

					r.Get("/export/{year}/{month}", exportHandler.DownloadLedger)
				})
			})
		})
	})
	return r
}
