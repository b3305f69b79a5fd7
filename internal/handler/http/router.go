package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/dayflow-hr/dayflow-backend-go/internal/config"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/middleware"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/response"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/jwt"
)

type RouterDeps struct {
	Config            *config.Config
	Logger            *slog.Logger
	JWTService        jwt.Service
	AuthHandler       AuthHandler
	EmployeeHandler   EmployeeHandler
	AttendanceHandler AttendanceHandler
	LeaveHandler      LeaveHandler
	PayrollHandler    PayrollHandler
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.Config.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(deps.Logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", deps.AuthHandler.Login)
			r.Post("/refresh", deps.AuthHandler.RefreshToken)
			r.Post("/logout", deps.AuthHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(deps.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(deps.JWTService.JWTAuth()))

			r.Post("/auth/change-password", deps.AuthHandler.ChangePassword)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/me", deps.EmployeeHandler.GetMe)
				r.Get("/{id}", deps.EmployeeHandler.GetByID)

				// HR and Admin
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Get("/", deps.EmployeeHandler.List)
					r.Post("/", deps.EmployeeHandler.Create)
					r.Put("/{id}", deps.EmployeeHandler.Update)
					r.Put("/{id}/salary", deps.EmployeeHandler.UpdateSalary)
					r.Get("/{id}/attendance-summary", deps.PayrollHandler.PreviewSummary)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Delete("/{id}", deps.EmployeeHandler.Delete)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", deps.AttendanceHandler.CheckIn)
				r.Post("/check-out", deps.AttendanceHandler.CheckOut)
				r.Get("/today", deps.AttendanceHandler.GetToday)
				r.Get("/employee/{id}", deps.AttendanceHandler.ListForEmployee)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Get("/", deps.AttendanceHandler.List)
					r.Post("/mark", deps.AttendanceHandler.Mark)
				})
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.Post("/", deps.LeaveHandler.Create)
				r.Get("/", deps.LeaveHandler.List)
				r.Get("/{id}", deps.LeaveHandler.GetByID)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/{id}/review", deps.LeaveHandler.Review)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/", deps.PayrollHandler.List)
				r.Get("/{id}", deps.PayrollHandler.GetByID)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/generate", deps.PayrollHandler.Generate)
					r.Post("/generate-bulk", deps.PayrollHandler.GenerateBulk)
					r.Get("/summary", deps.PayrollHandler.PeriodSummary)
					r.Put("/{id}", deps.PayrollHandler.Update)
					r.Put("/{id}/status", deps.PayrollHandler.UpdateStatus)
					r.Delete("/{id}", deps.PayrollHandler.Delete)
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}
