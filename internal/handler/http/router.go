package http

import (
	"log/slog"

	"github.com/cmlabs-hris/hris-leave-attendance/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, leaveHandler LeaveHandler, attendanceHandler AttendanceHandler) *chi.Mux {
	r := chi.NewRouter()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)

		// Employee self-service
		r.Group(func(r chi.Router) {
			r.Use(middleware.EmployeeOnly)

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.CreateRequest)
				r.Get("/my", leaveHandler.GetMyRequests)
				r.Get("/balance", leaveHandler.GetMyBalance)
				r.Get("/summary", leaveHandler.GetMySummary)
				r.Get("/{id}", leaveHandler.GetRequest)
				r.Patch("/{id}", leaveHandler.UpdateRequest)
				r.Post("/{id}/cancel", leaveHandler.CancelRequest)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/status", attendanceHandler.Status)
				r.Get("/today", attendanceHandler.Today)
				r.Get("/my", attendanceHandler.GetMyAttendance)
				r.Get("/stats", attendanceHandler.Stats)
				r.Route("/monthly", func(r chi.Router) {
					r.Get("/", attendanceHandler.Monthly)
					r.Get("/hours", attendanceHandler.MonthlyHours)
					r.Get("/export", attendanceHandler.ExportMonthly)
				})
			})
		})

		// Admin only
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminOnly)

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", leaveHandler.ListRequests)
				r.Get("/pending", leaveHandler.ListPending)
				r.Get("/summary", leaveHandler.Summary)
				r.Get("/summary/export", leaveHandler.ExportSummary)
				r.Get("/{id}", leaveHandler.GetRequest)
				r.Patch("/{id}", leaveHandler.UpdateRequest)
				r.Post("/{id}/approve", leaveHandler.ApproveRequest)
				r.Post("/{id}/reject", leaveHandler.RejectRequest)
				r.Post("/{id}/cancel", leaveHandler.CancelRequest)
			})

			r.Route("/employees/{id}", func(r chi.Router) {
				r.Put("/leave-balance", leaveHandler.SetBalance)
				r.Get("/attendance/monthly", attendanceHandler.EmployeeMonthly)
				r.Get("/attendance/stats", attendanceHandler.EmployeeStats)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.List)
				r.Get("/overview", attendanceHandler.Overview)
				r.Patch("/{id}", attendanceHandler.Update)
				r.Delete("/{id}", attendanceHandler.Delete)
			})
		})
	})

	return r
}
