package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/attendance-service/internal/api/http/handlers"
	"github.com/spec-kit/attendance-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Attendance     *handlers.AttendanceHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
	LoginLimiter   fiber.Handler
}

// RegisterRoutes wires HTTP routes. Ownership checks (student reading their
// own records) live in the handlers; purely admin-gated routes carry the
// policy as route middleware.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	authGroup := app.Group("/auth")
	if cfg.LoginLimiter != nil {
		authGroup.Post("/login", cfg.LoginLimiter, cfg.Auth.Login)
	} else {
		authGroup.Post("/login", cfg.Auth.Login)
	}

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Post("/register", auth.RequireOperation(auth.OpUserRegister), cfg.Auth.Register)
	authProtected.Get("/profile", cfg.Auth.Profile)
	authProtected.Put("/profile", cfg.Auth.UpdateProfile)
	authProtected.Put("/change-password", cfg.Auth.ChangePassword)

	attendance := app.Group("/attendance", cfg.AuthMiddleware.Handle)
	attendance.Post("/record", auth.RequireOperation(auth.OpAttendanceRecord), cfg.Attendance.Record)
	attendance.Post("/bulk-record", auth.RequireOperation(auth.OpAttendanceBulkRecord), cfg.Attendance.BulkRecord)
	attendance.Get("/student/:studentId", cfg.Attendance.ListByStudent)
	attendance.Get("/date/:date", auth.RequireOperation(auth.OpAttendanceReadByDate), cfg.Attendance.ListByDate)
	attendance.Get("/stats/:studentId", cfg.Attendance.Stats)
	attendance.Put("/:id", auth.RequireOperation(auth.OpAttendanceUpdateStatus), cfg.Attendance.UpdateStatus)
	attendance.Delete("/:id", auth.RequireOperation(auth.OpAttendanceDelete), cfg.Attendance.Delete)

	users := app.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/", auth.RequireOperation(auth.OpUserList), cfg.Users.List)
	users.Delete("/:id", auth.RequireOperation(auth.OpUserDelete), cfg.Users.Delete)
}
