package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-beneficiarios/internal/application/analytics"
	"github.com/jhoicas/portal-beneficiarios/internal/application/login"
	"github.com/jhoicas/portal-beneficiarios/internal/application/usecase"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/entity"
	"github.com/jhoicas/portal-beneficiarios/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Flows         *login.FlowService
	DashboardUC   *analytics.DashboardUseCase
	ServiceUC     *usecase.ServiceUseCase
	BranchUC      *usecase.BranchUseCase
	UserUC        *usecase.UserUseCase
	ProfileUC     *usecase.ProfileUseCase
	JWTSecret     string
	AuthRateLimit int
	Heartbeat     time.Duration // intervalo del heartbeat SSE; 0 usa 30s
	Logger        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Flujos de inicio de sesión (público)
	flows := api.Group("/auth/flows")
	flowHandler := NewFlowHandler(deps.Flows, deps.Logger, deps.Heartbeat)
	limited := AuthRateLimiter(deps.AuthRateLimit)
	flows.Post("/", flowHandler.Start)
	flows.Get("/:id", flowHandler.Get)
	flows.Get("/:id/events", flowHandler.Events)
	flows.Post("/:id/select", flowHandler.Select)
	flows.Post("/:id/national-id", limited, flowHandler.NationalID)
	flows.Post("/:id/otp", limited, flowHandler.OTP)
	flows.Post("/:id/admin-login", limited, flowHandler.AdminLogin)
	flows.Post("/:id/registration", flowHandler.Registration)
	flows.Post("/:id/complete", flowHandler.Complete)
	flows.Post("/:id/back", flowHandler.Back)

	// Rutas protegidas (requieren Bearer Token)
	auth := AuthMiddleware(deps.JWTSecret)

	// Funciones del panel: admin-stats autoriza por adminId, el resto exige rol admin.
	functions := api.Group("/functions", auth)
	functionsHandler := NewFunctionsHandler(deps.DashboardUC, deps.ServiceUC, deps.BranchUC, deps.UserUC, deps.Logger)
	functions.Post("/admin-stats", functionsHandler.AdminStats)
	adminOnly := RequireRole(entity.RoleAdmin)
	functions.Post("/admin-services", adminOnly, functionsHandler.AdminServices)
	functions.Post("/admin-branches", adminOnly, functionsHandler.AdminBranches)
	functions.Post("/admin-users", adminOnly, functionsHandler.AdminUsers)

	// Perfil del beneficiario
	beneficiary := api.Group("/beneficiary", auth, RequireRole(entity.RoleBeneficiary))
	profileHandler := NewProfileHandler(deps.ProfileUC, deps.Logger)
	beneficiary.Get("/profile", profileHandler.Get)
	beneficiary.Put("/profile/:section", profileHandler.UpdateSection)
}
