package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rodrantho/storatrack/internal/application/auth"
	"github.com/rodrantho/storatrack/internal/application/billing"
	"github.com/rodrantho/storatrack/internal/application/lifecycle"
	"github.com/rodrantho/storatrack/internal/application/usecase"
	"github.com/rodrantho/storatrack/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC    *usecase.CompanyUseCase
	LocationUC   *usecase.LocationUseCase
	DeviceUC     *usecase.DeviceUseCase
	TransitionUC *lifecycle.TransitionUseCase
	HistoryUC    *lifecycle.HistoryUseCase
	CostReportUC *billing.CostReportUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público; registro y listado requieren token)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/auth/register", authHandler.Register)
	protected.Get("/users", authHandler.ListUsers)

	// Companies (protegido; altas y bajas solo superadmin)
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.CostReportUC)
	companies.Post("/", RequireRole(entity.RoleSuperadmin), companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", RequireRole(entity.RoleSuperadmin), companyHandler.Delete)
	companies.Get("/:id/cost-report", companyHandler.CostReport)

	// Locations (protegido)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", locationHandler.Update)
	locations.Delete("/:id", locationHandler.Deactivate)

	// Devices (protegido)
	devices := protected.Group("/devices")
	deviceHandler := NewDeviceHandler(deps.DeviceUC, deps.TransitionUC, deps.HistoryUC, deps.CostReportUC)
	devices.Post("/", deviceHandler.Register)
	devices.Get("/", deviceHandler.List)
	devices.Get("/:id", deviceHandler.GetByID)
	devices.Put("/:id", deviceHandler.Update)
	devices.Post("/:id/transitions", deviceHandler.Transition)
	devices.Get("/:id/movements", deviceHandler.Movements)
	devices.Get("/:id/label", deviceHandler.Label)
	devices.Get("/:id/cost-report", deviceHandler.CostReport)
}
