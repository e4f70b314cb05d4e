package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rodrantho/storatrack/internal/application/billing"
	"github.com/rodrantho/storatrack/internal/application/dto"
	"github.com/rodrantho/storatrack/internal/application/lifecycle"
	"github.com/rodrantho/storatrack/internal/application/usecase"
)

// DeviceHandler maneja las peticiones HTTP para equipos: registro, consulta,
// transiciones de estado, historial, etiqueta y reporte de costos.
type DeviceHandler struct {
	uc           *usecase.DeviceUseCase
	transitionUC *lifecycle.TransitionUseCase
	historyUC    *lifecycle.HistoryUseCase
	reportUC     *billing.CostReportUseCase
}

// NewDeviceHandler construye el handler.
func NewDeviceHandler(
	uc *usecase.DeviceUseCase,
	transitionUC *lifecycle.TransitionUseCase,
	historyUC *lifecycle.HistoryUseCase,
	reportUC *billing.CostReportUseCase,
) *DeviceHandler {
	return &DeviceHandler{uc: uc, transitionUC: transitionUC, historyUC: historyUC, reportUC: reportUC}
}

// Register godoc
// @Summary      Registrar equipo (nace INGRESADO)
// @Tags         devices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterDeviceRequest  true  "Datos del equipo"
// @Success      201   {object}  dto.DeviceResponse
// @Router       /api/devices [post]
func (h *DeviceHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterDeviceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Register(TenantFromCtx(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener equipo por ID
// @Tags         devices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del equipo"
// @Success      200  {object}  dto.DeviceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/devices/{id} [get]
func (h *DeviceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(TenantFromCtx(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar equipos de una empresa
// @Tags         devices
// @Security     Bearer
// @Produce      json
// @Param        company_id  query  string  false  "Empresa (ignorado para client_user)"
// @Success      200  {object}  dto.DeviceListResponse
// @Router       /api/devices [get]
func (h *DeviceHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(TenantFromCtx(c), c.Query("company_id"), page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar metadatos del equipo
// @Tags         devices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del equipo"
// @Param        body  body  dto.UpdateDeviceRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.DeviceResponse
// @Router       /api/devices/{id} [put]
func (h *DeviceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDeviceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(TenantFromCtx(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Transition godoc
// @Summary      Transicionar el estado del equipo
// @Tags         devices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del equipo"
// @Param        body  body  dto.TransitionRequest  true  "Estado destino, ubicación y notas"
// @Success      201   {object}  dto.MovementResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/devices/{id}/transitions [post]
func (h *DeviceHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.transitionUC.Transition(c.Context(), TenantFromCtx(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Movements godoc
// @Summary      Historial de movimientos del equipo
// @Tags         devices
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID del equipo"
// @Param        from  query  string  false  "Desde (RFC3339)"
// @Param        to    query  string  false  "Hasta (RFC3339, exclusivo)"
// @Success      200   {object}  dto.MovementListResponse
// @Router       /api/devices/{id}/movements [get]
func (h *DeviceHandler) Movements(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
		}
		from = &ts
	}
	if s := c.Query("to"); s != "" {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
		}
		to = &ts
	}
	out, err := h.historyUC.ListByDevice(TenantFromCtx(c), c.Params("id"), from, to, page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Label godoc
// @Summary      Datos de etiqueta del equipo (solo identificadores)
// @Tags         devices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del equipo"
// @Success      200  {object}  dto.DeviceLabelResponse
// @Router       /api/devices/{id}/label [get]
func (h *DeviceHandler) Label(c *fiber.Ctx) error {
	out, err := h.uc.LabelData(TenantFromCtx(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// CostReport godoc
// @Summary      Reporte de costo de almacenamiento del equipo
// @Tags         devices
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true  "ID del equipo"
// @Param        start  query  string  true  "Inicio de la ventana (RFC3339)"
// @Param        end    query  string  true  "Fin de la ventana (RFC3339, exclusivo)"
// @Success      200  {object}  dto.CostReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/devices/{id}/cost-report [get]
func (h *DeviceHandler) CostReport(c *fiber.Ctx) error {
	start, end, err := parseWindow(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_WINDOW", Message: "start y end deben ser RFC3339"})
	}
	out, err := h.reportUC.ComputeDeviceReport(TenantFromCtx(c), c.Params("id"), start, end)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
