package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockledger/internal/application/dto"
	"github.com/jhoicas/stockledger/internal/application/ledger"
	"github.com/jhoicas/stockledger/internal/domain"
)

// MovementHandler maneja las peticiones HTTP del ledger de movimientos.
type MovementHandler struct {
	svc *ledger.Service
}

// NewMovementHandler construye el handler.
func NewMovementHandler(svc *ledger.Service) *MovementHandler {
	return &MovementHandler{svc: svc}
}

// Register godoc
// @Summary      Registrar movimiento de inventario
// @Description  Aplica un movimiento (RECEIPT, ISSUE, ADJUST, TRANSFER, RETURN)
//
//	al ledger y devuelve los saldos tocados y la proyección refrescada.
//
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "type, sku, qty, userId; from/to según el tipo"
// @Success      201   {object}  dto.RegisterMovementResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      409   {object}  dto.ConflictResponse
// @Router       /api/inventory/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Errors: []string{"cuerpo inválido: " + err.Error()},
		})
	}
	resp, err := h.svc.RegisterMovement(c.Context(), in)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{Errors: vErr.Messages})
		}
		var cErr *domain.ConflictError
		if errors.As(err, &cErr) {
			return c.Status(fiber.StatusConflict).JSON(dto.ConflictResponse{Message: cErr.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List godoc
// @Summary      Listar movimientos
// @Description  Página filtrada del log, ordenada por occurredAt desc
//
//	(desempate createdAt desc); limit con tope 500.
//
// @Tags         inventory
// @Produce      json
// @Param        type       query  string  false  "RECEIPT|ISSUE|ADJUST|TRANSFER|RETURN"
// @Param        sku        query  string  false  "Filtrar por SKU"
// @Param        warehouse  query  string  false  "Matchea bodega origen o destino"
// @Param        location   query  string  false  "Matchea ubicación origen o destino"
// @Param        partnerId  query  string  false  "Filtrar por partner"
// @Param        refNo      query  string  false  "Filtrar por referencia"
// @Param        userId     query  string  false  "Filtrar por usuario"
// @Param        from       query  string  false  "Desde (YYYY-MM-DD o RFC3339)"
// @Param        to         query  string  false  "Hasta (YYYY-MM-DD o RFC3339)"
// @Param        limit      query  int     false  "Tamaño de página (máx 500)"
// @Param        offset     query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.ListMovementsResponse
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Router       /api/inventory/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var in dto.ListMovementsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Errors: []string{"query inválido: " + err.Error()},
		})
	}
	resp, err := h.svc.ListMovements(in)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{Errors: vErr.Messages})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

// Balances godoc
// @Summary      Saldos actuales
// @Description  Saldos trackeados (filtrables) y los cuatro índices agregados:
//
//	por SKU, por bodega, por ubicación y global.
//
// @Tags         inventory
// @Produce      json
// @Param        sku        query  string  false  "Filtrar por SKU"
// @Param        warehouse  query  string  false  "Filtrar por bodega"
// @Param        location   query  string  false  "Filtrar por ubicación"
// @Success      200  {object}  dto.BalancesResponse
// @Router       /api/inventory/balances [get]
func (h *MovementHandler) Balances(c *fiber.Ctx) error {
	return c.JSON(h.svc.Balances(c.Query("sku"), c.Query("warehouse"), c.Query("location")))
}
