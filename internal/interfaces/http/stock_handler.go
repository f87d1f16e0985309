package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/application/stock"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// StockHandler maneja las peticiones HTTP de las categorías de dos estados:
// tinta, polímero y troquel (protegido). La categoría llega en la ruta.
type StockHandler struct {
	uc *stock.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// category saca la categoría de la ruta. El cartón tiene sus propias rutas:
// aquí sólo entran las categorías sin ciclo de vida.
func category(c *fiber.Ctx) (entity.Category, error) {
	cat := entity.Category(c.Params("category"))
	if !cat.Valid() || cat.HasLifecycle() {
		return "", domain.ErrInvalidInput
	}
	return cat, nil
}

// Add godoc
// @Summary      Alta de unidad (tinta, polímero o troquel)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        category  path  string  true  "ink | polymer | die"
// @Param        body      body  dto.AddStockRequest  true  "descripción, cantidad inicial, mínimo..."
// @Success      201  {object}  dto.StockItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/{category} [post]
func (h *StockHandler) Add(c *fiber.Ctx) error {
	cat, err := category(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.AddStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badBody(c)
	}
	item, err := h.uc.Add(c.Context(), stock.AddStockInput{
		Category:     cat,
		Description:  in.Description,
		Unit:         in.Unit,
		InitialQty:   in.InitialQty,
		Threshold:    in.Threshold,
		SupplierCode: in.SupplierCode,
		JobRef:       in.JobRef,
		Actor:        GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromStockItem(item))
}

// List devuelve las unidades de la categoría.
func (h *StockHandler) List(c *fiber.Ctx) error {
	cat, err := category(c)
	if err != nil {
		return respondError(c, err)
	}
	items, err := h.uc.List(c.Context(), cat)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromStockItems(items))
}

// BelowThreshold godoc
// @Summary      Unidades en o por debajo de su mínimo de reposición
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        category  path  string  true  "ink | polymer | die"
// @Success      200  {array}  dto.StockItemResponse
// @Router       /api/stock/{category}/below-threshold [get]
func (h *StockHandler) BelowThreshold(c *fiber.Ctx) error {
	cat, err := category(c)
	if err != nil {
		return respondError(c, err)
	}
	items, err := h.uc.BelowThreshold(c.Context(), cat)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromStockItems(items))
}

// Get devuelve una unidad por código.
func (h *StockHandler) Get(c *fiber.Ctx) error {
	cat, err := category(c)
	if err != nil {
		return respondError(c, err)
	}
	item, err := h.uc.Get(c.Context(), cat, c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromStockItem(item))
}

// Modify actualiza campos descriptivos de la unidad.
func (h *StockHandler) Modify(c *fiber.Ctx) error {
	cat, err := category(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.ModifyStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	item, err := h.uc.Modify(c.Context(), cat, c.Params("code"), stock.ModifyStockInput{
		Description:  in.Description,
		Threshold:    in.Threshold,
		SupplierCode: in.SupplierCode,
		JobRef:       in.JobRef,
		Actor:        GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromStockItem(item))
}

// Remove elimina la unidad dejando constancia en el libro.
func (h *StockHandler) Remove(c *fiber.Ctx) error {
	cat, err := category(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Remove(c.Context(), cat, c.Params("code"), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetAvailability godoc
// @Summary      Marca la unidad como disponible o retirada
// @Description  Idempotente: repetir el mismo valor deja otra entrada en el
//	libro y no cambia nada más.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AvailabilityRequest  true  "available"
// @Success      200   {object}  dto.StockItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{category}/{code}/availability [patch]
func (h *StockHandler) SetAvailability(c *fiber.Ctx) error {
	cat, err := category(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.AvailabilityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badBody(c)
	}
	item, err := h.uc.SetAvailability(c.Context(), cat, c.Params("code"), *in.Available, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromStockItem(item))
}

// Load suma cantidad a la unidad.
func (h *StockHandler) Load(c *fiber.Ctx) error {
	return h.applyMovement(c, h.uc.Load)
}

// Unload resta cantidad; se rechaza si quedaría negativa.
func (h *StockHandler) Unload(c *fiber.Ctx) error {
	return h.applyMovement(c, h.uc.Unload)
}

type movementOp func(ctx context.Context, cat entity.Category, code string, in stock.LoadInput) (*entity.StockItem, error)

func (h *StockHandler) applyMovement(c *fiber.Ctx, op movementOp) error {
	cat, err := category(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.LoadRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badBody(c)
	}
	item, err := op(c.Context(), cat, c.Params("code"), stock.LoadInput{
		Quantity:   in.Quantity,
		Note:       in.Note,
		JobRef:     in.JobRef,
		ClientCode: in.ClientCode,
		Actor:      GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromStockItem(item))
}

// RecentMovements godoc
// @Summary      Libro de movimientos global por rango de fechas
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "RFC 3339"
// @Param        to      query  string  false  "RFC 3339"
// @Param        limit   query  int     false  "máx. 500, por defecto 100"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements [get]
func (h *StockHandler) RecentMovements(c *fiber.Ctx) error {
	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return badBody(c)
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return badBody(c)
		}
		to = &t
	}
	movs, err := h.uc.RecentMovements(c.Context(), from, to,
		c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromMovements(movs))
}

// History devuelve el libro de la unidad, más recientes primero.
func (h *StockHandler) History(c *fiber.Ctx) error {
	cat, err := category(c)
	if err != nil {
		return respondError(c, err)
	}
	movs, err := h.uc.History(c.Context(), cat, c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromMovements(movs))
}
