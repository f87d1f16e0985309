package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/application/stock"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// CardboardHandler maneja las peticiones HTTP de los lotes de cartón y su
// ciclo de vida (protegido).
type CardboardHandler struct {
	uc *stock.CardboardUseCase
}

// NewCardboardHandler construye el handler.
func NewCardboardHandler(uc *stock.CardboardUseCase) *CardboardHandler {
	return &CardboardHandler{uc: uc}
}

// Add godoc
// @Summary      Alta de lote de cartón (nace en espera de pedido)
// @Tags         cardboard
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddCardboardRequest  true  "descripción, cantidad pedida, formato, rendimiento..."
// @Success      201   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cardboard [post]
func (h *CardboardHandler) Add(c *fiber.Ctx) error {
	var in dto.AddCardboardRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badBody(c)
	}
	item, err := h.uc.Add(c.Context(), stock.AddCardboardInput{
		Description:  in.Description,
		Format:       in.Format,
		Unit:         in.Unit,
		OrderedQty:   in.OrderedQty,
		Yield:        in.Yield,
		Threshold:    in.Threshold,
		SupplierCode: in.SupplierCode,
		ClientCode:   in.ClientCode,
		JobRef:       in.JobRef,
		Actor:        GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromStockItem(item))
}

// List godoc
// @Summary      Lista de lotes de cartón, opcionalmente por etapa
// @Tags         cardboard
// @Security     Bearer
// @Produce      json
// @Param        stage  query  string  false  "AWAITING_ORDER | INCOMING | IN_STOCK | DEPLETED"
// @Success      200    {array}  dto.StockItemResponse
// @Router       /api/cardboard [get]
func (h *CardboardHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List(c.Context(), entity.Stage(c.Query("stage")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromStockItems(items))
}

// Get devuelve un lote por código.
func (h *CardboardHandler) Get(c *fiber.Ctx) error {
	item, err := h.uc.Get(c.Context(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromStockItem(item))
}

// Modify actualiza campos descriptivos del lote.
func (h *CardboardHandler) Modify(c *fiber.Ctx) error {
	var in dto.ModifyStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	item, err := h.uc.Modify(c.Context(), c.Params("code"), stock.ModifyCardboardInput{
		Description:  in.Description,
		Format:       in.Format,
		Threshold:    in.Threshold,
		Yield:        in.Yield,
		SupplierCode: in.SupplierCode,
		ClientCode:   in.ClientCode,
		JobRef:       in.JobRef,
		Location:     in.Location,
		Actor:        GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromStockItem(item))
}

// Remove godoc
// @Summary      Elimina un lote (sólo en espera de pedido o pedido)
// @Tags         cardboard
// @Security     Bearer
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cardboard/{code} [delete]
func (h *CardboardHandler) Remove(c *fiber.Ctx) error {
	if err := h.uc.Remove(c.Context(), c.Params("code"), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ConfirmSupplier marca el lote como confirmado por el proveedor.
func (h *CardboardHandler) ConfirmSupplier(c *fiber.Ctx) error {
	item, err := h.uc.ConfirmSupplier(c.Context(), c.Params("code"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromStockItem(item))
}

// PlaceOrder pasa el lote a pedido con fecha de entrega prevista.
func (h *CardboardHandler) PlaceOrder(c *fiber.Ctx) error {
	var in dto.PlaceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badBody(c)
	}
	item, err := h.uc.PlaceOrder(c.Context(), c.Params("code"), in.DeliveryDate, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromStockItem(item))
}

// RecordArrival godoc
// @Summary      Registra la entrada del lote con la cantidad real recibida
// @Description  La diferencia con lo pedido se devuelve como dato informativo,
//	nunca se rechaza la entrada por ella.
// @Tags         cardboard
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ArrivalRequest  true  "DDT, cantidad real, ubicación"
// @Success      200   {object}  dto.ArrivalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cardboard/{code}/arrival [post]
func (h *CardboardHandler) RecordArrival(c *fiber.Ctx) error {
	var in dto.ArrivalRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badBody(c)
	}
	item, diff, err := h.uc.RecordArrival(c.Context(), c.Params("code"), stock.ArrivalInput{
		DDT:       in.DDT,
		ActualQty: in.ActualQty,
		Location:  in.Location,
		Actor:     GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ArrivalResponse{Item: dto.FromStockItem(item), OrderDiff: diff})
}

// Unload godoc
// @Summary      Descarga hojas de un lote en existencias
// @Description  Con yield_ratio la cantidad efectiva es floor(quantity/yield_ratio).
//	Si la cantidad llega a cero el lote pasa a agotado.
// @Tags         cardboard
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UnloadRequest  true  "cantidad, ratio de rendimiento, trabajo..."
// @Success      200   {object}  dto.StockItemResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cardboard/{code}/unload [post]
func (h *CardboardHandler) Unload(c *fiber.Ctx) error {
	var in dto.UnloadRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badBody(c)
	}
	item, err := h.uc.Unload(c.Context(), c.Params("code"), stock.UnloadCardboardInput{
		Quantity:   in.Quantity,
		YieldRatio: in.YieldRatio,
		JobRef:     in.JobRef,
		ClientCode: in.ClientCode,
		Note:       in.Note,
		Actor:      GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromStockItem(item))
}

// ReturnToIncoming devuelve un lote de existencias a pedidos (corrección).
func (h *CardboardHandler) ReturnToIncoming(c *fiber.Ctx) error {
	item, err := h.uc.ReturnToIncoming(c.Context(), c.Params("code"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromStockItem(item))
}

// ReturnToStock devuelve un lote agotado a existencias (corrección).
func (h *CardboardHandler) ReturnToStock(c *fiber.Ctx) error {
	item, err := h.uc.ReturnToStock(c.Context(), c.Params("code"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromStockItem(item))
}

// History devuelve el libro de movimientos del lote, más recientes primero.
func (h *CardboardHandler) History(c *fiber.Ctx) error {
	movs, err := h.uc.History(c.Context(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromMovements(movs))
}
