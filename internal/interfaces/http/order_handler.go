package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/application/orders"
)

// OrderHandler maneja las peticiones HTTP de pedidos de compra (protegido).
type OrderHandler struct {
	uc *orders.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crea un pedido de compra con el siguiente número N/YY del año
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "proveedor, descripción, cantidad..."
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badBody(c)
	}
	order, err := h.uc.Create(c.Context(), orders.CreateInput{
		SupplierCode: in.SupplierCode,
		ItemCode:     in.ItemCode,
		Description:  in.Description,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		Note:         in.Note,
		Actor:        GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromPurchaseOrder(order))
}

// List godoc
// @Summary      Lista los pedidos de un año (por defecto el año en curso)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        year  query  int  false  "Año (4 cifras). Vacío = actual."
// @Success      200   {array}  dto.PurchaseOrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	year, _ := strconv.Atoi(c.Query("year"))
	list, err := h.uc.ListByYear(c.Context(), year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromPurchaseOrders(list))
}

// Get devuelve un pedido por año y secuencia.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	year, seq, err := orderKey(c)
	if err != nil {
		return badBody(c)
	}
	order, err := h.uc.Get(c.Context(), year, seq)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromPurchaseOrder(order))
}

// Duplicate godoc
// @Summary      Duplica un pedido con un número recién acuñado
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{year}/{seq}/duplicate [post]
func (h *OrderHandler) Duplicate(c *fiber.Ctx) error {
	year, seq, err := orderKey(c)
	if err != nil {
		return badBody(c)
	}
	order, err := h.uc.Duplicate(c.Context(), year, seq, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromPurchaseOrder(order))
}

func orderKey(c *fiber.Ctx) (int, int64, error) {
	year, err := strconv.Atoi(c.Params("year"))
	if err != nil {
		return 0, 0, err
	}
	seq, err := strconv.ParseInt(c.Params("seq"), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	return year, seq, nil
}
