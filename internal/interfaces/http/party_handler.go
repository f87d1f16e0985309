package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/application/parties"
)

// PartyHandler maneja las peticiones HTTP del registro de terceros:
// proveedores (FOR-NNN) y clientes (CLI-NNN) (protegido).
type PartyHandler struct {
	uc *parties.UseCase
}

// NewPartyHandler construye el handler.
func NewPartyHandler(uc *parties.UseCase) *PartyHandler {
	return &PartyHandler{uc: uc}
}

// Create godoc
// @Summary      Alta de proveedor o cliente con código acuñado
// @Tags         parties
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        type  path  string  true  "supplier | client"
// @Param        body  body  dto.CreatePartyRequest  true  "nombre, NIF, contacto"
// @Success      201   {object}  dto.PartyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/parties/{type} [post]
func (h *PartyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badBody(c)
	}
	p, err := h.uc.Create(c.Context(), parties.CreateInput{
		Type:      c.Params("type"),
		Name:      in.Name,
		VATNumber: in.VATNumber,
		Email:     in.Email,
		Phone:     in.Phone,
		Note:      in.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromParty(p))
}

// List devuelve los terceros del tipo de la ruta.
func (h *PartyHandler) List(c *fiber.Ctx) error {
	ps, err := h.uc.List(c.Context(), c.Params("type"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromParties(ps))
}

// Get devuelve un tercero por código.
func (h *PartyHandler) Get(c *fiber.Ctx) error {
	p, err := h.uc.Get(c.Context(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromParty(p))
}

// Update modifica los datos descriptivos; el código es inmutable.
func (h *PartyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePartyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badBody(c)
	}
	p, err := h.uc.Update(c.Context(), c.Params("code"), parties.UpdateInput{
		Name:      in.Name,
		VATNumber: in.VATNumber,
		Email:     in.Email,
		Phone:     in.Phone,
		Note:      in.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromParty(p))
}
