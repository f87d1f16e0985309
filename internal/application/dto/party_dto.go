package dto

import (
	"time"

	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// CreatePartyRequest body para POST /api/parties/:type.
type CreatePartyRequest struct {
	Name      string `json:"name" validate:"required"`
	VATNumber string `json:"vat_number,omitempty"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty"`
	Note      string `json:"note,omitempty"`
}

// UpdatePartyRequest body para PUT; campos omitidos no cambian.
type UpdatePartyRequest struct {
	Name      *string `json:"name,omitempty"`
	VATNumber *string `json:"vat_number,omitempty"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty"`
	Note      *string `json:"note,omitempty"`
}

// PartyResponse representación JSON de un tercero.
type PartyResponse struct {
	Code      string    `json:"code"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	VATNumber string    `json:"vat_number,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Note      string    `json:"note,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromParty mapea la entidad a su respuesta.
func FromParty(p *entity.Party) PartyResponse {
	return PartyResponse{
		Code:      p.Code,
		Type:      p.Type,
		Name:      p.Name,
		VATNumber: p.VATNumber,
		Email:     p.Email,
		Phone:     p.Phone,
		Note:      p.Note,
		UpdatedAt: p.UpdatedAt,
	}
}

// FromParties mapea una lista de terceros.
func FromParties(ps []*entity.Party) []PartyResponse {
	out := make([]PartyResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromParty(p))
	}
	return out
}
