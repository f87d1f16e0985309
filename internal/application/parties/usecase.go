package parties

import (
	"context"
	"time"

	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
	"github.com/tu-usuario/almacen-pro/internal/domain/sequence"
)

// UseCase gestiona el registro de terceros: proveedores (FOR-NNN) y
// clientes (CLI-NNN).
type UseCase struct {
	parties repository.PartyRepository
	codes   repository.CodeRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(parties repository.PartyRepository, codes repository.CodeRepository) *UseCase {
	return &UseCase{parties: parties, codes: codes}
}

// CreateInput alta de un tercero.
type CreateInput struct {
	Type      string // supplier | client
	Name      string
	VATNumber string
	Email     string
	Phone     string
	Note      string
}

// Create acuña el siguiente código del tipo y persiste el tercero. Una
// colisión de secuencia entre dos sesiones la corta el índice único y llega
// como código duplicado, sin reintento automático.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.Party, error) {
	prefix := entity.PartyPrefix(in.Type)
	if prefix == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	st, err := sequence.Initialize(ctx, uc.codes, prefix)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Party{
		Code:      st.Next(),
		Type:      in.Type,
		Name:      in.Name,
		VATNumber: in.VATNumber,
		Email:     in.Email,
		Phone:     in.Phone,
		Note:      in.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.parties.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get devuelve un tercero por código.
func (uc *UseCase) Get(ctx context.Context, code string) (*entity.Party, error) {
	p, err := uc.parties.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// List devuelve los terceros de un tipo.
func (uc *UseCase) List(ctx context.Context, partyType string) ([]*entity.Party, error) {
	if entity.PartyPrefix(partyType) == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.parties.List(ctx, partyType)
}

// UpdateInput campos modificables; nil = sin cambio. El código es inmutable.
type UpdateInput struct {
	Name      *string
	VATNumber *string
	Email     *string
	Phone     *string
	Note      *string
}

// Update modifica los datos descriptivos de un tercero.
func (uc *UseCase) Update(ctx context.Context, code string, in UpdateInput) (*entity.Party, error) {
	p, err := uc.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.VATNumber != nil {
		p.VATNumber = *in.VATNumber
	}
	if in.Email != nil {
		p.Email = *in.Email
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
	if in.Note != nil {
		p.Note = *in.Note
	}
	p.UpdatedAt = time.Now()
	if err := uc.parties.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
