package parties_test

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-pro/internal/application/parties"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

type fakeParties struct {
	byCode map[string]*entity.Party
}

func newFakeParties() *fakeParties {
	return &fakeParties{byCode: make(map[string]*entity.Party)}
}

func (f *fakeParties) Create(_ context.Context, p *entity.Party) error {
	if _, ok := f.byCode[p.Code]; ok {
		return domain.ErrDuplicateCode
	}
	cp := *p
	f.byCode[p.Code] = &cp
	return nil
}

func (f *fakeParties) GetByCode(_ context.Context, code string) (*entity.Party, error) {
	p, ok := f.byCode[code]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeParties) List(_ context.Context, partyType string) ([]*entity.Party, error) {
	var out []*entity.Party
	for _, p := range f.byCode {
		if p.Type == partyType {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeParties) Update(_ context.Context, p *entity.Party) error {
	if _, ok := f.byCode[p.Code]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	f.byCode[p.Code] = &cp
	return nil
}

type fakePartyCodes struct {
	parties *fakeParties
}

func (f *fakePartyCodes) MaxCodeNumber(_ context.Context, prefix string) (int64, error) {
	var max int64
	for code := range f.parties.byCode {
		if !strings.HasPrefix(code, prefix+"-") {
			continue
		}
		n, err := strconv.ParseInt(strings.TrimPrefix(code, prefix+"-"), 10, 64)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max, nil
}

func (f *fakePartyCodes) MaxOrderNumber(_ context.Context, _ int) (int64, error) {
	return 0, nil
}

func newPartyUseCase() (*parties.UseCase, *fakeParties) {
	repo := newFakeParties()
	return parties.NewUseCase(repo, &fakePartyCodes{parties: repo}), repo
}

func TestParties_CodigosPorTipo(t *testing.T) {
	uc, _ := newPartyUseCase()
	ctx := context.Background()

	proveedor, err := uc.Create(ctx, parties.CreateInput{Type: "supplier", Name: "Cartonera Norte"})
	require.NoError(t, err)
	cliente, err := uc.Create(ctx, parties.CreateInput{Type: "client", Name: "Imprenta Sur"})
	require.NoError(t, err)
	segundo, err := uc.Create(ctx, parties.CreateInput{Type: "supplier", Name: "Tintas del Este"})
	require.NoError(t, err)

	assert.Equal(t, "FOR-001", proveedor.Code)
	assert.Equal(t, "CLI-001", cliente.Code, "clientes y proveedores llevan secuencias separadas")
	assert.Equal(t, "FOR-002", segundo.Code)
}

func TestParties_TipoDesconocidoRechazado(t *testing.T) {
	uc, _ := newPartyUseCase()

	_, err := uc.Create(context.Background(), parties.CreateInput{Type: "carrier", Name: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.List(context.Background(), "carrier")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParties_UpdateNoTocaElCodigo(t *testing.T) {
	uc, _ := newPartyUseCase()
	ctx := context.Background()

	p, err := uc.Create(ctx, parties.CreateInput{Type: "supplier", Name: "Cartonera Norte"})
	require.NoError(t, err)

	nuevoNombre := "Cartonera Norte S.L."
	actualizado, err := uc.Update(ctx, p.Code, parties.UpdateInput{Name: &nuevoNombre})
	require.NoError(t, err)
	assert.Equal(t, p.Code, actualizado.Code)
	assert.Equal(t, nuevoNombre, actualizado.Name)

	_, err = uc.Update(ctx, "FOR-999", parties.UpdateInput{Name: &nuevoNombre})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
