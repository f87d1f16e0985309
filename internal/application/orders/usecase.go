package orders

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
	"github.com/tu-usuario/almacen-pro/internal/domain/sequence"
)

// TxRunner ejecuta una función con repositorios de pedidos atados a una
// transacción, para que el número N/YY se acuñe y persista atómicamente.
type TxRunner interface {
	RunOrders(ctx context.Context, fn func(
		orders repository.PurchaseOrderRepository,
		codes repository.CodeRepository,
	) error) error
}

// UseCase gestiona los pedidos de compra y su numeración anual N/YY.
type UseCase struct {
	tx     TxRunner
	orders repository.PurchaseOrderRepository
	clock  func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx TxRunner, orders repository.PurchaseOrderRepository) *UseCase {
	return &UseCase{tx: tx, orders: orders, clock: time.Now}
}

// CreateInput datos de un pedido de compra nuevo.
type CreateInput struct {
	SupplierCode string
	ItemCode     string
	Description  string
	Quantity     decimal.Decimal
	Unit         string
	Note         string
	Actor        string
}

// Create acuña el siguiente número del año y persiste el pedido en la misma
// transacción. Una colisión de numeración aflora como código duplicado y se
// presenta al operario tal cual: reenviar el formulario vuelve a acuñar.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.PurchaseOrder, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	var order *entity.PurchaseOrder
	err := uc.tx.RunOrders(ctx, func(
		orders repository.PurchaseOrderRepository,
		codes repository.CodeRepository,
	) error {
		now := uc.clock()
		st, err := sequence.InitializeOrders(ctx, codes, now)
		if err != nil {
			return err
		}
		seq, number := st.Next()
		order = &entity.PurchaseOrder{
			Number:       number,
			Seq:          seq,
			Year:         st.Year(),
			SupplierCode: in.SupplierCode,
			ItemCode:     in.ItemCode,
			Description:  in.Description,
			Quantity:     in.Quantity,
			Unit:         in.Unit,
			Note:         in.Note,
			CreatedBy:    in.Actor,
			CreatedAt:    now,
		}
		return orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Duplicate copia un pedido existente con un número recién acuñado. La
// secuencia se re-inicializa desde la persistencia dentro de la transacción:
// tras aparecer un número de origen externo no vale el contador en memoria.
func (uc *UseCase) Duplicate(ctx context.Context, year int, seq int64, actor string) (*entity.PurchaseOrder, error) {
	src, err := uc.Get(ctx, year, seq)
	if err != nil {
		return nil, err
	}
	return uc.Create(ctx, CreateInput{
		SupplierCode: src.SupplierCode,
		ItemCode:     src.ItemCode,
		Description:  src.Description,
		Quantity:     src.Quantity,
		Unit:         src.Unit,
		Note:         src.Note,
		Actor:        actor,
	})
}

// Get devuelve un pedido por año y secuencia.
func (uc *UseCase) Get(ctx context.Context, year int, seq int64) (*entity.PurchaseOrder, error) {
	order, err := uc.orders.Get(ctx, year, seq)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// ListByYear devuelve los pedidos del año (por defecto el año en curso).
func (uc *UseCase) ListByYear(ctx context.Context, year int) ([]*entity.PurchaseOrder, error) {
	if year == 0 {
		year = uc.clock().Year()
	}
	return uc.orders.ListByYear(ctx, year)
}
