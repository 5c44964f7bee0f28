package ordering

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// Stage etapa alcanzada dentro de la transacción de creación de pedido.
type Stage string

const (
	StageStarted         Stage = "started"
	StageOrderInserted   Stage = "order_inserted"
	StageItemsInserted   Stage = "items_inserted"
	StageInvoiceInserted Stage = "invoice_inserted"
	StageCommitted       Stage = "committed"
	StageRolledBack      Stage = "rolled_back"
)

// OrderWithItems resultado de una creación confirmada.
type OrderWithItems struct {
	Order   *entity.Order
	Items   []*entity.OrderItem
	Invoice *entity.Invoice
}

// CreateOrderUseCase crea pedido, líneas y factura como una sola unidad atómica.
type CreateOrderUseCase struct {
	txRunner TxRunner
	builder  *Builder
	ids      *IdentifierGenerator
	metrics  Metrics
	log      zerolog.Logger
}

// NewCreateOrderUseCase construye el caso de uso. metrics puede ser nil.
func NewCreateOrderUseCase(txRunner TxRunner, ids *IdentifierGenerator, metrics Metrics, log zerolog.Logger) *CreateOrderUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &CreateOrderUseCase{
		txRunner: txRunner,
		builder:  NewBuilder(ids),
		ids:      ids,
		metrics:  metrics,
		log:      log.With().Str("component", "ordering").Logger(),
	}
}

// CreateOrderWithItems valida el comando (sin tocar almacenamiento), abre una transacción, inserta
// pedido → líneas → factura pendiente y confirma. Ante cualquier fallo la transacción se revierte y
// el error se devuelve con su causa original: los errores de negocio tal cual y los de almacenamiento
// envueltos en *domain.TxError. No reintenta.
func (uc *CreateOrderUseCase) CreateOrderWithItems(ctx context.Context, cmd CreateOrderCommand) (*OrderWithItems, error) {
	start := time.Now()
	draft, err := uc.builder.Validate(cmd)
	if err != nil {
		uc.metrics.OrderFailed(reason(err))
		return nil, err
	}

	stage := StageStarted
	var out *OrderWithItems
	err = uc.txRunner.RunOrder(ctx, func(repos TxRepos) error {
		agg, err := uc.builder.Build(ctx, repos, draft)
		if err != nil {
			return err
		}

		if err := repos.Orders.Create(ctx, agg.Order); err != nil {
			return numberCollision(err, agg.NumberSupplied)
		}
		stage = StageOrderInserted

		for _, item := range agg.Items {
			if err := repos.OrderItems.Create(ctx, item); err != nil {
				return err
			}
		}
		stage = StageItemsInserted

		number, err := uc.ids.Resolve(ctx, repos.Invoices, draft.CompanyID, KindInvoice, "")
		if err != nil {
			return err
		}
		invoice := &entity.Invoice{
			ID:         uuid.New().String(),
			CompanyID:  draft.CompanyID,
			OrderID:    agg.Order.ID,
			Number:     number,
			Date:       agg.Order.Date,
			Status:     entity.InvoiceStatusPending,
			CreatedAt:  agg.Order.CreatedAt,
			UpdatedAt:  agg.Order.UpdatedAt,
			ModifiedBy: agg.Order.ModifiedBy,
		}
		if err := repos.Invoices.Create(ctx, invoice); err != nil {
			return numberCollision(err, false)
		}
		stage = StageInvoiceInserted

		out = &OrderWithItems{Order: agg.Order, Items: agg.Items, Invoice: invoice}
		return nil
	})
	if err != nil {
		err = classify(stage, err)
		uc.log.Warn().
			Err(err).
			Str("company_id", draft.CompanyID).
			Str("stage", string(stage)).
			Str("state", string(StageRolledBack)).
			Msg("creación de pedido revertida")
		uc.metrics.OrderFailed(reason(err))
		return nil, err
	}

	uc.log.Info().
		Str("company_id", draft.CompanyID).
		Str("order_id", out.Order.ID).
		Str("number", out.Order.Number).
		Str("invoice", out.Invoice.Number).
		Int("items", len(out.Items)).
		Str("state", string(StageCommitted)).
		Msg("pedido creado")
	uc.metrics.OrderCreated(out.Order.Type, time.Since(start))
	return out, nil
}

// numberCollision traduce la violación del índice único de número: un número generado que choca en el
// insert cuenta como agotamiento (transitorio); uno suministrado por el cliente es duplicado.
func numberCollision(err error, supplied bool) error {
	if errors.Is(err, domain.ErrDuplicateIdentifier) && !supplied {
		return fmt.Errorf("%w: %v", domain.ErrIdentifierExhausted, err)
	}
	return err
}

// classify deja pasar los errores de negocio y envuelve el resto como fallo de transacción.
func classify(stage Stage, err error) error {
	if domain.IsBusiness(err) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &domain.TxError{Stage: string(stage), Err: err}
}

func reason(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyOrder):
		return "empty_order"
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, domain.ErrInvalidPrice):
		return "invalid_price"
	case errors.Is(err, domain.ErrInvalidType):
		return "invalid_type"
	case errors.Is(err, domain.ErrDuplicateOrderItem):
		return "duplicate_item"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrDuplicateIdentifier):
		return "duplicate_identifier"
	case errors.Is(err, domain.ErrIdentifierExhausted):
		return "identifier_exhausted"
	case errors.Is(err, domain.ErrTransactionFailure):
		return "transaction_failure"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "other"
	}
}
