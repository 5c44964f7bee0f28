package ordering

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// OrderUseCase consultas y mantenimiento de pedidos ya creados.
type OrderUseCase struct {
	txRunner TxRunner
	orders   repository.OrderRepository
	items    repository.OrderItemRepository
	invoices repository.InvoiceRepository
}

// NewOrderUseCase construye el caso de uso. txRunner se usa para las modificaciones de cabecera,
// que tocan pedido y factura a la vez.
func NewOrderUseCase(
	txRunner TxRunner,
	orders repository.OrderRepository,
	items repository.OrderItemRepository,
	invoices repository.InvoiceRepository,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner: txRunner,
		orders:   orders,
		items:    items,
		invoices: invoices,
	}
}

// List lista pedidos de la empresa con paginación y total.
func (uc *OrderUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.OrderListResponse, error) {
	list, err := uc.orders.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.orders.CountByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *ToOrderResponse(o, nil, nil))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Get devuelve el pedido con sus líneas y su factura.
func (uc *OrderUseCase) Get(ctx context.Context, companyID, id string) (*dto.OrderResponse, error) {
	order, err := uc.owned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	items, err := uc.items.ListByOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	invoice, err := uc.invoices.GetByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order, items, invoice), nil
}

// Items lista las líneas de un pedido de la empresa.
func (uc *OrderUseCase) Items(ctx context.Context, companyID, id string) ([]dto.OrderItemResponse, error) {
	order, err := uc.owned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	items, err := uc.items.ListByOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	out := toItemResponses(items)
	if out == nil {
		out = []dto.OrderItemResponse{}
	}
	return out, nil
}

// Update modifica la cabecera dentro de una transacción. Si cambia el número se vuelve a verificar su
// unicidad en la empresa; si cambia la fecha, la factura del pedido toma la misma fecha.
func (uc *OrderUseCase) Update(ctx context.Context, companyID, userID, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	var orderType entity.OrderType
	if in.Type != nil {
		t, err := entity.ParseOrderType(*in.Type)
		if err != nil {
			return nil, err
		}
		orderType = t
	}
	var number string
	if in.Number != nil {
		n, err := checkNumber(*in.Number)
		if err != nil {
			return nil, err
		}
		if n == "" {
			return nil, domain.ErrInvalidInput
		}
		number = n
	}

	var out *entity.Order
	err := uc.txRunner.RunOrder(ctx, func(repos TxRepos) error {
		order, err := lookup(ctx, id, repos.Orders.GetByID)
		if err != nil {
			return err
		}
		if order.CompanyID != companyID {
			return domain.ErrNotFound
		}
		if orderType != "" {
			order.Type = orderType
		}
		if number != "" && number != order.Number {
			taken, err := repos.Orders.NumberExists(ctx, companyID, number)
			if err != nil {
				return err
			}
			if taken {
				return domain.ErrDuplicateIdentifier
			}
			order.Number = number
		}
		if in.CustomerID != nil && *in.CustomerID != order.CustomerID {
			c, err := lookup(ctx, *in.CustomerID, repos.Customers.GetByID)
			if err != nil {
				return err
			}
			if c.CompanyID != companyID {
				return domain.ErrForbidden
			}
			order.CustomerID = c.ID
		}
		if in.WarehouseID != nil && *in.WarehouseID != order.WarehouseID {
			w, err := lookup(ctx, *in.WarehouseID, repos.Warehouses.GetByID)
			if err != nil {
				return err
			}
			if w.CompanyID != companyID {
				return domain.ErrForbidden
			}
			order.WarehouseID = w.ID
		}
		dateChanged := false
		if in.Date != nil && !in.Date.IsZero() && !in.Date.UTC().Equal(order.Date) {
			order.Date = in.Date.UTC()
			dateChanged = true
		}
		order.UpdatedAt = time.Now().UTC()
		order.ModifiedBy = optional(userID)
		if err := repos.Orders.Update(ctx, order); err != nil {
			return err
		}
		if dateChanged {
			if err := repos.Invoices.UpdateDate(ctx, order.ID, order.Date, userID); err != nil {
				return err
			}
		}
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(out, nil, nil), nil
}

// SoftDelete marca el pedido como eliminado; su número queda libre para reutilizarse.
func (uc *OrderUseCase) SoftDelete(ctx context.Context, companyID, userID, id string) error {
	order, err := uc.owned(ctx, companyID, id)
	if err != nil {
		return err
	}
	return uc.orders.SoftDelete(ctx, order.ID, userID)
}

// Delete borra físicamente el pedido y sus líneas. Falla con ErrConflict si tiene factura.
func (uc *OrderUseCase) Delete(ctx context.Context, companyID, id string) error {
	order, err := uc.owned(ctx, companyID, id)
	if err != nil {
		return err
	}
	return uc.orders.Delete(ctx, order.ID)
}

func (uc *OrderUseCase) owned(ctx context.Context, companyID, id string) (*entity.Order, error) {
	order, err := lookup(ctx, id, uc.orders.GetByID)
	if err != nil {
		return nil, err
	}
	if order.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// NewCommand arma el comando de creación a partir del body HTTP y el contexto del token.
func NewCommand(companyID, userID string, in dto.CreateOrderRequest) CreateOrderCommand {
	items := make([]ItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, ItemInput{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.Price})
	}
	return CreateOrderCommand{
		CompanyID:   companyID,
		UserID:      userID,
		Type:        in.Type,
		CustomerID:  in.CustomerID,
		WarehouseID: in.WarehouseID,
		Date:        in.Date,
		Number:      in.Number,
		Items:       items,
	}
}

// ToOrderResponse convierte el pedido; items e invoice son opcionales.
func ToOrderResponse(o *entity.Order, items []*entity.OrderItem, invoice *entity.Invoice) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:          o.ID,
		CompanyID:   o.CompanyID,
		Number:      o.Number,
		Type:        string(o.Type),
		CustomerID:  o.CustomerID,
		WarehouseID: o.WarehouseID,
		Date:        o.Date,
		Items:       toItemResponses(items),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	if invoice != nil {
		resp.Invoice = &dto.InvoiceSummary{ID: invoice.ID, Number: invoice.Number, Status: invoice.Status}
	}
	return resp
}

func toItemResponses(items []*entity.OrderItem) []dto.OrderItemResponse {
	if len(items) == 0 {
		return nil
	}
	out := make([]dto.OrderItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.OrderItemResponse{
			ID:        it.ID,
			OrderID:   it.OrderID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return out
}
