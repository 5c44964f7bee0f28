package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// InvoiceUseCase consultas y cambios de estado de facturas. Las facturas solo nacen con su pedido.
type InvoiceUseCase struct {
	invoiceRepo repository.InvoiceRepository
	itemRepo    repository.OrderItemRepository
	orders      OrderReader
}

// NewInvoiceUseCase construye el caso de uso. orders solo debe devolver pedidos vivos.
func NewInvoiceUseCase(invoiceRepo repository.InvoiceRepository, itemRepo repository.OrderItemRepository, orders OrderReader) *InvoiceUseCase {
	return &InvoiceUseCase{invoiceRepo: invoiceRepo, itemRepo: itemRepo, orders: orders}
}

// List lista facturas de la empresa con paginación.
func (uc *InvoiceUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.InvoiceListResponse, error) {
	list, err := uc.invoiceRepo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toInvoiceResponse(inv, nil))
	}
	return &dto.InvoiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Get devuelve la factura con el total calculado desde las líneas del pedido.
func (uc *InvoiceUseCase) Get(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.owned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	items, err := uc.itemRepo.ListByOrder(ctx, inv.OrderID)
	if err != nil {
		return nil, err
	}
	total := orderTotal(items)
	return toInvoiceResponse(inv, &total), nil
}

// UpdateStatus cambia el estado (pending, paid, cancelled).
func (uc *InvoiceUseCase) UpdateStatus(ctx context.Context, companyID, userID, id string, in dto.UpdateInvoiceStatusRequest) (*dto.InvoiceResponse, error) {
	if !entity.ValidInvoiceStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	inv, err := uc.owned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := uc.invoiceRepo.UpdateStatus(ctx, inv.ID, in.Status, userID); err != nil {
		return nil, err
	}
	inv.Status = in.Status
	inv.UpdatedAt = time.Now().UTC()
	return toInvoiceResponse(inv, nil), nil
}

// SoftDelete elimina (soft) la factura. Un pedido vivo siempre conserva la suya: mientras el pedido
// exista la eliminación falla con ErrConflict.
func (uc *InvoiceUseCase) SoftDelete(ctx context.Context, companyID, userID, id string) error {
	inv, err := uc.detached(ctx, companyID, id)
	if err != nil {
		return err
	}
	return uc.invoiceRepo.SoftDelete(ctx, inv.ID, userID)
}

// Delete borra físicamente la factura con la misma restricción que SoftDelete.
func (uc *InvoiceUseCase) Delete(ctx context.Context, companyID, id string) error {
	inv, err := uc.detached(ctx, companyID, id)
	if err != nil {
		return err
	}
	return uc.invoiceRepo.Delete(ctx, inv.ID)
}

// detached devuelve la factura solo si su pedido ya no está vivo.
func (uc *InvoiceUseCase) detached(ctx context.Context, companyID, id string) (*entity.Invoice, error) {
	inv, err := uc.owned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	order, err := uc.orders.GetByID(ctx, inv.OrderID)
	if err != nil {
		return nil, err
	}
	if order != nil {
		return nil, fmt.Errorf("%w: el pedido %s sigue vigente", domain.ErrConflict, order.Number)
	}
	return inv, nil
}

func (uc *InvoiceUseCase) owned(ctx context.Context, companyID, id string) (*entity.Invoice, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

func orderTotal(items []*entity.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Total())
	}
	return total
}

func toInvoiceResponse(inv *entity.Invoice, total *decimal.Decimal) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:        inv.ID,
		CompanyID: inv.CompanyID,
		OrderID:   inv.OrderID,
		Number:    inv.Number,
		Date:      inv.Date,
		Status:    inv.Status,
		Total:     total,
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}
}
