package usecase

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

const maxReportLimit = 100

// ReportUseCase reportes de ventas sobre pedidos vivos de la empresa.
type ReportUseCase struct {
	repo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// BestsellingProducts productos ordenados por cantidad pedida (desc).
func (uc *ReportUseCase) BestsellingProducts(ctx context.Context, companyID string, limit int) ([]dto.BestsellingProductResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > maxReportLimit {
		limit = maxReportLimit
	}
	rows, err := uc.repo.BestsellingProducts(ctx, companyID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BestsellingProductResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.BestsellingProductResponse{
			ProductID:    r.ProductID,
			Name:         r.Name,
			TotalOrdered: r.TotalOrdered,
			Revenue:      r.Revenue,
		})
	}
	return out, nil
}

// TopCustomer cliente con más pedidos. ErrNotFound si la empresa no tiene pedidos.
func (uc *ReportUseCase) TopCustomer(ctx context.Context, companyID string) (*dto.TopCustomerResponse, error) {
	row, err := uc.repo.TopCustomerByOrders(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.TopCustomerResponse{CustomerID: row.CustomerID, Name: row.Name, OrderCount: row.OrderCount}, nil
}

// TopProductPerWarehouse producto más pedido en cada bodega.
func (uc *ReportUseCase) TopProductPerWarehouse(ctx context.Context, companyID string) ([]dto.WarehouseTopProductResponse, error) {
	rows, err := uc.repo.TopProductPerWarehouse(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseTopProductResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.WarehouseTopProductResponse{
			WarehouseID:   r.WarehouseID,
			WarehouseName: r.WarehouseName,
			ProductID:     r.ProductID,
			ProductName:   r.ProductName,
			TotalOrdered:  r.TotalOrdered,
		})
	}
	return out, nil
}
