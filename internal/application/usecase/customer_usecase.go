package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// CustomerUseCase CRUD de clientes y proveedores.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un cliente en la empresa.
func (uc *CustomerUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if !entity.ValidCustomerType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	customer := &entity.Customer{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		Type:       in.Type,
		Name:       in.Name,
		Email:      in.Email,
		CreatedAt:  now,
		UpdatedAt:  now,
		ModifiedBy: &userID,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente de la empresa.
func (uc *CustomerUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.owned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes de la empresa con paginación.
func (uc *CustomerUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.CustomerListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza un cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, companyID, userID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.owned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Type != nil {
		if !entity.ValidCustomerType(*in.Type) {
			return nil, domain.ErrInvalidInput
		}
		customer.Type = *in.Type
	}
	if in.Name != nil {
		customer.Name = *in.Name
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	customer.UpdatedAt = time.Now().UTC()
	customer.ModifiedBy = &userID
	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Delete elimina (soft) un cliente.
func (uc *CustomerUseCase) Delete(ctx context.Context, companyID, userID, id string) error {
	if _, err := uc.owned(ctx, companyID, id); err != nil {
		return err
	}
	return uc.repo.SoftDelete(ctx, id, userID)
}

// HardDelete borra físicamente un cliente. Falla con ErrConflict si tiene pedidos.
func (uc *CustomerUseCase) HardDelete(ctx context.Context, companyID, id string) error {
	if _, err := uc.owned(ctx, companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *CustomerUseCase) owned(ctx context.Context, companyID, id string) (*entity.Customer, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return customer, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Type:      c.Type,
		Name:      c.Name,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
