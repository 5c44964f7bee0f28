package dto

import "time"

// UpdateCompanyRequest entrada para actualizar la empresa del token.
type UpdateCompanyRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=200"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
