package dto

import "time"

// CreateUserRequest entrada para crear un usuario en la empresa del token (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Role     string `json:"role" validate:"required,oneof=OWNER OPERATOR VIEWER owner operator viewer"`
}

// RegisterRequest entrada para registro. Sin company_id se crea la empresa (CompanyName) y el usuario queda como OWNER.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	Name        string `json:"name" validate:"omitempty,max=200"`
	CompanyID   string `json:"company_id" validate:"omitempty,uuid"`
	CompanyName string `json:"company_name" validate:"required_without=CompanyID,omitempty,min=1,max=200"`
}

// UpdateUserRequest entrada para actualizar nombre y rol. El email y la contraseña no se cambian aquí.
type UpdateUserRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=200"`
	Role *string `json:"role" validate:"omitempty,oneof=OWNER OPERATOR VIEWER owner operator viewer"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
