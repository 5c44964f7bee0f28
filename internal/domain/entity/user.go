package entity

import (
	"fmt"
	"strings"
	"time"
)

// Role rol de un usuario dentro de su empresa.
type Role string

// Roles válidos para User.
const (
	RoleOwner    Role = "OWNER"
	RoleOperator Role = "OPERATOR"
	RoleViewer   Role = "VIEWER"
)

// ParseRole convierte el texto del claim JWT o del request en un Role. No distingue mayúsculas.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleOwner, RoleOperator, RoleViewer:
		return r, nil
	default:
		return "", fmt.Errorf("rol desconocido %q", s)
	}
}

// CanWrite indica si el rol puede crear o modificar datos.
func (r Role) CanWrite() bool { return r == RoleOwner || r == RoleOperator }

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}
