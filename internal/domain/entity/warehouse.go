package entity

import "time"

// Tipos de almacenamiento (compartidos por bodegas y productos).
const (
	StorageSolid  = "solid"
	StorageLiquid = "liquid"
)

// ValidStorageType indica si t es un tipo de almacenamiento admitido.
func ValidStorageType(t string) bool { return t == StorageSolid || t == StorageLiquid }

// Warehouse representa una bodega de la empresa.
type Warehouse struct {
	ID         string
	CompanyID  string
	Type       string // solid, liquid; vacío si no se especifica
	Name       string
	Address    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
	ModifiedBy *string
}
