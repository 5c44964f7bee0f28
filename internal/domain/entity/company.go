package entity

import "time"

// Company representa una organización/tenant del sistema. Todo dato de negocio cuelga de una Company.
type Company struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
