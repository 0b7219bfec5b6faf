package entity

import "time"

// Company representa una organización/tenant del sistema.
// AllowNegativeStock relaja la invariante de stock no negativo para toda la empresa (por defecto false).
type Company struct {
	ID                 string
	Name               string
	AllowNegativeStock bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
