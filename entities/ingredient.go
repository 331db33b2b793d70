package entities

import (
	"github.com/google/uuid"
)

// Ingredient is reference data. Uniqueness of (name, measurement_unit)
// is checked in the catalog service before insert, the index backs it up.
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name            string    `gorm:"index;uniqueIndex:idx_ingredient_name_unit" json:"name"`
	MeasurementUnit string    `gorm:"uniqueIndex:idx_ingredient_name_unit" json:"measurement_unit"`
}
