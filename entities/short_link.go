package entities

import (
	"github.com/google/uuid"
)

type ShortLink struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Token    string    `gorm:"uniqueIndex" json:"token"`
	RecipeID uuid.UUID `gorm:"index" json:"recipe_id"`
	FullLink string    `json:"full_link"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
}
