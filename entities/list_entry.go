package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	ListKindCart     = "cart"
	ListKindFavorite = "favorite"
)

// ListEntry records membership of a recipe in one of a user's lists.
// Cart and favorites share the table, distinguished by Kind.
type ListEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"uniqueIndex:idx_user_recipe_kind" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"uniqueIndex:idx_user_recipe_kind" json:"recipe_id"`
	Kind      string    `gorm:"uniqueIndex:idx_user_recipe_kind" json:"kind"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
}
