package entities

import (
	"time"

	"github.com/google/uuid"
)

type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	AuthorID    uuid.UUID `json:"author_id"`
	Name        string    `json:"name"`
	Text        string    `gorm:"type:text" json:"text"`
	CookingTime int       `json:"cooking_time"`
	ImageURL    string    `json:"image,omitempty"`
	PubDate     time.Time `gorm:"type:timestamp" json:"pub_date"`

	Author *User `gorm:"foreignKey:AuthorID"`
}

type RecipeTag struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	TagID    uuid.UUID `gorm:"uniqueIndex:idx_tag_recipe" json:"tag_id"`
	RecipeID uuid.UUID `gorm:"uniqueIndex:idx_tag_recipe" json:"recipe_id"`

	Tag    *Tag    `gorm:"foreignKey:TagID"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
}

type IngredientInRecipe struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	IngredientID uuid.UUID `gorm:"uniqueIndex:idx_ingredient_recipe" json:"ingredient_id"`
	RecipeID     uuid.UUID `gorm:"uniqueIndex:idx_ingredient_recipe" json:"recipe_id"`
	Amount       int       `json:"amount"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
	Recipe     *Recipe     `gorm:"foreignKey:RecipeID"`
}
