package domain

import (
	"errors"
)

var (
	MessageSuccessAddToList      = "recipe added to list"
	MessageSuccessRemoveFromList = "recipe removed from list"
	MessageSuccessShoppingList   = "success get shopping list"
	MessageFailedAddToList       = "failed to add recipe to list"
	MessageFailedRemoveFromList  = "failed to remove recipe from list"
	MessageFailedShoppingList    = "failed to get shopping list"

	ErrAlreadyInList = errors.New("recipe is already in the list")
	ErrNotInList     = errors.New("recipe is not in the list")
)

// ShoppingItem is one aggregated bucket of the shopping list. Buckets
// are keyed by ingredient display name, in first-seen order.
type ShoppingItem struct {
	Ingredient string `json:"ingredient"`
	Amount     int    `json:"amount"`
}
