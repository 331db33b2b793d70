package cart

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/pkg/recipe"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CartService interface {
		AddToList(ctx context.Context, kind, userID, recipeID string) (domain.CompactRecipeResponse, error)
		RemoveFromList(ctx context.Context, kind, userID, recipeID string) error
		ShoppingList(ctx context.Context, userID string) ([]domain.ShoppingItem, error)
		RenderCSV(items []domain.ShoppingItem) ([]byte, error)
	}

	cartService struct {
		listRepository   ListRepository
		recipeRepository recipe.RecipeRepository
	}
)

func NewCartService(listRepository ListRepository, recipeRepository recipe.RecipeRepository) CartService {
	return &cartService{
		listRepository:   listRepository,
		recipeRepository: recipeRepository,
	}
}

func (s *cartService) AddToList(ctx context.Context, kind, userID, recipeID string) (domain.CompactRecipeResponse, error) {
	found, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CompactRecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.CompactRecipeResponse{}, err
	}

	exists, err := s.listRepository.EntryExists(ctx, userID, recipeID, kind)
	if err != nil {
		return domain.CompactRecipeResponse{}, err
	}
	if exists {
		return domain.CompactRecipeResponse{}, domain.ErrAlreadyInList
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.CompactRecipeResponse{}, domain.ErrParseUUID
	}

	entry := &entities.ListEntry{
		UserID:    userUUID,
		RecipeID:  found.ID,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
	if err := s.listRepository.CreateEntry(ctx, entry); err != nil {
		// A concurrent add can still hit the unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.CompactRecipeResponse{}, domain.ErrAlreadyInList
		}
		return domain.CompactRecipeResponse{}, err
	}

	return recipe.CompactResponseFromEntity(found), nil
}

func (s *cartService) RemoveFromList(ctx context.Context, kind, userID, recipeID string) error {
	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	exists, err := s.listRepository.EntryExists(ctx, userID, recipeID, kind)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotInList
	}

	return s.listRepository.DeleteEntry(ctx, userID, recipeID, kind)
}

// ShoppingList walks the user's cart, fans out to each recipe's
// ingredient rows and merges buckets by display name, summing amounts.
// Buckets keep the order the ingredient was first seen in; an empty
// cart yields an empty list.
func (s *cartService) ShoppingList(ctx context.Context, userID string) ([]domain.ShoppingItem, error) {
	entries, err := s.listRepository.GetEntries(ctx, userID, entities.ListKindCart)
	if err != nil {
		return nil, err
	}

	items := []domain.ShoppingItem{}
	index := map[string]int{}
	for _, entry := range entries {
		rows, err := s.recipeRepository.GetIngredientRows(ctx, entry.RecipeID.String())
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if row.Ingredient == nil {
				continue
			}
			name := row.Ingredient.Name
			if i, ok := index[name]; ok {
				items[i].Amount += row.Amount
				continue
			}
			index[name] = len(items)
			items = append(items, domain.ShoppingItem{
				Ingredient: name,
				Amount:     row.Amount,
			})
		}
	}
	return items, nil
}

// RenderCSV writes two columns (ingredient, total amount) without a
// header row, preserving aggregator order.
func (s *cartService) RenderCSV(items []domain.ShoppingItem) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	for _, item := range items {
		if err := writer.Write([]string{item.Ingredient, strconv.Itoa(item.Amount)}); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
