package recipe

import (
	"Foodgram-Backend/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// RecipeQuery narrows recipe listings. Zero values mean "no filter".
	RecipeQuery struct {
		AuthorID    string
		TagSlug     string
		FavoritedBy string
		InCartBy    string
	}

	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []entities.IngredientInRecipe, tagIDs []uuid.UUID) error
		ReplaceRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []entities.IngredientInRecipe, tagIDs []uuid.UUID) error
		DeleteRecipe(ctx context.Context, id string) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, query RecipeQuery, page, limit int) ([]*entities.Recipe, int64, error)
		GetRecipeTags(ctx context.Context, recipeID string) ([]*entities.Tag, error)
		GetIngredientRows(ctx context.Context, recipeID string) ([]*entities.IngredientInRecipe, error)
		GetRecipesByAuthor(ctx context.Context, authorID string, limit int) ([]*entities.Recipe, error)
		CountRecipesByAuthor(ctx context.Context, authorID string) (int64, error)
		IsInList(ctx context.Context, userID, recipeID, kind string) (bool, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// CreateRecipe persists the recipe row, its ingredient rows and its tag
// associations as one atomic unit.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []entities.IngredientInRecipe, tagIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		return r.insertAssociations(tx, recipe.ID, ingredients, tagIDs)
	})
}

// ReplaceRecipe updates the recipe row and swaps out the full tag and
// ingredient sets. Old associations are cleared, not merged.
func (r *recipeRepository) ReplaceRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []entities.IngredientInRecipe, tagIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(recipe).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.IngredientInRecipe{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeTag{}).Error; err != nil {
			return err
		}
		return r.insertAssociations(tx, recipe.ID, ingredients, tagIDs)
	})
}

func (r *recipeRepository) insertAssociations(tx *gorm.DB, recipeID uuid.UUID, ingredients []entities.IngredientInRecipe, tagIDs []uuid.UUID) error {
	for i := range ingredients {
		ingredients[i].RecipeID = recipeID
	}
	if err := tx.Create(&ingredients).Error; err != nil {
		return err
	}

	recipeTags := make([]entities.RecipeTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		recipeTags = append(recipeTags, entities.RecipeTag{
			TagID:    tagID,
			RecipeID: recipeID,
		})
	}
	return tx.Create(&recipeTags).Error
}

// DeleteRecipe removes the recipe together with its join rows, list
// memberships and short links.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.IngredientInRecipe{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.RecipeTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.ListEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.ShortLink{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Recipe{}).Error
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, query RecipeQuery, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	base := r.db.WithContext(ctx).Model(&entities.Recipe{})
	if query.AuthorID != "" {
		base = base.Where("recipes.author_id = ?", query.AuthorID)
	}
	if query.TagSlug != "" {
		base = base.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug = ?", query.TagSlug)
	}
	if query.FavoritedBy != "" {
		base = base.Where(
			"recipes.id IN (?)",
			r.db.Model(&entities.ListEntry{}).
				Select("recipe_id").
				Where("user_id = ? AND kind = ?", query.FavoritedBy, entities.ListKindFavorite),
		)
	}
	if query.InCartBy != "" {
		base = base.Where(
			"recipes.id IN (?)",
			r.db.Model(&entities.ListEntry{}).
				Select("recipe_id").
				Where("user_id = ? AND kind = ?", query.InCartBy, entities.ListKindCart),
		)
	}

	if err := base.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := base.
		Preload("Author").
		Offset(offset).
		Limit(limit).
		Order("pub_date desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) GetRecipeTags(ctx context.Context, recipeID string) ([]*entities.Tag, error) {
	var tags []*entities.Tag
	if err := r.db.WithContext(ctx).
		Model(&entities.Tag{}).
		Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
		Where("recipe_tags.recipe_id = ?", recipeID).
		Order("tags.name ASC").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *recipeRepository) GetIngredientRows(ctx context.Context, recipeID string) ([]*entities.IngredientInRecipe, error) {
	var rows []*entities.IngredientInRecipe
	if err := r.db.WithContext(ctx).
		Preload("Ingredient").
		Where("recipe_id = ?", recipeID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *recipeRepository) GetRecipesByAuthor(ctx context.Context, authorID string, limit int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	query := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("pub_date desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) CountRecipesByAuthor(ctx context.Context, authorID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *recipeRepository) IsInList(ctx context.Context, userID, recipeID, kind string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.ListEntry{}).
		Where("user_id = ? AND recipe_id = ? AND kind = ?", userID, recipeID, kind).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
