package recipe

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/internal/utils/storage"
	"Foodgram-Backend/pkg/catalog"
	"Foodgram-Backend/pkg/user"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.WriteRecipeRequest, authorID string) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.WriteRecipeRequest, editorID string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID, editorID, editorRole string) error
		GetRecipeDetail(ctx context.Context, recipeID, viewerID string) (domain.RecipeResponse, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string, page, limit int) ([]domain.RecipeResponse, int64, error)
	}

	recipeService struct {
		recipeRepository  RecipeRepository
		catalogRepository catalog.CatalogRepository
		s3                storage.AwsS3
	}
)

func NewRecipeService(recipeRepository RecipeRepository, catalogRepository catalog.CatalogRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository:  recipeRepository,
		catalogRepository: catalogRepository,
		s3:                s3,
	}
}

// validatedWrite is the outcome of checking a write request against the
// catalogs: resolved tag ids and ingredient rows ready to persist.
type validatedWrite struct {
	tagIDs      []uuid.UUID
	ingredients []entities.IngredientInRecipe
}

func (s *recipeService) validateWrite(ctx context.Context, req domain.WriteRecipeRequest) (validatedWrite, error) {
	if req.CookingTime < domain.CookingTimeMin || req.CookingTime > domain.CookingTimeMax {
		return validatedWrite{}, domain.NewValidationError(
			"cooking_time",
			fmt.Sprintf("cooking time must be between %d and %d minutes", domain.CookingTimeMin, domain.CookingTimeMax),
		)
	}

	if len(req.Tags) == 0 {
		return validatedWrite{}, domain.NewValidationError("tags", "recipe must have at least 1 tag")
	}
	tagIDs := make([]uuid.UUID, 0, len(req.Tags))
	seenTags := map[uuid.UUID]bool{}
	for _, raw := range req.Tags {
		tagID, err := uuid.Parse(raw)
		if err != nil {
			return validatedWrite{}, domain.NewValidationError("tags", "unknown tag id")
		}
		if seenTags[tagID] {
			return validatedWrite{}, domain.NewValidationError("tags", "tags must not repeat")
		}
		seenTags[tagID] = true
		tagIDs = append(tagIDs, tagID)
	}
	tags, err := s.catalogRepository.GetTagsByIDs(ctx, req.Tags)
	if err != nil {
		return validatedWrite{}, err
	}
	if len(tags) != len(tagIDs) {
		return validatedWrite{}, domain.NewValidationError("tags", "unknown tag id")
	}

	if len(req.Ingredients) == 0 {
		return validatedWrite{}, domain.NewValidationError("ingredients", "recipe must have at least 1 ingredient")
	}
	rows := make([]entities.IngredientInRecipe, 0, len(req.Ingredients))
	seenIngredients := map[uuid.UUID]bool{}
	ids := make([]string, 0, len(req.Ingredients))
	for _, item := range req.Ingredients {
		ingredientID, err := uuid.Parse(item.ID)
		if err != nil {
			return validatedWrite{}, domain.NewValidationError("ingredients", "unknown ingredient id")
		}
		if item.Amount < 1 {
			return validatedWrite{}, domain.NewValidationError("amount", "amount must be greater than 0")
		}
		if seenIngredients[ingredientID] {
			return validatedWrite{}, domain.NewValidationError("ingredients", "ingredients must not repeat")
		}
		seenIngredients[ingredientID] = true
		ids = append(ids, item.ID)
		rows = append(rows, entities.IngredientInRecipe{
			IngredientID: ingredientID,
			Amount:       item.Amount,
		})
	}
	ingredients, err := s.catalogRepository.GetIngredientsByIDs(ctx, ids)
	if err != nil {
		return validatedWrite{}, err
	}
	if len(ingredients) != len(rows) {
		return validatedWrite{}, domain.NewValidationError("ingredients", "unknown ingredient id")
	}

	return validatedWrite{tagIDs: tagIDs, ingredients: rows}, nil
}

func (s *recipeService) uploadImage(recipeID uuid.UUID, dataURI string) (string, error) {
	data, contentType, err := utils.DecodeDataURI(dataURI)
	if err != nil {
		return "", domain.NewValidationError("image", "image must be a base64 data URI")
	}
	fileName := fmt.Sprintf("recipe-%s", recipeID.String())
	objectKey, err := s.s3.UploadBytes(fileName, data, contentType, "recipes", storage.AllowImage...)
	if err != nil {
		return "", err
	}
	return s.s3.GetPublicLinkKey(objectKey), nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.WriteRecipeRequest, authorID string) (domain.RecipeResponse, error) {
	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	write, err := s.validateWrite(ctx, req)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	if req.Image == "" {
		return domain.RecipeResponse{}, domain.NewValidationError("image", "image is required")
	}

	recipe := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorUUID,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		PubDate:     time.Now(),
	}

	// The upload happens before the transaction so a storage failure
	// never leaves a half-written recipe behind.
	imageURL, err := s.uploadImage(recipe.ID, req.Image)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	recipe.ImageURL = imageURL

	if err := s.recipeRepository.CreateRecipe(ctx, recipe, write.ingredients, write.tagIDs); err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.buildResponse(ctx, recipe.ID.String(), authorID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.WriteRecipeRequest, editorID string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	if recipe.AuthorID.String() != editorID {
		return domain.RecipeResponse{}, domain.ErrNotRecipeAuthor
	}

	write, err := s.validateWrite(ctx, req)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe.Name = req.Name
	recipe.Text = req.Text
	recipe.CookingTime = req.CookingTime
	if req.Image != "" {
		imageURL, err := s.uploadImage(recipe.ID, req.Image)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		recipe.ImageURL = imageURL
	}
	// Author block would go stale through Save otherwise.
	recipe.Author = nil

	if err := s.recipeRepository.ReplaceRecipe(ctx, recipe, write.ingredients, write.tagIDs); err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.buildResponse(ctx, recipe.ID.String(), editorID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID, editorID, editorRole string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	if recipe.AuthorID.String() != editorID && editorRole != domain.RoleAdmin {
		return domain.ErrNotRecipeAuthor
	}

	return s.recipeRepository.DeleteRecipe(ctx, recipeID)
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID, viewerID string) (domain.RecipeResponse, error) {
	return s.buildResponse(ctx, recipeID, viewerID)
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string, page, limit int) ([]domain.RecipeResponse, int64, error) {
	query := RecipeQuery{
		AuthorID: filter.AuthorID,
		TagSlug:  filter.TagSlug,
	}
	// The membership filters only make sense for a signed-in viewer.
	if viewerID != "" {
		if filter.IsFavorited {
			query.FavoritedBy = viewerID
		}
		if filter.IsInShoppingCart {
			query.InCartBy = viewerID
		}
	}

	recipes, count, err := s.recipeRepository.GetRecipes(ctx, query, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		projection, err := s.projectRecipe(ctx, recipe, viewerID)
		if err != nil {
			return nil, 0, err
		}
		res = append(res, projection)
	}
	return res, count, nil
}

func (s *recipeService) buildResponse(ctx context.Context, recipeID, viewerID string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}
	return s.projectRecipe(ctx, recipe, viewerID)
}

// projectRecipe expands a recipe row into the full read projection:
// tags, ingredient rows joined with catalog data, and viewer-relative
// membership flags (left false for anonymous viewers).
func (s *recipeService) projectRecipe(ctx context.Context, recipe *entities.Recipe, viewerID string) (domain.RecipeResponse, error) {
	tags, err := s.recipeRepository.GetRecipeTags(ctx, recipe.ID.String())
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	tagResponses := make([]domain.TagResponse, 0, len(tags))
	for _, tag := range tags {
		tagResponses = append(tagResponses, catalog.TagResponseFromEntity(tag))
	}

	rows, err := s.recipeRepository.GetIngredientRows(ctx, recipe.ID.String())
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	ingredientResponses := make([]domain.IngredientInRecipeResponse, 0, len(rows))
	for _, row := range rows {
		item := domain.IngredientInRecipeResponse{
			ID:     row.IngredientID.String(),
			Amount: row.Amount,
		}
		if row.Ingredient != nil {
			item.Name = row.Ingredient.Name
			item.MeasurementUnit = row.Ingredient.MeasurementUnit
		}
		ingredientResponses = append(ingredientResponses, item)
	}

	res := domain.RecipeResponse{
		ID:          recipe.ID.String(),
		Tags:        tagResponses,
		Ingredients: ingredientResponses,
		Name:        recipe.Name,
		Image:       recipe.ImageURL,
		Text:        recipe.Text,
		CookingTime: recipe.CookingTime,
		PubDate:     recipe.PubDate,
	}
	if recipe.Author != nil {
		res.Author = user.ResponseFromEntity(recipe.Author)
	}

	if viewerID != "" {
		isFavorited, err := s.recipeRepository.IsInList(ctx, viewerID, res.ID, entities.ListKindFavorite)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		res.IsFavorited = isFavorited

		inCart, err := s.recipeRepository.IsInList(ctx, viewerID, res.ID, entities.ListKindCart)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		res.IsInShoppingCart = inCart
	}

	return res, nil
}

// CompactResponseFromEntity is the short projection shared by cart,
// favorite and subscription payloads.
func CompactResponseFromEntity(recipe *entities.Recipe) domain.CompactRecipeResponse {
	return domain.CompactRecipeResponse{
		ID:          recipe.ID.String(),
		Name:        recipe.Name,
		Image:       recipe.ImageURL,
		CookingTime: recipe.CookingTime,
	}
}
