package shortlink

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/pkg/recipe"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type mockShortLinkRepository struct {
	createFn             func(ctx context.Context, link *entities.ShortLink) error
	getByRecipeAndLinkFn func(ctx context.Context, recipeID, fullLink string) (*entities.ShortLink, error)
	getByTokenFn         func(ctx context.Context, token string) (*entities.ShortLink, error)
}

func (m *mockShortLinkRepository) CreateShortLink(ctx context.Context, link *entities.ShortLink) error {
	if m.createFn != nil {
		return m.createFn(ctx, link)
	}
	return nil
}

func (m *mockShortLinkRepository) GetByRecipeAndLink(ctx context.Context, recipeID, fullLink string) (*entities.ShortLink, error) {
	if m.getByRecipeAndLinkFn != nil {
		return m.getByRecipeAndLinkFn(ctx, recipeID, fullLink)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShortLinkRepository) GetByToken(ctx context.Context, token string) (*entities.ShortLink, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, gorm.ErrRecordNotFound
}

type mockRecipeRepository struct {
	getByIDFn func(ctx context.Context, id string) (*entities.Recipe, error)
}

func (m *mockRecipeRepository) CreateRecipe(ctx context.Context, r *entities.Recipe, ingredients []entities.IngredientInRecipe, tagIDs []uuid.UUID) error {
	return nil
}

func (m *mockRecipeRepository) ReplaceRecipe(ctx context.Context, r *entities.Recipe, ingredients []entities.IngredientInRecipe, tagIDs []uuid.UUID) error {
	return nil
}

func (m *mockRecipeRepository) DeleteRecipe(ctx context.Context, id string) error { return nil }

func (m *mockRecipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRecipeRepository) GetRecipes(ctx context.Context, query recipe.RecipeQuery, page, limit int) ([]*entities.Recipe, int64, error) {
	return nil, 0, nil
}

func (m *mockRecipeRepository) GetRecipeTags(ctx context.Context, recipeID string) ([]*entities.Tag, error) {
	return nil, nil
}

func (m *mockRecipeRepository) GetIngredientRows(ctx context.Context, recipeID string) ([]*entities.IngredientInRecipe, error) {
	return nil, nil
}

func (m *mockRecipeRepository) GetRecipesByAuthor(ctx context.Context, authorID string, limit int) ([]*entities.Recipe, error) {
	return nil, nil
}

func (m *mockRecipeRepository) CountRecipesByAuthor(ctx context.Context, authorID string) (int64, error) {
	return 0, nil
}

func (m *mockRecipeRepository) IsInList(ctx context.Context, userID, recipeID, kind string) (bool, error) {
	return false, nil
}

func knownRecipeRepo(id uuid.UUID) *mockRecipeRepository {
	return &mockRecipeRepository{
		getByIDFn: func(ctx context.Context, got string) (*entities.Recipe, error) {
			if got == id.String() {
				return &entities.Recipe{ID: id}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
}

func TestGetOrCreate_UnknownRecipe(t *testing.T) {
	svc := NewShortLinkService(&mockShortLinkRepository{}, &mockRecipeRepository{})

	_, err := svc.GetOrCreate(context.Background(), uuid.NewString(), "http://localhost/api/v1/recipes/x")
	if !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
}

func TestGetOrCreate_ReturnsExistingToken(t *testing.T) {
	recipeID := uuid.New()
	fullLink := "http://localhost/api/v1/recipes/" + recipeID.String()

	repo := &mockShortLinkRepository{
		getByRecipeAndLinkFn: func(ctx context.Context, gotRecipe, gotLink string) (*entities.ShortLink, error) {
			if gotRecipe == recipeID.String() && gotLink == fullLink {
				return &entities.ShortLink{Token: "Ab3xYz", RecipeID: recipeID, FullLink: fullLink}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		createFn: func(ctx context.Context, link *entities.ShortLink) error {
			t.Fatal("existing pair must not mint a new token")
			return nil
		},
	}
	svc := NewShortLinkService(repo, knownRecipeRepo(recipeID))

	token, err := svc.GetOrCreate(context.Background(), recipeID.String(), fullLink)
	if err != nil {
		t.Fatalf("GetOrCreate returned error: %v", err)
	}
	if token != "Ab3xYz" {
		t.Fatalf("expected stored token, got %q", token)
	}
}

func TestGetOrCreate_MintsToken(t *testing.T) {
	recipeID := uuid.New()
	fullLink := "http://localhost/api/v1/recipes/" + recipeID.String()

	var stored *entities.ShortLink
	repo := &mockShortLinkRepository{
		createFn: func(ctx context.Context, link *entities.ShortLink) error {
			stored = link
			return nil
		},
	}
	svc := NewShortLinkService(repo, knownRecipeRepo(recipeID))

	token, err := svc.GetOrCreate(context.Background(), recipeID.String(), fullLink)
	if err != nil {
		t.Fatalf("GetOrCreate returned error: %v", err)
	}
	if len(token) != tokenLength {
		t.Fatalf("expected %d-character token, got %q", tokenLength, token)
	}
	for _, r := range token {
		if !strings.ContainsRune(tokenAlphabet, r) {
			t.Fatalf("token %q contains %q outside the alphabet", token, r)
		}
	}
	if stored == nil || stored.Token != token || stored.FullLink != fullLink {
		t.Fatalf("unexpected stored link: %+v", stored)
	}
}

func TestGetOrCreate_RetriesOnCollision(t *testing.T) {
	recipeID := uuid.New()

	lookups := 0
	created := 0
	repo := &mockShortLinkRepository{
		getByTokenFn: func(ctx context.Context, token string) (*entities.ShortLink, error) {
			lookups++
			// First two candidates are already taken.
			if lookups <= 2 {
				return &entities.ShortLink{Token: token}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		createFn: func(ctx context.Context, link *entities.ShortLink) error {
			created++
			return nil
		},
	}
	svc := NewShortLinkService(repo, knownRecipeRepo(recipeID))

	token, err := svc.GetOrCreate(context.Background(), recipeID.String(), "http://localhost/r")
	if err != nil {
		t.Fatalf("GetOrCreate returned error: %v", err)
	}
	if token == "" || created != 1 {
		t.Fatalf("expected a single create after retries, got token %q, %d creates", token, created)
	}
	if lookups != 3 {
		t.Fatalf("expected 3 token lookups, got %d", lookups)
	}
}

func TestGetOrCreate_TokenSpaceExhausted(t *testing.T) {
	recipeID := uuid.New()

	repo := &mockShortLinkRepository{
		getByTokenFn: func(ctx context.Context, token string) (*entities.ShortLink, error) {
			return &entities.ShortLink{Token: token}, nil
		},
	}
	svc := NewShortLinkService(repo, knownRecipeRepo(recipeID))

	_, err := svc.GetOrCreate(context.Background(), recipeID.String(), "http://localhost/r")
	if !errors.Is(err, domain.ErrTokenSpaceExhausted) {
		t.Fatalf("expected ErrTokenSpaceExhausted, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	repo := &mockShortLinkRepository{
		getByTokenFn: func(ctx context.Context, token string) (*entities.ShortLink, error) {
			if token == "Ab3xYz" {
				return &entities.ShortLink{Token: token, FullLink: "http://localhost/api/v1/recipes/1"}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewShortLinkService(repo, &mockRecipeRepository{})

	fullLink, err := svc.Resolve(context.Background(), "Ab3xYz")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if fullLink != "http://localhost/api/v1/recipes/1" {
		t.Fatalf("unexpected full link %q", fullLink)
	}

	if _, err := svc.Resolve(context.Background(), "zzzzzz"); !errors.Is(err, domain.ErrLinkNotFound) {
		t.Fatalf("expected ErrLinkNotFound, got %v", err)
	}
}
