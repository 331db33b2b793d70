package catalog

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"
)

type mockCatalogRepository struct {
	createTagFn                  func(ctx context.Context, tag *entities.Tag) error
	getTagByNameFn               func(ctx context.Context, name string) (*entities.Tag, error)
	getTagBySlugFn               func(ctx context.Context, slug string) (*entities.Tag, error)
	createIngredientFn           func(ctx context.Context, ingredient *entities.Ingredient) error
	getIngredientByNameAndUnitFn func(ctx context.Context, name, unit string) (*entities.Ingredient, error)
}

func (m *mockCatalogRepository) CreateTag(ctx context.Context, tag *entities.Tag) error {
	if m.createTagFn != nil {
		return m.createTagFn(ctx, tag)
	}
	return nil
}

func (m *mockCatalogRepository) GetTags(ctx context.Context) ([]*entities.Tag, error) {
	return nil, nil
}

func (m *mockCatalogRepository) GetTagByID(ctx context.Context, id string) (*entities.Tag, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCatalogRepository) GetTagByName(ctx context.Context, name string) (*entities.Tag, error) {
	if m.getTagByNameFn != nil {
		return m.getTagByNameFn(ctx, name)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCatalogRepository) GetTagBySlug(ctx context.Context, slug string) (*entities.Tag, error) {
	if m.getTagBySlugFn != nil {
		return m.getTagBySlugFn(ctx, slug)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCatalogRepository) GetTagsByIDs(ctx context.Context, ids []string) ([]*entities.Tag, error) {
	return nil, nil
}

func (m *mockCatalogRepository) CreateIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	if m.createIngredientFn != nil {
		return m.createIngredientFn(ctx, ingredient)
	}
	return nil
}

func (m *mockCatalogRepository) GetIngredients(ctx context.Context, namePrefix string) ([]*entities.Ingredient, error) {
	return nil, nil
}

func (m *mockCatalogRepository) GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCatalogRepository) GetIngredientByNameAndUnit(ctx context.Context, name, unit string) (*entities.Ingredient, error) {
	if m.getIngredientByNameAndUnitFn != nil {
		return m.getIngredientByNameAndUnitFn(ctx, name, unit)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCatalogRepository) GetIngredientsByIDs(ctx context.Context, ids []string) ([]*entities.Ingredient, error) {
	return nil, nil
}

func TestCreateTag_SlugPattern(t *testing.T) {
	svc := NewCatalogService(&mockCatalogRepository{})

	for _, slug := range []string{"", "has space", "кириллица", "semi;colon"} {
		_, err := svc.CreateTag(context.Background(), domain.CreateTagRequest{Name: "Breakfast", Slug: slug})
		var validationErr *domain.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("slug %q: expected ValidationError, got %v", slug, err)
		}
		if _, ok := validationErr.Fields["slug"]; !ok {
			t.Fatalf("slug %q: expected error on slug field, got %v", slug, validationErr.Fields)
		}
	}

	res, err := svc.CreateTag(context.Background(), domain.CreateTagRequest{Name: "Breakfast", Slug: "break-fast_1"})
	if err != nil {
		t.Fatalf("valid slug rejected: %v", err)
	}
	if res.Slug != "break-fast_1" {
		t.Fatalf("unexpected tag response: %+v", res)
	}
}

func TestCreateTag_DuplicateName(t *testing.T) {
	repo := &mockCatalogRepository{
		getTagByNameFn: func(ctx context.Context, name string) (*entities.Tag, error) {
			return &entities.Tag{Name: name}, nil
		},
	}
	svc := NewCatalogService(repo)

	_, err := svc.CreateTag(context.Background(), domain.CreateTagRequest{Name: "Breakfast", Slug: "breakfast"})
	if !errors.Is(err, domain.ErrTagExists) {
		t.Fatalf("expected ErrTagExists, got %v", err)
	}
}

func TestCreateTag_DuplicateSlugRace(t *testing.T) {
	repo := &mockCatalogRepository{
		createTagFn: func(ctx context.Context, tag *entities.Tag) error {
			return gorm.ErrDuplicatedKey
		},
	}
	svc := NewCatalogService(repo)

	_, err := svc.CreateTag(context.Background(), domain.CreateTagRequest{Name: "Breakfast", Slug: "breakfast"})
	if !errors.Is(err, domain.ErrTagExists) {
		t.Fatalf("expected ErrTagExists on unique index hit, got %v", err)
	}
}

func TestCreateIngredient_DuplicatePair(t *testing.T) {
	repo := &mockCatalogRepository{
		getIngredientByNameAndUnitFn: func(ctx context.Context, name, unit string) (*entities.Ingredient, error) {
			if name == "flour" && unit == "g" {
				return &entities.Ingredient{Name: name, MeasurementUnit: unit}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewCatalogService(repo)

	_, err := svc.CreateIngredient(context.Background(), domain.CreateIngredientRequest{Name: "flour", MeasurementUnit: "g"})
	if !errors.Is(err, domain.ErrIngredientExists) {
		t.Fatalf("expected ErrIngredientExists, got %v", err)
	}

	// Same name under a different unit is a distinct catalog row.
	res, err := svc.CreateIngredient(context.Background(), domain.CreateIngredientRequest{Name: "flour", MeasurementUnit: "kg"})
	if err != nil {
		t.Fatalf("distinct unit rejected: %v", err)
	}
	if res.Name != "flour" || res.MeasurementUnit != "kg" {
		t.Fatalf("unexpected ingredient response: %+v", res)
	}
}

func TestGetTag_NotFound(t *testing.T) {
	svc := NewCatalogService(&mockCatalogRepository{})

	if _, err := svc.GetTag(context.Background(), "00000000-0000-0000-0000-000000000000"); !errors.Is(err, domain.ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}
	if _, err := svc.GetIngredient(context.Background(), "00000000-0000-0000-0000-000000000000"); !errors.Is(err, domain.ErrIngredientNotFound) {
		t.Fatalf("expected ErrIngredientNotFound, got %v", err)
	}
}
