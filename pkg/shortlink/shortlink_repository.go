package shortlink

import (
	"Foodgram-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	ShortLinkRepository interface {
		CreateShortLink(ctx context.Context, link *entities.ShortLink) error
		GetByRecipeAndLink(ctx context.Context, recipeID, fullLink string) (*entities.ShortLink, error)
		GetByToken(ctx context.Context, token string) (*entities.ShortLink, error)
	}

	shortLinkRepository struct {
		db *gorm.DB
	}
)

func NewShortLinkRepository(db *gorm.DB) ShortLinkRepository {
	return &shortLinkRepository{db: db}
}

func (r *shortLinkRepository) CreateShortLink(ctx context.Context, link *entities.ShortLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *shortLinkRepository) GetByRecipeAndLink(ctx context.Context, recipeID, fullLink string) (*entities.ShortLink, error) {
	var link entities.ShortLink
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ? AND full_link = ?", recipeID, fullLink).
		First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *shortLinkRepository) GetByToken(ctx context.Context, token string) (*entities.ShortLink, error) {
	var link entities.ShortLink
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}
