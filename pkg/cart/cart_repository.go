package cart

import (
	"Foodgram-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	// ListRepository stores per-user recipe memberships. Cart and
	// favorites share it, distinguished by the kind column.
	ListRepository interface {
		CreateEntry(ctx context.Context, entry *entities.ListEntry) error
		DeleteEntry(ctx context.Context, userID, recipeID, kind string) error
		EntryExists(ctx context.Context, userID, recipeID, kind string) (bool, error)
		GetEntries(ctx context.Context, userID, kind string) ([]*entities.ListEntry, error)
	}

	listRepository struct {
		db *gorm.DB
	}
)

func NewListRepository(db *gorm.DB) ListRepository {
	return &listRepository{db: db}
}

func (r *listRepository) CreateEntry(ctx context.Context, entry *entities.ListEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *listRepository) DeleteEntry(ctx context.Context, userID, recipeID, kind string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ? AND kind = ?", userID, recipeID, kind).
		Delete(&entities.ListEntry{}).Error
}

func (r *listRepository) EntryExists(ctx context.Context, userID, recipeID, kind string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.ListEntry{}).
		Where("user_id = ? AND recipe_id = ? AND kind = ?", userID, recipeID, kind).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *listRepository) GetEntries(ctx context.Context, userID, kind string) ([]*entities.ListEntry, error) {
	var entries []*entities.ListEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND kind = ?", userID, kind).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
