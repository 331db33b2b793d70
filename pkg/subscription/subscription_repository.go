package subscription

import (
	"Foodgram-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	SubscriptionRepository interface {
		CreateSubscription(ctx context.Context, sub *entities.Subscription) error
		DeleteSubscription(ctx context.Context, subscriberID, subscribedID string) error
		SubscriptionExists(ctx context.Context, subscriberID, subscribedID string) (bool, error)
		GetSubscribedUsers(ctx context.Context, subscriberID string, page, limit int) ([]*entities.User, int64, error)
	}

	subscriptionRepository struct {
		db *gorm.DB
	}
)

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) CreateSubscription(ctx context.Context, sub *entities.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *subscriptionRepository) DeleteSubscription(ctx context.Context, subscriberID, subscribedID string) error {
	return r.db.WithContext(ctx).
		Where("subscriber_id = ? AND subscribed_id = ?", subscriberID, subscribedID).
		Delete(&entities.Subscription{}).Error
}

func (r *subscriptionRepository) SubscriptionExists(ctx context.Context, subscriberID, subscribedID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Subscription{}).
		Where("subscriber_id = ? AND subscribed_id = ?", subscriberID, subscribedID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *subscriptionRepository) GetSubscribedUsers(ctx context.Context, subscriberID string, page, limit int) ([]*entities.User, int64, error) {
	var users []*entities.User
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Joins("JOIN subscriptions ON subscriptions.subscribed_id = users.id").
		Where("subscriptions.subscriber_id = ?", subscriberID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Joins("JOIN subscriptions ON subscriptions.subscribed_id = users.id").
		Where("subscriptions.subscriber_id = ?", subscriberID).
		Offset(offset).
		Limit(limit).
		Order("subscriptions.created_at ASC").
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, count, nil
}
