package subscription

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/pkg/recipe"
	"Foodgram-Backend/pkg/user"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	SubscriptionService interface {
		Subscribe(ctx context.Context, subscriberID, subscribedID string) (domain.SubscriptionResponse, error)
		Unsubscribe(ctx context.Context, subscriberID, subscribedID string) error
		ListSubscriptions(ctx context.Context, userID string, recipesLimit, page, limit int) ([]domain.SubscriptionResponse, int64, error)
	}

	subscriptionService struct {
		subscriptionRepository SubscriptionRepository
		userRepository         user.UserRepository
		recipeRepository       recipe.RecipeRepository
	}
)

func NewSubscriptionService(
	subscriptionRepository SubscriptionRepository,
	userRepository user.UserRepository,
	recipeRepository recipe.RecipeRepository,
) SubscriptionService {
	return &subscriptionService{
		subscriptionRepository: subscriptionRepository,
		userRepository:         userRepository,
		recipeRepository:       recipeRepository,
	}
}

func (s *subscriptionService) Subscribe(ctx context.Context, subscriberID, subscribedID string) (domain.SubscriptionResponse, error) {
	if subscriberID == subscribedID {
		return domain.SubscriptionResponse{}, domain.ErrSelfSubscription
	}

	target, err := s.userRepository.GetUserByID(ctx, subscribedID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SubscriptionResponse{}, domain.ErrUserNotFound
		}
		return domain.SubscriptionResponse{}, err
	}

	exists, err := s.subscriptionRepository.SubscriptionExists(ctx, subscriberID, subscribedID)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}
	if exists {
		return domain.SubscriptionResponse{}, domain.ErrAlreadySubscribed
	}

	subscriberUUID, err := uuid.Parse(subscriberID)
	if err != nil {
		return domain.SubscriptionResponse{}, domain.ErrParseUUID
	}

	sub := &entities.Subscription{
		SubscriberID: subscriberUUID,
		SubscribedID: target.ID,
		CreatedAt:    time.Now(),
	}
	if err := s.subscriptionRepository.CreateSubscription(ctx, sub); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.SubscriptionResponse{}, domain.ErrAlreadySubscribed
		}
		return domain.SubscriptionResponse{}, err
	}

	return s.annotateUser(ctx, target, 0)
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, subscriberID, subscribedID string) error {
	if _, err := s.userRepository.GetUserByID(ctx, subscribedID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	exists, err := s.subscriptionRepository.SubscriptionExists(ctx, subscriberID, subscribedID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotSubscribed
	}

	return s.subscriptionRepository.DeleteSubscription(ctx, subscriberID, subscribedID)
}

func (s *subscriptionService) ListSubscriptions(ctx context.Context, userID string, recipesLimit, page, limit int) ([]domain.SubscriptionResponse, int64, error) {
	users, count, err := s.subscriptionRepository.GetSubscribedUsers(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.SubscriptionResponse, 0, len(users))
	for _, subscribed := range users {
		annotated, err := s.annotateUser(ctx, subscribed, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		res = append(res, annotated)
	}
	return res, count, nil
}

// annotateUser attaches the subscribed user's recipes (capped by
// recipesLimit, 0 meaning no cap) and their full recipe count.
func (s *subscriptionService) annotateUser(ctx context.Context, subscribed *entities.User, recipesLimit int) (domain.SubscriptionResponse, error) {
	recipes, err := s.recipeRepository.GetRecipesByAuthor(ctx, subscribed.ID.String(), recipesLimit)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}
	count, err := s.recipeRepository.CountRecipesByAuthor(ctx, subscribed.ID.String())
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}

	compact := make([]domain.CompactRecipeResponse, 0, len(recipes))
	for _, item := range recipes {
		compact = append(compact, recipe.CompactResponseFromEntity(item))
	}

	res := domain.SubscriptionResponse{
		UserResponse: user.ResponseFromEntity(subscribed),
		Recipes:      compact,
		RecipesCount: count,
	}
	res.IsSubscribed = true
	return res, nil
}
