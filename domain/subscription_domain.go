package domain

import (
	"errors"
)

var (
	MessageSuccessSubscribe        = "subscribed successfully"
	MessageSuccessUnsubscribe      = "unsubscribed successfully"
	MessageSuccessGetSubscriptions = "success get subscriptions"
	MessageFailedSubscribe         = "failed to subscribe"
	MessageFailedUnsubscribe       = "failed to unsubscribe"
	MessageFailedGetSubscriptions  = "failed to get subscriptions"

	ErrSelfSubscription  = errors.New("you can not subscribe to yourself")
	ErrAlreadySubscribed = errors.New("already subscribed to this user")
	ErrNotSubscribed     = errors.New("not subscribed to this user")
)

// SubscriptionResponse is a subscribed user annotated with a capped
// list of their recipes and the full recipe count.
type SubscriptionResponse struct {
	UserResponse
	Recipes      []CompactRecipeResponse `json:"recipes"`
	RecipesCount int64                   `json:"recipes_count"`
}
