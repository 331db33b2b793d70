package entities

import (
	"time"

	"github.com/google/uuid"
)

// Subscription is a directed edge: subscriber follows subscribed.
type Subscription struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	SubscriberID uuid.UUID `gorm:"uniqueIndex:idx_subscriber_subscribed" json:"subscriber_id"`
	SubscribedID uuid.UUID `gorm:"uniqueIndex:idx_subscriber_subscribed" json:"subscribed_id"`
	CreatedAt    time.Time `gorm:"type:timestamp" json:"created_at"`

	Subscriber *User `gorm:"foreignKey:SubscriberID"`
	Subscribed *User `gorm:"foreignKey:SubscribedID"`
}
