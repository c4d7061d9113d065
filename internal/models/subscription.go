package models

import "time"

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "ACTIVE"
	SubscriptionCanceled SubscriptionStatus = "CANCELED"
	SubscriptionExpired  SubscriptionStatus = "EXPIRED"
)

// Subscription — подписка пользователя. Наличие строки со статусом ACTIVE
// открывает доступ ко всем платным курсам.
type Subscription struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID           uint               `gorm:"index" json:"user_id"`
	Status           SubscriptionStatus `gorm:"size:20" json:"status"`
	CurrentPeriodEnd *time.Time         `json:"current_period_end,omitempty"`
}
