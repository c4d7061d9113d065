package models

import (
	"time"

	"gorm.io/datatypes"
)

// Coupon — скидочный код, применяется при оплате.
type Coupon struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Code            string     `gorm:"uniqueIndex;size:64" json:"code"`
	DiscountPercent int        `json:"discount_percent"`
	DiscountAmount  float64    `gorm:"type:decimal(10,2)" json:"discount_amount"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"` // nil = бессрочный
	MaxUses         *int       `json:"max_uses,omitempty"`   // nil = без лимита
	UsedCount       int        `json:"used_count"`
	IsActive        bool       `json:"is_active"`
}

type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentPending   PaymentStatus = "PENDING"
	PaymentFailed    PaymentStatus = "FAILED"
)

// Payment — append-only журнал оплат. Строки никогда не обновляются.
type Payment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID   uint           `gorm:"index" json:"user_id"`
	CourseID *uint          `json:"course_id,omitempty"`
	Amount   float64        `gorm:"type:decimal(10,2)" json:"amount"`
	Currency string         `gorm:"size:8;default:USD" json:"currency"`
	Status   PaymentStatus  `gorm:"size:20" json:"status"`
	CouponID *uint          `json:"coupon_id,omitempty"`
	Ref      string         `gorm:"uniqueIndex;size:64" json:"ref"`
	Metadata datatypes.JSON `json:"metadata,omitempty"`
}
