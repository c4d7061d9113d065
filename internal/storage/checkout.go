package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/s/coursehub/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrCouponInvalid = errors.New("coupon is not valid")
	ErrCouponExpired = errors.New("coupon has expired")
	ErrCouponUsedUp  = errors.New("coupon usage limit reached")
)

// ResolveCoupon ищет купон по коду и проверяет, что им еще можно
// пользоваться: активен, не истек, лимит использований не выбран.
func ResolveCoupon(db *gorm.DB, code string, now time.Time) (*models.Coupon, error) {
	var coupon models.Coupon
	err := db.Where("code = ?", code).First(&coupon).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCouponInvalid
	}
	if err != nil {
		return nil, err
	}

	if !coupon.IsActive {
		return nil, ErrCouponInvalid
	}
	if coupon.ExpiresAt != nil && coupon.ExpiresAt.Before(now) {
		return nil, ErrCouponExpired
	}
	if coupon.MaxUses != nil && coupon.UsedCount >= *coupon.MaxUses {
		return nil, ErrCouponUsedUp
	}
	return &coupon, nil
}

// Discounted применяет купон к цене. Процент имеет приоритет над
// фиксированной суммой; ниже нуля цена не опускается.
func Discounted(price float64, coupon *models.Coupon) float64 {
	if coupon == nil {
		return price
	}
	if coupon.DiscountPercent > 0 {
		price = price * (100 - float64(coupon.DiscountPercent)) / 100
	} else if coupon.DiscountAmount > 0 {
		price = price - coupon.DiscountAmount
	}
	if price < 0 {
		return 0
	}
	return price
}

// Checkout проводит «оплату» платного курса: записывает Payment,
// инкрементирует счетчик купона и создает Enrollment — одной транзакцией.
// Реальный платежный шлюз за рамками системы, оплата считается успешной.
func Checkout(db *gorm.DB, userID, courseID uint, couponCode string) (*models.Payment, *models.Enrollment, error) {
	var course models.Course
	err := db.Where("id = ? AND is_published = ?", courseID, true).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	var coupon *models.Coupon
	if couponCode != "" {
		coupon, err = ResolveCoupon(db, couponCode, time.Now())
		if err != nil {
			return nil, nil, err
		}
	}

	amount := Discounted(course.Price, coupon)

	payment := models.Payment{
		UserID:   userID,
		CourseID: &courseID,
		Amount:   amount,
		Currency: "USD",
		Status:   models.PaymentCompleted,
		Ref:      uuid.NewString(),
		Metadata: datatypes.JSON(fmt.Sprintf(`{"course_title":%q,"list_price":%.2f}`, course.Title, course.Price)),
	}
	if coupon != nil {
		payment.CouponID = &coupon.ID
	}

	var enrollment *models.Enrollment
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		if coupon != nil {
			if err := tx.Model(&models.Coupon{}).Where("id = ?", coupon.ID).
				UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error; err != nil {
				return err
			}
		}
		var enrollErr error
		enrollment, _, enrollErr = Enroll(tx, userID, courseID)
		return enrollErr
	})
	if err != nil {
		return nil, nil, err
	}

	return &payment, enrollment, nil
}
