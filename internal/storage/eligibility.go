package storage

import (
	"errors"

	"github.com/s/coursehub/internal/models"
	"gorm.io/gorm"
)

// Eligibility is the closed set of outcomes of an enrollment check.
type Eligibility int

const (
	AlreadyEnrolled Eligibility = iota
	FreeEnrollOk
	SubscriptionCoversIt
	PaymentRequired
)

// ErrCourseNotFound is returned when the course is missing or unpublished.
var ErrCourseNotFound = errors.New("course not found")

// CheckEligibility decides what enrolling userID into courseID would take.
// It is a pure decision over point-in-time reads and performs no writes;
// the read skew between steps is an accepted race (the unique constraint
// on enrollments is the final arbiter).
//
// Order matters for cost only: the cheap course lookup short-circuits
// before the subscription query is ever issued.
func CheckEligibility(db *gorm.DB, userID, courseID uint) (Eligibility, *models.Course, error) {
	// 1. The course must exist and be published.
	var course models.Course
	err := db.Where("id = ? AND is_published = ?", courseID, true).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil, ErrCourseNotFound
	}
	if err != nil {
		return 0, nil, err
	}

	// 2. An existing enrollment wins over everything else.
	var enrollment models.Enrollment
	err = db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if err == nil {
		return AlreadyEnrolled, &course, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil, err
	}

	// 3. Free courses enroll directly.
	if course.Price == 0 {
		return FreeEnrollOk, &course, nil
	}

	// 4. An ACTIVE subscription covers any paid course.
	var sub models.Subscription
	err = db.Where("user_id = ? AND status = ?", userID, models.SubscriptionActive).First(&sub).Error
	if err == nil {
		return SubscriptionCoversIt, &course, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil, err
	}

	// 5. Otherwise the user has to pay.
	return PaymentRequired, &course, nil
}
