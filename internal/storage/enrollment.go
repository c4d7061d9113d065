package storage

import (
	"github.com/s/coursehub/internal/database"
	"github.com/s/coursehub/internal/models"
	"gorm.io/gorm"
)

// Enroll creates the enrollment row for (userID, courseID). A duplicate-key
// failure means a concurrent request already enrolled the user, which is
// success for our purposes: the surviving row is fetched and returned.
// created reports whether this call inserted the row.
func Enroll(db *gorm.DB, userID, courseID uint) (enrollment *models.Enrollment, created bool, err error) {
	row := models.Enrollment{UserID: userID, CourseID: courseID}

	err = db.Create(&row).Error
	if err == nil {
		return &row, true, nil
	}
	if !database.IsDuplicateKey(err) {
		return nil, false, err
	}

	// Lost the race: load the row the other request created.
	var existing models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error; err != nil {
		return nil, false, err
	}
	return &existing, false, nil
}

// EnrollmentsForUser returns the user's enrollments with courses preloaded,
// newest first. Used by the dashboard.
func EnrollmentsForUser(db *gorm.DB, userID uint) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := db.Preload("Course").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&enrollments).Error
	return enrollments, err
}

// IsEnrolled reports whether the user has an enrollment for the course.
func IsEnrolled(db *gorm.DB, userID, courseID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}
