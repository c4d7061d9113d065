package database

import (
	"github.com/s/coursehub/internal/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Course{},
		&models.CourseCategory{},
		&models.Lesson{},
		&models.Enrollment{},
		&models.Progress{},
		&models.Subscription{},
		&models.Coupon{},
		&models.Payment{},
	)
}
