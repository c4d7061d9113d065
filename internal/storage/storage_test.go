package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/s/coursehub/internal/database"
	"github.com/s/coursehub/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Одно соединение, иначе каждый коннект пула получит свою
	// пустую in-memory базу.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func mkUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Name: "Test User", Email: email, Role: models.RoleUser}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func mkCourse(t *testing.T, db *gorm.DB, title string, price float64, published bool) models.Course {
	t.Helper()
	course := models.Course{Title: title, Price: price, IsPublished: published}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func mkLesson(t *testing.T, db *gorm.DB, courseID uint, position int, published bool) models.Lesson {
	t.Helper()
	lesson := models.Lesson{
		CourseID:    courseID,
		Title:       "Lesson",
		Position:    position,
		IsPublished: published,
	}
	require.NoError(t, db.Create(&lesson).Error)
	return lesson
}

func mkSubscription(t *testing.T, db *gorm.DB, userID uint, status models.SubscriptionStatus) {
	t.Helper()
	end := time.Now().Add(30 * 24 * time.Hour)
	sub := models.Subscription{UserID: userID, Status: status, CurrentPeriodEnd: &end}
	require.NoError(t, db.Create(&sub).Error)
}
