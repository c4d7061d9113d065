package admin

import (
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/s/coursehub/internal/database"
	"github.com/s/coursehub/internal/handlers"
	"github.com/s/coursehub/internal/models"
)

// Админские API-обработчики не ходят в сессию: роль проверяет middleware
// до них. Поэтому тестовому сервису достаточно БД и валидатора.
func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	return &Service{Handler: handlers.Handler{
		DB:       db,
		Store:    sessions.NewCookieStore([]byte("test-session-key")),
		Validate: handlers.NewValidator(),
	}}
}

func mkCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()
	category := models.Category{Name: name}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func courseCategoryIDs(t *testing.T, db *gorm.DB, courseID uint) []uint {
	t.Helper()
	var links []models.CourseCategory
	require.NoError(t, db.Where("course_id = ?", courseID).Order("category_id asc").Find(&links).Error)
	ids := make([]uint, len(links))
	for i, l := range links {
		ids[i] = l.CategoryID
	}
	return ids
}
