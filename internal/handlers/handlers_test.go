package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/s/coursehub/internal/config"
	"github.com/s/coursehub/internal/database"
	"github.com/s/coursehub/internal/models"
)

// newTestHandler собирает Handler на in-memory sqlite. Шаблоны не
// парсятся: JSON-обработчикам они не нужны.
func newTestHandler(t *testing.T) *Handler {
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

	return &Handler{
		DB:       db,
		Store:    sessions.NewCookieStore([]byte("test-session-key")),
		Validate: NewValidator(),
		Cfg:      config.Config{UploadDir: t.TempDir()},
	}
}

// sessionCookie выпускает валидную сессионную куку для userID.
func sessionCookie(t *testing.T, h *Handler, userID uint) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	session, err := h.Store.Get(req, sessionName)
	require.NoError(t, err)
	session.Values["user_id"] = userID
	require.NoError(t, session.Save(req, rec))

	return rec.Header().Get("Set-Cookie")
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

func mkLesson(t *testing.T, db *gorm.DB, courseID uint, position int) models.Lesson {
	t.Helper()
	lesson := models.Lesson{CourseID: courseID, Title: "Lesson", Position: position, IsPublished: true}
	require.NoError(t, db.Create(&lesson).Error)
	return lesson
}
