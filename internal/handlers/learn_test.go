package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s/coursehub/internal/models"
	"github.com/s/coursehub/internal/storage"
)

func completeLessonRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/lessons/{id}/complete", h.MarkLessonCompleteAPI).Methods(http.MethodPost)
	return r
}

func postComplete(router http.Handler, lessonID uint, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/lessons/"+strconv.Itoa(int(lessonID))+"/complete", nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestMarkLessonCompleteAPIUnauthorized(t *testing.T) {
	h := newTestHandler(t)
	rec := postComplete(completeLessonRouter(h), 1, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMarkLessonCompleteAPIIdempotent(t *testing.T) {
	h := newTestHandler(t)
	user := mkUser(t, h.DB, "u@example.com")
	course := mkCourse(t, h.DB, "Course", 0, true)
	lesson := mkLesson(t, h.DB, course.ID, 1)
	cookie := sessionCookie(t, h, user.ID)
	router := completeLessonRouter(h)

	rec := postComplete(router, lesson.ID, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"completed":true`)

	// Повтор не плодит строк и отвечает так же.
	rec = postComplete(router, lesson.ID, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, h.DB.Model(&models.Progress{}).
		Where("user_id = ? AND lesson_id = ?", user.ID, lesson.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)

	done, err := storage.LessonCompleted(h.DB, user.ID, lesson.ID)
	require.NoError(t, err)
	assert.True(t, done)
}
