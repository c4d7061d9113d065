package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s/coursehub/internal/models"
	"github.com/s/coursehub/internal/storage"
)

func putProfile(h *Handler, body, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	rec := httptest.NewRecorder()
	h.UpdateProfileAPI(rec, req)
	return rec
}

func TestUpdateProfileAPI(t *testing.T) {
	h := newTestHandler(t)
	user := mkUser(t, h.DB, "old@example.com")

	rec := putProfile(h, `{"name":"New Name","email":"new@example.com"}`, sessionCookie(t, h, user.ID))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var reloaded models.User
	require.NoError(t, h.DB.First(&reloaded, user.ID).Error)
	assert.Equal(t, "New Name", reloaded.Name)
	assert.Equal(t, "new@example.com", reloaded.Email)
}

func TestUpdateProfileAPIEmailConflict(t *testing.T) {
	h := newTestHandler(t)
	user := mkUser(t, h.DB, "u@example.com")
	mkUser(t, h.DB, "taken@example.com")

	rec := putProfile(h, `{"name":"U","email":"taken@example.com"}`, sessionCookie(t, h, user.ID))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateProfileAPIValidation(t *testing.T) {
	h := newTestHandler(t)
	user := mkUser(t, h.DB, "u@example.com")

	rec := putProfile(h, `{"name":"U","email":"not-an-email"}`, sessionCookie(t, h, user.ID))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Validation failed")
	// Ключи ошибок совпадают с ключами запроса, а не с именами Go-полей.
	assert.Contains(t, rec.Body.String(), `"email"`)
	assert.NotContains(t, rec.Body.String(), `"Email"`)
}

func TestChangePasswordAPI(t *testing.T) {
	h := newTestHandler(t)
	user, err := storage.RegisterUser(h.DB, "Alice", "alice@example.com", "old-password")
	require.NoError(t, err)
	cookie := sessionCookie(t, h, user.ID)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/profile/change-password", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Cookie", cookie)
		rec := httptest.NewRecorder()
		h.ChangePasswordAPI(rec, req)
		return rec
	}

	rec := post(`{"current_password":"wrong","new_password":"next-password"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(`{"current_password":"old-password","new_password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"new_password"`)
	assert.NotContains(t, rec.Body.String(), `"NewPassword"`)

	rec = post(`{"current_password":"old-password","new_password":"next-password"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	_, err = storage.Authenticate(h.DB, "alice@example.com", "next-password")
	assert.NoError(t, err)
}
