package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/s/coursehub/internal/database"
	"github.com/s/coursehub/internal/storage"
)

// HandleProfilePage — страница профиля.
func (h *Handler) HandleProfilePage(w http.ResponseWriter, r *http.Request) {
	user, ok := h.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	data := h.basePageData(r, "Профиль")
	data.User = *user
	h.render(w, "profile", data)
}

type profileInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// UpdateProfileAPI — PUT /api/profile. Меняет имя и email текущего
// пользователя.
func (h *Handler) UpdateProfileAPI(w http.ResponseWriter, r *http.Request) {
	user, ok := h.CurrentUser(r)
	if !ok {
		jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input profileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		jsonError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if !h.ValidateJSONBody(w, input) {
		return
	}

	updates := map[string]interface{}{"name": input.Name, "email": input.Email}
	if err := h.DB.Model(user).Updates(updates).Error; err != nil {
		if database.IsDuplicateKey(err) {
			jsonError(w, "Email is already taken", http.StatusConflict)
			return
		}
		log.Error().Err(err).Uint("user_id", user.ID).Msg("profile update failed")
		jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// Email в сессии должен совпадать с БД.
	h.SignIn(w, r, user)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user": map[string]string{"name": user.Name, "email": user.Email, "image": user.Image},
	})
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// ChangePasswordAPI — POST /api/profile/change-password.
func (h *Handler) ChangePasswordAPI(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.GetAuthenticatedUserID(r)
	if !ok {
		jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input changePasswordInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		jsonError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if !h.ValidateJSONBody(w, input) {
		return
	}

	err := storage.ChangePassword(h.DB, userID, input.CurrentPassword, input.NewPassword)
	if errors.Is(err, storage.ErrInvalidCredentials) {
		jsonError(w, "Current password is incorrect", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("password change failed")
		jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

const maxAvatarSize = 5 << 20 // 5 MB

// UploadAvatarAPI — POST /api/profile/avatar (multipart). Файл кладется
// в локальный каталог загрузок под uuid-именем, ссылка пишется в профиль.
func (h *Handler) UploadAvatarAPI(w http.ResponseWriter, r *http.Request) {
	user, ok := h.CurrentUser(r)
	if !ok {
		jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
		jsonError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		jsonError(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if err := os.MkdirAll(h.Cfg.UploadDir, 0o755); err != nil {
		log.Error().Err(err).Str("dir", h.Cfg.UploadDir).Msg("upload dir creation failed")
		jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	fileName := uuid.NewString() + filepath.Ext(header.Filename)
	dst, err := os.Create(filepath.Join(h.Cfg.UploadDir, fileName))
	if err != nil {
		log.Error().Err(err).Msg("avatar file creation failed")
		jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		log.Error().Err(err).Msg("avatar write failed")
		jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	avatarURL := "/static/avatars/" + fileName
	if err := h.DB.Model(user).Update("image", avatarURL).Error; err != nil {
		log.Error().Err(err).Uint("user_id", user.ID).Msg("avatar persist failed")
		jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"avatar_url": avatarURL})
}
