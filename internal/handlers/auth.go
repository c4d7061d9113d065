package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/s/coursehub/internal/auth"
	"github.com/s/coursehub/internal/models"
	"github.com/s/coursehub/internal/storage"
)

// HandleRegisterPage — GET /register.
func (h *Handler) HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "register", h.basePageData(r, "Регистрация"))
}

// HandleRegister — POST /register (обычная HTML-форма).
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	email := r.FormValue("email")
	password := r.FormValue("password")

	data := h.basePageData(r, "Регистрация")
	if name == "" || email == "" || len(password) < 8 {
		data.Error = "Заполните все поля, пароль минимум 8 символов"
		w.WriteHeader(http.StatusBadRequest)
		h.render(w, "register", data)
		return
	}

	user, err := storage.RegisterUser(h.DB, name, email, password)
	if errors.Is(err, storage.ErrEmailTaken) {
		data.Error = "Этот email уже зарегистрирован"
		w.WriteHeader(http.StatusConflict)
		h.render(w, "register", data)
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("registration failed")
		http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
		return
	}

	h.SignIn(w, r, user)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// HandleLoginPage — GET /login.
func (h *Handler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login", h.basePageData(r, "Вход"))
}

// HandleLogin — POST /login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := storage.Authenticate(h.DB, email, password)
	if errors.Is(err, storage.ErrInvalidCredentials) {
		data := h.basePageData(r, "Вход")
		data.Error = "Неверный email или пароль"
		w.WriteHeader(http.StatusUnauthorized)
		h.render(w, "login", data)
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("login failed")
		http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
		return
	}

	h.SignIn(w, r, user)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// HandleLogout — GET|POST /logout.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.SignOut(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// --- Google OAuth ---

const oauthStateCookie = "oauth_state"

// HandleGoogleLogin — GET /auth/google/login.
func (h *Handler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	state := randomState()
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
	})
	http.Redirect(w, r, h.OAuth.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// HandleGoogleCallback — GET /auth/google/callback.
func (h *Handler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		http.Error(w, "Invalid OAuth state", http.StatusBadRequest)
		return
	}

	info, err := auth.FetchUserInfo(r.Context(), h.OAuth, r.URL.Query().Get("code"))
	if err != nil {
		log.Error().Err(err).Msg("google oauth exchange failed")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := storage.SaveGoogleUser(h.DB, models.User{
		GoogleID: info.ID,
		Email:    info.Email,
		Name:     info.Name,
		Image:    info.Picture,
	})
	if err != nil {
		log.Error().Err(err).Msg("google user upsert failed")
		http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
		return
	}

	h.SignIn(w, r, user)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
