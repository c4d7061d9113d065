package handlers

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"github.com/s/coursehub/internal/config"
	"github.com/s/coursehub/internal/models"
)

type Handler struct {
	DB       *gorm.DB
	Store    *sessions.CookieStore
	OAuth    *oauth2.Config
	Cache    *redis.Client
	Tmpl     *template.Template
	Validate *validator.Validate
	Cfg      config.Config
}

func NewHandler(db *gorm.DB, store *sessions.CookieStore, oauthCfg *oauth2.Config, cache *redis.Client, cfg config.Config) *Handler {
	funcMap := template.FuncMap{
		"add": func(i, j int) int {
			return i + j
		},
		"formatPrice": func(p float64) string {
			if p == 0 {
				return "Free"
			}
			return "$" + strconv.FormatFloat(p, 'f', 2, 64)
		},
		"formatTime": func(t time.Time) string {
			return t.Format("02.01.2006 в 15:04")
		},
	}

	tmpl := template.Must(template.New("").Funcs(funcMap).ParseGlob("template/*.html"))

	return &Handler{
		DB:       db,
		Store:    store,
		OAuth:    oauthCfg,
		Cache:    cache,
		Tmpl:     tmpl,
		Validate: NewValidator(),
		Cfg:      cfg,
	}
}

// PageData — общая модель данных для всех шаблонов.
type PageData struct {
	Title           string
	IsAuthenticated bool
	UserID          uint
	Role            models.Role
	UserName        string
	UserImage       string
	CurrentPath     string

	Courses    []models.Course
	Categories []models.Category
	Course     models.Course
	Filter     CatalogFilterView
	TotalFound int

	IsEnrolled      bool
	HasSubscription bool

	Progress     ProgressView
	Lesson       models.Lesson
	PrevLessonID uint
	NextLessonID uint
	IsLessonDone bool
	LessonIndex  int

	Enrollments []EnrolledCourseView
	User        models.User

	Coupons []models.Coupon

	StatCourses     int64
	StatUsers       int64
	StatEnrollments int64

	Error string
}

// CatalogFilterView — текущие значения фильтров для формы каталога.
type CatalogFilterView struct {
	Category string
	Search   string
	MinPrice float64
	MaxPrice float64
	Sort     string
}

// ProgressView — прогресс курса для шаблонов.
type ProgressView struct {
	Total   int
	Done    int
	Percent int
	DoneMap map[uint]bool
	NextID  uint
}

// EnrolledCourseView — строка «моего обучения» на дашборде.
type EnrolledCourseView struct {
	Enrollment models.Enrollment
	Progress   ProgressView
}

// --- Сессии ---

const sessionName = "session"

// GetAuthenticatedUserID достает user_id из сессии.
func (h *Handler) GetAuthenticatedUserID(r *http.Request) (uint, bool) {
	session, _ := h.Store.Get(r, sessionName)

	userID, ok := session.Values["user_id"].(uint)
	return userID, ok && userID != 0
}

// CurrentUser возвращает пользователя из сессии вместе с его ролью.
// Роль перечитывается из БД: сессия могла пережить смену роли.
func (h *Handler) CurrentUser(r *http.Request) (*models.User, bool) {
	userID, ok := h.GetAuthenticatedUserID(r)
	if !ok {
		return nil, false
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		return nil, false
	}
	return &user, true
}

// SignIn кладет пользователя в сессию.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request, user *models.User) error {
	session, _ := h.Store.Get(r, sessionName)
	session.Values["user_id"] = user.ID
	session.Values["email"] = user.Email
	session.Values["name"] = user.Name
	session.Values["picture_url"] = user.Image
	return session.Save(r, w)
}

// SignOut очищает сессию.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, sessionName)
	session.Options.MaxAge = -1
	session.Save(r, w)
}

// basePageData заполняет общие поля PageData из сессии.
func (h *Handler) basePageData(r *http.Request, title string) PageData {
	data := PageData{
		Title:       title,
		CurrentPath: r.URL.Path,
	}
	if user, ok := h.CurrentUser(r); ok {
		data.IsAuthenticated = true
		data.UserID = user.ID
		data.Role = user.Role
		data.UserName = user.Name
		data.UserImage = user.Image
	}
	return data
}

// render исполняет именованный шаблон; ошибка рендеринга — это 500.
func (h *Handler) render(w http.ResponseWriter, name string, data PageData) {
	if err := h.Tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("template render failed")
		http.Error(w, "Ошибка сервера при формировании страницы", http.StatusInternalServerError)
	}
}

// BasePageData и Render — для пакетов-наследников (админка).
func (h *Handler) BasePageData(r *http.Request, title string) PageData {
	return h.basePageData(r, title)
}

func (h *Handler) Render(w http.ResponseWriter, name string, data PageData) {
	h.render(w, name, data)
}

func (h *Handler) HandleForbiddenPage(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusForbidden)
	h.render(w, "forbidden", h.basePageData(r, "Доступ запрещен"))
}

// --- JSON-ответы ---

func jsonError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
