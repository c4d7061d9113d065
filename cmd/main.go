package main

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/s/coursehub/internal/auth"
	"github.com/s/coursehub/internal/config"
	"github.com/s/coursehub/internal/database"
	"github.com/s/coursehub/internal/handlers"
	"github.com/s/coursehub/internal/handlers/admin"
	"github.com/s/coursehub/internal/middleware"
	"github.com/s/coursehub/internal/models"
)

func main() {
	// ---------------------------
	// 0. Логгер и переменные окружения
	// ---------------------------
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("файл .env не найден, используются системные переменные")
	}
	cfg := config.Load()

	// ---------------------------
	// 1. База данных
	// ---------------------------
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("ошибка подключения к БД")
	}

	// ---------------------------
	// 2. Миграции и сиды
	// ---------------------------
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("ошибка миграции")
	}
	if err := database.Seed(db); err != nil {
		log.Warn().Err(err).Msg("ошибка сидов (возможно, данные уже есть)")
	}

	// ---------------------------
	// 3. Redis (кеш каталога, опционален)
	// ---------------------------
	cache := database.ConnectRedis(cfg.RedisAddr)

	// ---------------------------
	// 4. Google OAuth
	// ---------------------------
	oauthConfig := auth.InitGoogleOAuthConfig(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)

	// ---------------------------
	// 5. Сессии
	// ---------------------------
	sessionKey := cfg.SessionKey
	if sessionKey == "" {
		sessionKey = "super-secret-default-key" // Только для разработки!
		log.Warn().Msg("SESSION_KEY не задан, используется дефолтный")
	}
	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   false, // Поставьте true, если используете HTTPS
	}

	// ---------------------------
	// 6. Хендлеры
	// ---------------------------
	h := handlers.NewHandler(db, store, oauthConfig, cache, cfg)
	adminService := admin.Service{Handler: *h}

	requireAuth := middleware.RequireAuth(h)
	requireAdmin := middleware.RequireRole(h, models.RoleAdmin)

	// ---------------------------
	// 7. Роутинг
	// ---------------------------
	r := mux.NewRouter()

	// --- Статические файлы (CSS, аватары) ---
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("./static"))))

	// --- Публичные страницы ---
	r.HandleFunc("/", h.HandleMain).Methods("GET")
	r.HandleFunc("/courses", h.HandleCourses).Methods("GET")
	r.HandleFunc("/courses/{id}", h.HandleCourseDetail).Methods("GET")

	// --- Аутентификация ---
	r.HandleFunc("/register", h.HandleRegisterPage).Methods("GET")
	r.HandleFunc("/register", h.HandleRegister).Methods("POST")
	r.HandleFunc("/login", h.HandleLoginPage).Methods("GET")
	r.HandleFunc("/login", h.HandleLogin).Methods("POST")
	r.HandleFunc("/logout", h.HandleLogout).Methods("GET", "POST")
	r.HandleFunc("/auth/google/login", h.HandleGoogleLogin).Methods("GET")
	r.HandleFunc("/auth/google/callback", h.HandleGoogleCallback).Methods("GET")
	r.HandleFunc("/forbidden", h.HandleForbiddenPage).Methods("GET")

	// --- Страницы пользователя ---
	r.HandleFunc("/dashboard", requireAuth(h.HandleDashboard)).Methods("GET")
	r.HandleFunc("/profile", requireAuth(h.HandleProfilePage)).Methods("GET")
	r.HandleFunc("/checkout", requireAuth(h.HandleCheckoutPage)).Methods("GET")
	r.HandleFunc("/learn/{id}", requireAuth(h.HandleCourseLearn)).Methods("GET")
	r.HandleFunc("/learn/{id}/lessons/{lesson_id}", requireAuth(h.HandleLessonView)).Methods("GET")

	// --- API пользователя ---
	r.HandleFunc("/api/courses/{id}/enroll", h.HandleEnrollAPI).Methods("POST")
	r.HandleFunc("/api/lessons/{id}/complete", h.MarkLessonCompleteAPI).Methods("POST")
	r.HandleFunc("/api/checkout", h.HandleCheckoutAPI).Methods("POST")
	r.HandleFunc("/api/profile", h.UpdateProfileAPI).Methods("PUT")
	r.HandleFunc("/api/profile/change-password", h.ChangePasswordAPI).Methods("POST")
	r.HandleFunc("/api/profile/avatar", h.UploadAvatarAPI).Methods("POST")

	// --- Категории ---
	r.HandleFunc("/api/categories", requireAuth(adminService.GetCategoriesAPI)).Methods("GET")
	r.HandleFunc("/api/categories", requireAdmin(adminService.CreateCategoryAPI)).Methods("POST")

	// --- Админ-панель (HTML) ---
	r.HandleFunc("/admin/dashboard", requireAdmin(adminService.HandleAdminPage)).Methods("GET")
	r.HandleFunc("/admin/courses", requireAdmin(adminService.HandleCoursePage)).Methods("GET")
	r.HandleFunc("/admin/coupons", requireAdmin(adminService.HandleCouponsPage)).Methods("GET")

	// --- Админ API (JSON) ---
	r.HandleFunc("/api/courses", requireAdmin(adminService.HandleCoursesAPI)).Methods("GET", "POST")
	r.HandleFunc("/api/courses/{id}", requireAdmin(adminService.HandleCourseByIDAPI)).Methods("GET", "PATCH", "DELETE")
	r.HandleFunc("/api/courses/{id}/lessons", requireAdmin(adminService.CreateLessonAPI)).Methods("POST")
	r.HandleFunc("/api/lessons/{id}", requireAdmin(adminService.UpdateLessonAPI)).Methods("PATCH")
	r.HandleFunc("/api/lessons/{id}", requireAdmin(adminService.DeleteLessonAPI)).Methods("DELETE")
	r.HandleFunc("/api/coupons", requireAdmin(adminService.HandleCouponsAPI)).Methods("GET", "POST")
	r.HandleFunc("/api/coupons/{id}", requireAdmin(adminService.HandleCouponByIDAPI)).Methods("PATCH", "DELETE")

	// ---------------------------
	// 8. Запуск сервера
	// ---------------------------
	corsHandler := corsMiddleware(r)
	log.Info().Str("port", cfg.Port).Msg("сервер запущен")
	if err := http.ListenAndServe(":"+cfg.Port, corsHandler); err != nil {
		log.Fatal().Err(err).Msg("сервер остановлен")
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
