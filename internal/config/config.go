package config

import "os"

// Config — все настройки процесса в одном месте. Значения берутся из
// окружения (.env подхватывается godotenv в main).
type Config struct {
	Port        string
	DatabaseURL string
	RedisAddr   string

	SessionKey string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	UploadDir string
}

func Load() Config {
	return Config{
		Port:        getenv("PORT", "8080"),
		DatabaseURL: getenv("DATABASE_URL", "host=db user=postgres password=1234 dbname=coursehub port=5432 sslmode=disable"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),

		SessionKey: os.Getenv("SESSION_KEY"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),

		UploadDir: getenv("UPLOAD_DIR", "./static/avatars"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
