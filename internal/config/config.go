package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup. Values come from the
// environment (optionally a .env file) and fall back to development defaults.
type Config struct {
	Addr        string
	DBPath      string
	SecretKey   []byte
	UploadDir   string
	TemplateDir string
	StaticDir   string
	Dev         bool
}

// AllowedImageExtensions is the fixed allow-list for blog image uploads.
var AllowedImageExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Print("no .env file found")
	}
	return Config{
		Addr:        getenv("ADDR", ":8080"),
		DBPath:      getenv("DB_PATH", "blog.db"),
		SecretKey:   []byte(getenv("SECRET_KEY", "dev-secret-key")),
		UploadDir:   getenv("UPLOAD_DIR", "web/static/uploads"),
		TemplateDir: getenv("TEMPLATE_DIR", "web/templates"),
		StaticDir:   getenv("STATIC_DIR", "web/static"),
		Dev:         os.Getenv("GO_ENV") == "development",
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
