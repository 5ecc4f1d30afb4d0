package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

const (
	EnvPrefix         = "HELA9"
	DefaultConfigPath = "config/config.yaml"

	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Config собирается один раз при старте (Load) и дальше передается по указателю.
// После Load конфиг не изменяется.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Session   SessionConfig   `yaml:"session"`
	Email     EmailConfig     `yaml:"email"`
	Storage   StorageConfig   `yaml:"storage"`
	Upload    UploadConfig    `yaml:"upload"`
	Redis     RedisConfig     `yaml:"redis"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	I18n      I18nConfig      `yaml:"i18n"`
	CORS      CORSConfig      `yaml:"cors"`
	Admin     AdminConfig     `yaml:"admin"`
}

type ServerConfig struct {
	Host     string `yaml:"host" envconfig:"HELA9_SERVER_HOST"`
	Port     int    `yaml:"port" envconfig:"HELA9_SERVER_PORT"`
	Env      string `yaml:"env" envconfig:"HELA9_SERVER_ENV"`
	LogLevel string `yaml:"log_level" envconfig:"HELA9_LOG_LEVEL"`
	AppName  string `yaml:"app_name" envconfig:"HELA9_APP_NAME"`
}

type DatabaseConfig struct {
	Driver      string `yaml:"driver" envconfig:"HELA9_DB_DRIVER"` // postgres | mysql
	DSN         string `yaml:"url" envconfig:"DATABASE_URL"`
	AutoMigrate bool   `yaml:"auto_migrate" envconfig:"HELA9_DB_AUTO_MIGRATE"`
}

type SessionConfig struct {
	Secret     string `yaml:"secret" envconfig:"HELA9_SESSION_SECRET"`
	CookieName string `yaml:"cookie_name" envconfig:"HELA9_SESSION_COOKIE"`
	MaxAge     int    `yaml:"max_age" envconfig:"HELA9_SESSION_MAX_AGE"` // секунды
	Secure     bool   `yaml:"secure" envconfig:"HELA9_SESSION_SECURE"`
}

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host" envconfig:"HELA9_SMTP_HOST"`
	SMTPPort     int    `yaml:"smtp_port" envconfig:"HELA9_SMTP_PORT"`
	SMTPUser     string `yaml:"smtp_user" envconfig:"HELA9_SMTP_USER"`
	SMTPPassword string `yaml:"smtp_password" envconfig:"HELA9_SMTP_PASSWORD"`
	FromEmail    string `yaml:"from_email" envconfig:"HELA9_EMAIL_FROM"`
	FromName     string `yaml:"from_name" envconfig:"HELA9_EMAIL_FROM_NAME"`
	TemplatesDir string `yaml:"templates_dir" envconfig:"HELA9_EMAIL_TEMPLATES_DIR"`
}

// Enabled - SMTP настроен. Иначе письма только пишутся в лог.
func (e EmailConfig) Enabled() bool { return e.SMTPHost != "" }

type StorageConfig struct {
	Type       string `yaml:"type" envconfig:"HELA9_STORAGE_TYPE"`   // local, s3, cloudflare_r2
	BasePath   string `yaml:"base_path" envconfig:"HELA9_STORAGE_PATH"` // For local storage
	BaseURL    string `yaml:"base_url" envconfig:"HELA9_STORAGE_URL"`   // Public URL base
	Bucket     string `yaml:"bucket" envconfig:"HELA9_S3_BUCKET"`
	Region     string `yaml:"region" envconfig:"HELA9_S3_REGION"`
	AccessKey  string `yaml:"access_key" envconfig:"HELA9_S3_ACCESS_KEY"`
	SecretKey  string `yaml:"secret_key" envconfig:"HELA9_S3_SECRET_KEY"`
	Endpoint   string `yaml:"endpoint" envconfig:"HELA9_S3_ENDPOINT"`
	PublicRead bool   `yaml:"public_read" envconfig:"HELA9_S3_PUBLIC_READ"`
}

type UploadConfig struct {
	MaxSize      int64 `yaml:"max_size" envconfig:"HELA9_UPLOAD_MAX_SIZE"`          // байты на файл
	ImageQuality int   `yaml:"image_quality" envconfig:"HELA9_UPLOAD_IMAGE_QUALITY"` // JPEG quality (1-100)
	AvatarSize   int   `yaml:"avatar_size" envconfig:"HELA9_UPLOAD_AVATAR_SIZE"`     // px, сторона квадрата
}

type RedisConfig struct {
	Addr     string `yaml:"addr" envconfig:"HELA9_REDIS_ADDR"`
	Password string `yaml:"password" envconfig:"HELA9_REDIS_PASSWORD"`
	DB       int    `yaml:"db" envconfig:"HELA9_REDIS_DB"`
}

type RateLimitConfig struct {
	WindowSeconds int `yaml:"window_seconds" envconfig:"HELA9_RATE_LIMIT_WINDOW"`
	Limit         int `yaml:"limit" envconfig:"HELA9_RATE_LIMIT"`
}

type I18nConfig struct {
	Dir             string   `yaml:"dir" envconfig:"HELA9_I18N_DIR"`
	DefaultLanguage string   `yaml:"default_language" envconfig:"HELA9_I18N_DEFAULT"`
	Languages       []string `yaml:"languages" envconfig:"HELA9_I18N_LANGUAGES"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" envconfig:"HELA9_CORS_ORIGINS"`
}

type AdminConfig struct {
	Email    string `yaml:"email" envconfig:"FIRST_ADMIN_EMAIL"`
	Password string `yaml:"password" envconfig:"FIRST_ADMIN_PASSWORD"`
}

// Default возвращает конфиг со значениями по умолчанию для локальной разработки.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:     "0.0.0.0",
			Port:     8080,
			Env:      EnvDevelopment,
			LogLevel: "info",
			AppName:  "7ela9",
		},
		Database: DatabaseConfig{
			Driver:      "postgres",
			AutoMigrate: true,
		},
		Session: SessionConfig{
			CookieName: "hela9_session",
			MaxAge:     7 * 24 * 60 * 60,
		},
		Email: EmailConfig{
			SMTPPort: 587,
			FromName: "7ela9",
		},
		Storage: StorageConfig{
			Type:     "local",
			BasePath: "./static/uploads",
			BaseURL:  "/static/uploads",
		},
		Upload: UploadConfig{
			MaxSize:      10 * 1024 * 1024,
			ImageQuality: 85,
			AvatarSize:   800,
		},
		RateLimit: RateLimitConfig{
			WindowSeconds: 60,
			Limit:         10,
		},
		I18n: I18nConfig{
			Dir:             "./i18n",
			DefaultLanguage: "en",
			Languages:       []string{"fr", "es", "ar", "amazigh", "en"},
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}
}

// Load читает .env (если есть), затем YAML-файл (если есть), затем переменные окружения.
// Каждый следующий источник перекрывает предыдущий.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("loading .env: %w", err)
		}
	}

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := Default()
	if err := cfg.readFile(path); err != nil {
		return nil, err
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Работаем только на переменных окружения.
			return nil
		}
		return fmt.Errorf("opening config file %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	var problems []string

	switch c.Database.Driver {
	case "postgres", "mysql":
	default:
		problems = append(problems, fmt.Sprintf("unsupported database driver %q", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		problems = append(problems, "database url is required")
	}
	if c.Session.Secret == "" {
		problems = append(problems, "session secret is required")
	}
	switch c.Storage.Type {
	case "local", "s3", "cloudflare_r2":
	default:
		problems = append(problems, fmt.Sprintf("unsupported storage type %q", c.Storage.Type))
	}
	if c.I18n.DefaultLanguage == "" {
		problems = append(problems, "i18n default language is required")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) IsDevelopment() bool { return c.Server.Env == EnvDevelopment }

func (c *Config) Address() string { return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port) }
