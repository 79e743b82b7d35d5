package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret   string `yaml:"secret"`
		TTLHours int    `yaml:"ttl_hours"` // срок жизни сессионного токена
	} `yaml:"jwt"`

	Encryption struct {
		// Секрет AES-шифрования персональных полей.
		// Обрезается/дополняется нулями до 32 байт (AES-256).
		Secret string `yaml:"secret"`
	} `yaml:"encryption"`

	PasswordReset struct {
		TokenTTLHours int    `yaml:"token_ttl_hours"` // срок жизни токена сброса
		CleanupHour   int    `yaml:"cleanup_hour"`    // час запуска уборщика (0-23)
		FrontendURL   string `yaml:"frontend_url"`    // база для ссылки сброса
	} `yaml:"password_reset"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`
}

var AppConfig *Config

// LoadConfig загружает конфигурацию.
// Если задан DATABASE_URL - конфиг собирается из переменных окружения (режим теста),
// иначе читается config/config.yaml.
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	log.Println("Загрузка конфигурации из переменных окружения (режим теста)")

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.Encryption.Secret = os.Getenv("ENCRYPTION_SECRET")

	cfg.Email.SMTPHost = "smtp.test.com"
	cfg.Email.SMTPPort = 587
	cfg.Email.FromEmail = "noreply@olympschools.test"

	applyDefaults(&cfg)
	AppConfig = &cfg
}

// applyDefaults выставляет значения по умолчанию для опциональных полей
func applyDefaults(cfg *Config) {
	if cfg.JWT.TTLHours <= 0 {
		cfg.JWT.TTLHours = 24
	}
	if cfg.PasswordReset.TokenTTLHours <= 0 {
		cfg.PasswordReset.TokenTTLHours = 24
	}
	if cfg.PasswordReset.CleanupHour < 0 || cfg.PasswordReset.CleanupHour > 23 {
		cfg.PasswordReset.CleanupHour = 2
	}
	if cfg.PasswordReset.CleanupHour == 0 {
		cfg.PasswordReset.CleanupHour = 2
	}
	if cfg.PasswordReset.FrontendURL == "" {
		cfg.PasswordReset.FrontendURL = "http://localhost:3000"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
