package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	AdminPort      string        `envconfig:"ADMIN_PORT"      default:":8080"`
	APIBaseURL     string        `envconfig:"API_BASE_URL"`                     // overrides the host-derived default
	APIPort        string        `envconfig:"API_PORT"        default:"8000"`   // port of the derived default
	SettingsFile   string        `envconfig:"SETTINGS_FILE"   default:"admin_settings.json"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`
	LogLevel       string        `envconfig:"LOG_LEVEL"       default:"info"`
}

func LoadConfig(logger *logrus.Logger) (*Config, error) {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		logger.Warnf("Error loading .env file (but continuing): %v", err)
	} else if err == nil {
		logger.Info("Loaded configuration from .env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration from environment variables: %w", err)
	}

	if cfg.RequestTimeout <= 0 {
		logger.Warnf("Non-positive REQUEST_TIMEOUT %s, falling back to 10s", cfg.RequestTimeout)
		cfg.RequestTimeout = 10 * time.Second
	}

	logger.Infof("Configuration loaded: AdminPort=%s, APIPort=%s, SettingsFile=%s", cfg.AdminPort, cfg.APIPort, cfg.SettingsFile)
	if cfg.APIBaseURL != "" {
		logger.Infof("Configuration loaded: API base override %s", cfg.APIBaseURL)
	}
	return &cfg, nil
}
