package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrymomot/notifykit/pkg/logger"
)

// Store backends.
const (
	StoreFile   = "file"
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Delivery modes.
const (
	DeliveryAPI      = "api"
	DeliveryPostmark = "postmark"
	DeliveryDev      = "dev"
)

var (
	ErrNoAPIURL        = errors.New("NOTIFY_API_URL is not set")
	ErrUnknownStore    = errors.New("unknown NOTIFY_STORE")
	ErrUnknownDelivery = errors.New("unknown NOTIFY_DELIVERY")
)

// AppConfig is the CLI configuration, read from the environment and .env.
type AppConfig struct {
	APIURL        string        `env:"NOTIFY_API_URL"`
	Store         string        `env:"NOTIFY_STORE" envDefault:"file"`
	StorePath     string        `env:"NOTIFY_STORE_PATH"`
	Delivery      string        `env:"NOTIFY_DELIVERY" envDefault:"api"`
	DevMailDir    string        `env:"NOTIFY_DEV_MAIL_DIR" envDefault:"./mail"`
	TemplatesFile string        `env:"NOTIFY_TEMPLATES_FILE"`
	Env           string        `env:"APP_ENV" envDefault:"development"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPTimeout   time.Duration `env:"NOTIFY_HTTP_TIMEOUT" envDefault:"30s"`
}

func (c AppConfig) validate() error {
	switch c.Store {
	case StoreFile, StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStore, c.Store)
	}
	switch c.Delivery {
	case DeliveryAPI, DeliveryPostmark, DeliveryDev:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDelivery, c.Delivery)
	}
	if c.Delivery == DeliveryAPI && c.APIURL == "" {
		return fmt.Errorf("%w: required for api delivery", ErrNoAPIURL)
	}
	return nil
}

// storePath resolves the file store location, defaulting to the user config dir.
func (c AppConfig) storePath() (string, error) {
	if c.StorePath != "" {
		return c.StorePath, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "notifykit", "store.json"), nil
}

func (c AppConfig) loggerOptions() []logger.Option {
	return []logger.Option{
		logger.WithEnvironment(c.Env, "notifywizard"),
		logger.WithLevelString(c.LogLevel),
	}
}
