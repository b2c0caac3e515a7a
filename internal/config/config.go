package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/vytor/ayahrecall/internal/models"
)

type Config struct {
	Addr             string        `env:"ADDR" validate:"required"`
	DBPath           string        `env:"DB_PATH" validate:"required"`
	LogLevel         string        `env:"LOG_LEVEL" validate:"oneof=DEBUG INFO WARN WARNING ERROR"`
	LogFormat        string        `env:"LOG_FORMAT" validate:"oneof=text json"`
	Timezone         string        `env:"TIMEZONE" validate:"required,timezone"`
	ContentBaseURL   string        `env:"CONTENT_BASE_URL" validate:"required,url"`
	ContentEdition   string        `env:"CONTENT_EDITION" validate:"required"`
	ContentTimeout   time.Duration `env:"CONTENT_TIMEOUT" validate:"min=1ms,max=2m"`
	PersistQueueSize int           `env:"PERSIST_QUEUE_SIZE" validate:"min=1,max=1024"`
	GoalDaily        int           `env:"GOAL_DAILY" validate:"min=1"`
	GoalWeekly       int           `env:"GOAL_WEEKLY" validate:"min=1"`
	GoalMonthly      int           `env:"GOAL_MONTHLY" validate:"min=1"`
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:             envOr("ADDR", ":8080"),
		DBPath:           envOr("DB_PATH", "file:ayahrecall.db"),
		LogLevel:         strings.ToUpper(envOr("LOG_LEVEL", "INFO")),
		LogFormat:        strings.ToLower(envOr("LOG_FORMAT", "text")),
		Timezone:         envOr("TIMEZONE", "UTC"),
		ContentBaseURL:   envOr("CONTENT_BASE_URL", "https://api.alquran.cloud/v1"),
		ContentEdition:   envOr("CONTENT_EDITION", "en.sahih"),
		ContentTimeout:   envDurationOr("CONTENT_TIMEOUT", 10*time.Second),
		PersistQueueSize: envIntOr("PERSIST_QUEUE_SIZE", 16),
		GoalDaily:        envIntOr("GOAL_DAILY", models.DefaultGoalTargets.Daily),
		GoalWeekly:       envIntOr("GOAL_WEEKLY", models.DefaultGoalTargets.Weekly),
		GoalMonthly:      envIntOr("GOAL_MONTHLY", models.DefaultGoalTargets.Monthly),
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field and reports all problems at once, naming the
// environment variable each one comes from.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	key := envKeys[fe.StructField()]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s cannot be empty", key)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", key, fe.Param(), fe.Value())
	case "min":
		return fmt.Sprintf("%s must be at least %s, got %v", key, fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("%s must be at most %s, got %v", key, fe.Param(), fe.Value())
	case "timezone":
		return fmt.Sprintf("%s is not a known time zone: %q", key, fe.Value())
	case "url":
		return fmt.Sprintf("%s must be an absolute URL, got %q", key, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", key, fe.Tag())
	}
}

var envKeys = func() map[string]string {
	keys := map[string]string{}
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		keys[f.Name] = f.Tag.Get("env")
	}
	return keys
}()

// Location resolves Timezone, the zone calendar days are counted in.
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// GoalTargets returns the configured review goals.
func (c Config) GoalTargets() models.GoalTargets {
	return models.GoalTargets{Daily: c.GoalDaily, Weekly: c.GoalWeekly, Monthly: c.GoalMonthly}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
