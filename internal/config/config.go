package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config is the dashboard configuration
type Config struct {
	Environment string        `yaml:"environment" validate:"oneof=development production test"`
	Server      ServerConfig  `yaml:"server"`
	Data        DataConfig    `yaml:"data"`
	Display     DisplayConfig `yaml:"display"`
	Session     SessionConfig `yaml:"session"`
	Auth        AuthConfig    `yaml:"-"`
}

type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         string        `yaml:"port" validate:"required,numeric"`
	ReadTimeout  time.Duration `yaml:"read_timeout" validate:"min=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"min=0"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" validate:"min=0"`
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

type DataConfig struct {
	Path        string   `yaml:"path" validate:"required"`
	DropColumns []string `yaml:"drop_columns"`
	Delimiter   string   `yaml:"delimiter" validate:"omitempty,len=1"`
}

// Comma returns the field delimiter, defaulting to a comma
func (c DataConfig) Comma() rune {
	if c.Delimiter == "" {
		return ','
	}
	return []rune(c.Delimiter)[0]
}

type DisplayConfig struct {
	Variant  string    `yaml:"variant" validate:"oneof=numbered arrowed"`
	PageSize int       `yaml:"page_size" validate:"min=1,max=100"`
	Map      MapConfig `yaml:"map"`
}

type MapConfig struct {
	CenterLat float64 `yaml:"center_lat" validate:"min=-90,max=90"`
	CenterLng float64 `yaml:"center_lng" validate:"min=-180,max=180"`
	// Zoom 0 picks the variant's default zoom
	Zoom int `yaml:"zoom" validate:"min=0,max=19"`
}

type SessionConfig struct {
	Backend      string        `yaml:"backend" validate:"oneof=memory redis"`
	RedisURL     string        `yaml:"redis_url" validate:"required_if=Backend redis"`
	TTL          time.Duration `yaml:"ttl" validate:"min=0"`
	CookieName   string        `yaml:"cookie_name" validate:"required"`
	CookieSecure bool          `yaml:"cookie_secure"`
}

// AuthConfig protects the JSON API with basic auth when both fields are set.
// Credentials only come from the environment.
type AuthConfig struct {
	Username string
	Password string
}

// Enabled reports whether API credentials are configured
func (a AuthConfig) Enabled() bool {
	return a.Username != "" && a.Password != ""
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:         "",
			Port:         "8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Data: DataConfig{
			Path:        "data/lowongan.csv",
			DropColumns: []string{"Unnamed: 0", ""},
		},
		Display: DisplayConfig{
			Variant:  "numbered",
			PageSize: 10,
			Map: MapConfig{
				CenterLat: -0.789275,
				CenterLng: 113.921327,
			},
		},
		Session: SessionConfig{
			Backend:    "memory",
			TTL:        24 * time.Hour,
			CookieName: "jobmap_session",
		},
	}
}

var validate = validator.New()

// Load reads .env, the YAML file at path and environment overrides, then validates the result
func Load(path string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Msg("no .env file found")
	}

	cfg, err := LoadYAMLConfig(path, Default)
	if err != nil {
		return nil, err
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Environment = getEnv("JOBMAP_ENV", cfg.Environment)
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Server.Port = getEnv("JOBMAP_PORT", cfg.Server.Port)
	cfg.Data.Path = getEnv("JOBMAP_DATA", cfg.Data.Path)
	cfg.Display.Variant = getEnv("JOBMAP_VARIANT", cfg.Display.Variant)
	cfg.Display.PageSize = getEnvAsInt("JOBMAP_PAGE_SIZE", cfg.Display.PageSize)
	cfg.Session.TTL = getEnvAsDuration("JOBMAP_SESSION_TTL", cfg.Session.TTL)
	cfg.Session.CookieSecure = getEnvAsBool("COOKIE_SECURE", cfg.Session.CookieSecure)

	if redisURL := getEnv("REDIS_URL", ""); redisURL != "" {
		cfg.Session.Backend = "redis"
		cfg.Session.RedisURL = redisURL
	}

	cfg.Auth.Username = getEnv("WEB_USERNAME", cfg.Auth.Username)
	cfg.Auth.Password = getEnv("WEB_PASSWORD", cfg.Auth.Password)
}

// Validate checks every field constraint and reports them together
func (c *Config) Validate() error {
	c.Display.Variant = strings.ToLower(strings.TrimSpace(c.Display.Variant))

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("validate config: %w", err)
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
