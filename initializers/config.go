package initializers

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig    `yaml:"server"`
	Log        LogConfig       `yaml:"log"`
	Auth       AuthConfig      `yaml:"auth"`
	Media      MediaConfig     `yaml:"media"`
	Search     SearchConfig    `yaml:"search"`
	Categories CategoryConfig  `yaml:"categories"`
	RateLimit  RateLimitConfig `yaml:"rate_limit"`
	Notice     NoticeConfig    `yaml:"notice"`
	Seed       SeedConfig      `yaml:"seed"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"PORT"                    env-default:"8080"`
	Mode            string        `yaml:"mode"             env:"GIN_MODE"                env-default:"release"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" env:"SERVER_MAX_UPLOAD_BYTES" env-default:"67108864"`
	StaticDir       string        `yaml:"static_dir"       env:"SERVER_STATIC_DIR"       env-default:"./static"`
}

// Addr is the listen address of the HTTP server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

type AuthConfig struct {
	Secret        string `yaml:"secret"         env:"SECRET"         env-required:"true"`
	ModeratorRole string `yaml:"moderator_role" env:"MODERATOR_ROLE" env-default:"moderator"`
}

type MediaConfig struct {
	MaxImageBytes int64 `yaml:"max_image_bytes" env:"MEDIA_MAX_IMAGE_BYTES" env-default:"10485760"`
	MaxItemImages int   `yaml:"max_item_images" env:"MEDIA_MAX_ITEM_IMAGES" env-default:"5"`
}

type SearchConfig struct {
	IncludeTitle bool `yaml:"include_title" env:"SEARCH_INCLUDE_TITLE" env-default:"false"`
}

// CategoryConfig extends or overrides the built-in category image table.
// CATEGORY_IMAGES takes "category:path" pairs separated by commas.
type CategoryConfig struct {
	Images        map[string]string `yaml:"images"         env:"CATEGORY_IMAGES"`
	FallbackImage string            `yaml:"fallback_image" env:"CATEGORY_FALLBACK_IMAGE" env-default:"/static/default.jpg"`
}

type RateLimitConfig struct {
	PublicRate     float64 `yaml:"public_rate"     env:"RATE_LIMIT_PUBLIC_RATE"     env-default:"2"`
	PublicBurst    int     `yaml:"public_burst"    env:"RATE_LIMIT_PUBLIC_BURST"    env-default:"2"`
	AuthRate       float64 `yaml:"auth_rate"       env:"RATE_LIMIT_AUTH_RATE"       env-default:"10"`
	AuthBurst      int     `yaml:"auth_burst"      env:"RATE_LIMIT_AUTH_BURST"      env-default:"10"`
	ModeratorRate  float64 `yaml:"moderator_rate"  env:"RATE_LIMIT_MODERATOR_RATE"  env-default:"5"`
	ModeratorBurst int     `yaml:"moderator_burst" env:"RATE_LIMIT_MODERATOR_BURST" env-default:"5"`
}

type NoticeConfig struct {
	ResendAPIKey string   `yaml:"resend_api_key" env:"RESEND_API_KEY"`
	From         string   `yaml:"from"           env:"NOTICE_FROM"      env-default:"PrayerWall <noreply@prayerwall.app>"`
	Moderators   []string `yaml:"moderators"     env:"MODERATOR_EMAILS" env-separator:","`
}

// SeedConfig controls the sample content restored at startup. Seeding is on
// unless disabled, so the flag defaults to its zero value.
type SeedConfig struct {
	Disabled bool   `yaml:"disabled" env:"SEED_DISABLED"`
	Path     string `yaml:"path"     env:"SEED_PATH"`
}

// LoadConfig reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults. The file is CONFIG_PATH, falling back to
// ./config.yaml; a missing default file means ENV and defaults only.
func LoadConfig() (*Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	explicitPath := path != ""
	if !explicitPath {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks the rules env-default tags cannot express.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Auth.Secret) == "" {
		return fmt.Errorf("auth.secret must not be blank")
	}
	if c.Media.MaxImageBytes <= 0 {
		return fmt.Errorf("media.max_image_bytes must be > 0 (got %d)", c.Media.MaxImageBytes)
	}
	if c.Media.MaxItemImages <= 0 {
		return fmt.Errorf("media.max_item_images must be > 0 (got %d)", c.Media.MaxItemImages)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}
	if c.RateLimit.PublicRate <= 0 || c.RateLimit.AuthRate <= 0 || c.RateLimit.ModeratorRate <= 0 {
		return fmt.Errorf("rate_limit rates must be > 0")
	}
	return nil
}
