package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/dkeye/webring/internal/domain"
)

const (
	ModeDebug   = "debug"
	ModeRelease = "release"
)

type CookieConfig struct {
	Secure   bool   `mapstructure:"secure"`
	SameSite string `mapstructure:"same_site"`
}

type SourceConfig struct {
	Kind    string        `mapstructure:"kind"`
	File    string        `mapstructure:"file"`
	URL     string        `mapstructure:"url"`
	Path    string        `mapstructure:"path"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Config struct {
	Mode     string          `mapstructure:"mode"`
	Port     int             `mapstructure:"port"`
	BasePath string          `mapstructure:"base_path"`
	LogLevel string          `mapstructure:"log_level"`
	Cookie   CookieConfig    `mapstructure:"cookie"`
	Source   SourceConfig    `mapstructure:"source"`
	Members  []domain.Member `mapstructure:"members"`
}

// Dev reports whether development-only behavior (the localhost embed
// fallback) is allowed. Never true in release mode.
func (c *Config) Dev() bool {
	return c.Mode == ModeDebug
}

func Load() (*Config, error) {
	// .env is optional; real environment wins over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Str("module", "config").Msg("failed to read .env")
	}

	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("webring")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	return decode(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", ModeRelease)
	v.SetDefault("port", 8080)
	v.SetDefault("base_path", "/api/v1")
	v.SetDefault("log_level", "info")
	v.SetDefault("cookie.secure", false)
	v.SetDefault("cookie.same_site", "")
	v.SetDefault("source.kind", "static")
	v.SetDefault("source.path", "@this")
	v.SetDefault("source.timeout", "10s")
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Mode != ModeDebug && cfg.Mode != ModeRelease {
		return nil, fmt.Errorf("unknown mode %q", cfg.Mode)
	}
	log.Info().
		Str("module", "config").
		Str("mode", cfg.Mode).
		Int("port", cfg.Port).
		Str("source", cfg.Source.Kind).
		Msg("config ready")
	return &cfg, nil
}
