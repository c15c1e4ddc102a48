package config

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"tigawane/internal/bootstrap/logging"
	"tigawane/internal/errs"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Geocoder GeocoderConfig `mapstructure:"geocoder"`
	Resolver ResolverConfig `mapstructure:"resolver"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Storage  StorageConfig  `mapstructure:"storage"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`

	// CatalogFile points at a TOML category catalog; empty uses the
	// built-in one.
	CatalogFile string `mapstructure:"catalog_file"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type GeocoderConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// ResolverConfig bounds the two collaborator calls of the pickup-coordinate
// pipeline so a hung geocoder or location provider cannot hang a submission.
type ResolverConfig struct {
	GeocodeTimeout  time.Duration `mapstructure:"geocode_timeout"`
	LocationTimeout time.Duration `mapstructure:"location_timeout"`
}

type CacheNamespaceConfig struct {
	MaxEntries int           `mapstructure:"max_entries"`
	TTL        time.Duration `mapstructure:"ttl"`
}

type CacheConfig struct {
	SweepInterval time.Duration        `mapstructure:"sweep_interval"`
	Profiles      CacheNamespaceConfig `mapstructure:"profiles"`
	Stats         CacheNamespaceConfig `mapstructure:"stats"`
	Items         CacheNamespaceConfig `mapstructure:"items"`
	Nearby        CacheNamespaceConfig `mapstructure:"nearby"`
}

type StorageConfig struct {
	Root    string `mapstructure:"root"`
	BaseURL string `mapstructure:"base_url"`
}

func Load(ctx context.Context, configFile string) (Config, error) {
	if ctx == nil {
		return Config{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return Config{}, errs.Wrap(err, "check context")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.config"))

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("TGW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			// Keep default and env-backed config when no file is provided.
			logging.Warn(logCtx, "config file not found, fallback to defaults and env")
		} else {
			return Config{}, errs.Wrap(err, "read config")
		}
	} else {
		logging.Info(logCtx, "using config file", slog.String("path", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errs.Wrap(err, "unmarshal config")
	}

	if cfg.Database.DSN == "" {
		return Config{}, errors.New("database.dsn is required")
	}
	if cfg.Geocoder.BaseURL == "" {
		return Config{}, errors.New("geocoder.base_url is required")
	}

	logging.Info(
		logCtx,
		"config loaded",
		slog.String("app", cfg.App.Name),
		slog.String("env", cfg.App.Env),
		slog.String("database_driver", cfg.Database.Driver),
		slog.String("http_addr", cfg.HTTP.Addr),
	)

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "tigawane")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.catalog_file", "")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "data/tigawane.sqlite")

	v.SetDefault("http.addr", ":8080")

	v.SetDefault("geocoder.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geocoder.user_agent", "tigawane/1.0")
	v.SetDefault("geocoder.timeout", 10*time.Second)

	v.SetDefault("resolver.geocode_timeout", 10*time.Second)
	v.SetDefault("resolver.location_timeout", 15*time.Second)

	v.SetDefault("cache.sweep_interval", 5*time.Minute)
	v.SetDefault("cache.profiles.max_entries", 256)
	v.SetDefault("cache.profiles.ttl", 10*time.Minute)
	v.SetDefault("cache.stats.max_entries", 16)
	v.SetDefault("cache.stats.ttl", 2*time.Minute)
	v.SetDefault("cache.items.max_entries", 512)
	v.SetDefault("cache.items.ttl", 1*time.Minute)
	v.SetDefault("cache.nearby.max_entries", 128)
	v.SetDefault("cache.nearby.ttl", 1*time.Minute)

	v.SetDefault("storage.root", "data/uploads")
	v.SetDefault("storage.base_url", "/uploads")
}
