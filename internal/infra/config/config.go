package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	App    AppSettings    `mapstructure:"app"`
	API    APISettings    `mapstructure:"api"`
	Retry  RetrySettings  `mapstructure:"retry"`
	Sync   SyncSettings   `mapstructure:"sync"`
	Auth   AuthSettings   `mapstructure:"auth"`
	Status StatusSettings `mapstructure:"status"`
}

type AppSettings struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

// APISettings locates the remote tracking service.
type APISettings struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RetrySettings bounds the transport's retry behavior. MaxAttempts includes
// the first attempt.
type RetrySettings struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	BaseDelay   time.Duration `mapstructure:"base_delay"`
}

// SyncSettings configures the periodic refresh scheduler.
type SyncSettings struct {
	Interval         time.Duration `mapstructure:"interval"`
	AutoRefresh      bool          `mapstructure:"auto_refresh"`
	PassHours        int           `mapstructure:"pass_hours"`
	PassMinElevation float64       `mapstructure:"pass_min_elevation"`
}

// AuthSettings configures local session persistence.
type AuthSettings struct {
	TokenFile string `mapstructure:"token_file"`
}

// StatusSettings configures the local read-only status server.
type StatusSettings struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
}

func Load() (*AppConfig, error) {
	v := viper.New()

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("SKYWATCH")

	setDefaults(v)

	if err := bindEnvs(v, []string{
		"app.name",
		"app.env",
		"api.base_url",
		"api.timeout",
		"retry.max_attempts",
		"retry.base_delay",
		"sync.interval",
		"sync.auto_refresh",
		"sync.pass_hours",
		"sync.pass_min_elevation",
		"auth.token_file",
		"status.enabled",
		"status.host",
		"status.port",
	}); err != nil {
		return nil, err
	}

	v.AutomaticEnv()

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "skywatch-client")
	v.SetDefault("app.env", "development")

	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.timeout", "15s")

	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.base_delay", "500ms")

	v.SetDefault("sync.interval", "5m")
	v.SetDefault("sync.auto_refresh", true)
	v.SetDefault("sync.pass_hours", 24)
	v.SetDefault("sync.pass_min_elevation", 10.0)

	v.SetDefault("auth.token_file", "./.skywatch-token")

	v.SetDefault("status.enabled", true)
	v.SetDefault("status.host", "127.0.0.1")
	v.SetDefault("status.port", 8090)
}

func bindEnvs(v *viper.Viper, keys []string) error {
	for _, key := range keys {
		envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, "SKYWATCH_"+envKey, envKey); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	return nil
}
