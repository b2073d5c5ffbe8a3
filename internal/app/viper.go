package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/saradorri/tournamenthub/internal/config"
	"github.com/spf13/viper"
)

// envPrefix is prepended to every environment override, e.g.
// TOURNAMENT_HUB_BACKEND_DRIVER for backend.driver
const envPrefix = "TOURNAMENT_HUB"

func (a *application) setupViper(path string) error {
	if err := loadDotEnv(path); err != nil {
		return err
	}

	c, err := LoadConfig(viper.New(), path, config.GetEnvironment())
	if err != nil {
		return err
	}
	a.config = c

	fmt.Println("[x] Config loaded successfully")
	return nil
}

// LoadConfig reads config.<env>.yml from path into v, applying defaults and
// environment overrides. A missing file leaves defaults and environment only.
func LoadConfig(v *viper.Viper, path, env string) (*config.Config, error) {
	setDefaults(v)

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	v.SetConfigType("yml")
	v.AddConfigPath(path)

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
	}

	var c config.Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}
	return &c, nil
}

func loadDotEnv(path string) error {
	for _, file := range []string{".env", filepath.Join(path, ".env")} {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("could not load %s: %w", file, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.request_timeout", "30s")

	v.SetDefault("backend.driver", config.DriverMemory)
	v.SetDefault("backend.url", "")
	v.SetDefault("backend.api_key", "")
	v.SetDefault("backend.timeout", "10s")
	v.SetDefault("backend.retry_max", 0)

	v.SetDefault("auth.driver", config.DriverLocal)
	v.SetDefault("auth.url", "")
	v.SetDefault("auth.api_key", "")
	v.SetDefault("auth.require_email_confirmation", false)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "tournament_hub")
	v.SetDefault("database.ssl", "disable")
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.maxOpenConns", 20)
	v.SetDefault("database.connMaxLifetime", "1h")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("log.level", "info")
	v.SetDefault("toast.duration", "3s")
	v.SetDefault("profile_sync.delay", "1500ms")
	v.SetDefault("session.idle_timeout", "24h")
	v.SetDefault("session.sweep_interval", "10m")

	v.SetDefault("storage.enabled", false)
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.access_key_id", "")
	v.SetDefault("storage.secret_access_key", "")
	v.SetDefault("storage.public_base_url", "")

	v.SetDefault("i18n.default_language", "en")
}
