package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`
	Env  string `env:"ENV" envDefault:"development"`

	// AdminPassword is the shared static secret gating the admin panel.
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"12345678910admin"`

	// StoreDriver selects the Store backend: "memory" (default) or "mysql".
	StoreDriver string `env:"STORE_DRIVER" envDefault:"memory"`

	CORSOrigins  []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	MaxBodyBytes int64    `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	// RedisAddr, when set, moves login rate limiting to Redis so the counters
	// are shared across instances.
	RedisAddr string `env:"REDIS_ADDR"`

	DBHost   string `env:"DB_HOST" envDefault:"127.0.0.1"`
	DBPort   string `env:"DB_PORT" envDefault:"3306"`
	DBUser   string `env:"DB_USER" envDefault:"root"`
	DBPass   string `env:"DB_PASS"`
	DBName   string `env:"DB_NAME" envDefault:"engage"`
	DBParams string `env:"DB_PARAMS" envDefault:"charset=utf8mb4"`
}

// Load reads .env if present (without overriding already-set variables) and
// parses the environment into a Config.
func Load() (*Config, error) {
	if envMap, err := godotenv.Read(); err == nil {
		for k, v := range envMap {
			if os.Getenv(k) == "" {
				os.Setenv(k, v)
			}
		}
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
