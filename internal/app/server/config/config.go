package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Env    string
	DB     DB
	Server Server
	Auth   Auth
	Cache  Cache
}

type DB struct {
	Driver      string
	DatabaseURI string
	Migrations  string
}

type Server struct {
	RunAddress      string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type Auth struct {
	// Token grants lookups and preference writes. Empty disables auth outside prod.
	Token string
	// AdminToken additionally grants status upserts. Empty falls back to Token.
	AdminToken string
}

type Cache struct {
	RedisURL string
	TTL      time.Duration
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return cfg
}

func Load() (*Config, error) {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("load %s: %w", envPath, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", EnvLocal)
	v.SetDefault("RUN_ADDRESS", ":8080")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_URI", "mirror.db")
	v.SetDefault("MIGRATIONS_PATH", "migrations")
	v.SetDefault("CACHE_TTL_SECONDS", 30)
	v.SetDefault("READ_TIMEOUT_SECONDS", 10)
	v.SetDefault("WRITE_TIMEOUT_SECONDS", 10)
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)

	cfg := &Config{
		Env: v.GetString("APP_ENV"),
		DB: DB{
			Driver:      v.GetString("DB_DRIVER"),
			DatabaseURI: v.GetString("DATABASE_URI"),
			Migrations:  v.GetString("MIGRATIONS_PATH"),
		},
		Server: Server{
			RunAddress:      v.GetString("RUN_ADDRESS"),
			ReadTimeout:     seconds(v, "READ_TIMEOUT_SECONDS"),
			WriteTimeout:    seconds(v, "WRITE_TIMEOUT_SECONDS"),
			ShutdownTimeout: seconds(v, "SHUTDOWN_TIMEOUT_SECONDS"),
		},
		Auth: Auth{
			Token:      v.GetString("MIRROR_TOKEN"),
			AdminToken: v.GetString("MIRROR_ADMIN_TOKEN"),
		},
		Cache: Cache{
			RedisURL: v.GetString("REDIS_URL"),
			TTL:      seconds(v, "CACHE_TTL_SECONDS"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func seconds(v *viper.Viper, key string) time.Duration {
	return time.Duration(v.GetInt(key)) * time.Second
}

func (c *Config) validate() error {
	var errs []error
	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.DB.Driver))
	}
	if c.DB.DatabaseURI == "" {
		errs = append(errs, errors.New("DATABASE_URI is required"))
	}
	if c.Server.RunAddress == "" {
		errs = append(errs, errors.New("RUN_ADDRESS is required"))
	}
	if c.Env == EnvProd && c.Auth.Token == "" {
		errs = append(errs, errors.New("MIRROR_TOKEN is required in prod"))
	}
	if c.Env == EnvProd && c.Auth.AdminToken == "" {
		errs = append(errs, errors.New("MIRROR_ADMIN_TOKEN is required in prod"))
	}
	if c.Auth.AdminToken != "" && c.Auth.AdminToken == c.Auth.Token {
		errs = append(errs, errors.New("MIRROR_ADMIN_TOKEN must differ from MIRROR_TOKEN"))
	}
	return errors.Join(errs...)
}
