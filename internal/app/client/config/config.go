package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultLogLevel       = "info"
	defaultEnv            = "local"
	defaultConfigDir      = ".licensekeeper"
	defaultKeyPrefix      = "DTE"
	defaultMirrorTimeout  = 10
	defaultKeyringService = "licensekeeper"
	defaultSyncRetries    = 2
	defaultSyncRetryDelay = 500
)

var ErrMissingSecret = errors.New("SECRET_KEY is not set")

type Config struct {
	Env            string        `mapstructure:"app_env"`
	LogLevel       string        `mapstructure:"log_level"`
	ConfigDir      string        `mapstructure:"config_dir"`
	SecretKey      string        `mapstructure:"secret_key"`
	KeyPrefix      string        `mapstructure:"key_prefix"`
	MirrorAddress  string        `mapstructure:"mirror_address"`
	MirrorToken    string        `mapstructure:"mirror_token"`
	AdminToken     string        `mapstructure:"mirror_admin_token"`
	MirrorTimeout  time.Duration `mapstructure:"-"`
	EnableTLS      bool          `mapstructure:"enable_tls"`
	KeyringService string        `mapstructure:"keyring_service"`
	SyncRetries    int           `mapstructure:"sync_max_retries"`
	SyncRetryDelay time.Duration `mapstructure:"-"`
}

// MustLoad загружает конфигурацию клиента или паникует
func MustLoad(configFile string) *Config {
	cfg, err := Load(configFile)
	if err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}
	return cfg
}

// Load читает .env, переменные окружения и необязательный файл конфигурации
func Load(configFile string) (*Config, error) {
	// Определяем путь к .env файлу (относительно места запуска)
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Fprintf(os.Stderr, "Ошибка загрузки .env файла: %v\n", err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	// Устанавливаем значения по умолчанию
	v.SetDefault("APP_ENV", defaultEnv)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("CONFIG_DIR", defaultConfigDir)
	v.SetDefault("KEY_PREFIX", defaultKeyPrefix)
	v.SetDefault("MIRROR_TIMEOUT_SECONDS", defaultMirrorTimeout)
	v.SetDefault("ENABLE_TLS", true)
	v.SetDefault("KEYRING_SERVICE", defaultKeyringService)
	v.SetDefault("SYNC_MAX_RETRIES", defaultSyncRetries)
	v.SetDefault("SYNC_RETRY_DELAY_MS", defaultSyncRetryDelay)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("чтение файла конфигурации: %w", err)
		}
	}

	// Вычисляем путь к директории данных
	configDir := v.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = "."
		}
		configDir = filepath.Join(homeDir, configDir)
	}

	cfg := &Config{
		Env:            v.GetString("APP_ENV"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		ConfigDir:      configDir,
		SecretKey:      strings.TrimSpace(v.GetString("SECRET_KEY")),
		KeyPrefix:      strings.ToUpper(strings.TrimSpace(v.GetString("KEY_PREFIX"))),
		MirrorAddress:  strings.TrimSpace(v.GetString("MIRROR_ADDRESS")),
		MirrorToken:    v.GetString("MIRROR_TOKEN"),
		AdminToken:     v.GetString("MIRROR_ADMIN_TOKEN"),
		MirrorTimeout:  time.Duration(v.GetInt("MIRROR_TIMEOUT_SECONDS")) * time.Second,
		EnableTLS:      v.GetBool("ENABLE_TLS"),
		KeyringService: v.GetString("KEYRING_SERVICE"),
		SyncRetries:    v.GetInt("SYNC_MAX_RETRIES"),
		SyncRetryDelay: time.Duration(v.GetInt("SYNC_RETRY_DELAY_MS")) * time.Millisecond,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ConfigDir == "" {
		return fmt.Errorf("config_dir не может быть пустым")
	}
	if c.MirrorTimeout <= 0 {
		return fmt.Errorf("mirror_timeout_seconds должен быть положительным")
	}
	if c.SyncRetries < 0 {
		return fmt.Errorf("sync_max_retries не может быть отрицательным")
	}
	return nil
}

// RequireSecret проверяет наличие ключа шифрования; нужен не всем командам
func (c *Config) RequireSecret() error {
	if c.SecretKey == "" {
		return ErrMissingSecret
	}
	return nil
}

// HasMirror сообщает, настроено ли удалённое зеркало лицензий
func (c *Config) HasMirror() bool {
	return c.MirrorAddress != ""
}

// MirrorURL возвращает базовый адрес зеркала со схемой
func (c *Config) MirrorURL() string {
	if strings.HasPrefix(c.MirrorAddress, "http://") || strings.HasPrefix(c.MirrorAddress, "https://") {
		return strings.TrimRight(c.MirrorAddress, "/")
	}
	scheme := "http://"
	if c.EnableTLS {
		scheme = "https://"
	}
	return scheme + strings.TrimRight(c.MirrorAddress, "/")
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == "local" || c.Env == ""
}
