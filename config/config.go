package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

type (
	APP struct {
		Name       string `env:"SERVICE_NAME" env-default:"golden-movie-studio"`
		Host       string `env:"SERVICE_HOST" env-default:"localhost"`
		Port       string `env:"PORT" env-default:"3000"`
		Env        string `env:"SERVICE_ENV" env-default:"development"`
		BcryptCost int    `env:"BCRYPT_COST" env-default:"10"`
	}
	Storage struct {
		Driver string `env:"STORAGE_DRIVER" env-default:"file"`
		File   string `env:"DB_FILE" env-default:"users.json"`
	}
	DB struct {
		User     string `env:"POSTGRES_USER"`
		Password string `env:"POSTGRES_PASSWORD"`
		Name     string `env:"POSTGRES_DB"`
		Host     string `env:"POSTGRES_HOST"`
		Port     string `env:"POSTGRES_PORT" env-default:"5432"`
	}
	MQ struct {
		User         string `env:"RABBITMQ_USER"`
		Password     string `env:"RABBITMQ_PASSWORD"`
		Vhost        string `env:"RABBITMQ_VHOST"`
		Host         string `env:"RABBITMQ_HOST"`
		AmqpPort     string `env:"RABBITMQ_AMQP_PORT" env-default:"5672"`
		Exchange     string `env:"RABBITMQ_EXCHANGE" env-default:"cadastro"`
		ExchangeType string `env:"RABBITMQ_EXCHANGE_TYPE" env-default:"direct"`
		QueueName    string `env:"RABBITMQ_QUEUE_NAME" env-default:"cadastro.audit"`
	}

	Config struct {
		App     APP
		Storage Storage
		DB      DB
		MQ      MQ
	}
)

// Load reads an optional .env file into the environment and then decodes the
// environment into Config.
func Load(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.App.BcryptCost < bcrypt.MinCost || c.App.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be within %d..%d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.App.BcryptCost)
	}

	switch c.Storage.Driver {
	case StorageFile:
		if c.Storage.File == "" {
			return errors.New("DB_FILE is required for the file storage driver")
		}
	case StoragePostgres:
		if _, err := c.DBDSN(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	return nil
}

// IsProduction hides internal error details from API responses.
func (c Config) IsProduction() bool {
	switch strings.ToLower(c.App.Env) {
	case "production", "prod", "release":
		return true
	}
	return false
}

// MQEnabled reports whether registration events should be published.
func (c Config) MQEnabled() bool { return c.MQ.Host != "" }

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s",
		url.UserPassword(c.DB.User, c.DB.Password).String(),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}
