package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// MinPort is the minimum valid port number
	MinPort = 1
	// MaxPort is the maximum valid port number
	MaxPort = 65535
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
	App      AppConfig      `yaml:"app"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Assets   AssetsConfig   `yaml:"assets"`
	Archive  ArchiveConfig  `yaml:"archive"`
	Notify   NotifyConfig   `yaml:"notify"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level        string `yaml:"level"`
	Format       string `yaml:"format"`
	Output       string `yaml:"output"`
	EnableCaller bool   `yaml:"enable_caller"`
}

// AppConfig holds application metadata
type AppConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
}

// PipelineConfig holds pipeline tuning
type PipelineConfig struct {
	// EstimatedTime is the duration reported to clients on submission.
	EstimatedTime time.Duration `yaml:"estimated_time"`
	// StageDelayUnit scales the simulated stage handlers. Zero makes the
	// pipeline run instantly, useful in tests.
	StageDelayUnit time.Duration `yaml:"stage_delay_unit"`
	// MaxImageSize caps the accepted upload, in bytes.
	MaxImageSize int64 `yaml:"max_image_size"`
}

// AssetsConfig holds asset store settings
type AssetsConfig struct {
	Dir     string `yaml:"dir"`
	BaseURL string `yaml:"base_url"`
}

// ArchiveConfig holds the optional completed-job archive settings
type ArchiveConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig holds PostgreSQL connection configuration
type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Database        string        `yaml:"database"`
	SSLMode         string        `yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
}

// NotifyConfig holds the optional job-event publisher settings
type NotifyConfig struct {
	Enabled  bool           `yaml:"enabled"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
}

// RabbitMQConfig holds RabbitMQ connection and exchange configuration
type RabbitMQConfig struct {
	Host       string           `yaml:"host"`
	Port       int              `yaml:"port"`
	User       string           `yaml:"user"`
	Password   string           `yaml:"password"`
	VHost      string           `yaml:"vhost"`
	Exchange   ExchangeConfig   `yaml:"exchange"`
	Connection ConnectionConfig `yaml:"connection"`
	Publish    PublishConfig    `yaml:"publish"`
}

// ExchangeConfig holds RabbitMQ exchange configuration
type ExchangeConfig struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Durable bool   `yaml:"durable"`
}

// ConnectionConfig holds RabbitMQ connection settings
type ConnectionConfig struct {
	RetryAttempts int           `yaml:"retry_attempts"`
	RetryInterval time.Duration `yaml:"retry_interval"`
	Heartbeat     time.Duration `yaml:"heartbeat"`
}

// PublishConfig holds RabbitMQ publish retry settings
type PublishConfig struct {
	RetryAttempts     int           `yaml:"retry_attempts"`
	RetryInterval     time.Duration `yaml:"retry_interval"`
	BackoffMultiplier float64       `yaml:"backoff_multiplier"`
}

// Load reads and parses the configuration file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port < MinPort || c.Server.Port > MaxPort {
		return fmt.Errorf("invalid server port: %d (must be between %d and %d)", c.Server.Port, MinPort, MaxPort)
	}

	if c.Pipeline.EstimatedTime <= 0 {
		return fmt.Errorf("pipeline estimated_time must be greater than 0")
	}

	if c.Pipeline.StageDelayUnit < 0 {
		return fmt.Errorf("pipeline stage_delay_unit must not be negative")
	}

	if c.Assets.Dir == "" {
		return fmt.Errorf("assets dir is required")
	}

	if c.Assets.BaseURL == "" {
		return fmt.Errorf("assets base_url is required")
	}

	if c.Archive.Enabled {
		if c.Archive.Database.Host == "" {
			return fmt.Errorf("archive database host is required")
		}
		if c.Archive.Database.Port < MinPort || c.Archive.Database.Port > MaxPort {
			return fmt.Errorf("invalid archive database port: %d (must be between %d and %d)", c.Archive.Database.Port, MinPort, MaxPort)
		}
		if c.Archive.Database.Database == "" {
			return fmt.Errorf("archive database name is required")
		}
	}

	if c.Notify.Enabled {
		if c.Notify.RabbitMQ.Host == "" {
			return fmt.Errorf("notify rabbitmq host is required")
		}
		if c.Notify.RabbitMQ.Port < MinPort || c.Notify.RabbitMQ.Port > MaxPort {
			return fmt.Errorf("invalid notify rabbitmq port: %d (must be between %d and %d)", c.Notify.RabbitMQ.Port, MinPort, MaxPort)
		}
		if c.Notify.RabbitMQ.Exchange.Name == "" {
			return fmt.Errorf("notify rabbitmq exchange name is required")
		}
	}

	return nil
}
