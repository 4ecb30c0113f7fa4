package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 5000},
		Pipeline: PipelineConfig{
			EstimatedTime:  120 * time.Second,
			StageDelayUnit: time.Second,
		},
		Assets: AssetsConfig{
			Dir:     "data/assets",
			BaseURL: "http://localhost:5000",
		},
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		filePath  string
		wantErr   bool
		errString string
	}{
		{
			name:     "valid config file",
			filePath: "testdata/valid_config.yaml",
			wantErr:  false,
		},
		{
			name:      "non-existent file",
			filePath:  "testdata/nonexistent.yaml",
			wantErr:   true,
			errString: "failed to read config file",
		},
		{
			name:      "malformed yaml",
			filePath:  "testdata/malformed.yaml",
			wantErr:   true,
			errString: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.filePath)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)

				// Verify some key fields are populated
				assert.Equal(t, 5000, cfg.Server.Port)
				assert.Equal(t, 120*time.Second, cfg.Pipeline.EstimatedTime)
				assert.Equal(t, time.Second, cfg.Pipeline.StageDelayUnit)
				assert.Equal(t, int64(10485760), cfg.Pipeline.MaxImageSize)
				assert.Equal(t, "data/assets", cfg.Assets.Dir)
				assert.Equal(t, "http://localhost:5000", cfg.Assets.BaseURL)
				assert.Equal(t, "avatar-backend", cfg.App.Name)
				assert.False(t, cfg.Archive.Enabled)
				assert.False(t, cfg.Notify.Enabled)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantErr   bool
		errString string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:      "invalid server port - too low",
			mutate:    func(c *Config) { c.Server.Port = 0 },
			wantErr:   true,
			errString: "invalid server port",
		},
		{
			name:      "invalid server port - too high",
			mutate:    func(c *Config) { c.Server.Port = 70000 },
			wantErr:   true,
			errString: "invalid server port",
		},
		{
			name:      "missing estimated time",
			mutate:    func(c *Config) { c.Pipeline.EstimatedTime = 0 },
			wantErr:   true,
			errString: "estimated_time must be greater than 0",
		},
		{
			name:      "negative stage delay unit",
			mutate:    func(c *Config) { c.Pipeline.StageDelayUnit = -time.Second },
			wantErr:   true,
			errString: "stage_delay_unit must not be negative",
		},
		{
			name:      "missing assets dir",
			mutate:    func(c *Config) { c.Assets.Dir = "" },
			wantErr:   true,
			errString: "assets dir is required",
		},
		{
			name:      "missing assets base url",
			mutate:    func(c *Config) { c.Assets.BaseURL = "" },
			wantErr:   true,
			errString: "assets base_url is required",
		},
		{
			name: "archive enabled without host",
			mutate: func(c *Config) {
				c.Archive.Enabled = true
				c.Archive.Database = DatabaseConfig{Port: 5432, Database: "avatar_jobs"}
			},
			wantErr:   true,
			errString: "archive database host is required",
		},
		{
			name: "archive enabled with bad port",
			mutate: func(c *Config) {
				c.Archive.Enabled = true
				c.Archive.Database = DatabaseConfig{Host: "localhost", Port: 0, Database: "avatar_jobs"}
			},
			wantErr:   true,
			errString: "invalid archive database port",
		},
		{
			name: "archive enabled without database name",
			mutate: func(c *Config) {
				c.Archive.Enabled = true
				c.Archive.Database = DatabaseConfig{Host: "localhost", Port: 5432}
			},
			wantErr:   true,
			errString: "archive database name is required",
		},
		{
			name: "notify enabled without host",
			mutate: func(c *Config) {
				c.Notify.Enabled = true
				c.Notify.RabbitMQ = RabbitMQConfig{Port: 5672, Exchange: ExchangeConfig{Name: "avatar_events"}}
			},
			wantErr:   true,
			errString: "notify rabbitmq host is required",
		},
		{
			name: "notify enabled without exchange name",
			mutate: func(c *Config) {
				c.Notify.Enabled = true
				c.Notify.RabbitMQ = RabbitMQConfig{Host: "localhost", Port: 5672}
			},
			wantErr:   true,
			errString: "notify rabbitmq exchange name is required",
		},
		{
			name: "archive disabled skips database checks",
			mutate: func(c *Config) {
				c.Archive.Enabled = false
				c.Archive.Database = DatabaseConfig{}
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoad_ValidateIntegration(t *testing.T) {
	t.Run("load and validate valid config", func(t *testing.T) {
		cfg, err := Load("testdata/valid_config.yaml")
		require.NoError(t, err)
		require.NotNil(t, cfg)

		err = cfg.Validate()
		require.NoError(t, err)
	})

	t.Run("load config with invalid port", func(t *testing.T) {
		cfg, err := Load("testdata/invalid_port.yaml")
		require.NoError(t, err)
		require.NotNil(t, cfg)

		err = cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid server port")
	})

	t.Run("load config with missing assets dir", func(t *testing.T) {
		cfg, err := Load("testdata/missing_assets_dir.yaml")
		require.NoError(t, err)
		require.NotNil(t, cfg)

		err = cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "assets dir is required")
	})
}
