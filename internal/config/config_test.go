package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			name:   "Development sqlite",
			config: Config{Port: "8480", Env: "development", DBDriver: "sqlite"},
		},
		{
			name: "Production postgres",
			config: Config{
				Port: "8480", Env: "production", DBDriver: "postgres",
				DBPassword: "secure-password", DBSSLMode: "require",
			},
		},
		{
			name:        "Missing port",
			config:      Config{Env: "development", DBDriver: "sqlite"},
			expectError: true,
		},
		{
			name:        "Unknown driver",
			config:      Config{Port: "8480", Env: "development", DBDriver: "mongodb"},
			expectError: true,
		},
		{
			name:        "Production sqlite rejected",
			config:      Config{Port: "8480", Env: "production", DBDriver: "sqlite", DBPassword: "secure-password"},
			expectError: true,
		},
		{
			name: "Production default password rejected",
			config: Config{
				Port: "8480", Env: "prod", DBDriver: "postgres",
				DBPassword: "password", DBSSLMode: "require",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer viper.Reset()

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8480", cfg.Port)
	assert.Equal(t, 60, cfg.CacheTTLSeconds)
	assert.Equal(t, ":memory:", cfg.SQLitePath)
	assert.Equal(t, "stdout", cfg.TracingExporter)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	defer os.Unsetenv("DB_DRIVER")
	defer os.Unsetenv("CACHE_TTL_SECONDS")
	defer viper.Reset()

	os.Setenv("DB_DRIVER", "sqlite")
	os.Setenv("CACHE_TTL_SECONDS", "120")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 120, cfg.CacheTTLSeconds)
}
