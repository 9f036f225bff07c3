package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, StoreDynamo, cfg.StoreBackend)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, 60*time.Second, cfg.HTTP.IdleTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "us-east-1", cfg.AWS.Region)
	assert.Empty(t, cfg.AWS.EndpointURL)
	assert.Equal(t, "devices", cfg.Dynamo.DevicesTable)
	assert.True(t, cfg.Dynamo.Bootstrap)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		expected func(*Config)
	}{
		{
			name: "store and logging",
			envVars: map[string]string{
				"STORE_BACKEND": "memory",
				"LOG_LEVEL":     "debug",
				"LOG_FORMAT":    "text",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, StoreMemory, cfg.StoreBackend)
				assert.Equal(t, "debug", cfg.Log.Level)
				assert.Equal(t, "text", cfg.Log.Format)
			},
		},
		{
			name: "aws and dynamo",
			envVars: map[string]string{
				"AWS_REGION":            "eu-west-1",
				"AWS_ENDPOINT_URL":      "http://localhost:4566",
				"AWS_ACCESS_KEY_ID":     "test",
				"AWS_SECRET_ACCESS_KEY": "secret",
				"DYNAMO_TABLE_DEVICES":  "RIHNO_Devices",
				"DYNAMO_BOOTSTRAP":      "false",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, "eu-west-1", cfg.AWS.Region)
				assert.Equal(t, "http://localhost:4566", cfg.AWS.EndpointURL)
				assert.Equal(t, "test", cfg.AWS.AccessKeyID)
				assert.Equal(t, "secret", cfg.AWS.SecretAccessKey)
				assert.Equal(t, "RIHNO_Devices", cfg.Dynamo.DevicesTable)
				assert.False(t, cfg.Dynamo.Bootstrap)
			},
		},
		{
			name: "http and cors",
			envVars: map[string]string{
				"APP_PORT":          "8080",
				"ALLOWED_ORIGINS":   "https://a.example,https://b.example",
				"HTTP_READ_TIMEOUT": "5s",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, "8080", cfg.AppPort)
				assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
				assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}
			cfg, err := Load()
			require.NoError(t, err)
			tt.expected(cfg)
		})
	}
}

func TestLoad_UnknownStoreBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "redis")
	_, err := Load()
	assert.ErrorContains(t, err, "unknown store backend")
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("HTTP_IDLE_TIMEOUT", "forever")
	_, err := Load()
	assert.Error(t, err)
}
