package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"taskforge/backend/internal/app"
	"taskforge/backend/internal/config"
)

func TestBootstrap_ConfigurationError(t *testing.T) {
	cfg := &config.Config{
		DBHost:                     "invalid-host.invalid",
		DBPort:                     5432,
		DBUser:                     "u",
		DBName:                     "n",
		DBSSLMode:                  "disable",
		BootstrapRetryAttempts:     1,
		BootstrapRetryDelaySeconds: 0,
	}
	deps, err := app.Bootstrap(context.Background(), cfg)
	assert.Error(t, err)
	assert.Nil(t, deps)
}

func TestDependencies_CloseEmpty(t *testing.T) {
	d := &app.Dependencies{}
	assert.NoError(t, d.Close())
}
