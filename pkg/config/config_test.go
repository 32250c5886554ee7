package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.False(t, cfg.App.IsProduction())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 10, cfg.Seed.Users)
	assert.Equal(t, "password", cfg.Seed.Password)
	assert.Equal(t, "postgres://postgres:@localhost:5432/facturacion?sslmode=disable", cfg.DB.ConnectionString())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", "production")
	v.Set("HTTP_PORT", "9090")
	v.Set("SEED_USERS", 3)
	v.Set("DATABASE_URL", "postgres://u:p@db:5432/x")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 3, cfg.Seed.Users)
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DB.ConnectionString())
}

func TestFromViper_SeedUsersNegativo(t *testing.T) {
	v := viper.New()
	v.Set("SEED_USERS", -1)
	_, err := fromViper(v)
	assert.Error(t, err)
}
