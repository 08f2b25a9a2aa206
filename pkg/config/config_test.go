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
	assert.True(t, cfg.App.IsDev())
	assert.Equal(t, "ar", cfg.App.Language)
	assert.Equal(t, 6, cfg.OTP.Length)
	assert.Equal(t, 5, cfg.OTP.TTLMinutes)
	assert.Equal(t, 5, cfg.OTP.MaxAttempts)
	assert.Equal(t, 30, cfg.Flow.TTLMinutes)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.True(t, cfg.DB.AutoMigrate)
}

func TestFromViper_EnvStringsSeParsean(t *testing.T) {
	v := viper.New()
	v.Set("DB_PORT", "6543")
	v.Set("OTP_MAX_ATTEMPTS", "3")
	v.Set("HTTP_PORT", "no-es-numero")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, 3, cfg.OTP.MaxAttempts)
	assert.Equal(t, 8080, cfg.HTTP.Port, "un valor no numérico conserva el default")
}

func TestFromViper_ProduccionSinSecretFalla(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", "production")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestFromViper_OTPLengthFueraDeRango(t *testing.T) {
	v := viper.New()
	v.Set("OTP_LENGTH", 2)

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "portal", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/portal?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
