package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	vars := map[string]string{
		"FEFU_PRIMARY__ENV":                 "local",
		"FEFU_SERVER__PORT":                 "8080",
		"FEFU_SERVER__READ_TIMEOUT":         "30",
		"FEFU_SERVER__WRITE_TIMEOUT":        "30",
		"FEFU_SERVER__IDLE_TIMEOUT":         "60",
		"FEFU_SERVER__CORS_ALLOWED_ORIGINS": "http://localhost:3000",
		"FEFU_DATABASE__HOST":               "localhost",
		"FEFU_DATABASE__PORT":               "5432",
		"FEFU_DATABASE__USER":               "fefu",
		"FEFU_DATABASE__PASSWORD":           "secret",
		"FEFU_DATABASE__NAME":               "exchange",
		"FEFU_DATABASE__SSL_MODE":           "disable",
		"FEFU_DATABASE__MAX_OPEN_CONNS":     "10",
		"FEFU_DATABASE__MAX_IDLE_CONNS":     "5",
		"FEFU_DATABASE__CONN_MAX_LIFETIME":  "300",
		"FEFU_DATABASE__CONN_MAX_IDLE_TIME": "60",
		"FEFU_REDIS__ADDRESS":               "localhost:6379",
		"FEFU_AUTH__SECRET_KEY":             "sk_test",
		"FEFU_INTEGRATION__RESEND_API_KEY":  "re_test",
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSAllowedOrigins)

	assert.Equal(t, DefaultInstitutionalDomain, cfg.Exchange.InstitutionalDomain)
	assert.Equal(t, 5*time.Minute, cfg.Exchange.CaptchaTTL)
	assert.Equal(t, 10, cfg.Exchange.TransferRateLimit)
	assert.Equal(t, time.Minute, cfg.Exchange.TransferRateWindow)
	assert.NotEmpty(t, cfg.Integration.MailFrom)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "local", cfg.Observability.Environment)
	assert.False(t, cfg.Observability.NewRelicEnabled())
}

func TestLoadConfig_ExchangeOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FEFU_EXCHANGE__INSTITUTIONAL_DOMAIN", "Students.DVFU.ru")
	t.Setenv("FEFU_EXCHANGE__CAPTCHA_TTL", "90s")
	t.Setenv("FEFU_EXCHANGE__TRANSFER_RATE_LIMIT", "3")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "students.dvfu.ru", cfg.Exchange.InstitutionalDomain)
	assert.Equal(t, 90*time.Second, cfg.Exchange.CaptchaTTL)
	assert.Equal(t, 3, cfg.Exchange.TransferRateLimit)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FEFU_AUTH__SECRET_KEY", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "database.ssl_mode", envKey("FEFU_DATABASE__SSL_MODE"))
	assert.Equal(t, "observability.logging.level", envKey("FEFU_OBSERVABILITY__LOGGING__LEVEL"))
}

func TestObservabilityValidate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestGetLogLevel(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = ""
	cfg.Environment = "production"
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg.Environment = "local"
	assert.Equal(t, "debug", cfg.GetLogLevel())
	assert.False(t, cfg.IsProduction())
}
