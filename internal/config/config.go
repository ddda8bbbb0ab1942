// Package config loads the application configuration from the environment.
//
// Variables are read with the FEFU_ prefix (a `.env` file is picked up
// automatically), nested with a double underscore and validated before the
// server starts:
//
//	FEFU_PRIMARY__ENV=local
//	FEFU_SERVER__PORT=8080
//	FEFU_DATABASE__SSL_MODE=disable
//	FEFU_EXCHANGE__INSTITUTIONAL_DOMAIN=students.dvfu.ru
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Loads `.env` into the process environment before anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every variable read by LoadConfig.
const EnvPrefix = "FEFU_"

// ServiceName tags logs and traces.
const ServiceName = "fefu-exchange"

// DefaultInstitutionalDomain is the only domain accepted for external
// e-mail claims unless configured otherwise.
const DefaultInstitutionalDomain = "students.dvfu.ru"

// Config is the root configuration object.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration" validate:"required"`
	Exchange      ExchangeConfig       `koanf:"exchange"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary describes the runtime environment ("local", "development",
// "production").
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig holds HTTP server settings. Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
// ConnMaxLifetime and ConnMaxIdleTime are in seconds.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains the Redis address ("host:port"). Redis backs the
// job queue, captcha challenges and the transfer rate limiter.
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig stores the Clerk secret key used to verify session tokens.
type AuthConfig struct {
	SecretKey string `koanf:"secret_key" validate:"required"`
}

// IntegrationConfig holds credentials of third-party services.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key" validate:"required"`
	MailFrom     string `koanf:"mail_from"`
}

// ExchangeConfig holds the business settings of the exchange itself.
type ExchangeConfig struct {
	InstitutionalDomain string        `koanf:"institutional_domain"`
	CaptchaTTL          time.Duration `koanf:"captcha_ttl"`
	TransferRateLimit   int           `koanf:"transfer_rate_limit" validate:"gte=0"`
	TransferRateWindow  time.Duration `koanf:"transfer_rate_window"`
}

func (e *ExchangeConfig) applyDefaults() {
	if e.InstitutionalDomain == "" {
		e.InstitutionalDomain = DefaultInstitutionalDomain
	}
	e.InstitutionalDomain = strings.ToLower(e.InstitutionalDomain)
	if e.CaptchaTTL <= 0 {
		e.CaptchaTTL = 5 * time.Minute
	}
	if e.TransferRateLimit == 0 {
		e.TransferRateLimit = 10
	}
	if e.TransferRateWindow <= 0 {
		e.TransferRateWindow = time.Minute
	}
}

func (i *IntegrationConfig) applyDefaults() {
	if i.MailFrom == "" {
		i.MailFrom = "Студенческая биржа <noreply@fefu-exchange.ru>"
	}
}

// envKey maps FEFU_DATABASE__SSL_MODE to "database.ssl_mode".
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// LoadConfig reads the environment into a validated *Config.
//
// Missing optional blocks get defaults: observability falls back to
// DefaultObservabilityConfig and the exchange block to the values the
// site has always used.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	mainConfig.Exchange.applyDefaults()
	mainConfig.Integration.applyDefaults()

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment always follow the primary block.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
