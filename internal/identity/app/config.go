package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Issuer is the iss claim stamped on every session token.
	Issuer string `env:"IDENTITY_ISSUER" envDefault:"gatherly-identity"`

	// Audience lists the aud claim values for issued tokens.
	Audience []string `env:"IDENTITY_AUDIENCE" envDefault:"gatherly"`

	// TokenTTL is the session token lifetime. Tokens always expire.
	TokenTTL time.Duration `env:"IDENTITY_TOKEN_TTL" envDefault:"168h"`

	// SigningKeyFile optionally points at a PKCS8 PEM Ed25519 private key.
	// When empty an ephemeral key is generated at startup, which
	// invalidates outstanding tokens on restart.
	SigningKeyFile string `env:"IDENTITY_SIGNING_KEY_FILE"`

	DatabaseFile string `env:"IDENTITY_DATABASE_FILE" envDefault:"identity.db"`
	PepperFile   string `env:"IDENTITY_PEPPER_FILE" envDefault:"pepper"`

	Env                 string        `env:"ENV" envDefault:"dev"`
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat           string        `env:"LOG_FORMAT" envDefault:"json"`
	Port                int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
