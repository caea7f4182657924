package app

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"log/slog"
	"os"

	"github.com/gatherly/identity/pkg/idx"
	"github.com/gatherly/identity/pkg/jwtx"
)

// InitSigningKey loads or generates the process-lifetime Ed25519 signing
// key and returns the signer plus the KeySet relying parties verify with.
// Any failure here is fatal: the service must not start without a working
// key, and key problems are never surfaced as per-request auth failures.
func InitSigningKey(cfg Config, logger *slog.Logger) (jwtx.Signer, *jwtx.KeySet, error) {
	var pemKey []byte

	if cfg.SigningKeyFile != "" {
		data, err := os.ReadFile(cfg.SigningKeyFile)
		if err != nil {
			return nil, nil, fmt.Errorf("read signing key file: %w", err)
		}
		pemKey = data
		logger.Info("signing key loaded", "path", cfg.SigningKeyFile)
	} else {
		generated, err := generateSigningKeyPEM()
		if err != nil {
			return nil, nil, fmt.Errorf("generate signing key: %w", err)
		}
		pemKey = generated
		logger.Info("ephemeral signing key generated; tokens will not survive a restart")
	}

	kid := idx.New().String()
	signer, err := jwtx.NewSignerEdDSA(kid, pemKey)
	if err != nil {
		return nil, nil, fmt.Errorf("load signing key: %w", err)
	}
	if err := signer.Validate(); err != nil {
		return nil, nil, fmt.Errorf("validate signing key: %w", err)
	}

	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)

	return signer, keys, nil
}

func generateSigningKeyPEM() ([]byte, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}

	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, err
	}

	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}
