package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/taxi/pkg/jwtx"
)

// InitSessionKeys generates the in-memory Ed25519 keys that sign session
// tokens. Keys are not persisted, so every login ends when the process
// restarts.
func InitSessionKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	logger.Info("initializing session keys", "num_keys", cfg.NumKeys)

	keyManager, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Issuer:  cfg.Issuer,
		NumKeys: cfg.NumKeys,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session keys: %w", err)
	}

	logger.Info("generated session signing keys",
		"num_keys", keyManager.NumKeys(),
		"issuer", cfg.Issuer,
	)
	logger.Warn("sessions from earlier runs are no longer valid")

	return keyManager, nil
}
