package jwtx

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aussiebroadwan/taxi/pkg/idx"
)

const (
	defaultNumKeys = 3
	maxNumKeys     = 10
)

// sessionKey is one Ed25519 signing key.
type sessionKey struct {
	kid  string
	priv ed25519.PrivateKey
}

func (k sessionKey) sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	t.Header["kid"] = k.kid
	return t.SignedString(k.priv)
}

// KeyManager owns the signing keys of one process. Keys live only in memory,
// so every session is invalidated when the process restarts.
type KeyManager struct {
	Verifier Verifier
	KeySet   *KeySet

	mu   sync.RWMutex
	keys []sessionKey
}

type KeyManagerOptions struct {
	// Issuer is stamped into and required on every token.
	Issuer string

	// NumKeys defaults to 3 and is capped at 10.
	NumKeys int

	// KeyPrefix prefixes every generated kid. Defaults to "taxi".
	KeyPrefix string

	// Now is the verifier's clock. Defaults to time.Now.
	Now func() time.Time
}

// NewEphemeralKeyManager generates NumKeys Ed25519 keys. Each kid is the
// prefix followed by a ULID.
func NewEphemeralKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, errors.New("jwtx: Issuer is required")
	}

	numKeys := opts.NumKeys
	if numKeys <= 0 {
		numKeys = defaultNumKeys
	}
	numKeys = min(numKeys, maxNumKeys)

	prefix := opts.KeyPrefix
	if prefix == "" {
		prefix = "taxi"
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	km := &KeyManager{KeySet: NewKeySet()}
	km.Verifier = &keySetVerifier{keys: km.KeySet, issuer: opts.Issuer, now: now}

	for i := range numKeys {
		pub, priv, err := ed25519.GenerateKey(nil)
		if err != nil {
			return nil, fmt.Errorf("jwtx: failed to generate key %d: %w", i+1, err)
		}
		if err := km.addKey(sessionKey{kid: prefix + "-" + idx.New().String(), priv: priv}, pub); err != nil {
			return nil, err
		}
	}

	return km, nil
}

func (km *KeyManager) addKey(k sessionKey, pub ed25519.PublicKey) error {
	km.mu.Lock()
	defer km.mu.Unlock()

	if err := km.KeySet.Add(k.kid, pub); err != nil {
		return err
	}
	km.keys = append(km.keys, k)
	return nil
}

// NumKeys reports how many signing keys are active.
func (km *KeyManager) NumKeys() int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return len(km.keys)
}

func (km *KeyManager) IsReady() bool {
	return km.KeySet.IsReady()
}

// Sign signs claims with a randomly chosen active key.
func (km *KeyManager) Sign(claims Claims) (string, error) {
	km.mu.RLock()
	defer km.mu.RUnlock()

	if len(km.keys) == 0 {
		return "", ErrNoKey
	}
	return km.keys[rand.IntN(len(km.keys))].sign(claims)
}
