package jwtx

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

var ErrNoKey = errors.New("jwtx: key not found")

// KeySet holds the public halves of the session keys by kid. Safe for
// concurrent use.
type KeySet struct {
	mu  sync.RWMutex
	pub map[string]ed25519.PublicKey
}

func NewKeySet() *KeySet {
	return &KeySet{pub: make(map[string]ed25519.PublicKey)}
}

// Add registers pub under kid. A kid can only be registered once.
func (k *KeySet) Add(kid string, pub ed25519.PublicKey) error {
	if kid == "" {
		return errors.New("jwtx: kid is required")
	}
	if len(pub) != ed25519.PublicKeySize {
		return fmt.Errorf("jwtx: invalid Ed25519 public key size %d", len(pub))
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	if _, ok := k.pub[kid]; ok {
		return fmt.Errorf("jwtx: duplicate kid %q", kid)
	}
	k.pub[kid] = pub
	return nil
}

// Get returns the public key for kid.
func (k *KeySet) Get(kid string) (ed25519.PublicKey, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if pk, ok := k.pub[kid]; ok {
		return pk, nil
	}
	return nil, ErrNoKey
}

// Kids lists the registered key ids in sorted order.
func (k *KeySet) Kids() []string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return slices.Sorted(maps.Keys(k.pub))
}

// IsReady reports whether at least one key is loaded.
func (k *KeySet) IsReady() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.pub) > 0
}
