package kv

import (
	"context"
	"errors"

	"github.com/mihailsb/homevault/internal/common"
	"github.com/mihailsb/homevault/internal/cryptox"
)

// saltKey persists the KDF salt. It is reserved: Keys hides it and the
// schema-version guard's prefixes never match it, so the salt survives
// collection resets and the vault stays readable after one.
const saltKey = "internal:kdf_salt"

const saltSize = 16

// EncryptedBackend decorates another Backend, sealing every value with
// AES-GCM under a key derived from a passphrase. Keys stay in plaintext so
// prefix enumeration keeps working.
type EncryptedBackend struct {
	inner Backend
	key   []byte
}

// NewEncryptedBackend derives the value-encryption key from passphrase and
// the persisted salt, creating and storing a fresh salt on first use.
func NewEncryptedBackend(ctx context.Context, inner Backend, passphrase string) (*EncryptedBackend, error) {
	salt, err := inner.Get(ctx, saltKey)
	if errors.Is(err, common.ErrorNotFound) {
		salt = common.GenerateRandByteArray(saltSize)
		if err := inner.Set(ctx, saltKey, salt); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	return &EncryptedBackend{
		inner: inner,
		key:   cryptox.DeriveKey([]byte(passphrase), salt),
	}, nil
}

func (e *EncryptedBackend) Get(ctx context.Context, key string) ([]byte, error) {
	sealed, err := e.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return cryptox.Open(sealed, e.key)
}

func (e *EncryptedBackend) Set(ctx context.Context, key string, value []byte) error {
	sealed, err := cryptox.Seal(value, e.key)
	if err != nil {
		return err
	}
	return e.inner.Set(ctx, key, sealed)
}

func (e *EncryptedBackend) Delete(ctx context.Context, keys ...string) error {
	return e.inner.Delete(ctx, keys...)
}

// Keys enumerates the inner backend's keys minus the reserved salt key.
func (e *EncryptedBackend) Keys(ctx context.Context) ([]string, error) {
	keys, err := e.inner.Keys(ctx)
	if err != nil {
		return nil, err
	}

	out := keys[:0]
	for _, k := range keys {
		if k != saltKey {
			out = append(out, k)
		}
	}
	return out, nil
}

// Close wipes the derived key and closes the inner backend.
func (e *EncryptedBackend) Close() error {
	common.WipeByteArray(e.key)
	return e.inner.Close()
}
