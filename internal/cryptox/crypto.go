// Package cryptox implements the value-level encryption used by the
// encrypted key-value backend: AES-GCM sealing with a key derived from a
// user passphrase via argon2id.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"

	"golang.org/x/crypto/argon2"

	"github.com/mihailsb/homevault/internal/common"
)

// DeriveKey derives a 32-byte AES key from a passphrase and salt using
// argon2id. The parameters follow the library's recommended interactive
// settings (1 pass, 64 MiB, 4 lanes).
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, 32)
}

// Seal encrypts plaintext with AES-GCM under key. A fresh random nonce is
// generated per call and prepended to the returned ciphertext.
func Seal(plaintext, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := common.GenerateRandByteArray(aesgcm.NonceSize())
	sealed := aesgcm.Seal(nil, nonce, plaintext, nil)

	return append(nonce, sealed...), nil
}

// Open decrypts a value produced by Seal. It returns
// common.ErrorDecryptFailed when the value is truncated or the key is wrong.
func Open(sealed, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	ns := aesgcm.NonceSize()
	if len(sealed) < ns {
		return nil, common.ErrorDecryptFailed
	}

	plaintext, err := aesgcm.Open(nil, sealed[:ns], sealed[ns:], nil)
	if err != nil {
		return nil, common.ErrorDecryptFailed
	}
	return plaintext, nil
}
