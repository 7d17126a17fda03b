// Package common defines shared constants and sentinel errors used across
// the homevault storage layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors for objects rejected before persistence.
	ErrorInvalidDocument = errors.New("document missing identity fields")
	ErrorInvalidProfile  = errors.New("profile missing identity fields")

	// Encryption errors (wrong passphrase or corrupted value).
	ErrorDecryptFailed = errors.New("decrypt failed")
)
