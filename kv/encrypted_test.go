package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihailsb/homevault/internal/common"
)

func TestEncryptedBackend_RoundTrip(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryBackend()

	be, err := NewEncryptedBackend(ctx, inner, "correct horse")
	require.NoError(t, err)

	plaintext := []byte(`[{"id":"rec-1"}]`)
	require.NoError(t, be.Set(ctx, "records:p1", plaintext))

	// ciphertext at rest
	raw, err := inner.Get(ctx, "records:p1")
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, raw)

	got, err := be.Get(ctx, "records:p1")
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestEncryptedBackend_SaltPersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryBackend()

	first, err := NewEncryptedBackend(ctx, inner, "pass")
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "people", []byte(`[]`)))

	// reopening with the same passphrase reuses the stored salt
	second, err := NewEncryptedBackend(ctx, inner, "pass")
	require.NoError(t, err)

	got, err := second.Get(ctx, "people")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)
}

func TestEncryptedBackend_WrongPassphrase(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryBackend()

	right, err := NewEncryptedBackend(ctx, inner, "right")
	require.NoError(t, err)
	require.NoError(t, right.Set(ctx, "people", []byte(`[]`)))

	wrong, err := NewEncryptedBackend(ctx, inner, "wrong")
	require.NoError(t, err)

	_, err = wrong.Get(ctx, "people")
	require.ErrorIs(t, err, common.ErrorDecryptFailed)
}

func TestEncryptedBackend_KeysHideSalt(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryBackend()

	be, err := NewEncryptedBackend(ctx, inner, "pass")
	require.NoError(t, err)
	require.NoError(t, be.Set(ctx, "pets", []byte(`[]`)))

	keys, err := be.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"pets"}, keys)

	// the salt is still physically present
	innerKeys, err := inner.Keys(ctx)
	require.NoError(t, err)
	assert.Contains(t, innerKeys, saltKey)
}
