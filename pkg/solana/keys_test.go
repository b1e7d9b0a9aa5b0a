package solana

import (
	"crypto/ed25519"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKeygenFile(t *testing.T, dir string, key []byte) string {
	values := make([]int, len(key))
	for i, b := range key {
		values[i] = int(b)
	}

	b, err := json.Marshal(values)
	require.NoError(t, err)

	path := filepath.Join(dir, "id.json")
	require.NoError(t, os.WriteFile(path, b, 0600))
	return path
}

func TestLoadKeypairFile(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	path := writeKeygenFile(t, t.TempDir(), priv)

	loaded, err := LoadKeypairFile(path)
	require.NoError(t, err)
	assert.EqualValues(t, priv, loaded)
	assert.EqualValues(t, pub, loaded.Public())
}

func TestLoadKeypairFile_Invalid(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadKeypairFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	other, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	mismatched := append([]byte{}, priv[:ed25519.SeedSize]...)
	mismatched = append(mismatched, other...)
	_, err = LoadKeypairFile(writeKeygenFile(t, dir, mismatched))
	assert.Error(t, err)

	_, err = LoadKeypairFile(writeKeygenFile(t, dir, priv[:32]))
	assert.Error(t, err)

	path := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))
	_, err = LoadKeypairFile(path)
	assert.Error(t, err)
}

func TestLoadKeypairFile_HomeExpansion(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	writeKeygenFile(t, home, priv)

	loaded, err := LoadKeypairFile("~/id.json")
	require.NoError(t, err)
	assert.EqualValues(t, priv, loaded)
}

func TestPublicKeyFromBase58(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	decoded, err := PublicKeyFromBase58(base58.Encode(pub))
	require.NoError(t, err)
	assert.EqualValues(t, pub, decoded)

	_, err = PublicKeyFromBase58("0OIl")
	assert.Error(t, err)

	_, err = PublicKeyFromBase58(base58.Encode(pub[:31]))
	assert.ErrorIs(t, err, ErrInvalidPublicKey)

	assert.Panics(t, func() { MustPublicKeyFromBase58("short") })
	assert.Len(t, MustPublicKeyFromBase58("11111111111111111111111111111111"), 32)
}

func TestSignatureFromBase58(t *testing.T) {
	var sig Signature
	for i := range sig {
		sig[i] = byte(i)
	}

	decoded, err := SignatureFromBase58(sig.String())
	require.NoError(t, err)
	assert.Equal(t, sig, decoded)

	_, err = SignatureFromBase58(base58.Encode(sig[:10]))
	assert.Error(t, err)
}
