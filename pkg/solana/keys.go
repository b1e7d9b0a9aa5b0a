package solana

import (
	"bytes"
	"crypto/ed25519"
	"os"
	"path/filepath"
	"strings"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// LamportsPerSol is the number of lamports in one SOL.
const LamportsPerSol = 1_000_000_000

var ErrInvalidKeypair = errors.New("invalid keypair")

// LoadKeypairFile reads a keypair written by `solana-keygen`: a JSON array of
// the 64 secret key bytes (seed followed by public key). A leading ~ in path
// expands to the user's home directory.
func LoadKeypairFile(path string) (ed25519.PrivateKey, error) {
	expanded, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	key, err := solanago.PrivateKeyFromSolanaKeygenFile(expanded)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read keypair file %s", expanded)
	}

	if len(key) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(ErrInvalidKeypair, "expected %d bytes, got %d", ed25519.PrivateKeySize, len(key))
	}

	derived := ed25519.NewKeyFromSeed(key[:ed25519.SeedSize])
	if !bytes.Equal(derived[ed25519.SeedSize:], key[ed25519.SeedSize:]) {
		return nil, errors.Wrap(ErrInvalidKeypair, "public key does not match secret key")
	}

	return derived, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve home directory")
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// PublicKeyFromBase58 decodes a base58 account address.
func PublicKeyFromBase58(s string) (ed25519.PublicKey, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid base58 address %q", s)
	}
	if len(b) != ed25519.PublicKeySize {
		return nil, errors.Wrapf(ErrInvalidPublicKey, "address %q decodes to %d bytes", s, len(b))
	}
	return b, nil
}

// MustPublicKeyFromBase58 is PublicKeyFromBase58 for constants. It panics on
// invalid input.
func MustPublicKeyFromBase58(s string) ed25519.PublicKey {
	pub, err := PublicKeyFromBase58(s)
	if err != nil {
		panic(err)
	}
	return pub
}

// SignatureFromBase58 decodes a base58 transaction signature.
func SignatureFromBase58(s string) (Signature, error) {
	var sig Signature

	b, err := base58.Decode(s)
	if err != nil {
		return sig, errors.Wrapf(err, "invalid base58 signature %q", s)
	}
	if len(b) != len(sig) {
		return sig, errors.Errorf("signature %q decodes to %d bytes", s, len(b))
	}

	copy(sig[:], b)
	return sig, nil
}
