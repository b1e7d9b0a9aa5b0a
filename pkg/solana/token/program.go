package token

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"
)

// ProgramKey is the address of the SPL token program.
//
// Current key: TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA
var ProgramKey = ed25519.PublicKey{6, 221, 246, 225, 215, 101, 161, 147, 217, 203, 225, 70, 206, 235, 121, 172, 28, 180, 133, 237, 95, 91, 55, 145, 58, 140, 245, 133, 126, 255, 0, 169}

// Token2022ProgramKey is the address of the SPL token-2022 program.
//
// Current key: TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb
var Token2022ProgramKey = ed25519.PublicKey{6, 221, 246, 225, 238, 117, 143, 222, 24, 66, 93, 188, 228, 108, 205, 218, 182, 26, 252, 77, 131, 185, 13, 39, 254, 189, 249, 40, 216, 161, 139, 252}

const (
	ProgramNameToken     = "token"
	ProgramNameToken2022 = "token-2022"
)

// ParseTokenProgram resolves a token program by name. An empty name selects
// token-2022.
func ParseTokenProgram(name string) (ed25519.PublicKey, error) {
	switch name {
	case ProgramNameToken:
		return ProgramKey, nil
	case "", ProgramNameToken2022:
		return Token2022ProgramKey, nil
	default:
		return nil, errors.Errorf("unknown token program: %q", name)
	}
}

func IsTokenProgram(program ed25519.PublicKey) bool {
	return bytes.Equal(program, ProgramKey) || bytes.Equal(program, Token2022ProgramKey)
}
