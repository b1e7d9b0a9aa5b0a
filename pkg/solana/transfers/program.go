package transfers

import (
	"crypto/ed25519"
	"errors"

	"github.com/mr-tron/base58"

	"github.com/code-payments/solana-transfers/pkg/solana/system"
)

var (
	ErrInvalidInstructionData = errors.New("unexpected instruction data")
)

var (
	PROGRAM_ADDRESS = mustBase58Decode("4s2eUn3rBK2y6KSgPgMmkucsPPogxMPbK5HtUNhfV91y")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)
)

var (
	SYSTEM_PROGRAM_ID = ed25519.PublicKey(system.ProgramKey[:])
)

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}
