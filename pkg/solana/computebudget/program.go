package computebudget

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/solana-transfers/pkg/solana"
	"github.com/code-payments/solana-transfers/pkg/solana/binary"
)

// ComputeBudget111111111111111111111111111111
var ProgramKey = ed25519.PublicKey{3, 6, 70, 111, 229, 33, 23, 50, 255, 236, 173, 186, 114, 195, 155, 231, 188, 140, 229, 187, 197, 247, 18, 107, 44, 67, 155, 58, 64, 0, 0, 0}

const (
	commandRequestUnits uint8 = iota //nolint:unused
	commandRequestHeapFrame          //nolint:unused
	commandSetComputeUnitLimit
	commandSetComputeUnitPrice
)

// SetComputeUnitLimit caps the compute units the transaction may consume.
func SetComputeUnitLimit(limit uint32) solana.Instruction {
	var offset int

	data := make([]byte, 1+4)
	binary.PutUint8(data, commandSetComputeUnitLimit, &offset)
	binary.PutUint32(data, limit, &offset)

	return solana.NewInstruction(ProgramKey, data)
}

// SetComputeUnitPrice sets the priority fee, in micro-lamports per compute
// unit.
func SetComputeUnitPrice(microLamports uint64) solana.Instruction {
	var offset int

	data := make([]byte, 1+8)
	binary.PutUint8(data, commandSetComputeUnitPrice, &offset)
	binary.PutUint64(data, microLamports, &offset)

	return solana.NewInstruction(ProgramKey, data)
}

func DecompileSetComputeUnitLimit(m solana.Message, index int) (uint32, error) {
	data, err := getInstructionData(m, index, commandSetComputeUnitLimit, 1+4)
	if err != nil {
		return 0, err
	}
	var limit uint32
	offset := 1
	binary.GetUint32(data, &limit, &offset)
	return limit, nil
}

func DecompileSetComputeUnitPrice(m solana.Message, index int) (uint64, error) {
	data, err := getInstructionData(m, index, commandSetComputeUnitPrice, 1+8)
	if err != nil {
		return 0, err
	}
	var price uint64
	offset := 1
	binary.GetUint64(data, &price, &offset)
	return price, nil
}

func getInstructionData(m solana.Message, index int, command uint8, size int) ([]byte, error) {
	i, err := m.ResolveInstruction(index)
	if err != nil {
		return nil, err
	}

	if !bytes.Equal(i.Program, ProgramKey) {
		return nil, solana.ErrIncorrectProgram
	}
	if len(i.Data) == 0 || i.Data[0] != command {
		return nil, solana.ErrIncorrectInstruction
	}
	if len(i.Data) != size {
		return nil, errors.Errorf("invalid instruction data size: %d", len(i.Data))
	}

	return i.Data, nil
}
