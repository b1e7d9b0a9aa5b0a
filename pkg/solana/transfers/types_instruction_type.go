package transfers

import (
	"bytes"
)

type InstructionType uint8

const (
	Unknown InstructionType = iota

	InstructionTypeTransferSol
	InstructionTypeTransferSolFromPda
	InstructionTypeTransferSolToPda
	InstructionTypeTransferTokens
	InstructionTypeTransferTokensFromPda
	InstructionTypeTransferTokensToPda
)

var (
	transferSolInstructionDiscriminator           = []byte{78, 10, 236, 247, 109, 117, 21, 76}
	transferSolFromPdaInstructionDiscriminator    = []byte{47, 16, 236, 110, 50, 118, 225, 170}
	transferSolToPdaInstructionDiscriminator      = []byte{231, 93, 192, 169, 71, 218, 168, 61}
	transferTokensInstructionDiscriminator        = []byte{54, 180, 238, 175, 74, 85, 126, 188}
	transferTokensFromPdaInstructionDiscriminator = []byte{216, 184, 217, 14, 88, 44, 70, 104}
	transferTokensToPdaInstructionDiscriminator   = []byte{219, 207, 216, 92, 57, 89, 250, 245}
)

var discriminatorsByType = map[InstructionType][]byte{
	InstructionTypeTransferSol:           transferSolInstructionDiscriminator,
	InstructionTypeTransferSolFromPda:    transferSolFromPdaInstructionDiscriminator,
	InstructionTypeTransferSolToPda:      transferSolToPdaInstructionDiscriminator,
	InstructionTypeTransferTokens:        transferTokensInstructionDiscriminator,
	InstructionTypeTransferTokensFromPda: transferTokensFromPdaInstructionDiscriminator,
	InstructionTypeTransferTokensToPda:   transferTokensToPdaInstructionDiscriminator,
}

// Discriminator returns the 8 byte Anchor discriminator for the instruction,
// or nil for Unknown.
func (t InstructionType) Discriminator() []byte {
	d, ok := discriminatorsByType[t]
	if !ok {
		return nil
	}
	return append([]byte{}, d...)
}

// GetInstructionType identifies an instruction by its data prefix.
func GetInstructionType(data []byte) InstructionType {
	for t, d := range discriminatorsByType {
		if bytes.HasPrefix(data, d) {
			return t
		}
	}
	return Unknown
}

func (t InstructionType) String() string {
	switch t {
	case InstructionTypeTransferSol:
		return "transfer_sol"
	case InstructionTypeTransferSolFromPda:
		return "transfer_sol_from_pda"
	case InstructionTypeTransferSolToPda:
		return "transfer_sol_to_pda"
	case InstructionTypeTransferTokens:
		return "transfer_tokens"
	case InstructionTypeTransferTokensFromPda:
		return "transfer_tokens_from_pda"
	case InstructionTypeTransferTokensToPda:
		return "transfer_tokens_to_pda"
	}
	return "unknown"
}
