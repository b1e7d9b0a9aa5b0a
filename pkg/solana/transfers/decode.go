package transfers

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/solana-transfers/pkg/solana"
)

var accountNamesByType = map[InstructionType][]string{
	InstructionTypeTransferSol:           {"payer", "receiver", "system_program"},
	InstructionTypeTransferSolFromPda:    {"pda", "recipient", "system_program"},
	InstructionTypeTransferSolToPda:      {"sender", "recipient", "system_program"},
	InstructionTypeTransferTokens:        {"signer", "mint", "sender_token_account", "recipient_token_account", "token_program"},
	InstructionTypeTransferTokensFromPda: {"signer", "pda", "pda_token_account", "receiver_token_account", "mint", "token_program", "system_program"},
	InstructionTypeTransferTokensToPda:   {"signer", "sender_token_account", "pda", "pda_token_account", "mint", "token_program", "system_program"},
}

// DecodedInstruction is a compiled program instruction resolved against its
// message. Accounts are keyed by their IDL names.
type DecodedInstruction struct {
	Type     InstructionType
	Amount   uint64
	Accounts map[string]ed25519.PublicKey
}

// DecodeInstruction decodes the program instruction at index in m. Accounts
// loaded through address lookup tables can't be resolved.
func DecodeInstruction(m solana.Message, index int) (*DecodedInstruction, error) {
	i, err := m.ResolveInstruction(index)
	if err != nil {
		return nil, err
	}

	if !bytes.Equal(i.Program, PROGRAM_ID) {
		return nil, solana.ErrIncorrectProgram
	}

	t, args, err := getAmountInstructionData(i.Data)
	if err != nil {
		return nil, solana.ErrIncorrectInstruction
	}

	names := accountNamesByType[t]
	if len(i.Accounts) != len(names) {
		return nil, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
	}

	decoded := &DecodedInstruction{
		Type:     t,
		Amount:   args.Amount,
		Accounts: make(map[string]ed25519.PublicKey, len(names)),
	}
	for j, name := range names {
		decoded.Accounts[name] = i.Accounts[j]
	}

	return decoded, nil
}
