package transfers

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/solana-transfers/pkg/solana"
	"github.com/code-payments/solana-transfers/pkg/solana/system"
)

func TestDecodeInstruction(t *testing.T) {
	payer := generateKeys(t, 1)[0]

	for instructionType, tc := range newTestInstructions(t, 987654321) {
		var txn solana.Transaction
		require.NoError(t, txn.Unmarshal(solana.NewVersionedTransaction(payer, tc.instruction).Marshal()))

		decoded, err := DecodeInstruction(txn.Message, 0)
		require.NoError(t, err, instructionType.String())

		assert.Equal(t, instructionType, decoded.Type)
		assert.EqualValues(t, 987654321, decoded.Amount)
		assert.Equal(t, tc.accounts, decoded.Accounts, instructionType.String())
	}
}

func TestDecodeInstruction_Invalid(t *testing.T) {
	keys := generateKeys(t, 3)

	instruction := NewTransferSolInstruction(&TransferSolInstructionAccounts{
		Payer:    keys[0],
		Receiver: keys[1],
	}, &TransferSolInstructionArgs{Amount: 10})

	_, err := DecodeInstruction(solana.NewVersionedTransaction(keys[0], instruction).Message, 1)
	assert.Error(t, err)
	_, err = DecodeInstruction(solana.NewVersionedTransaction(keys[0], instruction).Message, -1)
	assert.Error(t, err)

	other := system.Transfer(keys[0], keys[1], 10)
	_, err = DecodeInstruction(solana.NewVersionedTransaction(keys[0], other).Message, 0)
	assert.Equal(t, solana.ErrIncorrectProgram, err)

	badData := instruction
	badData.Data = append([]byte{}, instruction.Data[:8]...)
	_, err = DecodeInstruction(solana.NewVersionedTransaction(keys[0], badData).Message, 0)
	assert.Equal(t, solana.ErrIncorrectInstruction, err)

	missingAccount := instruction
	missingAccount.Accounts = instruction.Accounts[:2]
	_, err = DecodeInstruction(solana.NewVersionedTransaction(keys[0], missingAccount).Message, 0)
	assert.Error(t, err)

	// Hand-built messages may reference keys that don't exist.
	for _, m := range []solana.Message{
		{Instructions: []solana.CompiledInstruction{{ProgramIndex: 3}}},
		{
			Accounts:     []ed25519.PublicKey{keys[0], PROGRAM_ID},
			Instructions: []solana.CompiledInstruction{{ProgramIndex: 1, Accounts: []byte{0, 5, 0}, Data: instruction.Data}},
		},
	} {
		_, err = DecodeInstruction(m, 0)
		assert.Error(t, err)
	}
}
