package transfers

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/solana-transfers/pkg/solana"
)

func TestGetAnchorError(t *testing.T) {
	txErr, err := solana.TransactionErrorFromInstructionError(&solana.InstructionError{
		Index: 0,
		Err:   solana.CustomError(ConstraintSeeds),
	})
	require.NoError(t, err)

	anchorErr, ok := GetAnchorError(errors.Wrap(txErr, "failed to submit transaction"))
	require.True(t, ok)
	assert.Equal(t, ConstraintSeeds, anchorErr)
	assert.Equal(t, "anchor error 2006: ConstraintSeeds", anchorErr.Error())

	programErr, err := solana.TransactionErrorFromInstructionError(&solana.InstructionError{
		Index: 0,
		Err:   solana.CustomError(6000),
	})
	require.NoError(t, err)
	_, ok = GetAnchorError(programErr)
	assert.False(t, ok)

	builtinErr, err := solana.TransactionErrorFromInstructionError(&solana.InstructionError{
		Index: 0,
		Err:   errors.New(string(solana.InstructionErrorInsufficientFunds)),
	})
	require.NoError(t, err)
	_, ok = GetAnchorError(builtinErr)
	assert.False(t, ok)

	_, ok = GetAnchorError(solana.NewTransactionError(solana.TransactionErrorBlockhashNotFound))
	assert.False(t, ok)

	_, ok = GetAnchorError(errors.New("network failure"))
	assert.False(t, ok)

	_, ok = GetAnchorError(nil)
	assert.False(t, ok)

	assert.Equal(t, "anchor error 9", AnchorError(9).Error())
}
