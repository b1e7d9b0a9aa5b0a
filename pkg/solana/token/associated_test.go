package token

import (
	"crypto/ed25519"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/solana-transfers/pkg/solana"
	"github.com/code-payments/solana-transfers/pkg/solana/system"
)

func TestGetAssociatedAccount(t *testing.T) {
	// Values generated from taken from spl code.
	wallet, err := base58.Decode("4uQeVj5tqViQh7yWWGStvkEG1Zmhx6uasJtWCJziofM")
	require.NoError(t, err)
	mint, err := base58.Decode("8opHzTAnfzRpPEx21XtnrVTX28YQuCpAjcn1PczScKh")
	require.NoError(t, err)
	addr, err := base58.Decode("H7MQwEzt97tUJryocn3qaEoy2ymWstwyEk1i9Yv3EmuZ")
	require.NoError(t, err)

	actual, err := GetAssociatedAccount(wallet, mint, ProgramKey)
	require.NoError(t, err)
	assert.EqualValues(t, addr, actual)

	reference, _, err := solanago.FindAssociatedTokenAddress(
		solanago.PublicKeyFromBytes(wallet),
		solanago.PublicKeyFromBytes(mint),
	)
	require.NoError(t, err)
	assert.EqualValues(t, reference.Bytes(), actual)
}

func TestGetAssociatedAccount_Token2022(t *testing.T) {
	keys := generateKeys(t, 2)

	actual, err := GetAssociatedAccount(keys[0], keys[1], Token2022ProgramKey)
	require.NoError(t, err)

	reference, _, err := solanago.FindProgramAddress(
		[][]byte{keys[0], Token2022ProgramKey, keys[1]},
		solanago.PublicKeyFromBytes(AssociatedTokenAccountProgramKey),
	)
	require.NoError(t, err)
	assert.EqualValues(t, reference.Bytes(), actual)

	classic, err := GetAssociatedAccount(keys[0], keys[1], ProgramKey)
	require.NoError(t, err)
	assert.NotEqual(t, classic, actual)
}

func TestCreateAssociatedAccountIdempotent(t *testing.T) {
	keys := generateKeys(t, 3)

	for _, tokenProgram := range []ed25519.PublicKey{ProgramKey, Token2022ProgramKey} {
		expectedAddr, err := GetAssociatedAccount(keys[1], keys[2], tokenProgram)
		require.NoError(t, err)

		instruction, addr, err := CreateAssociatedTokenAccountIdempotent(keys[0], keys[1], keys[2], tokenProgram)
		require.NoError(t, err)
		assert.Equal(t, expectedAddr, addr)

		assert.Equal(t, AssociatedTokenAccountProgramKey, instruction.Program)
		assert.Equal(t, []byte{1}, instruction.Data)
		require.Len(t, instruction.Accounts, 6)
		assert.True(t, instruction.Accounts[0].IsSigner)
		assert.True(t, instruction.Accounts[0].IsWritable)
		assert.False(t, instruction.Accounts[1].IsSigner)
		assert.True(t, instruction.Accounts[1].IsWritable)
		for i := 2; i < len(instruction.Accounts); i++ {
			assert.False(t, instruction.Accounts[i].IsSigner)
			assert.False(t, instruction.Accounts[i].IsWritable)
		}

		assert.EqualValues(t, system.ProgramKey[:], instruction.Accounts[4].PublicKey)
		assert.EqualValues(t, tokenProgram, instruction.Accounts[5].PublicKey)

		var txn solana.Transaction
		require.NoError(t, txn.Unmarshal(solana.NewVersionedTransaction(keys[0], instruction).Marshal()))

		decompiled, err := DecompileCreateAssociatedAccountIdempotent(txn.Message, 0)
		require.NoError(t, err)
		assert.Equal(t, keys[0], decompiled.Payer)
		assert.Equal(t, addr, decompiled.Address)
		assert.Equal(t, keys[1], decompiled.Owner)
		assert.Equal(t, keys[2], decompiled.Mint)
		assert.Equal(t, tokenProgram, decompiled.TokenProgram)
	}
}

func TestDecompileCreateAssociatedAccountIdempotent_Invalid(t *testing.T) {
	keys := generateKeys(t, 3)

	instruction, _, err := CreateAssociatedTokenAccountIdempotent(keys[0], keys[1], keys[2], Token2022ProgramKey)
	require.NoError(t, err)

	_, err = DecompileCreateAssociatedAccountIdempotent(solana.NewLegacyTransaction(keys[0], instruction).Message, 1)
	assert.Error(t, err)

	create := instruction
	create.Data = []byte{0}
	_, err = DecompileCreateAssociatedAccountIdempotent(solana.NewLegacyTransaction(keys[0], create).Message, 0)
	assert.Equal(t, solana.ErrIncorrectInstruction, err)

	other := instruction
	other.Program = keys[2]
	_, err = DecompileCreateAssociatedAccountIdempotent(solana.NewLegacyTransaction(keys[0], other).Message, 0)
	assert.Equal(t, solana.ErrIncorrectProgram, err)

	truncated := instruction
	truncated.Accounts = instruction.Accounts[:5]
	_, err = DecompileCreateAssociatedAccountIdempotent(solana.NewLegacyTransaction(keys[0], truncated).Message, 0)
	assert.Error(t, err)
}

func generateKeys(t *testing.T, amount int) []ed25519.PublicKey {
	keys := make([]ed25519.PublicKey, amount)

	for i := 0; i < amount; i++ {
		pub, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		keys[i] = pub
	}

	return keys
}
