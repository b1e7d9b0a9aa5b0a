package transfers

import (
	"crypto/ed25519"

	"github.com/code-payments/solana-transfers/pkg/solana"
)

type TransferTokensInstructionArgs = AmountInstructionArgs

type TransferTokensInstructionAccounts struct {
	Signer                ed25519.PublicKey
	Mint                  ed25519.PublicKey
	SenderTokenAccount    ed25519.PublicKey
	RecipientTokenAccount ed25519.PublicKey
	TokenProgram          ed25519.PublicKey
}

// NewTransferTokensInstruction moves Amount base units of Mint between two
// token accounts. Signer must own SenderTokenAccount.
func NewTransferTokensInstruction(
	accounts *TransferTokensInstructionAccounts,
	args *TransferTokensInstructionArgs,
) solana.Instruction {
	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: putAmountInstructionData(InstructionTypeTransferTokens, args),

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Signer,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Mint,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.SenderTokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.RecipientTokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.TokenProgram,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}
