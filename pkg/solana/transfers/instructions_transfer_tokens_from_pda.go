package transfers

import (
	"crypto/ed25519"

	"github.com/code-payments/solana-transfers/pkg/solana"
)

type TransferTokensFromPdaInstructionArgs = AmountInstructionArgs

// Pda must be the token vault of Signer and PdaTokenAccount a token account
// it owns.
type TransferTokensFromPdaInstructionAccounts struct {
	Signer               ed25519.PublicKey
	Pda                  ed25519.PublicKey
	PdaTokenAccount      ed25519.PublicKey
	ReceiverTokenAccount ed25519.PublicKey
	Mint                 ed25519.PublicKey
	TokenProgram         ed25519.PublicKey
}

func NewTransferTokensFromPdaInstruction(
	accounts *TransferTokensFromPdaInstructionAccounts,
	args *TransferTokensFromPdaInstructionArgs,
) solana.Instruction {
	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: putAmountInstructionData(InstructionTypeTransferTokensFromPda, args),

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Signer,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Pda,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.PdaTokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.ReceiverTokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Mint,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.TokenProgram,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}
