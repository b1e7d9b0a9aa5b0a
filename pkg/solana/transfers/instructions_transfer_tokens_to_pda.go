package transfers

import (
	"crypto/ed25519"

	"github.com/code-payments/solana-transfers/pkg/solana"
)

type TransferTokensToPdaInstructionArgs = AmountInstructionArgs

// Pda must be the token vault of Signer.
type TransferTokensToPdaInstructionAccounts struct {
	Signer             ed25519.PublicKey
	SenderTokenAccount ed25519.PublicKey
	Pda                ed25519.PublicKey
	PdaTokenAccount    ed25519.PublicKey
	Mint               ed25519.PublicKey
	TokenProgram       ed25519.PublicKey
}

func NewTransferTokensToPdaInstruction(
	accounts *TransferTokensToPdaInstructionAccounts,
	args *TransferTokensToPdaInstructionArgs,
) solana.Instruction {
	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: putAmountInstructionData(InstructionTypeTransferTokensToPda, args),

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Signer,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.SenderTokenAccount,
				IsWritable: true,
				IsSigner:   false,
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
