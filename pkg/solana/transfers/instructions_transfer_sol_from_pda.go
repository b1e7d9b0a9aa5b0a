package transfers

import (
	"crypto/ed25519"

	"github.com/code-payments/solana-transfers/pkg/solana"
)

type TransferSolFromPdaInstructionArgs = AmountInstructionArgs

// Pda must be the sol vault of Recipient.
type TransferSolFromPdaInstructionAccounts struct {
	Pda       ed25519.PublicKey
	Recipient ed25519.PublicKey
}

func NewTransferSolFromPdaInstruction(
	accounts *TransferSolFromPdaInstructionAccounts,
	args *TransferSolFromPdaInstructionArgs,
) solana.Instruction {
	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: putAmountInstructionData(InstructionTypeTransferSolFromPda, args),

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Pda,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Recipient,
				IsWritable: true,
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
