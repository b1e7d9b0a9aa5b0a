package transfers

import (
	"crypto/ed25519"

	"github.com/code-payments/solana-transfers/pkg/solana"
)

type TransferSolToPdaInstructionArgs = AmountInstructionArgs

// Recipient must be the sol vault of Sender.
type TransferSolToPdaInstructionAccounts struct {
	Sender    ed25519.PublicKey
	Recipient ed25519.PublicKey
}

func NewTransferSolToPdaInstruction(
	accounts *TransferSolToPdaInstructionAccounts,
	args *TransferSolToPdaInstructionArgs,
) solana.Instruction {
	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: putAmountInstructionData(InstructionTypeTransferSolToPda, args),

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Sender,
				IsWritable: true,
				IsSigner:   true,
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
