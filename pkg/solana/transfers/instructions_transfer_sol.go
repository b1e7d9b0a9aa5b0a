package transfers

import (
	"crypto/ed25519"

	"github.com/code-payments/solana-transfers/pkg/solana"
)

type TransferSolInstructionArgs = AmountInstructionArgs

type TransferSolInstructionAccounts struct {
	Payer    ed25519.PublicKey
	Receiver ed25519.PublicKey
}

// NewTransferSolInstruction moves Amount lamports from Payer to Receiver
// through the program.
func NewTransferSolInstruction(
	accounts *TransferSolInstructionAccounts,
	args *TransferSolInstructionArgs,
) solana.Instruction {
	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: putAmountInstructionData(InstructionTypeTransferSol, args),

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Payer,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Receiver,
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
