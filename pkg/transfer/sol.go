package transfer

import (
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/solana-transfers/pkg/solana"
	"github.com/code-payments/solana-transfers/pkg/solana/transfers"
)

// TransferSol moves amount lamports from the signer to receiver.
func (s *Service) TransferSol(ctx context.Context, receiver ed25519.PublicKey, amount uint64) (solana.Signature, error) {
	return s.submit(ctx, "TransferSol", amount, transfers.NewTransferSolInstruction(
		&transfers.TransferSolInstructionAccounts{
			Payer:    s.Signer(),
			Receiver: receiver,
		},
		&transfers.TransferSolInstructionArgs{
			Amount: amount,
		},
	))
}

// TransferSolToVault moves amount lamports from the signer into the signer's
// SOL vault.
func (s *Service) TransferSolToVault(ctx context.Context, amount uint64) (solana.Signature, error) {
	vault, _, err := transfers.GetSolVaultAddress(&transfers.GetSolVaultAddressArgs{
		Owner: s.Signer(),
	})
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "error deriving sol vault")
	}

	return s.submit(ctx, "TransferSolToVault", amount, transfers.NewTransferSolToPdaInstruction(
		&transfers.TransferSolToPdaInstructionAccounts{
			Sender:    s.Signer(),
			Recipient: vault,
		},
		&transfers.TransferSolToPdaInstructionArgs{
			Amount: amount,
		},
	))
}

// TransferSolFromVault moves amount lamports out of recipient's SOL vault to
// recipient. The signer only pays fees.
func (s *Service) TransferSolFromVault(ctx context.Context, recipient ed25519.PublicKey, amount uint64) (solana.Signature, error) {
	vault, _, err := transfers.GetSolVaultAddress(&transfers.GetSolVaultAddressArgs{
		Owner: recipient,
	})
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "error deriving sol vault")
	}

	return s.submit(ctx, "TransferSolFromVault", amount, transfers.NewTransferSolFromPdaInstruction(
		&transfers.TransferSolFromPdaInstructionAccounts{
			Pda:       vault,
			Recipient: recipient,
		},
		&transfers.TransferSolFromPdaInstructionArgs{
			Amount: amount,
		},
	))
}
