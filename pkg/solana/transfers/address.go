package transfers

import (
	"crypto/ed25519"

	"github.com/code-payments/solana-transfers/pkg/solana"
	"github.com/code-payments/solana-transfers/pkg/solana/token"
)

var (
	SolVaultPrefix   = []byte("xyzpda")
	TokenVaultPrefix = []byte("xyzpdastill")
)

type GetSolVaultAddressArgs struct {
	Owner ed25519.PublicKey
}

// GetSolVaultAddress derives the lamport vault held by the program for Owner.
func GetSolVaultAddress(args *GetSolVaultAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		SolVaultPrefix,
		args.Owner,
	)
}

type GetTokenVaultAddressArgs struct {
	Owner ed25519.PublicKey
}

// GetTokenVaultAddress derives the PDA that owns Owner's vaulted token accounts.
func GetTokenVaultAddress(args *GetTokenVaultAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		TokenVaultPrefix,
		args.Owner,
	)
}

type GetTokenVaultTokenAccountArgs struct {
	Owner        ed25519.PublicKey
	Mint         ed25519.PublicKey
	TokenProgram ed25519.PublicKey
}

// GetTokenVaultTokenAccount is the associated token account of the token vault.
func GetTokenVaultTokenAccount(args *GetTokenVaultTokenAccountArgs) (ed25519.PublicKey, error) {
	vault, _, err := GetTokenVaultAddress(&GetTokenVaultAddressArgs{Owner: args.Owner})
	if err != nil {
		return nil, err
	}

	return token.GetAssociatedAccount(vault, args.Mint, args.TokenProgram)
}
