package main

import (
	"crypto/ed25519"
	"fmt"
	"strconv"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/code-payments/solana-transfers/pkg/amount"
	"github.com/code-payments/solana-transfers/pkg/solana"
	"github.com/code-payments/solana-transfers/pkg/solana/token"
	"github.com/code-payments/solana-transfers/pkg/transfer"
)

var (
	transferSolCommand = &cli.Command{
		Action:    action(transferSol),
		Name:      "transfer-sol",
		Usage:     "transfer SOL from the signer to a wallet",
		ArgsUsage: " ",
		Flags:     []cli.Flag{requiredRecipientFlag(), amountFlag, rawFlag},
	}
	transferSolToPdaCommand = &cli.Command{
		Action:    action(transferSolToPda),
		Name:      "transfer-sol-to-pda",
		Usage:     "transfer SOL from the signer into the signer's SOL vault",
		ArgsUsage: " ",
		Flags:     []cli.Flag{amountFlag, rawFlag},
	}
	transferSolFromPdaCommand = &cli.Command{
		Action:    action(transferSolFromPda),
		Name:      "transfer-sol-from-pda",
		Usage:     "transfer SOL out of a wallet's SOL vault back to the wallet (default: the signer)",
		ArgsUsage: " ",
		Flags:     []cli.Flag{recipientFlag, amountFlag, rawFlag},
	}
	transferTokensCommand = &cli.Command{
		Action:    action(transferTokens),
		Name:      "transfer-tokens",
		Usage:     "transfer tokens from the signer's token account to a wallet's token account",
		ArgsUsage: " ",
		Flags:     []cli.Flag{requiredMintFlag(), tokenProgramFlag, requiredRecipientFlag(), amountFlag, rawFlag},
	}
	transferTokensToPdaCommand = &cli.Command{
		Action:    action(transferTokensToPda),
		Name:      "transfer-tokens-to-pda",
		Usage:     "transfer tokens from the signer's token account into the signer's token vault",
		ArgsUsage: " ",
		Flags:     []cli.Flag{requiredMintFlag(), tokenProgramFlag, amountFlag, rawFlag},
	}
	transferTokensFromPdaCommand = &cli.Command{
		Action:    action(transferTokensFromPda),
		Name:      "transfer-tokens-from-pda",
		Usage:     "transfer tokens out of the signer's token vault to a wallet's token account (default: the signer)",
		ArgsUsage: " ",
		Flags:     []cli.Flag{requiredMintFlag(), tokenProgramFlag, recipientFlag, amountFlag, rawFlag},
	}
	balanceCommand = &cli.Command{
		Action:    action(balance),
		Name:      "balance",
		Usage:     "print the SOL balances of the signer and its vaults, and token balances when --mint is set",
		ArgsUsage: " ",
		Flags:     []cli.Flag{mintFlag, tokenProgramFlag},
	}
	addressesCommand = &cli.Command{
		Action:    action(addresses),
		Name:      "addresses",
		Usage:     "print the signer's vault addresses, and token accounts when --mint is set",
		ArgsUsage: " ",
		Flags:     []cli.Flag{mintFlag, tokenProgramFlag},
	}
	airdropCommand = &cli.Command{
		Action:    action(airdrop),
		Name:      "airdrop",
		Usage:     "request SOL from the cluster faucet (not available on mainnet-beta)",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  amountFlag.Name,
				Usage: amountFlag.Usage,
				Value: "1",
			},
			rawFlag,
		},
	}
)

func requiredRecipientFlag() cli.Flag {
	f := *recipientFlag
	f.Required = true
	return &f
}

func requiredMintFlag() cli.Flag {
	f := *mintFlag
	f.Required = true
	return &f
}

func transferSol(c *cli.Context, r *runtime) error {
	receiver, err := getRecipient(c, r)
	if err != nil {
		return err
	}

	lamports, err := getAmount(c, amount.SolDecimals)
	if err != nil {
		return err
	}

	accounts := []transfer.NamedAccount{
		{Name: "signer", PublicKey: r.svc.Signer()},
		{Name: "receiver", PublicKey: receiver},
	}
	return r.submit(accounts, func() (solana.Signature, error) {
		return r.svc.TransferSol(r.ctx, receiver, lamports)
	})
}

func transferSolToPda(c *cli.Context, r *runtime) error {
	lamports, err := getAmount(c, amount.SolDecimals)
	if err != nil {
		return err
	}

	addrs, err := r.svc.GetAddresses(nil)
	if err != nil {
		return err
	}

	accounts := []transfer.NamedAccount{
		{Name: "signer", PublicKey: addrs.Signer},
		{Name: "sol vault", PublicKey: addrs.SolVault},
	}
	return r.submit(accounts, func() (solana.Signature, error) {
		return r.svc.TransferSolToVault(r.ctx, lamports)
	})
}

func transferSolFromPda(c *cli.Context, r *runtime) error {
	recipient, err := getRecipient(c, r)
	if err != nil {
		return err
	}

	lamports, err := getAmount(c, amount.SolDecimals)
	if err != nil {
		return err
	}

	accounts := []transfer.NamedAccount{
		{Name: "signer", PublicKey: r.svc.Signer()},
		{Name: "recipient", PublicKey: recipient},
	}
	return r.submit(accounts, func() (solana.Signature, error) {
		return r.svc.TransferSolFromVault(r.ctx, recipient, lamports)
	})
}

func transferTokens(c *cli.Context, r *runtime) error {
	t, err := getToken(c, r)
	if err != nil {
		return err
	}

	recipient, err := getRecipient(c, r)
	if err != nil {
		return err
	}

	quarks, err := getAmount(c, t.Decimals)
	if err != nil {
		return err
	}

	return r.submit(nil, func() (solana.Signature, error) {
		return r.svc.TransferTokens(r.ctx, t, recipient, quarks)
	})
}

func transferTokensToPda(c *cli.Context, r *runtime) error {
	t, err := getToken(c, r)
	if err != nil {
		return err
	}

	quarks, err := getAmount(c, t.Decimals)
	if err != nil {
		return err
	}

	return r.submit(nil, func() (solana.Signature, error) {
		return r.svc.TransferTokensToVault(r.ctx, t, quarks)
	})
}

func transferTokensFromPda(c *cli.Context, r *runtime) error {
	t, err := getToken(c, r)
	if err != nil {
		return err
	}

	recipient, err := getRecipient(c, r)
	if err != nil {
		return err
	}

	quarks, err := getAmount(c, t.Decimals)
	if err != nil {
		return err
	}

	return r.submit(nil, func() (solana.Signature, error) {
		return r.svc.TransferTokensFromVault(r.ctx, t, recipient, quarks)
	})
}

func balance(c *cli.Context, r *runtime) error {
	t, err := getOptionalToken(c, r)
	if err != nil {
		return err
	}

	addrs, err := r.svc.GetAddresses(t)
	if err != nil {
		return err
	}

	balances, err := r.svc.GetBalances(
		r.ctx,
		"Current",
		transfer.NamedAccount{Name: "signer", PublicKey: addrs.Signer},
		transfer.NamedAccount{Name: "sol vault", PublicKey: addrs.SolVault},
		transfer.NamedAccount{Name: "token vault", PublicKey: addrs.TokenVault},
	)
	if err != nil {
		return err
	}

	for _, b := range balances {
		fmt.Fprintf(r.out, "%-12s %s SOL\n", b.Name+":", amount.FormatUnits(b.Lamports, amount.SolDecimals))
	}

	if t == nil {
		return nil
	}

	for _, owner := range []transfer.NamedAccount{
		{Name: "signer", PublicKey: addrs.Signer},
		{Name: "token vault", PublicKey: addrs.TokenVault},
	} {
		quarks, err := r.svc.GetTokenBalance(r.ctx, t, owner.PublicKey)
		if err != nil {
			r.log.WithError(err).WithField("account", owner.Name).Debug("no token balance")
			fmt.Fprintf(r.out, "%-12s no token account\n", owner.Name+":")
			continue
		}
		fmt.Fprintf(r.out, "%-12s %s tokens\n", owner.Name+":", amount.FormatUnits(quarks, t.Decimals))
	}

	return nil
}

func addresses(c *cli.Context, r *runtime) error {
	t, err := getOptionalToken(c, r)
	if err != nil {
		return err
	}

	addrs, err := r.svc.GetAddresses(t)
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "Signer:                    %s\n", base58.Encode(addrs.Signer))
	fmt.Fprintf(r.out, "SOL vault:                 %s\n", base58.Encode(addrs.SolVault))
	fmt.Fprintf(r.out, "Token vault:               %s\n", base58.Encode(addrs.TokenVault))
	if t != nil {
		fmt.Fprintf(r.out, "Signer token account:      %s\n", base58.Encode(addrs.SignerTokenAccount))
		fmt.Fprintf(r.out, "Token vault token account: %s\n", base58.Encode(addrs.TokenVaultTokenAccount))
	}

	return nil
}

func airdrop(c *cli.Context, r *runtime) error {
	lamports, err := getAmount(c, amount.SolDecimals)
	if err != nil {
		return err
	}

	accounts := []transfer.NamedAccount{
		{Name: "signer", PublicKey: r.svc.Signer()},
	}
	return r.submit(accounts, func() (solana.Signature, error) {
		return r.svc.RequestAirdrop(r.ctx, lamports)
	})
}

// getRecipient parses --to, falling back to the signer when it isn't set.
func getRecipient(c *cli.Context, r *runtime) (ed25519.PublicKey, error) {
	if !c.IsSet(recipientFlag.Name) {
		return r.svc.Signer(), nil
	}

	recipient, err := solana.PublicKeyFromBase58(c.String(recipientFlag.Name))
	if err != nil {
		return nil, errors.Wrap(err, "invalid recipient")
	}
	return recipient, nil
}

func getAmount(c *cli.Context, decimals uint8) (uint64, error) {
	val := c.String(amountFlag.Name)

	if c.Bool(rawFlag.Name) {
		units, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			return 0, errors.Wrapf(amount.ErrInvalidAmount, "%q is not a base unit amount", val)
		}
		return units, nil
	}

	return amount.ParseUnits(val, decimals)
}

func getToken(c *cli.Context, r *runtime) (*transfer.Token, error) {
	mint, err := solana.PublicKeyFromBase58(c.String(mintFlag.Name))
	if err != nil {
		return nil, errors.Wrap(err, "invalid mint")
	}

	t, err := r.svc.GetToken(r.ctx, mint)
	if err != nil {
		return nil, err
	}

	if c.IsSet(tokenProgramFlag.Name) {
		t.Program, err = token.ParseTokenProgram(c.String(tokenProgramFlag.Name))
		if err != nil {
			return nil, err
		}
	}

	return t, nil
}

func getOptionalToken(c *cli.Context, r *runtime) (*transfer.Token, error) {
	if !c.IsSet(mintFlag.Name) {
		return nil, nil
	}
	return getToken(c, r)
}
