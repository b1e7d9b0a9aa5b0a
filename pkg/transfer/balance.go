package transfer

import (
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/solana-transfers/pkg/amount"
	"github.com/code-payments/solana-transfers/pkg/metrics"
	"github.com/code-payments/solana-transfers/pkg/solana"
	"github.com/code-payments/solana-transfers/pkg/solana/token"
	"github.com/code-payments/solana-transfers/pkg/solana/transfers"
)

type NamedAccount struct {
	Name      string
	PublicKey ed25519.PublicKey
}

type Balance struct {
	NamedAccount
	Lamports uint64
}

// GetBalances fetches and logs the SOL balance of each account, labelled with
// timeframe (for example "Beginning" or "Resulting"). Accounts that don't
// exist have a zero balance.
func (s *Service) GetBalances(ctx context.Context, timeframe string, accounts ...NamedAccount) ([]Balance, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "GetBalances")
	defer tracer.End()

	balances := make([]Balance, len(accounts))
	for i, account := range accounts {
		lamports, err := s.sc.GetBalance(account.PublicKey)
		if err == solana.ErrNoBalance {
			lamports = 0
		} else if err != nil {
			tracer.OnError(err)
			return nil, errors.Wrapf(err, "error getting balance of %s", account.Name)
		}

		balances[i] = Balance{
			NamedAccount: account,
			Lamports:     lamports,
		}

		s.log.WithContext(ctx).WithFields(logrus.Fields{
			"timeframe": timeframe,
			"account":   account.Name,
			"address":   base58.Encode(account.PublicKey),
			"sol":       amount.FormatUnits(lamports, amount.SolDecimals),
		}).Infof("%s balance", timeframe)
	}

	return balances, nil
}

// Addresses are the accounts the program touches for the signer.
type Addresses struct {
	Signer     ed25519.PublicKey
	SolVault   ed25519.PublicKey
	TokenVault ed25519.PublicKey

	// Only set when a token was provided.
	SignerTokenAccount     ed25519.PublicKey
	TokenVaultTokenAccount ed25519.PublicKey
}

// GetAddresses derives the signer's vaults and, when t is not nil, the token
// accounts for t.
func (s *Service) GetAddresses(t *Token) (*Addresses, error) {
	solVault, _, err := transfers.GetSolVaultAddress(&transfers.GetSolVaultAddressArgs{
		Owner: s.Signer(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "error deriving sol vault")
	}

	tokenVault, _, err := transfers.GetTokenVaultAddress(&transfers.GetTokenVaultAddressArgs{
		Owner: s.Signer(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "error deriving token vault")
	}

	addresses := &Addresses{
		Signer:     s.Signer(),
		SolVault:   solVault,
		TokenVault: tokenVault,
	}

	if t == nil {
		return addresses, nil
	}

	addresses.SignerTokenAccount, err = token.GetAssociatedAccount(s.Signer(), t.Mint, t.Program)
	if err != nil {
		return nil, errors.Wrap(err, "error deriving signer token account")
	}

	addresses.TokenVaultTokenAccount, err = transfers.GetTokenVaultTokenAccount(&transfers.GetTokenVaultTokenAccountArgs{
		Owner:        s.Signer(),
		Mint:         t.Mint,
		TokenProgram: t.Program,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error deriving token vault token account")
	}

	return addresses, nil
}

// RequestAirdrop asks the cluster faucet for lamports on behalf of the
// signer. Only devnet, testnet and local validators serve airdrops.
func (s *Service) RequestAirdrop(ctx context.Context, lamports uint64) (solana.Signature, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "RequestAirdrop")
	defer tracer.End()

	if s.env == solana.EnvironmentProd {
		return solana.Signature{}, errors.New("airdrops are not available on mainnet-beta")
	}

	sig, err := s.sc.RequestAirdrop(s.Signer(), lamports, s.commitment)
	if err != nil {
		tracer.OnError(err)
		return sig, errors.Wrap(err, "error requesting airdrop")
	}

	s.log.WithContext(ctx).WithFields(logrus.Fields{
		"signature": sig.String(),
		"sol":       amount.FormatUnits(lamports, amount.SolDecimals),
	}).Info("airdrop requested")

	return sig, nil
}
