package transfer

import (
	"bytes"
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/solana-transfers/pkg/cache"
	"github.com/code-payments/solana-transfers/pkg/metrics"
	"github.com/code-payments/solana-transfers/pkg/solana"
	"github.com/code-payments/solana-transfers/pkg/solana/token"
	"github.com/code-payments/solana-transfers/pkg/solana/transfers"
)

var (
	ErrInvalidMint         = errors.New("invalid mint")
	ErrInvalidTokenAccount = errors.New("invalid token account")
)

// Token is a mint along with the token program that owns it.
type Token struct {
	Mint     ed25519.PublicKey
	Program  ed25519.PublicKey
	Decimals uint8
}

// GetToken loads the mint account. The token program is the mint's owner.
// Mints are cached for the lifetime of the service, and callers get their own
// copy.
func (s *Service) GetToken(ctx context.Context, mint ed25519.PublicKey) (*Token, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "GetToken")
	defer tracer.End()

	key := base58.Encode(mint)
	if cached, ok := s.tokens.Retrieve(key); ok {
		t := *cached
		return &t, nil
	}

	info, err := s.sc.GetAccountInfo(mint, s.commitment)
	if err == solana.ErrNoAccountInfo {
		return nil, errors.Wrapf(ErrInvalidMint, "%s does not exist", base58.Encode(mint))
	} else if err != nil {
		tracer.OnError(err)
		return nil, errors.Wrap(err, "error getting mint account")
	}

	if !token.IsTokenProgram(info.Owner) {
		return nil, errors.Wrapf(ErrInvalidMint, "%s is owned by %s", base58.Encode(mint), base58.Encode(info.Owner))
	}

	var m token.Mint
	if !m.Unmarshal(info.Data) {
		return nil, errors.Wrapf(ErrInvalidMint, "%s is not an initialized mint", base58.Encode(mint))
	}

	t := &Token{
		Mint:     mint,
		Program:  info.Owner,
		Decimals: m.Decimals,
	}

	// A concurrent lookup may have already cached the mint.
	if err := s.tokens.Insert(key, t, 1); err != nil && err != cache.ErrKeyExists {
		return nil, err
	}

	cp := *t
	return &cp, nil
}

// GetMintDecimals returns the number of decimals of the mint.
func (s *Service) GetMintDecimals(ctx context.Context, mint ed25519.PublicKey) (uint8, error) {
	t, err := s.GetToken(ctx, mint)
	if err != nil {
		return 0, err
	}
	return t.Decimals, nil
}

// GetTokenBalance returns the balance, in base units, of owner's associated
// token account.
func (s *Service) GetTokenBalance(ctx context.Context, t *Token, owner ed25519.PublicKey) (uint64, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "GetTokenBalance")
	defer tracer.End()

	ata, err := token.GetAssociatedAccount(owner, t.Mint, t.Program)
	if err != nil {
		return 0, errors.Wrap(err, "error deriving associated token account")
	}

	balance, err := s.sc.GetTokenAccountBalance(ata)
	if err != nil {
		tracer.OnError(err)
		return 0, errors.Wrapf(err, "error getting balance of %s", base58.Encode(ata))
	}

	return balance.Quarks()
}

// TransferTokens moves amount base units from the signer's associated token
// account to recipient's.
func (s *Service) TransferTokens(ctx context.Context, t *Token, recipient ed25519.PublicKey, amount uint64) (solana.Signature, error) {
	senderTokenAccount, err := token.GetAssociatedAccount(s.Signer(), t.Mint, t.Program)
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "error deriving sender token account")
	}

	setup, recipientTokenAccount, err := s.getRecipientTokenAccount(ctx, t, recipient)
	if err != nil {
		return solana.Signature{}, err
	}

	return s.submit(ctx, "TransferTokens", amount, append(setup, transfers.NewTransferTokensInstruction(
		&transfers.TransferTokensInstructionAccounts{
			Signer:                s.Signer(),
			Mint:                  t.Mint,
			SenderTokenAccount:    senderTokenAccount,
			RecipientTokenAccount: recipientTokenAccount,
			TokenProgram:          t.Program,
		},
		&transfers.TransferTokensInstructionArgs{
			Amount: amount,
		},
	))...)
}

// TransferTokensToVault moves amount base units from the signer's associated
// token account into the signer's token vault.
func (s *Service) TransferTokensToVault(ctx context.Context, t *Token, amount uint64) (solana.Signature, error) {
	senderTokenAccount, err := token.GetAssociatedAccount(s.Signer(), t.Mint, t.Program)
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "error deriving sender token account")
	}

	vault, vaultTokenAccount, err := s.getTokenVault(t)
	if err != nil {
		return solana.Signature{}, err
	}

	return s.submit(ctx, "TransferTokensToVault", amount, transfers.NewTransferTokensToPdaInstruction(
		&transfers.TransferTokensToPdaInstructionAccounts{
			Signer:             s.Signer(),
			SenderTokenAccount: senderTokenAccount,
			Pda:                vault,
			PdaTokenAccount:    vaultTokenAccount,
			Mint:               t.Mint,
			TokenProgram:       t.Program,
		},
		&transfers.TransferTokensToPdaInstructionArgs{
			Amount: amount,
		},
	))
}

// TransferTokensFromVault moves amount base units from the signer's token
// vault to recipient's associated token account.
func (s *Service) TransferTokensFromVault(ctx context.Context, t *Token, recipient ed25519.PublicKey, amount uint64) (solana.Signature, error) {
	vault, vaultTokenAccount, err := s.getTokenVault(t)
	if err != nil {
		return solana.Signature{}, err
	}

	setup, recipientTokenAccount, err := s.getRecipientTokenAccount(ctx, t, recipient)
	if err != nil {
		return solana.Signature{}, err
	}

	return s.submit(ctx, "TransferTokensFromVault", amount, append(setup, transfers.NewTransferTokensFromPdaInstruction(
		&transfers.TransferTokensFromPdaInstructionAccounts{
			Signer:               s.Signer(),
			Pda:                  vault,
			PdaTokenAccount:      vaultTokenAccount,
			ReceiverTokenAccount: recipientTokenAccount,
			Mint:                 t.Mint,
			TokenProgram:         t.Program,
		},
		&transfers.TransferTokensFromPdaInstructionArgs{
			Amount: amount,
		},
	))...)
}

func (s *Service) getTokenVault(t *Token) (ed25519.PublicKey, ed25519.PublicKey, error) {
	vault, _, err := transfers.GetTokenVaultAddress(&transfers.GetTokenVaultAddressArgs{
		Owner: s.Signer(),
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, "error deriving token vault")
	}

	vaultTokenAccount, err := token.GetAssociatedAccount(vault, t.Mint, t.Program)
	if err != nil {
		return nil, nil, errors.Wrap(err, "error deriving token vault token account")
	}

	return vault, vaultTokenAccount, nil
}

// getRecipientTokenAccount derives recipient's associated token account. When
// it doesn't exist yet and creation is enabled, an idempotent create
// instruction paid by the signer is returned. An existing account must be an
// initialized token account for the mint, held by recipient.
func (s *Service) getRecipientTokenAccount(ctx context.Context, t *Token, recipient ed25519.PublicKey) ([]solana.Instruction, ed25519.PublicKey, error) {
	ata, err := token.GetAssociatedAccount(recipient, t.Mint, t.Program)
	if err != nil {
		return nil, nil, errors.Wrap(err, "error deriving recipient token account")
	}

	if !s.conf.createRecipientTokenAccount.Get(ctx) {
		return nil, ata, nil
	}

	info, err := s.sc.GetAccountInfo(ata, s.commitment)
	if err == nil {
		if err := checkTokenAccount(info, t, recipient); err != nil {
			return nil, nil, errors.Wrapf(err, "recipient token account %s", base58.Encode(ata))
		}
		return nil, ata, nil
	} else if err != solana.ErrNoAccountInfo {
		return nil, nil, errors.Wrap(err, "error getting recipient token account")
	}

	create, _, err := token.CreateAssociatedTokenAccountIdempotent(s.Signer(), recipient, t.Mint, t.Program)
	if err != nil {
		return nil, nil, errors.Wrap(err, "error creating recipient token account instruction")
	}

	s.log.WithContext(ctx).WithField("account", base58.Encode(ata)).Info("creating recipient token account")

	return []solana.Instruction{create}, ata, nil
}

func checkTokenAccount(info solana.AccountInfo, t *Token, holder ed25519.PublicKey) error {
	if !bytes.Equal(info.Owner, t.Program) {
		return errors.Wrapf(ErrInvalidTokenAccount, "owned by %s", base58.Encode(info.Owner))
	}

	var account token.Account
	if !account.Unmarshal(info.Data) {
		return errors.Wrap(ErrInvalidTokenAccount, "not initialized")
	}
	if !bytes.Equal(account.Mint, t.Mint) {
		return errors.Wrapf(ErrInvalidTokenAccount, "holds mint %s", base58.Encode(account.Mint))
	}
	if !bytes.Equal(account.Owner, holder) {
		return errors.Wrapf(ErrInvalidTokenAccount, "held by %s", base58.Encode(account.Owner))
	}

	return nil
}
