package transfer

import (
	"time"

	"github.com/code-payments/solana-transfers/pkg/config"
	"github.com/code-payments/solana-transfers/pkg/config/env"
	"github.com/code-payments/solana-transfers/pkg/config/memory"
	"github.com/code-payments/solana-transfers/pkg/config/wrapper"
	"github.com/code-payments/solana-transfers/pkg/solana"
)

const (
	envConfigPrefix = "TRANSFER_SERVICE_"

	ConfirmationTimeoutConfigEnvName = envConfigPrefix + "CONFIRMATION_TIMEOUT"
	defaultConfirmationTimeout       = time.Minute

	ConfirmationPollIntervalConfigEnvName = envConfigPrefix + "CONFIRMATION_POLL_INTERVAL"
	defaultConfirmationPollInterval       = solana.PollRate

	CreateRecipientTokenAccountConfigEnvName = envConfigPrefix + "CREATE_RECIPIENT_TOKEN_ACCOUNT"
	defaultCreateRecipientTokenAccount       = true

	// Zero disables the limit.
	MaxTransferAmountConfigEnvName = envConfigPrefix + "MAX_TRANSFER_AMOUNT"
	defaultMaxTransferAmount       = 0

	// Zero leaves the cluster default in place.
	ComputeUnitLimitConfigEnvName = envConfigPrefix + "COMPUTE_UNIT_LIMIT"
	defaultComputeUnitLimit       = 0

	// Priority fee in micro-lamports per compute unit. Zero disables it.
	ComputeUnitPriceConfigEnvName = envConfigPrefix + "COMPUTE_UNIT_PRICE"
	defaultComputeUnitPrice       = 0
)

type conf struct {
	confirmationTimeout         config.Duration
	confirmationPollInterval    config.Duration
	createRecipientTokenAccount config.Bool
	maxTransferAmount           config.Uint64
	computeUnitLimit            config.Uint64
	computeUnitPrice            config.Uint64
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			confirmationTimeout:         env.NewDurationConfig(ConfirmationTimeoutConfigEnvName, defaultConfirmationTimeout),
			confirmationPollInterval:    env.NewDurationConfig(ConfirmationPollIntervalConfigEnvName, defaultConfirmationPollInterval),
			createRecipientTokenAccount: env.NewBoolConfig(CreateRecipientTokenAccountConfigEnvName, defaultCreateRecipientTokenAccount),
			maxTransferAmount:           env.NewUint64Config(MaxTransferAmountConfigEnvName, defaultMaxTransferAmount),
			computeUnitLimit:            env.NewUint64Config(ComputeUnitLimitConfigEnvName, defaultComputeUnitLimit),
			computeUnitPrice:            env.NewUint64Config(ComputeUnitPriceConfigEnvName, defaultComputeUnitPrice),
		}
	}
}

type testOverrides struct {
	confirmationTimeout          time.Duration
	confirmationPollInterval     time.Duration
	disableRecipientTokenAccount bool
	maxTransferAmount            uint64
	computeUnitLimit             uint64
	computeUnitPrice             uint64
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		return &conf{
			confirmationTimeout:         wrapper.NewDurationConfig(memory.NewConfig(overrides.confirmationTimeout), defaultConfirmationTimeout),
			confirmationPollInterval:    wrapper.NewDurationConfig(memory.NewConfig(overrides.confirmationPollInterval), defaultConfirmationPollInterval),
			createRecipientTokenAccount: wrapper.NewBoolConfig(memory.NewConfig(!overrides.disableRecipientTokenAccount), defaultCreateRecipientTokenAccount),
			maxTransferAmount:           wrapper.NewUint64Config(memory.NewConfig(overrides.maxTransferAmount), defaultMaxTransferAmount),
			computeUnitLimit:            wrapper.NewUint64Config(memory.NewConfig(overrides.computeUnitLimit), defaultComputeUnitLimit),
			computeUnitPrice:            wrapper.NewUint64Config(memory.NewConfig(overrides.computeUnitPrice), defaultComputeUnitPrice),
		}
	}
}
