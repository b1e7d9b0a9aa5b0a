package main

import (
	"bytes"
	"crypto/ed25519"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/code-payments/solana-transfers/pkg/amount"
	"github.com/code-payments/solana-transfers/pkg/solana/transfers"
	"github.com/code-payments/solana-transfers/pkg/testutil"
)

func runWithConfig(t *testing.T, args ...string) (*BaseConfig, error) {
	var config *BaseConfig
	app := &cli.App{
		Flags: globalFlags,
		Action: func(c *cli.Context) (err error) {
			config, err = loadConfig(c)
			return err
		},
	}
	err := app.Run(append([]string{"transfers"}, args...))
	return config, err
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, name := range []string{
		"LOG_LEVEL",
		"APP_NAME",
		"SOLANA_CLUSTER",
		"SOLANA_KEYPAIR_PATH",
		"SOLANA_COMMITMENT",
		"SOLANA_RPC_RATE_LIMIT",
		"SOLANA_SKIP_PREFLIGHT",
		"NEW_RELIC_LICENSE_KEY",
	} {
		t.Setenv(name, "")
	}

	config, err := runWithConfig(t)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig, *config)
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join([]string{
		"cluster: testnet",
		"commitment: finalized",
		"keypair_path: /from/file.json",
		"rpc_rate_limit: 2.5",
	}, "\n")), 0600))

	t.Setenv("SOLANA_COMMITMENT", "processed")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SOLANA_CLUSTER", "")
	t.Setenv("SOLANA_KEYPAIR_PATH", "")
	t.Setenv("SOLANA_RPC_RATE_LIMIT", "")

	config, err := runWithConfig(t, "--config", path, "--keypair", "/from/flag.json", "--skip-preflight")
	require.NoError(t, err)

	assert.Equal(t, "testnet", config.Cluster)
	assert.Equal(t, "processed", config.Commitment)
	assert.Equal(t, "/from/flag.json", config.KeypairPath)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, 2.5, config.RPCRateLimit)
	assert.True(t, config.SkipPreflight)

	_, err = runWithConfig(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestGetAmount(t *testing.T) {
	for _, tc := range []struct {
		args     []string
		decimals uint8
		expected uint64
		err      error
	}{
		{args: []string{"--amount", "1.5"}, decimals: amount.SolDecimals, expected: 1_500_000_000},
		{args: []string{"--amount", "0.000001"}, decimals: 6, expected: 1},
		{args: []string{"--amount", "42", "--raw"}, decimals: 6, expected: 42},
		{args: []string{"--amount", "1.5", "--raw"}, decimals: 6, err: amount.ErrInvalidAmount},
		{args: []string{"--amount", "0.0000001"}, decimals: 6, err: amount.ErrNotRepresentable},
		{args: []string{"--amount", "-1"}, decimals: 6, err: amount.ErrInvalidAmount},
	} {
		var actual uint64
		app := &cli.App{
			Flags: []cli.Flag{amountFlag, rawFlag},
			Action: func(c *cli.Context) (err error) {
				actual, err = getAmount(c, tc.decimals)
				return err
			},
		}

		err := app.Run(append([]string{"transfers"}, tc.args...))
		if tc.err != nil {
			assert.True(t, errors.Is(err, tc.err), "%v: %v", tc.args, err)
			continue
		}

		require.NoError(t, err, tc.args)
		assert.Equal(t, tc.expected, actual, tc.args)
	}
}

func TestAddressesCommand(t *testing.T) {
	t.Setenv("NEW_RELIC_LICENSE_KEY", "")
	defer testutil.DisableLogging()()

	signer := testutil.GenerateSolanaKeypair(t)
	path := testutil.WriteSolanaKeypairFile(t, signer)

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard

	require.NoError(t, app.Run([]string{"transfers", "--keypair", path, "--cluster", "localnet", "addresses"}))

	pub := signer.Public().(ed25519.PublicKey)
	solVault, _, err := transfers.GetSolVaultAddress(&transfers.GetSolVaultAddressArgs{Owner: pub})
	require.NoError(t, err)
	tokenVault, _, err := transfers.GetTokenVaultAddress(&transfers.GetTokenVaultAddressArgs{Owner: pub})
	require.NoError(t, err)

	assert.Contains(t, out.String(), base58.Encode(pub))
	assert.Contains(t, out.String(), base58.Encode(solVault))
	assert.Contains(t, out.String(), base58.Encode(tokenVault))
	assert.NotContains(t, out.String(), "token account")
}

func TestCommandErrors(t *testing.T) {
	defer testutil.DisableLogging()()

	signer := testutil.GenerateSolanaKeypair(t)
	path := testutil.WriteSolanaKeypairFile(t, signer)

	for _, args := range [][]string{
		{"--keypair", filepath.Join(t.TempDir(), "missing.json"), "addresses"},
		{"--keypair", path, "--cluster", "nowhere", "addresses"},
		{"--keypair", path, "--commitment", "eventually", "addresses"},
		{"--keypair", path, "addresses", "extra"},
		{"--keypair", path, "transfer-sol", "--amount", "1"},
	} {
		app := newApp()
		app.Writer = io.Discard
		app.ErrWriter = io.Discard

		assert.Error(t, app.Run(append([]string{"transfers"}, args...)), args)
	}
}
