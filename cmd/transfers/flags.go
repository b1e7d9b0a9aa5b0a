package main

import (
	"github.com/urfave/cli/v2"
)

var (
	configFileFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "optional yaml config file",
	}
	clusterFlag = &cli.StringFlag{
		Name:  "cluster",
		Usage: "devnet, testnet, mainnet-beta, localnet or an RPC url (default: devnet)",
	}
	keypairFlag = &cli.StringFlag{
		Name:  "keypair",
		Usage: "solana-keygen keypair file of the signer (default: ~/.config/solana/id.json)",
	}
	commitmentFlag = &cli.StringFlag{
		Name:  "commitment",
		Usage: "processed, confirmed or finalized (default: confirmed)",
	}
	verbosityFlag = &cli.Uint64Flag{
		Name:    "verbosity",
		Aliases: []string{"v"},
		Usage:   "log verbosity (0:panic, 1:fatal, 2:error, 3:warn, 4:info, 5:debug, 6:trace), overrides LOG_LEVEL",
	}
	jsonFormatFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "output log in json format",
	}
	waitFlag = &cli.BoolFlag{
		Name:  "wait",
		Usage: "wait for the transaction to reach the commitment level and print resulting balances",
	}
	skipPreflightFlag = &cli.BoolFlag{
		Name:  "skip-preflight",
		Usage: "submit without simulating the transaction first",
	}

	globalFlags = []cli.Flag{
		configFileFlag,
		clusterFlag,
		keypairFlag,
		commitmentFlag,
		verbosityFlag,
		jsonFormatFlag,
		waitFlag,
		skipPreflightFlag,
	}
)

var (
	recipientFlag = &cli.StringFlag{
		Name:  "to",
		Usage: "recipient wallet address",
	}
	amountFlag = &cli.StringFlag{
		Name:     "amount",
		Usage:    "amount in SOL or whole tokens, ie. 1.5",
		Required: true,
	}
	rawFlag = &cli.BoolFlag{
		Name:  "raw",
		Usage: "amount is in base units (lamports or token quarks)",
	}
	mintFlag = &cli.StringFlag{
		Name:  "mint",
		Usage: "token mint address",
	}
	tokenProgramFlag = &cli.StringFlag{
		Name:  "token-program",
		Usage: "token or token-2022, overrides the mint's owner",
	}
)
