// Command transfers submits the solana-transfers program's instructions from
// a local keypair.
package main

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const clientIdentifier = "transfers"

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = filepath.Base(os.Args[0])
	app.Usage = "move SOL and SPL tokens through the solana-transfers program"
	app.HideVersion = true
	app.Flags = globalFlags
	app.Commands = []*cli.Command{
		transferSolCommand,
		transferSolToPdaCommand,
		transferSolFromPdaCommand,
		transferTokensCommand,
		transferTokensToPdaCommand,
		transferTokensFromPdaCommand,
		balanceCommand,
		addressesCommand,
		airdropCommand,
	}
	sort.Sort(cli.CommandsByName(app.Commands))
	return app
}

func main() {
	// A missing .env is fine, the environment and flags are enough.
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		logrus.StandardLogger().WithField("type", clientIdentifier).WithError(err).Error("command failed")
		os.Exit(1)
	}
}
