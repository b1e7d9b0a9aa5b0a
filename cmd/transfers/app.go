package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mr-tron/base58"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/code-payments/solana-transfers/pkg/metrics"
	"github.com/code-payments/solana-transfers/pkg/solana"
	"github.com/code-payments/solana-transfers/pkg/transfer"
)

const newRelicShutdownTimeout = 10 * time.Second

// runtime is everything a command needs, built from the global flags and
// config.
type runtime struct {
	ctx  context.Context
	log  *logrus.Entry
	out  io.Writer
	env  solana.Environment
	svc  *transfer.Service
	wait bool
	nr   *newrelic.Application
}

func newRuntime(c *cli.Context) (*runtime, error) {
	config, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	var nr *newrelic.Application
	if len(config.NewRelicLicenseKey) > 0 {
		nr, err = newrelic.NewApplication(
			newrelic.ConfigFromEnvironment(),
			newrelic.ConfigAppName(config.AppName),
			newrelic.ConfigLicense(config.NewRelicLicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			return nil, errors.Wrap(err, "error connecting to new relic")
		}
	}

	configureLogger(c, config, nr)

	env, err := solana.ParseEnvironment(config.Cluster)
	if err != nil {
		return nil, err
	}

	commitment, err := solana.ParseCommitment(config.Commitment)
	if err != nil {
		return nil, err
	}

	signer, err := solana.LoadKeypairFile(config.KeypairPath)
	if err != nil {
		return nil, err
	}

	sc := solana.New(
		string(env),
		solana.WithRateLimit(config.RPCRateLimit),
		solana.WithSkipPreflight(config.SkipPreflight),
	)

	svc := transfer.New(sc, env, signer, commitment, transfer.WithEnvConfigs())

	log := logrus.StandardLogger().WithFields(logrus.Fields{
		"type":    "cmd/transfers",
		"cluster": string(env),
		"signer":  base58.Encode(svc.Signer()),
	})

	return &runtime{
		ctx:  metrics.NewContext(c.Context, nr),
		log:  log,
		out:  c.App.Writer,
		env:  env,
		svc:  svc,
		wait: c.Bool(waitFlag.Name),
		nr:   nr,
	}, nil
}

func (r *runtime) close() {
	if r.nr != nil {
		r.nr.Shutdown(newRelicShutdownTimeout)
	}
}

func configureLogger(c *cli.Context, config *BaseConfig, nr *newrelic.Application) {
	var formatter logrus.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	if c.Bool(jsonFormatFlag.Name) {
		formatter = &logrus.JSONFormatter{}
	}
	logrus.SetFormatter(metrics.NewCustomNewRelicLogFormatter(nr, formatter))

	if c.IsSet(verbosityFlag.Name) {
		logrus.SetLevel(logrus.Level(c.Uint64(verbosityFlag.Name)))
	} else if level, err := logrus.ParseLevel(strings.ToLower(config.LogLevel)); err != nil {
		logrus.StandardLogger().WithField("log_level", config.LogLevel).Warn("unknown log level, ignoring")
	} else {
		logrus.SetLevel(level)
	}

	logrus.SetOutput(c.App.ErrWriter)
}

// action wraps a command so it runs with a runtime and within a New Relic
// transaction named after the command.
func action(fn func(c *cli.Context, r *runtime) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.NArg() > 0 {
			return errors.Errorf("invalid argument: %q", c.Args().Get(0))
		}

		r, err := newRuntime(c)
		if err != nil {
			return err
		}
		defer r.close()

		ctx, end := metrics.StartTransaction(r.ctx, c.Command.Name)
		defer end()
		r.ctx = ctx

		return fn(c, r)
	}
}

// submit runs a transfer, printing the signature and explorer link. With
// --wait, balances are logged before submission and after confirmation.
func (r *runtime) submit(accounts []transfer.NamedAccount, fn func() (solana.Signature, error)) error {
	if r.wait {
		if _, err := r.svc.GetBalances(r.ctx, "Beginning", accounts...); err != nil {
			return err
		}
	}

	sig, err := fn()
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "Signature: %s\n", sig)
	fmt.Fprintf(r.out, "Explorer:  %s\n", solana.ExplorerURL(sig, r.env))

	if !r.wait {
		return nil
	}

	status, err := r.svc.WaitForConfirmation(r.ctx, sig)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Confirmed: slot %d\n", status.Slot)

	_, err = r.svc.GetBalances(r.ctx, "Resulting", accounts...)
	return err
}
