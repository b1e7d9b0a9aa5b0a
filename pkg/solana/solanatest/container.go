// Package solanatest runs a solana-test-validator in Docker for integration
// tests.
package solanatest

import (
	"fmt"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/solana-transfers/pkg/retry"
	"github.com/code-payments/solana-transfers/pkg/retry/backoff"
	"github.com/code-payments/solana-transfers/pkg/solana"
)

const (
	imageName = "solanalabs/solana"
	imageTag  = "v1.18.26"

	rpcPort = "8899/tcp"

	containerAutoKill = 300 * time.Second
)

// StartValidator starts a single node test validator with a built in faucet
// and returns a client connected to its RPC port.
func StartValidator(pool *dockertest.Pool) (client solana.Client, endpoint string, teardown func(), err error) {
	teardown = func() {}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository:   imageName,
		Tag:          imageTag,
		Entrypoint:   []string{"solana-test-validator"},
		Cmd:          []string{"--reset", "--quiet", "--ledger", "/tmp/test-ledger"},
		ExposedPorts: []string{rpcPort},
	}, func(config *docker.HostConfig) {
		// set AutoRemove to true so that stopped container goes away by itself
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, "", teardown, errors.Wrap(err, "failed to start solana-test-validator")
	}

	// 2024/04/14: Expire() _never_ returns an error
	_ = resource.Expire(uint(containerAutoKill.Seconds()))

	log := logrus.StandardLogger().WithField("method", "StartValidator")

	teardown = func() {
		if err := pool.Purge(resource); err != nil {
			log.WithError(err).Errorf("failed to cleanup validator resource")
		}
	}

	endpoint = fmt.Sprintf("http://%s", resource.GetHostPort(rpcPort))
	client = solana.New(endpoint)

	// The validator serves RPC before its first block, so wait for a
	// blockhash rather than a connection.
	_, err = retry.Retry(
		func() error {
			_, err := client.GetLatestBlockhash()
			return err
		},
		retry.Limit(120),
		retry.Backoff(backoff.Constant(500*time.Millisecond), 500*time.Millisecond),
	)
	if err != nil {
		return nil, "", teardown, errors.Wrap(err, "timed out waiting for validator to become available")
	}

	log.WithField("endpoint", endpoint).Debug("validator started")

	return client, endpoint, teardown, nil
}
