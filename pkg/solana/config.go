package solana

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

type Environment string

const (
	EnvironmentDev   Environment = "https://api.devnet.solana.com"
	EnvironmentTest  Environment = "https://api.testnet.solana.com"
	EnvironmentProd  Environment = "https://api.mainnet-beta.solana.com"
	EnvironmentLocal Environment = "http://127.0.0.1:8899"
)

const explorerBaseURL = "https://explorer.solana.com"

// ParseEnvironment accepts a cluster moniker (devnet, testnet, mainnet-beta,
// localnet) or an http(s) RPC URL.
func ParseEnvironment(value string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "devnet", "dev", "":
		return EnvironmentDev, nil
	case "testnet", "test":
		return EnvironmentTest, nil
	case "mainnet-beta", "mainnet", "prod":
		return EnvironmentProd, nil
	case "localnet", "localhost", "local":
		return EnvironmentLocal, nil
	}

	u, err := url.Parse(value)
	if err != nil {
		return "", errors.Wrapf(err, "invalid cluster url %q", value)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", errors.Errorf("unknown cluster %q", value)
	}

	if u.RawQuery == "" && u.Fragment == "" {
		normalized := normalizeURL(u)
		for _, env := range []Environment{EnvironmentDev, EnvironmentTest, EnvironmentProd, EnvironmentLocal} {
			if normalized == string(env) {
				return env, nil
			}
		}
	}
	return Environment(value), nil
}

// normalizeURL writes u the way the known endpoints are written: lower case
// host, no default port and no trailing slash.
func normalizeURL(u *url.URL) string {
	host := strings.ToLower(u.Host)
	switch {
	case u.Scheme == "https" && strings.HasSuffix(host, ":443"),
		u.Scheme == "http" && strings.HasSuffix(host, ":80"):
		host = host[:strings.LastIndex(host, ":")]
	}
	if hostname := strings.TrimSuffix(host, ":"+u.Port()); hostname == "localhost" {
		host = strings.Replace(host, "localhost", "127.0.0.1", 1)
	}
	return u.Scheme + "://" + host + strings.TrimRight(u.Path, "/")
}

// ExplorerURL links the transaction on the Solana explorer for the cluster.
func ExplorerURL(sig Signature, env Environment) string {
	base := fmt.Sprintf("%s/tx/%s", explorerBaseURL, sig)

	switch env {
	case EnvironmentProd:
		return base
	case EnvironmentDev:
		return base + "?cluster=devnet"
	case EnvironmentTest:
		return base + "?cluster=testnet"
	}
	return base + "?cluster=custom&customUrl=" + url.QueryEscape(string(env))
}
