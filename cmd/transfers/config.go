package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

// BaseConfig is the CLI configuration. Values are layered, highest priority
// first: command line flags, environment variables, the config file and
// defaults.
type BaseConfig struct {
	LogLevel string `mapstructure:"log_level"`

	AppName string `mapstructure:"app_name"`

	// Cluster is a moniker (devnet, testnet, mainnet-beta, localnet) or an
	// RPC url.
	Cluster     string `mapstructure:"cluster"`
	KeypairPath string `mapstructure:"keypair_path"`
	Commitment  string `mapstructure:"commitment"`

	// Requests per second against the RPC node. Zero disables rate limiting.
	RPCRateLimit  float64 `mapstructure:"rpc_rate_limit"`
	SkipPreflight bool    `mapstructure:"skip_preflight"`

	// Metrics are only reported when a license key is provided.
	NewRelicLicenseKey string `mapstructure:"new_relic_license_key"`
}

var defaultConfig = BaseConfig{
	LogLevel: "info",

	AppName: "solana-transfers",

	Cluster:     "devnet",
	KeypairPath: "~/.config/solana/id.json",
	Commitment:  "confirmed",
}

func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("log_level", "LOG_LEVEL")

	_ = v.BindEnv("app_name", "APP_NAME")

	_ = v.BindEnv("cluster", "SOLANA_CLUSTER")
	_ = v.BindEnv("keypair_path", "SOLANA_KEYPAIR_PATH")
	_ = v.BindEnv("commitment", "SOLANA_COMMITMENT")

	_ = v.BindEnv("rpc_rate_limit", "SOLANA_RPC_RATE_LIMIT")
	_ = v.BindEnv("skip_preflight", "SOLANA_SKIP_PREFLIGHT")

	_ = v.BindEnv("new_relic_license_key", "NEW_RELIC_LICENSE_KEY")
}

func loadConfig(c *cli.Context) (*BaseConfig, error) {
	v := viper.New()
	bindEnv(v)

	if path := c.String(configFileFlag.Name); len(path) > 0 {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to load config %s", path)
		}
	}

	flagOverrides := map[string]string{
		"cluster":      clusterFlag.Name,
		"keypair_path": keypairFlag.Name,
		"commitment":   commitmentFlag.Name,
	}
	for key, name := range flagOverrides {
		if c.IsSet(name) {
			v.Set(key, c.String(name))
		}
	}
	if c.IsSet(skipPreflightFlag.Name) {
		v.Set("skip_preflight", c.Bool(skipPreflightFlag.Name))
	}

	config := defaultConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	return &config, nil
}
