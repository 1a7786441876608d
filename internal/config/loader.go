package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// privateKeyEnv names the environment variable carrying the signing
// credential. Only the environment supplies it; there is no flag, to keep
// the secret out of shell history and process listings.
const privateKeyEnv = "PRIVATE_KEY"

// Load builds a Config from an optional config file, the environment and
// the parsed flag set, in increasing order of precedence.
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{
		Endpoint: DefaultEndpoint,
		Duration: DefaultDurationSecs * time.Second,
		Steps:    DefaultSteps,
		Account:  DefaultAccount,
		GasToken: DefaultGasToken,
	}

	v := viper.New()
	if err := v.BindEnv("private_key", privateKeyEnv); err != nil {
		return nil, err
	}

	configPath, err := fs.GetString("config")
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	applyConfigSettings(cfg, v)
	cfg.ConfigFile = configPath

	if err := applyFlagOverrides(cfg, fs); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyConfigSettings(cfg *Config, v *viper.Viper) {
	if v.IsSet("endpoint") {
		cfg.Endpoint = v.GetString("endpoint")
	}
	if v.IsSet("max_tps") {
		cfg.MaxTPS = v.GetInt("max_tps")
	}
	if v.IsSet("duration") {
		cfg.Duration = time.Duration(v.GetInt("duration")) * time.Second
	}
	if v.IsSet("steps") {
		cfg.Steps = v.GetInt("steps")
	}
	if v.IsSet("output") {
		cfg.Output = v.GetString("output")
	}
	if v.IsSet("account") {
		cfg.Account = v.GetString("account")
	}
	if v.IsSet("gas_token") {
		cfg.GasToken = v.GetString("gas_token")
	}
	if v.IsSet("trace_endpoint") {
		cfg.TraceEndpoint = v.GetString("trace_endpoint")
	}
	if v.IsSet("log_errors") {
		cfg.LogErrors = v.GetBool("log_errors")
	}
	cfg.PrivateKey = v.GetString("private_key")
}
