package config

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// RegisterFlags registers all CLI flags on a cobra command.
func RegisterFlags(cmd *cobra.Command) {
	configureFlags(cmd.Flags())
}

func configureFlags(flags *pflag.FlagSet) {
	// Test plan flags
	flags.String("endpoint", DefaultEndpoint, "Paymaster service endpoint URL")
	flags.Int("max-tps", 0, "Peak target transactions per second (required)")
	flags.Int("duration", DefaultDurationSecs, "Total test duration in seconds, across all steps")
	flags.Int("steps", DefaultSteps, "Number of ramp steps")

	// Account flags
	flags.String("account", DefaultAccount, "Sender account address")
	flags.String("gas-token", DefaultGasToken, "Gas token address used for fees and the templated transfer")

	// Output flags
	flags.String("output", "", "Write the JSON results to this file instead of stdout")
	flags.Bool("log-errors", false, "Log each failed submission to stderr")

	// Ambient flags
	flags.String("config", "", "Path to configuration file (JSON or YAML)")
	flags.String("trace-endpoint", "", "OTLP/HTTP endpoint for per-submission traces")
}

// applyFlagOverrides applies command-line flag values to the config,
// overriding values from the config file.
func applyFlagOverrides(cfg *Config, fs *pflag.FlagSet) error {
	if fs.Changed("endpoint") {
		val, err := fs.GetString("endpoint")
		if err != nil {
			return err
		}
		cfg.Endpoint = val
	}
	if fs.Changed("max-tps") {
		val, err := fs.GetInt("max-tps")
		if err != nil {
			return err
		}
		cfg.MaxTPS = val
	}
	if fs.Changed("duration") {
		val, err := fs.GetInt("duration")
		if err != nil {
			return err
		}
		cfg.Duration = time.Duration(val) * time.Second
	}
	if fs.Changed("steps") {
		val, err := fs.GetInt("steps")
		if err != nil {
			return err
		}
		cfg.Steps = val
	}
	if fs.Changed("account") {
		val, err := fs.GetString("account")
		if err != nil {
			return err
		}
		cfg.Account = val
	}
	if fs.Changed("gas-token") {
		val, err := fs.GetString("gas-token")
		if err != nil {
			return err
		}
		cfg.GasToken = val
	}
	if fs.Changed("output") {
		val, err := fs.GetString("output")
		if err != nil {
			return err
		}
		cfg.Output = val
	}
	if fs.Changed("log-errors") {
		val, err := fs.GetBool("log-errors")
		if err != nil {
			return err
		}
		cfg.LogErrors = val
	}
	if fs.Changed("trace-endpoint") {
		val, err := fs.GetString("trace-endpoint")
		if err != nil {
			return err
		}
		cfg.TraceEndpoint = val
	}
	return nil
}
