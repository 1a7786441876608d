// Package config defines the harness configuration and loads it from flags,
// an optional config file and the environment.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Defaults mirror the paymaster's local development setup: a localhost
// endpoint and a funded test account issuing minimal STRK transfers.
const (
	DefaultEndpoint     = "http://localhost:12777"
	DefaultDurationSecs = 5
	DefaultSteps        = 5

	DefaultAccount  = "0x059e0eaf58972c3b7de923ad6a280476430295f7ea967b768bd381bf5d90d50b"
	DefaultGasToken = "0x04718f5a0fc34cc1af16a1cdee98ffb20c31f5cd61d6ab07201858f4287c938d"

	// transfer(recipient, amount_low, amount_high) on the gas token
	DefaultTransferSelector = "0x83afd3f4caedc6eebf44246fe54e38c95e3179a5ec9ea81740eca5b482d12e"
	DefaultRecipient        = "0x03f27a34e5e5483bf91257a3232ba753cc94e5b4ca19f8e200e8387e4a2ce555"
)

// Config is the full test plan plus ambient settings. It is constructed
// once by Load and read-only thereafter.
type Config struct {
	Endpoint      string        `mapstructure:"endpoint"`
	MaxTPS        int           `mapstructure:"max_tps"`
	Duration      time.Duration `mapstructure:"-"`
	Steps         int           `mapstructure:"steps"`
	Output        string        `mapstructure:"output"`
	Account       string        `mapstructure:"account"`
	GasToken      string        `mapstructure:"gas_token"`
	PrivateKey    string        `mapstructure:"private_key"`
	TraceEndpoint string        `mapstructure:"trace_endpoint"`
	LogErrors     bool          `mapstructure:"log_errors"`
	ConfigFile    string        `mapstructure:"-"`
}

// ValidationError aggregates every problem found in a config so users fix
// them in one pass.
type ValidationError struct {
	issues []string
}

func (e ValidationError) Error() string {
	if len(e.issues) == 0 {
		return "validation failed"
	}
	return "invalid configuration: " + strings.Join(e.issues, "; ")
}

// Validate checks the plan before any traffic is sent. Failures here are
// setup-fatal: the run aborts without issuing a single request.
func (c *Config) Validate() error {
	var issues []string

	if strings.TrimSpace(c.Endpoint) == "" {
		issues = append(issues, "endpoint is required")
	}
	if c.MaxTPS < 1 {
		issues = append(issues, fmt.Sprintf("max-tps must be at least 1, got %d", c.MaxTPS))
	}
	if c.Steps < 1 {
		issues = append(issues, fmt.Sprintf("steps must be at least 1, got %d", c.Steps))
	}
	if c.Duration <= 0 {
		issues = append(issues, "duration must be positive")
	}
	if strings.TrimSpace(c.PrivateKey) == "" {
		issues = append(issues, "private key is required (set PRIVATE_KEY)")
	}
	if !isHexFelt(c.Account) {
		issues = append(issues, fmt.Sprintf("account %q is not a valid hex field element", c.Account))
	}
	if !isHexFelt(c.GasToken) {
		issues = append(issues, fmt.Sprintf("gas token %q is not a valid hex field element", c.GasToken))
	}

	if len(issues) > 0 {
		return ValidationError{issues: issues}
	}
	return nil
}

// isHexFelt reports whether s is a 0x-prefixed hex field element of at most
// 32 bytes.
func isHexFelt(s string) bool {
	if !strings.HasPrefix(s, "0x") {
		return false
	}
	digits := s[2:]
	if len(digits) == 0 || len(digits) > 64 {
		return false
	}
	for _, r := range digits {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
