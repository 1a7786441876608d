package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/loadworks/paystress/internal/config"
	"github.com/loadworks/paystress/internal/metrics"
	"github.com/loadworks/paystress/internal/output"
	"github.com/loadworks/paystress/internal/paymaster"
	"github.com/loadworks/paystress/internal/runner"
	"github.com/loadworks/paystress/internal/signer"
	"github.com/loadworks/paystress/internal/tracing"
)

const progressInterval = time.Second

type stderrFailureLogger struct {
	mu sync.Mutex
}

func (l *stderrFailureLogger) LogFailure(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(os.Stderr, "submission failed: %v\n", err)
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "paystress",
		Short:         "Load-testing harness for paymaster transaction services",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newLinearCommand())
	return root
}

func newLinearCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linear",
		Short: "Run a linearly ramped TPS test against a paymaster endpoint",
		Long: `Ramps the submission rate in equal-length steps from max-tps/steps up to
max-tps, measuring success rate and latency at every step. The signing key
is read from the PRIVATE_KEY environment variable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runLinear(cmd.Context(), cfg)
		},
	}
	config.RegisterFlags(cmd)
	_ = cmd.MarkFlagRequired("max-tps")
	return cmd
}

func runLinear(parent context.Context, cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tracer, err := tracing.Init(ctx, cfg.TraceEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = tracer.Shutdown(shutdownCtx)
	}()

	client, err := paymaster.Dial(ctx, cfg.Endpoint)
	if err != nil {
		return err
	}
	defer client.Close()

	available, err := client.IsAvailable(ctx)
	if err != nil {
		return fmt.Errorf("paymaster liveness check: %w", err)
	}
	if !available {
		return fmt.Errorf("paymaster at %s reports unavailable", cfg.Endpoint)
	}

	sig, err := signer.FromHex(cfg.PrivateKey)
	if err != nil {
		return fmt.Errorf("load private key: %w", err)
	}

	submitter := paymaster.NewSubmitter(client, sig, paymaster.SubmitterOptions{
		UserAddress: cfg.Account,
		GasToken:    cfg.GasToken,
		Call:        transferCall(cfg),
		Tracer:      tracer.Tracer(),
	})

	var wrapped runner.Submitter = submitter
	if cfg.LogErrors {
		wrapped = runner.WithLogging(wrapped, &stderrFailureLogger{})
	}

	collector := metrics.NewCollector()

	ramp := runner.New(runner.Options{
		MaxTPS:    cfg.MaxTPS,
		Duration:  cfg.Duration,
		Steps:     cfg.Steps,
		Submitter: wrapped,
		Collector: collector,
		Progress:  os.Stdout,
		IsFatal: func(err error) bool {
			return errors.Is(err, paymaster.ErrUnexpectedTransactionKind)
		},
	})

	fmt.Printf("Starting linear ramp test\n")
	fmt.Printf("  Endpoint: %s\n", cfg.Endpoint)
	fmt.Printf("  Max TPS:  %d\n", cfg.MaxTPS)
	fmt.Printf("  Duration: %s\n", cfg.Duration)
	fmt.Printf("  Steps:    %d\n", cfg.Steps)

	// The live progress line shares stdout with the JSON document, so it only
	// runs when the document goes to a file.
	var progress *output.ProgressReporter
	if cfg.Output != "" {
		progress = output.NewProgressReporter(collector, progressInterval, os.Stdout)
		progress.Start()
	}

	collector.Start()
	result, err := ramp.Run(ctx)
	if progress != nil {
		progress.Stop()
		fmt.Println()
	}
	if err != nil {
		return err
	}

	report := output.NewReport(result.TotalDuration, result.Steps, result.Summary)

	if cfg.Output != "" {
		if err := output.WriteFile(cfg.Output, report); err != nil {
			return err
		}
		fmt.Printf("Results saved to: %s\n", cfg.Output)
		output.PrintReport(os.Stdout, report)
		return nil
	}
	return output.WriteJSON(os.Stdout, report)
}

// transferCall builds the templated call every submission repeats: a minimal
// transfer of the gas token back to a fixed recipient, so runs are cheap and
// state-neutral.
func transferCall(cfg *config.Config) paymaster.Call {
	return paymaster.Call{
		To:       cfg.GasToken,
		Selector: config.DefaultTransferSelector,
		Calldata: []string{config.DefaultRecipient, "0x1", "0x0"},
	}
}
