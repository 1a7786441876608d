package paymaster

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/loadworks/paystress/internal/signer"
)

// ErrUnexpectedTransactionKind signals that the build phase returned a
// transaction kind other than the invoke the submitter asked for. That is a
// contract breach between harness and service, not a runtime failure, and
// aborts the whole run.
var ErrUnexpectedTransactionKind = errors.New("paymaster returned unexpected transaction kind")

// Submitter performs the build → sign → execute sequence for one templated
// invoke call. All fields are read-only after construction, so a single
// Submitter serves every concurrent submission.
type Submitter struct {
	client      *Client
	signer      *signer.Signer
	userAddress string
	gasToken    string
	call        Call
	tracer      trace.Tracer
}

// SubmitterOptions configure the templated call a Submitter repeats.
type SubmitterOptions struct {
	UserAddress string
	GasToken    string
	Call        Call
	Tracer      trace.Tracer // nil means no tracing
}

func NewSubmitter(client *Client, sig *signer.Signer, opt SubmitterOptions) *Submitter {
	tracer := opt.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("paystress")
	}
	return &Submitter{
		client:      client,
		signer:      sig,
		userAddress: opt.UserAddress,
		gasToken:    opt.GasToken,
		call:        opt.Call,
		tracer:      tracer,
	}
}

// Submit runs one complete submission and returns its wall-clock latency.
// A nil error means the transaction was accepted for inclusion. Failures
// return the raw error; classification happens at the caller. There are no
// retries: a failed phase ends the attempt.
func (s *Submitter) Submit(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "paymaster submit", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	built, err := s.client.BuildTransaction(ctx, s.buildRequest())
	if err != nil {
		return 0, s.fail(span, err)
	}
	if built.Kind != TransactionKindInvoke {
		return 0, s.fail(span, fmt.Errorf("%w: %q", ErrUnexpectedTransactionKind, built.Kind))
	}
	span.AddEvent("built")

	r, sv, err := s.signer.Sign(built.MessageHash)
	if err != nil {
		return 0, s.fail(span, err)
	}
	span.AddEvent("signed")

	if _, err := s.client.ExecuteTransaction(ctx, s.executeRequest(built, r, sv)); err != nil {
		return 0, s.fail(span, err)
	}

	latency := time.Since(start)
	span.SetStatus(codes.Ok, "")
	span.SetAttributes(attribute.Float64("paystress.latency_ms", float64(latency)/float64(time.Millisecond)))
	return latency, nil
}

func (s *Submitter) buildRequest() BuildTransactionRequest {
	return BuildTransactionRequest{
		Transaction: TransactionParameters{
			Invoke: &InvokeParameters{
				UserAddress: s.userAddress,
				Calls:       []Call{s.call},
			},
		},
		Parameters: s.executionParameters(),
	}
}

func (s *Submitter) executeRequest(built *BuildTransactionResponse, r, sv string) ExecuteRequest {
	return ExecuteRequest{
		Transaction: ExecutableTransactionParameters{
			Invoke: &ExecutableInvokeParameters{
				UserAddress: s.userAddress,
				TypedData:   built.TypedData,
				Signature:   []string{r, sv},
			},
		},
		Parameters: s.executionParameters(),
	}
}

func (s *Submitter) executionParameters() ExecutionParameters {
	return ExecutionParameters{
		Version: ExecutionVersionV1,
		FeeMode: FeeMode{GasToken: s.gasToken},
	}
}

func (s *Submitter) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
