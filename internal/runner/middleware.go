package runner

import (
	"context"
	"time"
)

// FailureLogger receives each failed submission.
type FailureLogger interface {
	LogFailure(err error)
}

// WithLogging wraps a Submitter so every failure is reported to the logger
// before being passed through unchanged.
func WithLogging(next Submitter, logger FailureLogger) Submitter {
	return &loggingSubmitter{next: next, logger: logger}
}

type loggingSubmitter struct {
	next   Submitter
	logger FailureLogger
}

func (l *loggingSubmitter) Submit(ctx context.Context) (time.Duration, error) {
	latency, err := l.next.Submit(ctx)
	if err != nil && l.logger != nil {
		l.logger.LogFailure(err)
	}
	return latency, err
}
