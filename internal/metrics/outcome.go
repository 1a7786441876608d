package metrics

import "time"

// ErrorKind buckets a failed submission into one of the tracked categories.
type ErrorKind int

const (
	ErrorKindNonceConflict ErrorKind = iota
	ErrorKindTimeout
	ErrorKindServiceUnavailable
	ErrorKindProtocol
	ErrorKindOther
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindNonceConflict:
		return "nonce_conflict"
	case ErrorKindTimeout:
		return "timeout"
	case ErrorKindServiceUnavailable:
		return "relayer_exhaustion"
	case ErrorKindProtocol:
		return "json_rpc_error"
	default:
		return "other"
	}
}

// Outcome is the terminal result of exactly one submission attempt: a
// success with its wall-clock latency, or a failure with its classification.
type Outcome struct {
	Latency time.Duration
	Kind    ErrorKind
	Failed  bool
}

// Success builds an outcome for a submission that was accepted.
func Success(latency time.Duration) Outcome {
	return Outcome{Latency: latency}
}

// Failure builds an outcome for a submission that failed with the given
// classification.
func Failure(kind ErrorKind) Outcome {
	return Outcome{Kind: kind, Failed: true}
}
