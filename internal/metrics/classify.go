package metrics

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Classify maps a submission error onto an ErrorKind by inspecting its
// message. Matching is ordered: nonce conflicts win over timeouts, which win
// over relayer exhaustion, then generic JSON-RPC failures. Anything
// unrecognized lands in ErrorKindOther. This is a best-effort heuristic over
// free-form server messages, not an exhaustive taxonomy.
func Classify(err error) ErrorKind {
	if err == nil {
		return ErrorKindOther
	}

	msg := strings.ToLower(err.Error())

	// Servers often embed the original JSON-RPC error object in the message.
	// Pull its message field out so classification sees the real cause and
	// not just the transport wrapper.
	if payload := embeddedJSON(msg); payload != "" {
		for _, path := range []string{"message", "error.message", "data.message"} {
			if field := gjson.Get(payload, path); field.Exists() {
				msg += " " + strings.ToLower(field.String())
			}
		}
	}

	switch {
	case strings.Contains(msg, "nonce"):
		return ErrorKindNonceConflict
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out") || strings.Contains(msg, "deadline exceeded"):
		return ErrorKindTimeout
	case strings.Contains(msg, "relayer") || strings.Contains(msg, "unavailable"):
		return ErrorKindServiceUnavailable
	case strings.Contains(msg, "json-rpc"):
		return ErrorKindProtocol
	default:
		return ErrorKindOther
	}
}

func embeddedJSON(msg string) string {
	start := strings.IndexByte(msg, '{')
	if start < 0 {
		return ""
	}
	candidate := msg[start:]
	if !gjson.Valid(candidate) {
		return ""
	}
	return candidate
}
