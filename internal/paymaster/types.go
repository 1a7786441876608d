package paymaster

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
)

// TransactionKindInvoke is the only transaction kind the harness requests.
const TransactionKindInvoke = "invoke"

// Call describes one contract invocation inside an invoke transaction.
// Addresses, selectors and calldata are field elements carried as hex
// strings on the wire.
type Call struct {
	To       string   `json:"to"`
	Selector string   `json:"selector"`
	Calldata []string `json:"calldata"`
}

type InvokeParameters struct {
	UserAddress string `json:"user_address"`
	Calls       []Call `json:"calls"`
}

type TransactionParameters struct {
	Invoke *InvokeParameters `json:"invoke,omitempty"`
}

type FeeMode struct {
	GasToken string `json:"gas_token"`
}

type TimeBounds struct {
	ExecuteAfter  uint64 `json:"execute_after,omitempty"`
	ExecuteBefore uint64 `json:"execute_before,omitempty"`
}

type ExecutionParameters struct {
	Version    string      `json:"version"`
	FeeMode    FeeMode     `json:"fee_mode"`
	TimeBounds *TimeBounds `json:"time_bounds,omitempty"`
}

// ExecutionVersionV1 selects the v1 fee/execution scheme.
const ExecutionVersionV1 = "v1"

type BuildTransactionRequest struct {
	Transaction TransactionParameters `json:"transaction"`
	Parameters  ExecutionParameters   `json:"parameters"`
}

// BuildTransactionResponse is the unsigned transaction artifact. The typed
// data is opaque to the harness and echoed back verbatim on execute; only
// the message hash is consumed, as the signing input.
type BuildTransactionResponse struct {
	Kind        string          `json:"type"`
	TypedData   json.RawMessage `json:"typed_data"`
	MessageHash common.Hash     `json:"message_hash"`
}

type ExecutableInvokeParameters struct {
	UserAddress string          `json:"user_address"`
	TypedData   json.RawMessage `json:"typed_data"`
	Signature   []string        `json:"signature"`
}

type ExecutableTransactionParameters struct {
	Invoke *ExecutableInvokeParameters `json:"invoke,omitempty"`
}

type ExecuteRequest struct {
	Transaction ExecutableTransactionParameters `json:"transaction"`
	Parameters  ExecutionParameters             `json:"parameters"`
}

type ExecuteResponse struct {
	TransactionHash string `json:"transaction_hash"`
	TrackingID      string `json:"tracking_id,omitempty"`
}
