package paymaster_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/loadworks/paystress/internal/metrics"
	"github.com/loadworks/paystress/internal/paymaster"
)

type rpcRequest struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      json.RawMessage   `json:"id"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`
}

type rpcErrorObject struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// stubHandler answers one JSON-RPC method call. Returning a non-nil
// rpcErrorObject produces a JSON-RPC error response.
type stubHandler func(t *testing.T, req rpcRequest) (any, *rpcErrorObject)

func newStubServer(t *testing.T, handler stubHandler) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode rpc request: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		result, rpcErr := handler(t, req)
		resp := map[string]any{"jsonrpc": "2.0", "id": json.RawMessage(req.ID)}
		if rpcErr != nil {
			resp["error"] = rpcErr
		} else {
			resp["result"] = result
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("encode rpc response: %v", err)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dialStub(t *testing.T, handler stubHandler) *paymaster.Client {
	t.Helper()
	srv := newStubServer(t, handler)
	client, err := paymaster.Dial(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("dial stub: %v", err)
	}
	t.Cleanup(client.Close)
	return client
}

const testMessageHash = "0x00000000000000000000000000000000000000000000000000000000deadbeef"

func TestClientIsAvailable(t *testing.T) {
	client := dialStub(t, func(t *testing.T, req rpcRequest) (any, *rpcErrorObject) {
		if req.Method != "paymaster_isAvailable" {
			t.Errorf("unexpected method %q", req.Method)
		}
		return true, nil
	})

	available, err := client.IsAvailable(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !available {
		t.Fatal("expected service to report available")
	}
}

func TestClientBuildTransaction(t *testing.T) {
	client := dialStub(t, func(t *testing.T, req rpcRequest) (any, *rpcErrorObject) {
		if req.Method != "paymaster_buildTransaction" {
			t.Errorf("unexpected method %q", req.Method)
		}
		if len(req.Params) != 1 {
			t.Fatalf("expected 1 param, got %d", len(req.Params))
		}
		var build paymaster.BuildTransactionRequest
		if err := json.Unmarshal(req.Params[0], &build); err != nil {
			t.Fatalf("decode build request: %v", err)
		}
		if build.Transaction.Invoke == nil || build.Transaction.Invoke.UserAddress != "0xabc" {
			t.Errorf("unexpected invoke parameters: %+v", build.Transaction)
		}
		return map[string]any{
			"type":         paymaster.TransactionKindInvoke,
			"typed_data":   map[string]any{"domain": "paymaster"},
			"message_hash": testMessageHash,
		}, nil
	})

	resp, err := client.BuildTransaction(context.Background(), paymaster.BuildTransactionRequest{
		Transaction: paymaster.TransactionParameters{
			Invoke: &paymaster.InvokeParameters{UserAddress: "0xabc"},
		},
		Parameters: paymaster.ExecutionParameters{Version: paymaster.ExecutionVersionV1},
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Kind != paymaster.TransactionKindInvoke {
		t.Fatalf("kind = %q, want invoke", resp.Kind)
	}
	if resp.MessageHash.Hex() != testMessageHash {
		t.Fatalf("message hash = %s, want %s", resp.MessageHash.Hex(), testMessageHash)
	}
	if len(resp.TypedData) == 0 {
		t.Fatal("typed data not carried through")
	}
}

func TestClientExecuteTransactionErrorTagging(t *testing.T) {
	client := dialStub(t, func(t *testing.T, req rpcRequest) (any, *rpcErrorObject) {
		return nil, &rpcErrorObject{Code: -32000, Message: "transaction nonce already used"}
	})

	_, err := client.ExecuteTransaction(context.Background(), paymaster.ExecuteRequest{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "json-rpc error") {
		t.Fatalf("rpc error not tagged: %v", err)
	}
	if got := metrics.Classify(err); got != metrics.ErrorKindNonceConflict {
		t.Fatalf("classified as %v, want nonce conflict", got)
	}
}

func TestClientExecuteTransactionResult(t *testing.T) {
	client := dialStub(t, func(t *testing.T, req rpcRequest) (any, *rpcErrorObject) {
		if req.Method != "paymaster_executeTransaction" {
			t.Errorf("unexpected method %q", req.Method)
		}
		return map[string]any{"transaction_hash": "0x123", "tracking_id": "trk-1"}, nil
	})

	resp, err := client.ExecuteTransaction(context.Background(), paymaster.ExecuteRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if resp.TransactionHash != "0x123" || resp.TrackingID != "trk-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
