// Package paymaster implements the JSON-RPC client for the paymaster
// transaction service and the build-sign-execute submitter driven by the
// load runner.
package paymaster

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"
)

// Client talks JSON-RPC 2.0 to a paymaster service. The underlying
// connection multiplexes calls, so a single Client is shared by all
// concurrent submissions.
type Client struct {
	rpc      *rpc.Client
	endpoint string
}

func Dial(ctx context.Context, endpoint string) (*Client, error) {
	c, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("dial paymaster at %s: %w", endpoint, err)
	}
	return &Client{rpc: c, endpoint: endpoint}, nil
}

func (c *Client) Endpoint() string { return c.endpoint }

func (c *Client) Close() { c.rpc.Close() }

// IsAvailable probes service liveness before a test run.
func (c *Client) IsAvailable(ctx context.Context) (bool, error) {
	var available bool
	if err := c.rpc.CallContext(ctx, &available, "paymaster_isAvailable"); err != nil {
		return false, wrapRPCError("is available", err)
	}
	return available, nil
}

// BuildTransaction submits unsigned call parameters and returns the unsigned
// transaction artifact with its canonical message hash.
func (c *Client) BuildTransaction(ctx context.Context, req BuildTransactionRequest) (*BuildTransactionResponse, error) {
	var resp BuildTransactionResponse
	if err := c.rpc.CallContext(ctx, &resp, "paymaster_buildTransaction", req); err != nil {
		return nil, wrapRPCError("build transaction", err)
	}
	return &resp, nil
}

// ExecuteTransaction submits the signed artifact for inclusion.
func (c *Client) ExecuteTransaction(ctx context.Context, req ExecuteRequest) (*ExecuteResponse, error) {
	var resp ExecuteResponse
	if err := c.rpc.CallContext(ctx, &resp, "paymaster_executeTransaction", req); err != nil {
		return nil, wrapRPCError("execute transaction", err)
	}
	return &resp, nil
}

// wrapRPCError keeps the server's message intact while tagging responses
// that arrived as JSON-RPC error objects, which the classifier keys on.
// Transport errors pass through wrapped but untagged.
func wrapRPCError(op string, err error) error {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return fmt.Errorf("%s: json-rpc error %d: %s", op, rpcErr.ErrorCode(), rpcErr.Error())
	}
	return fmt.Errorf("%s: %w", op, err)
}
