package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/Panorama-Block/near-versions/internal/types"
)

// RPCError is a JSON-RPC error object returned by the endpoint
type RPCError struct {
	Method  string
	Code    int
	Name    string
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc %s failed: %s (code %d)", e.Method, e.Message, e.Code)
}

// RPCAPI calls the public JSON-RPC endpoint
type RPCAPI struct {
	client *Client
}

func NewRPCAPI(client *Client) *RPCAPI {
	return &RPCAPI{client: client}
}

func (r *RPCAPI) call(ctx context.Context, method string, params, out interface{}) error {
	req := types.RPCRequest{
		JSONRPC: "2.0",
		ID:      "dontcare",
		Method:  method,
		Params:  params,
	}

	var resp types.RPCResponse
	if err := r.client.doJSON(ctx, "POST", "", req, &resp); err != nil {
		return err
	}
	if resp.Error != nil {
		return &RPCError{Method: method, Code: resp.Error.Code, Name: resp.Error.Name, Message: resp.Error.Message}
	}
	if len(resp.Result) == 0 || string(resp.Result) == "null" {
		return fmt.Errorf("%w: rpc %s returned no result", types.ErrMalformedResponse, method)
	}
	if err := json.Unmarshal(resp.Result, out); err != nil {
		return fmt.Errorf("%w: rpc %s result: %v", types.ErrMalformedResponse, method, err)
	}
	return nil
}

// GetTotalValidatorCount returns the size of the current validator set
func (r *RPCAPI) GetTotalValidatorCount(ctx context.Context) (int, error) {
	var result types.ValidatorsResult
	if err := r.call(ctx, "validators", []interface{}{nil}, &result); err != nil {
		return 0, err
	}
	if result.CurrentValidators == nil {
		return 0, fmt.Errorf("%w: validators result has no current_validators", types.ErrMalformedResponse)
	}
	return len(result.CurrentValidators), nil
}

// GetPoolDetails reads every pool's contact fields from the given contract
func (r *RPCAPI) GetPoolDetails(ctx context.Context, contract string) (map[string]types.PoolDetails, error) {
	args, err := json.Marshal(map[string]int{"from_index": 0, "limit": 300})
	if err != nil {
		return nil, err
	}
	params := types.CallFunctionParams{
		RequestType: "call_function",
		Finality:    "final",
		AccountID:   contract,
		MethodName:  "get_all_fields",
		ArgsBase64:  base64.StdEncoding.EncodeToString(args),
	}

	var result types.CallFunctionResult
	if err := r.call(ctx, "query", params, &result); err != nil {
		return nil, err
	}

	raw := make([]byte, len(result.Result))
	for i, b := range result.Result {
		if b < 0 || b > 255 {
			return nil, fmt.Errorf("%w: call_function result byte %d out of range", types.ErrMalformedResponse, i)
		}
		raw[i] = byte(b)
	}

	details := map[string]types.PoolDetails{}
	if len(raw) == 0 {
		return details, nil
	}
	if err := json.Unmarshal(raw, &details); err != nil {
		return nil, fmt.Errorf("%w: pool details: %v", types.ErrMalformedResponse, err)
	}
	return details, nil
}
