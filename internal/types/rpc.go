package types

import "encoding/json"

// RPCRequest is a JSON-RPC 2.0 request envelope
type RPCRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      string      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

// RPCResponse keeps the result raw so each method decodes its own shape
type RPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCErrorObject `json:"error"`
}

type RPCErrorObject struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Name    string          `json:"name,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// ValidatorsResult is the part of the validators method result we read
type ValidatorsResult struct {
	CurrentValidators []json.RawMessage `json:"current_validators"`
}

// CallFunctionParams are the params of a query/call_function request
type CallFunctionParams struct {
	RequestType string `json:"request_type"`
	Finality    string `json:"finality"`
	AccountID   string `json:"account_id"`
	MethodName  string `json:"method_name"`
	ArgsBase64  string `json:"args_base64"`
}

// CallFunctionResult carries the returned bytes as an array of numbers
type CallFunctionResult struct {
	Result      []int    `json:"result"`
	Logs        []string `json:"logs"`
	BlockHeight uint64   `json:"block_height"`
}
