package api

import (
	"time"

	"github.com/Panorama-Block/near-versions/internal/config"
)

// API groups the node debug API and the public RPC endpoint
type API struct {
	Debug *DebugAPI
	RPC   *RPCAPI
}

// NewAPI creates both clients for the given node address
func NewAPI(nodeAddr string, cfg *config.Config) *API {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &API{
		Debug: NewDebugAPI(NewClient("http://"+nodeAddr, timeout)),
		RPC:   NewRPCAPI(NewClient(cfg.RPCURL, timeout)),
	}
}
