package api

import (
	"context"
	"fmt"

	"github.com/Panorama-Block/near-versions/internal/types"
)

const (
	epochInfoEndpoint = "/debug/api/epoch_info"
	entityEndpoint    = "/debug/api/entity"
)

// DebugAPI reads the node's debug HTTP API
type DebugAPI struct {
	client *Client
}

func NewDebugAPI(client *Client) *DebugAPI {
	return &DebugAPI{client: client}
}

// GetEpochInfo retrieves the epochs the node knows about
func (d *DebugAPI) GetEpochInfo(ctx context.Context) (*types.EpochInfoResponse, error) {
	var resp types.EpochInfoResponse
	if err := d.client.doJSON(ctx, "GET", epochInfoEndpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetching epoch info: %w", err)
	}
	return &resp, nil
}

// GetEntitySnapshot retrieves the EpochInfoAggregator entity
func (d *DebugAPI) GetEntitySnapshot(ctx context.Context) (*types.EntitySnapshot, error) {
	query := map[string]interface{}{"EpochInfoAggregator": nil}

	var snapshot types.EntitySnapshot
	if err := d.client.doJSON(ctx, "POST", entityEndpoint, query, &snapshot); err != nil {
		return nil, fmt.Errorf("fetching entity snapshot: %w", err)
	}
	return &snapshot, nil
}
