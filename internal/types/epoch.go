package types

import "fmt"

// EpochInfoResponse is the body of GET /debug/api/epoch_info
type EpochInfoResponse struct {
	StatusResponse *struct {
		EpochInfo []EpochRecord `json:"EpochInfo"`
	} `json:"status_response"`
}

// EpochRecord describes a single epoch known to the node
type EpochRecord struct {
	EpochID        string         `json:"epoch_id"`
	BlockProducers []AccountRef   `json:"block_producers"`
	ValidatorInfo  *ValidatorInfo `json:"validator_info"`
}

type AccountRef struct {
	AccountID string `json:"account_id"`
}

type ValidatorInfo struct {
	CurrentValidators []ValidatorStake `json:"current_validators"`
}

// ValidatorStake holds the stake as a decimal string in yoctoNEAR
type ValidatorStake struct {
	AccountID string `json:"account_id"`
	Stake     string `json:"stake"`
}

// Epochs returns the epoch records or ErrMalformedResponse if the document
// does not carry them.
func (r *EpochInfoResponse) Epochs() ([]EpochRecord, error) {
	if r == nil || r.StatusResponse == nil || r.StatusResponse.EpochInfo == nil {
		return nil, fmt.Errorf("%w: epoch info has no status_response.EpochInfo", ErrMalformedResponse)
	}
	return r.StatusResponse.EpochInfo, nil
}

// Validate checks the fields the aggregator reads.
func (e *EpochRecord) Validate() error {
	if e.BlockProducers == nil {
		return fmt.Errorf("%w: epoch %s has no block_producers", ErrMalformedResponse, e.EpochID)
	}
	if e.ValidatorInfo == nil || e.ValidatorInfo.CurrentValidators == nil {
		return fmt.Errorf("%w: epoch %s has no validator_info.current_validators", ErrMalformedResponse, e.EpochID)
	}
	for i, bp := range e.BlockProducers {
		if bp.AccountID == "" {
			return fmt.Errorf("%w: block producer %d has no account_id", ErrMalformedResponse, i)
		}
	}
	for i, v := range e.ValidatorInfo.CurrentValidators {
		if v.AccountID == "" || v.Stake == "" {
			return fmt.Errorf("%w: current validator %d is missing account_id or stake", ErrMalformedResponse, i)
		}
	}
	return nil
}
