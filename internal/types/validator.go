package types

// ValidatorRecord is one block producer with its reported version and its
// stake in NEAR
type ValidatorRecord struct {
	AccountID string       `json:"account_id"`
	Version   string       `json:"version"`
	Stake     float64      `json:"stake"`
	Pool      *PoolDetails `json:"pool,omitempty"`
}

// VersionGroup aggregates the block producers running the same version
type VersionGroup struct {
	Version    string            `json:"version"`
	Stake      float64           `json:"stake"`
	Percent    float64           `json:"percent"`
	Count      int               `json:"count"`
	Validators []ValidatorRecord `json:"validators"`
}
