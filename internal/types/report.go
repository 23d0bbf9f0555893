package types

import (
	"encoding/json"
	"strconv"
)

// Report is the document written to validators_data.json
type Report struct {
	Timestamp  string            `json:"timestamp"`
	Summary    Summary           `json:"summary"`
	Validators []ValidatorRecord `json:"validators"`
	ByVersion  []VersionGroup    `json:"by_version"`
}

type Summary struct {
	TotalValidators OptionalCount `json:"total_validators"`
	BlockProducers  int           `json:"block_producers"`
	TotalStake      float64       `json:"total_stake"`
}

// OptionalCount is a count that may be unknown. Unknown values are encoded as null.
type OptionalCount struct {
	Value int
	Known bool
}

func KnownCount(n int) OptionalCount {
	return OptionalCount{Value: n, Known: true}
}

func (c OptionalCount) MarshalJSON() ([]byte, error) {
	if !c.Known {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(c.Value)), nil
}

func (c *OptionalCount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = OptionalCount{}
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = KnownCount(n)
	return nil
}

func (c OptionalCount) String() string {
	if !c.Known {
		return "unknown"
	}
	return strconv.Itoa(c.Value)
}
