// Package aggregator joins the epoch info and entity snapshot documents into
// per block producer records and groups them by software version.
package aggregator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Panorama-Block/near-versions/internal/types"
)

var (
	// ErrEpochSelection means zero or several epoch records carry the snapshot's epoch id.
	ErrEpochSelection = errors.New("epoch selection failed")
	// ErrUnknownProducer means a version entry points outside block_producers.
	ErrUnknownProducer = errors.New("version entry references unknown block producer")
	// ErrMissingStake means a block producer is absent from current_validators.
	ErrMissingStake = errors.New("block producer has no stake")
)

// Result is the outcome of one aggregation pass
type Result struct {
	Validators []types.ValidatorRecord
	Groups     []types.VersionGroup
	TotalStake float64
}

// Aggregate resolves every version tracker entry to a block producer and its
// stake, then groups the records by version. Both lists are ordered by stake,
// largest first; equal stakes keep the tracker's order.
func Aggregate(epochInfo *types.EpochInfoResponse, snapshot *types.EntitySnapshot) (*Result, error) {
	versions, err := snapshot.Versions()
	if err != nil {
		return nil, err
	}
	epochID, err := snapshot.EpochID()
	if err != nil {
		return nil, err
	}
	epoch, err := selectEpoch(epochInfo, epochID)
	if err != nil {
		return nil, err
	}

	producers := make([]string, len(epoch.BlockProducers))
	for i, bp := range epoch.BlockProducers {
		producers[i] = bp.AccountID
	}

	stakes := make(map[string]string, len(epoch.ValidatorInfo.CurrentValidators))
	for _, v := range epoch.ValidatorInfo.CurrentValidators {
		stakes[v.AccountID] = v.Stake
	}

	records := make([]types.ValidatorRecord, 0, len(versions))
	for _, entry := range versions {
		if entry.Index < 0 || entry.Index >= len(producers) {
			return nil, fmt.Errorf("%w: index %d, %d block producers", ErrUnknownProducer, entry.Index, len(producers))
		}
		accountID := producers[entry.Index]
		raw, ok := stakes[accountID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingStake, accountID)
		}
		stake, err := ToNEAR(raw)
		if err != nil {
			return nil, fmt.Errorf("stake of %s: %w", accountID, err)
		}
		records = append(records, types.ValidatorRecord{
			AccountID: accountID,
			Version:   entry.Version,
			Stake:     stake,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Stake > records[j].Stake
	})

	var total float64
	for _, r := range records {
		total += r.Stake
	}

	return &Result{
		Validators: records,
		Groups:     groupByVersion(records, total),
		TotalStake: total,
	}, nil
}

func selectEpoch(epochInfo *types.EpochInfoResponse, epochID string) (*types.EpochRecord, error) {
	epochs, err := epochInfo.Epochs()
	if err != nil {
		return nil, err
	}

	var match *types.EpochRecord
	for i := range epochs {
		if epochs[i].EpochID != epochID {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("%w: several records for epoch %s", ErrEpochSelection, epochID)
		}
		match = &epochs[i]
	}
	if match == nil {
		return nil, fmt.Errorf("%w: no record for epoch %s", ErrEpochSelection, epochID)
	}
	if err := match.Validate(); err != nil {
		return nil, err
	}
	return match, nil
}

// groupByVersion expects records already sorted by stake.
func groupByVersion(records []types.ValidatorRecord, total float64) []types.VersionGroup {
	index := map[string]int{}
	var groups []types.VersionGroup
	for _, r := range records {
		i, ok := index[r.Version]
		if !ok {
			i = len(groups)
			index[r.Version] = i
			groups = append(groups, types.VersionGroup{Version: r.Version})
		}
		g := &groups[i]
		g.Stake += r.Stake
		g.Count++
		g.Validators = append(g.Validators, r)
	}

	for i := range groups {
		if total > 0 {
			groups[i].Percent = groups[i].Stake / total * 100
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Stake > groups[j].Stake
	})
	return groups
}

// ToNEAR converts a yoctoNEAR amount, given as plain decimal digits, to NEAR
// rounded to the nearest float64.
func ToNEAR(yocto string) (float64, error) {
	if !isDigits(yocto) {
		return 0, fmt.Errorf("%w: stake %q is not a decimal integer", types.ErrMalformedResponse, yocto)
	}
	amount, err := decimal.NewFromString(yocto)
	if err != nil {
		return 0, fmt.Errorf("%w: stake %q: %v", types.ErrMalformedResponse, yocto, err)
	}
	f, _ := amount.Shift(-types.NEARDecimals).Float64()
	return f, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// AttachPools decorates the flat list and every group's members with pool
// contact details where known. It returns the number of records matched.
func (r *Result) AttachPools(details map[string]types.PoolDetails) int {
	attached := attachPools(r.Validators, details)
	for i := range r.Groups {
		attachPools(r.Groups[i].Validators, details)
	}
	return attached
}

func attachPools(records []types.ValidatorRecord, details map[string]types.PoolDetails) int {
	attached := 0
	for i := range records {
		if d, ok := types.LookupPool(details, records[i].AccountID); ok {
			records[i].Pool = &d
			attached++
		}
	}
	return attached
}
