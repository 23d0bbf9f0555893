package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Panorama-Block/near-versions/internal/aggregator"
	"github.com/Panorama-Block/near-versions/internal/types"
)

func sampleResult() *aggregator.Result {
	c := types.ValidatorRecord{AccountID: "c", Version: "1.31.0", Stake: 3}
	b := types.ValidatorRecord{AccountID: "b", Version: "1.30.0", Stake: 2}
	a := types.ValidatorRecord{AccountID: "a", Version: "1.30.0", Stake: 1}
	return &aggregator.Result{
		Validators: []types.ValidatorRecord{c, b, a},
		Groups: []types.VersionGroup{
			{Version: "1.30.0", Stake: 3, Percent: 50, Count: 2, Validators: []types.ValidatorRecord{b, a}},
			{Version: "1.31.0", Stake: 3, Percent: 50, Count: 1, Validators: []types.ValidatorRecord{c}},
		},
		TotalStake: 6,
	}
}

func TestBuild(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 30, 0, 123000000, time.UTC)
	report := Build(sampleResult(), types.KnownCount(312), now)

	assert.Equal(t, "2026-10-14T09:30:00.123Z", report.Timestamp)
	assert.Equal(t, types.KnownCount(312), report.Summary.TotalValidators)
	assert.Equal(t, 3, report.Summary.BlockProducers)
	assert.Equal(t, 6.0, report.Summary.TotalStake)
	assert.Len(t, report.ByVersion, 2)
}

func TestBuildEmptyResultEncodesArrays(t *testing.T) {
	report := Build(&aggregator.Result{}, types.OptionalCount{}, time.Now())
	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []interface{}{}, decoded["validators"])
	assert.Equal(t, []interface{}{}, decoded["by_version"])
	assert.Nil(t, decoded["summary"].(map[string]interface{})["total_validators"])
}

func TestWriterReplacesReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "validators_data.json")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	report := Build(sampleResult(), types.OptionalCount{}, time.Now())
	written, err := NewWriter(path).Write(report)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"summary\": {\n    \"total_validators\": null,")

	var decoded types.Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, report.Validators, decoded.Validators)
	assert.False(t, decoded.Summary.TotalValidators.Known)

	// no temp files are left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriterMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "validators_data.json")
	_, err := NewWriter(path).Write(Build(sampleResult(), types.OptionalCount{}, time.Now()))
	assert.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPrintSummary(t *testing.T) {
	report := Build(sampleResult(), types.KnownCount(10), time.Now())

	var out bytes.Buffer
	require.NoError(t, PrintSummary(&out, "/data/validators_data.json", report))

	want := `Data saved to /data/validators_data.json
[
  {
    "account_id": "c",
    "version": "1.31.0",
    "stake": 3
  },
  {
    "account_id": "b",
    "version": "1.30.0",
    "stake": 2
  },
  {
    "account_id": "a",
    "version": "1.30.0",
    "stake": 1
  }
]

Block producers: 3
Total stake: 6.000 NEAR

Stake by version:
  Version 1.30.0: 50.00% (3.000 NEAR) - 2 validators
  Version 1.31.0: 50.00% (3.000 NEAR) - 1 validators
`
	assert.Equal(t, want, out.String())
}
