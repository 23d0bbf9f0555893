package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"

	"github.com/Panorama-Block/near-versions/internal/aggregator"
	"github.com/Panorama-Block/near-versions/internal/types"
)

// Build assembles the report for one run.
func Build(result *aggregator.Result, totalValidators types.OptionalCount, now time.Time) *types.Report {
	validators := result.Validators
	if validators == nil {
		validators = []types.ValidatorRecord{}
	}
	groups := result.Groups
	if groups == nil {
		groups = []types.VersionGroup{}
	}
	return &types.Report{
		Timestamp: now.Format(time.RFC3339Nano),
		Summary: types.Summary{
			TotalValidators: totalValidators,
			BlockProducers:  len(validators),
			TotalStake:      result.TotalStake,
		},
		Validators: validators,
		ByVersion:  groups,
	}
}

// Writer persists reports to a single path, replacing the previous one.
type Writer struct {
	Path string
}

func NewWriter(path string) *Writer {
	return &Writer{Path: path}
}

// Write encodes the report and replaces Path atomically, so readers never
// observe a partially written report.
func (w *Writer) Write(report *types.Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}

	path, err := filepath.Abs(w.Path)
	if err != nil {
		return "", fmt.Errorf("resolving output path: %w", err)
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// PrintSummary writes the save confirmation, the validator list and the
// per version breakdown.
func PrintSummary(w io.Writer, path string, report *types.Report) error {
	validators, err := json.MarshalIndent(report.Validators, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding validators: %w", err)
	}

	fmt.Fprintf(w, "Data saved to %s\n", path)
	fmt.Fprintf(w, "%s\n", validators)

	fmt.Fprintf(w, "\nBlock producers: %d\n", report.Summary.BlockProducers)
	fmt.Fprintf(w, "Total stake: %.3f NEAR\n", report.Summary.TotalStake)

	fmt.Fprintln(w, "\nStake by version:")
	for _, g := range report.ByVersion {
		fmt.Fprintf(w, "  Version %s: %.2f%% (%.3f NEAR) - %d validators\n", g.Version, g.Percent, g.Stake, g.Count)
	}
	return nil
}
