package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Entity names inside the EpochInfoAggregator snapshot
const (
	EntityVersionTracker = "version_tracker"
	EntityEpochID        = "epoch_id"
)

// EntitySnapshot is the body of POST /debug/api/entity. Values are
// heterogeneous so they are kept raw until a caller picks one by name.
type EntitySnapshot struct {
	Entries []EntityEntry `json:"entries"`
}

type EntityEntry struct {
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value"`
}

// VersionEntry pairs an index into block_producers with a version string
type VersionEntry struct {
	Index   int
	Version string
}

// Lookup returns the raw value of the first entry with the given name.
func (s *EntitySnapshot) Lookup(name string) (json.RawMessage, error) {
	if s == nil || s.Entries == nil {
		return nil, fmt.Errorf("%w: entity snapshot has no entries", ErrMalformedResponse)
	}
	for _, e := range s.Entries {
		if e.Name == name {
			return e.Value, nil
		}
	}
	return nil, fmt.Errorf("%w: entity snapshot has no %q entry", ErrMalformedResponse, name)
}

// EpochID returns the scalar epoch_id entry.
func (s *EntitySnapshot) EpochID() (string, error) {
	raw, err := s.Lookup(EntityEpochID)
	if err != nil {
		return "", err
	}
	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return "", fmt.Errorf("%w: epoch_id is not a string: %v", ErrMalformedResponse, err)
	}
	return id, nil
}

// Versions decodes the version_tracker entry, keeping the tracker's order.
func (s *EntitySnapshot) Versions() ([]VersionEntry, error) {
	raw, err := s.Lookup(EntityVersionTracker)
	if err != nil {
		return nil, err
	}
	var tracker struct {
		Entries []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(raw, &tracker); err != nil {
		return nil, fmt.Errorf("%w: version_tracker: %v", ErrMalformedResponse, err)
	}
	if tracker.Entries == nil {
		return nil, fmt.Errorf("%w: version_tracker has no entries", ErrMalformedResponse)
	}

	versions := make([]VersionEntry, 0, len(tracker.Entries))
	for _, e := range tracker.Entries {
		idx, err := strconv.Atoi(e.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: version_tracker index %q: %v", ErrMalformedResponse, e.Name, err)
		}
		versions = append(versions, VersionEntry{Index: idx, Version: e.Value})
	}
	return versions, nil
}
