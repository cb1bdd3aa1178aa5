package manifest

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cmmoran/apidocgen/internal/storage"
)

// Snapshot is one recorded extraction in the manifest.
type Snapshot struct {
	Name      string `yaml:"name" json:"name"`
	Version   string `yaml:"version" json:"version"`
	RunID     string `yaml:"run_id" json:"run_id"`
	Classes   string `yaml:"classes" json:"classes"`
	Endpoints string `yaml:"endpoints" json:"endpoints"`
}

// Manifest tracks the recorded snapshots and which two are current and previous.
type Manifest struct {
	CurrentVersion  string     `yaml:"current_version" json:"current_version"`
	PreviousVersion string     `yaml:"previous_version" json:"previous_version"`
	Snapshots       []Snapshot `yaml:"snapshots" json:"snapshots"`
}

// Load reads a manifest from location. A missing manifest is returned empty.
func Load(ctx context.Context, locs *storage.Locations, location string) (*Manifest, error) {
	data, err := locs.Read(ctx, location)
	if errors.Is(err, storage.ErrNotFound) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	return &m, nil
}

// Save writes the manifest to location.
func (m *Manifest) Save(ctx context.Context, locs *storage.Locations, location string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err := locs.Write(ctx, location, data); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// AddSnapshot records a snapshot, updating version pointers and replacing
// an existing entry with the same name and version.
func (m *Manifest) AddSnapshot(s Snapshot) {
	if m.CurrentVersion != "" && m.CurrentVersion != s.Version {
		m.PreviousVersion = m.CurrentVersion
	}
	m.CurrentVersion = s.Version

	for i := range m.Snapshots {
		if m.Snapshots[i].Name == s.Name && m.Snapshots[i].Version == s.Version {
			m.Snapshots[i] = s
			return
		}
	}

	m.Snapshots = append(m.Snapshots, s)
}

// Snapshot returns the last snapshot recorded for version.
func (m *Manifest) Snapshot(version string) (Snapshot, bool) {
	for i := len(m.Snapshots) - 1; i >= 0; i-- {
		if m.Snapshots[i].Version == version {
			return m.Snapshots[i], true
		}
	}
	return Snapshot{}, false
}
