package catalog

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/afero"
)

// LoadFamily reads and parses a family manifest from path.
func LoadFamily(fs afero.Fs, path string) (*Family, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var family Family
	if err := json.Unmarshal(data, &family); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	return &family, nil
}

// SaveFamily writes the family manifest to path as pretty-printed JSON.
func SaveFamily(fs afero.Fs, path string, family *Family) error {
	data, err := json.MarshalIndent(family, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}

	return nil
}

// ParseFeed decodes a manifest feed document.
func ParseFeed(data []byte) (*Feed, error) {
	var feed Feed
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse font feed: %w", err)
	}
	return &feed, nil
}
