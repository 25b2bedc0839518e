package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/trimcut/internal/model"
)

// DefaultProfilesPath returns the default file path for custom trim profiles.
func DefaultProfilesPath() string {
	return filepath.Join(DefaultConfigDir(), "profiles.json")
}

// SaveCustomProfiles saves custom trim profiles to a JSON file. Built-in
// profiles are skipped.
func SaveCustomProfiles(path string, profiles []model.NamedTrimProfile) error {
	custom := make([]model.NamedTrimProfile, 0, len(profiles))
	for _, p := range profiles {
		if !p.IsBuiltIn {
			custom = append(custom, p)
		}
	}
	return writeJSON(path, custom)
}

// LoadCustomProfiles loads custom trim profiles from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomProfiles(path string) ([]model.NamedTrimProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.NamedTrimProfile{}, nil
		}
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}

	var profiles []model.NamedTrimProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse profiles %s: %w", path, err)
	}

	// Ensure loaded profiles are not marked as built-in
	for i := range profiles {
		profiles[i].IsBuiltIn = false
	}
	return profiles, nil
}

// AllProfiles returns the built-in profiles followed by the custom ones in path.
func AllProfiles(path string) ([]model.NamedTrimProfile, error) {
	custom, err := LoadCustomProfiles(path)
	if err != nil {
		return nil, err
	}
	return append(model.BuiltInTrimProfiles(), custom...), nil
}

// ImportProfile reads a single shared profile from a JSON file.
func ImportProfile(path string) (model.NamedTrimProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.NamedTrimProfile{}, fmt.Errorf("failed to read profile: %w", err)
	}

	var profile model.NamedTrimProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return model.NamedTrimProfile{}, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}

	profile.IsBuiltIn = false
	if profile.Name == "" {
		return model.NamedTrimProfile{}, errors.New("imported profile has no name")
	}
	return profile, nil
}
