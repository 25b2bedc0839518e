package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/trimcut/internal/model"
)

// BackupVersion is written into every backup file.
const BackupVersion = "1.0.0"

// BackupData bundles every user-level file into one document.
type BackupData struct {
	Version   string                   `json:"version"`
	CreatedAt string                   `json:"created_at"`
	Config    model.AppConfig          `json:"config"`
	Catalog   model.Catalog            `json:"catalog"`
	Profiles  []model.NamedTrimProfile `json:"profiles"`
}

// ExportAllData writes config, catalog and custom profiles to a single JSON file.
func ExportAllData(exportPath string, config model.AppConfig, catalog model.Catalog, profiles []model.NamedTrimProfile) error {
	custom := []model.NamedTrimProfile{}
	for _, p := range profiles {
		if !p.IsBuiltIn {
			custom = append(custom, p)
		}
	}
	backup := BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Catalog:   catalog,
		Profiles:  custom,
	}
	if err := writeJSON(exportPath, backup); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying it.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Config.RecentJobs == nil {
		backup.Config.RecentJobs = []string{}
	}
	if backup.Catalog.Stocks == nil {
		backup.Catalog.Stocks = []model.StockPreset{}
	}
	for i := range backup.Profiles {
		backup.Profiles[i].IsBuiltIn = false
	}
	return backup, nil
}

// RestoreAllData writes the contents of a backup to the given locations.
func RestoreAllData(backup BackupData, configPath, catalogPath, profilesPath string) error {
	if err := SaveAppConfig(configPath, backup.Config); err != nil {
		return fmt.Errorf("failed to restore config: %w", err)
	}
	if err := SaveCatalog(catalogPath, backup.Catalog); err != nil {
		return fmt.Errorf("failed to restore catalog: %w", err)
	}
	if err := SaveCustomProfiles(profilesPath, backup.Profiles); err != nil {
		return fmt.Errorf("failed to restore profiles: %w", err)
	}
	return nil
}
