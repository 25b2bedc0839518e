package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"github.com/piwi3910/trimcut/internal/model"
	"gopkg.in/yaml.v3"
)

// Job file formats, chosen by extension.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatJSON = "json"
)

// JobFormat maps a file extension to a job file format.
func JobFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported job file extension %q (want .yaml, .yml, .toml or .json)", filepath.Ext(path))
	}
}

// SaveJob writes a job in the format implied by its extension.
func SaveJob(path string, job model.Job) error {
	format, err := JobFormat(path)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(job)
	case FormatTOML:
		data, err = toml.Marshal(job)
	default:
		data, err = json.MarshalIndent(job, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode job: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadJob reads a job file. Settings the file leaves out fall back to
// DefaultPlanSettings, and default stock is added for any category the file
// does not configure.
func LoadJob(path string) (model.Job, error) {
	format, err := JobFormat(path)
	if err != nil {
		return model.Job{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Job{}, fmt.Errorf("failed to read job: %w", err)
	}

	job := model.Job{Settings: model.DefaultPlanSettings()}
	job.Settings.Stock = nil
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &job)
	case FormatTOML:
		err = toml.Unmarshal(data, &job)
	default:
		err = json.Unmarshal(data, &job)
	}
	if err != nil {
		return model.Job{}, fmt.Errorf("failed to parse job %s: %w", path, err)
	}

	ApplyJobDefaults(&job, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	return job, nil
}

// ApplyJobDefaults fills in an ID, a name, the default trim profile and
// default stock for categories the job leaves unconfigured. Openings without
// a kind become windows.
func ApplyJobDefaults(job *model.Job, fallbackName string) {
	if job.ID == "" {
		job.ID = uuid.New().String()[:8]
	}
	if job.Name == "" {
		job.Name = fallbackName
	}
	if job.Openings == nil {
		job.Openings = []model.Opening{}
	}
	if job.Offcuts == nil {
		job.Offcuts = map[string][]float64{}
	}
	if job.Settings.Trim == (model.TrimProfile{}) {
		job.Settings.Trim = model.DefaultTrimProfile()
	}
	for _, def := range model.DefaultPlanSettings().Stock {
		if _, ok := job.Settings.StockFor(def.Category); !ok {
			job.Settings.Stock = append(job.Settings.Stock, def)
		}
	}
	for i := range job.Openings {
		if job.Openings[i].Kind == "" {
			job.Openings[i].Kind = model.KindWindow
		}
	}
}
