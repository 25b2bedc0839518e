package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/trimcut/internal/model"
)

func sampleJob() model.Job {
	job := model.NewJob("Kitchen")
	living := model.NewOpening("Living", model.KindDoubleWindow, 60, 48)
	living.Divider = 4
	hall := model.NewOpening("Hall", model.KindDoor, 31, 78.5)
	hall.HasJambs = true
	job.Openings = []model.Opening{
		model.NewOpening("Sink", model.KindWindow, 36, 38),
		living,
		hall,
	}
	job.Settings.Stock[0].Kerf = 0.09375
	job.Offcuts[model.CategoryHead] = []float64{40, 55.5}
	return job
}

func TestSaveAndLoadJob_AllFormats(t *testing.T) {
	for _, ext := range []string{".yaml", ".yml", ".toml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "kitchen"+ext)
			job := sampleJob()

			if err := SaveJob(path, job); err != nil {
				t.Fatalf("SaveJob failed: %v", err)
			}
			loaded, err := LoadJob(path)
			if err != nil {
				t.Fatalf("LoadJob failed: %v", err)
			}

			if loaded.ID != job.ID || loaded.Name != job.Name {
				t.Errorf("expected %s/%s, got %s/%s", job.ID, job.Name, loaded.ID, loaded.Name)
			}
			if len(loaded.Openings) != 3 {
				t.Fatalf("expected 3 openings, got %d", len(loaded.Openings))
			}
			for i := range job.Openings {
				if loaded.Openings[i] != job.Openings[i] {
					t.Errorf("opening %d: expected %+v, got %+v", i, job.Openings[i], loaded.Openings[i])
				}
			}
			if loaded.Settings.Trim != job.Settings.Trim {
				t.Errorf("trim profile changed: %+v", loaded.Settings.Trim)
			}
			if len(loaded.Settings.Stock) != len(job.Settings.Stock) {
				t.Fatalf("expected %d stock entries, got %d", len(job.Settings.Stock), len(loaded.Settings.Stock))
			}
			if loaded.Settings.Stock[0] != job.Settings.Stock[0] {
				t.Errorf("expected %+v, got %+v", job.Settings.Stock[0], loaded.Settings.Stock[0])
			}
			if got := loaded.Offcuts[model.CategoryHead]; len(got) != 2 || got[1] != 55.5 {
				t.Errorf("unexpected offcuts %v", got)
			}
		})
	}
}

func TestLoadJob_MinimalYAMLGetsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bath.yaml")
	data := []byte(`openings:
  - name: Bath
    kind: window
    width: 24
    height: 36
settings:
  allowance: 0.5
  stock:
    - category: head
      title: Head
      board_length: 96
      kerf: 0.125
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	job, err := LoadJob(path)
	if err != nil {
		t.Fatalf("LoadJob failed: %v", err)
	}

	if job.Name != "bath" {
		t.Errorf("expected name from file, got %q", job.Name)
	}
	if job.ID == "" {
		t.Error("expected generated ID")
	}
	if job.Settings.Allowance != 0.5 {
		t.Errorf("expected allowance 0.5, got %g", job.Settings.Allowance)
	}
	if job.Settings.Trim != model.DefaultTrimProfile() {
		t.Error("expected default trim profile")
	}
	head, ok := job.Settings.StockFor(model.CategoryHead)
	if !ok || head.BoardLength != 96 {
		t.Errorf("expected configured head stock, got %+v", head)
	}
	if len(job.Settings.Stock) != len(model.DefaultPlanSettings().Stock) {
		t.Errorf("expected missing categories to be filled, got %d entries", len(job.Settings.Stock))
	}
	if job.Settings.Stock[0].Category != model.CategoryHead {
		t.Errorf("expected file stock first, got %q", job.Settings.Stock[0].Category)
	}
	if err := job.Validate(); err != nil {
		t.Errorf("loaded job should validate: %v", err)
	}
}

func TestLoadJob_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "den.toml")
	data := []byte(`name = "Den"

[[openings]]
name = "Den Door"
kind = "door"
width = 30.0
height = 80.0
use_crown = true

[offcuts]
side = [60.0, 72.0]
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	job, err := LoadJob(path)
	if err != nil {
		t.Fatalf("LoadJob failed: %v", err)
	}
	if job.Name != "Den" || len(job.Openings) != 1 {
		t.Fatalf("unexpected job %+v", job)
	}
	if job.Openings[0].Kind != model.KindDoor || !job.Openings[0].UseCrown {
		t.Errorf("unexpected opening %+v", job.Openings[0])
	}
	if len(job.Offcuts[model.CategorySide]) != 2 {
		t.Errorf("expected 2 side offcuts, got %v", job.Offcuts)
	}
	if len(job.Settings.Stock) != len(model.DefaultPlanSettings().Stock) {
		t.Errorf("expected default stock, got %d entries", len(job.Settings.Stock))
	}
}

func TestLoadJob_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadJob(filepath.Join(dir, "job.txt")); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if _, err := LoadJob(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadJob(bad); err == nil {
		t.Error("expected parse error")
	}
}

func TestJobFormat(t *testing.T) {
	tests := map[string]string{
		"a.yaml": FormatYAML,
		"a.YML":  FormatYAML,
		"a.toml": FormatTOML,
		"a.json": FormatJSON,
	}
	for path, want := range tests {
		got, err := JobFormat(path)
		if err != nil || got != want {
			t.Errorf("JobFormat(%q) = %q, %v; want %q", path, got, err, want)
		}
	}
	if _, err := JobFormat("a.xml"); err == nil {
		t.Error("expected error for .xml")
	}
}
