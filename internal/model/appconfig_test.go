package model

import "testing"

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultPlanSettings()

	if cfg.DefaultKerf != DefaultKerf {
		t.Errorf("Kerf mismatch: config=%f default=%f", cfg.DefaultKerf, DefaultKerf)
	}
	if cfg.DefaultAllowance != defaults.Allowance {
		t.Errorf("Allowance mismatch: config=%f settings=%f", cfg.DefaultAllowance, defaults.Allowance)
	}
	if cfg.DefaultRoundUp != defaults.RoundUp {
		t.Errorf("RoundUp mismatch: config=%v settings=%v", cfg.DefaultRoundUp, defaults.RoundUp)
	}
	if cfg.RecentJobs == nil {
		t.Error("RecentJobs should not be nil")
	}
}

func TestApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultKerf = 0.0625
	cfg.DefaultAllowance = 2.0
	cfg.DefaultRoundUp = false

	s := DefaultPlanSettings()
	cfg.ApplyToSettings(&s)

	if s.Allowance != 2.0 {
		t.Errorf("expected Allowance=2.0, got %f", s.Allowance)
	}
	if s.RoundUp {
		t.Error("expected RoundUp=false")
	}
	for _, cs := range s.Stock {
		if cs.Kerf != 0.0625 {
			t.Errorf("expected kerf 0.0625 for %s, got %f", cs.Category, cs.Kerf)
		}
	}
}

func TestAddRecentJob(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentJob("a.yaml", 3)
	cfg.AddRecentJob("b.yaml", 3)
	cfg.AddRecentJob("a.yaml", 3)
	cfg.AddRecentJob("c.yaml", 3)
	cfg.AddRecentJob("d.yaml", 3)

	want := []string{"d.yaml", "c.yaml", "a.yaml"}
	if len(cfg.RecentJobs) != len(want) {
		t.Fatalf("expected %d recent jobs, got %v", len(want), cfg.RecentJobs)
	}
	for i := range want {
		if cfg.RecentJobs[i] != want[i] {
			t.Errorf("recent[%d]: expected %s, got %s", i, want[i], cfg.RecentJobs[i])
		}
	}
}
