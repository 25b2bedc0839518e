package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new jobs and ad hoc cut lists
	DefaultKerf        float64 `json:"default_kerf"`
	DefaultAllowance   float64 `json:"default_allowance"`
	DefaultRoundUp     bool    `json:"default_round_up"`
	DefaultBoardLength float64 `json:"default_board_length"`
	MinRemnantLength   float64 `json:"min_remnant_length"`
	WastePercent       float64 `json:"waste_percent"`

	// Server and storage
	ServerPort  int    `json:"server_port"`
	HistoryPath string `json:"history_path"` // sqlite file; empty = <config dir>/history.db

	RecentJobs []string `json:"recent_jobs"`
}

// DefaultAppConfig returns an AppConfig populated with defaults matching
// DefaultPlanSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultPlanSettings()
	return AppConfig{
		DefaultKerf:        DefaultKerf,
		DefaultAllowance:   defaults.Allowance,
		DefaultRoundUp:     defaults.RoundUp,
		DefaultBoardLength: 16 * 12,
		MinRemnantLength:   DefaultMinRemnantLength,
		WastePercent:       10,
		ServerPort:         8420,
		HistoryPath:        "",
		RecentJobs:         []string{},
	}
}

// ApplyToSettings copies the configured defaults into plan settings. Every
// stock entry takes the default kerf.
func (c AppConfig) ApplyToSettings(s *PlanSettings) {
	s.Allowance = c.DefaultAllowance
	s.RoundUp = c.DefaultRoundUp
	for i := range s.Stock {
		s.Stock[i].Kerf = c.DefaultKerf
	}
}

// AddRecentJob moves path to the front of the recent list, keeping at most max entries.
func (c *AppConfig) AddRecentJob(path string, max int) {
	out := []string{path}
	for _, p := range c.RecentJobs {
		if p != path {
			out = append(out, p)
		}
	}
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	c.RecentJobs = out
}
