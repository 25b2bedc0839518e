package engine

import (
	"fmt"

	"github.com/piwi3910/trimcut/internal/model"
)

// ComparisonScenario defines a named stock configuration to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.StockSettings
	Offcuts  []float64
}

// ComparisonResult holds the cut list and computed statistics for a single
// scenario. Err is set when the scenario could not be packed (e.g. an
// oversize cut with joining disabled).
type ComparisonResult struct {
	Scenario     ComparisonScenario
	Result       *model.CutList
	BoardsUsed   int
	TotalCuts    int
	StockLength  float64
	WastePercent float64
	Err          error
}

// CompareScenarios packs the same cuts under each scenario and returns the
// results in scenario order.
func CompareScenarios(name string, cuts []model.Cut, scenarios []ComparisonScenario) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		maker := New(scenario.Settings, scenario.Offcuts)
		cl, err := maker.Make(name, cuts)
		if err != nil {
			results = append(results, ComparisonResult{Scenario: scenario, Err: err})
			continue
		}

		results = append(results, ComparisonResult{
			Scenario:     scenario,
			Result:       cl,
			BoardsUsed:   len(cl.Boards),
			TotalCuts:    cl.CutCount(),
			StockLength:  cl.StockLength(),
			WastePercent: 100.0 - cl.Efficiency(),
		})
	}

	return results
}

// standardLengths are common lumber-yard board lengths in inches.
var standardLengths = []float64{8 * 12, 10 * 12, 12 * 12, 14 * 12, 16 * 12}

// BuildDefaultScenarios generates what-if alternatives around the base
// stock settings: toggled joining, a thinner blade, and other standard
// board lengths.
func BuildDefaultScenarios(base model.StockSettings, offcuts []float64) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Current Settings", Settings: base, Offcuts: offcuts},
	}

	alt := base
	alt.Join = !base.Join
	if alt.Join {
		scenarios = append(scenarios, ComparisonScenario{Name: "Allow Joins", Settings: alt, Offcuts: offcuts})
	} else {
		scenarios = append(scenarios, ComparisonScenario{Name: "No Joins", Settings: alt, Offcuts: offcuts})
	}

	if base.Kerf > 0 {
		thin := base
		thin.Kerf = base.Kerf * 0.5
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Kerf %g\" (half)", thin.Kerf),
			Settings: thin,
			Offcuts:  offcuts,
		})
	}

	if len(offcuts) > 0 {
		scenarios = append(scenarios, ComparisonScenario{Name: "Ignore Offcuts", Settings: base})
	}

	for _, l := range standardLengths {
		if l == base.BoardLength {
			continue
		}
		s := base
		s.BoardLength = l
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("%g' Boards", l/12),
			Settings: s,
			Offcuts:  offcuts,
		})
	}

	return scenarios
}
