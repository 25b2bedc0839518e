package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/trimcut/internal/model"
)

// PlanResult holds the cut lists produced for a job.
type PlanResult struct {
	JobID    string              `json:"job_id"`
	JobName  string              `json:"job_name"`
	Lists    []*model.CutList    `json:"lists"`
	Totals   []model.LinearTotal `json:"totals"`
	Remnants []model.Remnant     `json:"remnants"`
	// Offcuts left unused in each category's pool.
	UnusedOffcuts map[string][]float64 `json:"unused_offcuts,omitempty"`
}

// BoardCount returns the number of boards across all lists.
func (r *PlanResult) BoardCount() int {
	n := 0
	for _, cl := range r.Lists {
		n += len(cl.Boards)
	}
	return n
}

// CutCount returns the number of cuts across all lists.
func (r *PlanResult) CutCount() int {
	n := 0
	for _, cl := range r.Lists {
		n += cl.CutCount()
	}
	return n
}

// CutLength converts a part's rough length into the length to cut.
func CutLength(rough float64, settings model.PlanSettings) float64 {
	if settings.RoundUp {
		rough = math.Ceil(rough)
	}
	return rough + settings.Allowance
}

// BuildCuts expands every opening's parts into one Cut per piece, grouped by
// category. Cuts keep opening order within a category.
func BuildCuts(openings []model.Opening, settings model.PlanSettings) map[string][]model.Cut {
	cuts := make(map[string][]model.Cut)
	for _, o := range openings {
		parts := o.Parts(settings.Trim, settings.IncludeJambs)
		for _, cat := range parts.Categories() {
			for _, p := range parts.Parts(cat) {
				for i := 0; i < p.Count; i++ {
					cuts[cat] = append(cuts[cat], model.NewCut(o.Name, cat, CutLength(p.Rough, settings)))
				}
			}
		}
	}
	return cuts
}

// Planner turns jobs into cut lists.
type Planner struct {
	MinRemnantLength float64
}

func NewPlanner(minRemnantLength float64) *Planner {
	return &Planner{MinRemnantLength: minRemnantLength}
}

// Plan runs one CutListMaker per stock category, in settings order, seeding
// each with the job's offcuts for that category. Categories without cuts are
// skipped.
func (p *Planner) Plan(job model.Job) (*PlanResult, error) {
	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job %q: %w", job.Name, err)
	}

	settings := job.Settings
	cuts := BuildCuts(job.Openings, settings)
	master := model.MasterPartsList(job.Openings, settings.Trim, settings.IncludeJambs)

	result := &PlanResult{
		JobID:         job.ID,
		JobName:       job.Name,
		Lists:         []*model.CutList{},
		Totals:        model.LinearTotals(master),
		UnusedOffcuts: map[string][]float64{},
	}

	for _, cat := range model.Categories {
		if _, ok := settings.StockFor(cat); !ok && len(cuts[cat]) > 0 {
			return nil, fmt.Errorf("no stock configured for category %q", cat)
		}
	}

	for _, stock := range settings.Stock {
		catCuts := cuts[stock.Category]
		if len(catCuts) == 0 {
			continue
		}
		maker := New(stock.StockSettings, job.Offcuts[stock.Category])
		cl, err := maker.Make(stock.Title, catCuts)
		if err != nil {
			return nil, fmt.Errorf("failed to make %s cut list: %w", stock.Title, err)
		}
		result.Lists = append(result.Lists, cl)
		if left := maker.Offcuts(); len(left) > 0 {
			result.UnusedOffcuts[stock.Category] = left
		}
	}

	result.Remnants = model.DetectAllRemnants(result.Lists, p.MinRemnantLength)
	return result, nil
}
