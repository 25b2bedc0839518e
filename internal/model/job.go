package model

import (
	"fmt"

	"github.com/google/uuid"
)

// CategoryStock binds a part category to the stock it is cut from.
type CategoryStock struct {
	Category string `json:"category" yaml:"category" toml:"category"`
	Title    string `json:"title" yaml:"title" toml:"title"` // Cut list name shown in reports
	StockSettings `yaml:",inline"`
}

// PlanSettings controls how openings become cuts and how each category is packed.
type PlanSettings struct {
	Trim         TrimProfile     `json:"trim" yaml:"trim" toml:"trim"`
	Allowance    float64         `json:"allowance" yaml:"allowance" toml:"allowance"` // Added to every rough length
	RoundUp      bool            `json:"round_up" yaml:"round_up" toml:"round_up"`    // Round rough lengths up to the whole inch first
	IncludeJambs bool            `json:"include_jambs" yaml:"include_jambs" toml:"include_jambs"`
	Stock        []CategoryStock `json:"stock" yaml:"stock" toml:"stock"`
}

func categoryStock(category, title string, boardLength float64, join bool) CategoryStock {
	s := NewStockSettings(boardLength)
	s.Join = join
	return CategoryStock{Category: category, Title: title, StockSettings: s}
}

// DefaultPlanSettings mirrors a typical trim job: casing, apron and blocks
// from 16' boards, stool from 10' boards and crown and bead from 8' boards
// that may be joined.
func DefaultPlanSettings() PlanSettings {
	return PlanSettings{
		Trim:         DefaultTrimProfile(),
		Allowance:    1.0,
		RoundUp:      true,
		IncludeJambs: false,
		Stock: []CategoryStock{
			categoryStock(CategoryHead, "Head Casing", 16*12, false),
			categoryStock(CategorySide, "Side Casing", 16*12, false),
			categoryStock(CategoryApron, "Apron", 16*12, false),
			categoryStock(CategoryBlock, "Block", 16*12, false),
			categoryStock(CategoryStool, "Stool", 10*12, false),
			categoryStock(CategoryCrown, "Crown", 8*12, true),
			categoryStock(CategoryBead, "Bead", 8*12, true),
			categoryStock(CategoryJambTop, "Jamb Top", 16*12, false),
			categoryStock(CategoryJambSide, "Jamb Side", 16*12, false),
		},
	}
}

// StockFor returns the stock entry for a category.
func (s PlanSettings) StockFor(category string) (CategoryStock, bool) {
	for _, cs := range s.Stock {
		if cs.Category == category {
			return cs, true
		}
	}
	return CategoryStock{}, false
}

// Validate checks every stock entry.
func (s PlanSettings) Validate() error {
	if s.Allowance < 0 {
		return fmt.Errorf("allowance %g: %w", s.Allowance, ErrInvalidLength)
	}
	seen := make(map[string]bool, len(s.Stock))
	for _, cs := range s.Stock {
		if seen[cs.Category] {
			return fmt.Errorf("duplicate stock entry for category %q", cs.Category)
		}
		seen[cs.Category] = true
		if err := cs.Validate(); err != nil {
			return fmt.Errorf("stock for %q: %w", cs.Category, err)
		}
	}
	return nil
}

// Job is a set of openings to trim out, with the stock and offcuts on hand.
type Job struct {
	ID       string               `json:"id" yaml:"id" toml:"id"`
	Name     string               `json:"name" yaml:"name" toml:"name"`
	Openings []Opening            `json:"openings" yaml:"openings" toml:"openings"`
	Settings PlanSettings         `json:"settings" yaml:"settings" toml:"settings"`
	Offcuts  map[string][]float64 `json:"offcuts,omitempty" yaml:"offcuts,omitempty" toml:"offcuts,omitempty"` // Reusable lengths per category
}

func NewJob(name string) Job {
	return Job{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Openings: []Opening{},
		Settings: DefaultPlanSettings(),
		Offcuts:  map[string][]float64{},
	}
}

// Validate checks the openings and settings.
func (j Job) Validate() error {
	for _, o := range j.Openings {
		if err := o.Validate(); err != nil {
			return err
		}
	}
	return j.Settings.Validate()
}
