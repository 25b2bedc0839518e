package model

import (
	"fmt"
	"strings"
)

// Part categories produced by an opening.
const (
	CategoryJambTop  = "jamb_top"
	CategoryJambSide = "jamb_side"
	CategoryCrown    = "crown"
	CategoryHead     = "head"
	CategoryBead     = "bead"
	CategorySide     = "side"
	CategoryStool    = "stool"
	CategoryApron    = "apron"
	CategoryBlock    = "block"
)

// Categories lists every part category in report order.
var Categories = []string{
	CategoryJambTop,
	CategoryJambSide,
	CategoryCrown,
	CategoryHead,
	CategoryBead,
	CategorySide,
	CategoryStool,
	CategoryApron,
	CategoryBlock,
}

// TrimProfile holds the moulding dimensions, in inches, that drive the
// per-opening length formulas.
type TrimProfile struct {
	CasingSideWidth float64 `json:"casing_side_width" yaml:"casing_side_width" toml:"casing_side_width"`
	CasingHeadWidth float64 `json:"casing_head_width" yaml:"casing_head_width" toml:"casing_head_width"`
	ApronWidth      float64 `json:"apron_width" yaml:"apron_width" toml:"apron_width"`
	BlockWidth      float64 `json:"block_width" yaml:"block_width" toml:"block_width"`
	BlockHeight     float64 `json:"block_height" yaml:"block_height" toml:"block_height"`
	StoolThickness  float64 `json:"stool_thickness" yaml:"stool_thickness" toml:"stool_thickness"`
	JambThickness   float64 `json:"jamb_thickness" yaml:"jamb_thickness" toml:"jamb_thickness"`
	CrownDepth      float64 `json:"crown_depth" yaml:"crown_depth" toml:"crown_depth"` // Extra material for miter returns
	BeadThickness   float64 `json:"bead_thickness" yaml:"bead_thickness" toml:"bead_thickness"`
	Reveal          float64 `json:"reveal" yaml:"reveal" toml:"reveal"` // Reveal left by casing on jamb
	CrownHang       float64 `json:"crown_hang" yaml:"crown_hang" toml:"crown_hang"`
	BeadHang        float64 `json:"bead_hang" yaml:"bead_hang" toml:"bead_hang"`
	StoolHang       float64 `json:"stool_hang" yaml:"stool_hang" toml:"stool_hang"`
}

func DefaultTrimProfile() TrimProfile {
	return TrimProfile{
		CasingSideWidth: 5.25,
		CasingHeadWidth: 5.5,
		ApronWidth:      5.5,
		BlockWidth:      5.25,
		BlockHeight:     11.0,
		StoolThickness:  1.125,
		JambThickness:   11.0 / 16.0,
		CrownDepth:      2.125,
		BeadThickness:   0.5,
		Reveal:          0.25,
		CrownHang:       1.5,
		BeadHang:        0.5,
		StoolHang:       0.5,
	}
}

// Part is a finished trim piece: its installed length, how many are needed
// and the rough length to cut before mitering.
type Part struct {
	Length float64 `json:"length"`
	Count  int     `json:"count"`
	Rough  float64 `json:"rough"`
}

// NewPart returns a part whose rough length equals its finished length.
func NewPart(length float64, count int) Part {
	return Part{Length: length, Count: count, Rough: length}
}

func (p Part) String() string {
	return fmt.Sprintf("%d @ %g (%g)", p.Count, p.Rough, p.Length)
}

// PartsList groups parts by category, keeping first-seen category order.
type PartsList struct {
	order []string
	parts map[string][]Part
}

func NewPartsList() *PartsList {
	return &PartsList{parts: make(map[string][]Part)}
}

// Add appends a part under the given category.
func (pl *PartsList) Add(category string, p Part) {
	if _, ok := pl.parts[category]; !ok {
		pl.order = append(pl.order, category)
	}
	pl.parts[category] = append(pl.parts[category], p)
}

// Merge appends copies of every part in other.
func (pl *PartsList) Merge(other *PartsList) {
	for _, cat := range other.order {
		for _, p := range other.parts[cat] {
			pl.Add(cat, p)
		}
	}
}

// Categories returns the categories present, in insertion order.
func (pl *PartsList) Categories() []string {
	out := make([]string, len(pl.order))
	copy(out, pl.order)
	return out
}

// Parts returns the parts for a category.
func (pl *PartsList) Parts(category string) []Part {
	return pl.parts[category]
}

func (pl *PartsList) String() string {
	var sb strings.Builder
	for _, cat := range pl.order {
		sb.WriteString(cat + "\n")
		for _, p := range pl.parts[cat] {
			sb.WriteString("\t" + p.String() + "\n")
		}
	}
	return sb.String()
}

// OpeningKind selects the length formulas used for an opening.
type OpeningKind string

const (
	KindWindow       OpeningKind = "window"
	KindDoubleWindow OpeningKind = "double_window"
	KindDoor         OpeningKind = "door"
)

// ParseOpeningKind accepts the canonical kinds plus a few common spellings.
func ParseOpeningKind(s string) (OpeningKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "window", "w":
		return KindWindow, nil
	case "double_window", "double window", "doublewindow", "double", "dw":
		return KindDoubleWindow, nil
	case "door", "d":
		return KindDoor, nil
	default:
		return "", fmt.Errorf("unknown opening kind %q", s)
	}
}

// Opening is a window or door to be trimmed out. Sizes are in inches.
type Opening struct {
	Name     string      `json:"name" yaml:"name" toml:"name"`
	Kind     OpeningKind `json:"kind" yaml:"kind" toml:"kind"`
	Width    float64     `json:"width" yaml:"width" toml:"width"`
	Height   float64     `json:"height" yaml:"height" toml:"height"`
	Divider  float64     `json:"divider,omitempty" yaml:"divider,omitempty" toml:"divider,omitempty"` // Mullin width between double window sashes
	UseCrown bool        `json:"use_crown" yaml:"use_crown" toml:"use_crown"`
	HasJambs bool        `json:"has_jambs" yaml:"has_jambs" toml:"has_jambs"` // Jambs already installed
}

// NewOpening returns an opening with crown enabled and no existing jambs.
func NewOpening(name string, kind OpeningKind, width, height float64) Opening {
	return Opening{
		Name:     name,
		Kind:     kind,
		Width:    width,
		Height:   height,
		UseCrown: true,
	}
}

// Validate checks the kind and dimensions.
func (o Opening) Validate() error {
	switch o.Kind {
	case KindWindow, KindDoor:
	case KindDoubleWindow:
		if o.Divider < 0 || o.Divider >= o.Width {
			return fmt.Errorf("opening %q: divider %g must be within width %g", o.Name, o.Divider, o.Width)
		}
	default:
		return fmt.Errorf("opening %q: unknown kind %q", o.Name, o.Kind)
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("opening %q: width and height must be positive", o.Name)
	}
	return nil
}

func (o Opening) extraFromJambs(tp TrimProfile) float64 {
	if o.HasJambs {
		return 0
	}
	return tp.JambThickness
}

func (o Opening) acrossCasing(tp TrimProfile) float64 {
	return o.Width + 2*(tp.CasingSideWidth+tp.Reveal-o.extraFromJambs(tp))
}

func (o Opening) isWindow() bool {
	return o.Kind == KindWindow || o.Kind == KindDoubleWindow
}

// Parts computes the trim pieces the opening needs.
func (o Opening) Parts(tp TrimProfile, includeJambs bool) *PartsList {
	pl := NewPartsList()
	across := o.acrossCasing(tp)
	extra := o.extraFromJambs(tp)

	if includeJambs {
		if o.Kind == KindDoubleWindow {
			pl.Add(CategoryJambTop, NewPart((o.Width-o.Divider)/2, 2))
		} else {
			pl.Add(CategoryJambTop, NewPart(o.Width, 1))
		}
		switch o.Kind {
		case KindWindow:
			pl.Add(CategoryJambSide, NewPart(o.Height-tp.JambThickness-tp.StoolThickness, 2))
		case KindDoubleWindow:
			pl.Add(CategoryJambSide, NewPart(o.Height-tp.JambThickness-tp.StoolThickness, 4))
		case KindDoor:
			pl.Add(CategoryJambSide, NewPart(o.Height-tp.JambThickness, 2))
		}
	}

	if o.UseCrown {
		l := across + 2*tp.CrownHang
		pl.Add(CategoryCrown, Part{Length: l, Count: 1, Rough: l + 2*tp.CrownDepth})
	}
	pl.Add(CategoryHead, NewPart(across, 1))
	pl.Add(CategoryBead, NewPart(across+2*tp.BeadHang, 1))

	side := o.Height - tp.StoolThickness - extra + tp.Reveal
	switch o.Kind {
	case KindWindow:
		pl.Add(CategorySide, NewPart(side, 2))
	case KindDoubleWindow:
		pl.Add(CategorySide, NewPart(side, 3))
	case KindDoor:
		pl.Add(CategorySide, NewPart(side-tp.BlockHeight, 2))
	}

	if o.isWindow() {
		pl.Add(CategoryStool, NewPart(across+2*tp.StoolHang, 1))
		pl.Add(CategoryApron, NewPart(across, 1))
	}
	if o.Kind == KindDoor {
		pl.Add(CategoryBlock, NewPart(tp.BlockHeight, 2))
	}
	return pl
}

// MasterPartsList merges the parts of every opening.
func MasterPartsList(openings []Opening, tp TrimProfile, includeJambs bool) *PartsList {
	master := NewPartsList()
	for _, o := range openings {
		master.Merge(o.Parts(tp, includeJambs))
	}
	return master
}
