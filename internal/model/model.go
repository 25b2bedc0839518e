package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// DefaultKerf is the saw blade width in inches used when none is configured.
const DefaultKerf = 0.125

// ErrInvalidLength is returned for non-positive lengths or a negative kerf.
var ErrInvalidLength = errors.New("invalid length")

// Cut is a request for one piece of a given length.
type Cut struct {
	ID     string  `json:"id"`
	Job    string  `json:"job"`   // Name of the opening/job the piece belongs to
	Label  string  `json:"label"` // Part category or split label, e.g. "crown 1/2"
	Length float64 `json:"length"`
}

func NewCut(job, label string, length float64) Cut {
	return Cut{
		ID:     uuid.New().String()[:8],
		Job:    job,
		Label:  label,
		Length: length,
	}
}

func (c Cut) String() string {
	return fmt.Sprintf("%s %s @ %g", c.Job, c.Label, c.Length)
}

// Board is one physical stock piece and the cuts assigned to it.
type Board struct {
	Length float64 `json:"length"`
	Kerf   float64 `json:"kerf"`
	Cuts   []Cut   `json:"cuts"`
}

// Excess returns the usable length left on the board. Kerf is charged once
// for every cut on the board, including the first.
func (b *Board) Excess() float64 {
	return b.Length - b.UsedLength()
}

// UsedLength returns the length consumed by cuts and their kerf.
func (b *Board) UsedLength() float64 {
	var total float64
	for _, c := range b.Cuts {
		total += c.Length
	}
	return total + b.Kerf*float64(len(b.Cuts))
}

// Efficiency returns the share of the board that ends up in pieces, in percent.
func (b *Board) Efficiency() float64 {
	if b.Length <= 0 {
		return 0
	}
	var pieces float64
	for _, c := range b.Cuts {
		pieces += c.Length
	}
	return (pieces / b.Length) * 100.0
}

// CutList is the set of boards produced for one part category.
type CutList struct {
	Name   string   `json:"name"`
	Kerf   float64  `json:"kerf"`
	Boards []*Board `json:"boards"`
}

func NewCutList(name string, kerf float64) *CutList {
	return &CutList{Name: name, Kerf: kerf, Boards: []*Board{}}
}

// NewBoard appends an empty board of the given length and returns it.
func (cl *CutList) NewBoard(length float64) *Board {
	b := &Board{Length: length, Kerf: cl.Kerf, Cuts: []Cut{}}
	cl.Boards = append(cl.Boards, b)
	return b
}

// CutCount returns the number of cuts across all boards.
func (cl *CutList) CutCount() int {
	n := 0
	for _, b := range cl.Boards {
		n += len(b.Cuts)
	}
	return n
}

// StockLength returns the total length of all boards used.
func (cl *CutList) StockLength() float64 {
	var total float64
	for _, b := range cl.Boards {
		total += b.Length
	}
	return total
}

// Efficiency returns overall material usage in percent.
func (cl *CutList) Efficiency() float64 {
	stock := cl.StockLength()
	if stock == 0 {
		return 0
	}
	var pieces float64
	for _, b := range cl.Boards {
		for _, c := range b.Cuts {
			pieces += c.Length
		}
	}
	return (pieces / stock) * 100.0
}

// OversizeCutError reports a cut that cannot fit on a board when joining
// is disabled. Length includes the kerf allowance.
type OversizeCutError struct {
	Label       string
	Length      float64
	BoardLength float64
}

func (e *OversizeCutError) Error() string {
	return fmt.Sprintf("oversize cut %q: cut length greater than board length %g > %g", e.Label, e.Length, e.BoardLength)
}

// StockSettings configures a cut list maker for one stock profile.
type StockSettings struct {
	BoardLength float64 `json:"board_length" yaml:"board_length" toml:"board_length"`
	Kerf        float64 `json:"kerf" yaml:"kerf" toml:"kerf"`
	Join        bool    `json:"join" yaml:"join" toml:"join"` // Split oversize cuts across boards
}

// NewStockSettings returns settings for the given board length with the
// default kerf and joining disabled.
func NewStockSettings(boardLength float64) StockSettings {
	return StockSettings{
		BoardLength: boardLength,
		Kerf:        DefaultKerf,
		Join:        false,
	}
}

// Validate checks the board length and kerf.
func (s StockSettings) Validate() error {
	if s.BoardLength <= 0 {
		return fmt.Errorf("board length %g: %w", s.BoardLength, ErrInvalidLength)
	}
	if s.Kerf < 0 {
		return fmt.Errorf("kerf %g: %w", s.Kerf, ErrInvalidLength)
	}
	return nil
}
