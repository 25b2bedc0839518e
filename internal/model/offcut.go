package model

import (
	"sort"

	"github.com/google/uuid"
)

// Remnant is a leftover piece of a board that is long enough to keep.
type Remnant struct {
	ID         string  `json:"id"`
	ListName   string  `json:"list_name"`   // Cut list the board belongs to
	BoardIndex int     `json:"board_index"` // Index of the source board in the list
	Length     float64 `json:"length"`
}

// DefaultMinRemnantLength is the shortest leftover, in inches, worth keeping.
const DefaultMinRemnantLength = 12.0

// DetectRemnants reports the excess of every board in the cut list that is at
// least minLength long. Results are sorted longest first.
func DetectRemnants(cl *CutList, minLength float64) []Remnant {
	var remnants []Remnant
	for i, b := range cl.Boards {
		excess := b.Excess()
		if excess < minLength || excess <= 0 {
			continue
		}
		remnants = append(remnants, Remnant{
			ID:         uuid.New().String()[:8],
			ListName:   cl.Name,
			BoardIndex: i,
			Length:     excess,
		})
	}

	sort.SliceStable(remnants, func(i, j int) bool {
		return remnants[i].Length > remnants[j].Length
	})
	return remnants
}

// DetectAllRemnants finds remnants across several cut lists.
func DetectAllRemnants(lists []*CutList, minLength float64) []Remnant {
	var all []Remnant
	for _, cl := range lists {
		all = append(all, DetectRemnants(cl, minLength)...)
	}
	return all
}

// TotalRemnantLength returns the combined length of all remnants.
func TotalRemnantLength(remnants []Remnant) float64 {
	var total float64
	for _, r := range remnants {
		total += r.Length
	}
	return total
}

// RemnantLengths returns the lengths of the remnants, for feeding a later
// run's offcut pool by hand.
func RemnantLengths(remnants []Remnant) []float64 {
	out := make([]float64, len(remnants))
	for i, r := range remnants {
		out[i] = r.Length
	}
	return out
}

// SortedOffcuts returns a copy of lengths sorted longest first.
func SortedOffcuts(lengths []float64) []float64 {
	out := make([]float64, len(lengths))
	copy(out, lengths)
	sort.Sort(sort.Reverse(sort.Float64Slice(out)))
	return out
}
