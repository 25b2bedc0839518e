package model

import (
	"fmt"
	"math"
)

// LinearTotal is the total rough length needed for one category.
type LinearTotal struct {
	Category string  `json:"category"`
	Pieces   int     `json:"pieces"`
	Inches   float64 `json:"inches"`
}

// Feet returns the total formatted as feet and inches.
func (lt LinearTotal) Feet() string {
	return FormatFeetInches(lt.Inches)
}

// LinearTotals sums rough length times count for every category in the list.
func LinearTotals(pl *PartsList) []LinearTotal {
	var totals []LinearTotal
	for _, cat := range pl.Categories() {
		t := LinearTotal{Category: cat}
		for _, p := range pl.Parts(cat) {
			t.Inches += p.Rough * float64(p.Count)
			t.Pieces += p.Count
		}
		totals = append(totals, t)
	}
	return totals
}

// FormatFeetInches renders a length in inches as feet and whole inches,
// e.g. 150 -> 12' 6".
func FormatFeetInches(inches float64) string {
	feet := math.Floor(inches / 12)
	rem := math.Round(inches - feet*12)
	if rem >= 12 {
		feet++
		rem -= 12
	}
	return fmt.Sprintf("%.0f' %.0f\"", feet, rem)
}

// PurchaseEstimate holds the results of a board purchasing calculation.
type PurchaseEstimate struct {
	TotalLength       float64 `json:"total_length"`        // Total cut length including kerf (inches)
	BoardLength       float64 `json:"board_length"`        // Length of one board (inches)
	BoardsNeededExact float64 `json:"boards_needed_exact"` // Exact fractional number of boards
	BoardsNeededMin   int     `json:"boards_needed_min"`   // Minimum boards (ceiling of exact)
	BoardsWithWaste   int     `json:"boards_with_waste"`   // Recommended boards including waste factor
	WastePercent      float64 `json:"waste_percent"`       // Waste factor applied (e.g., 10 for 10%)
	EstimatedCost     float64 `json:"estimated_cost"`
	PricePerBoard     float64 `json:"price_per_board"`
	Kerf              float64 `json:"kerf"`
}

// EstimatePurchase computes how many boards to buy for a list of cuts.
// This is a length-only lower bound; the packed cut list is authoritative.
func EstimatePurchase(cuts []Cut, boardLength, kerf, wastePercent, pricePerBoard float64) PurchaseEstimate {
	var total float64
	for _, c := range cuts {
		total += c.Length + kerf
	}

	if boardLength <= 0 {
		return PurchaseEstimate{
			TotalLength:  total,
			WastePercent: wastePercent,
			Kerf:         kerf,
		}
	}

	exact := total / boardLength
	minBoards := int(math.Ceil(exact))

	wasteFactor := 1.0 + (wastePercent / 100.0)
	withWaste := int(math.Ceil(exact * wasteFactor))
	if withWaste < minBoards {
		withWaste = minBoards
	}

	return PurchaseEstimate{
		TotalLength:       total,
		BoardLength:       boardLength,
		BoardsNeededExact: exact,
		BoardsNeededMin:   minBoards,
		BoardsWithWaste:   withWaste,
		WastePercent:      wastePercent,
		EstimatedCost:     float64(withWaste) * pricePerBoard,
		PricePerBoard:     pricePerBoard,
		Kerf:              kerf,
	}
}
