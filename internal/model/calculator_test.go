package model

import (
	"math"
	"testing"
)

func TestFormatFeetInches(t *testing.T) {
	cases := map[float64]string{
		0:      "0' 0\"",
		150:    "12' 6\"",
		11.6:   "1' 0\"",
		191.75: "16' 0\"",
		100.2:  "8' 4\"",
	}
	for in, want := range cases {
		if got := FormatFeetInches(in); got != want {
			t.Errorf("FormatFeetInches(%v) = %s, want %s", in, got, want)
		}
	}
}

func TestLinearTotals(t *testing.T) {
	pl := NewPartsList()
	pl.Add(CategorySide, NewPart(50, 2))
	pl.Add(CategoryCrown, Part{Length: 40, Count: 1, Rough: 44})
	pl.Add(CategorySide, NewPart(60, 2))

	totals := LinearTotals(pl)
	if len(totals) != 2 {
		t.Fatalf("expected 2 totals, got %d", len(totals))
	}
	if totals[0].Category != CategorySide || totals[0].Inches != 220 || totals[0].Pieces != 4 {
		t.Errorf("unexpected side total %+v", totals[0])
	}
	if totals[1].Inches != 44 {
		t.Errorf("expected crown total to use rough length, got %f", totals[1].Inches)
	}
	if totals[0].Feet() != "18' 4\"" {
		t.Errorf("unexpected feet rendering %s", totals[0].Feet())
	}
}

func TestEstimatePurchaseBasic(t *testing.T) {
	cuts := []Cut{
		{Label: "a", Length: 40},
		{Label: "b", Length: 40},
		{Label: "c", Length: 40},
	}
	est := EstimatePurchase(cuts, 96, 0.125, 10, 12.5)

	if math.Abs(est.TotalLength-120.375) > 1e-9 {
		t.Errorf("expected total 120.375, got %f", est.TotalLength)
	}
	if est.BoardsNeededMin != 2 {
		t.Errorf("expected 2 boards minimum, got %d", est.BoardsNeededMin)
	}
	if est.BoardsWithWaste < est.BoardsNeededMin {
		t.Error("boards with waste should be >= minimum boards")
	}
	if est.EstimatedCost != float64(est.BoardsWithWaste)*12.5 {
		t.Errorf("unexpected cost %f", est.EstimatedCost)
	}
}

func TestEstimatePurchaseZeroBoardLength(t *testing.T) {
	est := EstimatePurchase([]Cut{{Length: 10}}, 0, 0, 10, 0)
	if est.BoardsNeededMin != 0 {
		t.Errorf("expected 0 boards for zero board length, got %d", est.BoardsNeededMin)
	}
	if est.TotalLength != 10 {
		t.Errorf("expected total 10, got %f", est.TotalLength)
	}
}
