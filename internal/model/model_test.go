package model

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestNewCutAssignsID(t *testing.T) {
	c := NewCut("Front Door", "side", 70)
	if len(c.ID) != 8 {
		t.Errorf("expected 8-char ID, got %q", c.ID)
	}
	if c.String() != "Front Door side @ 70" {
		t.Errorf("unexpected String(): %s", c.String())
	}
}

func TestBoardExcessChargesKerfPerCut(t *testing.T) {
	b := &Board{Length: 96, Kerf: 0.125}
	if b.Excess() != 96 {
		t.Errorf("expected empty board excess 96, got %f", b.Excess())
	}
	b.Cuts = append(b.Cuts, Cut{Length: 40}, Cut{Length: 40})
	if math.Abs(b.Excess()-15.75) > 1e-9 {
		t.Errorf("expected excess 15.75, got %f", b.Excess())
	}
	if math.Abs(b.UsedLength()-80.25) > 1e-9 {
		t.Errorf("expected used 80.25, got %f", b.UsedLength())
	}
	if math.Abs(b.Efficiency()-(80.0/96.0*100)) > 1e-9 {
		t.Errorf("unexpected efficiency %f", b.Efficiency())
	}
}

func TestCutListNewBoardAppends(t *testing.T) {
	cl := NewCutList("Crown", 0.125)
	b1 := cl.NewBoard(96)
	b2 := cl.NewBoard(48)
	if len(cl.Boards) != 2 {
		t.Fatalf("expected 2 boards, got %d", len(cl.Boards))
	}
	if cl.Boards[0] != b1 || cl.Boards[1] != b2 {
		t.Error("NewBoard should return the appended board")
	}
	if b2.Kerf != 0.125 {
		t.Errorf("board should inherit list kerf, got %f", b2.Kerf)
	}
	b1.Cuts = append(b1.Cuts, Cut{Length: 48})
	if cl.CutCount() != 1 {
		t.Errorf("expected 1 cut, got %d", cl.CutCount())
	}
	if cl.StockLength() != 144 {
		t.Errorf("expected stock length 144, got %f", cl.StockLength())
	}
	if math.Abs(cl.Efficiency()-(48.0/144.0*100)) > 1e-9 {
		t.Errorf("unexpected efficiency %f", cl.Efficiency())
	}
}

func TestOversizeCutErrorMessage(t *testing.T) {
	var err error = &OversizeCutError{Label: "crown", Length: 100.125, BoardLength: 96}
	if !strings.Contains(err.Error(), "100.125 > 96") {
		t.Errorf("expected lengths in message, got %s", err.Error())
	}
	var oe *OversizeCutError
	if !errors.As(err, &oe) {
		t.Fatal("errors.As should match OversizeCutError")
	}
}

func TestStockSettingsDefaultsAndValidate(t *testing.T) {
	s := NewStockSettings(96)
	if s.Kerf != DefaultKerf || s.Join {
		t.Errorf("unexpected defaults: %+v", s)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("expected valid settings, got %v", err)
	}
	if err := (StockSettings{BoardLength: 0}).Validate(); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("expected ErrInvalidLength for zero board, got %v", err)
	}
	if err := (StockSettings{BoardLength: 10, Kerf: -1}).Validate(); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("expected ErrInvalidLength for negative kerf, got %v", err)
	}
}
