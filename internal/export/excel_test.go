package export

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/trimcut/internal/engine"
	"github.com/xuri/excelize/v2"
)

func TestExportExcel_Sheets(t *testing.T) {
	result := buildTestResult(t)
	path := filepath.Join(t.TempDir(), "plan.xlsx")

	if err := ExportExcel(path, result); err != nil {
		t.Fatalf("ExportExcel returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2+len(result.Lists) {
		t.Fatalf("expected %d sheets, got %v", 2+len(result.Lists), sheets)
	}
	if sheets[0] != "Summary" || sheets[1] != "Totals" {
		t.Errorf("unexpected leading sheets %v", sheets[:2])
	}

	rows, err := f.GetRows("Summary")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1+len(result.Lists) {
		t.Errorf("expected %d summary rows, got %d", 1+len(result.Lists), len(rows))
	}
	if rows[1][0] != result.Lists[0].Name {
		t.Errorf("expected first list %q, got %q", result.Lists[0].Name, rows[1][0])
	}

	cl := result.Lists[0]
	rows, err = f.GetRows(sheets[2])
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1+cl.CutCount() {
		t.Errorf("expected %d cut rows, got %d", 1+cl.CutCount(), len(rows))
	}
}

func TestExportExcel_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.xlsx")
	if err := ExportExcel(path, &engine.PlanResult{}); err == nil {
		t.Error("expected error for empty result")
	}
}

func TestSheetName(t *testing.T) {
	used := map[string]bool{"Summary": true}

	if got := sheetName("Head/Side [A]", used); got != "Head-Side -A-" {
		t.Errorf("unexpected sanitized name %q", got)
	}
	if got := sheetName("Summary", used); got != "Summary (2)" {
		t.Errorf("expected de-duplicated name, got %q", got)
	}

	long := strings.Repeat("x", 40)
	first := sheetName(long, used)
	second := sheetName(long, used)
	if len(first) != maxSheetName || len(second) != maxSheetName {
		t.Errorf("expected names truncated to %d, got %d and %d", maxSheetName, len(first), len(second))
	}
	if first == second {
		t.Error("expected unique names")
	}
	if got := sheetName("", used); got != "Cut List" {
		t.Errorf("expected default name, got %q", got)
	}
}
