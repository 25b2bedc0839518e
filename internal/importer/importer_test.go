package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/trimcut/internal/model"
	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Name,Kind,Width,Height\nKitchen,window,36,38\nHall,door,31,78.5\n")
	got := DetectCSVDelimiter(data)
	if got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Name;Kind;Width;Height\nKitchen;window;36;38\nHall;door;31;78.5\n")
	got := DetectCSVDelimiter(data)
	if got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Name\tKind\tWidth\tHeight\nKitchen\twindow\t36\t38\n")
	got := DetectCSVDelimiter(data)
	if got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Name|Kind|Width|Height\nKitchen|window|36|38\nHall|door|31|78.5\n")
	got := DetectCSVDelimiter(data)
	if got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Name", "Kind", "Width", "Height", "Divider", "Crown", "Jambs"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{Name: 0, Kind: 1, Width: 2, Height: 3, Divider: 4, Crown: 5, Jambs: 6, Quantity: -1}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_AlternativeNames(t *testing.T) {
	row := []string{"ROOM", "Type", "W", "H", "Mullion", "Qty"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Name != 0 || mapping.Kind != 1 || mapping.Width != 2 || mapping.Height != 3 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
	if mapping.Divider != 4 {
		t.Errorf("expected Divider at 4, got %d", mapping.Divider)
	}
	if mapping.Quantity != 5 {
		t.Errorf("expected Quantity at 5, got %d", mapping.Quantity)
	}
	if mapping.Crown != -1 || mapping.Jambs != -1 {
		t.Errorf("expected crown and jambs unmapped, got %+v", mapping)
	}
}

func TestDetectColumns_ReorderedColumns(t *testing.T) {
	row := []string{"Height", "Width", "Name"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Height != 0 || mapping.Width != 1 || mapping.Name != 2 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	row := []string{"Kitchen", "window", "36", "38"}
	mapping, isHeader := DetectColumns(row)

	if isHeader {
		t.Error("expected no header")
	}
	if mapping != positionalMapping {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── ImportCSVFromReader Tests ─────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	input := "Name,Kind,Width,Height,Divider,Crown,Jambs\n" +
		"Kitchen,window,36,38,,yes,no\n" +
		"Living,double window,60,48,4,no,yes\n" +
		"Hall,door,31,78.5,,,\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Openings) != 3 {
		t.Fatalf("expected 3 openings, got %d", len(result.Openings))
	}

	kitchen := result.Openings[0]
	if kitchen.Name != "Kitchen" || kitchen.Kind != model.KindWindow {
		t.Errorf("unexpected first opening %+v", kitchen)
	}
	if !kitchen.UseCrown || kitchen.HasJambs {
		t.Errorf("expected crown and no jambs, got %+v", kitchen)
	}

	living := result.Openings[1]
	if living.Kind != model.KindDoubleWindow {
		t.Errorf("expected double window, got %s", living.Kind)
	}
	if living.Divider != 4 {
		t.Errorf("expected divider 4, got %g", living.Divider)
	}
	if living.UseCrown || !living.HasJambs {
		t.Errorf("expected no crown and jambs, got %+v", living)
	}

	hall := result.Openings[2]
	if hall.Kind != model.KindDoor || hall.Height != 78.5 {
		t.Errorf("unexpected door %+v", hall)
	}
	if !hall.UseCrown {
		t.Error("expected crown to default to yes")
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	input := "Kitchen,window,36,38\nHall,door,31,78.5\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Openings) != 2 {
		t.Fatalf("expected 2 openings, got %d", len(result.Openings))
	}
	if result.Openings[1].Width != 31 {
		t.Errorf("expected width 31, got %g", result.Openings[1].Width)
	}
}

func TestImportCSVFromReader_UnrecognizedHeaderSkipped(t *testing.T) {
	input := "Where,What,Across,Tall\nKitchen,window,36,38\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Openings) != 1 {
		t.Fatalf("expected 1 opening, got %d (errors: %v)", len(result.Openings), result.Errors)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a header warning")
	}
}

func TestImportCSVFromReader_SemicolonDelimiter(t *testing.T) {
	input := "Name;Kind;Width;Height\nKitchen;w;36;38\n"
	result := ImportCSVFromReader(strings.NewReader(input), ';')

	if len(result.Openings) != 1 {
		t.Fatalf("expected 1 opening, got %d (errors: %v)", len(result.Openings), result.Errors)
	}
	if result.Openings[0].Kind != model.KindWindow {
		t.Errorf("expected window, got %s", result.Openings[0].Kind)
	}
}

func TestImportCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

func TestImportCSVFromReader_InvalidWidth(t *testing.T) {
	input := "Name,Kind,Width,Height\nKitchen,window,abc,38\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Invalid width") {
		t.Errorf("unexpected error %q", result.Errors[0])
	}
}

func TestImportCSVFromReader_UnknownKind(t *testing.T) {
	input := "Name,Kind,Width,Height\nAttic,skylight,24,24\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Openings) != 0 {
		t.Errorf("expected no openings, got %d", len(result.Openings))
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "skylight") {
		t.Errorf("unexpected errors %v", result.Errors)
	}
}

func TestImportCSVFromReader_MissingKindDefaultsToWindow(t *testing.T) {
	input := "Name,Width,Height\nKitchen,36,38\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Openings) != 1 {
		t.Fatalf("expected 1 opening, got %d (errors: %v)", len(result.Openings), result.Errors)
	}
	if result.Openings[0].Kind != model.KindWindow {
		t.Errorf("expected window, got %s", result.Openings[0].Kind)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "defaulting to window") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected default kind warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_NegativeValues(t *testing.T) {
	input := "Name,Kind,Width,Height\nKitchen,window,-36,38\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for negative width")
	}
}

func TestImportCSVFromReader_DividerTooWide(t *testing.T) {
	input := "Name,Kind,Width,Height,Divider\nLiving,dw,40,48,40\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Openings) != 0 {
		t.Errorf("expected no openings, got %d", len(result.Openings))
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_DividerIgnoredForDoor(t *testing.T) {
	input := "Name,Kind,Width,Height,Divider\nHall,door,31,78.5,4\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Openings) != 1 {
		t.Fatalf("expected 1 opening, got %d (errors: %v)", len(result.Openings), result.Errors)
	}
	if result.Openings[0].Divider != 0 {
		t.Errorf("expected divider to be ignored, got %g", result.Openings[0].Divider)
	}
}

func TestImportCSVFromReader_Quantity(t *testing.T) {
	input := "Name,Kind,Width,Height,Qty\nBedroom,window,30,48,3\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Openings) != 3 {
		t.Fatalf("expected 3 openings, got %d (errors: %v)", len(result.Openings), result.Errors)
	}
	for i, o := range result.Openings {
		want := "Bedroom #" + string(rune('1'+i))
		if o.Name != want {
			t.Errorf("opening %d: expected %q, got %q", i, want, o.Name)
		}
	}
}

func TestImportCSVFromReader_InvalidQuantity(t *testing.T) {
	input := "Name,Kind,Width,Height,Qty\nBedroom,window,30,48,0\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for zero quantity")
	}
}

func TestImportCSVFromReader_MixedValidAndInvalid(t *testing.T) {
	input := "Name,Kind,Width,Height\nKitchen,window,36,38\nBad,window,x,38\nHall,door,31,78.5\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Openings) != 2 {
		t.Errorf("expected 2 valid openings, got %d", len(result.Openings))
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %d", len(result.Errors))
	}
	if !strings.Contains(result.Errors[0], "Line 3") {
		t.Errorf("expected error on line 3, got %q", result.Errors[0])
	}
}

func TestImportCSVFromReader_EmptyRowsAndNames(t *testing.T) {
	input := "Name,Kind,Width,Height\n,window,36,38\n,,,\n,door,31,78.5\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Openings) != 2 {
		t.Fatalf("expected 2 openings, got %d (errors: %v)", len(result.Openings), result.Errors)
	}
	if result.Openings[0].Name != "Opening 1" || result.Openings[1].Name != "Opening 2" {
		t.Errorf("unexpected generated names %q, %q", result.Openings[0].Name, result.Openings[1].Name)
	}
}

func TestImportCSVFromReader_BooleanWarnings(t *testing.T) {
	input := "Name,Kind,Width,Height,Crown,Jambs\nKitchen,window,36,38,maybe,yes\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Openings) != 1 {
		t.Fatalf("expected 1 opening, got %d", len(result.Openings))
	}
	if !result.Openings[0].UseCrown {
		t.Error("expected crown to stay enabled")
	}
	if !result.Openings[0].HasJambs {
		t.Error("expected jambs to be set")
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "maybe") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected warning for unknown crown value, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_MissingRequiredColumnInHeader(t *testing.T) {
	input := "Name,Kind,Width\nKitchen,window,36\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Height") {
		t.Errorf("expected missing Height, got %q", result.Errors[0])
	}
}

func TestImportCSVFromReader_OnlyHeaders(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Name,Kind,Width,Height\n"), ',')

	if len(result.Openings) != 0 {
		t.Errorf("expected no openings, got %d", len(result.Openings))
	}
	if len(result.Errors) != 0 {
		t.Errorf("expected no errors, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_WhitespaceInValues(t *testing.T) {
	input := "Name , Kind , Width , Height\n  Kitchen , Door ,  31.25 , 80 \n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Openings) != 1 {
		t.Fatalf("expected 1 opening, got %d (errors: %v)", len(result.Openings), result.Errors)
	}
	o := result.Openings[0]
	if o.Name != "Kitchen" || o.Kind != model.KindDoor || o.Width != 31.25 {
		t.Errorf("unexpected opening %+v", o)
	}
}

// ─── ImportCSV / ImportFile Tests ──────────────────────────

func TestImportCSV_SemicolonFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "openings.csv")
	content := "Name;Kind;Width;Height\nKitchen;window;36;38\nHall;door;31;78.5\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportFile(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Openings) != 2 {
		t.Fatalf("expected 2 openings, got %d", len(result.Openings))
	}
	if !strings.Contains(strings.Join(result.Warnings, "|"), "semicolon") {
		t.Errorf("expected semicolon warning, got %v", result.Warnings)
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV("/nonexistent/openings.csv")

	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path)

	if len(result.Errors) == 0 || result.Errors[0] != "File is empty" {
		t.Errorf("expected empty file error, got %v", result.Errors)
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "openings.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Name", "Kind", "Width", "Height", "Divider"},
		{"Kitchen", "window", 36, 38, ""},
		{"Living", "double_window", 60, 48, 4},
	})

	result := ImportFile(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Openings) != 2 {
		t.Fatalf("expected 2 openings, got %d", len(result.Openings))
	}
	if result.Openings[1].Kind != model.KindDoubleWindow || result.Openings[1].Divider != 4 {
		t.Errorf("unexpected second opening %+v", result.Openings[1])
	}
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Kitchen", "window", 36, 38},
		{"Hall", "door", 31, 78.5},
	})

	result := ImportExcel(path)

	if len(result.Openings) != 2 {
		t.Fatalf("expected 2 openings, got %d (errors: %v)", len(result.Openings), result.Errors)
	}
	if result.Openings[1].Height != 78.5 {
		t.Errorf("expected height 78.5, got %g", result.Openings[1].Height)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel("/nonexistent/openings.xlsx")

	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportExcel_InvalidData(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Name", "Kind", "Width", "Height"},
		{"Kitchen", "window", "wide", 38},
	})

	result := ImportExcel(path)

	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Row 2") {
		t.Errorf("expected error on row 2, got %v", result.Errors)
	}
}

// ─── parseBool Tests ───────────────────────────────────────

func TestParseBool(t *testing.T) {
	tests := []struct {
		input  string
		want   bool
		wantOK bool
	}{
		{"yes", true, true},
		{"Y", true, true},
		{"TRUE", true, true},
		{"1", true, true},
		{"x", true, true},
		{"no", false, true},
		{"0", false, true},
		{"-", false, true},
		{"maybe", false, false},
		{"", false, false},
	}

	for _, tt := range tests {
		got, ok := parseBool(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("parseBool(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}
