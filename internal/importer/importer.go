// Package importer reads opening schedules from CSV and Excel files.
// It detects the delimiter, maps columns by header name and falls back to a
// positional layout when no header row is present.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/trimcut/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Openings []model.Opening
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name     int
	Kind     int
	Width    int
	Height   int
	Divider  int
	Crown    int
	Jambs    int
	Quantity int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name":     {"name", "label", "room", "location", "opening", "description", "desc"},
	"kind":     {"kind", "type", "opening type", "style"},
	"width":    {"width", "w", "rough width"},
	"height":   {"height", "h", "rough height"},
	"divider":  {"divider", "mullion", "mullin", "mull"},
	"crown":    {"crown", "use crown", "header crown"},
	"jambs":    {"jambs", "has jambs", "jambs installed", "existing jambs"},
	"quantity": {"quantity", "qty", "count", "pcs"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// positionalMapping is the column order assumed for files without a header:
// Name, Kind, Width, Height, Divider, Crown, Jambs.
var positionalMapping = ColumnMapping{
	Name:     0,
	Kind:     1,
	Width:    2,
	Height:   3,
	Divider:  4,
	Crown:    5,
	Jambs:    6,
	Quantity: -1,
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Matching is case-insensitive. It returns the positional mapping and false
// when no known header is present.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Name:     -1,
		Kind:     -1,
		Width:    -1,
		Height:   -1,
		Divider:  -1,
		Crown:    -1,
		Jambs:    -1,
		Quantity: -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				var slot *int
				switch role {
				case "name":
					slot = &mapping.Name
				case "kind":
					slot = &mapping.Kind
				case "width":
					slot = &mapping.Width
				case "height":
					slot = &mapping.Height
				case "divider":
					slot = &mapping.Divider
				case "crown":
					slot = &mapping.Crown
				case "jambs":
					slot = &mapping.Jambs
				case "quantity":
					slot = &mapping.Quantity
				}
				if *slot == -1 {
					*slot = i
				}
			}
		}
	}

	if !isHeader {
		return positionalMapping, false
	}
	return mapping, true
}

// parseBool accepts the usual spreadsheet spellings of yes and no.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "t", "1", "x":
		return true, true
	case "no", "n", "false", "f", "0", "-":
		return false, true
	default:
		return false, false
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseDimension(row []string, idx int, field, rowLabel string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, field)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, field, s)
	}
	return v, ""
}

// parseRow extracts openings from a row using the given column mapping. A
// quantity above one yields numbered copies. Returns the openings, any error
// message, and any warnings.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, count int) ([]model.Opening, string, []string) {
	var warnings []string

	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Opening %d", count+1)
	}

	kind := model.KindWindow
	if kindStr := getCell(row, mapping.Kind); kindStr != "" {
		k, err := model.ParseOpeningKind(kindStr)
		if err != nil {
			return nil, fmt.Sprintf("%s: Unknown opening kind '%s'", rowLabel, kindStr), nil
		}
		kind = k
	} else {
		warnings = append(warnings, fmt.Sprintf("%s: No kind given, defaulting to window", rowLabel))
	}

	width, errMsg := parseDimension(row, mapping.Width, "width", rowLabel)
	if errMsg != "" {
		return nil, errMsg, nil
	}
	height, errMsg := parseDimension(row, mapping.Height, "height", rowLabel)
	if errMsg != "" {
		return nil, errMsg, nil
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Sprintf("%s: Width and height must be positive", rowLabel), nil
	}

	o := model.NewOpening(name, kind, width, height)

	if s := getCell(row, mapping.Divider); s != "" {
		d, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Sprintf("%s: Invalid divider '%s'", rowLabel, s), nil
		}
		if kind != model.KindDoubleWindow && d != 0 {
			warnings = append(warnings, fmt.Sprintf("%s: Divider ignored for %s", rowLabel, kind))
		} else {
			o.Divider = d
		}
	}

	if s := getCell(row, mapping.Crown); s != "" {
		v, ok := parseBool(s)
		if ok {
			o.UseCrown = v
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown crown value '%s', defaulting to yes", rowLabel, s))
		}
	}
	if s := getCell(row, mapping.Jambs); s != "" {
		v, ok := parseBool(s)
		if ok {
			o.HasJambs = v
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown jambs value '%s', defaulting to no", rowLabel, s))
		}
	}

	if err := o.Validate(); err != nil {
		return nil, fmt.Sprintf("%s: %v", rowLabel, err), nil
	}

	qty := 1
	if s := getCell(row, mapping.Quantity); s != "" {
		q, err := strconv.Atoi(s)
		if err != nil || q <= 0 {
			return nil, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, s), nil
		}
		qty = q
	}
	if qty == 1 {
		return []model.Opening{o}, "", warnings
	}

	openings := make([]model.Opening, qty)
	for i := range openings {
		openings[i] = o
		openings[i].Name = fmt.Sprintf("%s #%d", name, i+1)
	}
	return openings, "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports openings from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports openings from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports openings from the first sheet of an .xlsx workbook.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// ImportFile dispatches on the file extension: .xlsx and .xlsm go to
// ImportExcel, everything else is read as CSV.
func ImportFile(path string) ImportResult {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm") {
		return ImportExcel(path)
	}
	return ImportCSV(path)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) > mapping.Width {
		// An unrecognized header still has a non-numeric width cell.
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][mapping.Width]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		openings, errMsg, warnings := parseRow(row, mapping, rowLabel, len(result.Openings))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Openings = append(result.Openings, openings...)
	}

	return result
}
