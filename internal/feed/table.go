package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// record is one source row and the line (CSV) or sheet row (XLSX) it came
// from.
type record struct {
	line  int
	cells []string
}

// table is a header row plus data rows read from a CSV or XLSX source.
type table struct {
	header map[string]int
	rows   []record
}

// normalize lowercases a column name and strips spaces, underscores and
// hyphens so "Bye Week" and "bye_week" match "ByeWeek".
func normalize(col string) string {
	col = strings.ToLower(strings.TrimSpace(col))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(col)
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func newTable(records []record) (*table, error) {
	var body []record
	for _, r := range records {
		if blank(r.cells) {
			continue
		}
		body = append(body, r)
	}
	if len(body) == 0 {
		return nil, errors.New("file is empty")
	}

	t := &table{header: make(map[string]int, len(body[0].cells)), rows: body[1:]}
	for i, col := range body[0].cells {
		t.header[normalize(col)] = i
	}
	return t, nil
}

func (t *table) require(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if _, ok := t.header[normalize(c)]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// cell returns the trimmed value of col in row, or "" when the column or
// cell is absent.
func (t *table) cell(row []string, col string) string {
	i, ok := t.header[normalize(col)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t *table) integer(row []string, col string) (int, error) {
	v := t.cell(row, col)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil {
			return 0, fmt.Errorf("column %s: %q is not a number", col, v)
		}
		n = int(f)
	}
	return n, nil
}

func (t *table) decimal(row []string, col string) (float64, error) {
	v := t.cell(row, col)
	if v == "" || strings.EqualFold(v, "nan") {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %q is not a number", col, v)
	}
	return f, nil
}

func readCSV(r io.Reader) ([]record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records []record
	for {
		cells, err := reader.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)
		records = append(records, record{line: line, cells: cells})
	}
}

func readXLSX(r io.Reader) ([]record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("XLSX file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	records := make([]record, len(rows))
	for i, cells := range rows {
		records[i] = record{line: i + 1, cells: cells}
	}
	return records, nil
}

// readFile picks the reader by file extension.
func readFile(path string) ([]record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", "":
		return readCSV(f)
	case ".xlsx":
		return readXLSX(f)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}
