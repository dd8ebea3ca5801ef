// Package tabular reads uploaded CSV and XLSX files into pipeline datasets.
// It owns the caller-side responsibilities the analytical core refuses to
// take on: header remapping, required-column checks and numeric coercion.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"giftedlens/domain/core"
	"giftedlens/domain/pipeline"

	"github.com/xuri/excelize/v2"
)

// Reader converts raw tabular files into pipeline datasets using a column
// mapping supplied per upload
type Reader struct {
	mapping ColumnMapping
}

// NewReader creates a reader with the given column mapping
func NewReader(mapping ColumnMapping) *Reader {
	if mapping == nil {
		mapping = DefaultColumnMapping()
	}
	return &Reader{mapping: mapping}
}

// Read dispatches on the file extension: ".xlsx" goes through excelize,
// everything else is treated as CSV
func (r *Reader) Read(src io.Reader, filename string) (pipeline.Dataset, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return r.ReadXLSX(src)
	case ".csv", "":
		return r.ReadCSV(src)
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFile, filename)
	}
}

// ReadCSV reads a comma-separated file with a header row
func (r *Reader) ReadCSV(src io.Reader) (pipeline.Dataset, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return r.fromRows(rows)
}

// ReadXLSX reads the first sheet of an Excel workbook
func (r *Reader) ReadXLSX(src io.Reader) (pipeline.Dataset, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return r.fromRows(rows)
}

// fromRows builds the dataset from a header row plus data rows
func (r *Reader) fromRows(rows [][]string) (pipeline.Dataset, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("file has no header row")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	if missing := MissingRequired(headers, r.mapping); len(missing) > 0 {
		return nil, core.NewMissingColumnsError(missing)
	}

	index := make(map[string]int)
	for i, h := range headers {
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	ds := make(pipeline.Dataset, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		ds = append(ds, r.recordFrom(row, index))
	}
	return ds, nil
}

func (r *Reader) recordFrom(row []string, index map[string]int) pipeline.Record {
	text := func(canonical string) string {
		return strings.TrimSpace(r.cell(row, index, canonical))
	}
	numeric := func(canonical string) pipeline.Cell {
		return CoerceNumeric(r.cell(row, index, canonical))
	}

	return pipeline.Record{
		SchoolYear:    text(pipeline.ColSchoolYear),
		Grade:         text(pipeline.ColGrade),
		Gender:        text(pipeline.ColGender),
		RaceEthnicity: text(pipeline.ColRaceEthnicity),
		ELL:           numeric(pipeline.ColELL),
		IEP:           numeric(pipeline.ColIEP),
		FRL:           numeric(pipeline.ColFRL),
		Referred:      numeric(string(pipeline.StageReferred)),
		Tested:        numeric(string(pipeline.StageTested)),
		Qualified:     numeric(string(pipeline.StageQualified)),
		Placed:        numeric(string(pipeline.StagePlaced)),
	}
}

// cell looks up a canonical column's value in the row, tolerating absent
// optional columns and ragged rows
func (r *Reader) cell(row []string, index map[string]int, canonical string) string {
	i, ok := index[r.mapping.Source(canonical)]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
