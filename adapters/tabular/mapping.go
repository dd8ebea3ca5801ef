package tabular

import (
	"giftedlens/domain/pipeline"
)

// ColumnMapping maps canonical attribute names to the column headers used
// by the uploaded file. Defaults are identity; the UI lets users remap each
// column before analysis.
type ColumnMapping map[string]string

// DefaultColumnMapping returns the identity mapping over the full schema
func DefaultColumnMapping() ColumnMapping {
	m := make(ColumnMapping)
	for _, c := range pipeline.RequiredColumns() {
		m[c] = c
	}
	for _, c := range pipeline.OptionalColumns() {
		m[c] = c
	}
	return m
}

// Source returns the mapped header for a canonical column, defaulting to
// the canonical name itself when no mapping entry exists
func (m ColumnMapping) Source(canonical string) string {
	if src, ok := m[canonical]; ok && src != "" {
		return src
	}
	return canonical
}

// MissingRequired reports which required canonical columns have no mapped
// header in the file. The analytical core must not be invoked while this
// is non-empty; the caller surfaces the missing columns instead.
func MissingRequired(headers []string, m ColumnMapping) []string {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}

	var missing []string
	for _, c := range pipeline.RequiredColumns() {
		if !present[m.Source(c)] {
			missing = append(missing, c)
		}
	}
	return missing
}
