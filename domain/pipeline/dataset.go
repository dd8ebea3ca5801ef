package pipeline

import (
	"regexp"
	"strconv"
)

// Dataset is an ordered collection of records sharing the pipeline schema.
// It is read-only input to every analytical function; nothing mutates it
// and nothing is cached between calls.
type Dataset []Record

// Len returns the number of rows
func (ds Dataset) Len() int {
	return len(ds)
}

var yearPattern = regexp.MustCompile(`(\d{4})`)

// FilterLatestYear keeps only the rows belonging to the most recent school
// year, determined by the first four-digit run inside school_year (so both
// "2023-24" and "SY2023" resolve to 2023). Rows with no parseable year are
// dropped from the filtered result. When no row yields a year at all the
// dataset is returned unchanged.
func (ds Dataset) FilterLatestYear() Dataset {
	maxYear := 0
	found := false
	for _, rec := range ds {
		if y, ok := yearOf(rec); ok {
			found = true
			if y > maxYear {
				maxYear = y
			}
		}
	}
	if !found {
		return ds
	}

	out := make(Dataset, 0, len(ds))
	for _, rec := range ds {
		if y, ok := yearOf(rec); ok && y == maxYear {
			out = append(out, rec)
		}
	}
	return out
}

// FilterGroups keeps only the rows whose label for attr appears in keep.
// Used by callers applying a min-group-size post-filter: the disparity
// table is then recomputed over the restricted dataset, so the overall
// baseline reflects only the surviving groups.
func (ds Dataset) FilterGroups(attr string, keep map[string]bool) Dataset {
	out := make(Dataset, 0, len(ds))
	for _, rec := range ds {
		if keep[rec.GroupValue(attr)] {
			out = append(out, rec)
		}
	}
	return out
}

func yearOf(rec Record) (int, bool) {
	m := yearPattern.FindString(rec.SchoolYear)
	if m == "" {
		return 0, false
	}
	y, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return y, true
}
