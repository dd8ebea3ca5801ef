package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterLatestYear_KeepsMostRecent(t *testing.T) {
	ds := Dataset{
		{SchoolYear: "2022-23", Gender: "F"},
		{SchoolYear: "2023-24", Gender: "M"},
		{SchoolYear: "2023-24", Gender: "F"},
		{SchoolYear: "spring", Gender: "X"}, // no parseable year
	}
	out := ds.FilterLatestYear()

	require.Len(t, out, 2)
	for _, rec := range out {
		assert.Equal(t, "2023-24", rec.SchoolYear)
	}
}

func TestFilterLatestYear_NoParseableYearsLeavesDatasetUnchanged(t *testing.T) {
	ds := Dataset{
		{SchoolYear: "fall", Gender: "F"},
		{SchoolYear: "", Gender: "M"},
	}
	out := ds.FilterLatestYear()
	assert.Equal(t, ds, out)
}

func TestFilterGroups(t *testing.T) {
	ds := Dataset{
		{Gender: "F"},
		{Gender: "M"},
		{Gender: "F"},
	}
	out := ds.FilterGroups(ColGender, map[string]bool{"F": true})
	require.Len(t, out, 2)
}

func TestGroupValue_FlagAttributes(t *testing.T) {
	rec := Record{ELL: NewCell(1), IEP: MissingCell(), FRL: NewCell(0)}

	assert.Equal(t, "1", rec.GroupValue(ColELL))
	assert.Equal(t, "", rec.GroupValue(ColIEP))
	assert.Equal(t, "0", rec.GroupValue(ColFRL))
}

func TestParseStage(t *testing.T) {
	s, ok := ParseStage(" Qualified ")
	require.True(t, ok)
	assert.Equal(t, StageQualified, s)

	_, ok = ParseStage("graduated")
	assert.False(t, ok)
}

func TestRequiredColumns_CoverSchemaAndStages(t *testing.T) {
	cols := RequiredColumns()
	assert.Len(t, cols, 8)
	assert.Contains(t, cols, ColRaceEthnicity)
	assert.Contains(t, cols, string(StagePlaced))
}
