package tabular

import (
	"strings"
	"testing"

	"giftedlens/domain/core"
	"giftedlens/domain/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `school_year,grade,gender,race_ethnicity,ell,iep,frl,referred,tested,qualified,placed
2023-24,3,F,Group A,0,0,1,1,1,1,1
2023-24,3,M,Group B,1,,0,1,0,0,0
2023-24,4,F,Group A,0,0,0,yes,1,0,0
`

func TestReadCSV_ParsesRecords(t *testing.T) {
	r := NewReader(nil)
	ds, err := r.ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, ds, 3)

	first := ds[0]
	assert.Equal(t, "2023-24", first.SchoolYear)
	assert.Equal(t, "F", first.Gender)
	assert.Equal(t, "Group A", first.RaceEthnicity)
	assert.Equal(t, pipeline.NewCell(1), first.Referred)
	assert.Equal(t, pipeline.NewCell(1), first.FRL)

	// Blank flag becomes a missing cell
	assert.False(t, ds[1].IEP.Valid)

	// Non-numeric outcome coerces to missing, not an error
	assert.False(t, ds[2].Referred.Valid)
}

func TestReadCSV_MissingRequiredColumns(t *testing.T) {
	csv := "school_year,grade,gender\n2023-24,3,F\n"

	r := NewReader(nil)
	_, err := r.ReadCSV(strings.NewReader(csv))

	require.Error(t, err)
	assert.True(t, core.IsMissingColumnsError(err))
	assert.Contains(t, err.Error(), "race_ethnicity")
	assert.Contains(t, err.Error(), "placed")
}

func TestReadCSV_ColumnMappingRemapsHeaders(t *testing.T) {
	csv := `yr,gr,sex,race,referred,tested,qualified,placed
2023-24,3,F,Group A,1,1,0,0
`
	mapping := DefaultColumnMapping()
	mapping[pipeline.ColSchoolYear] = "yr"
	mapping[pipeline.ColGrade] = "gr"
	mapping[pipeline.ColGender] = "sex"
	mapping[pipeline.ColRaceEthnicity] = "race"

	r := NewReader(mapping)
	ds, err := r.ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, "F", ds[0].Gender)
	assert.Equal(t, "Group A", ds[0].RaceEthnicity)
}

func TestReadCSV_SkipsBlankRows(t *testing.T) {
	csv := sampleCSV + "\n,,,,,,,,,,\n"

	r := NewReader(nil)
	ds, err := r.ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, ds, 3)
}

func TestRead_RejectsUnknownExtension(t *testing.T) {
	r := NewReader(nil)
	_, err := r.Read(strings.NewReader(""), "records.parquet")
	require.ErrorIs(t, err, core.ErrUnsupportedFile)
}

func TestCoerceNumeric(t *testing.T) {
	assert.Equal(t, pipeline.NewCell(12), CoerceNumeric(" 12 "))
	assert.Equal(t, pipeline.NewCell(1200), CoerceNumeric("1,200"))
	assert.Equal(t, pipeline.NewCell(0.5), CoerceNumeric("0.5"))
	assert.False(t, CoerceNumeric("").Valid)
	assert.False(t, CoerceNumeric("yes").Valid)
}

func TestMissingRequired_TolerantOfOptionalColumns(t *testing.T) {
	headers := []string{
		"school_year", "grade", "gender", "race_ethnicity",
		"referred", "tested", "qualified", "placed",
	}
	missing := MissingRequired(headers, DefaultColumnMapping())
	assert.Empty(t, missing)
}
