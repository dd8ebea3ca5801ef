package stats

import (
	"testing"

	"giftedlens/domain/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowsFor(gender string, n int, selected int) pipeline.Dataset {
	ds := make(pipeline.Dataset, 0, n)
	for i := 0; i < n; i++ {
		q := 0.0
		if i < selected {
			q = 1.0
		}
		ds = append(ds, pipeline.Record{Gender: gender, Qualified: pipeline.NewCell(q)})
	}
	return ds
}

func TestChiSquareDisparity_StrongDisparityIsSignificant(t *testing.T) {
	ds := append(rowsFor("A", 100, 60), rowsFor("B", 100, 10)...)

	res := ChiSquareDisparity(ds, pipeline.ColGender, pipeline.StageQualified)

	require.True(t, res.Applicable)
	assert.Equal(t, 1, res.DF)
	assert.Equal(t, 200, res.SampleSize)
	assert.Less(t, res.PValue, 0.001)
	assert.Greater(t, res.CramersV, 0.3)
}

func TestChiSquareDisparity_NoDisparityIsNotSignificant(t *testing.T) {
	ds := append(rowsFor("A", 100, 30), rowsFor("B", 100, 30)...)

	res := ChiSquareDisparity(ds, pipeline.ColGender, pipeline.StageQualified)

	require.True(t, res.Applicable)
	assert.InDelta(t, 0.0, res.Statistic, 1e-9)
	assert.Greater(t, res.PValue, 0.9)
}

func TestChiSquareDisparity_SingleGroupNotApplicable(t *testing.T) {
	res := ChiSquareDisparity(rowsFor("A", 50, 10), pipeline.ColGender, pipeline.StageQualified)

	assert.False(t, res.Applicable)
	assert.Equal(t, "needs at least two groups", res.Reason)
}

func TestChiSquareDisparity_NoVariationNotApplicable(t *testing.T) {
	ds := append(rowsFor("A", 10, 0), rowsFor("B", 10, 0)...)

	res := ChiSquareDisparity(ds, pipeline.ColGender, pipeline.StageQualified)

	assert.False(t, res.Applicable)
	assert.Equal(t, "outcome has no variation", res.Reason)
}
