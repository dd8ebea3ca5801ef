// Package stats runs significance tests over grouped pipeline outcomes.
// The tests sit outside the analytical core: rate and disparity values are
// never gated on significance, the results are advisory context for the
// dashboard.
package stats

import (
	"math"

	"giftedlens/domain/pipeline"

	"gonum.org/v1/gonum/stat/distuv"
)

// ChiSquareResult holds a chi-square test of independence between a
// grouping attribute and a pipeline outcome
type ChiSquareResult struct {
	Applicable bool    `json:"applicable"`
	Reason     string  `json:"reason,omitempty"`
	Statistic  float64 `json:"statistic"`
	DF         int     `json:"df"`
	PValue     float64 `json:"p_value"`
	CramersV   float64 `json:"cramers_v"`
	SampleSize int     `json:"sample_size"`
	Groups     int     `json:"groups"`
}

// notApplicable builds a degenerate result; degenerate inputs are a normal
// dashboard condition, not an error
func notApplicable(reason string) ChiSquareResult {
	return ChiSquareResult{Applicable: false, Reason: reason}
}

// ChiSquareDisparity tests whether the outcome distribution is independent
// of the grouping attribute, over a groups x {selected, not selected}
// contingency table. Rows with missing outcome cells count as not selected,
// matching how selection rates treat them.
func ChiSquareDisparity(ds pipeline.Dataset, groupAttr string, outcome pipeline.Stage) ChiSquareResult {
	type bucket struct {
		selected float64
		total    float64
	}

	order := make([]string, 0)
	buckets := make(map[string]*bucket)
	for _, rec := range ds {
		g := rec.GroupValue(groupAttr)
		b, seen := buckets[g]
		if !seen {
			b = &bucket{}
			buckets[g] = b
			order = append(order, g)
		}
		b.total++
		if c := rec.Outcome(outcome); c.Valid {
			b.selected += c.Value
		}
	}

	if len(order) < 2 {
		return notApplicable("needs at least two groups")
	}

	var totalSelected, totalN float64
	for _, g := range order {
		b := buckets[g]
		// Pre-aggregated rows can push counts past the row total; clamp so
		// the complement column stays non-negative
		if b.selected > b.total {
			b.selected = b.total
		}
		if b.selected < 0 {
			b.selected = 0
		}
		totalSelected += b.selected
		totalN += b.total
	}

	if totalN == 0 || totalSelected == 0 || totalSelected == totalN {
		return notApplicable("outcome has no variation")
	}

	pSelected := totalSelected / totalN
	statistic := 0.0
	for _, g := range order {
		b := buckets[g]
		expSel := b.total * pSelected
		expNot := b.total * (1 - pSelected)
		if expSel == 0 || expNot == 0 {
			return notApplicable("zero expected count")
		}
		dSel := b.selected - expSel
		dNot := (b.total - b.selected) - expNot
		statistic += dSel * dSel / expSel
		statistic += dNot * dNot / expNot
	}

	df := len(order) - 1
	chi2 := distuv.ChiSquared{K: float64(df)}
	pValue := chi2.Survival(statistic)

	// Cramer's V for a 2-column table reduces to sqrt(chi2 / N)
	cramersV := math.Sqrt(statistic / totalN)

	return ChiSquareResult{
		Applicable: true,
		Statistic:  statistic,
		DF:         df,
		PValue:     pValue,
		CramersV:   cramersV,
		SampleSize: int(totalN),
		Groups:     len(order),
	}
}
