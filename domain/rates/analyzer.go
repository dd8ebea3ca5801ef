// Package rates computes per-group selection rates and disparity metrics
// over a gifted-identification pipeline dataset. Every function is a pure,
// synchronous, single pass over the read-only dataset with O(rows + groups)
// cost; nothing is cached or persisted between calls.
package rates

import (
	"sort"

	"giftedlens/domain/pipeline"
)

// GroupRate is the selection rate of one group value, with the group size
type GroupRate struct {
	Group string `json:"group"`
	N     int    `json:"n"`
	Rate  Rate   `json:"rate"`
}

// DisparityRow extends GroupRate with disparity metrics relative to the
// overall population rate and a reference group
type DisparityRow struct {
	GroupRate
	RateDiffVsOverall  Rate   `json:"rate_diff_vs_overall"`
	RiskRatioVsOverall Rate   `json:"risk_ratio_vs_overall"`
	RateVsRef          Rate   `json:"rate_vs_ref"`
	ReferenceGroup     string `json:"reference_group"`
}

// StageCount is the total count for one pipeline stage
type StageCount struct {
	Stage pipeline.Stage `json:"stage"`
	Count int            `json:"count"`
}

// SelectionRate computes the fraction of rows for which the outcome
// indicator is positive: sum of the outcome column divided by row count.
// Missing or unparseable cells contribute nothing to the numerator but
// their rows still count in the denominator. The result is undefined iff
// the dataset is empty or the outcome column holds no numeric values.
func SelectionRate(ds pipeline.Dataset, outcome pipeline.Stage) Rate {
	if len(ds) == 0 {
		return Undefined()
	}

	sum := 0.0
	numeric := 0
	for _, rec := range ds {
		if c := rec.Outcome(outcome); c.Valid {
			sum += c.Value
			numeric++
		}
	}
	if numeric == 0 {
		return Undefined()
	}
	return Defined(sum / float64(len(ds)))
}

// GroupRates groups rows by groupAttr and computes each group's selection
// rate and size. A missing group value forms its own group rather than
// being dropped. The result is sorted by rate descending; ties keep the
// group encounter order, and groups with undefined rates sort last.
func GroupRates(ds pipeline.Dataset, groupAttr string, outcome pipeline.Stage) []GroupRate {
	order := make([]string, 0)
	buckets := make(map[string]pipeline.Dataset)
	for _, rec := range ds {
		g := rec.GroupValue(groupAttr)
		if _, seen := buckets[g]; !seen {
			order = append(order, g)
		}
		buckets[g] = append(buckets[g], rec)
	}

	rows := make([]GroupRate, 0, len(order))
	for _, g := range order {
		rows = append(rows, GroupRate{
			Group: g,
			N:     len(buckets[g]),
			Rate:  SelectionRate(buckets[g], outcome),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[j].Rate.Less(rows[i].Rate)
	})
	return rows
}

// DisparityTable computes GroupRates plus disparity metrics against the
// dataset-wide overall rate and a reference group. An empty reference
// selects the highest-rate group - a data-dependent default retained for
// compatibility with the source tool; callers wanting a stable baseline
// must pass one explicitly. A reference absent from the grouped results
// silently falls back to the overall rate, so every row's RateVsRef then
// equals its RiskRatioVsOverall. Division by zero or by an undefined
// operand yields an undefined rate, never an error.
func DisparityTable(ds pipeline.Dataset, groupAttr string, outcome pipeline.Stage, reference string) []DisparityRow {
	groups := GroupRates(ds, groupAttr, outcome)
	overall := SelectionRate(ds, outcome)

	if reference == "" && len(groups) > 0 {
		reference = groups[0].Group
	}

	refRate := overall
	for _, g := range groups {
		if g.Group == reference {
			refRate = g.Rate
			break
		}
	}

	rows := make([]DisparityRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, DisparityRow{
			GroupRate:          g,
			RateDiffVsOverall:  g.Rate.Sub(overall),
			RiskRatioVsOverall: g.Rate.Div(overall),
			RateVsRef:          g.Rate.Div(refRate),
			ReferenceGroup:     reference,
		})
	}
	return rows
}

// Funnel sums each pipeline stage's outcome column over the whole dataset,
// in funnel order. Missing cells are skipped; fractional sums truncate.
func Funnel(ds pipeline.Dataset) []StageCount {
	counts := make([]StageCount, 0, len(pipeline.Stages()))
	for _, stage := range pipeline.Stages() {
		sum := 0.0
		for _, rec := range ds {
			if c := rec.Outcome(stage); c.Valid {
				sum += c.Value
			}
		}
		counts = append(counts, StageCount{Stage: stage, Count: int(sum)})
	}
	return counts
}
