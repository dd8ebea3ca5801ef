// Package profiling computes per-column summary statistics for the
// dashboard's dataset overview. Profiles are descriptive context only; the
// analytical core never consults them.
package profiling

import (
	"giftedlens/domain/pipeline"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
)

// FieldProfile summarizes one numeric column
type FieldProfile struct {
	Name         string  `json:"name"`
	N            int     `json:"n"`
	MissingCount int     `json:"missing_count"`
	MissingRate  float64 `json:"missing_rate"`
	Mean         float64 `json:"mean"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	StdDev       float64 `json:"std_dev"`
}

// ProfileColumns profiles every numeric column (the four outcome stages
// plus the demographic flags), one goroutine per column. The dataset is
// read-only so the fan-out needs no locking; results land in fixed slots
// to keep column order deterministic.
func ProfileColumns(ds pipeline.Dataset) []FieldProfile {
	type column struct {
		name string
		get  func(pipeline.Record) pipeline.Cell
	}

	columns := []column{
		{string(pipeline.StageReferred), func(r pipeline.Record) pipeline.Cell { return r.Referred }},
		{string(pipeline.StageTested), func(r pipeline.Record) pipeline.Cell { return r.Tested }},
		{string(pipeline.StageQualified), func(r pipeline.Record) pipeline.Cell { return r.Qualified }},
		{string(pipeline.StagePlaced), func(r pipeline.Record) pipeline.Cell { return r.Placed }},
		{pipeline.ColELL, func(r pipeline.Record) pipeline.Cell { return r.ELL }},
		{pipeline.ColIEP, func(r pipeline.Record) pipeline.Cell { return r.IEP }},
		{pipeline.ColFRL, func(r pipeline.Record) pipeline.Cell { return r.FRL }},
	}

	profiles := make([]FieldProfile, len(columns))
	var g errgroup.Group
	for i, col := range columns {
		i, col := i, col
		g.Go(func() error {
			profiles[i] = profileColumn(ds, col.name, col.get)
			return nil
		})
	}
	// Workers never return errors; Wait only joins the fan-out
	_ = g.Wait()

	return profiles
}

func profileColumn(ds pipeline.Dataset, name string, get func(pipeline.Record) pipeline.Cell) FieldProfile {
	values := make([]float64, 0, len(ds))
	for _, rec := range ds {
		if c := get(rec); c.Valid {
			values = append(values, c.Value)
		}
	}

	profile := FieldProfile{
		Name:         name,
		N:            len(ds),
		MissingCount: len(ds) - len(values),
	}
	if len(ds) > 0 {
		profile.MissingRate = float64(profile.MissingCount) / float64(len(ds))
	}
	if len(values) == 0 {
		return profile
	}

	mean, _ := stats.Mean(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	stdDev, _ := stats.StandardDeviation(values)

	profile.Mean = mean
	profile.Min = min
	profile.Max = max
	profile.StdDev = stdDev
	return profile
}
