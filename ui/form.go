package ui

import (
	"net/http"
	"strconv"

	"giftedlens/adapters/tabular"
	"giftedlens/app"
	"giftedlens/domain/core"
	"giftedlens/domain/pipeline"
	"giftedlens/internal/errors"
)

// auditForm is the parsed multipart upload shared by the dashboard, the
// export endpoint and the JSON API: the materialized dataset plus the
// audit settings
type auditForm struct {
	dataset pipeline.Dataset
	query   app.AuditQuery
}

// parseAuditForm reads the multipart request, applies the column mapping
// and materializes the dataset. Missing required columns surface here,
// before any analytical call.
func parseAuditForm(r *http.Request, defaultMinGroupSize int) (*auditForm, error) {
	file, header, err := r.FormFile("dataset")
	if err != nil {
		return nil, errors.InvalidInput("no dataset file uploaded")
	}
	defer file.Close()

	reader := tabular.NewReader(mappingFromForm(r))
	ds, err := reader.Read(file, header.Filename)
	if err != nil {
		return nil, classifyReadError(err)
	}

	return &auditForm{
		dataset: ds,
		query:   queryFromForm(r, defaultMinGroupSize),
	}, nil
}

func mappingFromForm(r *http.Request) tabular.ColumnMapping {
	mapping := tabular.DefaultColumnMapping()
	for canonical := range mapping {
		if v := r.FormValue("map_" + canonical); v != "" {
			mapping[canonical] = v
		}
	}
	return mapping
}

func queryFromForm(r *http.Request, defaultMinGroupSize int) app.AuditQuery {
	minSize := defaultMinGroupSize
	if v, err := strconv.Atoi(r.FormValue("min_group_size")); err == nil && v >= 1 {
		minSize = v
	}

	outcome := pipeline.StageQualified
	if s, ok := pipeline.ParseStage(r.FormValue("outcome")); ok {
		outcome = s
	}

	groupBy := r.FormValue("group_by")
	if groupBy == "" {
		groupBy = pipeline.ColRaceEthnicity
	}

	return app.AuditQuery{
		GroupBy:        groupBy,
		Outcome:        outcome,
		Reference:      r.FormValue("reference"),
		MinGroupSize:   minSize,
		LatestYearOnly: r.FormValue("latest_year") != "",
	}
}

// classifyReadError maps reader failures onto application error codes
func classifyReadError(err error) error {
	if appErr, ok := err.(*errors.AppError); ok {
		return appErr
	}
	if core.IsMissingColumnsError(err) {
		return errors.MissingColumns(err)
	}
	return errors.ParseError(err)
}
