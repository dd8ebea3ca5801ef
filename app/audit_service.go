// Package app wires the analytical core, profiling and significance
// adapters into one audit operation shared by the dashboard, the JSON API
// and the CLI.
package app

import (
	"giftedlens/adapters/stats"
	"giftedlens/domain/core"
	"giftedlens/domain/pipeline"
	"giftedlens/domain/rates"
	"giftedlens/internal/errors"
	"giftedlens/internal/logging"
	"giftedlens/internal/profiling"
)

// AuditQuery holds the caller-supplied settings for one audit
type AuditQuery struct {
	GroupBy        string         `json:"group_by"`
	Outcome        pipeline.Stage `json:"outcome"`
	Reference      string         `json:"reference,omitempty"`
	MinGroupSize   int            `json:"min_group_size"`
	LatestYearOnly bool           `json:"latest_year_only"`
}

// Overview holds the headline pipeline rates shown above every audit
type Overview struct {
	ReferralRate      rates.Rate `json:"referral_rate"`
	QualificationRate rates.Rate `json:"qualification_rate"`
	PlacementRate     rates.Rate `json:"placement_rate"`
}

// AuditReport is the complete output of one audit query: plain data
// records consumable by any rendering layer
type AuditReport struct {
	ID          core.ReportID  `json:"id"`
	GeneratedAt core.Timestamp `json:"generated_at"`
	Query       AuditQuery     `json:"query"`

	RowCount     int                      `json:"row_count"`
	Overview     Overview                 `json:"overview"`
	Groups       []rates.GroupRate        `json:"groups"`
	Disparity    []rates.DisparityRow     `json:"disparity"`
	Funnel       []rates.StageCount       `json:"funnel"`
	Fields       []profiling.FieldProfile `json:"fields"`
	Significance stats.ChiSquareResult    `json:"significance"`
}

// HasGroups reports whether any group survived the min-size filter
func (r *AuditReport) HasGroups() bool {
	return len(r.Groups) > 0
}

// AuditService runs audit queries over uploaded datasets. It holds no
// dataset state: every call receives the fully materialized dataset and
// recomputes everything from it.
type AuditService struct {
	log *logging.Logger
}

// NewAuditService creates the audit service
func NewAuditService() *AuditService {
	return &AuditService{log: logging.New("audit")}
}

// Run executes one audit query. Groups below the min-size threshold are
// dropped before display, and the disparity table is recomputed over the
// dataset restricted to the surviving groups - so the overall baseline
// reflects only what the table shows, matching the source tool.
func (s *AuditService) Run(ds pipeline.Dataset, q AuditQuery) (*AuditReport, error) {
	if !pipeline.IsGroupAttribute(q.GroupBy) {
		return nil, errors.InvalidInput("unknown grouping attribute: " + q.GroupBy)
	}
	if _, ok := pipeline.ParseStage(string(q.Outcome)); !ok {
		return nil, errors.InvalidInput("unknown outcome: " + string(q.Outcome))
	}
	if q.MinGroupSize < 1 {
		q.MinGroupSize = 1
	}

	if q.LatestYearOnly {
		before := len(ds)
		ds = ds.FilterLatestYear()
		s.log.Debug("latest-year filter kept %d of %d rows", len(ds), before)
	}

	report := &AuditReport{
		ID:          core.ReportID(core.NewID()),
		GeneratedAt: core.Now(),
		Query:       q,
		RowCount:    len(ds),
		Overview: Overview{
			ReferralRate:      rates.SelectionRate(ds, pipeline.StageReferred),
			QualificationRate: rates.SelectionRate(ds, pipeline.StageQualified),
			PlacementRate:     rates.SelectionRate(ds, pipeline.StagePlaced),
		},
		Funnel: rates.Funnel(ds),
		Fields: profiling.ProfileColumns(ds),
	}

	groups := rates.GroupRates(ds, q.GroupBy, q.Outcome)
	keep := make(map[string]bool)
	for _, g := range groups {
		if g.N >= q.MinGroupSize {
			report.Groups = append(report.Groups, g)
			keep[g.Group] = true
		}
	}

	if len(report.Groups) == 0 {
		s.log.Info("no groups of %q meet min size %d", q.GroupBy, q.MinGroupSize)
		report.Significance = stats.ChiSquareResult{Applicable: false, Reason: "no groups meet minimum size"}
		return report, nil
	}

	restricted := ds.FilterGroups(q.GroupBy, keep)
	report.Disparity = rates.DisparityTable(restricted, q.GroupBy, q.Outcome, q.Reference)
	report.Significance = stats.ChiSquareDisparity(restricted, q.GroupBy, q.Outcome)

	s.log.Info("audit %s: %d rows, %d groups by %q for %q",
		report.ID, report.RowCount, len(report.Groups), q.GroupBy, q.Outcome)
	return report, nil
}
