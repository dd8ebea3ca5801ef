package pipeline

import (
	"strconv"
	"strings"
)

// Stage identifies one step of the gifted-identification pipeline.
// Stages are sequential: a student is referred, then tested, then
// qualified, then placed.
type Stage string

const (
	StageReferred  Stage = "referred"
	StageTested    Stage = "tested"
	StageQualified Stage = "qualified"
	StagePlaced    Stage = "placed"
)

// Stages returns all pipeline stages in funnel order
func Stages() []Stage {
	return []Stage{StageReferred, StageTested, StageQualified, StagePlaced}
}

// ParseStage parses a string into a Stage
func ParseStage(s string) (Stage, bool) {
	switch Stage(strings.ToLower(strings.TrimSpace(s))) {
	case StageReferred:
		return StageReferred, true
	case StageTested:
		return StageTested, true
	case StageQualified:
		return StageQualified, true
	case StagePlaced:
		return StagePlaced, true
	}
	return "", false
}

// Cell is a single numeric observation that may be missing or unparseable.
// An invalid Cell contributes nothing to rate numerators but the row it
// belongs to still counts toward denominators.
type Cell struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// NewCell creates a valid cell holding v
func NewCell(v float64) Cell {
	return Cell{Value: v, Valid: true}
}

// MissingCell creates an invalid (missing/unparseable) cell
func MissingCell() Cell {
	return Cell{}
}

// Record is one student row, or one pre-aggregated cohort row when outcome
// cells carry counts instead of 0/1 flags. Rows are independent of each
// other; no field is unique.
type Record struct {
	SchoolYear    string `json:"school_year"`
	Grade         string `json:"grade"`
	Gender        string `json:"gender"`
	RaceEthnicity string `json:"race_ethnicity"`

	// Optional demographic flags (boolean-as-numeric)
	ELL Cell `json:"ell"`
	IEP Cell `json:"iep"`
	FRL Cell `json:"frl"`

	// Pipeline outcome indicators
	Referred  Cell `json:"referred"`
	Tested    Cell `json:"tested"`
	Qualified Cell `json:"qualified"`
	Placed    Cell `json:"placed"`
}

// Canonical attribute names shared with the ingestion layer
const (
	ColSchoolYear    = "school_year"
	ColGrade         = "grade"
	ColGender        = "gender"
	ColRaceEthnicity = "race_ethnicity"
	ColELL           = "ell"
	ColIEP           = "iep"
	ColFRL           = "frl"
)

// GroupAttributes returns the categorical attributes a dataset can be
// grouped by, in schema order
func GroupAttributes() []string {
	return []string{ColSchoolYear, ColGrade, ColGender, ColRaceEthnicity, ColELL, ColIEP, ColFRL}
}

// IsGroupAttribute reports whether attr names a grouping attribute
func IsGroupAttribute(attr string) bool {
	for _, a := range GroupAttributes() {
		if a == attr {
			return true
		}
	}
	return false
}

// RequiredColumns returns the attributes that must be present before the
// analytical core may be invoked
func RequiredColumns() []string {
	return []string{
		ColSchoolYear, ColGrade, ColGender, ColRaceEthnicity,
		string(StageReferred), string(StageTested), string(StageQualified), string(StagePlaced),
	}
}

// OptionalColumns returns the demographic flag columns that may be absent
func OptionalColumns() []string {
	return []string{ColELL, ColIEP, ColFRL}
}

// GroupValue returns the record's label for a grouping attribute. A missing
// value yields the empty label, which forms its own group rather than being
// dropped. Flag attributes are rendered from their numeric value ("1", "0").
// Unknown attributes yield the empty label.
func (r Record) GroupValue(attr string) string {
	switch attr {
	case ColSchoolYear:
		return r.SchoolYear
	case ColGrade:
		return r.Grade
	case ColGender:
		return r.Gender
	case ColRaceEthnicity:
		return r.RaceEthnicity
	case ColELL:
		return flagLabel(r.ELL)
	case ColIEP:
		return flagLabel(r.IEP)
	case ColFRL:
		return flagLabel(r.FRL)
	}
	return ""
}

// Outcome returns the cell for a pipeline stage
func (r Record) Outcome(stage Stage) Cell {
	switch stage {
	case StageReferred:
		return r.Referred
	case StageTested:
		return r.Tested
	case StageQualified:
		return r.Qualified
	case StagePlaced:
		return r.Placed
	}
	return MissingCell()
}

func flagLabel(c Cell) string {
	if !c.Valid {
		return ""
	}
	return strconv.FormatFloat(c.Value, 'g', -1, 64)
}
