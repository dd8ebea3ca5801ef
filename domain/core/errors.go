package core

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors - centralized error definitions
var (
	ErrMissingColumns   = errors.New("required columns missing")
	ErrEmptyDataset     = errors.New("dataset has no rows")
	ErrUnknownAttribute = errors.New("unknown attribute")
	ErrUnknownStage     = errors.New("unknown pipeline stage")
	ErrUnsupportedFile  = errors.New("unsupported file type")
)

// NewMissingColumnsError reports which required columns were not found.
// The analytical core is never invoked when this error is raised; the
// caller surfaces it before any rate computation happens.
func NewMissingColumnsError(columns []string) error {
	return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(columns, ", "))
}

// NewUnknownAttributeError reports a grouping attribute outside the schema
func NewUnknownAttributeError(attr string) error {
	return fmt.Errorf("%w: %q is not a grouping attribute", ErrUnknownAttribute, attr)
}

// NewUnknownStageError reports an outcome outside the pipeline stages
func NewUnknownStageError(stage string) error {
	return fmt.Errorf("%w: %q is not a pipeline stage", ErrUnknownStage, stage)
}

// Error checking helpers
func IsMissingColumnsError(err error) bool {
	return errors.Is(err, ErrMissingColumns)
}

func IsSchemaError(err error) bool {
	return errors.Is(err, ErrMissingColumns) ||
		errors.Is(err, ErrUnknownAttribute) ||
		errors.Is(err, ErrUnknownStage)
}
