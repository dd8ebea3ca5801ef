package tabular

import (
	"strconv"
	"strings"

	"giftedlens/domain/pipeline"
)

// CoerceNumeric parses a raw cell into a numeric Cell. Thousands separators
// and surrounding whitespace are tolerated; anything that still fails to
// parse becomes a missing cell, so unusable values drop out of rate
// numerators without aborting the upload.
func CoerceNumeric(raw string) pipeline.Cell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return pipeline.MissingCell()
	}

	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return pipeline.MissingCell()
	}
	return pipeline.NewCell(v)
}
