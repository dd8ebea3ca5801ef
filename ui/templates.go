package ui

import (
	"embed"
	"fmt"
	"html/template"
	"math"

	"giftedlens/domain/rates"
)

//go:embed templates/*.html
var embeddedFiles embed.FS

// parseTemplates loads the embedded templates with the shared func map
func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs()).ParseFS(embeddedFiles, "templates/*.html")
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"pct": func(r rates.Rate) string { return r.Percent() },
		"ratio": func(r rates.Rate) string {
			v, ok := r.Value()
			if !ok {
				return "-"
			}
			return fmt.Sprintf("%.2fx", v)
		},
		"mul": func(a, b float64) float64 { return a * b },
		// barWidth scales a rate in [0,1] to a pixel width for the inline
		// rate bars; undefined rates collapse to zero
		"barWidth": func(r rates.Rate) int {
			v, ok := r.Value()
			if !ok {
				return 0
			}
			return int(math.Round(math.Max(0, math.Min(1, v)) * 200))
		},
		"funnelWidth": func(count, max int) int {
			if max <= 0 {
				return 0
			}
			return int(math.Round(float64(count) / float64(max) * 300))
		},
	}
}
