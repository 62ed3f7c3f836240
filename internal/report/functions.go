package report

import (
	"strings"
	"text/template"
	"time"
)

// CustomFuncMap returns the custom template functions available in templates.
func CustomFuncMap() template.FuncMap {
	return template.FuncMap{
		"join":      strings.Join,
		"escape":    EscapeCell,
		"duration":  FormatDuration,
		"percent":   FormatPercent,
		"ops":       FormatOps,
		"toUpper":   strings.ToUpper,
		"trimSpace": strings.TrimSpace,
		"isoTime": func(t time.Time) string {
			return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
		},
	}
}
