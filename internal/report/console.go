package report

import (
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/olekukonko/tablewriter"

	"github.com/fjglira/issuebench/internal/domain"
)

var render = glamour.Render

// Preview renders report markdown for a terminal.
func Preview(markdown string) (string, error) {
	return render(markdown, "auto")
}

// Summary writes a plain console table of the result.
func Summary(w io.Writer, result *domain.Result) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Suite", "Name", "Time", "Diff", "Ops/sec"})
	table.SetAutoWrapText(false)
	for _, s := range result.Suites {
		for _, t := range s.Tests {
			name := t.Name
			if t.Fastest {
				name += " (fastest)"
			}
			if t.Error != "" {
				name += " [error]"
			}
			table.Append([]string{
				s.Name,
				name,
				FormatDuration(t.Stat.Avg),
				FormatPercent(t.Stat.Percent),
				FormatOps(t.Stat.RPS),
			})
		}
	}
	table.Render()
}
