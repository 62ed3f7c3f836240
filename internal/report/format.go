package report

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/fjglira/issuebench/internal/domain"
)

const missing = "-"

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatDuration renders seconds as a compact SI duration such as "12.5µs".
func FormatDuration(seconds *float64) string {
	if seconds == nil || math.IsNaN(*seconds) {
		return missing
	}
	return siCleaner.Replace(humanize.SIWithDigits(*seconds, 2, "s"))
}

// siCleaner compacts "1.5 ms" to "1.5ms" and settles on the micro sign.
var siCleaner = strings.NewReplacer(" ", "", "μ", "µ")

// FormatPercent renders a percentage with at most two fraction digits.
func FormatPercent(v *float64) string {
	if v == nil || math.IsNaN(*v) {
		return missing
	}
	return formatNumber(*v, 2) + "%"
}

// FormatOps renders operations per second rounded to an integer.
func FormatOps(v *float64) string {
	if v == nil || math.IsNaN(*v) {
		return missing
	}
	return formatNumber(*v, 0)
}

// formatNumber rounds half away from zero and groups thousands the en-US way.
func formatNumber(v float64, digits int) string {
	scale := math.Pow10(digits)
	v = math.Round(v*scale) / scale
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(digits)))
}

// EscapeCell makes text safe to place inside a markdown table cell.
func EscapeCell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

// Row returns the four table cells of a test result. Every cell of the
// fastest test is bold.
func Row(t domain.TestResult) []string {
	name := t.Name
	if t.Error != "" {
		name += " ❌ Error: " + t.Error
	}
	cells := []string{
		EscapeCell(name),
		FormatDuration(t.Stat.Avg),
		FormatPercent(t.Stat.Percent),
		FormatOps(t.Stat.RPS),
	}
	if t.Fastest {
		for i, c := range cells {
			cells[i] = "**" + c + "**"
		}
	}
	return cells
}
