package engine

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fjglira/issuebench/internal/domain"
)

const chartBaseURL = "https://image-charts.com/chart"

// ChartURL builds a horizontal bar chart of ops/sec for the measured tests
// of a suite. It returns an empty string when nothing was measured.
func ChartURL(title string, tests []domain.TestResult) string {
	var labels, values []string
	for _, t := range tests {
		if t.Error != "" || t.Stat.RPS == nil {
			continue
		}
		labels = append(labels, t.Name)
		values = append(values, fmt.Sprintf("%.0f", *t.Stat.RPS))
	}
	if len(values) == 0 {
		return ""
	}

	q := url.Values{}
	q.Set("cht", "bhg")
	q.Set("chs", fmt.Sprintf("999x%d", 40+40*len(values)))
	q.Set("chtt", title)
	q.Set("chd", "a:"+strings.Join(values, ","))
	q.Set("chxl", "0:|"+strings.Join(reverse(labels), "|"))
	q.Set("chxt", "y")
	q.Set("chl", strings.Join(values, "|"))
	return chartBaseURL + "?" + q.Encode()
}

// reverse is needed because image-charts draws y axis labels bottom-up.
func reverse(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}
