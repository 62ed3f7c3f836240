package report_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fjglira/issuebench/internal/domain"
	"github.com/fjglira/issuebench/internal/report"
)

var _ = Describe("Formatting", func() {
	DescribeTable("FormatDuration",
		func(seconds float64, expected string) {
			Expect(report.FormatDuration(domain.Float(seconds))).To(Equal(expected))
		},
		Entry("milliseconds", 0.0015, "1.5ms"),
		Entry("microseconds", 0.0000125, "12.5µs"),
		Entry("nanoseconds", 0.00000025, "250ns"),
		Entry("seconds", 2.0, "2s"),
	)

	DescribeTable("FormatPercent",
		func(v float64, expected string) {
			Expect(report.FormatPercent(domain.Float(v))).To(Equal(expected))
		},
		Entry("zero", 0.0, "0%"),
		Entry("rounds to two digits", -12.3456, "-12.35%"),
		Entry("drops trailing zeros", 50.0, "50%"),
		Entry("groups thousands", 1234.5, "1,234.5%"),
		Entry("no negative zero", -0.0001, "0%"),
	)

	DescribeTable("FormatOps",
		func(v float64, expected string) {
			Expect(report.FormatOps(domain.Float(v))).To(Equal(expected))
		},
		Entry("small", 42.4, "42"),
		Entry("rounds half up", 2.5, "3"),
		Entry("groups thousands", 1234567.891, "1,234,568"),
	)

	It("should render missing values as a dash", func() {
		Expect(report.FormatDuration(nil)).To(Equal("-"))
		Expect(report.FormatPercent(nil)).To(Equal("-"))
		Expect(report.FormatOps(nil)).To(Equal("-"))
	})

	It("should escape pipes and newlines in cells", func() {
		Expect(report.EscapeCell("a | b\nc")).To(Equal(`a \| b c`))
	})

	Describe("Row", func() {
		It("should bold every cell of the fastest test", func() {
			row := report.Row(domain.TestResult{
				Name:    "fast",
				Fastest: true,
				Stat:    domain.Stat{Avg: domain.Float(0.001), Percent: domain.Float(0), RPS: domain.Float(1000)},
			})
			Expect(row).To(Equal([]string{"**fast**", "**1ms**", "**0%**", "**1,000**"}))
		})

		It("should append the error to the name", func() {
			row := report.Row(domain.TestResult{Name: "bad|name", Error: "exit status 1"})
			Expect(row).To(Equal([]string{`bad\|name ❌ Error: exit status 1`, "-", "-", "-"}))
		})

		It("should dash individually missing stats", func() {
			row := report.Row(domain.TestResult{Name: "partial", Stat: domain.Stat{Avg: domain.Float(1)}})
			Expect(row).To(Equal([]string{"partial", "1s", "-", "-"}))
		})
	})
})
