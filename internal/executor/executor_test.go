package executor_test

import (
	"bytes"
	"context"
	"io"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	"github.com/fjglira/issuebench/internal/domain"
	"github.com/fjglira/issuebench/internal/engine"
	"github.com/fjglira/issuebench/internal/executor"
	"github.com/fjglira/issuebench/internal/runner"
)

var _ = Describe("Executor", func() {
	var (
		x   *executor.DefaultExecutor
		out *bytes.Buffer
	)

	BeforeEach(func() {
		log := logrus.New()
		log.SetOutput(io.Discard)
		out = &bytes.Buffer{}
		r := runner.NewShellRunner("", []string{"mkfs"}, out)
		x = executor.NewExecutor(r, engine.Options{
			DefaultTime: 5 * time.Millisecond,
			Timeout:     time.Second,
		}, log)
	})

	It("should share setup state with tests and teardown", func() {
		plan := &domain.Plan{
			Title:    "1 - shared",
			Setup:    []string{"counter=0"},
			Teardown: []string{`echo "teardown saw $label"`},
			Suites: []*domain.Suite{{
				Name:  "A",
				Setup: []string{"label=suite-a"},
				Tests: []domain.TestCase{{Name: "inc", Code: "counter=$((counter + 1))"}},
			}},
		}

		result, err := x.Execute(context.Background(), plan)
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Name).To(Equal("1 - shared"))
		Expect(result.Suites[0].Tests[0].Error).To(BeEmpty())
		Expect(result.Suites[0].Tests[0].Fastest).To(BeTrue())
		Expect(out.String()).To(ContainSubstring("teardown saw suite-a"))
	})

	It("should record failing and invalid snippets without stopping the run", func() {
		plan := &domain.Plan{
			Suites: []*domain.Suite{
				{
					Name: "A",
					Tests: []domain.TestCase{
						{Name: "fails", Code: "echo nope >&2; false"},
						{Name: "syntax", Code: "if then ("},
						{Name: "blocked", Code: "mkfs.ext4 /dev/null"},
						{Name: "ok", Code: ":"},
					},
				},
				{
					Name:  "B",
					Tests: []domain.TestCase{{Name: "ok", Code: "true"}},
				},
			},
		}

		result, err := x.Execute(context.Background(), plan)
		Expect(err).ToNot(HaveOccurred())

		a := result.Suites[0].Tests
		Expect(a).To(HaveLen(4))
		Expect(a[0].Error).To(ContainSubstring("nope"))
		Expect(a[1].Error).To(ContainSubstring("syntax error"))
		Expect(a[2].Error).To(ContainSubstring("blocked"))
		Expect(a[3].Error).To(BeEmpty())
		Expect(a[3].Fastest).To(BeTrue())
		Expect(result.Suites[1].Tests[0].Error).To(BeEmpty())
	})

	It("should fail the tests of a suite whose setup fails", func() {
		plan := &domain.Plan{
			Suites: []*domain.Suite{{
				Name:  "A",
				Setup: []string{"false"},
				Tests: []domain.TestCase{{Name: "t", Code: ":"}},
			}},
		}

		result, err := x.Execute(context.Background(), plan)
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Suites[0].Tests[0].Error).To(HavePrefix("setup failed:"))
	})

	It("should return an empty result for an empty plan", func() {
		result, err := x.Execute(context.Background(), &domain.Plan{Title: "empty"})
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Suites).To(BeEmpty())
	})
})
