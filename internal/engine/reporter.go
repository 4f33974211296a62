package engine

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Reporter prints human-readable test outcomes. The per-test lines are plain
// text so they stay grep-able; only the final summary is styled.
type Reporter struct {
	w io.Writer

	passStyle     lipgloss.Style
	failStyle     lipgloss.Style
	notFoundStyle lipgloss.Style
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{
		w:             w,
		passStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		failStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		notFoundStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

// Running announces a test before its session launches.
func (rep *Reporter) Running(name string) {
	fmt.Fprintf(rep.w, "Running test %s:\n", name)
}

// Report prints one outcome.
func (rep *Reporter) Report(result Result) {
	switch result.Outcome {
	case OutcomePass:
		fmt.Fprintf(rep.w, "Test %s passed.\n", result.Name)
	case OutcomeFail:
		fmt.Fprintf(rep.w, "Test %s failed: %s\n", result.Name, result.Reason())
	case OutcomeNotFound:
		fmt.Fprintf(rep.w, "Test %s not found.\n", result.Name)
	}
}

// Summary prints one line of outcome counts after all tests have run.
func (rep *Reporter) Summary(results []Result) {
	var passed, failed, notFound int
	for _, result := range results {
		switch result.Outcome {
		case OutcomePass:
			passed++
		case OutcomeFail:
			failed++
		case OutcomeNotFound:
			notFound++
		}
	}

	fmt.Fprintf(rep.w, "\n%s, %s, %s\n",
		rep.passStyle.Render(fmt.Sprintf("%d passed", passed)),
		rep.failStyle.Render(fmt.Sprintf("%d failed", failed)),
		rep.notFoundStyle.Render(fmt.Sprintf("%d not found", notFound)))
}
