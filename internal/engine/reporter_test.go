package engine

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"guestexpect/internal/errors"
)

func TestReporterLines(t *testing.T) {
	testCases := []struct {
		name   string
		result Result
		want   string
	}{
		{
			name:   "pass",
			result: Result{Name: "echo", Outcome: OutcomePass},
			want:   "Test echo passed.\n",
		},
		{
			name:   "fail",
			result: Result{Name: "echo", Outcome: OutcomeFail, Err: errors.New(errors.CodeTimeout, "timeout, or expected result not found")},
			want:   "Test echo failed: timeout, or expected result not found\n",
		},
		{
			name:   "not found",
			result: Result{Name: "echo", Outcome: OutcomeNotFound},
			want:   "Test echo not found.\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			NewReporter(&out).Report(tc.result)
			assert.Equal(t, tc.want, out.String())
		})
	}
}

func TestReporterRunning(t *testing.T) {
	var out bytes.Buffer
	NewReporter(&out).Running("echo")
	assert.Equal(t, "Running test echo:\n", out.String())
}

func TestReporterSummary(t *testing.T) {
	var out bytes.Buffer
	NewReporter(&out).Summary([]Result{
		{Name: "a", Outcome: OutcomePass},
		{Name: "b", Outcome: OutcomePass},
		{Name: "c", Outcome: OutcomeFail},
		{Name: "d", Outcome: OutcomeNotFound},
	})
	assert.Contains(t, out.String(), "2 passed")
	assert.Contains(t, out.String(), "1 failed")
	assert.Contains(t, out.String(), "1 not found")
}

func TestResultReason(t *testing.T) {
	assert.Empty(t, Result{Outcome: OutcomePass}.Reason())

	harness := Result{Err: errors.New(errors.CodeUnexpectedEOF, "unexpected EOF, maybe the VM quit unexpectedly")}
	assert.Equal(t, "unexpected EOF, maybe the VM quit unexpectedly", harness.Reason())
}
