package engine

import (
	"bufio"
	"io"
	"time"

	"guestexpect/internal/config"
	"guestexpect/internal/errors"
	"guestexpect/internal/logger"
)

// Matcher consumes a console output stream line by line and waits for
// expectation sets to complete. A single goroutine scans the stream into a
// channel so that waits can be bounded by a deadline.
type Matcher struct {
	lines chan string
}

// NewMatcher starts scanning the given stream. Scanning stops when the stream
// ends or errors; either way the line channel is closed.
func NewMatcher(r io.Reader) *Matcher {
	m := &Matcher{
		lines: make(chan string, 64),
	}

	go func() {
		defer close(m.lines)

		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			m.lines <- scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			logger.Debug("console scan ended", "error", err)
		}
	}()

	return m
}

// AwaitAll blocks until every pattern has matched a console line, the stream
// ends, or no pattern matches within timeout. Patterns form an unordered
// pending set: whichever pending pattern a line satisfies first is removed,
// and a line satisfies at most one pattern. The deadline resets only when a
// pattern matches, so the timeout bounds time without matching progress.
func (m *Matcher) AwaitAll(patterns []config.Pattern, timeout time.Duration) error {
	pending := append([]config.Pattern(nil), patterns...)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for len(pending) > 0 {
		select {
		case line, ok := <-m.lines:
			if !ok {
				return errors.New(errors.CodeUnexpectedEOF, "unexpected EOF, maybe the VM quit unexpectedly")
			}
			if i := matchPending(pending, line); i >= 0 {
				logger.Debug("matched expected line", "pattern", pending[i].Source, "line", line)
				pending = append(pending[:i], pending[i+1:]...)
				if !timer.Stop() {
					<-timer.C
				}
				timer.Reset(timeout)
			}
		case <-timer.C:
			return errors.New(errors.CodeTimeout, "timeout, or expected result not found")
		}
	}

	return nil
}

// Drain discards console output until the stream ends. The session calls it
// after the VM process has been reaped so the scanner can run to EOF and the
// log sink receives everything the guest printed before it is closed.
func (m *Matcher) Drain() {
	for range m.lines {
	}
}

func matchPending(pending []config.Pattern, line string) int {
	for i, p := range pending {
		if p.MatchLine(line) {
			return i
		}
	}
	return -1
}
