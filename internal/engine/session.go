package engine

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"guestexpect/internal/config"
	"guestexpect/internal/logger"
)

// Session owns one running VM process and its log artifact. Exactly one
// session is live at a time; the session is closed on every exit path of a
// test run.
type Session struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	console io.ReadCloser
	matcher *Matcher
	logFile *os.File

	closeOnce sync.Once
	closeErr  error
}

// StartSession launches the VM with the given shell command, merges its
// stdout and stderr into one console stream, and tees everything the guest
// prints into the log artifact at logPath.
func StartSession(launchCommand, logPath string) (*Session, error) {
	logFile, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("could not create log file: %w", err)
	}

	cmd := exec.Command("sh", "-c", launchCommand)
	// Launch commands are shell pipelines; the shell may fork its children
	// rather than exec them. Running the guest in its own process group lets
	// Close kill the whole tree, not just the shell.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("could not open stdin pipe: %w", err)
	}

	consoleRead, consoleWrite, err := os.Pipe()
	if err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("could not open console pipe: %w", err)
	}
	cmd.Stdout = consoleWrite
	cmd.Stderr = consoleWrite

	if err := cmd.Start(); err != nil {
		_ = logFile.Close()
		_ = consoleRead.Close()
		_ = consoleWrite.Close()
		return nil, fmt.Errorf("could not start VM process: %w", err)
	}
	// The child holds its own copy of the write end; ours must be closed so
	// the console stream sees EOF when the process exits.
	_ = consoleWrite.Close()

	logger.Debug("session started", "command", launchCommand, "pid", cmd.Process.Pid, "log", logPath)

	return &Session{
		cmd:     cmd,
		stdin:   stdin,
		console: consoleRead,
		matcher: NewMatcher(io.TeeReader(consoleRead, logFile)),
		logFile: logFile,
	}, nil
}

// ExpectAll waits until every pattern has matched the console output.
func (s *Session) ExpectAll(patterns []config.Pattern, timeout time.Duration) error {
	return s.matcher.AwaitAll(patterns, timeout)
}

// SendLine writes one line of input to the guest, terminated by a line break.
func (s *Session) SendLine(text string) error {
	if _, err := io.WriteString(s.stdin, text+"\n"); err != nil {
		return fmt.Errorf("could not send line to guest: %w", err)
	}
	return nil
}

// Close terminates the VM process and releases the log artifact. It is
// idempotent and always reaps the process before closing the log so the
// artifact holds everything the guest printed.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		_ = s.stdin.Close()
		if s.cmd.Process != nil {
			// Kill the process group so children forked by the launch shell
			// die too; a surviving child would hold the console pipe open and
			// block the drain below.
			if err := syscall.Kill(-s.cmd.Process.Pid, syscall.SIGKILL); err != nil {
				logger.Debug("could not kill VM process group", "error", err)
			}
		}
		_ = s.cmd.Wait()
		s.matcher.Drain()
		_ = s.console.Close()
		s.closeErr = s.logFile.Close()
	})
	return s.closeErr
}

// RunSession drives one full test session: launch the VM, wait for the boot
// handshake, select the test by name, then wait for the test's expected
// output. The process is closed by the time this returns, on every path.
func RunSession(launchCommand string, handshake []config.Pattern, name string, expected []config.Pattern, timeout time.Duration, logPath string) error {
	session, err := StartSession(launchCommand, logPath)
	if err != nil {
		return err
	}
	defer session.Close()

	if err := session.ExpectAll(handshake, timeout); err != nil {
		return err
	}

	if err := session.SendLine(name); err != nil {
		return err
	}

	return session.ExpectAll(expected, timeout)
}
