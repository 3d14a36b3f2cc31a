package ytdlp

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// stderrTailLines is how many trailing stderr lines an ExitError keeps.
const stderrTailLines = 5

// Command is a fully resolved process invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
}

// String renders the command for verbose logs.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, ShellQuote(c.Name))
	for _, a := range c.Args {
		parts = append(parts, ShellQuote(a))
	}
	return strings.Join(parts, " ")
}

// Runner executes commands. ExecRunner is the real implementation; tests
// substitute fakes that create files instead of downloading.
type Runner interface {
	// Run executes cmd, calling onLine for every stdout and stderr line.
	// onLine may be nil.
	Run(ctx context.Context, cmd Command, onLine func(line string)) error

	// Output executes cmd and returns its stdout.
	Output(ctx context.Context, cmd Command) ([]byte, error)

	// LookPath resolves an executable name.
	LookPath(name string) (string, error)
}

// ExitError reports a process that ran but exited non-zero.
type ExitError struct {
	Command Command
	Code    int
	Stderr  string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Command.Name, e.Code)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// LookPath implements Runner.
func (ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run implements Runner. Stdout and stderr are pumped concurrently so
// neither pipe can fill up and stall the process.
func (ExecRunner) Run(ctx context.Context, c Command, onLine func(line string)) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return err
	}

	var (
		mu   sync.Mutex
		tail = newLineTail(stderrTailLines)
	)
	emit := func(line string) {
		if onLine == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		onLine(line)
	}

	var g errgroup.Group
	g.Go(func() error {
		return scanLines(stdout, emit)
	})
	g.Go(func() error {
		return scanLines(stderr, func(line string) {
			tail.add(line)
			emit(line)
		})
	})

	pumpErr := g.Wait()
	waitErr := cmd.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if waitErr != nil {
		return wrapExit(c, waitErr, tail.String())
	}
	return pumpErr
}

// Output implements Runner.
func (ExecRunner) Output(ctx context.Context, c Command) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		tail := newLineTail(stderrTailLines)
		for _, line := range strings.Split(stderr.String(), "\n") {
			tail.add(line)
		}
		return nil, wrapExit(c, err, tail.String())
	}
	return out, nil
}

func wrapExit(c Command, err error, stderr string) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Command: c, Code: exitErr.ExitCode(), Stderr: stderr}
	}
	return err
}

func scanLines(r io.Reader, fn func(string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		fn(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		// Keep the pipe flowing so the child can exit.
		_, _ = io.Copy(io.Discard, r)
		return err
	}
	return nil
}

// lineTail keeps the last n non-blank lines.
type lineTail struct {
	mu    sync.Mutex
	n     int
	lines []string
}

func newLineTail(n int) *lineTail {
	return &lineTail{n: n}
}

func (t *lineTail) add(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = append(t.lines, line)
	if len(t.lines) > t.n {
		t.lines = t.lines[len(t.lines)-t.n:]
	}
}

func (t *lineTail) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return strings.Join(t.lines, "; ")
}
