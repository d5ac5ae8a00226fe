package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/spacecheck-ci/spacecheck/domain"
	"github.com/spacecheck-ci/spacecheck/internal/log"
)

// maxLineBytes bounds a single tool output line. A metrics record for a
// large file nests deeply, so the default bufio limit is far too small.
const maxLineBytes = 16 * 1024 * 1024

// ToolRunner invokes the external analysis executable and streams its
// standard output one line at a time. Stderr is drained concurrently into
// the diagnostic log so the tool never blocks on a full pipe.
type ToolRunner struct {
	// Path is the tool executable (looked up on PATH when not absolute)
	Path string

	// Args are the fixed tool arguments; the target directory is appended
	Args []string
}

// NewToolRunner creates a runner for the given executable and arguments.
func NewToolRunner(path string, args []string) *ToolRunner {
	return &ToolRunner{Path: path, Args: args}
}

// RunnerFor returns a RecordSource streaming the tool's output for dir.
func (r *ToolRunner) RunnerFor(dir string) domain.RecordSource {
	return &boundRunner{runner: r, dir: dir}
}

// boundRunner is a ToolRunner bound to one target directory, satisfying
// domain.RecordSource.
type boundRunner struct {
	runner *ToolRunner
	dir    string
}

// Stream runs the tool and invokes handle for every stdout line, in order,
// from a single goroutine. The tool's exit code is returned separately from
// stream errors: a non-zero exit with a fully consumed stream yields
// (code, nil) so the caller can report partial results before failing.
func (b *boundRunner) Stream(ctx context.Context, handle func(line string)) (int, error) {
	cmd := exec.CommandContext(ctx, b.runner.Path, append(append([]string{}, b.runner.Args...), b.dir)...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return -1, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return -1, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return -1, fmt.Errorf("start %s: %w", b.runner.Path, err)
	}

	g := new(errgroup.Group)
	g.Go(func() error {
		return scanLines(stdout, handle)
	})
	g.Go(func() error {
		return scanLines(stderr, func(line string) {
			log.Logger().Debugw("analysis tool stderr", "line", line)
		})
	})

	scanErr := g.Wait()
	waitErr := cmd.Wait()

	if scanErr != nil {
		return -1, fmt.Errorf("read tool output: %w", scanErr)
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("wait for %s: %w", b.runner.Path, waitErr)
	}
	return 0, nil
}

// Version runs the tool with --version and returns the trimmed first line,
// used as the report header label. Failure is non-fatal; the caller falls
// back to a static label.
func (r *ToolRunner) Version(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, r.Path, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("query %s version: %w", r.Path, err)
	}
	line := strings.TrimSpace(string(out))
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	return line, nil
}

func scanLines(rd io.Reader, handle func(line string)) error {
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		handle(scanner.Text())
	}
	return scanner.Err()
}

// ReaderSource adapts an already-captured output stream (a file, stdin) to
// domain.RecordSource. The exit code is always zero.
type ReaderSource struct {
	Reader io.Reader
}

// Stream invokes handle for every line of the reader.
func (s *ReaderSource) Stream(_ context.Context, handle func(line string)) (int, error) {
	if err := scanLines(s.Reader, handle); err != nil {
		return -1, fmt.Errorf("read record stream: %w", err)
	}
	return 0, nil
}
