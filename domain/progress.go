package domain

import "context"

// ProgressManager abstracts progress reporting so services stay
// independent of the terminal environment.
type ProgressManager interface {
	// StartTask creates a progress task; total may be -1 when unknown
	StartTask(description string, total int) TaskProgress

	// IsInteractive reports whether progress is actually displayed
	IsInteractive() bool

	// Close finishes all outstanding tasks
	Close()
}

// TaskProgress tracks one task's progress.
type TaskProgress interface {
	// Increment adds n to the current progress
	Increment(n int)

	// Describe updates the current item description
	Describe(description string)

	// Complete marks the task as finished
	Complete()
}

// RecordSource produces the analysis tool's output one line at a time.
// handle is invoked sequentially, in stream order, from a single goroutine.
// The returned exit code is the producing process's exit status (0 for
// non-process sources); a non-zero exit is reported independently of any
// parse outcome.
type RecordSource interface {
	Stream(ctx context.Context, handle func(line string)) (exitCode int, err error)
}
