package domain

import (
	"context"
	"time"
)

// CheckRunStatus is the lifecycle status of a remote check run.
type CheckRunStatus string

const (
	StatusInProgress CheckRunStatus = "in_progress"
	StatusCompleted  CheckRunStatus = "completed"
)

// CheckRunConclusion is the terminal conclusion of a completed check run.
type CheckRunConclusion string

const (
	ConclusionSuccess   CheckRunConclusion = "success"
	ConclusionCancelled CheckRunConclusion = "cancelled"
)

// AnnotationLevel is the severity attached to an annotation.
type AnnotationLevel string

const (
	AnnotationLevelNotice  AnnotationLevel = "notice"
	AnnotationLevelWarning AnnotationLevel = "warning"
	AnnotationLevelFailure AnnotationLevel = "failure"
)

// Annotation ties a message to a line range of one file, surfaced inline on
// the commit by the remote check-run API. Annotations are created during
// extraction, consumed exactly once by batching, then discarded.
type Annotation struct {
	Path      string          `json:"path"`
	StartLine int             `json:"start_line"`
	EndLine   int             `json:"end_line"`
	Level     AnnotationLevel `json:"annotation_level"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
}

// CreateRunRequest is the payload of the check-run create call.
type CreateRunRequest struct {
	Owner     string
	Repo      string
	Name      string
	HeadSHA   string
	Status    CheckRunStatus
	StartedAt time.Time
}

// RunOutput is the report body carried by an update call. The remote API
// replaces rather than appends output, so the full text is repeated on
// every update of a cycle.
type RunOutput struct {
	Title       string
	Summary     string
	Text        string
	Annotations []Annotation
}

// UpdateRunRequest is the payload of one check-run update call.
type UpdateRunRequest struct {
	Owner       string
	Repo        string
	Name        string
	RunID       int64
	Status      CheckRunStatus
	Conclusion  CheckRunConclusion
	CompletedAt time.Time
	Output      *RunOutput
}

// CheckClient is the remote check-run API surface the controller needs.
// Create/update semantics are the remote API's; this core never retries.
type CheckClient interface {
	// CreateRun creates the remote check run and returns its identifier
	CreateRun(ctx context.Context, req CreateRunRequest) (int64, error)

	// UpdateRun updates a previously created check run
	UpdateRun(ctx context.Context, req UpdateRunRequest) error
}

// CheckPublisher publishes a finished session. Implemented by the check-run
// controller; faked in tests.
type CheckPublisher interface {
	Publish(ctx context.Context, session *CheckRunSession) error
}

// CheckRunSession is the state of one reporting cycle. It is owned by a
// single goroutine: records and annotations accumulate while the stream is
// consumed, then the whole session is handed to the controller exactly once
// and discarded after the cycle reaches a terminal state.
type CheckRunSession struct {
	// Records are the successfully parsed top-level records, in arrival order
	Records []SpaceRecord

	// Annotations are the pending annotations, in extraction order (FIFO)
	Annotations []Annotation

	// Report is the fully rendered report text
	Report string

	// StartedAt is the start of the reporting cycle
	StartedAt time.Time

	// Version is the analysis tool's version label used in the report header
	Version string
}

// NewCheckRunSession creates an empty session for one reporting cycle.
func NewCheckRunSession(version string, startedAt time.Time) *CheckRunSession {
	return &CheckRunSession{
		Version:   version,
		StartedAt: startedAt,
	}
}

// AddRecord appends one parsed top-level record.
func (s *CheckRunSession) AddRecord(rec SpaceRecord) {
	s.Records = append(s.Records, rec)
}

// AddAnnotations enqueues extracted annotations, preserving order.
func (s *CheckRunSession) AddAnnotations(anns []Annotation) {
	s.Annotations = append(s.Annotations, anns...)
}
