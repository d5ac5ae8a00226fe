package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spacecheck-ci/spacecheck/domain"
	"github.com/spacecheck-ci/spacecheck/internal/log"
)

// cancelledSummary and cancelledText are the fixed output of the
// cancellation update issued when publishing fails mid-cycle.
const (
	cancelledSummary = "Unhandled error"
	cancelledText    = "The check run was cancelled because an error occurred while publishing the analysis results."
)

// CheckRunConfig configures one reporting cycle of the controller.
type CheckRunConfig struct {
	// Owner, Repo, Name, HeadSHA identify the remote check run
	Owner   string
	Repo    string
	Name    string
	HeadSHA string

	// ForkPullRequest marks a run that lacks permission to create check
	// runs (pull request from a forked repository). When set, a failed
	// create falls back to dumping the parsed records on FallbackWriter
	// and the cycle ends successfully.
	ForkPullRequest bool

	// BatchSize is the per-update annotation cap
	BatchSize int

	// FallbackWriter receives the fork-fallback dump; os.Stdout when nil
	FallbackWriter io.Writer

	// now is injectable for tests; time.Now when nil
	now func() time.Time
}

// CheckRunService drives the remote check-run lifecycle:
//
//	Uncreated -> Created(InProgress) -> {Completed, Cancelled}
//
// plus a FallbackDumped terminal path reachable from Uncreated when
// creation fails in a fork pull-request context. The service owns the
// session for the duration of one Publish call; calls are sequential, one
// update per annotation batch, each batch carrying the full report text
// because the remote API replaces output rather than appending to it.
type CheckRunService struct {
	client domain.CheckClient
	cfg    CheckRunConfig
}

// NewCheckRunService creates a controller for one reporting cycle.
func NewCheckRunService(client domain.CheckClient, cfg CheckRunConfig) *CheckRunService {
	return &CheckRunService{client: client, cfg: cfg}
}

// Publish creates the remote check run, pushes the report and the batched
// annotations, and finalizes the run. On a create failure the error is
// returned unchanged unless the fork flag is set, in which case the parsed
// records are pretty-printed to the fallback writer and the cycle succeeds.
// Any failure after creation triggers one best-effort cancellation update;
// the original error is returned afterwards. No call is ever retried.
func (s *CheckRunService) Publish(ctx context.Context, session *domain.CheckRunSession) error {
	runID, err := s.client.CreateRun(ctx, domain.CreateRunRequest{
		Owner:     s.cfg.Owner,
		Repo:      s.cfg.Repo,
		Name:      s.cfg.Name,
		HeadSHA:   s.cfg.HeadSHA,
		Status:    domain.StatusInProgress,
		StartedAt: session.StartedAt,
	})
	if err != nil {
		if s.cfg.ForkPullRequest {
			return s.dumpFallback(session)
		}
		return err
	}

	if err := s.complete(ctx, runID, session); err != nil {
		s.cancel(ctx, runID)
		return err
	}

	return nil
}

// complete runs the Completed path: one update when no annotations are
// pending, otherwise one update per batch, in order, the last one carrying
// the terminal status. A failed batch aborts the remainder of the cycle.
func (s *CheckRunService) complete(ctx context.Context, runID int64, session *domain.CheckRunSession) error {
	batches := BatchAnnotations(session.Annotations, s.cfg.BatchSize)

	if len(batches) == 0 {
		return s.client.UpdateRun(ctx, s.finalUpdate(runID, session, nil))
	}

	for i, batch := range batches {
		var req domain.UpdateRunRequest
		if i == len(batches)-1 {
			req = s.finalUpdate(runID, session, batch)
		} else {
			req = domain.UpdateRunRequest{
				Owner:  s.cfg.Owner,
				Repo:   s.cfg.Repo,
				Name:   s.cfg.Name,
				RunID:  runID,
				Status: domain.StatusInProgress,
				Output: s.output(session, batch),
			}
		}
		if err := s.client.UpdateRun(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

// finalUpdate builds the terminal completed/success update.
func (s *CheckRunService) finalUpdate(runID int64, session *domain.CheckRunSession, batch []domain.Annotation) domain.UpdateRunRequest {
	return domain.UpdateRunRequest{
		Owner:       s.cfg.Owner,
		Repo:        s.cfg.Repo,
		Name:        s.cfg.Name,
		RunID:       runID,
		Status:      domain.StatusCompleted,
		Conclusion:  domain.ConclusionSuccess,
		CompletedAt: s.now(),
		Output:      s.output(session, batch),
	}
}

// output builds the report body carried by every update call.
func (s *CheckRunService) output(session *domain.CheckRunSession, batch []domain.Annotation) *domain.RunOutput {
	return &domain.RunOutput{
		Title:       s.cfg.Name,
		Summary:     fmt.Sprintf("%d source files analyzed", len(session.Records)),
		Text:        session.Report,
		Annotations: batch,
	}
}

// cancel issues the best-effort cancellation update. Its own failure is
// logged and swallowed so the triggering error reaches the caller intact.
func (s *CheckRunService) cancel(ctx context.Context, runID int64) {
	err := s.client.UpdateRun(ctx, domain.UpdateRunRequest{
		Owner:       s.cfg.Owner,
		Repo:        s.cfg.Repo,
		Name:        s.cfg.Name,
		RunID:       runID,
		Status:      domain.StatusCompleted,
		Conclusion:  domain.ConclusionCancelled,
		CompletedAt: s.now(),
		Output: &domain.RunOutput{
			Title:   s.cfg.Name,
			Summary: cancelledSummary,
			Text:    cancelledText,
		},
	})
	if err != nil {
		log.Logger().Warnw("check run cancellation update failed", "run_id", runID, "error", err)
	}
}

// dumpFallback pretty-prints every parsed top-level record to the fallback
// writer, one JSON document per record, in arrival order.
func (s *CheckRunService) dumpFallback(session *domain.CheckRunSession) error {
	w := s.cfg.FallbackWriter
	if w == nil {
		w = os.Stdout
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	for i := range session.Records {
		if err := enc.Encode(session.Records[i]); err != nil {
			return domain.NewPublishError("failed to write fallback report", err)
		}
	}
	return nil
}

func (s *CheckRunService) now() time.Time {
	if s.cfg.now != nil {
		return s.cfg.now()
	}
	return time.Now()
}
