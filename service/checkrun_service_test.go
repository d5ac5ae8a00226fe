package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spacecheck-ci/spacecheck/domain"
)

// fakeCheckClient records every API call and can fail on demand.
type fakeCheckClient struct {
	createErr   error
	failAtCall  int // 1-based update call index failing from then on; 0 = never
	updateErr   error
	createCalls []domain.CreateRunRequest
	updateCalls []domain.UpdateRunRequest
}

func (f *fakeCheckClient) CreateRun(_ context.Context, req domain.CreateRunRequest) (int64, error) {
	f.createCalls = append(f.createCalls, req)
	if f.createErr != nil {
		return 0, f.createErr
	}
	return 42, nil
}

func (f *fakeCheckClient) UpdateRun(_ context.Context, req domain.UpdateRunRequest) error {
	f.updateCalls = append(f.updateCalls, req)
	if f.failAtCall != 0 && len(f.updateCalls) >= f.failAtCall {
		return f.updateErr
	}
	return nil
}

func testSession(annotations int) *domain.CheckRunSession {
	session := domain.NewCheckRunSession("tool 1.0", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	session.AddRecord(domain.SpaceRecord{Name: "src/a.rs", Kind: domain.SpaceKindUnit})
	session.AddRecord(domain.SpaceRecord{Name: "src/b.rs", Kind: domain.SpaceKindUnit})
	session.Report = "# tool 1.0\n\nreport body"
	session.AddAnnotations(makeAnnotations(annotations))
	return session
}

func newTestService(client domain.CheckClient, fork bool, fallback *bytes.Buffer) *CheckRunService {
	cfg := CheckRunConfig{
		Owner:           "octo",
		Repo:            "repo",
		Name:            "rust-code-analysis",
		HeadSHA:         "deadbeef",
		ForkPullRequest: fork,
		BatchSize:       50,
		now:             func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) },
	}
	if fallback != nil {
		cfg.FallbackWriter = fallback
	}
	return NewCheckRunService(client, cfg)
}

func TestCheckRunServiceNoAnnotations(t *testing.T) {
	client := &fakeCheckClient{}
	svc := newTestService(client, false, nil)

	if err := svc.Publish(context.Background(), testSession(0)); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if len(client.createCalls) != 1 {
		t.Fatalf("create calls = %d, want 1", len(client.createCalls))
	}
	create := client.createCalls[0]
	if create.Status != domain.StatusInProgress {
		t.Errorf("create status = %q, want in_progress", create.Status)
	}
	if create.Owner != "octo" || create.Repo != "repo" || create.HeadSHA != "deadbeef" {
		t.Errorf("create coordinates wrong: %+v", create)
	}

	if len(client.updateCalls) != 1 {
		t.Fatalf("update calls = %d, want 1", len(client.updateCalls))
	}
	final := client.updateCalls[0]
	if final.RunID != 42 {
		t.Errorf("final.RunID = %d, want 42", final.RunID)
	}
	if final.Status != domain.StatusCompleted || final.Conclusion != domain.ConclusionSuccess {
		t.Errorf("final status/conclusion = %q/%q, want completed/success", final.Status, final.Conclusion)
	}
	if final.CompletedAt.IsZero() {
		t.Error("final update has no completion timestamp")
	}
	if final.Output == nil || len(final.Output.Annotations) != 0 {
		t.Errorf("final output = %+v, want empty annotation list", final.Output)
	}
	if final.Output.Summary != "2 source files analyzed" {
		t.Errorf("final summary = %q", final.Output.Summary)
	}
}

func TestCheckRunServiceBatchedUpdates(t *testing.T) {
	client := &fakeCheckClient{}
	svc := newTestService(client, false, nil)
	session := testSession(120)

	if err := svc.Publish(context.Background(), session); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if len(client.updateCalls) != 3 {
		t.Fatalf("update calls = %d, want 3", len(client.updateCalls))
	}

	sizes := []int{50, 50, 20}
	next := 0
	for i, call := range client.updateCalls {
		if call.Output == nil {
			t.Fatalf("update %d has no output", i)
		}
		if len(call.Output.Annotations) != sizes[i] {
			t.Errorf("update %d carries %d annotations, want %d", i, len(call.Output.Annotations), sizes[i])
		}
		// Full report text is repeated on every update
		if call.Output.Text != session.Report {
			t.Errorf("update %d does not carry the full report text", i)
		}
		// FIFO across batches
		for _, a := range call.Output.Annotations {
			if a.Title != makeAnnotations(120)[next].Title {
				t.Fatalf("update %d out of order at annotation %d", i, next)
			}
			next++
		}

		if i < len(client.updateCalls)-1 {
			if call.Status != domain.StatusInProgress || call.Conclusion != "" {
				t.Errorf("update %d = %q/%q, want in_progress with no conclusion", i, call.Status, call.Conclusion)
			}
		} else {
			if call.Status != domain.StatusCompleted || call.Conclusion != domain.ConclusionSuccess {
				t.Errorf("final update = %q/%q, want completed/success", call.Status, call.Conclusion)
			}
		}
	}
}

func TestCheckRunServiceCreateFailureFork(t *testing.T) {
	client := &fakeCheckClient{createErr: errors.New("403 Resource not accessible by integration")}
	var fallback bytes.Buffer
	svc := newTestService(client, true, &fallback)
	session := testSession(10)

	if err := svc.Publish(context.Background(), session); err != nil {
		t.Fatalf("Publish() error = %v, want nil on fork fallback", err)
	}

	if len(client.updateCalls) != 0 {
		t.Errorf("update calls = %d, want 0", len(client.updateCalls))
	}

	// One pretty-printed JSON document per record, in arrival order
	dec := json.NewDecoder(strings.NewReader(fallback.String()))
	var names []string
	for dec.More() {
		var rec domain.SpaceRecord
		if err := dec.Decode(&rec); err != nil {
			t.Fatalf("fallback dump is not valid JSON: %v", err)
		}
		names = append(names, rec.Name)
	}
	if len(names) != 2 || names[0] != "src/a.rs" || names[1] != "src/b.rs" {
		t.Errorf("fallback records = %v, want [src/a.rs src/b.rs]", names)
	}
	if !strings.Contains(fallback.String(), "\n  ") {
		t.Error("fallback dump is not indented")
	}
}

func TestCheckRunServiceCreateFailureNoFork(t *testing.T) {
	createErr := errors.New("401 Bad credentials")
	client := &fakeCheckClient{createErr: createErr}
	var fallback bytes.Buffer
	svc := newTestService(client, false, &fallback)

	err := svc.Publish(context.Background(), testSession(10))
	if !errors.Is(err, createErr) {
		t.Fatalf("Publish() error = %v, want the create error unchanged", err)
	}

	if len(client.updateCalls) != 0 {
		t.Errorf("update calls = %d, want 0", len(client.updateCalls))
	}
	if fallback.Len() != 0 {
		t.Error("fallback dump written outside a fork pull request")
	}
}

func TestCheckRunServiceMidCycleFailureCancels(t *testing.T) {
	updateErr := errors.New("502 Bad Gateway")
	client := &fakeCheckClient{failAtCall: 2, updateErr: updateErr}
	svc := newTestService(client, false, nil)

	err := svc.Publish(context.Background(), testSession(120))
	if !errors.Is(err, updateErr) {
		t.Fatalf("Publish() error = %v, want the update error unchanged", err)
	}

	// Calls: batch 1 ok, batch 2 fails, then exactly one cancellation
	if len(client.updateCalls) != 3 {
		t.Fatalf("update calls = %d, want 3 (two batches + cancellation)", len(client.updateCalls))
	}

	cancel := client.updateCalls[2]
	if cancel.Status != domain.StatusCompleted || cancel.Conclusion != domain.ConclusionCancelled {
		t.Errorf("cancellation = %q/%q, want completed/cancelled", cancel.Status, cancel.Conclusion)
	}
	if cancel.Output == nil {
		t.Fatal("cancellation update has no output")
	}
	if cancel.Output.Summary != cancelledSummary {
		t.Errorf("cancellation summary = %q, want %q", cancel.Output.Summary, cancelledSummary)
	}
	if cancel.Output.Text != cancelledText {
		t.Errorf("cancellation text = %q, want %q", cancel.Output.Text, cancelledText)
	}
	if len(cancel.Output.Annotations) != 0 {
		t.Errorf("cancellation carries %d annotations, want 0", len(cancel.Output.Annotations))
	}
}

func TestCheckRunServiceCancellationFailureSwallowed(t *testing.T) {
	updateErr := errors.New("502 Bad Gateway")
	client := &fakeCheckClient{failAtCall: 1, updateErr: updateErr}
	svc := newTestService(client, false, nil)

	// Both the batch update and the cancellation fail with the same injected
	// error; the original failure must still surface.
	err := svc.Publish(context.Background(), testSession(10))
	if !errors.Is(err, updateErr) {
		t.Fatalf("Publish() error = %v, want the original update error", err)
	}
}
