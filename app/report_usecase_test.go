package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/spacecheck-ci/spacecheck/domain"
)

// fakeSource replays canned lines and exits with a fixed code.
type fakeSource struct {
	lines    []string
	exitCode int
	err      error
}

func (f *fakeSource) Stream(_ context.Context, handle func(line string)) (int, error) {
	if f.err != nil {
		return -1, f.err
	}
	for _, line := range f.lines {
		handle(line)
	}
	return f.exitCode, nil
}

// fakeParser accepts lines of the form "rec:<name>" and drops everything else.
type fakeParser struct{}

func (fakeParser) Parse(line string) (*domain.SpaceRecord, bool) {
	name, ok := strings.CutPrefix(line, "rec:")
	if !ok {
		return nil, false
	}
	return &domain.SpaceRecord{
		Name: name,
		Kind: domain.SpaceKindUnit,
		Spaces: []domain.SpaceRecord{
			{Name: name + "#fn", Kind: domain.SpaceKindFunction, StartLine: 1, EndLine: 2},
		},
	}, true
}

type fakeRenderer struct{}

func (fakeRenderer) Render(records []domain.SpaceRecord, versionLabel string) string {
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Name)
	}
	return fmt.Sprintf("# %s: %s", versionLabel, strings.Join(names, ","))
}

type fakeExtractor struct{}

func (fakeExtractor) Extract(root *domain.SpaceRecord) []domain.Annotation {
	anns := make([]domain.Annotation, 0, len(root.Spaces))
	for _, s := range root.Spaces {
		anns = append(anns, domain.Annotation{Path: root.Name, Title: s.Name, Level: domain.AnnotationLevelNotice})
	}
	return anns
}

type fakePublisher struct {
	session *domain.CheckRunSession
	err     error
}

func (f *fakePublisher) Publish(_ context.Context, session *domain.CheckRunSession) error {
	f.session = session
	return f.err
}

type noOpProgress struct{}

func (noOpProgress) StartTask(string, int) domain.TaskProgress { return noOpTask{} }
func (noOpProgress) IsInteractive() bool                       { return false }
func (noOpProgress) Close()                                    {}

type noOpTask struct{}

func (noOpTask) Increment(int)   {}
func (noOpTask) Describe(string) {}
func (noOpTask) Complete()       {}

func newTestUseCase(source domain.RecordSource, publisher domain.CheckPublisher) *ReportUseCase {
	return NewReportUseCase(source, fakeParser{}, fakeRenderer{}, fakeExtractor{}, publisher, noOpProgress{})
}

func TestReportUseCaseExecute(t *testing.T) {
	source := &fakeSource{lines: []string{
		"rec:src/a.rs",
		"diagnostic noise",
		"rec:src/b.rs",
	}}
	publisher := &fakePublisher{}
	uc := newTestUseCase(source, publisher)

	resp, err := uc.Execute(context.Background(), domain.ReportRequest{VersionLabel: "tool 1.0"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if resp.FileCount != 2 {
		t.Errorf("FileCount = %d, want 2", resp.FileCount)
	}
	if resp.AnnotationCount != 2 {
		t.Errorf("AnnotationCount = %d, want 2", resp.AnnotationCount)
	}
	if resp.ToolExitCode != 0 {
		t.Errorf("ToolExitCode = %d, want 0", resp.ToolExitCode)
	}

	if publisher.session == nil {
		t.Fatal("publisher never received a session")
	}
	if publisher.session.Report != "# tool 1.0: src/a.rs,src/b.rs" {
		t.Errorf("session.Report = %q", publisher.session.Report)
	}
	if len(publisher.session.Annotations) != 2 {
		t.Fatalf("session carries %d annotations, want 2", len(publisher.session.Annotations))
	}
	if publisher.session.Annotations[0].Title != "src/a.rs#fn" {
		t.Errorf("annotations out of order: %q first", publisher.session.Annotations[0].Title)
	}
}

func TestReportUseCaseExcludePatterns(t *testing.T) {
	source := &fakeSource{lines: []string{
		"rec:src/a.rs",
		"rec:target/debug/gen.rs",
		"rec:vendor/dep/lib.rs",
	}}
	publisher := &fakePublisher{}
	uc := newTestUseCase(source, publisher)

	resp, err := uc.Execute(context.Background(), domain.ReportRequest{
		VersionLabel:    "tool",
		ExcludePatterns: []string{"target", "vendor"},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if resp.FileCount != 1 {
		t.Errorf("FileCount = %d, want 1 after exclusion", resp.FileCount)
	}
	if len(publisher.session.Records) != 1 || publisher.session.Records[0].Name != "src/a.rs" {
		t.Errorf("records after exclusion = %+v", publisher.session.Records)
	}
}

func TestReportUseCaseToolFailureStillPublishes(t *testing.T) {
	source := &fakeSource{lines: []string{"rec:src/a.rs"}, exitCode: 1}
	publisher := &fakePublisher{}
	uc := newTestUseCase(source, publisher)

	resp, err := uc.Execute(context.Background(), domain.ReportRequest{VersionLabel: "tool"})
	if err == nil {
		t.Fatal("Execute() succeeded despite a tool failure")
	}

	var domainErr *domain.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != domain.ErrCodeToolError {
		t.Fatalf("error = %v, want a tool error", err)
	}

	// Partial results were still published before the failure was reported
	if publisher.session == nil {
		t.Fatal("tool failure prevented publishing")
	}
	if resp == nil || resp.ToolExitCode != 1 {
		t.Errorf("resp = %+v, want exit code 1", resp)
	}
}

func TestReportUseCasePublishFailurePassedThrough(t *testing.T) {
	pubErr := errors.New("403 Resource not accessible by integration")
	source := &fakeSource{lines: []string{"rec:src/a.rs"}}
	uc := newTestUseCase(source, &fakePublisher{err: pubErr})

	_, err := uc.Execute(context.Background(), domain.ReportRequest{VersionLabel: "tool"})
	if !errors.Is(err, pubErr) {
		t.Fatalf("Execute() error = %v, want the publish error unchanged", err)
	}
}

func TestReportUseCaseStreamFailure(t *testing.T) {
	streamErr := errors.New("broken pipe")
	publisher := &fakePublisher{}
	uc := newTestUseCase(&fakeSource{err: streamErr}, publisher)

	_, err := uc.Execute(context.Background(), domain.ReportRequest{VersionLabel: "tool"})
	if err == nil {
		t.Fatal("Execute() succeeded despite a stream failure")
	}
	if !errors.Is(err, streamErr) {
		t.Errorf("error = %v, want wrapped stream error", err)
	}
	if publisher.session != nil {
		t.Error("session published despite a stream failure")
	}
}

func TestRenderUseCaseExecute(t *testing.T) {
	source := &fakeSource{lines: []string{"rec:src/a.rs", "noise", "rec:src/b.rs"}}
	uc := NewRenderUseCase(source, fakeParser{}, fakeRenderer{})

	var out bytes.Buffer
	err := uc.Execute(context.Background(), domain.ReportRequest{VersionLabel: "tool"}, &out)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if out.String() != "# tool: src/a.rs,src/b.rs" {
		t.Errorf("rendered output = %q", out.String())
	}
}
