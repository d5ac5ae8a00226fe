package app

import (
	"context"
	"fmt"
	"time"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/spacecheck-ci/spacecheck/domain"
)

// ReportUseCase orchestrates one reporting cycle: stream the analysis tool's
// output, parse and filter the records, render the report, extract the
// annotations and publish everything as a remote check run.
type ReportUseCase struct {
	source    domain.RecordSource
	parser    domain.RecordParser
	renderer  domain.ReportRenderer
	extractor domain.AnnotationExtractor
	publisher domain.CheckPublisher
	progress  domain.ProgressManager

	// now is injectable for tests; time.Now when nil
	now func() time.Time
}

// NewReportUseCase creates a new report use case
func NewReportUseCase(
	source domain.RecordSource,
	parser domain.RecordParser,
	renderer domain.ReportRenderer,
	extractor domain.AnnotationExtractor,
	publisher domain.CheckPublisher,
	progress domain.ProgressManager,
) *ReportUseCase {
	return &ReportUseCase{
		source:    source,
		parser:    parser,
		renderer:  renderer,
		extractor: extractor,
		publisher: publisher,
		progress:  progress,
	}
}

// Execute performs the complete reporting workflow. A non-zero tool exit
// code does not abort the cycle: the records gathered so far are still
// published, then the failure is reported to the caller.
func (uc *ReportUseCase) Execute(ctx context.Context, req domain.ReportRequest) (*domain.ReportResponse, error) {
	session, exitCode, err := uc.collect(ctx, req)
	if err != nil {
		return nil, err
	}

	session.Report = uc.renderer.Render(session.Records, req.VersionLabel)
	for i := range session.Records {
		session.AddAnnotations(uc.extractor.Extract(&session.Records[i]))
	}

	if err := uc.publisher.Publish(ctx, session); err != nil {
		return nil, err
	}

	resp := &domain.ReportResponse{
		FileCount:       len(session.Records),
		AnnotationCount: len(session.Annotations),
		ToolExitCode:    exitCode,
	}
	if exitCode != 0 {
		return resp, domain.NewToolError(fmt.Sprintf("analysis tool exited with code %d", exitCode), nil)
	}
	return resp, nil
}

// collect streams the tool output into a fresh session, dropping lines that
// are not records and records excluded by the configured patterns.
func (uc *ReportUseCase) collect(ctx context.Context, req domain.ReportRequest) (*domain.CheckRunSession, int, error) {
	var matcher *ignore.GitIgnore
	if len(req.ExcludePatterns) > 0 {
		matcher = ignore.CompileIgnoreLines(req.ExcludePatterns...)
	}

	task := uc.progress.StartTask("analyzing sources", -1)
	defer task.Complete()

	session := domain.NewCheckRunSession(req.VersionLabel, uc.startTime())

	exitCode, err := uc.source.Stream(ctx, func(line string) {
		rec, ok := uc.parser.Parse(line)
		if !ok {
			return
		}
		if matcher != nil && matcher.MatchesPath(rec.Name) {
			return
		}
		session.AddRecord(*rec)
		task.Describe(rec.Name)
		task.Increment(1)
	})
	if err != nil {
		return nil, exitCode, domain.NewToolError("failed to read analysis output", err)
	}

	return session, exitCode, nil
}

func (uc *ReportUseCase) startTime() time.Time {
	if uc.now != nil {
		return uc.now()
	}
	return time.Now()
}
