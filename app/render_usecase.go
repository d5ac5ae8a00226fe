package app

import (
	"context"
	"fmt"
	"io"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/spacecheck-ci/spacecheck/domain"
)

// RenderUseCase renders the markdown report locally without touching the
// Checks API, for previewing the report or piping it elsewhere.
type RenderUseCase struct {
	source   domain.RecordSource
	parser   domain.RecordParser
	renderer domain.ReportRenderer
}

// NewRenderUseCase creates a new render use case
func NewRenderUseCase(source domain.RecordSource, parser domain.RecordParser, renderer domain.ReportRenderer) *RenderUseCase {
	return &RenderUseCase{
		source:   source,
		parser:   parser,
		renderer: renderer,
	}
}

// Execute streams the record source, renders the report and writes it to w.
func (uc *RenderUseCase) Execute(ctx context.Context, req domain.ReportRequest, w io.Writer) error {
	var matcher *ignore.GitIgnore
	if len(req.ExcludePatterns) > 0 {
		matcher = ignore.CompileIgnoreLines(req.ExcludePatterns...)
	}

	var records []domain.SpaceRecord
	exitCode, err := uc.source.Stream(ctx, func(line string) {
		rec, ok := uc.parser.Parse(line)
		if !ok {
			return
		}
		if matcher != nil && matcher.MatchesPath(rec.Name) {
			return
		}
		records = append(records, *rec)
	})
	if err != nil {
		return domain.NewToolError("failed to read analysis output", err)
	}

	if _, err := io.WriteString(w, uc.renderer.Render(records, req.VersionLabel)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if exitCode != 0 {
		return domain.NewToolError(fmt.Sprintf("analysis tool exited with code %d", exitCode), nil)
	}
	return nil
}
