package domain

// RecordParser turns one line of tool output into a metrics record.
// The boolean is false for lines that are not valid records.
type RecordParser interface {
	Parse(line string) (*SpaceRecord, bool)
}

// ReportRenderer renders the collected records as a markdown report.
type ReportRenderer interface {
	Render(records []SpaceRecord, versionLabel string) string
}

// AnnotationExtractor flattens the space tree of a record into annotations.
type AnnotationExtractor interface {
	Extract(root *SpaceRecord) []Annotation
}

// ReportRequest carries the inputs of one reporting cycle.
type ReportRequest struct {
	// VersionLabel heads the rendered report, typically the tool's
	// --version line
	VersionLabel string

	// ExcludePatterns are gitignore-style patterns; records whose file
	// path matches are dropped before rendering
	ExcludePatterns []string
}

// ReportResponse summarizes a completed reporting cycle.
type ReportResponse struct {
	// FileCount is the number of records that survived filtering
	FileCount int

	// AnnotationCount is the number of extracted annotations
	AnnotationCount int

	// ToolExitCode is the analysis tool's exit code; non-zero means the
	// tool failed after the report was still published
	ToolExitCode int
}
