package service

import (
	"github.com/spacecheck-ci/spacecheck/domain"
)

// AnnotationExtractor flattens a space tree into the ordered annotation
// list published alongside the report. The top-level record itself produces
// no annotation (its metrics are already the report body) but every
// descendant does, in depth-first document order so the sequence is
// reproducible.
type AnnotationExtractor struct{}

// NewAnnotationExtractor creates a new annotation extractor.
func NewAnnotationExtractor() *AnnotationExtractor {
	return &AnnotationExtractor{}
}

// Extract walks every descendant of root and produces one informational
// annotation per space: the path is the top-level record's name, line
// bounds are copied from the descendant, and the message is a one-line
// metrics digest.
func (e *AnnotationExtractor) Extract(root *domain.SpaceRecord) []domain.Annotation {
	anns := make([]domain.Annotation, 0, root.CountSpaces())
	for i := range root.Spaces {
		anns = e.walk(root.Name, &root.Spaces[i], anns)
	}
	return anns
}

func (e *AnnotationExtractor) walk(path string, rec *domain.SpaceRecord, anns []domain.Annotation) []domain.Annotation {
	anns = append(anns, domain.Annotation{
		Path:      path,
		StartLine: rec.StartLine,
		EndLine:   rec.EndLine,
		Level:     domain.AnnotationLevelNotice,
		Title:     rec.DisplayName(),
		Message:   summarizeMetrics(rec.Metrics),
	})

	for i := range rec.Spaces {
		anns = e.walk(path, &rec.Spaces[i], anns)
	}
	return anns
}
