package service

import (
	"github.com/spacecheck-ci/spacecheck/domain"
)

// BatchAnnotations partitions annotations into successive pages of at most
// size entries, preserving relative order across pages. The remote API
// rejects updates carrying more annotations than its per-call cap, so this
// is a protocol-compliance concern; the cap is configuration, not a
// constant baked into call sites. An empty input yields no pages.
func BatchAnnotations(annotations []domain.Annotation, size int) [][]domain.Annotation {
	if size <= 0 || len(annotations) == 0 {
		return nil
	}

	pages := make([][]domain.Annotation, 0, (len(annotations)+size-1)/size)
	for start := 0; start < len(annotations); start += size {
		end := start + size
		if end > len(annotations) {
			end = len(annotations)
		}
		pages = append(pages, annotations[start:end])
	}
	return pages
}
