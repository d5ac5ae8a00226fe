package domain

import (
	"testing"
	"time"
)

func TestSpaceRecordDisplayName(t *testing.T) {
	tests := []struct {
		name string
		rec  SpaceRecord
		want string
	}{
		{"regular name", SpaceRecord{Name: "main"}, "main"},
		{"anonymous sentinel", SpaceRecord{Name: AnonymousName}, AnonymousLabel},
		{"empty name", SpaceRecord{Name: ""}, AnonymousLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpaceRecordCountSpaces(t *testing.T) {
	leaf := SpaceRecord{Name: "leaf"}
	if !leaf.IsLeaf() {
		t.Error("record without spaces is not a leaf")
	}
	if got := leaf.CountSpaces(); got != 0 {
		t.Errorf("CountSpaces() = %d, want 0", got)
	}

	root := SpaceRecord{
		Name: "src/a.rs",
		Spaces: []SpaceRecord{
			{Name: "f", Spaces: []SpaceRecord{{Name: "g"}, {Name: "h"}}},
			{Name: "i"},
		},
	}
	if root.IsLeaf() {
		t.Error("record with spaces reported as leaf")
	}
	if got := root.CountSpaces(); got != 4 {
		t.Errorf("CountSpaces() = %d, want 4", got)
	}
}

func TestCheckRunSessionAccumulation(t *testing.T) {
	started := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	session := NewCheckRunSession("tool 1.0", started)

	if session.Version != "tool 1.0" || !session.StartedAt.Equal(started) {
		t.Errorf("session header = %q/%v", session.Version, session.StartedAt)
	}

	session.AddRecord(SpaceRecord{Name: "a"})
	session.AddRecord(SpaceRecord{Name: "b"})
	if len(session.Records) != 2 || session.Records[0].Name != "a" {
		t.Errorf("records = %+v, want arrival order preserved", session.Records)
	}

	session.AddAnnotations([]Annotation{{Title: "1"}, {Title: "2"}})
	session.AddAnnotations([]Annotation{{Title: "3"}})
	if len(session.Annotations) != 3 || session.Annotations[2].Title != "3" {
		t.Errorf("annotations = %+v, want FIFO order", session.Annotations)
	}
}
