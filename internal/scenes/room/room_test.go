package room

import (
	"testing"
	"time"

	"github.com/vovakirdan/numhunt/internal/core"
	"github.com/vovakirdan/numhunt/internal/registry"
)

func TestRegistered(t *testing.T) {
	s, err := registry.Create(ID)
	if err != nil {
		t.Fatal(err)
	}
	if s.ID() != ID {
		t.Errorf("ID() = %q", s.ID())
	}
}

func TestWallsStayOutsideViewerClearance(t *testing.T) {
	s := New()
	s.Reset(3)
	anchors := s.Discover(time.Hour)
	if len(anchors) != surfaces {
		t.Fatalf("%d anchors, expected %d", len(anchors), surfaces)
	}

	for at := time.Duration(0); at < 2*lap; at += 500 * time.Millisecond {
		viewer := s.Viewer(at)
		if r := core.Distance(viewer, core.V3(0, viewerY, 0)); r > walkR+1e-9 {
			t.Fatalf("viewer left the walking circle at %v", at)
		}
		for _, a := range anchors {
			if d := core.Distance(viewer, a.Position); d <= 1.5 {
				t.Errorf("%s is %.2f from the viewer at %v", a.ID, d, at)
			}
		}
	}
}
