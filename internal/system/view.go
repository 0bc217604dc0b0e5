package system

import (
	"time"

	coresys "github.com/nightwarden/darkhunt/internal/core/system"
	"github.com/nightwarden/darkhunt/internal/debugview"
)

// FrameSource builds the debug overlay's view of the encounter.
type FrameSource interface {
	Frame() debugview.Frame
}

// ViewSystem redraws the terminal overlay every N ticks. Phase 3 (Output).
type ViewSystem struct {
	src   FrameSource
	view  *debugview.View
	every int
	tick  int
}

func NewViewSystem(src FrameSource, view *debugview.View, every int) *ViewSystem {
	if every < 1 {
		every = 1
	}
	return &ViewSystem{src: src, view: view, every: every}
}

func (s *ViewSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *ViewSystem) Update(_ time.Duration) {
	s.tick++
	if s.tick%s.every != 0 {
		return
	}
	s.view.Draw(s.src.Frame())
}
