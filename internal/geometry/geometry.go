// Package geometry derives the backdrop image height of a title page from
// measured element sizes.
//
// In the full page presentation the image fills the viewport minus a slice
// of the bottom region, so the lower content peeks above the fold. In the
// modal presentation the image is exactly as tall as the top region.
package geometry

import "fmt"

// BottomPeekRatio is the share of the bottom region that stays visible
// above the fold in full page mode.
const BottomPeekRatio = 0.3

// Mode is the page presentation.
type Mode int

const (
	// ModeFull is the full page presentation.
	ModeFull Mode = iota
	// ModeModal is the overlay presentation.
	ModeModal
)

// String returns the wire name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeModal:
		return "modal"
	default:
		return "full"
	}
}

// ParseMode converts a wire name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "full", "":
		return ModeFull, nil
	case "modal":
		return ModeModal, nil
	default:
		return ModeFull, fmt.Errorf("unknown presentation mode %q", s)
	}
}

// Input is one snapshot of measured sizes in pixels.
type Input struct {
	TopHeight      float64
	BottomHeight   float64
	ViewportHeight float64
	Mode           Mode
}

// Resolve returns the image height for the snapshot.
func (in Input) Resolve() float64 {
	return Resolve(in.TopHeight, in.BottomHeight, in.ViewportHeight, in.Mode)
}

// Resolve returns the image height for the given sizes. Zero sizes are
// valid and occur before the first measurement.
func Resolve(top, bottom, viewport float64, mode Mode) float64 {
	if mode == ModeModal {
		return top
	}
	return viewport - bottom*BottomPeekRatio
}
