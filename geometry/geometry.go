// Package geometry defines the measurement contract between the pagination
// engine and whatever renders the element tree. The engine depends only on
// this contract - bounding boxes in a shared coordinate space plus an
// effective scale factor - never on renderer internals, so a synthetic
// estimator can stand in for a real renderer.
package geometry

import (
	"context"

	"github.com/beevik/etree"
)

// Box is an element bounding box in the shared coordinate space. Scale is the
// effective scale factor the coordinates were produced under; Norm undoes it.
type Box struct {
	Top    float64
	Bottom float64
	Scale  float64
}

// Zero reports an unmeasured box (element not rendered yet). The engine
// treats such elements as not overflowing; a later sweep re-measures.
func (b Box) Zero() bool {
	return b.Top == 0 && b.Bottom == 0
}

func (b Box) Height() float64 {
	return b.Bottom - b.Top
}

// Norm returns the box in layout units, dividing out the scale factor.
func (b Box) Norm() Box {
	if b.Scale == 0 || b.Scale == 1 {
		b.Scale = 1
		return b
	}
	return Box{Top: b.Top / b.Scale, Bottom: b.Bottom / b.Scale, Scale: 1}
}

// Oracle is the external measurement source. Measure returns the current box
// of el, recomputed from the live tree - implementations must not cache
// measurements across tree mutations. Sync blocks until geometry reflects all
// prior mutations (for a real renderer this is the re-paint tick; synthetic
// implementations return immediately).
type Oracle interface {
	Measure(el *etree.Element) Box
	Sync(ctx context.Context) error
}
