package paginate

import (
	"github.com/beevik/etree"
	"go.uber.org/zap"

	"repage/dom"
)

// split cuts a splittable container at the first sub-child whose bottom edge
// crosses boundaryY. The container keeps the fitting head; the returned
// remainder (a detached shell carrying the rest) shares the container's
// split-group id. Returns nil when no cut is possible: non-splittable type,
// fewer than two sub-children, nothing crosses, or even the first sub-child
// overflows - the caller falls back to moving the whole container.
func (e *Engine) split(c *etree.Element, boundaryY float64) *etree.Element {
	if !dom.IsSplittable(c) {
		return nil
	}
	subs := c.ChildElements()
	if len(subs) < 2 {
		return nil
	}
	cut := -1
	for i, sub := range subs {
		b := e.measure(sub)
		if b.Zero() {
			continue
		}
		if b.Bottom > boundaryY+e.cfg.Tolerance {
			cut = i
			break
		}
	}
	if cut <= 0 {
		return nil
	}

	id := e.stampSplit(c)
	remainder := dom.CloneShell(c) // shares the split-group id with c
	dom.MoveElementsFrom(remainder, c, cut)

	e.log.Debug("Split container",
		zap.String("tag", c.Tag), zap.String("group", id),
		zap.Int("kept", cut), zap.Int("moved", len(subs)-cut))
	return remainder
}

// splitDeep splits el at boundaryY, descending into nested splittable
// containers when el itself cannot be cut. Each level of descent wraps the
// inner remainder in a shallow clone of its parent shell, so the remainder
// keeps the original nesting. Depth is bounded to survive deeply nested
// imported markup.
func (e *Engine) splitDeep(el *etree.Element, boundaryY float64, depth int) *etree.Element {
	if rem := e.split(el, boundaryY); rem != nil {
		return rem
	}
	if depth <= 0 || !dom.IsSplittable(el) {
		return nil
	}

	// Find the first sub-child crossing the boundary and try to cut inside it.
	subs := el.ChildElements()
	idx := -1
	for i, sub := range subs {
		b := e.measure(sub)
		if b.Zero() {
			continue
		}
		if b.Bottom > boundaryY+e.cfg.Tolerance {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	inner := e.splitDeep(subs[idx], boundaryY, depth-1)
	if inner == nil {
		return nil
	}

	e.stampSplit(el)
	wrapper := dom.CloneShell(el)
	wrapper.AddChild(inner)
	// Nested siblings after the split point travel with the remainder.
	dom.MoveElementsFrom(wrapper, el, idx+1)
	return wrapper
}

// trySplitOverflow finds the last flow child crossing the page's content
// boundary and attempts to split it (directly, then through nested
// containers). On success the remainder becomes the first flow child of the
// next page; nextPage is invoked lazily so no page is created when every
// split fails.
func (e *Engine) trySplitOverflow(page *etree.Element, nextPage func() *etree.Element) bool {
	boundary, ok := e.contentBoundary(page)
	if !ok {
		return false
	}

	var target *etree.Element
	for _, el := range dom.FlowChildren(page) {
		b := e.measure(el)
		if b.Zero() {
			continue
		}
		if b.Bottom > boundary+e.cfg.Tolerance {
			target = el
		}
	}
	if target == nil {
		return false
	}

	remainder := e.splitDeep(target, boundary, e.cfg.MaxSplitDepth)
	if remainder == nil {
		return false
	}
	dom.MoveToFront(nextPage(), remainder)
	return true
}
