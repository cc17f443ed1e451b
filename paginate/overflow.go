package paginate

import (
	"github.com/beevik/etree"

	"repage/dom"
)

// contentBoundary returns the page's content boundary in layout units: page
// bottom edge minus reserved padding minus footer height. ok is false when
// the page has not been measured yet.
func (e *Engine) contentBoundary(page *etree.Element) (float64, bool) {
	pb := e.measure(page)
	if pb.Zero() || pb.Height() <= 0 {
		return 0, false
	}
	boundary := pb.Bottom - e.cfg.InsetBottom
	if f := dom.Footer(page); f != nil {
		if fb := e.measure(f); !fb.Zero() && fb.Height() > 0 {
			boundary -= fb.Height()
		}
	}
	return boundary, true
}

// flowBottom returns the bottom edge of the last measurable flow child.
func (e *Engine) flowBottom(page *etree.Element) (float64, bool) {
	flow := dom.FlowChildren(page)
	for i := len(flow) - 1; i >= 0; i-- {
		if b := e.measure(flow[i]); !b.Zero() {
			return b.Bottom, true
		}
	}
	return 0, false
}

// IsOverflowing reports whether the page's flowed content extends past its
// content boundary by more than the configured tolerance. Unmeasured pages
// and elements never count as overflowing - a later sweep re-measures.
func (e *Engine) IsOverflowing(page *etree.Element) bool {
	boundary, ok := e.contentBoundary(page)
	if !ok {
		return false
	}
	bottom, ok := e.flowBottom(page)
	if !ok {
		return false
	}
	return bottom > boundary+e.cfg.Tolerance
}

// HasSpace reports whether the gap between the page's last flow child and its
// content boundary exceeds threshold. An empty page offers its whole content
// area.
func (e *Engine) HasSpace(page *etree.Element, threshold float64) bool {
	boundary, ok := e.contentBoundary(page)
	if !ok {
		return false
	}
	bottom, haveFlow := e.flowBottom(page)
	if !haveFlow {
		bottom = e.measure(page).Top + e.cfg.InsetTop
	}
	return boundary-bottom > threshold
}
