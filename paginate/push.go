package paginate

import (
	"github.com/beevik/etree"
	"go.uber.org/zap"

	"repage/dom"
)

// pushPage moves trailing overflowing elements of page onto the next page,
// splitting where possible and creating a next page on demand, until the page
// no longer overflows or nothing more can be done.
func (e *Engine) pushPage(root, page *etree.Element, b *budget) bool {
	changed := false
	for e.IsOverflowing(page) {
		if !b.step() {
			break
		}
		flow := dom.FlowChildren(page)
		if len(flow) == 0 {
			break
		}
		next := func() *etree.Element { return e.ensureNextPage(root, page) }

		if len(flow) == 1 {
			// Nothing to push behind a single child: either it splits, or the
			// overflow is tolerated in place (atomic content taller than a
			// page has no split semantics).
			if !e.trySplitOverflow(page, next) {
				break
			}
			changed = true
			continue
		}

		last := flow[len(flow)-1]
		boundary, ok := e.contentBoundary(page)
		if !ok {
			break
		}
		lb := e.measure(last)
		if dom.IsSplittable(last) && !lb.Zero() && lb.Top < boundary-e.cfg.Tolerance {
			// The container partially fits - prefer cutting it over moving it
			// whole.
			if e.trySplitOverflow(page, next) {
				changed = true
				continue
			}
		}
		dom.MoveToFront(next(), last)
		changed = true
	}
	return changed
}

// ensureNextPage returns the page following page, creating one immediately
// after it when page is the last.
func (e *Engine) ensureNextPage(root, page *etree.Element) *etree.Element {
	pages := dom.Pages(root)
	for i, p := range pages {
		if p == page && i+1 < len(pages) {
			return pages[i+1]
		}
	}
	next := dom.CloneShell(page)
	dom.ClearSplitID(next)
	if e.cfg.Footers.Clone() {
		if f := dom.Footer(page); f != nil {
			next.AddChild(f.Copy())
		}
	}
	dom.InsertAfter(page, next)
	e.log.Debug("Created page", zap.Int("count", len(pages)+1))
	return next
}
