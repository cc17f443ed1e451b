package paginate

import (
	"github.com/beevik/etree"

	"repage/dom"
)

// pullPage moves leading flow children of next back onto page while space
// remains, re-merging split pairs the moment they become adjacent so a
// reunited element cannot be re-split by a later pass. A page drained to zero
// flow children is removed (it is never the first page - pulling always
// targets a follower).
func (e *Engine) pullPage(page, next *etree.Element, b *budget) bool {
	changed := false
	for {
		first := dom.FirstFlowChild(next)
		if first == nil {
			break
		}
		if !e.HasSpace(page, e.cfg.PullThreshold) {
			break
		}
		if !b.step() {
			break
		}

		dom.AppendBeforeFooter(page, first)
		if e.IsOverflowing(page) {
			// Does not fit after all - put it back and stop.
			dom.MoveToFront(next, first)
			break
		}
		changed = true

		if prev := prevFlowSibling(first); prev != nil {
			e.mergeSplitPair(prev, first)
		}
	}

	if len(dom.FlowChildren(next)) == 0 {
		dom.Detach(next)
		e.log.Debug("Removed drained page")
		changed = true
	}
	return changed
}

// prevFlowSibling returns the flow child immediately preceding el on its
// page, or nil when el leads the flow.
func prevFlowSibling(el *etree.Element) *etree.Element {
	parent := el.Parent()
	if parent == nil {
		return nil
	}
	var prev *etree.Element
	for _, sib := range parent.ChildElements() {
		if sib == el {
			return prev
		}
		if dom.IsFlowChild(sib) {
			prev = sib
		}
	}
	return nil
}
