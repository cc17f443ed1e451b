package paginate

import (
	"github.com/beevik/etree"
	"go.uber.org/zap"

	"repage/dom"
)

// mergeSplitPair reunites two adjacent fragments of one split group: all of
// b's sub-children move into a and b is removed. The split-group id (and its
// diagnostic snapshot) is cleared only once no other fragment of the group
// remains in the document, so a group split more than once keeps its identity
// through intermediate merges.
func (e *Engine) mergeSplitPair(a, b *etree.Element) bool {
	id := dom.SplitID(a)
	if id == "" || id != dom.SplitID(b) || a.Tag != b.Tag {
		return false
	}
	seam := len(a.ChildElements())
	dom.MoveChildren(a, b)
	dom.Detach(b)
	e.mergeSeam(a, seam, e.cfg.MaxSplitDepth)

	if countSplitFragments(rootOf(a), id, a) == 0 {
		dom.ClearSplitID(a)
		delete(e.snapshots, id)
		e.log.Debug("Split group re-merged", zap.String("group", id))
	}
	return true
}

// mergeSeam reunites fragments of a nested split that became adjacent when
// their parents re-merged: a deep split leaves one fragment pair per level,
// sitting either side of the join point. Descent is bounded the same way the
// deep split itself is.
func (e *Engine) mergeSeam(parent *etree.Element, seam, depth int) {
	if depth <= 0 || seam <= 0 {
		return
	}
	children := parent.ChildElements()
	if seam >= len(children) {
		return
	}
	left, right := children[seam-1], children[seam]
	id := dom.SplitID(left)
	if id == "" || id != dom.SplitID(right) || left.Tag != right.Tag {
		return
	}
	inner := len(left.ChildElements())
	dom.MoveChildren(left, right)
	dom.Detach(right)

	if countSplitFragments(rootOf(left), id, left) == 0 {
		dom.ClearSplitID(left)
		delete(e.snapshots, id)
		e.log.Debug("Split group re-merged", zap.String("group", id))
	}
	e.mergeSeam(left, inner, depth-1)
}

// mergeHeuristic opportunistically merges two adjacent siblings of identical
// groupable shape that were never split: same tag, no distinguishing inline
// styling, no markers. Generic grouping containers additionally must wrap the
// same leading child type. Tidiness only - never required for correctness.
func (e *Engine) mergeHeuristic(a, b *etree.Element) bool {
	if a.Tag != b.Tag || !dom.IsSplittable(a) || !dom.IsSplittable(b) {
		return false
	}
	if dom.NoMerge(a) || dom.NoMerge(b) {
		return false
	}
	// Split fragments merge through mergeSplitPair only.
	if dom.SplitID(a) != "" || dom.SplitID(b) != "" {
		return false
	}
	if dom.HasDistinguishingStyle(a) || dom.HasDistinguishingStyle(b) {
		return false
	}
	if a.Tag == "div" || a.Tag == "section" {
		fa, fb := firstChildTag(a), firstChildTag(b)
		if fa == "" || fa != fb {
			return false
		}
	}
	dom.MoveChildren(a, b)
	dom.Detach(b)
	return true
}

// mergeAdjacent collapses mergeable adjacent flow pairs on page until no pair
// is left.
func (e *Engine) mergeAdjacent(page *etree.Element, b *budget) bool {
	changed := false
	for again := true; again; {
		again = false
		flow := dom.FlowChildren(page)
		for i := 0; i+1 < len(flow); i++ {
			if e.mergeSplitPair(flow[i], flow[i+1]) ||
				(e.cfg.AutoMerge && e.mergeHeuristic(flow[i], flow[i+1])) {
				changed = true
				if !b.step() {
					return changed
				}
				again = true
				break
			}
		}
	}
	return changed
}

func firstChildTag(el *etree.Element) string {
	if children := el.ChildElements(); len(children) > 0 {
		return children[0].Tag
	}
	return ""
}

// countSplitFragments counts elements under el carrying the split-group id,
// not counting skip.
func countSplitFragments(el *etree.Element, id string, skip *etree.Element) int {
	n := 0
	if el != skip && dom.SplitID(el) == id {
		n++
	}
	for _, child := range el.ChildElements() {
		n += countSplitFragments(child, id, skip)
	}
	return n
}

// rootOf walks up to the topmost element of el's tree.
func rootOf(el *etree.Element) *etree.Element {
	for el.Parent() != nil {
		el = el.Parent()
	}
	return el
}
