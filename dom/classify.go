package dom

import "github.com/beevik/etree"

// Tags that never carry content visible to layout (the flow classifier skips
// them without measuring).
var nonContentTags = map[string]struct{}{
	"style":    {},
	"script":   {},
	"link":     {},
	"meta":     {},
	"template": {},
}

// Tags whose sub-children can be divided across a page boundary without
// losing meaning: list-like, quotation-like and generic grouping containers.
var splittableTags = map[string]struct{}{
	"ul":         {},
	"ol":         {},
	"dl":         {},
	"blockquote": {},
	"div":        {},
	"section":    {},
}

// Pages returns the ordered page children of the container root. Order is
// ground truth - pages have no stable identifiers.
func Pages(root *etree.Element) []*etree.Element {
	var pages []*etree.Element
	for _, el := range root.ChildElements() {
		if IsPage(el) {
			pages = append(pages, el)
		}
	}
	return pages
}

// IsFlowChild reports whether el participates in normal top-to-bottom flow:
// not a footer, not excluded, not a non-content marker and not positioned out
// of flow by its inline style.
func IsFlowChild(el *etree.Element) bool {
	if el == nil || IsFooter(el) || Excluded(el) {
		return false
	}
	if _, ok := nonContentTags[el.Tag]; ok {
		return false
	}
	return !OutOfFlowStyle(el.SelectAttrValue("style", ""))
}

// FlowChildren returns the direct children of page participating in flow, in
// document order.
func FlowChildren(page *etree.Element) []*etree.Element {
	var flow []*etree.Element
	for _, el := range page.ChildElements() {
		if IsFlowChild(el) {
			flow = append(flow, el)
		}
	}
	return flow
}

func FirstFlowChild(page *etree.Element) *etree.Element {
	for _, el := range page.ChildElements() {
		if IsFlowChild(el) {
			return el
		}
	}
	return nil
}

func LastFlowChild(page *etree.Element) *etree.Element {
	children := page.ChildElements()
	for i := len(children) - 1; i >= 0; i-- {
		if IsFlowChild(children[i]) {
			return children[i]
		}
	}
	return nil
}

// Footer returns the page footer element, if any. At most one footer per page
// is supported; the first marked child wins.
func Footer(page *etree.Element) *etree.Element {
	for _, el := range page.ChildElements() {
		if IsFooter(el) {
			return el
		}
	}
	return nil
}

// IsSplittable reports whether el is a splittable container type. Whether a
// particular split is possible additionally depends on its sub-children (see
// the engine's split operation).
func IsSplittable(el *etree.Element) bool {
	if el == nil || IsPage(el) || IsFooter(el) || Excluded(el) {
		return false
	}
	_, ok := splittableTags[el.Tag]
	return ok
}
