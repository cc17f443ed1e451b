package dom

import "github.com/beevik/etree"

// CloneShell returns a new element with the same tag and attributes as el but
// no children. Used when splitting a container across a page boundary.
func CloneShell(el *etree.Element) *etree.Element {
	shell := etree.NewElement(el.Tag)
	shell.Space = el.Space
	for _, a := range el.Attr {
		shell.CreateAttr(a.FullKey(), a.Value)
	}
	return shell
}

// MoveToFront makes el the first child of page, detaching it from its current
// parent first.
func MoveToFront(page, el *etree.Element) {
	page.InsertChildAt(0, el)
}

// AppendBeforeFooter appends el to page's flow: before the footer when one is
// present, at the end otherwise.
func AppendBeforeFooter(page, el *etree.Element) {
	if f := Footer(page); f != nil {
		page.InsertChildAt(f.Index(), el)
		return
	}
	page.AddChild(el)
}

// InsertAfter places el immediately after ref under ref's parent.
func InsertAfter(ref, el *etree.Element) {
	ref.Parent().InsertChildAt(ref.Index()+1, el)
}

// Detach removes el from its parent. A detached element is kept alive by the
// caller - content is never destroyed by reflow, only moved.
func Detach(el *etree.Element) {
	if p := el.Parent(); p != nil {
		p.RemoveChild(el)
	}
}

// MoveChildren moves every child token of src into dst, preserving order.
// Text between sub-children travels along with them.
func MoveChildren(dst, src *etree.Element) {
	for len(src.Child) > 0 {
		dst.AddChild(src.Child[0])
	}
}

// MoveElementsFrom moves the element children of src starting at element
// index from (and any tokens following them) into dst, preserving order.
func MoveElementsFrom(dst, src *etree.Element, from int) {
	children := src.ChildElements()
	if from >= len(children) {
		return
	}
	// Cut at the token position of the first moved element so interleaved
	// text moves with its element.
	cut := children[from].Index()
	for len(src.Child) > cut {
		dst.AddChild(src.Child[cut])
	}
}
