// Package dom implements the structural attribute vocabulary the pagination
// engine reads and writes on the element tree. The engine never defines visual
// styling - collaborators mark pages, footers and excluded elements with the
// attributes below and the engine only repositions, splits and merges nodes.
package dom

import "github.com/beevik/etree"

// Attribute vocabulary shared with collaborators producing the tree.
const (
	AttrRole     = "data-role"     // "page" or "footer"
	AttrSplitID  = "data-split-id" // opaque split-group identifier
	AttrExcluded = "data-excluded" // overlays, drag handles - never measured
	AttrNoMerge  = "data-no-merge" // sentinel: never auto-merge this element
	AttrHeight   = "data-height"   // explicit height override for synthetic geometry
	AttrScale    = "data-scale"    // effective scale factor, stamped on the container root
)

const (
	RolePage   = "page"
	RoleFooter = "footer"
)

func IsPage(el *etree.Element) bool {
	return el != nil && el.SelectAttrValue(AttrRole, "") == RolePage
}

func IsFooter(el *etree.Element) bool {
	return el != nil && el.SelectAttrValue(AttrRole, "") == RoleFooter
}

func Excluded(el *etree.Element) bool {
	return el != nil && el.SelectAttrValue(AttrExcluded, "") != ""
}

func NoMerge(el *etree.Element) bool {
	return el != nil && el.SelectAttrValue(AttrNoMerge, "") != ""
}

// SplitID returns the split-group identifier stamped on el, or empty when el
// is not a split fragment.
func SplitID(el *etree.Element) string {
	return el.SelectAttrValue(AttrSplitID, "")
}

func SetSplitID(el *etree.Element, id string) {
	el.CreateAttr(AttrSplitID, id)
}

func ClearSplitID(el *etree.Element) {
	el.RemoveAttr(AttrSplitID)
}
