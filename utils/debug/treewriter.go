// Package debug renders paginated trees into indented text dumps for
// inclusion in debug reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"repage/dom"
)

type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	for range depth {
		tw.w.WriteString("  ")
	}
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func (tw TreeWriter) TextBlock(depth int, label, value string) {
	for range depth {
		tw.w.WriteString("  ")
	}
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// BoxFunc resolves an element to its measured extent; ok is false for
// unmeasured elements.
type BoxFunc func(el *etree.Element) (top, bottom float64, ok bool)

// DumpPages writes the paginated tree under root: one line per element with
// role markers, split-group ids and measured extents when available.
func DumpPages(tw *TreeWriter, root *etree.Element, box BoxFunc) {
	tw.Line(0, "container <%s> pages=%d", root.Tag, len(dom.Pages(root)))
	for i, page := range dom.Pages(root) {
		tw.Line(1, "page %d%s", i+1, describe(page, box))
		dumpElement(tw, page, 2, box)
	}
}

func dumpElement(tw *TreeWriter, el *etree.Element, depth int, box BoxFunc) {
	for _, child := range el.ChildElements() {
		tw.Line(depth, "<%s>%s", child.Tag, describe(child, box))
		if text := strings.TrimSpace(child.Text()); text != "" {
			tw.TextBlock(depth+1, "text", text)
		}
		dumpElement(tw, child, depth+1, box)
	}
}

func describe(el *etree.Element, box BoxFunc) string {
	var sb strings.Builder
	if dom.IsFooter(el) {
		sb.WriteString(" footer")
	}
	if id := dom.SplitID(el); id != "" {
		fmt.Fprintf(&sb, " split=%s", id)
	}
	if dom.Excluded(el) {
		sb.WriteString(" excluded")
	}
	if dom.NoMerge(el) {
		sb.WriteString(" no-merge")
	}
	if box != nil {
		if top, bottom, ok := box(el); ok {
			fmt.Fprintf(&sb, " [%.1f..%.1f]", top, bottom)
		}
	}
	return sb.String()
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
