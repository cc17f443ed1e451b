package paginate

import (
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"repage/dom"
)

// EnsurePaginated guarantees the container holds at least one page and that
// no flow-eligible content sits directly under the container: orphans dropped
// in by paste or import are appended into the first page. Idempotent and safe
// to call before any reflow variant.
func (e *Engine) EnsurePaginated(root *etree.Element) bool {
	changed := false

	pages := dom.Pages(root)
	if len(pages) == 0 {
		page := etree.NewElement("div")
		page.CreateAttr(dom.AttrRole, dom.RolePage)
		root.InsertChildAt(0, page)
		pages = []*etree.Element{page}
		changed = true
		e.log.Debug("Created initial page")
	}
	first := pages[0]

	// Adopt orphaned elements and stray text.
	for _, child := range append([]etree.Token{}, root.Child...) {
		switch t := child.(type) {
		case *etree.Element:
			if dom.IsPage(t) || !dom.IsFlowChild(t) {
				continue
			}
			dom.AppendBeforeFooter(first, t)
			changed = true
			e.log.Debug("Adopted orphan element", zap.String("tag", t.Tag))
		case *etree.CharData:
			if strings.TrimSpace(t.Data) == "" {
				continue
			}
			p := etree.NewElement("p")
			p.SetText(t.Data)
			root.RemoveChild(t)
			dom.AppendBeforeFooter(first, p)
			changed = true
			e.log.Debug("Adopted orphan text")
		}
	}
	return changed
}

// flattenWrappers unwraps redundant single-child grouping containers so push
// and pull, which reason about direct page children only, see the real
// content granularity. Bounded by the configured pass limit.
func (e *Engine) flattenWrappers(page *etree.Element) bool {
	changed := false
	for pass := 0; pass < e.cfg.FlattenPassLimit; pass++ {
		flow := dom.FlowChildren(page)
		if len(flow) != 1 || !isPlainWrapper(flow[0]) {
			break
		}
		w := flow[0]
		at := w.Index()
		for len(w.Child) > 0 {
			page.InsertChildAt(at, w.Child[0])
			at++
		}
		dom.Detach(w)
		changed = true
		e.log.Debug("Flattened wrapper", zap.String("tag", w.Tag))
	}
	return changed
}

// isPlainWrapper reports whether el is an unstyled grouping container whose
// only purpose is nesting: worth unwrapping during import cleanup.
func isPlainWrapper(el *etree.Element) bool {
	if el.Tag != "div" && el.Tag != "section" {
		return false
	}
	if dom.SplitID(el) != "" || dom.NoMerge(el) || dom.Excluded(el) {
		return false
	}
	if dom.HasDistinguishingStyle(el) {
		return false
	}
	if len(el.ChildElements()) == 0 {
		return false
	}
	return strings.TrimSpace(el.Text()) == ""
}

// trimTrailingPages removes empty pages at the end of the document. The first
// page always survives, even when empty.
func (e *Engine) trimTrailingPages(root *etree.Element) bool {
	changed := false
	for {
		pages := dom.Pages(root)
		if len(pages) <= 1 {
			break
		}
		last := pages[len(pages)-1]
		if len(dom.FlowChildren(last)) > 0 {
			break
		}
		dom.Detach(last)
		changed = true
		e.log.Debug("Trimmed trailing empty page")
	}
	return changed
}
