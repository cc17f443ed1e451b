package geometry

import (
	"context"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"repage/dom"
)

// Metrics holds the synthetic layout model: fixed-size pages stacked
// vertically with a gap, content inset from the page edges, and simple
// height rules for leaf blocks.
type Metrics struct {
	PageHeight         float64
	PageGap            float64
	InsetTop           float64
	InsetBottom        float64
	LineHeight         float64
	CharsPerLine       int
	DefaultImageHeight float64
	MinBlockHeight     float64
	FooterHeight       float64
}

// DefaultMetrics approximates an A4 page at 96dpi.
func DefaultMetrics() Metrics {
	return Metrics{
		PageHeight:         1122,
		PageGap:            24,
		InsetTop:           48,
		InsetBottom:        48,
		LineHeight:         20,
		CharsPerLine:       80,
		DefaultImageHeight: 300,
		MinBlockHeight:     16,
		FooterHeight:       28,
	}
}

// IntrinsicFunc resolves an image reference to its intrinsic dimensions.
type IntrinsicFunc func(src string) (width, height float64, ok bool)

// Estimator is a synthetic Oracle: it computes boxes from the live tree on
// every Measure call, so mutations are visible immediately and nothing is
// cached across them. Heights come from an explicit data-height attribute
// when present, from image intrinsic sizes, or from text metrics.
type Estimator struct {
	root        *etree.Element
	m           Metrics
	intrinsic   IntrinsicFunc
	textMetrics bool
	log         *zap.Logger
}

func NewEstimator(root *etree.Element, m Metrics, log *zap.Logger) *Estimator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Estimator{root: root, m: m, textMetrics: true, log: log.Named("estimate")}
}

// WithIntrinsic sets the image intrinsic-size resolver.
func (e *Estimator) WithIntrinsic(fn IntrinsicFunc) *Estimator {
	e.intrinsic = fn
	return e
}

// WithTextMetrics toggles text-length based height estimation. When disabled
// only explicit height attributes and image intrinsic sizes contribute,
// everything else falls back to the minimum block height.
func (e *Estimator) WithTextMetrics(enabled bool) *Estimator {
	e.textMetrics = enabled
	return e
}

// Measure implements Oracle.
func (e *Estimator) Measure(el *etree.Element) Box {
	return e.layout()[el]
}

// Sync implements Oracle. Synthetic geometry is always current.
func (e *Estimator) Sync(ctx context.Context) error {
	return ctx.Err()
}

// layout computes boxes for every page, footer and flow descendant. Pages are
// stacked top to bottom; flow children run from the page content top. All
// coordinates are multiplied by the root's scale factor, mirroring how a real
// renderer reports zoomed geometry.
func (e *Estimator) layout() map[*etree.Element]Box {
	boxes := make(map[*etree.Element]Box)
	scale := e.scale()

	top := 0.0
	for _, page := range dom.Pages(e.root) {
		pageBottom := top + e.m.PageHeight
		boxes[page] = Box{Top: top * scale, Bottom: pageBottom * scale, Scale: scale}

		cursor := top + e.m.InsetTop
		for _, el := range page.ChildElements() {
			if dom.IsFooter(el) {
				fh := e.footerHeight(el)
				boxes[el] = Box{
					Top:    (pageBottom - e.m.InsetBottom - fh) * scale,
					Bottom: (pageBottom - e.m.InsetBottom) * scale,
					Scale:  scale,
				}
				continue
			}
			if !dom.IsFlowChild(el) {
				continue // unmeasured, zero box
			}
			cursor = e.layoutBlock(el, cursor, scale, boxes)
		}
		top = pageBottom + e.m.PageGap
	}
	return boxes
}

// layoutBlock assigns a box to el starting at top and returns its bottom.
// Splittable containers are the sum of their sub-children so the engine can
// scan sub-child boxes when deciding where to cut.
func (e *Estimator) layoutBlock(el *etree.Element, top, scale float64, boxes map[*etree.Element]Box) float64 {
	if dom.IsSplittable(el) {
		if children := el.ChildElements(); len(children) > 0 {
			cursor := top
			for _, sub := range children {
				cursor = e.layoutBlock(sub, cursor, scale, boxes)
			}
			if cursor <= top {
				cursor = top + e.m.MinBlockHeight
			}
			boxes[el] = Box{Top: top * scale, Bottom: cursor * scale, Scale: scale}
			return cursor
		}
	}
	bottom := top + e.blockHeight(el)
	boxes[el] = Box{Top: top * scale, Bottom: bottom * scale, Scale: scale}
	return bottom
}

func (e *Estimator) blockHeight(el *etree.Element) float64 {
	if h, ok := attrFloat(el, dom.AttrHeight); ok {
		return h
	}
	if el.Tag == "img" || el.Tag == "image" {
		if e.intrinsic != nil {
			if _, h, ok := e.intrinsic(el.SelectAttrValue("src", "")); ok {
				return h
			}
		}
		return e.m.DefaultImageHeight
	}
	if n := textLength(el); e.textMetrics && n > 0 {
		perLine := e.m.CharsPerLine
		if perLine <= 0 {
			perLine = 1
		}
		lines := math.Ceil(float64(n) / float64(perLine))
		return math.Max(1, lines) * e.m.LineHeight
	}
	return e.m.MinBlockHeight
}

func (e *Estimator) footerHeight(el *etree.Element) float64 {
	if h, ok := attrFloat(el, dom.AttrHeight); ok {
		return h
	}
	return e.m.FooterHeight
}

func (e *Estimator) scale() float64 {
	if s, ok := attrFloat(e.root, dom.AttrScale); ok && s > 0 {
		return s
	}
	return 1
}

func attrFloat(el *etree.Element, key string) (float64, bool) {
	raw := el.SelectAttrValue(key, "")
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func textLength(el *etree.Element) int {
	n := utf8.RuneCountInString(strings.TrimSpace(el.Text()))
	for _, sub := range el.ChildElements() {
		n += textLength(sub)
	}
	return n
}
