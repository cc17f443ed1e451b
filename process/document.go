package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"repage/common"
	"repage/config"
	"repage/dom"
	"repage/geometry"
	"repage/paginate"
	"repage/state"
	"repage/utils/debug"
)

// Named character references commonly found in loose HTML. Real XML has only
// the five predefined ones, old documents use many more.
var htmlEntities = map[string]string{
	"nbsp":   " ",
	"shy":    "­",
	"copy":   "©",
	"reg":    "®",
	"trade":  "™",
	"deg":    "°",
	"plusmn": "±",
	"times":  "×",
	"middot": "·",
	"sect":   "§",
	"para":   "¶",
	"bull":   "•",
	"hellip": "…",
	"ndash":  "–",
	"mdash":  "—",
	"laquo":  "«",
	"raquo":  "»",
	"lsquo":  "‘",
	"rsquo":  "’",
	"ldquo":  "“",
	"rdquo":  "”",
}

func readDocument(r io.Reader) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.WriteSettings = etree.WriteSettings{
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Entity:        htmlEntities,
		ValidateInput: false,
		Permissive:    true,
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to parse document: %w", err)
	}
	if doc.Root() == nil {
		return nil, errors.New("document has no root element")
	}
	return doc, nil
}

// contentRoot locates the element pagination operates on. For html documents
// that is body, for bare fragments the document root itself.
func contentRoot(doc *etree.Document) *etree.Element {
	if body := doc.FindElement("//body"); body != nil {
		return body
	}
	return doc.Root()
}

func documentTitle(doc *etree.Document, src string) string {
	for _, path := range []string{"//title", "//h1"} {
		if el := doc.FindElement(path); el != nil {
			if t := strings.TrimSpace(joinedText(el)); t != "" {
				return t
			}
		}
	}
	return strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
}

func joinedText(el *etree.Element) string {
	var sb strings.Builder
	for _, child := range el.Child {
		switch node := child.(type) {
		case *etree.CharData:
			sb.WriteString(node.Data)
		case *etree.Element:
			sb.WriteString(joinedText(node))
		}
	}
	return sb.String()
}

func metricsFrom(p *config.PageConfig) geometry.Metrics {
	return geometry.Metrics{
		PageHeight:         p.Height,
		PageGap:            p.Gap,
		InsetTop:           p.InsetTop,
		InsetBottom:        p.InsetBottom,
		LineHeight:         p.LineHeight,
		CharsPerLine:       p.CharsPerLine,
		DefaultImageHeight: p.DefaultImageHeight,
		MinBlockHeight:     p.MinBlockHeight,
		FooterHeight:       p.FooterHeight,
	}
}

// engineConfigFrom combines engine knobs with the page insets: the overflow
// boundary is the page bottom minus the reserved padding, so the engine must
// see the same insets the estimator lays out with.
func engineConfigFrom(e *config.EngineConfig, p *config.PageConfig) paginate.Config {
	return paginate.Config{
		Tolerance:        e.Tolerance,
		PullThreshold:    e.PullThreshold,
		InsetTop:         p.InsetTop,
		InsetBottom:      p.InsetBottom,
		MaxIterations:    e.MaxIterations,
		MaxSweeps:        e.MaxSweeps,
		SweepBudget:      time.Duration(e.SweepBudgetMs) * time.Millisecond,
		FlattenPassLimit: e.FlattenPassLimit,
		MaxSplitDepth:    e.MaxSplitDepth,
		Footers:          e.Footers,
		AutoMerge:        e.AutoMerge,
	}
}

// paginateDocument parses src markup from r and reflows it into pages.
// Returns the transformed document and the resulting page count.
func paginateDocument(ctx context.Context, r io.Reader, src string, log *zap.Logger) (*etree.Document, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	env := state.EnvFromContext(ctx)

	doc, err := readDocument(selectReader(r))
	if err != nil {
		return nil, 0, err
	}
	root := contentRoot(doc)

	if env.Rpt != nil {
		if data, err := doc.WriteToBytes(); err == nil {
			env.Rpt.StoreData(reportName(src, "source.html"), data)
		}
	}

	est := geometry.NewEstimator(root, metricsFrom(&env.Cfg.Page), log).
		WithTextMetrics(env.Cfg.Measure.Mode == common.MeasureModeText)
	if env.Cfg.Measure.ImageRoot != "" {
		est = est.WithIntrinsic(geometry.FileIntrinsic(env.Cfg.Measure.ImageRoot, log))
	}

	eng := paginate.New(est, paginate.SourceFor(env.Cfg.Engine.SplitIDs), engineConfigFrom(&env.Cfg.Engine, &env.Cfg.Page), log)

	before := dom.Fingerprint(root)
	if _, err := eng.ReflowUntilStable(ctx, root); err != nil {
		return nil, 0, err
	}
	if after := dom.Fingerprint(root); after != before {
		return nil, 0, fmt.Errorf("content changed during pagination: fingerprint %s became %s", before, after)
	}

	pages := len(dom.Pages(root))
	if env.Rpt != nil {
		if data, err := doc.WriteToBytes(); err == nil {
			env.Rpt.StoreData(reportName(src, "paginated.html"), data)
		}
		tw := debug.NewTreeWriter()
		debug.DumpPages(tw, root, func(el *etree.Element) (float64, float64, bool) {
			box := est.Measure(el)
			return box.Top, box.Bottom, !box.Zero()
		})
		env.Rpt.StoreData(reportName(src, "pages.txt"), []byte(tw.String()))
	}
	return doc, pages, nil
}

func reportName(src, suffix string) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return base + "-" + suffix
}
