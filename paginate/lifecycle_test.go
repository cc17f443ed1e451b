package paginate

import (
	"strings"
	"testing"

	"github.com/beevik/etree"

	"repage/dom"
)

func TestEnsurePaginatedCreatesFirstPage(t *testing.T) {
	root := parseRoot(t, `<div><p>orphan</p></div>`)
	e := newTestEngine(t, root, flatMetrics(), flatConfig())

	if !e.EnsurePaginated(root) {
		t.Fatal("no change reported for an unpaginated container")
	}
	pages := dom.Pages(root)
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	if dom.FirstFlowChild(pages[0]).Text() != "orphan" {
		t.Fatal("orphan not adopted into the first page")
	}
	// Idempotent on a clean tree.
	if e.EnsurePaginated(root) {
		t.Fatal("second call mutated a paginated container")
	}
}

func TestEnsurePaginatedAdoptsStrayText(t *testing.T) {
	root := parseRoot(t, `<div>loose words<div data-role="page"/></div>`)
	e := newTestEngine(t, root, flatMetrics(), flatConfig())

	e.EnsurePaginated(root)
	first := dom.FirstFlowChild(dom.Pages(root)[0])
	if first == nil || first.Tag != "p" || first.Text() != "loose words" {
		t.Fatalf("stray text not wrapped: %v", first)
	}
	for _, tok := range root.Child {
		if cd, ok := tok.(*etree.CharData); ok && strings.TrimSpace(cd.Data) != "" {
			t.Fatal("stray text left under the container")
		}
	}
}

func TestEnsurePaginatedSkipsNonContent(t *testing.T) {
	root := parseRoot(t, `<div><style>p{}</style><div data-role="page"><p>a</p></div></div>`)
	e := newTestEngine(t, root, flatMetrics(), flatConfig())

	if e.EnsurePaginated(root) {
		t.Fatal("non-content element treated as an orphan")
	}
	if root.ChildElements()[0].Tag != "style" {
		t.Fatal("style element moved")
	}
}

func TestFlattenWrappers(t *testing.T) {
	root := parseRoot(t, `<div><div data-role="page">
		<div><p data-height="30">a</p><p data-height="30">b</p></div>
	</div></div>`)
	e := newTestEngine(t, root, flatMetrics(), flatConfig())
	page := dom.Pages(root)[0]

	if !e.flattenWrappers(page) {
		t.Fatal("wrapper not flattened")
	}
	flow := dom.FlowChildren(page)
	if len(flow) != 2 || flow[0].Tag != "p" {
		t.Fatalf("flow after flatten = %v", flow)
	}
}

func TestFlattenWrappersNested(t *testing.T) {
	root := parseRoot(t, `<div><div data-role="page">
		<div><div><p data-height="30">a</p></div></div>
	</div></div>`)
	e := newTestEngine(t, root, flatMetrics(), flatConfig())
	page := dom.Pages(root)[0]

	e.flattenWrappers(page)
	flow := dom.FlowChildren(page)
	if len(flow) != 1 || flow[0].Tag != "p" {
		t.Fatalf("flow after flatten = %v", flow)
	}
}

func TestFlattenWrappersKeepsMeaningfulContainers(t *testing.T) {
	for _, markup := range []string{
		`<div style="border: 1px solid black"><p>a</p></div>`,
		`<div data-no-merge="true"><p>a</p></div>`,
		`<div data-split-id="g"><p>a</p></div>`,
		`<blockquote><p>a</p></blockquote>`,
	} {
		root := parseRoot(t, `<div><div data-role="page">`+markup+`</div></div>`)
		e := newTestEngine(t, root, flatMetrics(), flatConfig())
		page := dom.Pages(root)[0]
		if e.flattenWrappers(page) {
			t.Fatalf("flattened a meaningful container: %s", markup)
		}
	}
}

func TestTrimTrailingPages(t *testing.T) {
	root := parseRoot(t, `<div>
		<div data-role="page"><p data-height="30">a</p></div>
		<div data-role="page"><div data-role="footer">2</div></div>
		<div data-role="page"/>
	</div>`)
	e := newTestEngine(t, root, flatMetrics(), flatConfig())

	if !e.trimTrailingPages(root) {
		t.Fatal("empty trailing pages not trimmed")
	}
	if got := len(dom.Pages(root)); got != 1 {
		t.Fatalf("got %d pages, want 1", got)
	}
}

func TestTrimKeepsFirstPage(t *testing.T) {
	root := parseRoot(t, `<div><div data-role="page"/></div>`)
	e := newTestEngine(t, root, flatMetrics(), flatConfig())

	if e.trimTrailingPages(root) {
		t.Fatal("sole empty page trimmed")
	}
	if len(dom.Pages(root)) != 1 {
		t.Fatal("first page removed")
	}
}

func TestTrimKeepsInteriorEmptyPage(t *testing.T) {
	root := parseRoot(t, `<div>
		<div data-role="page"/>
		<div data-role="page"><p data-height="30">a</p></div>
	</div>`)
	e := newTestEngine(t, root, flatMetrics(), flatConfig())

	if e.trimTrailingPages(root) {
		t.Fatal("interior empty page trimmed")
	}
	if len(dom.Pages(root)) != 2 {
		t.Fatal("page count changed")
	}
}
