package paginate

import (
	"testing"

	"repage/dom"
)

func TestPullMovesBlocksBack(t *testing.T) {
	root := parseRoot(t, `<div>
		<div data-role="page"><p data-height="50">a</p></div>
		<div data-role="page"><p data-height="50">b</p><p data-height="50">c</p></div>
	</div>`)
	e := newTestEngine(t, root, flatMetrics(), flatConfig())
	pages := dom.Pages(root)

	if !e.pullPage(pages[0], pages[1], e.newBudget()) {
		t.Fatal("pull reported no change")
	}
	// Everything fits on the first page; the drained follower is gone.
	pages = dom.Pages(root)
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	flow := dom.FlowChildren(pages[0])
	if len(flow) != 3 || flow[0].Text() != "a" || flow[2].Text() != "c" {
		t.Fatalf("pulled flow = %v", flow)
	}
}

func TestPullUndoesOverflowingMove(t *testing.T) {
	root := parseRoot(t, `<div>
		<div data-role="page"><p data-height="150">a</p></div>
		<div data-role="page"><p data-height="120">b</p></div>
	</div>`)
	e := newTestEngine(t, root, flatMetrics(), flatConfig())
	pages := dom.Pages(root)

	// 50 units free clears the threshold, but the candidate needs 120: the
	// tentative move must be rolled back.
	if e.pullPage(pages[0], pages[1], e.newBudget()) {
		t.Fatal("pull reported a change it undid")
	}
	if len(dom.FlowChildren(pages[0])) != 1 {
		t.Fatal("candidate left on the wrong page")
	}
	if dom.FirstFlowChild(pages[1]).Text() != "b" {
		t.Fatal("candidate not restored to the follower")
	}
}

func TestPullRespectsThreshold(t *testing.T) {
	root := parseRoot(t, `<div>
		<div data-role="page"><p data-height="195">a</p></div>
		<div data-role="page"><p data-height="4">b</p></div>
	</div>`)
	e := newTestEngine(t, root, flatMetrics(), flatConfig())
	pages := dom.Pages(root)

	// The candidate would fit, but a 5-unit gap under an 8-unit threshold is
	// not worth disturbing.
	if e.pullPage(pages[0], pages[1], e.newBudget()) {
		t.Fatal("pull acted below the threshold")
	}
}

func TestPullRemergesSplitPair(t *testing.T) {
	root := parseRoot(t, `<div>
		<div data-role="page"><ul data-split-id="g">`+
		`<li data-height="20">item 1</li><li data-height="20">item 2</li></ul></div>
		<div data-role="page"><ul data-split-id="g">`+
		`<li data-height="20">item 3</li><li data-height="20">item 4</li></ul></div>
	</div>`)
	e := newTestEngine(t, root, flatMetrics(), flatConfig())
	pages := dom.Pages(root)

	if !e.pullPage(pages[0], pages[1], e.newBudget()) {
		t.Fatal("pull reported no change")
	}
	pages = dom.Pages(root)
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	flow := dom.FlowChildren(pages[0])
	if len(flow) != 1 {
		t.Fatalf("fragments not merged: %d flow children", len(flow))
	}
	if got := len(flow[0].ChildElements()); got != 4 {
		t.Fatalf("merged list has %d items, want 4", got)
	}
	// The group is whole again, so its id is gone.
	if dom.SplitID(flow[0]) != "" {
		t.Fatal("re-merged list still carries a split id")
	}
}

func TestPullKeepsPopulatedFollower(t *testing.T) {
	root := parseRoot(t, `<div>
		<div data-role="page"><p data-height="100">a</p></div>
		<div data-role="page"><p data-height="80">b</p><p data-height="150">c</p></div>
	</div>`)
	e := newTestEngine(t, root, flatMetrics(), flatConfig())
	pages := dom.Pages(root)

	e.pullPage(pages[0], pages[1], e.newBudget())
	pages = dom.Pages(root)
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	if dom.FirstFlowChild(pages[1]).Text() != "c" {
		t.Fatal("follower content wrong after partial pull")
	}
}
