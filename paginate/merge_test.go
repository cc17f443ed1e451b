package paginate

import (
	"testing"

	"repage/dom"
)

func TestMergeSplitPairStrict(t *testing.T) {
	root := parseRoot(t, `<div><div data-role="page">
		<ul data-split-id="g"><li>item 1</li></ul>
		<ul data-split-id="g"><li>item 2</li></ul>
		<ul data-split-id="other"><li>item 3</li></ul>
	</div></div>`)
	e := newTestEngine(t, root, flatMetrics(), flatConfig())
	flow := dom.FlowChildren(dom.Pages(root)[0])

	if e.mergeSplitPair(flow[1], flow[2]) {
		t.Fatal("merged fragments of different groups")
	}
	if !e.mergeSplitPair(flow[0], flow[1]) {
		t.Fatal("matching pair not merged")
	}
	if got := len(flow[0].ChildElements()); got != 2 {
		t.Fatalf("merged list has %d items, want 2", got)
	}
	if dom.SplitID(flow[0]) != "" {
		t.Fatal("id kept after the group became whole")
	}
	if flow[1].Parent() != nil {
		t.Fatal("emptied fragment not removed")
	}
}

func TestMergeKeepsIDWhileFragmentsRemain(t *testing.T) {
	root := parseRoot(t, `<div>
		<div data-role="page">
			<ul data-split-id="g"><li>item 1</li></ul>
			<ul data-split-id="g"><li>item 2</li></ul>
		</div>
		<div data-role="page">
			<ul data-split-id="g"><li>item 3</li></ul>
		</div>
	</div>`)
	e := newTestEngine(t, root, flatMetrics(), flatConfig())
	pages := dom.Pages(root)
	flow := dom.FlowChildren(pages[0])

	if !e.mergeSplitPair(flow[0], flow[1]) {
		t.Fatal("adjacent pair not merged")
	}
	// A third fragment still lives on the next page: the group stays open.
	if dom.SplitID(flow[0]) != "g" {
		t.Fatal("id cleared while a fragment remains elsewhere")
	}

	if !e.mergeSplitPair(flow[0], dom.FlowChildren(pages[1])[0]) {
		t.Fatal("final pair not merged")
	}
	if dom.SplitID(flow[0]) != "" {
		t.Fatal("id kept after the last fragment merged")
	}
	if got := len(flow[0].ChildElements()); got != 3 {
		t.Fatalf("merged list has %d items, want 3", got)
	}
}

func TestMergeSplitPairReunitesNestedFragments(t *testing.T) {
	root := parseRoot(t, `<div><div data-role="page">
		<blockquote data-split-id="outer"><ul data-split-id="inner"><li>item 1</li><li>item 2</li></ul></blockquote>
		<blockquote data-split-id="outer"><ul data-split-id="inner"><li>item 3</li></ul></blockquote>
	</div></div>`)
	e := newTestEngine(t, root, flatMetrics(), flatConfig())
	flow := dom.FlowChildren(dom.Pages(root)[0])

	if !e.mergeSplitPair(flow[0], flow[1]) {
		t.Fatal("outer pair not merged")
	}
	// A deep split leaves one fragment pair per level; merging the outer
	// containers must also reunite the inner lists at the join point.
	lists := flow[0].ChildElements()
	if len(lists) != 1 {
		t.Fatalf("merged container holds %d lists, want 1", len(lists))
	}
	if got := len(lists[0].ChildElements()); got != 3 {
		t.Fatalf("reunited list has %d items, want 3", got)
	}
	if dom.SplitID(flow[0]) != "" || dom.SplitID(lists[0]) != "" {
		t.Fatal("merged fragments still carry split ids")
	}
	for i, want := range []string{"item 1", "item 2", "item 3"} {
		if got := lists[0].ChildElements()[i].Text(); got != want {
			t.Fatalf("item %d = %q, want %q", i, got, want)
		}
	}
}

func TestMergeSplitPairSeamDepthBound(t *testing.T) {
	cfg := flatConfig()
	cfg.MaxSplitDepth = 1
	root := parseRoot(t, `<div><div data-role="page">
		<blockquote data-split-id="outer"><blockquote data-split-id="mid"><ul data-split-id="inner"><li>item 1</li></ul></blockquote></blockquote>
		<blockquote data-split-id="outer"><blockquote data-split-id="mid"><ul data-split-id="inner"><li>item 2</li></ul></blockquote></blockquote>
	</div></div>`)
	e := newTestEngine(t, root, flatMetrics(), cfg)
	flow := dom.FlowChildren(dom.Pages(root)[0])

	if !e.mergeSplitPair(flow[0], flow[1]) {
		t.Fatal("outer pair not merged")
	}
	// Depth 1 reaches one level below the merged containers: the middle pair
	// reunites, the lists below it stay separate fragments with their id.
	mids := flow[0].ChildElements()
	if len(mids) != 1 {
		t.Fatalf("merged container holds %d middle fragments, want 1", len(mids))
	}
	if dom.SplitID(mids[0]) != "" {
		t.Fatal("middle pair merged but kept its id")
	}
	lists := mids[0].ChildElements()
	if len(lists) != 2 {
		t.Fatalf("middle container holds %d lists, want 2", len(lists))
	}
	if dom.SplitID(lists[0]) != "inner" || dom.SplitID(lists[1]) != "inner" {
		t.Fatal("inner group id dropped without a merge")
	}
}

func TestMergeSplitPairRejectsTagMismatch(t *testing.T) {
	root := parseRoot(t, `<div><div data-role="page">
		<ul data-split-id="g"><li>item 1</li></ul>
		<ol data-split-id="g"><li>item 2</li></ol>
	</div></div>`)
	e := newTestEngine(t, root, flatMetrics(), flatConfig())
	flow := dom.FlowChildren(dom.Pages(root)[0])
	if e.mergeSplitPair(flow[0], flow[1]) {
		t.Fatal("merged fragments of different element types")
	}
}

func TestMergeHeuristic(t *testing.T) {
	root := parseRoot(t, `<div><div data-role="page">
		<ul><li>item 1</li></ul>
		<ul><li>item 2</li></ul>
	</div></div>`)
	e := newTestEngine(t, root, flatMetrics(), flatConfig())
	flow := dom.FlowChildren(dom.Pages(root)[0])

	if !e.mergeHeuristic(flow[0], flow[1]) {
		t.Fatal("identical sibling lists not merged")
	}
	if got := len(flow[0].ChildElements()); got != 2 {
		t.Fatalf("merged list has %d items, want 2", got)
	}
}

func TestMergeHeuristicRespectsSentinel(t *testing.T) {
	root := parseRoot(t, `<div><div data-role="page">
		<ul><li>item 1</li></ul>
		<ul data-no-merge="true"><li>item 2</li></ul>
	</div></div>`)
	e := newTestEngine(t, root, flatMetrics(), flatConfig())
	flow := dom.FlowChildren(dom.Pages(root)[0])
	if e.mergeHeuristic(flow[0], flow[1]) {
		t.Fatal("merged across a no-merge sentinel")
	}
}

func TestMergeHeuristicRespectsStyle(t *testing.T) {
	root := parseRoot(t, `<div><div data-role="page">
		<ul style="border: 1px solid red"><li>item 1</li></ul>
		<ul><li>item 2</li></ul>
	</div></div>`)
	e := newTestEngine(t, root, flatMetrics(), flatConfig())
	flow := dom.FlowChildren(dom.Pages(root)[0])
	if e.mergeHeuristic(flow[0], flow[1]) {
		t.Fatal("merged visually distinct siblings")
	}
}

func TestMergeHeuristicGroupingContainers(t *testing.T) {
	root := parseRoot(t, `<div><div data-role="page">
		<div><p>a</p></div>
		<div><p>b</p></div>
		<div><h2>c</h2></div>
	</div></div>`)
	e := newTestEngine(t, root, flatMetrics(), flatConfig())
	flow := dom.FlowChildren(dom.Pages(root)[0])

	if e.mergeHeuristic(flow[1], flow[2]) {
		t.Fatal("merged divs wrapping different content types")
	}
	if !e.mergeHeuristic(flow[0], flow[1]) {
		t.Fatal("divs wrapping the same content type not merged")
	}
}

func TestMergeHeuristicSkipsSplitFragments(t *testing.T) {
	root := parseRoot(t, `<div><div data-role="page">
		<ul data-split-id="g"><li>item 1</li></ul>
		<ul><li>item 2</li></ul>
	</div></div>`)
	e := newTestEngine(t, root, flatMetrics(), flatConfig())
	flow := dom.FlowChildren(dom.Pages(root)[0])
	if e.mergeHeuristic(flow[0], flow[1]) {
		t.Fatal("heuristic touched a split fragment")
	}
}

func TestMergeAdjacentRescans(t *testing.T) {
	root := parseRoot(t, `<div><div data-role="page">
		<ul data-split-id="g"><li>item 1</li></ul>
		<ul data-split-id="g"><li>item 2</li></ul>
		<ul data-split-id="g"><li>item 3</li></ul>
	</div></div>`)
	e := newTestEngine(t, root, flatMetrics(), flatConfig())
	page := dom.Pages(root)[0]

	if !e.mergeAdjacent(page, e.newBudget()) {
		t.Fatal("mergeAdjacent reported no change")
	}
	flow := dom.FlowChildren(page)
	if len(flow) != 1 {
		t.Fatalf("%d fragments remain, want 1", len(flow))
	}
	if got := len(flow[0].ChildElements()); got != 3 {
		t.Fatalf("merged list has %d items, want 3", got)
	}
	if dom.SplitID(flow[0]) != "" {
		t.Fatal("fully merged group still carries its id")
	}
}
