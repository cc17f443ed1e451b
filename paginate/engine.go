// Package paginate keeps a flow of content blocks correctly distributed
// across a sequence of fixed-size page containers. The engine only measures
// and moves: geometry comes from an external oracle, content is created and
// destroyed by collaborators, and every pass converges toward pages whose
// flow content fits their content boundary. Partial failure always degrades
// to leaving overflow in place - there is no fatal error surface.
package paginate

import (
	"time"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"repage/common"
	"repage/dom"
	"repage/geometry"
)

// Config tunes engine behavior. Zero values are replaced by DefaultConfig
// equivalents in New.
type Config struct {
	// Tolerance absorbs sub-pixel rounding reported by the geometry oracle.
	Tolerance float64
	// PullThreshold is the minimum free gap before the pull-up stage tries to
	// move content back, avoiding thrash on marginal gaps.
	PullThreshold float64
	// InsetTop / InsetBottom are the reserved content paddings of a page.
	InsetTop    float64
	InsetBottom float64
	// MaxIterations bounds push/pull/merge steps across one convergence pass.
	MaxIterations int
	// MaxSweeps bounds full sweeps within ReflowUntilStable.
	MaxSweeps int
	// SweepBudget is the wall-clock cap for one convergence pass (0 - none).
	SweepBudget time.Duration
	// FlattenPassLimit bounds wrapper unwrapping per page.
	FlattenPassLimit int
	// MaxSplitDepth bounds descent into nested splittable containers.
	MaxSplitDepth int
	// Footers selects whether new pages receive a copy of the source page
	// footer.
	Footers common.FooterMode
	// AutoMerge enables the opportunistic merge of adjacent same-shape
	// siblings that were never split. Tidiness only, not correctness.
	AutoMerge bool
}

func DefaultConfig() Config {
	return Config{
		Tolerance:        0.5,
		PullThreshold:    8,
		InsetTop:         48,
		InsetBottom:      48,
		MaxIterations:    2000,
		MaxSweeps:        12,
		SweepBudget:      2 * time.Second,
		FlattenPassLimit: 4,
		MaxSplitDepth:    3,
		Footers:          common.FooterModeCloned,
		AutoMerge:        true,
	}
}

// Engine drives pagination over one container tree. It is not safe for
// concurrent use: a single caller mutates the tree, and no collaborator may
// touch the container while a sweep is in progress.
type Engine struct {
	ora geometry.Oracle
	ids IDSource
	cfg Config
	log *zap.Logger

	// snapshots keeps the pre-split shape of every live split group, for
	// diagnostics only. Entries are dropped once a group fully re-merges.
	snapshots map[string]*etree.Element
}

func New(ora geometry.Oracle, ids IDSource, cfg Config, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	def := DefaultConfig()
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = def.MaxIterations
	}
	if cfg.MaxSweeps <= 0 {
		cfg.MaxSweeps = def.MaxSweeps
	}
	if cfg.FlattenPassLimit <= 0 {
		cfg.FlattenPassLimit = def.FlattenPassLimit
	}
	if cfg.MaxSplitDepth <= 0 {
		cfg.MaxSplitDepth = def.MaxSplitDepth
	}
	if ids == nil {
		ids = NewSequentialSource("split")
	}
	return &Engine{
		ora:       ora,
		ids:       ids,
		cfg:       cfg,
		log:       log.Named("paginate"),
		snapshots: make(map[string]*etree.Element),
	}
}

// measure returns el's box in layout units.
func (e *Engine) measure(el *etree.Element) geometry.Box {
	return e.ora.Measure(el).Norm()
}

// Snapshot returns the preserved pre-split shape of a live split group, or
// nil when the group is unknown or fully re-merged.
func (e *Engine) Snapshot(id string) *etree.Element {
	return e.snapshots[id]
}

// stampSplit ensures c carries a split-group id, snapshotting the un-split
// shape when the group is new, and returns the id.
func (e *Engine) stampSplit(c *etree.Element) string {
	if id := dom.SplitID(c); id != "" {
		return id
	}
	id := e.ids.Next()
	e.snapshots[id] = c.Copy()
	dom.SetSplitID(c, id)
	return id
}

// pruneSnapshots drops snapshots of groups no longer present in the tree
// (content removed externally between sweeps).
func (e *Engine) pruneSnapshots(root *etree.Element) {
	for id := range e.snapshots {
		if countSplitFragments(root, id, nil) == 0 {
			delete(e.snapshots, id)
		}
	}
}

// budget bounds one convergence pass. It is shared across all push, pull and
// merge iterations of the pass to guarantee termination even on pathological
// content.
type budget struct {
	left      int
	deadline  time.Time
	exhausted bool
}

func (e *Engine) newBudget() *budget {
	b := &budget{left: e.cfg.MaxIterations}
	if e.cfg.SweepBudget > 0 {
		b.deadline = time.Now().Add(e.cfg.SweepBudget)
	}
	return b
}

// step consumes one iteration; false means the budget is exhausted and the
// caller must stop, reporting whatever partial progress occurred.
func (b *budget) step() bool {
	if b.exhausted {
		return false
	}
	if b.left <= 0 || (!b.deadline.IsZero() && time.Now().After(b.deadline)) {
		b.exhausted = true
		return false
	}
	b.left--
	return true
}
