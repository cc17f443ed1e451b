package paginate

import (
	"context"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"repage/dom"
)

// Reflow runs one synchronous pagination sweep over the container: pagination
// invariants, wrapper flattening, then push, merge, pull and merge per page
// in order, and finally trailing-page cleanup. Returns whether anything
// changed; on an already-converged tree it performs zero mutations and
// returns false. Intended for small localized edits - it does not wait for
// re-measurement, so large changes should go through ReflowUntilStable.
func (e *Engine) Reflow(root *etree.Element) bool {
	return e.reflowOnce(root, e.newBudget())
}

func (e *Engine) reflowOnce(root *etree.Element, b *budget) bool {
	changed := e.EnsurePaginated(root)

	for _, page := range dom.Pages(root) {
		if e.flattenWrappers(page) {
			changed = true
		}
	}

	// The page list is rebuilt at each stage boundary: pushing can create
	// pages and pulling can remove them.
	for i := 0; ; i++ {
		pages := dom.Pages(root)
		if i >= len(pages) {
			break
		}
		page := pages[i]

		if e.pushPage(root, page, b) {
			changed = true
		}
		if e.mergeAdjacent(page, b) {
			changed = true
		}

		pages = dom.Pages(root)
		if i+1 < len(pages) {
			next := pages[i+1]
			// Fragments reunited by the push land adjacent on the next page.
			if e.mergeAdjacent(next, b) {
				changed = true
			}
			if e.pullPage(page, next, b) {
				changed = true
			}
			if e.mergeAdjacent(page, b) {
				changed = true
			}
		}
		if b.exhausted {
			break
		}
	}

	if e.trimTrailingPages(root) {
		changed = true
	}
	e.pruneSnapshots(root)
	return changed
}

// ReflowUntilStable repeatedly sweeps the container until a full sweep
// reports no change or the sweep/iteration budget runs out. Between sweeps it
// waits on the oracle's Sync: a structural change invalidates previously read
// geometry, and only the renderer knows when measurements are accurate again.
// The returned flag reports whether any sweep changed the tree; on budget
// exhaustion partial progress is still reported so the caller may re-invoke.
func (e *Engine) ReflowUntilStable(ctx context.Context, root *etree.Element) (bool, error) {
	b := e.newBudget()
	changed := false
	for sweep := 0; sweep < e.cfg.MaxSweeps; sweep++ {
		if err := ctx.Err(); err != nil {
			return changed, err
		}
		if !e.reflowOnce(root, b) {
			e.log.Debug("Reflow converged", zap.Int("sweeps", sweep+1))
			return changed, nil
		}
		changed = true
		if b.exhausted {
			e.log.Warn("Reflow budget exhausted before convergence", zap.Int("sweeps", sweep+1))
			return changed, nil
		}
		if err := e.ora.Sync(ctx); err != nil {
			return changed, err
		}
	}
	e.log.Warn("Reflow sweep limit reached before convergence", zap.Int("sweeps", e.cfg.MaxSweeps))
	return changed, nil
}
