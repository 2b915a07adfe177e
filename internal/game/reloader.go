package game

import (
	"context"
	"time"
)

// reloadLoop is the single persistent reload task. With every slot loaded it
// parks on the slot-freed channel until a fire empties one or the match is
// cancelled. Otherwise it refills empty slots one at a time in index order,
// sleeping the per-slot delay with no lock held and re-checking emptiness
// before loading, so a slot concurrently filled elsewhere is never loaded
// twice. Multi-slot reload is therefore serial, never parallel.
func reloadLoop(ctx context.Context, b *Battery, delay time.Duration) {
	for ctx.Err() == nil {
		if b.full() {
			select {
			case <-ctx.Done():
				return
			case <-b.Freed():
			}
			continue // recheck: the wake may be stale
		}
		for i := 0; i < b.Size(); i++ {
			if ctx.Err() != nil {
				return
			}
			if b.loadedAt(i) {
				continue
			}
			if !sleepCtx(ctx, delay) {
				return
			}
			b.load(i)
		}
	}
}
