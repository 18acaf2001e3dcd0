package bank

import (
	"context"
	"log"
	"time"
)

// Reconciler periodically recomputes every bank's question_count from the
// question rows, repairing drift left behind by missed or duplicated counter
// events.
type Reconciler struct {
	store Store
}

func NewReconciler(store Store) *Reconciler { return &Reconciler{store: store} }

func (r *Reconciler) Once(ctx context.Context) (int64, error) {
	return r.store.ReconcileCounts(ctx)
}

// Run ticks until ctx is cancelled. Meant to be launched as a goroutine from
// main.
func (r *Reconciler) Run(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			fixed, err := r.Once(ctx)
			if err != nil {
				log.Printf("question-count reconcile failed: %v", err)
				continue
			}
			if fixed > 0 {
				log.Printf("question-count reconcile corrected %d bank(s)", fixed)
			}
		}
	}
}
