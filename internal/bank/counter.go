package bank

import "context"

// CountSync keeps QuestionBank.QuestionCount in step with question writes.
// Each call blindly shifts the counter by one; duplicate deliveries of the
// same logical event are the caller's problem. The counter is a display hint,
// not a source of truth, so a miscount is tolerated until the Reconciler runs.
type CountSync struct {
	store Store
}

func NewCountSync(store Store) *CountSync { return &CountSync{store: store} }

// OnQuestionCreated bumps the bank's counter. A missing bank surfaces as
// NotFound; callers treat that as a non-fatal consistency warning because the
// question itself has already been written.
func (s *CountSync) OnQuestionCreated(ctx context.Context, bankID string) error {
	return s.store.IncrementQuestionCount(ctx, bankID)
}

// OnQuestionDeleted drops the counter, floored at zero.
func (s *CountSync) OnQuestionDeleted(ctx context.Context, bankID string) error {
	return s.store.DecrementQuestionCount(ctx, bankID)
}
