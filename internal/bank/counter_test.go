package bank

import (
	"context"
	"testing"

	"github.com/zarifin2103/ExamSphere/internal/errs"
)

func TestCountSyncIncrementDecrement(t *testing.T) {
	store := NewInMemoryStore()
	sync := NewCountSync(store)
	ctx := context.Background()

	b, err := store.CreateBank(ctx, QuestionBank{ID: "QB1", Name: "Algebra"})
	if err != nil {
		t.Fatalf("create bank: %v", err)
	}
	if b.QuestionCount != 0 {
		t.Fatalf("new bank count = %d, want 0", b.QuestionCount)
	}

	for i := 0; i < 3; i++ {
		if err := sync.OnQuestionCreated(ctx, "QB1"); err != nil {
			t.Fatalf("increment %d: %v", i, err)
		}
	}
	if err := sync.OnQuestionDeleted(ctx, "QB1"); err != nil {
		t.Fatalf("decrement: %v", err)
	}

	b, _ = store.GetBank(ctx, "QB1")
	if b.QuestionCount != 2 {
		t.Fatalf("count after 3 creates and 1 delete = %d, want 2", b.QuestionCount)
	}
}

func TestCountSyncFloorsAtZero(t *testing.T) {
	store := NewInMemoryStore()
	sync := NewCountSync(store)
	ctx := context.Background()

	if _, err := store.CreateBank(ctx, QuestionBank{ID: "QB1", Name: "Algebra"}); err != nil {
		t.Fatalf("create bank: %v", err)
	}
	// More deletes than creates: the counter must never go negative.
	_ = sync.OnQuestionCreated(ctx, "QB1")
	for i := 0; i < 4; i++ {
		if err := sync.OnQuestionDeleted(ctx, "QB1"); err != nil {
			t.Fatalf("decrement %d: %v", i, err)
		}
	}
	b, _ := store.GetBank(ctx, "QB1")
	if b.QuestionCount != 0 {
		t.Fatalf("count = %d, want floor of 0", b.QuestionCount)
	}
}

func TestCountSyncMissingBank(t *testing.T) {
	sync := NewCountSync(NewInMemoryStore())
	err := sync.OnQuestionCreated(context.Background(), "nope")
	if !errs.IsNotFound(err) {
		t.Fatalf("increment on missing bank: got %v, want NotFoundError", err)
	}
}

func TestReconcilerFixesDrift(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	if _, err := store.CreateBank(ctx, QuestionBank{ID: "QB1", Name: "Algebra"}); err != nil {
		t.Fatalf("create bank: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := store.CreateQuestion(ctx, validQuestion("QB1")); err != nil {
			t.Fatalf("create question: %v", err)
		}
	}
	// Counter was never synced: it reads 0 while 3 questions exist.
	fixed, err := NewReconciler(store).Once(ctx)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if fixed != 1 {
		t.Fatalf("reconcile fixed %d banks, want 1", fixed)
	}
	b, _ := store.GetBank(ctx, "QB1")
	if b.QuestionCount != 3 {
		t.Fatalf("count after reconcile = %d, want 3", b.QuestionCount)
	}

	// Second run finds nothing to fix.
	fixed, err = NewReconciler(store).Once(ctx)
	if err != nil || fixed != 0 {
		t.Fatalf("second reconcile: fixed=%d err=%v, want 0 and nil", fixed, err)
	}
}

func validQuestion(bankID string) Question {
	return Question{
		BankID:        bankID,
		Text:          "Berapa hasil 2 + 3?",
		Options:       Options{A: "4", B: "5", C: "6", D: "7", E: "8"},
		CorrectOption: "B",
		Explanation:   "2 + 3 = 5",
		Points:        2,
	}
}
