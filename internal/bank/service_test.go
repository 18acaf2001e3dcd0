package bank

import (
	"context"
	"testing"

	"github.com/zarifin2103/ExamSphere/internal/errs"
)

func TestValidateQuestion(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(q *Question)
		wantErr bool
	}{
		{name: "valid", mutate: func(q *Question) {}},
		{name: "empty text", mutate: func(q *Question) { q.Text = "  " }, wantErr: true},
		{name: "missing bank", mutate: func(q *Question) { q.BankID = "" }, wantErr: true},
		{name: "empty option C", mutate: func(q *Question) { q.Options.C = "" }, wantErr: true},
		{name: "empty option E", mutate: func(q *Question) { q.Options.E = " " }, wantErr: true},
		{name: "correct option out of range", mutate: func(q *Question) { q.CorrectOption = "F" }, wantErr: true},
		{name: "correct option lowercase", mutate: func(q *Question) { q.CorrectOption = "b" }, wantErr: true},
		{name: "missing explanation", mutate: func(q *Question) { q.Explanation = "" }, wantErr: true},
		{name: "zero points", mutate: func(q *Question) { q.Points = 0 }, wantErr: true},
		{name: "negative points", mutate: func(q *Question) { q.Points = -1 }, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := validQuestion("QB1")
			tc.mutate(&q)
			err := ValidateQuestion(q)
			if tc.wantErr && !errs.IsValidation(err) {
				t.Errorf("got %v, want ValidationError", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestServiceCreateQuestionSyncsCounter(t *testing.T) {
	svc := NewService(NewInMemoryStore())
	ctx := context.Background()

	if _, err := svc.Store().CreateBank(ctx, QuestionBank{ID: "QB1", Name: "Algebra"}); err != nil {
		t.Fatalf("create bank: %v", err)
	}

	res, err := svc.CreateQuestion(ctx, validQuestion("QB1"), "admin1")
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	if res.Warning != "" {
		t.Errorf("unexpected warning: %q", res.Warning)
	}
	if res.Question.CreatedBy != "admin1" {
		t.Errorf("CreatedBy = %q, want admin1", res.Question.CreatedBy)
	}

	b, _ := svc.Store().GetBank(ctx, "QB1")
	if b.QuestionCount != 1 {
		t.Fatalf("count after create = %d, want 1", b.QuestionCount)
	}

	if _, err := svc.DeleteQuestion(ctx, res.Question.ID); err != nil {
		t.Fatalf("delete question: %v", err)
	}
	b, _ = svc.Store().GetBank(ctx, "QB1")
	if b.QuestionCount != 0 {
		t.Fatalf("count after delete = %d, want 0", b.QuestionCount)
	}
}

func TestServiceCreateQuestionUnknownBank(t *testing.T) {
	svc := NewService(NewInMemoryStore())
	_, err := svc.CreateQuestion(context.Background(), validQuestion("nope"), "admin1")
	if !errs.IsNotFound(err) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
}

func TestServiceDeleteQuestionOrphanedBankWarns(t *testing.T) {
	svc := NewService(NewInMemoryStore())
	ctx := context.Background()

	if _, err := svc.Store().CreateBank(ctx, QuestionBank{ID: "QB1", Name: "Algebra"}); err != nil {
		t.Fatalf("create bank: %v", err)
	}
	res, err := svc.CreateQuestion(ctx, validQuestion("QB1"), "admin1")
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	// Bank deleted out from under its questions: the question delete still
	// succeeds, with a stale-counter warning instead of a failure.
	if err := svc.Store().DeleteBank(ctx, "QB1"); err != nil {
		t.Fatalf("delete bank: %v", err)
	}
	warning, err := svc.DeleteQuestion(ctx, res.Question.ID)
	if err != nil {
		t.Fatalf("delete question: %v", err)
	}
	if warning == "" {
		t.Error("expected a stale-counter warning")
	}
}

func TestServiceUpdateQuestionValidation(t *testing.T) {
	svc := NewService(NewInMemoryStore())
	ctx := context.Background()

	if _, err := svc.Store().CreateBank(ctx, QuestionBank{ID: "QB1", Name: "Algebra"}); err != nil {
		t.Fatalf("create bank: %v", err)
	}
	res, err := svc.CreateQuestion(ctx, validQuestion("QB1"), "admin1")
	if err != nil {
		t.Fatalf("create question: %v", err)
	}

	bad := "Z"
	if _, err := svc.UpdateQuestion(ctx, res.Question.ID, QuestionUpdate{CorrectOption: &bad}); !errs.IsValidation(err) {
		t.Errorf("bad correct option: got %v, want ValidationError", err)
	}
	neg := -2.0
	if _, err := svc.UpdateQuestion(ctx, res.Question.ID, QuestionUpdate{Points: &neg}); !errs.IsValidation(err) {
		t.Errorf("negative points: got %v, want ValidationError", err)
	}

	ok := "D"
	q, err := svc.UpdateQuestion(ctx, res.Question.ID, QuestionUpdate{CorrectOption: &ok})
	if err != nil {
		t.Fatalf("valid update: %v", err)
	}
	if q.CorrectOption != "D" {
		t.Errorf("CorrectOption = %q, want D", q.CorrectOption)
	}
	if q.Text != res.Question.Text {
		t.Errorf("partial update must not touch text: %q", q.Text)
	}
}
