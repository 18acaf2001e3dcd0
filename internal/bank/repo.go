package bank

import "context"

type BankListOpts struct {
	CreatedBy string
	Limit     int
	Offset    int
}

type QuestionListOpts struct {
	BankID string
	Limit  int
	Offset int
}

type Store interface {
	CreateBank(ctx context.Context, b QuestionBank) (QuestionBank, error)
	GetBank(ctx context.Context, id string) (QuestionBank, error)
	ListBanks(ctx context.Context, opts BankListOpts) ([]QuestionBank, error)
	UpdateBank(ctx context.Context, id string, upd BankUpdate) (QuestionBank, error)
	// DeleteBank does not touch questions still referencing the bank; they
	// become orphans the reconciler and list queries simply no longer reach.
	DeleteBank(ctx context.Context, id string) error

	CreateQuestion(ctx context.Context, q Question) (Question, error)
	GetQuestion(ctx context.Context, id string) (Question, error)
	ListQuestions(ctx context.Context, opts QuestionListOpts) ([]Question, error)
	UpdateQuestion(ctx context.Context, id string, upd QuestionUpdate) (Question, error)
	DeleteQuestion(ctx context.Context, id string) (Question, error)

	// Counter maintenance. Both adjust by exactly one in a single atomic
	// statement; the decrement floors at zero.
	IncrementQuestionCount(ctx context.Context, bankID string) error
	DecrementQuestionCount(ctx context.Context, bankID string) error

	// ReconcileCounts recomputes every bank's question_count from the
	// question rows and returns how many banks were corrected.
	ReconcileCounts(ctx context.Context) (int64, error)
}
