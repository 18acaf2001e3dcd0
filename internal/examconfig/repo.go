package examconfig

import "context"

// Store persists config documents. Each write is semantic and atomic:
// AppendBank performs the create-or-append decision inside one transaction on
// the exam_id unique index, so two concurrent first links for the same exam
// cannot produce two documents.
type Store interface {
	// GetByExam returns the config for the exam, or NotFound when the exam
	// has never been configured.
	GetByExam(ctx context.Context, examID string) (ExamConfig, error)

	// AppendBank creates the config on first link or appends to the existing
	// list. A link for a bank already present yields Conflict.
	AppendBank(ctx context.Context, examID string, entry ExamQuestionBank, actingUserID string) (ExamConfig, error)

	// RemoveBank filters every entry for the bank out of the list, keeping
	// the document even when the list empties. Removing an absent bank from
	// an existing config is a no-op. NotFound when no config exists.
	RemoveBank(ctx context.Context, examID, bankID string) (ExamConfig, error)

	// UpdateRule replaces the scoring rule of the matching association in
	// place. NotFound when the config or the association is missing.
	UpdateRule(ctx context.Context, examID, bankID string, rule ScoringRule) (ExamConfig, error)

	// ListAll returns every config document, for the configuration overview.
	ListAll(ctx context.Context) ([]ExamConfig, error)
}
