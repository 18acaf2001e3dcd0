package bank

import (
	"context"
	"log"
	"strings"

	"github.com/zarifin2103/ExamSphere/internal/errs"
)

var optionLabels = []string{"A", "B", "C", "D", "E"}

// Service fronts the question-bank store: it validates question payloads and
// drives the counter sync around question creation and deletion. Counter
// failures after a successful question write are logged and reported in the
// result, never rolled back.
type Service struct {
	store Store
	sync  *CountSync
}

func NewService(store Store) *Service {
	return &Service{store: store, sync: NewCountSync(store)}
}

func (s *Service) Store() Store { return s.store }

// CreateQuestionResult carries the created question plus a warning when the
// bank counter could not be adjusted.
type CreateQuestionResult struct {
	Question Question `json:"question"`
	Warning  string   `json:"warning,omitempty"`
}

func (s *Service) CreateQuestion(ctx context.Context, q Question, actingUserID string) (CreateQuestionResult, error) {
	if err := ValidateQuestion(q); err != nil {
		return CreateQuestionResult{}, err
	}
	if _, err := s.store.GetBank(ctx, q.BankID); err != nil {
		return CreateQuestionResult{}, err
	}
	q.CreatedBy = actingUserID
	created, err := s.store.CreateQuestion(ctx, q)
	if err != nil {
		return CreateQuestionResult{}, err
	}
	res := CreateQuestionResult{Question: created}
	if err := s.sync.OnQuestionCreated(ctx, q.BankID); err != nil {
		log.Printf("warn: question %s created but bank %s counter not incremented: %v", created.ID, q.BankID, err)
		res.Warning = "question created; bank question count may be stale"
	}
	return res, nil
}

func (s *Service) UpdateQuestion(ctx context.Context, id string, upd QuestionUpdate) (Question, error) {
	if upd.CorrectOption != nil && !validOptionLabel(*upd.CorrectOption) {
		return Question{}, errs.Validationf("correct_option must be one of A..E")
	}
	if upd.Points != nil && *upd.Points <= 0 {
		return Question{}, errs.Validationf("points must be positive")
	}
	if upd.Options != nil {
		if err := validateOptions(*upd.Options); err != nil {
			return Question{}, err
		}
	}
	if upd.Explanation != nil && strings.TrimSpace(*upd.Explanation) == "" {
		return Question{}, errs.Validationf("explanation is required")
	}
	return s.store.UpdateQuestion(ctx, id, upd)
}

// DeleteQuestion removes the question and decrements its bank's counter.
func (s *Service) DeleteQuestion(ctx context.Context, id string) (string, error) {
	q, err := s.store.DeleteQuestion(ctx, id)
	if err != nil {
		return "", err
	}
	warning := ""
	if err := s.sync.OnQuestionDeleted(ctx, q.BankID); err != nil {
		log.Printf("warn: question %s deleted but bank %s counter not decremented: %v", id, q.BankID, err)
		warning = "question deleted; bank question count may be stale"
	}
	return warning, nil
}

// ValidateQuestion enforces the portal's fixed question shape: text, five
// non-empty options, a correct label from A..E, an explanation, and a
// positive point value.
func ValidateQuestion(q Question) error {
	if strings.TrimSpace(q.Text) == "" {
		return errs.Validationf("question text is required")
	}
	if q.BankID == "" {
		return errs.Validationf("bank_id is required")
	}
	if err := validateOptions(q.Options); err != nil {
		return err
	}
	if !validOptionLabel(q.CorrectOption) {
		return errs.Validationf("correct_option must be one of A..E")
	}
	if strings.TrimSpace(q.Explanation) == "" {
		return errs.Validationf("explanation is required")
	}
	if q.Points <= 0 {
		return errs.Validationf("points must be positive")
	}
	return nil
}

func validateOptions(o Options) error {
	for label, v := range map[string]string{"A": o.A, "B": o.B, "C": o.C, "D": o.D, "E": o.E} {
		if strings.TrimSpace(v) == "" {
			return errs.Validationf("option %s must not be empty", label)
		}
	}
	return nil
}

func validOptionLabel(s string) bool {
	for _, l := range optionLabels {
		if s == l {
			return true
		}
	}
	return false
}
