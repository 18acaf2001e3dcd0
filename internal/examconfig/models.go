// Package examconfig owns the per-exam scoring configuration: the
// many-to-many linkage between an exam and its question banks, each link
// carrying its own scoring rule. At most one config document exists per exam,
// enforced by a unique index on exam_id.
package examconfig

import "github.com/zarifin2103/ExamSphere/internal/errs"

// ScoringRule is the points awarded per response outcome for questions drawn
// from one bank within one exam. It has no identity of its own.
type ScoringRule struct {
	CorrectPoints    float64 `json:"correct_points"`
	IncorrectPoints  float64 `json:"incorrect_points"`
	UnansweredPoints float64 `json:"unanswered_points"`
}

func (r ScoringRule) Validate() error {
	if r.CorrectPoints < 0 {
		return errs.Validationf("correct_points must not be negative")
	}
	return nil
}

// ExamQuestionBank is one association inside a config: a bank reference plus
// its scoring rule.
type ExamQuestionBank struct {
	QuestionBankID string      `json:"question_bank_id"`
	ScoringRule    ScoringRule `json:"scoring_rule"`
}

type ExamConfig struct {
	ID        string             `json:"id"`
	ExamID    string             `json:"exam_id"`
	Banks     []ExamQuestionBank `json:"question_banks"`
	CreatedAt int64              `json:"created_at"`
	UpdatedAt int64              `json:"updated_at"`
	CreatedBy string             `json:"created_by,omitempty"`
}
