package result

// QuestionAnswer is one graded answer inside a submitted result.
// SelectedOption is nil when the participant left the question blank.
type QuestionAnswer struct {
	QuestionID     string  `json:"question_id"`
	SelectedOption *string `json:"selected_option"`
	Correct        bool    `json:"correct"`
	Points         float64 `json:"points"`
}

type ExamResult struct {
	ID         string           `json:"id"`
	ExamID     string           `json:"exam_id"`
	UserID     string           `json:"user_id"`
	StartedAt  int64            `json:"started_at"`
	EndedAt    int64            `json:"ended_at"`
	TotalScore float64          `json:"total_score"`
	MaxScore   float64          `json:"max_score"`
	Answers    []QuestionAnswer `json:"answers"`
	CreatedAt  int64            `json:"created_at"`
}
