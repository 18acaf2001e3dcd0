package bank

type QuestionBank struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// QuestionCount is a display hint maintained by the CountSync and fixed
	// up by the Reconciler. The authoritative value is the number of question
	// rows referencing this bank.
	QuestionCount int    `json:"question_count"`
	CreatedAt     int64  `json:"created_at"`
	UpdatedAt     int64  `json:"updated_at"`
	CreatedBy     string `json:"created_by,omitempty"`
}

// Options holds the five labeled answer choices every question carries.
type Options struct {
	A string `json:"A"`
	B string `json:"B"`
	C string `json:"C"`
	D string `json:"D"`
	E string `json:"E"`
}

type Question struct {
	ID            string  `json:"id"`
	BankID        string  `json:"bank_id"`
	Text          string  `json:"text"`
	Options       Options `json:"options"`
	CorrectOption string  `json:"correct_option"` // one of A..E
	Explanation   string  `json:"explanation"`
	Points        float64 `json:"points"`
	CreatedAt     int64   `json:"created_at"`
	UpdatedAt     int64   `json:"updated_at"`
	CreatedBy     string  `json:"created_by,omitempty"`
}

type BankUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type QuestionUpdate struct {
	Text          *string  `json:"text"`
	Options       *Options `json:"options"`
	CorrectOption *string  `json:"correct_option"`
	Explanation   *string  `json:"explanation"`
	Points        *float64 `json:"points"`
}
