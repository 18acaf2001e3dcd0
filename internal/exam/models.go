package exam

// Supervisor is a reference to a supervising user, denormalized with the
// display name so exam lists render without a join.
type Supervisor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Exam struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Institution string       `json:"institution"`
	Address     string       `json:"address"`
	Materials   []string     `json:"materials"`
	Supervisors []Supervisor `json:"supervisors"`
	Notes       string       `json:"notes,omitempty"`
	CreatedAt   int64        `json:"created_at"`
	UpdatedAt   int64        `json:"updated_at"`
	CreatedBy   string       `json:"created_by,omitempty"`
}

// Update carries a partial edit; nil fields are left untouched.
type Update struct {
	Name        *string       `json:"name"`
	Institution *string       `json:"institution"`
	Address     *string       `json:"address"`
	Materials   *[]string     `json:"materials"`
	Supervisors *[]Supervisor `json:"supervisors"`
	Notes       *string       `json:"notes"`
}

func (u Update) apply(e *Exam) {
	if u.Name != nil {
		e.Name = *u.Name
	}
	if u.Institution != nil {
		e.Institution = *u.Institution
	}
	if u.Address != nil {
		e.Address = *u.Address
	}
	if u.Materials != nil {
		e.Materials = *u.Materials
	}
	if u.Supervisors != nil {
		e.Supervisors = *u.Supervisors
	}
	if u.Notes != nil {
		e.Notes = *u.Notes
	}
}
