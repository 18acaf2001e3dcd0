package exam

import "context"

type ListOpts struct {
	Institution string
	Q           string
	Limit       int
	Offset      int
}

type Store interface {
	Create(ctx context.Context, e Exam) (Exam, error)
	Get(ctx context.Context, id string) (Exam, error)
	List(ctx context.Context, opts ListOpts) ([]Exam, error)
	Update(ctx context.Context, id string, upd Update) (Exam, error)
	// Delete removes the exam document only. Any exam_configs row for the
	// exam is left in place; see the orphan discussion in DESIGN.md.
	Delete(ctx context.Context, id string) error
}
