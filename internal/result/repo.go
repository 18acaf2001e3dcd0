package result

import "context"

type ListOpts struct {
	ExamID string
	UserID string
	Limit  int
	Offset int
}

// Store holds submitted results. The portal only writes on submission and
// reads everywhere else; there is no update or delete path.
type Store interface {
	Submit(ctx context.Context, r ExamResult) (ExamResult, error)
	Get(ctx context.Context, id string) (ExamResult, error)
	// List returns results newest first, optionally filtered by exam and/or
	// participant.
	List(ctx context.Context, opts ListOpts) ([]ExamResult, error)
	// LatestForUserExam returns nil when the participant has no result for
	// the exam.
	LatestForUserExam(ctx context.Context, userID, examID string) (*ExamResult, error)
}
