package result

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zarifin2103/ExamSphere/internal/errs"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Submit(ctx context.Context, r ExamResult) (ExamResult, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.CreatedAt = time.Now().Unix()
	if r.Answers == nil {
		r.Answers = []QuestionAnswer{}
	}
	aj, err := json.Marshal(r.Answers)
	if err != nil {
		return ExamResult{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO exam_results (id,exam_id,user_id,started_at,ended_at,total_score,max_score,answers_json,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		r.ID, r.ExamID, r.UserID, r.StartedAt, r.EndedAt, r.TotalScore, r.MaxScore, string(aj), r.CreatedAt)
	if err != nil {
		return ExamResult{}, err
	}
	return r, nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (ExamResult, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,exam_id,user_id,started_at,ended_at,total_score,max_score,answers_json,created_at
		 FROM exam_results WHERE id=$1`, id)
	r, err := scanResult(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ExamResult{}, errs.NotFoundf("result %s not found", id)
		}
		return ExamResult{}, err
	}
	return r, nil
}

func (s *SQLStore) List(ctx context.Context, opts ListOpts) ([]ExamResult, error) {
	q := `SELECT id,exam_id,user_id,started_at,ended_at,total_score,max_score,answers_json,created_at
	      FROM exam_results`
	args := []any{}
	where := []string{}
	if opts.ExamID != "" {
		args = append(args, opts.ExamID)
		where = append(where, fmt.Sprintf("exam_id=$%d", len(args)))
	}
	if opts.UserID != "" {
		args = append(args, opts.UserID)
		where = append(where, fmt.Sprintf("user_id=$%d", len(args)))
	}
	for i, w := range where {
		if i == 0 {
			q += ` WHERE ` + w
		} else {
			q += ` AND ` + w
		}
	}
	q += ` ORDER BY created_at DESC, id`
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		q += fmt.Sprintf(` LIMIT $%d`, len(args))
		if opts.Offset > 0 {
			args = append(args, opts.Offset)
			q += fmt.Sprintf(` OFFSET $%d`, len(args))
		}
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ExamResult{}
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) LatestForUserExam(ctx context.Context, userID, examID string) (*ExamResult, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,exam_id,user_id,started_at,ended_at,total_score,max_score,answers_json,created_at
		 FROM exam_results WHERE user_id=$1 AND exam_id=$2 ORDER BY created_at DESC LIMIT 1`,
		userID, examID)
	r, err := scanResult(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanResult(row rowScanner) (ExamResult, error) {
	var r ExamResult
	var aj string
	if err := row.Scan(&r.ID, &r.ExamID, &r.UserID, &r.StartedAt, &r.EndedAt,
		&r.TotalScore, &r.MaxScore, &aj, &r.CreatedAt); err != nil {
		return ExamResult{}, err
	}
	if err := json.Unmarshal([]byte(aj), &r.Answers); err != nil {
		return ExamResult{}, err
	}
	return r, nil
}
