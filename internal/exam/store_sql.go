package exam

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

func (s *SQLStore) Create(ctx context.Context, e Exam) (Exam, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := time.Now().Unix()
	e.CreatedAt, e.UpdatedAt = now, now
	mj, err := json.Marshal(matOrEmpty(e.Materials))
	if err != nil {
		return Exam{}, err
	}
	sj, err := json.Marshal(supOrEmpty(e.Supervisors))
	if err != nil {
		return Exam{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO exams (id,name,institution,address,materials_json,supervisors_json,notes,created_at,updated_at,created_by)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		e.ID, e.Name, e.Institution, e.Address, string(mj), string(sj), e.Notes, e.CreatedAt, e.UpdatedAt, e.CreatedBy)
	if err != nil {
		return Exam{}, err
	}
	return e, nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (Exam, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,name,institution,address,materials_json,supervisors_json,notes,created_at,updated_at,created_by
		 FROM exams WHERE id=$1`, id)
	e, err := scanExam(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Exam{}, errs.NotFoundf("exam %s not found", id)
		}
		return Exam{}, err
	}
	return e, nil
}

func (s *SQLStore) List(ctx context.Context, opts ListOpts) ([]Exam, error) {
	q := `SELECT id,name,institution,address,materials_json,supervisors_json,notes,created_at,updated_at,created_by
	      FROM exams`
	where := ""
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return placeholder(len(args))
	}
	if opts.Institution != "" {
		where = ` WHERE institution=` + arg(opts.Institution)
	}
	if opts.Q != "" {
		if where == "" {
			where = ` WHERE `
		} else {
			where += ` AND `
		}
		where += `name LIKE ` + arg("%"+opts.Q+"%")
	}
	q += where + ` ORDER BY created_at DESC, id`
	if opts.Limit > 0 {
		q += ` LIMIT ` + arg(opts.Limit)
		if opts.Offset > 0 {
			q += ` OFFSET ` + arg(opts.Offset)
		}
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Exam{}
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLStore) Update(ctx context.Context, id string, upd Update) (Exam, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return Exam{}, err
	}
	upd.apply(&e)
	e.UpdatedAt = time.Now().Unix()
	mj, err := json.Marshal(matOrEmpty(e.Materials))
	if err != nil {
		return Exam{}, err
	}
	sj, err := json.Marshal(supOrEmpty(e.Supervisors))
	if err != nil {
		return Exam{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE exams SET name=$1,institution=$2,address=$3,materials_json=$4,supervisors_json=$5,notes=$6,updated_at=$7
		 WHERE id=$8`,
		e.Name, e.Institution, e.Address, string(mj), string(sj), e.Notes, e.UpdatedAt, id)
	if err != nil {
		return Exam{}, err
	}
	return e, nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM exams WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.NotFoundf("exam %s not found", id)
	}
	return nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanExam(r rowScanner) (Exam, error) {
	var e Exam
	var mj, sj string
	if err := r.Scan(&e.ID, &e.Name, &e.Institution, &e.Address, &mj, &sj,
		&e.Notes, &e.CreatedAt, &e.UpdatedAt, &e.CreatedBy); err != nil {
		return Exam{}, err
	}
	if err := json.Unmarshal([]byte(mj), &e.Materials); err != nil {
		return Exam{}, err
	}
	if err := json.Unmarshal([]byte(sj), &e.Supervisors); err != nil {
		return Exam{}, err
	}
	return e, nil
}

func matOrEmpty(m []string) []string {
	if m == nil {
		return []string{}
	}
	return m
}

func supOrEmpty(s []Supervisor) []Supervisor {
	if s == nil {
		return []Supervisor{}
	}
	return s
}

// placeholder renders $n; pgx and modernc sqlite both accept this form.
func placeholder(n int) string { return fmt.Sprintf("$%d", n) }
