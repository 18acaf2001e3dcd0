package bank

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

func (s *SQLStore) CreateBank(ctx context.Context, b QuestionBank) (QuestionBank, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := time.Now().Unix()
	b.CreatedAt, b.UpdatedAt = now, now
	b.QuestionCount = 0
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO question_banks (id,name,description,question_count,created_at,updated_at,created_by)
		 VALUES ($1,$2,$3,0,$4,$5,$6)`,
		b.ID, b.Name, b.Description, b.CreatedAt, b.UpdatedAt, b.CreatedBy)
	if err != nil {
		return QuestionBank{}, err
	}
	return b, nil
}

func (s *SQLStore) GetBank(ctx context.Context, id string) (QuestionBank, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,name,description,question_count,created_at,updated_at,created_by
		 FROM question_banks WHERE id=$1`, id)
	var b QuestionBank
	if err := row.Scan(&b.ID, &b.Name, &b.Description, &b.QuestionCount,
		&b.CreatedAt, &b.UpdatedAt, &b.CreatedBy); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return QuestionBank{}, errs.NotFoundf("question bank %s not found", id)
		}
		return QuestionBank{}, err
	}
	return b, nil
}

func (s *SQLStore) ListBanks(ctx context.Context, opts BankListOpts) ([]QuestionBank, error) {
	q := `SELECT id,name,description,question_count,created_at,updated_at,created_by FROM question_banks`
	args := []any{}
	if opts.CreatedBy != "" {
		args = append(args, opts.CreatedBy)
		q += ` WHERE created_by=$1`
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
	out := []QuestionBank{}
	for rows.Next() {
		var b QuestionBank
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.QuestionCount,
			&b.CreatedAt, &b.UpdatedAt, &b.CreatedBy); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *SQLStore) UpdateBank(ctx context.Context, id string, upd BankUpdate) (QuestionBank, error) {
	b, err := s.GetBank(ctx, id)
	if err != nil {
		return QuestionBank{}, err
	}
	if upd.Name != nil {
		b.Name = *upd.Name
	}
	if upd.Description != nil {
		b.Description = *upd.Description
	}
	b.UpdatedAt = time.Now().Unix()
	_, err = s.db.ExecContext(ctx,
		`UPDATE question_banks SET name=$1,description=$2,updated_at=$3 WHERE id=$4`,
		b.Name, b.Description, b.UpdatedAt, id)
	if err != nil {
		return QuestionBank{}, err
	}
	return b, nil
}

func (s *SQLStore) DeleteBank(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM question_banks WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.NotFoundf("question bank %s not found", id)
	}
	return nil
}

func (s *SQLStore) CreateQuestion(ctx context.Context, q Question) (Question, error) {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	now := time.Now().Unix()
	q.CreatedAt, q.UpdatedAt = now, now
	oj, err := json.Marshal(q.Options)
	if err != nil {
		return Question{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO questions (id,bank_id,text,options_json,correct_option,explanation,points,created_at,updated_at,created_by)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		q.ID, q.BankID, q.Text, string(oj), q.CorrectOption, q.Explanation, q.Points, q.CreatedAt, q.UpdatedAt, q.CreatedBy)
	if err != nil {
		return Question{}, err
	}
	return q, nil
}

func (s *SQLStore) GetQuestion(ctx context.Context, id string) (Question, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,bank_id,text,options_json,correct_option,explanation,points,created_at,updated_at,created_by
		 FROM questions WHERE id=$1`, id)
	q, err := scanQuestion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Question{}, errs.NotFoundf("question %s not found", id)
		}
		return Question{}, err
	}
	return q, nil
}

func (s *SQLStore) ListQuestions(ctx context.Context, opts QuestionListOpts) ([]Question, error) {
	q := `SELECT id,bank_id,text,options_json,correct_option,explanation,points,created_at,updated_at,created_by
	      FROM questions`
	args := []any{}
	if opts.BankID != "" {
		args = append(args, opts.BankID)
		q += ` WHERE bank_id=$1`
	}
	q += ` ORDER BY created_at, id`
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
	out := []Question{}
	for rows.Next() {
		qq, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, qq)
	}
	return out, rows.Err()
}

func (s *SQLStore) UpdateQuestion(ctx context.Context, id string, upd QuestionUpdate) (Question, error) {
	q, err := s.GetQuestion(ctx, id)
	if err != nil {
		return Question{}, err
	}
	if upd.Text != nil {
		q.Text = *upd.Text
	}
	if upd.Options != nil {
		q.Options = *upd.Options
	}
	if upd.CorrectOption != nil {
		q.CorrectOption = *upd.CorrectOption
	}
	if upd.Explanation != nil {
		q.Explanation = *upd.Explanation
	}
	if upd.Points != nil {
		q.Points = *upd.Points
	}
	q.UpdatedAt = time.Now().Unix()
	oj, err := json.Marshal(q.Options)
	if err != nil {
		return Question{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE questions SET text=$1,options_json=$2,correct_option=$3,explanation=$4,points=$5,updated_at=$6
		 WHERE id=$7`,
		q.Text, string(oj), q.CorrectOption, q.Explanation, q.Points, q.UpdatedAt, id)
	if err != nil {
		return Question{}, err
	}
	return q, nil
}

func (s *SQLStore) DeleteQuestion(ctx context.Context, id string) (Question, error) {
	q, err := s.GetQuestion(ctx, id)
	if err != nil {
		return Question{}, err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id=$1`, id); err != nil {
		return Question{}, err
	}
	return q, nil
}

func (s *SQLStore) IncrementQuestionCount(ctx context.Context, bankID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE question_banks SET question_count=question_count+1, updated_at=$1 WHERE id=$2`,
		time.Now().Unix(), bankID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.NotFoundf("question bank %s not found", bankID)
	}
	return nil
}

func (s *SQLStore) DecrementQuestionCount(ctx context.Context, bankID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE question_banks
		 SET question_count = CASE WHEN question_count > 0 THEN question_count-1 ELSE 0 END,
		     updated_at=$1
		 WHERE id=$2`,
		time.Now().Unix(), bankID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.NotFoundf("question bank %s not found", bankID)
	}
	return nil
}

func (s *SQLStore) ReconcileCounts(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE question_banks
		 SET question_count = (SELECT COUNT(*) FROM questions WHERE questions.bank_id = question_banks.id)
		 WHERE question_count <> (SELECT COUNT(*) FROM questions WHERE questions.bank_id = question_banks.id)`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanQuestion(r rowScanner) (Question, error) {
	var q Question
	var oj string
	if err := r.Scan(&q.ID, &q.BankID, &q.Text, &oj, &q.CorrectOption,
		&q.Explanation, &q.Points, &q.CreatedAt, &q.UpdatedAt, &q.CreatedBy); err != nil {
		return Question{}, err
	}
	if err := json.Unmarshal([]byte(oj), &q.Options); err != nil {
		return Question{}, err
	}
	return q, nil
}
