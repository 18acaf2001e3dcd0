package examconfig

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zarifin2103/ExamSphere/internal/errs"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) GetByExam(ctx context.Context, examID string) (ExamConfig, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,exam_id,banks_json,created_at,updated_at,created_by
		 FROM exam_configs WHERE exam_id=$1`, examID)
	cfg, err := scanConfig(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ExamConfig{}, errs.NotFoundf("no configuration for exam %s", examID)
		}
		return ExamConfig{}, err
	}
	return cfg, nil
}

func (s *SQLStore) AppendBank(ctx context.Context, examID string, entry ExamQuestionBank, actingUserID string) (ExamConfig, error) {
	// Two passes at most: if our create loses the unique-index race, the
	// second pass sees the winner's row and appends to it.
	for attempt := 0; attempt < 2; attempt++ {
		cfg, err := s.withTx(ctx, func(tx *sql.Tx) (ExamConfig, error) {
			cfg, err := s.getForUpdate(ctx, tx, examID)
			if err == nil {
				if containsBank(cfg.Banks, entry.QuestionBankID) {
					return ExamConfig{}, errs.Conflictf("question bank %s is already linked to exam %s", entry.QuestionBankID, examID)
				}
				cfg.Banks = append(cfg.Banks, entry)
				if err := s.writeBanks(ctx, tx, &cfg); err != nil {
					return ExamConfig{}, err
				}
				return cfg, nil
			}
			if !errs.IsNotFound(err) {
				return ExamConfig{}, err
			}
			now := time.Now().Unix()
			cfg = ExamConfig{
				ID:        uuid.NewString(),
				ExamID:    examID,
				Banks:     []ExamQuestionBank{entry},
				CreatedAt: now,
				UpdatedAt: now,
				CreatedBy: actingUserID,
			}
			bj, err := json.Marshal(cfg.Banks)
			if err != nil {
				return ExamConfig{}, err
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO exam_configs (id,exam_id,banks_json,created_at,updated_at,created_by)
				 VALUES ($1,$2,$3,$4,$5,$6)`,
				cfg.ID, cfg.ExamID, string(bj), cfg.CreatedAt, cfg.UpdatedAt, cfg.CreatedBy)
			return cfg, err
		})
		if err != nil && isUniqueViolation(err) && attempt == 0 {
			continue // lost the create race; append to the winner's document
		}
		return cfg, err
	}
	return ExamConfig{}, errs.Conflictf("concurrent configuration update for exam %s", examID)
}

func (s *SQLStore) RemoveBank(ctx context.Context, examID, bankID string) (ExamConfig, error) {
	return s.withTx(ctx, func(tx *sql.Tx) (ExamConfig, error) {
		cfg, err := s.getForUpdate(ctx, tx, examID)
		if err != nil {
			return ExamConfig{}, err
		}
		kept := cfg.Banks[:0:0]
		for _, b := range cfg.Banks {
			if b.QuestionBankID != bankID {
				kept = append(kept, b)
			}
		}
		cfg.Banks = kept
		if err := s.writeBanks(ctx, tx, &cfg); err != nil {
			return ExamConfig{}, err
		}
		return cfg, nil
	})
}

func (s *SQLStore) UpdateRule(ctx context.Context, examID, bankID string, rule ScoringRule) (ExamConfig, error) {
	return s.withTx(ctx, func(tx *sql.Tx) (ExamConfig, error) {
		cfg, err := s.getForUpdate(ctx, tx, examID)
		if err != nil {
			return ExamConfig{}, err
		}
		found := false
		for i := range cfg.Banks {
			if cfg.Banks[i].QuestionBankID == bankID {
				cfg.Banks[i].ScoringRule = rule
				found = true
			}
		}
		if !found {
			return ExamConfig{}, errs.NotFoundf("question bank %s is not linked to exam %s", bankID, examID)
		}
		if err := s.writeBanks(ctx, tx, &cfg); err != nil {
			return ExamConfig{}, err
		}
		return cfg, nil
	})
}

func (s *SQLStore) ListAll(ctx context.Context) ([]ExamConfig, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,exam_id,banks_json,created_at,updated_at,created_by
		 FROM exam_configs ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ExamConfig{}
	for rows.Next() {
		cfg, err := scanConfig(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cfg)
	}
	return out, rows.Err()
}

func (s *SQLStore) withTx(ctx context.Context, fn func(tx *sql.Tx) (ExamConfig, error)) (ExamConfig, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ExamConfig{}, err
	}
	cfg, err := fn(tx)
	if err != nil {
		_ = tx.Rollback()
		return ExamConfig{}, err
	}
	if err := tx.Commit(); err != nil {
		return ExamConfig{}, err
	}
	return cfg, nil
}

func (s *SQLStore) getForUpdate(ctx context.Context, tx *sql.Tx, examID string) (ExamConfig, error) {
	q := `SELECT id,exam_id,banks_json,created_at,updated_at,created_by
	      FROM exam_configs WHERE exam_id=$1`
	if s.driver == "postgres" {
		q += ` FOR UPDATE` // sqlite serializes writers on its own
	}
	cfg, err := scanConfig(tx.QueryRowContext(ctx, q, examID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ExamConfig{}, errs.NotFoundf("no configuration for exam %s", examID)
		}
		return ExamConfig{}, err
	}
	return cfg, nil
}

func (s *SQLStore) writeBanks(ctx context.Context, tx *sql.Tx, cfg *ExamConfig) error {
	cfg.UpdatedAt = time.Now().Unix()
	bj, err := json.Marshal(cfg.Banks)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE exam_configs SET banks_json=$1, updated_at=$2 WHERE id=$3`,
		string(bj), cfg.UpdatedAt, cfg.ID)
	return err
}

type rowScanner interface{ Scan(dest ...any) error }

func scanConfig(r rowScanner) (ExamConfig, error) {
	var cfg ExamConfig
	var bj string
	if err := r.Scan(&cfg.ID, &cfg.ExamID, &bj, &cfg.CreatedAt, &cfg.UpdatedAt, &cfg.CreatedBy); err != nil {
		return ExamConfig{}, err
	}
	if err := json.Unmarshal([]byte(bj), &cfg.Banks); err != nil {
		return ExamConfig{}, err
	}
	if cfg.Banks == nil {
		cfg.Banks = []ExamQuestionBank{}
	}
	return cfg, nil
}

func containsBank(banks []ExamQuestionBank, bankID string) bool {
	for _, b := range banks {
		if b.QuestionBankID == bankID {
			return true
		}
	}
	return false
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // sqlite
		strings.Contains(msg, "duplicate key") // postgres
}
