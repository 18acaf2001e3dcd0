package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zarifin2103/ExamSphere/internal/errs"
	"github.com/zarifin2103/ExamSphere/internal/rbac"
)

type SQLUserStore struct {
	db *sql.DB
}

func NewSQLUserStore(db *sql.DB) *SQLUserStore { return &SQLUserStore{db: db} }

func (s *SQLUserStore) Create(ctx context.Context, p Profile) (Profile, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().Unix()
	p.CreatedAt, p.UpdatedAt = now, now
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id,email,display_name,pass_hash,role,institution,created_at,updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.Email, p.DisplayName, p.PassHash, p.Role.String(), p.Institution, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return Profile{}, errs.Conflictf("email %s already registered", p.Email)
		}
		return Profile{}, err
	}
	return p, nil
}

func (s *SQLUserStore) GetByID(ctx context.Context, id string) (Profile, error) {
	return s.getWhere(ctx, `id=$1`, id)
}

func (s *SQLUserStore) GetByEmail(ctx context.Context, email string) (Profile, error) {
	return s.getWhere(ctx, `email=$1`, email)
}

func (s *SQLUserStore) getWhere(ctx context.Context, where string, arg any) (Profile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,email,display_name,pass_hash,role,institution,created_at,updated_at
		 FROM users WHERE `+where, arg)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, errs.NotFoundf("user not found")
		}
		return Profile{}, err
	}
	return p, nil
}

func (s *SQLUserStore) List(ctx context.Context, role rbac.Role) ([]Profile, error) {
	q := `SELECT id,email,display_name,pass_hash,role,institution,created_at,updated_at FROM users`
	args := []any{}
	if role != "" {
		q += ` WHERE role=$1`
		args = append(args, role.String())
	}
	q += ` ORDER BY display_name, email`
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanProfile(r rowScanner) (Profile, error) {
	var p Profile
	var role string
	if err := r.Scan(&p.ID, &p.Email, &p.DisplayName, &p.PassHash, &role,
		&p.Institution, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Profile{}, err
	}
	// Rows written before the enum was closed may carry an alias.
	if norm, ok := rbac.Normalize(role); ok {
		p.Role = norm
	} else {
		p.Role = rbac.RoleParticipant
	}
	return p, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // sqlite
		strings.Contains(msg, "duplicate key") // postgres
}
