package auth

import (
	"context"

	"github.com/zarifin2103/ExamSphere/internal/rbac"
)

// Profile is the portal's view of an account. PassHash never leaves this
// package; handlers serialize Profile without it.
type Profile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        rbac.Role `json:"role"`
	Institution string    `json:"institution,omitempty"`
	CreatedAt   int64     `json:"created_at"`
	UpdatedAt   int64     `json:"updated_at"`

	PassHash string `json:"-"`
}

type UserStore interface {
	Create(ctx context.Context, p Profile) (Profile, error)
	GetByID(ctx context.Context, id string) (Profile, error)
	GetByEmail(ctx context.Context, email string) (Profile, error)
	List(ctx context.Context, role rbac.Role) ([]Profile, error)
}
