package auth

import (
	"encoding/json"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/zarifin2103/ExamSphere/internal/errs"
	"github.com/zarifin2103/ExamSphere/internal/rbac"
)

// POST /auth/register  { "email", "password", "display_name", "role", "institution" }
func RegisterHandler(users UserStore, a *AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email       string `json:"email"`
			Password    string `json:"password"`
			DisplayName string `json:"display_name"`
			Role        string `json:"role"`
			Institution string `json:"institution"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Email == "" || len(req.Password) < 6 {
			http.Error(w, "email and a password of at least 6 characters are required", http.StatusBadRequest)
			return
		}
		role, ok := rbac.Normalize(req.Role)
		if !ok {
			http.Error(w, "unknown role", http.StatusBadRequest)
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "hash password", http.StatusInternalServerError)
			return
		}
		p, err := users.Create(r.Context(), Profile{
			Email:       req.Email,
			DisplayName: req.DisplayName,
			Role:        role,
			Institution: req.Institution,
			PassHash:    string(hash),
		})
		if err != nil {
			if errs.IsConflict(err) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		tok, err := a.IssueJWT(p.ID, p.Role)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": tok, "profile": p})
	}
}

// POST /auth/login  { "email": "...", "password": "..." }
func LoginHandler(users UserStore, a *AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		p, err := users.GetByEmail(r.Context(), req.Email)
		if err != nil || bcrypt.CompareHashAndPassword([]byte(p.PassHash), []byte(req.Password)) != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		tok, err := a.IssueJWT(p.ID, p.Role)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": tok, "profile": p})
	}
}

// GET /users?role=supervisor lists accounts, optionally filtered by role.
// The exam form's supervisor picker reads from this. Role aliases are
// accepted the same way registration accepts them.
func ListUsersHandler(users UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var role rbac.Role
		if raw := r.URL.Query().Get("role"); raw != "" {
			var ok bool
			role, ok = rbac.Normalize(raw)
			if !ok {
				http.Error(w, "unknown role", http.StatusBadRequest)
				return
			}
		}
		list, err := users.List(r.Context(), role)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(list)
	}
}

// GET /me returns the profile of the authenticated subject.
func MeHandler(users UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := rbac.SubjectFromContext(r.Context())
		p, err := users.GetByID(r.Context(), sub)
		if err != nil {
			if errs.IsNotFound(err) {
				http.Error(w, "profile not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(p)
	}
}
