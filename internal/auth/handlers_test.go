package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zarifin2103/ExamSphere/internal/rbac"
)

func TestListUsersHandler(t *testing.T) {
	users := NewInMemoryUserStore()
	ctx := context.Background()
	seed := []Profile{
		{Email: "admin@sekolah.sch.id", DisplayName: "Admin", Role: rbac.RoleAdmin},
		{Email: "pengawas@sekolah.sch.id", DisplayName: "Bu Sari", Role: rbac.RoleSupervisor, PassHash: "x"},
		{Email: "siswa@sekolah.sch.id", DisplayName: "Budi", Role: rbac.RoleParticipant},
	}
	for _, p := range seed {
		if _, err := users.Create(ctx, p); err != nil {
			t.Fatalf("seed %s: %v", p.Email, err)
		}
	}
	h := ListUsersHandler(users)

	// The role filter accepts the same aliases registration does.
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/users?role=pengawas", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("filtered list: status %d", rec.Code)
	}
	var got []Profile
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Email != "pengawas@sekolah.sch.id" {
		t.Fatalf("want only the supervisor, got %+v", got)
	}
	if got[0].PassHash != "" {
		t.Fatal("pass hash must not be serialized")
	}

	// No filter lists everyone.
	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/users", nil))
	got = nil
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("unfiltered list: got %d users, want 3", len(got))
	}

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/users?role=wizard", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown role: status %d, want 400", rec.Code)
	}
}
