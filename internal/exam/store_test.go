package exam

import (
	"context"
	"testing"

	"github.com/zarifin2103/ExamSphere/internal/errs"
)

func str(s string) *string { return &s }

func TestUpdateAppliesOnlySetFields(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()
	created, err := s.Create(ctx, Exam{
		Name:        "Ujian Matematika",
		Institution: "SMA Negeri 1",
		Address:     "Jl. Merdeka 10",
		Materials:   []string{"Aljabar", "Geometri"},
		Supervisors: []Supervisor{{ID: "u1", Name: "Bu Sari"}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.Update(ctx, created.ID, Update{Name: str("Ujian Matematika Susulan")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "Ujian Matematika Susulan" {
		t.Fatalf("name = %q", got.Name)
	}
	if got.Institution != "SMA Negeri 1" || got.Address != "Jl. Merdeka 10" {
		t.Fatal("untouched fields must survive a partial update")
	}
	if len(got.Materials) != 2 || len(got.Supervisors) != 1 {
		t.Fatalf("materials/supervisors changed: %+v", got)
	}

	// An explicit empty slice clears, a nil pointer does not.
	empty := []string{}
	got, err = s.Update(ctx, created.ID, Update{Materials: &empty})
	if err != nil {
		t.Fatalf("clear materials: %v", err)
	}
	if len(got.Materials) != 0 {
		t.Fatalf("materials not cleared: %+v", got.Materials)
	}

	if _, err := s.Update(ctx, "missing", Update{Name: str("x")}); !errs.IsNotFound(err) {
		t.Fatalf("update missing exam: got %v, want not-found", err)
	}
}

func TestListFiltersByInstitutionAndQuery(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()
	seed := []Exam{
		{Name: "Ujian Matematika", Institution: "SMA Negeri 1"},
		{Name: "Ujian Fisika", Institution: "SMA Negeri 1"},
		{Name: "Ujian Matematika", Institution: "SMA Negeri 2"},
	}
	for _, e := range seed {
		if _, err := s.Create(ctx, e); err != nil {
			t.Fatalf("seed %s: %v", e.Name, err)
		}
	}

	byInst, err := s.List(ctx, ListOpts{Institution: "SMA Negeri 1"})
	if err != nil {
		t.Fatalf("list by institution: %v", err)
	}
	if len(byInst) != 2 {
		t.Fatalf("SMA Negeri 1 has %d exams, want 2", len(byInst))
	}

	// Name search is a case-insensitive substring match.
	byQ, err := s.List(ctx, ListOpts{Q: "matematika"})
	if err != nil {
		t.Fatalf("list by query: %v", err)
	}
	if len(byQ) != 2 {
		t.Fatalf("query 'matematika' matched %d, want 2", len(byQ))
	}

	both, err := s.List(ctx, ListOpts{Institution: "SMA Negeri 2", Q: "MATE"})
	if err != nil {
		t.Fatalf("list combined: %v", err)
	}
	if len(both) != 1 || both[0].Institution != "SMA Negeri 2" {
		t.Fatalf("combined filter: %+v", both)
	}

	past, err := s.List(ctx, ListOpts{Offset: 10})
	if err != nil {
		t.Fatalf("list past end: %v", err)
	}
	if len(past) != 0 {
		t.Fatalf("offset past end: got %d", len(past))
	}
}

func TestDeleteMissingExam(t *testing.T) {
	s := NewInMemoryStore()
	if err := s.Delete(context.Background(), "missing"); !errs.IsNotFound(err) {
		t.Fatalf("got %v, want not-found", err)
	}
}
