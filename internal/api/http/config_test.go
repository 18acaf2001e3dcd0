package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	api "github.com/zarifin2103/ExamSphere/internal/api/http"
	"github.com/zarifin2103/ExamSphere/internal/bank"
	"github.com/zarifin2103/ExamSphere/internal/exam"
	"github.com/zarifin2103/ExamSphere/internal/examconfig"
	"github.com/zarifin2103/ExamSphere/internal/rbac"
)

// asRole stamps subject and role into the context the way the JWT middleware
// does in production.
func asRole(role rbac.Role, sub string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := rbac.WithSubject(r.Context(), sub)
			ctx = rbac.WithRole(ctx, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newTestRouter(t *testing.T) (chi.Router, *examconfig.Service) {
	t.Helper()
	exams := exam.NewInMemoryStore()
	banks := bank.NewInMemoryStore()
	svc := examconfig.NewService(examconfig.NewInMemoryStore(), exams, banks)

	ctx := context.Background()
	if _, err := exams.Create(ctx, exam.Exam{ID: "E1", Name: "Math", Institution: "SMA 1"}); err != nil {
		t.Fatalf("seed exam: %v", err)
	}
	if _, err := banks.CreateBank(ctx, bank.QuestionBank{ID: "QB1", Name: "Algebra"}); err != nil {
		t.Fatalf("seed bank: %v", err)
	}

	r := chi.NewRouter()
	r.Use(asRole(rbac.RoleAdmin, "admin1"))
	r.Get("/exams/{examID}/config", api.GetExamConfigHandler(svc))
	r.Post("/exams/{examID}/config/banks", api.LinkBankHandler(svc))
	r.Delete("/exams/{examID}/config/banks/{bankID}", api.UnlinkBankHandler(svc))
	r.Put("/exams/{examID}/config/banks/{bankID}", api.UpdateScoringRuleHandler(svc))
	return r, svc
}

func do(t *testing.T, r chi.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestConfigEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	// Unconfigured exam reads as 200 with configured=false, not 404.
	rec := do(t, r, http.MethodGet, "/exams/E1/config", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get unconfigured: status %d", rec.Code)
	}
	var got struct {
		Configured bool `json:"configured"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Configured {
		t.Fatal("expected configured=false before any link")
	}

	link := `{"question_bank_id":"QB1","scoring_rule":{"correct_points":2}}`
	rec = do(t, r, http.MethodPost, "/exams/E1/config/banks", link)
	if rec.Code != http.StatusOK {
		t.Fatalf("link: status %d body %s", rec.Code, rec.Body.String())
	}

	// Duplicate link maps to 409.
	rec = do(t, r, http.MethodPost, "/exams/E1/config/banks", link)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate link: status %d, want 409", rec.Code)
	}

	// Invalid rule maps to 400.
	rec = do(t, r, http.MethodPost, "/exams/E1/config/banks",
		`{"question_bank_id":"QB1","scoring_rule":{"correct_points":-3}}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid rule: status %d, want 400", rec.Code)
	}

	// Unknown exam maps to 404.
	rec = do(t, r, http.MethodPost, "/exams/missing/config/banks", link)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing exam: status %d, want 404", rec.Code)
	}

	// Rescore the association in place.
	rec = do(t, r, http.MethodPut, "/exams/E1/config/banks/QB1",
		`{"scoring_rule":{"correct_points":4,"incorrect_points":-1}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("rescore: status %d body %s", rec.Code, rec.Body.String())
	}
	var banksOut []examconfig.ExamQuestionBank
	if err := json.Unmarshal(rec.Body.Bytes(), &banksOut); err != nil {
		t.Fatalf("decode rescore: %v", err)
	}
	if len(banksOut) != 1 || banksOut[0].ScoringRule.CorrectPoints != 4 {
		t.Fatalf("unexpected associations: %+v", banksOut)
	}

	// Unlink, then confirm the config survives with an empty list.
	rec = do(t, r, http.MethodDelete, "/exams/E1/config/banks/QB1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unlink: status %d", rec.Code)
	}
	rec = do(t, r, http.MethodGet, "/exams/E1/config", "")
	var out struct {
		Configured bool                  `json:"configured"`
		Config     examconfig.ExamConfig `json:"config"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.Configured || len(out.Config.Banks) != 0 {
		t.Fatalf("after unlink: %+v", out)
	}
}

func TestConfigWritesForbiddenForSupervisor(t *testing.T) {
	exams := exam.NewInMemoryStore()
	banks := bank.NewInMemoryStore()
	svc := examconfig.NewService(examconfig.NewInMemoryStore(), exams, banks)
	ctx := context.Background()
	if _, err := exams.Create(ctx, exam.Exam{ID: "E1", Name: "Math"}); err != nil {
		t.Fatal(err)
	}
	if _, err := banks.CreateBank(ctx, bank.QuestionBank{ID: "QB1", Name: "Algebra"}); err != nil {
		t.Fatal(err)
	}

	r := chi.NewRouter()
	r.Use(asRole(rbac.RoleSupervisor, "sup1"))
	r.Post("/exams/{examID}/config/banks", api.LinkBankHandler(svc))

	rec := do(t, r, http.MethodPost, "/exams/E1/config/banks",
		`{"question_bank_id":"QB1","scoring_rule":{"correct_points":2}}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("supervisor link: status %d, want 403", rec.Code)
	}
}
