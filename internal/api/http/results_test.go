package http_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"

	api "github.com/zarifin2103/ExamSphere/internal/api/http"
	"github.com/zarifin2103/ExamSphere/internal/rbac"
	"github.com/zarifin2103/ExamSphere/internal/result"
)

func newResultsRouter(store result.Store, role rbac.Role, sub string) chi.Router {
	r := chi.NewRouter()
	r.Use(asRole(role, sub))
	r.Post("/results", api.SubmitResultHandler(store))
	r.Get("/exams/{examID}/results/latest", api.LatestResultHandler(store))
	return r
}

type latestResponse struct {
	Submitted bool               `json:"submitted"`
	Result    *result.ExamResult `json:"result"`
}

func decodeLatest(t *testing.T, body []byte) latestResponse {
	t.Helper()
	var out latestResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestLatestResultEndpoint(t *testing.T) {
	store := result.NewInMemoryStore()
	r := newResultsRouter(store, rbac.RoleParticipant, "u1")

	// Nothing submitted yet reads as 200 with submitted=false, not 404.
	rec := do(t, r, http.MethodGet, "/exams/E1/results/latest", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("no result yet: status %d", rec.Code)
	}
	if got := decodeLatest(t, rec.Body.Bytes()); got.Submitted {
		t.Fatal("want submitted=false before any submission")
	}

	// Two attempts; the latest one wins.
	rec = do(t, r, http.MethodPost, "/results",
		`{"exam_id":"E1","started_at":100,"ended_at":200,"total_score":50,"max_score":100}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first submit: status %d body %s", rec.Code, rec.Body.String())
	}
	rec = do(t, r, http.MethodPost, "/results",
		`{"exam_id":"E1","started_at":300,"ended_at":400,"total_score":80,"max_score":100}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("second submit: status %d", rec.Code)
	}

	rec = do(t, r, http.MethodGet, "/exams/E1/results/latest", "")
	got := decodeLatest(t, rec.Body.Bytes())
	if !got.Submitted || got.Result == nil {
		t.Fatalf("want the latest result, got %+v", got)
	}
	if got.Result.TotalScore != 80 {
		t.Fatalf("latest total_score = %v, want 80", got.Result.TotalScore)
	}

	// A participant asking about someone else still gets their own result.
	rec = do(t, r, http.MethodGet, "/exams/E1/results/latest?user_id=u2", "")
	if got := decodeLatest(t, rec.Body.Bytes()); !got.Submitted || got.Result.UserID != "u1" {
		t.Fatalf("participant user_id override must be ignored, got %+v", got)
	}

	// A supervisor may look up a named participant, and has no result of
	// their own.
	sup := newResultsRouter(store, rbac.RoleSupervisor, "sup1")
	rec = do(t, sup, http.MethodGet, "/exams/E1/results/latest?user_id=u1", "")
	if got := decodeLatest(t, rec.Body.Bytes()); !got.Submitted || got.Result.UserID != "u1" {
		t.Fatalf("supervisor lookup of u1 failed: %+v", got)
	}
	rec = do(t, sup, http.MethodGet, "/exams/E1/results/latest", "")
	if got := decodeLatest(t, rec.Body.Bytes()); got.Submitted {
		t.Fatal("supervisor has no own result, want submitted=false")
	}
}
