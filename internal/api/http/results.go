package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/zarifin2103/ExamSphere/internal/errs"
	"github.com/zarifin2103/ExamSphere/internal/rbac"
	"github.com/zarifin2103/ExamSphere/internal/result"
)

type submitResultRequest struct {
	ExamID     string                  `json:"exam_id" validate:"required"`
	StartedAt  int64                   `json:"started_at" validate:"required"`
	EndedAt    int64                   `json:"ended_at" validate:"required"`
	TotalScore float64                 `json:"total_score"`
	MaxScore   float64                 `json:"max_score"`
	Answers    []result.QuestionAnswer `json:"answers"`
}

// SubmitResultHandler records a finished exam for the authenticated
// participant. The user id always comes from the session, never the body.
func SubmitResultHandler(store result.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitResultRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		res, err := store.Submit(r.Context(), result.ExamResult{
			ExamID:     req.ExamID,
			UserID:     rbac.SubjectFromContext(r.Context()),
			StartedAt:  req.StartedAt,
			EndedAt:    req.EndedAt,
			TotalScore: req.TotalScore,
			MaxScore:   req.MaxScore,
			Answers:    req.Answers,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, res)
	}
}

// ListResultsHandler lists results. Participants only ever see their own;
// supervisors and admins may filter by exam or user.
func ListResultsHandler(store result.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := result.ListOpts{
			ExamID: strings.TrimSpace(r.URL.Query().Get("exam_id")),
			UserID: strings.TrimSpace(r.URL.Query().Get("user_id")),
			Limit:  parseIntDefault(r.URL.Query().Get("limit"), 50),
			Offset: parseIntDefault(r.URL.Query().Get("offset"), 0),
		}
		role := rbac.RoleFromContext(r.Context())
		if role == rbac.RoleParticipant {
			opts.UserID = rbac.SubjectFromContext(r.Context())
		}
		list, err := store.List(r.Context(), opts)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// LatestResultHandler returns the newest result the authenticated user has
// for an exam, which is what the participant result screen shows. Supervisors
// and admins may ask about another participant via ?user_id=. Having no
// result yet is a normal state and reads as 200 with submitted=false.
func LatestResultHandler(store result.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := rbac.SubjectFromContext(r.Context())
		if q := strings.TrimSpace(r.URL.Query().Get("user_id")); q != "" &&
			rbac.RoleFromContext(r.Context()) != rbac.RoleParticipant {
			userID = q
		}
		res, err := store.LatestForUserExam(r.Context(), userID, chi.URLParam(r, "examID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if res == nil {
			writeJSON(w, http.StatusOK, map[string]any{"submitted": false})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"submitted": true, "result": res})
	}
}

func GetResultHandler(store result.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := store.Get(r.Context(), chi.URLParam(r, "resultID"))
		if err != nil {
			writeError(w, err)
			return
		}
		role := rbac.RoleFromContext(r.Context())
		if role == rbac.RoleParticipant && res.UserID != rbac.SubjectFromContext(r.Context()) {
			writeError(w, errs.Forbiddenf("result belongs to another participant"))
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}
