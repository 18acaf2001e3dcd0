package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zarifin2103/ExamSphere/internal/examconfig"
	"github.com/zarifin2103/ExamSphere/internal/rbac"
)

func actorFrom(r *http.Request) examconfig.Actor {
	return examconfig.Actor{
		ID:   rbac.SubjectFromContext(r.Context()),
		Role: rbac.RoleFromContext(r.Context()),
	}
}

// GetExamConfigHandler returns the config document, or {"configured": false}
// when the exam has never been configured; that state is a 200, not a 404.
func GetExamConfigHandler(svc *examconfig.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := svc.GetConfigForExam(r.Context(), chi.URLParam(r, "examID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if cfg == nil {
			writeJSON(w, http.StatusOK, map[string]any{"configured": false})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"configured": true, "config": cfg})
	}
}

type linkBankRequest struct {
	QuestionBankID string                 `json:"question_bank_id" validate:"required"`
	ScoringRule    examconfig.ScoringRule `json:"scoring_rule"`
}

func LinkBankHandler(svc *examconfig.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req linkBankRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		banks, err := svc.LinkQuestionBank(r.Context(), chi.URLParam(r, "examID"),
			req.QuestionBankID, req.ScoringRule, actorFrom(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, banks)
	}
}

func UnlinkBankHandler(svc *examconfig.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		banks, err := svc.UnlinkQuestionBank(r.Context(), chi.URLParam(r, "examID"),
			chi.URLParam(r, "bankID"), actorFrom(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, banks)
	}
}

type updateRuleRequest struct {
	ScoringRule examconfig.ScoringRule `json:"scoring_rule"`
}

func UpdateScoringRuleHandler(svc *examconfig.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateRuleRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		banks, err := svc.UpdateScoringRule(r.Context(), chi.URLParam(r, "examID"),
			chi.URLParam(r, "bankID"), req.ScoringRule, actorFrom(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, banks)
	}
}

// ConfigOverviewHandler serves the configuration screen: one row per
// (exam, linked bank) pair plus one unconfigured row per bare exam.
func ConfigOverviewHandler(svc *examconfig.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.Overview(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}
