package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/zarifin2103/ExamSphere/internal/bank"
	"github.com/zarifin2103/ExamSphere/internal/rbac"
)

type createBankRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func CreateBankHandler(svc *bank.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createBankRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		b, err := svc.Store().CreateBank(r.Context(), bank.QuestionBank{
			Name:        req.Name,
			Description: req.Description,
			CreatedBy:   rbac.SubjectFromContext(r.Context()),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, b)
	}
}

func ListBanksHandler(svc *bank.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.Store().ListBanks(r.Context(), bank.BankListOpts{
			CreatedBy: strings.TrimSpace(r.URL.Query().Get("created_by")),
			Limit:     parseIntDefault(r.URL.Query().Get("limit"), 50),
			Offset:    parseIntDefault(r.URL.Query().Get("offset"), 0),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func GetBankHandler(svc *bank.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := svc.Store().GetBank(r.Context(), chi.URLParam(r, "bankID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

func UpdateBankHandler(svc *bank.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var upd bank.BankUpdate
		if err := decodeJSON(r, &upd); err != nil {
			writeError(w, err)
			return
		}
		b, err := svc.Store().UpdateBank(r.Context(), chi.URLParam(r, "bankID"), upd)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

func DeleteBankHandler(svc *bank.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Store().DeleteBank(r.Context(), chi.URLParam(r, "bankID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
