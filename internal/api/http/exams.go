package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/zarifin2103/ExamSphere/internal/exam"
	"github.com/zarifin2103/ExamSphere/internal/rbac"
)

type createExamRequest struct {
	Name        string            `json:"name" validate:"required"`
	Institution string            `json:"institution" validate:"required"`
	Address     string            `json:"address"`
	Materials   []string          `json:"materials"`
	Supervisors []exam.Supervisor `json:"supervisors" validate:"dive"`
	Notes       string            `json:"notes"`
}

func CreateExamHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createExamRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		e, err := store.Create(r.Context(), exam.Exam{
			Name:        req.Name,
			Institution: req.Institution,
			Address:     req.Address,
			Materials:   req.Materials,
			Supervisors: req.Supervisors,
			Notes:       req.Notes,
			CreatedBy:   rbac.SubjectFromContext(r.Context()),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, e)
	}
}

func ListExamsHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.List(r.Context(), exam.ListOpts{
			Institution: strings.TrimSpace(r.URL.Query().Get("institution")),
			Q:           strings.TrimSpace(r.URL.Query().Get("q")),
			Limit:       parseIntDefault(r.URL.Query().Get("limit"), 50),
			Offset:      parseIntDefault(r.URL.Query().Get("offset"), 0),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func GetExamHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := store.Get(r.Context(), chi.URLParam(r, "examID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, e)
	}
}

func UpdateExamHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var upd exam.Update
		if err := decodeJSON(r, &upd); err != nil {
			writeError(w, err)
			return
		}
		e, err := store.Update(r.Context(), chi.URLParam(r, "examID"), upd)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, e)
	}
}

func DeleteExamHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Delete(r.Context(), chi.URLParam(r, "examID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
