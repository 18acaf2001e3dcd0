package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/zarifin2103/ExamSphere/internal/errs"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the body into v and runs validator tags. A decode or
// validation failure comes back as a ValidationError for writeError to map.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errs.Validationf("bad json: %v", err)
	}
	if err := validate.Struct(v); err != nil {
		return errs.Validationf("%v", err)
	}
	return nil
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errs.IsNotFound(err):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errs.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errs.IsConflict(err):
		http.Error(w, err.Error(), http.StatusConflict)
	case errs.IsForbidden(err):
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}
