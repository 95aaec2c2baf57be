package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"pharmstore/m/domain"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error      string              `json:"error"`
	Fields     []domain.FieldError `json:"fields,omitempty"`
	Constraint string              `json:"constraint,omitempty"`
}

// respondErr maps the domain error taxonomy to status codes. Anything else is
// logged and reported as a bare 500.
func (h *Handler) respondErr(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFound   *domain.NotFoundError
		invalid    *domain.ValidationError
		constraint *domain.ConstraintViolationError
		tooLarge   *http.MaxBytesError
	)
	switch {
	case errors.As(err, &notFound):
		respondError(w, http.StatusNotFound, notFound.Error())
	case errors.As(err, &invalid):
		respondJSON(w, http.StatusUnprocessableEntity, errorBody{Error: domain.ErrValidation.Error(), Fields: invalid.Fields})
	case errors.As(err, &constraint):
		respondJSON(w, http.StatusConflict, errorBody{Error: constraint.Error(), Constraint: constraint.Kind})
	case errors.As(err, &tooLarge):
		respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
	default:
		h.log.Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request failed")
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON decodes exactly one JSON object with no unknown fields. Shape
// problems come back as *domain.ValidationError.
func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return bodyError(err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return domain.NewValidationError("body", "json", "must contain a single JSON object")
	}
	return nil
}

func bodyError(err error) error {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		tooLarge  *http.MaxBytesError
	)
	switch {
	case errors.As(err, &tooLarge):
		return err
	case errors.Is(err, io.EOF):
		return domain.NewValidationError("body", "required", "request body required")
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return domain.NewValidationError("body", "json", "malformed JSON")
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return domain.NewValidationError(field, "type", "must be of type "+typeName(typeErr.Type.String()))
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return domain.NewValidationError(field, "unknown", "unexpected field")
	}
	return domain.NewValidationError("body", "json", err.Error())
}

func typeName(goType string) string {
	goType = strings.TrimPrefix(goType, "*")
	switch {
	case strings.HasPrefix(goType, "int"):
		return "integer"
	case goType == "string":
		return "string"
	case strings.HasPrefix(goType, "validation."):
		return "object"
	}
	return goType
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorBody{Error: message})
}
