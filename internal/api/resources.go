package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pharmstore/m/domain"
	"pharmstore/m/internal/repository"
	"pharmstore/m/internal/validation"
)

// mountCRUD registers the five entity routes on r. P is the JSON payload shape
// and create converts a validated P into the repository input.
func mountCRUD[T, C, P any](r chi.Router, h *Handler, table *repository.Table[T, C], create func(P) C) {
	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		in, err := decodePayload(h, r, create)
		if err != nil {
			h.respondErr(w, r, err)
			return
		}
		out, err := table.Create(r.Context(), in)
		if err != nil {
			h.respondErr(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		page, err := h.page(r)
		if err != nil {
			h.respondErr(w, r, err)
			return
		}
		out, err := table.List(r.Context(), page)
		if err != nil {
			h.respondErr(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	})

	r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			h.respondErr(w, r, err)
			return
		}
		out, err := table.Get(r.Context(), id)
		if err != nil {
			h.respondErr(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	})

	r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			h.respondErr(w, r, err)
			return
		}
		in, err := decodePayload(h, r, create)
		if err != nil {
			h.respondErr(w, r, err)
			return
		}
		out, err := table.Update(r.Context(), id, in)
		if err != nil {
			h.respondErr(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	})

	r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			h.respondErr(w, r, err)
			return
		}
		out, err := table.Delete(r.Context(), id)
		if err != nil {
			h.respondErr(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	})
}

// listChildren serves a paged relationship listing under /{id}.
func listChildren[T any](h *Handler, list func(context.Context, int64, repository.Page) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			h.respondErr(w, r, err)
			return
		}
		page, err := h.page(r)
		if err != nil {
			h.respondErr(w, r, err)
			return
		}
		out, err := list(r.Context(), id, page)
		if err != nil {
			h.respondErr(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// decodePayload reads and validates a P from the body, then converts it.
func decodePayload[P, C any](h *Handler, r *http.Request, create func(P) C) (C, error) {
	var (
		p    P
		zero C
	)
	if err := decodeJSON(r, &p); err != nil {
		return zero, err
	}
	if err := h.validate.Struct(p); err != nil {
		return zero, err
	}
	return create(p), nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, domain.NewValidationError("id", "int", "must be an integer")
	}
	return id, nil
}

// page reads skip and limit, defaulting to 0 and 100 capped at MaxPageLimit.
func (h *Handler) page(r *http.Request) (repository.Page, error) {
	page := repository.Page{Skip: 0, Limit: min(defaultLimit, h.opts.MaxPageLimit)}
	q := r.URL.Query()
	var verr domain.ValidationError
	if raw := q.Get("skip"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			verr.Fields = append(verr.Fields, domain.FieldError{Field: "skip", Rule: "int", Message: "must be an integer"})
		}
		page.Skip = n
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			verr.Fields = append(verr.Fields, domain.FieldError{Field: "limit", Rule: "int", Message: "must be an integer"})
		}
		page.Limit = n
	}
	if len(verr.Fields) > 0 {
		return page, &verr
	}
	return page, validation.Page(page.Skip, page.Limit, h.opts.MaxPageLimit)
}
