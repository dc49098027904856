package httpx

import (
	"errors"
	"net/http"

	"github.com/edutools/mark-register/internal/domain/model"
	"github.com/edutools/mark-register/internal/service"
)

// PatternHandlers provides HTTP handlers for question pattern operations.
type PatternHandlers struct {
	Svc *service.PatternService
}

// Create handles POST /api/patterns.
func (h *PatternHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req *model.CreateQuestionPatternRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	pattern, err := h.Svc.Create(r.Context(), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, pattern)
}

// Get handles GET /api/patterns/{id}.
func (h *PatternHandlers) Get(w http.ResponseWriter, r *http.Request) {
	pattern, err := h.Svc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, pattern)
}

// Lookup handles GET /api/subjects/{id}/patterns/{code}, resolving a pattern
// by its subject and question paper code.
func (h *PatternHandlers) Lookup(w http.ResponseWriter, r *http.Request) {
	pattern, err := h.Svc.GetBySubjectAndCode(r.Context(), r.PathValue("id"), r.PathValue("code"))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, pattern)
}

// List handles GET /api/patterns.
func (h *PatternHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	patterns, err := h.Svc.List(r.Context(), limit, offset)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, patterns)
}

// Delete handles DELETE /api/patterns/{id}.
func (h *PatternHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.Svc.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "not_found",
			Err:     errors.New("pattern not found"),
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
