package httpx

import (
	"errors"
	"net/http"

	"github.com/edutools/mark-register/internal/domain/model"
	"github.com/edutools/mark-register/internal/service"
)

// SubjectHandlers provides HTTP handlers for subject operations.
type SubjectHandlers struct {
	Svc *service.SubjectService
}

// Create handles POST /api/subjects.
func (h *SubjectHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req *model.CreateSubjectRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	subject, err := h.Svc.Create(r.Context(), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, subject)
}

// Get handles GET /api/subjects/{id}.
func (h *SubjectHandlers) Get(w http.ResponseWriter, r *http.Request) {
	subject, err := h.Svc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, subject)
}

// List handles GET /api/subjects. Supports optional department_id and q
// (name search) filters.
func (h *SubjectHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	opts := model.SubjectsListOptions{Limit: limit, Offset: offset}
	if deptID := r.URL.Query().Get("department_id"); deptID != "" {
		opts.DepartmentID = &deptID
	}
	if q := r.URL.Query().Get("q"); q != "" {
		opts.Search = &q
	}

	subjects, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, subjects)
}

// Delete handles DELETE /api/subjects/{id}.
func (h *SubjectHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.Svc.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "not_found",
			Err:     errors.New("subject not found"),
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
