// Package httpx provides HTTP handlers and utilities for the mark register API.
package httpx

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/edutools/mark-register/internal/domain/model"
	"github.com/edutools/mark-register/internal/service"
)

// DepartmentHandlers provides HTTP handlers for department operations.
type DepartmentHandlers struct {
	Svc *service.DepartmentService
}

// Create handles POST /api/departments.
func (h *DepartmentHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req *model.CreateDepartmentRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	dept, err := h.Svc.Create(r.Context(), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, dept)
}

// Get handles GET /api/departments/{id}.
func (h *DepartmentHandlers) Get(w http.ResponseWriter, r *http.Request) {
	dept, err := h.Svc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, dept)
}

// List handles GET /api/departments.
func (h *DepartmentHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	depts, err := h.Svc.List(r.Context(), limit, offset)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, depts)
}

// Update handles PATCH /api/departments/{id}.
func (h *DepartmentHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateDepartmentRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	dept, err := h.Svc.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, dept)
}

// Delete handles DELETE /api/departments/{id}.
func (h *DepartmentHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.Svc.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "not_found",
			Err:     errors.New("department not found"),
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pagination extracts limit/offset query parameters with sane bounds.
func pagination(r *http.Request) (int, int) {
	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = min(n, maxListLimit)
		}
	}
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			offset = n
		}
	}
	return limit, offset
}
