package httpx

import (
	"errors"
	"net/http"

	"github.com/edutools/mark-register/internal/domain/model"
	"github.com/edutools/mark-register/internal/service"
)

// AssignmentHandlers provides HTTP handlers for staff subject assignments.
type AssignmentHandlers struct {
	Svc *service.AssignmentService
}

// Assign handles PUT /api/assignments, replacing the subject set a staff
// member carries for a department.
func (h *AssignmentHandlers) Assign(w http.ResponseWriter, r *http.Request) {
	var req *model.CreateStaffAssignmentRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	assignment, err := h.Svc.Assign(r.Context(), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, assignment)
}

// ForProfile handles GET /api/assignments/{profile}.
func (h *AssignmentHandlers) ForProfile(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.Svc.ForProfile(r.Context(), r.PathValue("profile"))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, assignments)
}

// Mine handles GET /api/assignments/mine, resolving the caller's own
// assignments from the session in context.
func (h *AssignmentHandlers) Mine(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	assignments, err := h.Svc.ForProfile(r.Context(), session.Identity.ID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, assignments)
}

// List handles GET /api/assignments.
func (h *AssignmentHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	assignments, err := h.Svc.List(r.Context(), limit, offset)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, assignments)
}

// Delete handles DELETE /api/assignments/{id}.
func (h *AssignmentHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.Svc.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "not_found",
			Err:     errors.New("assignment not found"),
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
