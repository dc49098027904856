package httpx

import (
	"errors"
	"net/http"

	domainauth "github.com/edutools/mark-register/internal/domain/auth"
	"github.com/edutools/mark-register/internal/service"
)

// UserHandlers provides HTTP handlers for the admin user management panel.
type UserHandlers struct {
	Svc *service.UsersService
}

// List handles GET /api/users.
func (h *UserHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	profiles, err := h.Svc.List(r.Context(), limit, offset)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, profiles)
}

// Get handles GET /api/users/{username}.
func (h *UserHandlers) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Svc.GetByUsername(r.Context(), r.PathValue("username"))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, profile)
}

type setRoleRequest struct {
	Role domainauth.Role `json:"role"`
}

// SetRole handles PUT /api/users/{id}/role.
func (h *UserHandlers) SetRole(w http.ResponseWriter, r *http.Request) {
	var req setRoleRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	profile, err := h.Svc.SetRole(r.Context(), r.PathValue("id"), req.Role)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, profile)
}

// Delete handles DELETE /api/users/{id}.
func (h *UserHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.Svc.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "not_found",
			Err:     errors.New("user not found"),
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
