package httpx

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/edutools/mark-register/internal/domain/model"
	"github.com/edutools/mark-register/internal/service"
)

// MarkHandlers provides HTTP handlers for mark entry and reporting.
type MarkHandlers struct {
	Svc    *service.MarksService
	Export *service.ExportService
}

// Submit handles POST /api/marks. The submitting identity comes from the
// session placed in context by the guard middleware.
func (h *MarkHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	var req *model.SubmitMarksRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	saved, err := h.Svc.Submit(r.Context(), req, session.Identity.ID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"saved": saved})
}

// Report handles GET /api/patterns/{id}/marks, returning per-student rows with
// per-question marks, course outcome totals and the grand total.
func (h *MarkHandlers) Report(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Svc.Report(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, rows)
}

// StudentMarks handles GET /api/patterns/{id}/marks/{student}, returning the
// question-number-to-marks map for one student. Missing students yield an
// empty map, not a 404, so the entry form can prefill blanks.
func (h *MarkHandlers) StudentMarks(w http.ResponseWriter, r *http.Request) {
	marks, err := h.Svc.StudentMarks(r.Context(), r.PathValue("id"), r.PathValue("student"))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"marks": marks})
}

// Clear handles DELETE /api/patterns/{id}/marks, removing every mark recorded
// against the pattern.
func (h *MarkHandlers) Clear(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Svc.ClearPattern(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"deleted": deleted})
}

// ExportCSV handles GET /api/patterns/{id}/export, streaming the mark report
// as a CSV attachment.
func (h *MarkHandlers) ExportCSV(w http.ResponseWriter, r *http.Request) {
	patternID := r.PathValue("id")

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "marks-"+patternID+".csv"))

	if err := h.Export.WriteCSV(r.Context(), patternID, w); err != nil {
		// Headers may already be on the wire; WriteAppError is still the best
		// effort for errors caught before the first row.
		WriteAppError(w, err)
		return
	}
}
