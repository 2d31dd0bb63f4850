package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rizzcalc/rizz-web/internal/models"
	"github.com/rizzcalc/rizz-web/internal/worker"
)

// Loading shows simulated progress until the job settles, then moves on to
// the results page or back to intake with the failure message.
func (h *Handler) Loading(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	st, ok := h.queue.Status(jobID)
	if !ok {
		h.redirectWithError(w, r, "Analysis not found", "That analysis has expired, please try again")
		return
	}

	switch st.State {
	case worker.StateDone:
		http.Redirect(w, r, "/results/"+st.ResultID, http.StatusSeeOther)
	case worker.StateFailed:
		h.redirectWithError(w, r, "Analysis failed", failureMessage(st))
	default:
		h.render(w, r, http.StatusOK, "loading", "Judging your rizz...", st)
	}
}

// GetJobStatus returns the progress of an analysis job
// @Summary Analysis job status
// @Tags Analysis
// @Produce json
// @Param jobID path string true "Job ID"
// @Success 200 {object} models.JobStatus "Job status"
// @Failure 404 {object} map[string]string "Unknown job"
// @Router /api/jobs/{jobID} [get]
func (h *Handler) GetJobStatus(w http.ResponseWriter, r *http.Request) {
	st, ok := h.queue.Status(chi.URLParam(r, "jobID"))
	if !ok {
		h.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}
	h.jsonResponse(w, http.StatusOK, st)
}

// failureMessage turns a failed job into copy for the intake toast.
// Only backend details are shown verbatim since they are written for users.
func failureMessage(st models.JobStatus) string {
	switch st.Reason {
	case worker.ReasonBackend:
		if st.Error != "" {
			return st.Error
		}
	case worker.ReasonTimeout:
		return "Judging took too long, please try again"
	case worker.ReasonStopped:
		return "The analyzer is shutting down, please try again"
	}
	return "Failed to calculate rizz"
}
