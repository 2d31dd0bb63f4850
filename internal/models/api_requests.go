package models

// ScoreRequest is the JSON body of POST /calculate_rizz/
type ScoreRequest struct {
	ImageURL string `json:"image_url" validate:"required,url"`
	Nickname string `json:"nickname" validate:"required,max=30"`
}

type UploadResponse struct {
	ImageURL string `json:"image_url"`
}

// BackendError is the FastAPI-style error body: {"detail": "..."}
type BackendError struct {
	Detail string `json:"detail"`
}

// JobStatus is returned by GET /api/jobs/{jobID}
type JobStatus struct {
	ID       string `json:"id"`
	State    string `json:"state"`
	Progress int    `json:"progress"`
	ResultID string `json:"result_id,omitempty"`
	Error    string `json:"error,omitempty"`
	// Reason classifies a failure: backend, timeout, stopped or internal.
	Reason string `json:"reason,omitempty"`
}
