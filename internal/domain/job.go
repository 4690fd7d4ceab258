package domain

import (
	"encoding/json"
	"time"
)

type JobStatus string

// Status values follow the broker task vocabulary the legacy system already
// exposed to pollers, so existing clients keep working.
const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusStarted JobStatus = "STARTED"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailure JobStatus = "FAILURE"
	JobStatusRetry   JobStatus = "RETRY"
	JobStatusRevoked JobStatus = "REVOKED"
)

// Terminal reports whether no further transition is allowed from s.
func (s JobStatus) Terminal() bool {
	switch s {
	case JobStatusSuccess, JobStatusFailure, JobStatusRevoked:
		return true
	}
	return false
}

// CanTransition reports whether moving from s to next is a legal lifecycle
// step. Revocation is allowed from any non-terminal state; every other path
// must pass through STARTED. STARTED may re-enter STARTED: a worker that
// crashes mid-attempt leaves the snapshot there, and the redelivered message
// restarts the attempt.
func (s JobStatus) CanTransition(next JobStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == JobStatusRevoked {
		return true
	}
	switch s {
	case JobStatusPending, JobStatusRetry:
		return next == JobStatusStarted
	case JobStatusStarted:
		return next == JobStatusStarted || next == JobStatusSuccess ||
			next == JobStatusFailure || next == JobStatusRetry
	}
	return false
}

// Prediction is one ranked classifier output.
type Prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ClassificationResult is the immutable value produced by one successful
// pipeline run.
type ClassificationResult struct {
	Language       string       `json:"language"`
	Intent         string       `json:"intent"`
	Confidence     float64      `json:"confidence"`
	Predictions    []Prediction `json:"predictions"`
	RedactedText   string       `json:"redacted_text"`
	ResponseText   string       `json:"response_text"`
	TranslatedText string       `json:"translated_text,omitempty"`
}

// JobSnapshot is the tracker's view of one job: current status, attempt
// count, and the terminal payload when one exists. Result and Error are
// always present on the wire, null until populated.
type JobSnapshot struct {
	JobID     string                `json:"job_id"`
	Status    JobStatus             `json:"status"`
	Attempts  int                   `json:"attempts"`
	Result    *ClassificationResult `json:"result"`
	Error     *string               `json:"error"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// TicketRecord is the append-only persisted row for one completed
// classification. Rows are never updated or deleted.
type TicketRecord struct {
	ID             string    `json:"id"`
	Text           string    `json:"text"`
	Intent         string    `json:"intent"`
	Confidence     float64   `json:"confidence"`
	Language       string    `json:"language"`
	ResponseText   string    `json:"response_text"`
	TranslatedText string    `json:"translated_text,omitempty"`
	Predictions    string    `json:"predictions,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Stats summarizes the persisted history for the stats endpoint.
type Stats struct {
	TotalTickets int64   `json:"total_tickets"`
	ActiveTasks  int64   `json:"active_tasks"`
	SuccessRate  float64 `json:"success_rate"`
}

// QueueMessage is the transport format sent to queue backends. Text is
// already redacted by the gateway before it ever reaches a broker.
type QueueMessage struct {
	JobID       string    `json:"job_id"`
	Text        string    `json:"text"`
	Attempt     int       `json:"attempt"`
	RequestedAt time.Time `json:"requested_at"`
}

// EncodePredictions serializes ranked predictions for the record store.
func EncodePredictions(predictions []Prediction) string {
	if len(predictions) == 0 {
		return ""
	}
	encoded, err := json.Marshal(predictions)
	if err != nil {
		return ""
	}
	return string(encoded)
}
