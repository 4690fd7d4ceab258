package middleware

import (
	"encoding/json"
	"net/http"
)

// errorEnvelope mirrors the handler package's error shape so middleware
// rejections look identical to handler rejections.
type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	RequestID  string `json:"request_id"`
	RetryAfter int    `json:"retry_after,omitempty"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, retryAfter int) {
	envelope := errorEnvelope{RequestID: GetRequestID(r.Context()), RetryAfter: retryAfter}
	envelope.Error.Code = code
	envelope.Error.Message = message

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope)
}
