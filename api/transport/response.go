package transport

import "encoding/json"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string `json:"message"`
}

// NewError returns an error body with the given client-facing message.
func NewError(message string) ErrorResponse {
	return ErrorResponse{Message: message}
}

// HealthResponse reports liveness and the number of stored tasks.
type HealthResponse struct {
	Status    string `json:"status"`
	Tasks     int    `json:"tasks"`
	Timestamp string `json:"timestamp"`
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e ErrorResponse) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
