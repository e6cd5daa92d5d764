package dashscope

import "fmt"

// CallError reports a non-success status returned by the DashScope API.
// It carries the HTTP status together with the remote error code and message
// from the response body.
type CallError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *CallError) Error() string {
	return fmt.Sprintf("dashscope call failed: status %d, code %q: %s", e.StatusCode, e.Code, e.Message)
}
