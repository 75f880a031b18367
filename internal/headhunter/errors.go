package headhunter

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// UpstreamError is a non-success response from hh.ru. The description is
// taken from the upstream error body when one is present.
type UpstreamError struct {
	StatusCode  int
	Description string
}

func (e *UpstreamError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("headhunter api: %s", http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("headhunter api: %s: %s", http.StatusText(e.StatusCode), e.Description)
}

// newUpstreamError extracts a human description from the common hh.ru error
// shapes: {"description": ...}, {"error_description": ...} or {"errors": [...]}.
func newUpstreamError(status int, body []byte) *UpstreamError {
	var payload struct {
		Description      string `json:"description"`
		ErrorDescription string `json:"error_description"`
		Errors           []struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		} `json:"errors"`
	}

	description := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Description != "":
			description = payload.Description
		case payload.ErrorDescription != "":
			description = payload.ErrorDescription
		case len(payload.Errors) > 0:
			description = payload.Errors[0].Type
			if payload.Errors[0].Value != "" {
				description += ": " + payload.Errors[0].Value
			}
		}
	}

	return &UpstreamError{StatusCode: status, Description: description}
}
