package capi

import (
	"errors"
	"fmt"
)

// APIError is the node's error envelope, returned whenever an
// endpoint answers with a non-2xx status. Code is the HTTP-level
// code; What and Details come from the chain-level error inside the
// envelope.
type APIError struct {
	Code    int              `json:"code" cramberry:"1"`
	Message string           `json:"message" cramberry:"2"`
	What    string           `json:"what,omitempty" cramberry:"3"`
	Details []APIErrorDetail `json:"details,omitempty" cramberry:"4"`
}

// APIErrorDetail is one frame of context attached to an APIError.
type APIErrorDetail struct {
	Message string `json:"message" cramberry:"1"`
	Method  string `json:"method,omitempty" cramberry:"2"`
}

func (e *APIError) Error() string {
	if e.What != "" {
		return fmt.Sprintf("node error %d: %s: %s", e.Code, e.Message, e.What)
	}
	return fmt.Sprintf("node error %d: %s", e.Code, e.Message)
}

// IsAPI checks whether an error is an APIError and returns it.
func IsAPI(err error) (*APIError, bool) {
	var a *APIError
	if errors.As(err, &a) {
		return a, true
	}
	return nil, false
}
