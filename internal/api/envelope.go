package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// EnvelopeVersion is the wire version of the response envelope. Bump only
// with a coordinated client release; the client checks this field.
const EnvelopeVersion = 1

// Envelope is the consistent JSON structure wrapping every response body.
type Envelope struct {
	Data    any    `json:"data,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Details any    `json:"details,omitempty"`
	V       int    `json:"v"`
	Success bool   `json:"success"`
}

// EnvelopeTransformer wraps every huma response body in the Envelope.
// Success bodies land under "data"; APIError bodies are flattened into the
// error fields so clients get one shape for everything.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	success := status < "400" || len(status) != 3

	if apiErr, ok := v.(*APIError); ok {
		return &Envelope{
			V:       EnvelopeVersion,
			Success: false,
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Error:   apiErr.Message,
			Details: apiErr.Details,
		}, nil
	}

	if err, ok := v.(error); ok {
		return &Envelope{
			V:       EnvelopeVersion,
			Success: false,
			Error:   err.Error(),
		}, nil
	}

	return &Envelope{
		V:       EnvelopeVersion,
		Success: success,
		Data:    v,
	}, nil
}
