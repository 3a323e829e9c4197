package apperr

import (
	"net/http"
	"time"
)

// Env is the deployment environment the process runs in.
type Env string

const (
	EnvDevelopment Env = "development"
	EnvStaging     Env = "staging"
	EnvProduction  Env = "production"
)

// IsDevelopment reports whether internal diagnostics may be exposed.
func (e Env) IsDevelopment() bool { return e == EnvDevelopment }

func (e Env) Valid() bool {
	switch e {
	case EnvDevelopment, EnvStaging, EnvProduction:
		return true
	}
	return false
}

// GenericMessage replaces the message of every unclassified error.
const GenericMessage = "An unexpected error occurred"

// Response is the envelope returned to a caller on failure.
type Response struct {
	Success   bool           `json:"success"`
	Error     string         `json:"error"`
	Message   string         `json:"message"`
	Code      string         `json:"code"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	RequestID string         `json:"requestId,omitempty"`

	// Status is the HTTP status to send the envelope with.
	Status int `json:"-"`
}

// NewResponse renders err into the outward envelope. Only classified errors
// keep their code and message; everything else becomes a generic 500.
// Details (stack and context) are attached in development only.
func NewResponse(err error, env Env, requestID string) Response {
	resp := Response{
		Success:   false,
		Error:     CodeInternal,
		Message:   GenericMessage,
		Code:      CodeInternal,
		Timestamp: time.Now().UTC(),
		RequestID: requestID,
		Status:    http.StatusInternalServerError,
	}

	e := From(err)
	if e.Classified() {
		resp.Error = e.Code()
		resp.Code = e.Code()
		if msg := e.Message(); msg != "" {
			resp.Message = msg
		}
		if status := e.Status(); status >= 400 && status <= 599 {
			resp.Status = status
		}
	}

	if env.IsDevelopment() {
		details := e.Context()
		if details == nil {
			details = make(map[string]any, 1)
		}
		details["stack"] = e.Stack()
		resp.Details = details
	}

	return resp
}

// BoundaryTitle heads every error page rendered from BoundaryProps.
const BoundaryTitle = "Something went wrong"

// BoundaryMessage replaces the error text on error pages outside development.
const BoundaryMessage = "We encountered an unexpected error. Please try again."

// BoundaryDetails is the diagnostic block of an error page.
type BoundaryDetails struct {
	Message   string    `json:"message"`
	Stack     string    `json:"stack,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// BoundaryProps is what a client-side error boundary renders in place of
// a crashed view.
type BoundaryProps struct {
	Title        string           `json:"title"`
	Message      string           `json:"message"`
	ShowDetails  bool             `json:"showDetails"`
	ErrorDetails *BoundaryDetails `json:"errorDetails,omitempty"`
}

// NewBoundaryProps describes a failure for an error page. The real message
// and stack are only exposed in development.
func NewBoundaryProps(message, stack string, env Env) BoundaryProps {
	if !env.IsDevelopment() {
		return BoundaryProps{Title: BoundaryTitle, Message: BoundaryMessage}
	}

	return BoundaryProps{
		Title:       BoundaryTitle,
		Message:     message,
		ShowDetails: true,
		ErrorDetails: &BoundaryDetails{
			Message:   message,
			Stack:     stack,
			Timestamp: time.Now().UTC(),
		},
	}
}
