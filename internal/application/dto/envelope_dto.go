// Package dto contains the request and response shapes of the density API.
package dto

// Error codes reported in APIError.Code.
const (
	CodeValidationError     = "VALIDATION_ERROR"
	CodeUnsupportedMaterial = "UNSUPPORTED_MATERIAL"
	CodeEmptyMaterial       = "EMPTY_MATERIAL"
	CodeNoMaterialSelected  = "NO_MATERIAL_SELECTED"
	CodeInvalidDensity      = "INVALID_DENSITY"
	CodeInvalidVolume       = "INVALID_VOLUME"
	CodeNotFound            = "NOT_FOUND"
	CodeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
	CodeRequestCanceled     = "REQUEST_CANCELED"
	CodeTimeout             = "TIMEOUT"
	CodeInternalError       = "INTERNAL_ERROR"
)

// APIResponse is the envelope around every /api/v1 response body.
type APIResponse[T any] struct {
	Success bool          `json:"success"`
	Data    T             `json:"data,omitempty"`
	Error   *APIError     `json:"error,omitempty"`
	Meta    *ResponseMeta `json:"meta,omitempty"`
}

// APIError describes why a request failed.
type APIError struct {
	// Code is one of the Code* constants.
	Code string `json:"code"`

	// Message is human-readable. For unsupported materials it names the material.
	Message string `json:"message"`

	// ValidationErrors is set only for CodeValidationError.
	ValidationErrors []ValidationError `json:"validation_errors,omitempty"`
}

// ValidationError is a single rejected request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`

	// Value echoes the rejected input. Leave nil for values JSON cannot encode.
	Value any `json:"value,omitempty"`
}

// ResponseMeta identifies the request that produced a response.
type ResponseMeta struct {
	RequestID string `json:"request_id,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
}

// WithMeta returns a copy of the response carrying meta.
func (r APIResponse[T]) WithMeta(meta *ResponseMeta) APIResponse[T] {
	r.Meta = meta
	return r
}

// NewSuccessResponse wraps data in a success envelope.
//
// Parameters:
//   - data: The response payload
//
// Returns:
//   - APIResponse[T]: The envelope with Success set
func NewSuccessResponse[T any](data T) APIResponse[T] {
	return APIResponse[T]{Success: true, Data: data}
}

// NewErrorResponse builds a failure envelope.
//
// Parameters:
//   - code: One of the Code* constants
//   - message: The error message
//
// Returns:
//   - APIResponse[T]: The envelope with Error set
func NewErrorResponse[T any](code, message string) APIResponse[T] {
	return APIResponse[T]{Error: &APIError{Code: code, Message: message}}
}

// NewValidationErrorResponse builds a CodeValidationError envelope listing errs.
func NewValidationErrorResponse[T any](errs []ValidationError) APIResponse[T] {
	return APIResponse[T]{
		Error: &APIError{
			Code:             CodeValidationError,
			Message:          "Request validation failed",
			ValidationErrors: errs,
		},
	}
}

// Page is one window of a filtered material listing.
type Page[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}

// NewPage builds a page of items starting at offset out of total matches.
// HasMore reports whether matches remain past the last item.
func NewPage[T any](items []T, total int64, limit, offset int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:   items,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(items)) < total,
	}
}

// HealthStatus is the state reported by /health.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
)

// HealthResponse is the body of /health.
type HealthResponse struct {
	Status  HealthStatus                 `json:"status"`
	Version string                       `json:"version"`
	Uptime  string                       `json:"uptime"`
	Checks  map[string]HealthCheckResult `json:"checks,omitempty"`
}

// HealthCheckResult is the outcome of one dependency check.
type HealthCheckResult struct {
	Status       HealthStatus `json:"status"`
	Message      string       `json:"message,omitempty"`
	ResponseTime int64        `json:"response_time_ms,omitempty"`
}
