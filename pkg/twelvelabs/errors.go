package twelvelabs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies every failure a client call can return.
type ErrorKind int

// Error kinds. The first eight come from HTTP status codes; KindUnknown covers
// any other non-2xx status.
const (
	KindUnknown ErrorKind = iota
	KindBadRequest
	KindAuthentication
	KindPermissionDenied
	KindNotFound
	KindConflict
	KindUnprocessableEntity
	KindRateLimit
	KindInternalServer
	KindTransportFailure
	KindTimeout
)

var kindNames = map[ErrorKind]string{
	KindUnknown:             "unknown",
	KindBadRequest:          "bad_request",
	KindAuthentication:      "authentication",
	KindPermissionDenied:    "permission_denied",
	KindNotFound:            "not_found",
	KindConflict:            "conflict",
	KindUnprocessableEntity: "unprocessable_entity",
	KindRateLimit:           "rate_limit",
	KindInternalServer:      "internal_server",
	KindTransportFailure:    "transport_failure",
	KindTimeout:             "timeout",
}

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("kind(%d)", int(k))
}

// Transient reports whether a poll may retry after this kind of failure.
func (k ErrorKind) Transient() bool {
	return k == KindRateLimit || k == KindInternalServer || k == KindTransportFailure
}

// Sentinels matched by errors.Is against *APIError, *TransportError and *TimeoutError.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrAuthentication      = errors.New("authentication failed")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrUnprocessableEntity = errors.New("unprocessable entity")
	ErrRateLimit           = errors.New("rate limit exceeded")
	ErrInternalServer      = errors.New("internal server error")
	ErrUnexpectedStatus    = errors.New("unexpected status")
	ErrTransportFailure    = errors.New("transport failure")
	ErrTimeout             = errors.New("timed out")
)

var kindSentinels = map[ErrorKind]error{
	KindUnknown:             ErrUnexpectedStatus,
	KindBadRequest:          ErrBadRequest,
	KindAuthentication:      ErrAuthentication,
	KindPermissionDenied:    ErrPermissionDenied,
	KindNotFound:            ErrNotFound,
	KindConflict:            ErrConflict,
	KindUnprocessableEntity: ErrUnprocessableEntity,
	KindRateLimit:           ErrRateLimit,
	KindInternalServer:      ErrInternalServer,
	KindTransportFailure:    ErrTransportFailure,
	KindTimeout:             ErrTimeout,
}

// Static errors for request validation.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrAPIKeyRequired      = errors.New("API key is required")
	ErrRequestRequired     = errors.New("request is required")
	ErrIndexIDRequired     = errors.New("index ID is required")
	ErrIndexNameRequired   = errors.New("index name is required")
	ErrEnginesRequired     = errors.New("at least one engine is required")
	ErrTaskIDRequired      = errors.New("task ID is required")
	ErrVideoIDRequired     = errors.New("video ID is required")
	ErrVideoSourceRequired = errors.New("exactly one of video file or video URL is required")
	ErrQueryRequired       = errors.New("query or filter is required")
	ErrOptionsRequired     = errors.New("at least one search option is required")
	ErrPromptRequired      = errors.New("prompt is required")
	ErrSummaryTypeRequired = errors.New("summary type is required")
	ErrGistTypesRequired   = errors.New("at least one gist type is required")
	ErrPageTokenRequired   = errors.New("page token is required")
)

// APIError is a non-2xx response from the platform.
type APIError struct {
	Kind       ErrorKind `json:"-"`
	StatusCode int       `json:"-"`
	Body       []byte    `json:"-"`
	Code       string    `json:"code"`
	Message    string    `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" || e.Message != "" {
		return fmt.Sprintf("%s (status %d): %s: %s", e.Kind, e.StatusCode, e.Code, e.Message)
	}

	return fmt.Sprintf("%s (status %d): %s", e.Kind, e.StatusCode, string(e.Body))
}

// Is matches the sentinel for the error's kind.
func (e *APIError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// MapError translates a non-2xx status and body into a typed error. It is total:
// every status yields exactly one kind.
func MapError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		Kind:       kindForStatus(statusCode),
		StatusCode: statusCode,
		Body:       body,
	}

	// The envelope is best effort; a non-JSON body stays available in Body.
	_ = json.Unmarshal(body, apiErr)

	return apiErr
}

func kindForStatus(statusCode int) ErrorKind {
	switch {
	case statusCode == http.StatusBadRequest:
		return KindBadRequest
	case statusCode == http.StatusUnauthorized:
		return KindAuthentication
	case statusCode == http.StatusForbidden:
		return KindPermissionDenied
	case statusCode == http.StatusNotFound:
		return KindNotFound
	case statusCode == http.StatusConflict:
		return KindConflict
	case statusCode == http.StatusUnprocessableEntity:
		return KindUnprocessableEntity
	case statusCode == http.StatusTooManyRequests:
		return KindRateLimit
	case statusCode >= http.StatusInternalServerError && statusCode <= 599:
		return KindInternalServer
	default:
		return KindUnknown
	}
}

// TransportError is a failure below HTTP: DNS, refused connection, TLS, reset.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %s %s: %v", e.Method, e.Path, e.Err)
}

// Unwrap returns the underlying network error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is matches ErrTransportFailure.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransportFailure
}

// TimeoutError is returned when a wait budget runs out before a terminal state.
type TimeoutError struct {
	TaskID   string
	Attempts int
	// Last is the most recent fetch error, if the final attempt failed.
	Last error
	// LastTask is the most recent state observed, if any fetch succeeded.
	LastTask *Task
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	msg := fmt.Sprintf("timed out waiting for task %s after %d attempts", e.TaskID, e.Attempts)

	if e.LastTask != nil {
		msg += fmt.Sprintf(" (last status %q)", e.LastTask.Status)
	}

	if e.Last != nil {
		msg += ": " + e.Last.Error()
	}

	return msg
}

// Unwrap returns the last fetch error.
func (e *TimeoutError) Unwrap() error {
	return e.Last
}

// Is matches ErrTimeout.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// KindOf reports the kind of a client error. ok is false for errors that did
// not come from the platform, the transport, or a wait budget.
func KindOf(err error) (ErrorKind, bool) {
	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) {
		return KindTimeout, true
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return KindTransportFailure, true
	}

	return KindUnknown, false
}

// IsTransient reports whether err is a rate limit, a 5xx or a transport failure.
func IsTransient(err error) bool {
	kind, ok := KindOf(err)

	return ok && kind.Transient()
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized checks if the error is an authentication error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrAuthentication)
}

// IsForbidden checks if the error is a permission error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

// IsRateLimited checks if the error is a rate limit error.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimit)
}

// IsTimeout checks if the error is a wait timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
