package host

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
)

// FieldError describes a validation failure for a single field.
type FieldError struct {
	ErrorCode string `json:"errorCode"`
	FieldName string `json:"fieldName,omitempty"`
	Message   string `json:"message,omitempty"`
}

// ResponseStatus is the error envelope embedded in error responses.
type ResponseStatus struct {
	ErrorCode  string       `json:"errorCode"`
	Message    string       `json:"message,omitempty"`
	StackTrace string       `json:"stackTrace,omitempty"`
	Errors     []FieldError `json:"errors,omitempty"`
}

// ErrorResponse is the minimal payload generated for failed requests.
type ErrorResponse struct {
	ResponseStatus ResponseStatus `json:"responseStatus"`
}

// GetResponseStatus implements StatusCarrier.
func (e ErrorResponse) GetResponseStatus() *ResponseStatus {
	status := e.ResponseStatus
	return &status
}

// StatusCarrier is implemented by payloads that expose a ResponseStatus.
type StatusCarrier interface {
	GetResponseStatus() *ResponseStatus
}

// ResponseStatusOf extracts the ResponseStatus from a response payload, or
// nil when the payload carries none.
func ResponseStatusOf(body any) *ResponseStatus {
	switch v := body.(type) {
	case nil:
		return nil
	case *ResponseStatus:
		return v
	case ResponseStatus:
		return &v
	case StatusCarrier:
		return v.GetResponseStatus()
	case *Result:
		if v == nil {
			return nil
		}
		return ResponseStatusOf(v.Response)
	}
	return nil
}

// HTTPError is an error carrying the HTTP status it maps to.
type HTTPError struct {
	Status int
	Code   string
	Err    error
}

// NewHTTPError wraps err with status. Code defaults to the status text.
func NewHTTPError(status int, err error) *HTTPError {
	return &HTTPError{Status: status, Err: err}
}

func (e *HTTPError) Error() string {
	if e.Err == nil {
		return http.StatusText(e.Status)
	}
	return e.Err.Error()
}

func (e *HTTPError) Unwrap() error { return e.Err }

// StatusOf returns the HTTP status associated with err, defaulting to 500.
func StatusOf(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.Status > 0 {
		return httpErr.Status
	}
	return http.StatusInternalServerError
}

// CreateErrorResponse builds the generated error payload used when a request
// fails and no richer payload is available.
func CreateErrorResponse(dto any, err error) ErrorResponse {
	if err == nil {
		err = errors.New("unknown error")
	}
	status := ResponseStatus{
		ErrorCode: errorCode(err),
		Message:   err.Error(),
	}
	if dto != nil {
		status.StackTrace = fmt.Sprintf("[%s: %s]", OperationNameOf(dto), err.Error())
	}
	return ErrorResponse{ResponseStatus: status}
}

func errorCode(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Code != "" {
			return httpErr.Code
		}
		return strings.ReplaceAll(http.StatusText(httpErr.Status), " ", "")
	}
	name := OperationNameOf(err)
	if name == "" {
		return "Exception"
	}
	return name
}

// OperationNameOf derives an operation name from a value's type name,
// dereferencing pointers.
func OperationNameOf(v any) string {
	if v == nil {
		return ""
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
