package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ValidationError rejects an action locally before any request is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Validation builds a ValidationError for field.
func Validation(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// RequestError reports a transport or server failure of a remote operation.
// Message is the text shown to the user; Err keeps the underlying cause.
type RequestError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s failed with status %d", e.Op, e.Status)
	}
	return e.Op + " failed"
}

func (e *RequestError) Unwrap() error { return e.Err }

// MalformedResultError marks a response that decoded but cannot be rendered,
// for example an unknown result kind. It is a RequestError variant: errors.As
// with a **RequestError target succeeds.
type MalformedResultError struct {
	Reason string
}

func (e *MalformedResultError) Error() string { return "malformed result: " + e.Reason }

// As lets callers treat a malformed result as a failed request.
func (e *MalformedResultError) As(target any) bool {
	t, ok := target.(**RequestError)
	if !ok {
		return false
	}
	*t = &RequestError{Op: "decode result", Message: e.Error(), Err: e}
	return true
}

// Malformed builds a MalformedResultError.
func Malformed(format string, args ...any) error {
	return &MalformedResultError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsMalformed reports whether err is (or wraps) a MalformedResultError.
func IsMalformed(err error) bool {
	var m *MalformedResultError
	return errors.As(err, &m)
}

// Message returns the user facing text for err. Wrapping context added with
// fmt.Errorf is dropped for the known kinds so the inline message stays short.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Error()
	}
	var m *MalformedResultError
	if errors.As(err, &m) {
		return m.Error()
	}
	var r *RequestError
	if errors.As(err, &r) {
		return r.Error()
	}
	return err.Error()
}

// ResponseDetail extracts the server's message from an error body. FastAPI style
// {"detail": "..."} and {"error": "..."} are understood; otherwise the trimmed
// body or the status text is used.
func ResponseDetail(body []byte, status int) string {
	var env struct {
		Detail any    `json:"detail"`
		Error  string `json:"error"`
	}
	if json.Unmarshal(body, &env) == nil {
		if s, ok := env.Detail.(string); ok && s != "" {
			return s
		}
		if env.Detail != nil {
			if b, err := json.Marshal(env.Detail); err == nil {
				return string(b)
			}
		}
		if env.Error != "" {
			return env.Error
		}
	}
	if s := strings.TrimSpace(string(body)); s != "" && len(s) < 300 {
		return s
	}
	return fmt.Sprintf("%d %s", status, http.StatusText(status))
}
