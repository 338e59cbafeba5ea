// Package errors provides domain-specific error types for the shim.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/xrizer/xrizer-go/domain/entities"
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// DetailedError is implemented by error types that can convert themselves
// to a structured ErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ErrClosed is returned by managed handles used after their destroy call.
// It unwraps to XR_ERROR_HANDLE_INVALID, but a handle the runtime rejects
// does not match it.
var ErrClosed error = &ClosedError{}

// ClosedError is the type of ErrClosed.
type ClosedError struct{}

func (*ClosedError) Error() string {
	return "use of destroyed handle"
}

// Unwrap exposes the result code a closed handle would produce.
func (*ClosedError) Unwrap() error {
	return &ResultError{Code: entities.ErrorHandleInvalid}
}

// ToErrorDetail implements DetailedError.
func (e *ClosedError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "closed", Code: entities.ErrorHandleInvalid.String()}
}

// ToErrorDetail converts a Go error to a structured ErrorDetail.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	return &entities.ErrorDetail{
		Message: err.Error(),
		Type:    "internal",
	}
}

// CheckResult converts a raw XrResult into an error. Zero is success and
// yields nil; every other value yields a *ResultError carrying that code.
// Every call across the OpenXR boundary routes its status through here.
func CheckResult(op string, result entities.Result) error {
	if result == entities.Success {
		return nil
	}
	return &ResultError{Op: op, Code: result}
}

// ResultCode recovers the raw XrResult from an error produced by CheckResult.
// A nil error yields Success.
func ResultCode(err error) (entities.Result, bool) {
	if err == nil {
		return entities.Success, true
	}
	var re *ResultError
	if stdErrors.As(err, &re) {
		return re.Code, true
	}
	return 0, false
}

// ResultError is a failed OpenXR call.
type ResultError struct {
	Op   string
	Code entities.Result
}

func (e *ResultError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Code)
	}
	return e.Code.String()
}

// Is matches any *ResultError with the same code, so callers can compare
// against a zero-Op template such as &ResultError{Code: ErrorSessionLost}.
func (e *ResultError) Is(target error) bool {
	re, ok := target.(*ResultError)
	return ok && re.Code == e.Code
}

// ToErrorDetail implements DetailedError.
func (e *ResultError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "openxr", Code: e.Code.String()}
}

// ResolutionError reports that a function required by an extension could
// not be resolved, which makes the whole extension unavailable.
type ResolutionError struct {
	Err       error
	Extension string
	Function  string
}

func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extension %s: resolve %s: %v", e.Extension, e.Function, e.Err)
	}
	return fmt.Sprintf("extension %s: resolve %s: null function pointer", e.Extension, e.Function)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ResolutionError) ToErrorDetail() *entities.ErrorDetail {
	detail := &entities.ErrorDetail{Message: e.Error(), Type: "resolution", Code: e.Function}
	if e.Err != nil {
		detail.Wrapped = ToErrorDetail(e.Err)
	}
	return detail
}

// NotFoundError reports an unsupported interface version or extension.
type NotFoundError struct {
	Kind string // "interface" or "extension"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Name)
}

// ToErrorDetail implements DetailedError.
func (e *NotFoundError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "not_found", Code: e.Name, IsNotFound: true}
}

// StaleReferenceError reports a call through an exported interface whose
// owning object no longer exists.
type StaleReferenceError struct {
	Interface string
}

func (e *StaleReferenceError) Error() string {
	return fmt.Sprintf("stale reference: owner of %s is gone", e.Interface)
}

// ToErrorDetail implements DetailedError.
func (e *StaleReferenceError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "stale_reference", Code: e.Interface}
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "config", Code: e.Field}
}
