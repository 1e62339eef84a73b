package domain

import (
	"errors"
	"fmt"
)

// Machine readable error codes returned to API callers.
const (
	CodeInvalidRequest          = "INVALID_REQUEST"
	CodeValidationFailed        = "VALIDATION_FAILED"
	CodeUnauthorized            = "UNAUTHORIZED"
	CodeInsufficientPermissions = "INSUFFICIENT_PERMISSIONS"
	CodeProjectNotFound         = "PROJECT_NOT_FOUND"
	CodeRoleNotFound            = "ROLE_NOT_FOUND"
	CodeApplicationNotFound     = "APPLICATION_NOT_FOUND"
	CodeNextStepNotFound        = "NEXT_STEP_NOT_FOUND"
	CodeProfileNotFound         = "PROFILE_NOT_FOUND"
	CodeMemberNotFound          = "MEMBER_NOT_FOUND"
	CodeAlreadyApplied          = "ALREADY_APPLIED"
	CodeRoleNotOpen             = "ROLE_NOT_OPEN"
	CodeConflict                = "CONFLICT"
	CodeFeatureDisabled         = "FEATURE_DISABLED"
	CodeInternal                = "INTERNAL_ERROR"
)

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

func (e NotFoundError) Code() string {
	switch e.Resource {
	case "project":
		return CodeProjectNotFound
	case "role":
		return CodeRoleNotFound
	case "application":
		return CodeApplicationNotFound
	case "next step":
		return CodeNextStepNotFound
	case "profile":
		return CodeProfileNotFound
	case "member":
		return CodeMemberNotFound
	default:
		return "NOT_FOUND"
	}
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// ForbiddenError is returned when the requester may not perform an action.
type ForbiddenError struct {
	Action string
}

func (e ForbiddenError) Error() string {
	if e.Action == "" {
		return "insufficient permissions"
	}
	return fmt.Sprintf("insufficient permissions for %s", e.Action)
}

func (e ForbiddenError) Is(target error) bool {
	_, ok := target.(ForbiddenError)
	return ok
}

var ErrForbidden = ForbiddenError{}

// ConflictError reports a request that clashes with existing state.
type ConflictError struct {
	Code    string
	Message string
}

func (e ConflictError) Error() string {
	return e.Message
}

var (
	ErrAlreadyApplied = ConflictError{Code: CodeAlreadyApplied, Message: "already applied to this role"}
	ErrRoleNotOpen    = ConflictError{Code: CodeRoleNotOpen, Message: "role is not open for applications"}
)

// ErrUnauthenticated is returned when a request carries no valid identity.
var ErrUnauthenticated = errors.New("authentication required")

// ValidationError carries field keyed messages.
type ValidationError struct {
	Fields map[string]string
}

func (e ValidationError) Error() string {
	if len(e.Fields) == 1 {
		for field, msg := range e.Fields {
			return fmt.Sprintf("%s: %s", field, msg)
		}
	}
	return fmt.Sprintf("%d validation errors", len(e.Fields))
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, msg string) ValidationError {
	return ValidationError{Fields: map[string]string{field: msg}}
}
