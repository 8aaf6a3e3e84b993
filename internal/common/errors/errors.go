// Package errors provides the standardized error taxonomy for the OVSE
// approval portal core.
package errors

import (
	goerrors "errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeUnknownApplication     ErrorCode = "UNKNOWN_APPLICATION"
	ErrCodeInvalidActionKind      ErrorCode = "INVALID_ACTION_KIND"
	ErrCodeRoleLevelMismatch      ErrorCode = "ROLE_LEVEL_MISMATCH"
	ErrCodeConcurrentModification ErrorCode = "CONCURRENT_MODIFICATION"

	ErrCodeSchemaValidationFailed ErrorCode = "SCHEMA_VALIDATION_FAILED"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeUnknownAdminUser     ErrorCode = "UNKNOWN_ADMIN_USER"
	ErrCodeUnknownChangeRequest ErrorCode = "UNKNOWN_CHANGE_REQUEST"
)

// PortalError represents a structured application error.
type PortalError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *PortalError) Error() string {
	return fmt.Sprintf("PortalError[%s]: %s", e.Code, e.Message)
}

// CodeOf extracts the ErrorCode from err, or "" when err is not a PortalError.
func CodeOf(err error) ErrorCode {
	var pe *PortalError
	if goerrors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// ==========================
// 2. Error Constructors
// ==========================

// NewUnknownApplicationError marks a mutate/commit referencing a nonexistent
// id. Recoverable: the store is left untouched, so retries stay idempotent.
func NewUnknownApplicationError(appID string) *PortalError {
	return &PortalError{
		Code:      ErrCodeUnknownApplication,
		Message:   "Application not found",
		Details:   fmt.Sprintf("applicationId: %s", appID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidActionKindError marks an action outside APPROVE/REJECT/CORRECTION.
func NewInvalidActionKindError(action string) *PortalError {
	return &PortalError{
		Code:      ErrCodeInvalidActionKind,
		Message:   "Unrecognized decision action",
		Details:   fmt.Sprintf("action: %s", action),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRoleLevelMismatchError marks a decision attempted by a role that does
// not own the application's current level.
func NewRoleLevelMismatchError(actingRole, currentLevel string) *PortalError {
	return &PortalError{
		Code:    ErrCodeRoleLevelMismatch,
		Message: "Acting role does not own the application's current level",
		Details: fmt.Sprintf("actingRole: %s, currentLevel: %s", actingRole, currentLevel),
		Metadata: map[string]interface{}{
			"actingRole":   actingRole,
			"currentLevel": currentLevel,
		},
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewConcurrentModificationError is reserved for a multi-writer port; the
// in-memory stores are last-write-wins and never raise it.
func NewConcurrentModificationError(appID string) *PortalError {
	return &PortalError{
		Code:      ErrCodeConcurrentModification,
		Message:   "Application was modified concurrently",
		Details:   fmt.Sprintf("applicationId: %s", appID),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSchemaValidationFailedError marks an inbound payload that failed its
// registered JSON schema.
func NewSchemaValidationFailedError(operation, details string) *PortalError {
	return &PortalError{
		Code:      ErrCodeSchemaValidationFailed,
		Message:   "Payload failed schema validation",
		Details:   fmt.Sprintf("operation: %s, %s", operation, details),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError wraps an outbound notifier failure. The
// transition itself has already committed; delivery may be retried.
func NewNotificationSendFailedError(err error) *PortalError {
	return &PortalError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Outbound notification failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownAdminUserError marks an admin operation on a nonexistent account.
func NewUnknownAdminUserError(adminID string) *PortalError {
	return &PortalError{
		Code:      ErrCodeUnknownAdminUser,
		Message:   "Admin user not found",
		Details:   fmt.Sprintf("adminId: %s", adminID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownChangeRequestError marks an L4 decision on a nonexistent pending
// change.
func NewUnknownChangeRequestError(changeID string) *PortalError {
	return &PortalError{
		Code:      ErrCodeUnknownChangeRequest,
		Message:   "Pending user change not found",
		Details:   fmt.Sprintf("changeId: %s", changeID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
