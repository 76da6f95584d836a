package tbls

import (
	"fmt"
)

// ErrorCategory groups errors by the subsystem that raised them
type ErrorCategory string

const (
	ErrorCategoryRecovery      ErrorCategory = "recovery"
	ErrorCategoryThreshold     ErrorCategory = "threshold"
	ErrorCategoryParticipant   ErrorCategory = "participant"
	ErrorCategoryCryptographic ErrorCategory = "cryptographic"
	ErrorCategorySigning       ErrorCategory = "signing"
	ErrorCategoryConfiguration ErrorCategory = "configuration"
	ErrorCategoryInternal      ErrorCategory = "internal"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	ErrorSeverityLow      ErrorSeverity = "low"      // Non-critical, operation can continue
	ErrorSeverityMedium   ErrorSeverity = "medium"   // Important, may affect functionality
	ErrorSeverityHigh     ErrorSeverity = "high"     // Critical, operation should stop
	ErrorSeverityCritical ErrorSeverity = "critical" // System-level failure
)

// Error is the structured error type used across the library. Sentinel values
// below compare with errors.Is through the category/code pair, so wrapping a
// sentinel with context keeps it matchable.
type Error struct {
	Category    ErrorCategory          `json:"category"`
	Severity    ErrorSeverity          `json:"severity"`
	Code        string                 `json:"code"`
	Message     string                 `json:"message"`
	Details     string                 `json:"details,omitempty"`
	Cause       error                  `json:"-"` // Original error, not serialized
	Context     map[string]interface{} `json:"context,omitempty"`
	Recoverable bool                   `json:"recoverable"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s:%s] %s: %s", e.Category, e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by category and code so that derived copies (WithContext,
// WithDetails, WithCause) still satisfy errors.Is against the sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Category == t.Category && e.Code == t.Code
}

// clone copies the error so derived values never mutate a shared sentinel.
func (e *Error) clone() *Error {
	out := &Error{
		Category:    e.Category,
		Severity:    e.Severity,
		Code:        e.Code,
		Message:     e.Message,
		Details:     e.Details,
		Cause:       e.Cause,
		Recoverable: e.Recoverable,
		Context:     make(map[string]interface{}, len(e.Context)),
	}
	for k, v := range e.Context {
		out.Context[k] = v
	}
	return out
}

// WithContext returns a copy of the error with an added context entry
func (e *Error) WithContext(key string, value interface{}) *Error {
	out := e.clone()
	out.Context[key] = value
	return out
}

// WithDetails returns a copy of the error with a details string
func (e *Error) WithDetails(format string, args ...interface{}) *Error {
	out := e.clone()
	out.Details = fmt.Sprintf(format, args...)
	return out
}

// WithCause returns a copy of the error wrapping an underlying cause
func (e *Error) WithCause(cause error) *Error {
	out := e.clone()
	out.Cause = cause
	return out
}

// IsRecoverable returns whether the error is recoverable
func (e *Error) IsRecoverable() bool {
	return e.Recoverable
}

// NewError creates a new structured error
func NewError(category ErrorCategory, severity ErrorSeverity, code, message string) *Error {
	return &Error{
		Category:    category,
		Severity:    severity,
		Code:        code,
		Message:     message,
		Context:     make(map[string]interface{}),
		Recoverable: severity != ErrorSeverityCritical,
	}
}

// Recovery errors. All three are recoverable: the caller should retry with a
// corrected share set rather than the same input.
var (
	ErrInvalidRecoveryInput = NewError(
		ErrorCategoryRecovery, ErrorSeverityHigh, "INVALID_RECOVERY_INPUT",
		"recovery value and identifier sequences are empty or mismatched")

	ErrZeroShareID = NewError(
		ErrorCategoryRecovery, ErrorSeverityHigh, "ZERO_SHARE_ID",
		"share identifier is the field zero, which aliases the secret's position")

	ErrDuplicateShareID = NewError(
		ErrorCategoryRecovery, ErrorSeverityHigh, "DUPLICATE_SHARE_ID",
		"two share identifiers coincide, making a Lagrange denominator zero")
)

// Threshold and participant errors
var (
	ErrInvalidThreshold = NewError(
		ErrorCategoryThreshold, ErrorSeverityHigh, "INVALID_THRESHOLD",
		"threshold value is invalid")

	ErrThresholdTooHigh = NewError(
		ErrorCategoryThreshold, ErrorSeverityHigh, "THRESHOLD_TOO_HIGH",
		"threshold exceeds share count")

	ErrInsufficientShares = NewError(
		ErrorCategoryParticipant, ErrorSeverityMedium, "INSUFFICIENT_SHARES",
		"fewer shares supplied than the threshold requires")

	ErrInvalidParticipantID = NewError(
		ErrorCategoryParticipant, ErrorSeverityMedium, "INVALID_PARTICIPANT_ID",
		"participant identifier is invalid")
)

// Signing errors
var (
	ErrSignatureVerificationFailed = NewError(
		ErrorCategorySigning, ErrorSeverityHigh, "SIGNATURE_VERIFICATION_FAILED",
		"signature verification failed")

	ErrInvalidSignature = NewError(
		ErrorCategorySigning, ErrorSeverityHigh, "INVALID_SIGNATURE",
		"signature is invalid or malformed")

	ErrShareVerificationFailed = NewError(
		ErrorCategorySigning, ErrorSeverityHigh, "SHARE_VERIFICATION_FAILED",
		"share does not match the published commitments")

	ErrNothingToAggregate = NewError(
		ErrorCategorySigning, ErrorSeverityMedium, "NOTHING_TO_AGGREGATE",
		"aggregation requires at least one input")
)

// Cryptographic and configuration errors
var (
	ErrRandomnessGeneration = NewError(
		ErrorCategoryCryptographic, ErrorSeverityCritical, "RANDOMNESS_GENERATION_FAILED",
		"failed to generate secure randomness")

	ErrHashComputation = NewError(
		ErrorCategoryCryptographic, ErrorSeverityHigh, "HASH_COMPUTATION_FAILED",
		"hash computation failed")

	ErrInvalidCurve = NewError(
		ErrorCategoryConfiguration, ErrorSeverityHigh, "INVALID_CURVE",
		"cryptographic curve is invalid or unsupported")
)

// WrapError wraps an existing error with structured context
func WrapError(err error, category ErrorCategory, severity ErrorSeverity, code, message string) *Error {
	return NewError(category, severity, code, message).WithCause(err)
}

// IsErrorCategory checks if an error belongs to a specific category
func IsErrorCategory(err error, category ErrorCategory) bool {
	if e, ok := err.(*Error); ok {
		return e.Category == category
	}
	return false
}

// IsRecoverableError checks if an error is recoverable
func IsRecoverableError(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.IsRecoverable()
	}
	return true // Unstructured errors are assumed recoverable
}
