package tbls

import (
	"crypto/rand"
	"fmt"
	"time"
)

// AuditEventType represents the type of audit event
type AuditEventType string

const (
	AuditEventShareDealing      AuditEventType = "share_dealing"
	AuditEventSecretRecovery    AuditEventType = "secret_recovery"
	AuditEventSignatureRecovery AuditEventType = "signature_recovery"
	AuditEventValidationFailure AuditEventType = "validation_failure"
	AuditEventInitialization    AuditEventType = "initialization"
)

// AuditEventReason represents why an event occurred
type AuditEventReason string

const (
	ReasonEpochRollover    AuditEventReason = "epoch_rollover"
	ReasonMembershipChange AuditEventReason = "membership_change"
	ReasonManualTrigger    AuditEventReason = "manual_trigger"
	ReasonRecovery         AuditEventReason = "recovery"
	ReasonValidationError  AuditEventReason = "validation_error"
	ReasonInitialization   AuditEventReason = "initialization"
)

// AuditEvent records one dealing or recovery attempt. Events never carry
// share values or secrets, only sizes and outcomes.
type AuditEvent struct {
	// Event metadata
	EventID   string           `json:"event_id"`
	Timestamp time.Time        `json:"timestamp"`
	EventType AuditEventType   `json:"event_type"`
	Reason    AuditEventReason `json:"reason"`

	// Context information
	CurveName  string `json:"curve_name,omitempty"`
	Threshold  int    `json:"threshold,omitempty"`
	ShareCount int    `json:"share_count,omitempty"`

	// Success/failure information
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	// Additional context
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// ShareDealingEvent contains details about a dealer run
type ShareDealingEvent struct {
	AuditEvent

	Duration time.Duration `json:"duration"`
}

// RecoveryEvent contains details about a recovery attempt
type RecoveryEvent struct {
	AuditEvent

	Duration time.Duration `json:"duration"`
}

// ValidationFailureEvent contains details about validation failures
type ValidationFailureEvent struct {
	AuditEvent

	ValidationType string `json:"validation_type"`
	FailureReason  string `json:"failure_reason"`
}

// AuditEventHandler is implemented by applications to record events
// according to their needs.
type AuditEventHandler interface {
	// OnShareDealing is called after a dealer splits a secret
	OnShareDealing(event *ShareDealingEvent)

	// OnRecovery is called after a secret or signature recovery attempt,
	// successful or not
	OnRecovery(event *RecoveryEvent)

	// OnValidationFailure is called when parameter or input validation fails
	OnValidationFailure(event *ValidationFailureEvent)

	// OnError is called for general error events
	OnError(event *AuditEvent)
}

// NullAuditHandler is a no-op implementation of AuditEventHandler
type NullAuditHandler struct{}

func (n *NullAuditHandler) OnShareDealing(event *ShareDealingEvent)           {}
func (n *NullAuditHandler) OnRecovery(event *RecoveryEvent)                   {}
func (n *NullAuditHandler) OnValidationFailure(event *ValidationFailureEvent) {}
func (n *NullAuditHandler) OnError(event *AuditEvent)                         {}

// AuditEventBuilder helps construct audit events with proper defaults
type AuditEventBuilder struct {
	event *AuditEvent
}

// NewAuditEventBuilder creates a new audit event builder
func NewAuditEventBuilder(eventType AuditEventType, reason AuditEventReason) *AuditEventBuilder {
	return &AuditEventBuilder{
		event: &AuditEvent{
			EventID:   generateEventID(),
			Timestamp: time.Now(),
			EventType: eventType,
			Reason:    reason,
			Success:   true, // Default to success, can be overridden
			Metadata:  make(map[string]interface{}),
		},
	}
}

// WithCurve sets the curve name for the event
func (b *AuditEventBuilder) WithCurve(curveName string) *AuditEventBuilder {
	b.event.CurveName = curveName
	return b
}

// WithThreshold sets the scheme threshold for the event
func (b *AuditEventBuilder) WithThreshold(threshold int) *AuditEventBuilder {
	b.event.Threshold = threshold
	return b
}

// WithShareCount sets the number of shares involved
func (b *AuditEventBuilder) WithShareCount(count int) *AuditEventBuilder {
	b.event.ShareCount = count
	return b
}

// WithError marks the event as failed and sets error information
func (b *AuditEventBuilder) WithError(err error) *AuditEventBuilder {
	b.event.Success = false
	if err != nil {
		b.event.Error = err.Error()
	}
	return b
}

// WithMetadata adds metadata to the event
func (b *AuditEventBuilder) WithMetadata(key string, value interface{}) *AuditEventBuilder {
	b.event.Metadata[key] = value
	return b
}

// Build returns the constructed audit event
func (b *AuditEventBuilder) Build() *AuditEvent {
	return b.event
}

// BuildShareDealing returns a ShareDealingEvent
func (b *AuditEventBuilder) BuildShareDealing(duration time.Duration) *ShareDealingEvent {
	return &ShareDealingEvent{
		AuditEvent: *b.event,
		Duration:   duration,
	}
}

// BuildRecovery returns a RecoveryEvent
func (b *AuditEventBuilder) BuildRecovery(duration time.Duration) *RecoveryEvent {
	return &RecoveryEvent{
		AuditEvent: *b.event,
		Duration:   duration,
	}
}

// BuildValidationFailure returns a ValidationFailureEvent
func (b *AuditEventBuilder) BuildValidationFailure(validationType, failureReason string) *ValidationFailureEvent {
	return &ValidationFailureEvent{
		AuditEvent:     *b.event,
		ValidationType: validationType,
		FailureReason:  failureReason,
	}
}

// generateEventID generates a unique event ID from a timestamp plus random
// bytes, so events created in the same microsecond stay distinguishable.
func generateEventID() string {
	timestamp := time.Now().Format("20060102150405.000000")

	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return fmt.Sprintf("%s.%d", timestamp, time.Now().UnixNano()%10000)
	}

	return fmt.Sprintf("%s.%x", timestamp, randomBytes)
}
