package errors

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

// -----------------------------------------------------------------------------
// Severity Tests
// -----------------------------------------------------------------------------

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityDebug, "debug"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// AgentError Tests
// -----------------------------------------------------------------------------

func TestNewAgentError(t *testing.T) {
	cause := ErrGenerationFailed
	err := NewAgentError("analysis failed", cause)

	if err.message != "analysis failed" {
		t.Errorf("message = %q, want %q", err.message, "analysis failed")
	}
	if err.cause != cause {
		t.Errorf("cause = %v, want %v", err.cause, cause)
	}
	if err.Severity() != SeverityError {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityError)
	}
	if err.IsRetryable() {
		t.Error("IsRetryable() = true, want false")
	}
	if !err.IsUserFacing() {
		t.Error("IsUserFacing() = false, want true")
	}
}

func TestAgentError_WithMethods(t *testing.T) {
	err := NewAgentError("test", nil).
		WithAgentID("foundation-1").
		WithAgentType("foundation").
		WithSeverity(SeverityCritical).
		WithRetryable(true)

	if err.AgentID != "foundation-1" {
		t.Errorf("AgentID = %q, want %q", err.AgentID, "foundation-1")
	}
	if err.AgentType != "foundation" {
		t.Errorf("AgentType = %q, want %q", err.AgentType, "foundation")
	}
	if err.Severity() != SeverityCritical {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityCritical)
	}
	if !err.IsRetryable() {
		t.Error("IsRetryable() = false, want true")
	}
}

func TestAgentError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AgentError
		want string
	}{
		{
			name: "basic error",
			err:  NewAgentError("test error", nil),
			want: "agent error: test error",
		},
		{
			name: "with cause",
			err:  NewAgentError("test error", ErrGenerationFailed),
			want: "agent error: test error: text generation failed",
		},
		{
			name: "with agent ID",
			err:  NewAgentError("test error", nil).WithAgentID("path-2"),
			want: "agent error [agent=path-2]: test error",
		},
		{
			name: "with agent ID and type and cause",
			err:  NewAgentError("test error", ErrAgentNotFound).WithAgentID("synthesis-1").WithAgentType("synthesis"),
			want: "agent error [agent=synthesis-1, type=synthesis]: test error: agent not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAgentError_Is(t *testing.T) {
	err := NewAgentError("test", ErrAgentNotFound).WithAgentID("abc")

	// Should match AgentError type
	if !Is(err, &AgentError{}) {
		t.Error("Is(AgentError{}) = false, want true")
	}

	// Should match wrapped sentinel error
	if !Is(err, ErrAgentNotFound) {
		t.Error("Is(ErrAgentNotFound) = false, want true")
	}

	// Should not match unrelated errors
	if Is(err, ErrDebateNotFound) {
		t.Error("Is(ErrDebateNotFound) = true, want false")
	}
}

func TestAgentError_Unwrap(t *testing.T) {
	cause := ErrGenerationFailed
	err := NewAgentError("test", cause)

	if unwrapped := Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
}

// -----------------------------------------------------------------------------
// RepositoryError Tests
// -----------------------------------------------------------------------------

func TestNewRepositoryError(t *testing.T) {
	cause := ErrDebateConcluded
	err := NewRepositoryError("cannot contribute", cause)

	if err.message != "cannot contribute" {
		t.Errorf("message = %q, want %q", err.message, "cannot contribute")
	}
	if err.Severity() != SeverityError {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityError)
	}
}

func TestRepositoryError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *RepositoryError
		want string
	}{
		{
			name: "basic error",
			err:  NewRepositoryError("update failed", nil),
			want: "repository error: update failed",
		},
		{
			name: "with resource",
			err:  NewRepositoryError("update failed", nil).WithResource("dimension", "Data Storage"),
			want: "repository error [resource=dimension, name=Data Storage]: update failed",
		},
		{
			name: "with resource and cause",
			err:  NewRepositoryError("cannot conclude", ErrNoContributions).WithResource("debate", "topic-x"),
			want: "repository error [resource=debate, name=topic-x]: cannot conclude: debate has no contributions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRepositoryError_Is(t *testing.T) {
	err := NewRepositoryError("conclude failed", ErrDebateConcluded).WithResource("debate", "t")

	if !Is(err, &RepositoryError{}) {
		t.Error("Is(RepositoryError{}) = false, want true")
	}
	if !Is(err, ErrDebateConcluded) {
		t.Error("Is(ErrDebateConcluded) = false, want true")
	}
	if Is(err, ErrSessionNotFound) {
		t.Error("Is(ErrSessionNotFound) = true, want false")
	}
}

// -----------------------------------------------------------------------------
// SessionError Tests
// -----------------------------------------------------------------------------

func TestSessionError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *SessionError
		want string
	}{
		{
			name: "basic error",
			err:  NewSessionError("test error", nil),
			want: "session error: test error",
		},
		{
			name: "with cause",
			err:  NewSessionError("test error", ErrSessionNotFound),
			want: "session error: test error: session not found",
		},
		{
			name: "with session ID",
			err:  NewSessionError("test error", nil).WithSessionID("abc123"),
			want: "session error [session=abc123]: test error",
		},
		{
			name: "with session ID and cause",
			err:  NewSessionError("test error", ErrSessionCorrupted).WithSessionID("xyz"),
			want: "session error [session=xyz]: test error: session data corrupted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSessionError_Is(t *testing.T) {
	err := NewSessionError("test", ErrSessionNotFound).WithSessionID("abc")

	if !Is(err, &SessionError{}) {
		t.Error("Is(SessionError{}) = false, want true")
	}
	if !Is(err, ErrSessionNotFound) {
		t.Error("Is(ErrSessionNotFound) = false, want true")
	}
	if Is(err, ErrAgentNotFound) {
		t.Error("Is(ErrAgentNotFound) = true, want false")
	}
}

// -----------------------------------------------------------------------------
// WorkflowError Tests
// -----------------------------------------------------------------------------

func TestWorkflowError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *WorkflowError
		want string
	}{
		{
			name: "basic error",
			err:  NewWorkflowError("draft failed", nil),
			want: "workflow error: draft failed",
		},
		{
			name: "with stage",
			err:  NewWorkflowError("draft failed", nil).WithStage("vision"),
			want: "workflow error [stage=vision]: draft failed",
		},
		{
			name: "with stage and document and cause",
			err:  NewWorkflowError("cannot revise", ErrDocumentNotFound).WithStage("prd").WithDocument("prd"),
			want: "workflow error [stage=prd, document=prd]: cannot revise: document not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWorkflowError_Is(t *testing.T) {
	err := NewWorkflowError("cannot converse", ErrWrongStage).WithStage("vision")

	if !Is(err, &WorkflowError{}) {
		t.Error("Is(WorkflowError{}) = false, want true")
	}
	if !Is(err, ErrWrongStage) {
		t.Error("Is(ErrWrongStage) = false, want true")
	}
}

// -----------------------------------------------------------------------------
// Semantic Error Tests
// -----------------------------------------------------------------------------

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("dimension", "Data Storage")

	want := "dimension 'Data Storage' not found"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if err.ResourceType != "dimension" {
		t.Errorf("ResourceType = %q, want %q", err.ResourceType, "dimension")
	}
	if err.ResourceID != "Data Storage" {
		t.Errorf("ResourceID = %q, want %q", err.ResourceID, "Data Storage")
	}
	if !err.IsUserFacing() {
		t.Error("IsUserFacing() = false, want true")
	}
	if err.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityWarning)
	}
}

func TestNotFoundError_WithCause(t *testing.T) {
	cause := errors.New("disk failure")
	err := NewNotFoundError("session", "abc").WithCause(cause)

	want := "session 'abc' not found: disk failure"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !Is(err, cause) {
		t.Error("Is(cause) = false, want true")
	}
}

func TestAlreadyExistsError(t *testing.T) {
	err := NewAlreadyExistsError("agent", "foundation-1")

	want := "agent 'foundation-1' already exists"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if err.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityWarning)
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("prompt cannot be empty").
		WithField("prompt")

	got := err.Error()
	want := "validation error [field=prompt]: prompt cannot be empty"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	// ValidationError matches ErrInvalidInput
	if !Is(err, ErrInvalidInput) {
		t.Error("Is(ErrInvalidInput) = false, want true")
	}
}

func TestValidationError_WithValue(t *testing.T) {
	err := NewValidationError("score out of range").
		WithField("score").
		WithValue(42)

	want := "validation error [field=score, value=42]: score out of range"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestTimeoutError(t *testing.T) {
	err := NewTimeoutError("waiting for contributions", 10*time.Second)

	want := "timeout error: waiting for contributions (timeout: 10s)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !err.IsRetryable() {
		t.Error("IsRetryable() = false, want true")
	}
	if !Is(err, ErrTimeout) {
		t.Error("Is(ErrTimeout) = false, want true")
	}
}

// -----------------------------------------------------------------------------
// Classification Helper Tests
// -----------------------------------------------------------------------------

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"plain error", errors.New("boom"), false},
		{"timeout error", NewTimeoutError("op", time.Second), true},
		{"wrapped ErrTimeout", fmt.Errorf("call: %w", ErrTimeout), true},
		{"retryable agent error", NewAgentError("x", nil).WithRetryable(true), true},
		{"non-retryable agent error", NewAgentError("x", nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"plain error", errors.New("boom"), false},
		{"agent error", NewAgentError("x", nil), true},
		{"not found error", NewNotFoundError("path", "p1"), true},
		{"wrapped validation error", fmt.Errorf("outer: %w", NewValidationError("bad")), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetSeverity(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Severity
	}{
		{"nil error", nil, SeverityDebug},
		{"plain error", errors.New("boom"), SeverityError},
		{"warning-level semantic error", NewNotFoundError("debate", "t"), SeverityWarning},
		{"critical domain error", NewRepositoryError("x", nil).WithSeverity(SeverityCritical), SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetSeverity(tt.err); got != tt.want {
				t.Errorf("GetSeverity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDomainError(t *testing.T) {
	if !IsDomainError(NewAgentError("x", nil)) {
		t.Error("IsDomainError(AgentError) = false, want true")
	}
	if !IsDomainError(NewWorkflowError("x", nil)) {
		t.Error("IsDomainError(WorkflowError) = false, want true")
	}
	if IsDomainError(NewNotFoundError("a", "b")) {
		t.Error("IsDomainError(NotFoundError) = true, want false")
	}
	if IsDomainError(nil) {
		t.Error("IsDomainError(nil) = true, want false")
	}
}

func TestIsSemanticError(t *testing.T) {
	if !IsSemanticError(NewValidationError("x")) {
		t.Error("IsSemanticError(ValidationError) = false, want true")
	}
	if IsSemanticError(NewSessionError("x", nil)) {
		t.Error("IsSemanticError(SessionError) = true, want false")
	}
}

// -----------------------------------------------------------------------------
// Wrap Tests
// -----------------------------------------------------------------------------

func TestWrap(t *testing.T) {
	base := ErrDimensionNotFound
	err := Wrap(base, "foundation phase")

	want := "foundation phase: dimension not found"
	if got := err.Error(); got != want {
		t.Errorf("Wrap().Error() = %q, want %q", got, want)
	}
	if !Is(err, base) {
		t.Error("Is(base) = false, want true")
	}
}

func TestWrap_NilError(t *testing.T) {
	if err := Wrap(nil, "context"); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
	if err := Wrapf(nil, "context %d", 1); err != nil {
		t.Errorf("Wrapf(nil) = %v, want nil", err)
	}
}

func TestWrapf(t *testing.T) {
	base := ErrSessionNotFound
	err := Wrapf(base, "loading session %s", "abc123")

	want := "loading session abc123: session not found"
	if got := err.Error(); got != want {
		t.Errorf("Wrapf().Error() = %q, want %q", got, want)
	}
	if !Is(err, base) {
		t.Error("Is(base) = false, want true")
	}
}
