// Package event defines event types for decoupling components in Ideaforge.
// These events enable communication between the workflow engine, the research
// coordinator, and the knowledge repository without direct dependencies.
package event

import "time"

// Event is the interface that all events must implement.
// It provides a common way to identify and timestamp events.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "dimension.added", "debate.concluded")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Knowledge Repository Events
// -----------------------------------------------------------------------------

// DimensionAddedEvent is emitted when a research dimension is added to the repository.
type DimensionAddedEvent struct {
	baseEvent
	Dimension string // Dimension name
	AddedBy   string // Agent that discovered the dimension (empty if merged)
}

// NewDimensionAddedEvent creates a DimensionAddedEvent.
func NewDimensionAddedEvent(dimension, addedBy string) DimensionAddedEvent {
	return DimensionAddedEvent{
		baseEvent: newBaseEvent("dimension.added"),
		Dimension: dimension,
		AddedBy:   addedBy,
	}
}

// DimensionUpdatedEvent is emitted when an existing dimension is modified.
type DimensionUpdatedEvent struct {
	baseEvent
	Dimension string // Dimension name
}

// NewDimensionUpdatedEvent creates a DimensionUpdatedEvent.
func NewDimensionUpdatedEvent(dimension string) DimensionUpdatedEvent {
	return DimensionUpdatedEvent{
		baseEvent: newBaseEvent("dimension.updated"),
		Dimension: dimension,
	}
}

// ChoiceAddedEvent is emitted when a foundation choice is recorded.
type ChoiceAddedEvent struct {
	baseEvent
	Dimension string // Dimension the choice applies to
	Choice    string // The selected approach
	ChosenBy  string // Agent that made the selection
}

// NewChoiceAddedEvent creates a ChoiceAddedEvent.
func NewChoiceAddedEvent(dimension, choice, chosenBy string) ChoiceAddedEvent {
	return ChoiceAddedEvent{
		baseEvent: newBaseEvent("choice.added"),
		Dimension: dimension,
		Choice:    choice,
		ChosenBy:  chosenBy,
	}
}

// PathAddedEvent is emitted when a research path is added to the repository.
type PathAddedEvent struct {
	baseEvent
	Path string // Path name
}

// NewPathAddedEvent creates a PathAddedEvent.
func NewPathAddedEvent(path string) PathAddedEvent {
	return PathAddedEvent{
		baseEvent: newBaseEvent("path.added"),
		Path:      path,
	}
}

// PathUpdatedEvent is emitted when a research path is modified.
type PathUpdatedEvent struct {
	baseEvent
	Path       string // Path name
	ExploredBy string // Agent that explored the path (empty for other updates)
}

// NewPathUpdatedEvent creates a PathUpdatedEvent.
func NewPathUpdatedEvent(path, exploredBy string) PathUpdatedEvent {
	return PathUpdatedEvent{
		baseEvent:  newBaseEvent("path.updated"),
		Path:       path,
		ExploredBy: exploredBy,
	}
}

// OpportunityAddedEvent is emitted when an integration opportunity is recorded.
type OpportunityAddedEvent struct {
	baseEvent
	Opportunity  string // Opportunity name
	IdentifiedBy string // Agent that identified the opportunity
}

// NewOpportunityAddedEvent creates an OpportunityAddedEvent.
func NewOpportunityAddedEvent(opportunity, identifiedBy string) OpportunityAddedEvent {
	return OpportunityAddedEvent{
		baseEvent:    newBaseEvent("opportunity.added"),
		Opportunity:  opportunity,
		IdentifiedBy: identifiedBy,
	}
}

// OpportunityUpdatedEvent is emitted when an integration opportunity is modified.
type OpportunityUpdatedEvent struct {
	baseEvent
	Opportunity string // Opportunity name
}

// NewOpportunityUpdatedEvent creates an OpportunityUpdatedEvent.
func NewOpportunityUpdatedEvent(opportunity string) OpportunityUpdatedEvent {
	return OpportunityUpdatedEvent{
		baseEvent:   newBaseEvent("opportunity.updated"),
		Opportunity: opportunity,
	}
}

// FindingAddedEvent is emitted when an agent records a finding for a dimension.
type FindingAddedEvent struct {
	baseEvent
	Dimension string // Dimension the finding applies to
	AgentID   string // Agent that produced the finding
	AgentType string // Type of the producing agent
}

// NewFindingAddedEvent creates a FindingAddedEvent.
func NewFindingAddedEvent(dimension, agentID, agentType string) FindingAddedEvent {
	return FindingAddedEvent{
		baseEvent: newBaseEvent("finding.added"),
		Dimension: dimension,
		AgentID:   agentID,
		AgentType: agentType,
	}
}

// -----------------------------------------------------------------------------
// Debate Events
// -----------------------------------------------------------------------------

// DebateStartedEvent is emitted when a debate opens on a topic.
type DebateStartedEvent struct {
	baseEvent
	Topic       string // Debate topic (unique identifier)
	Description string // What the debate should resolve
}

// NewDebateStartedEvent creates a DebateStartedEvent.
func NewDebateStartedEvent(topic, description string) DebateStartedEvent {
	return DebateStartedEvent{
		baseEvent:   newBaseEvent("debate.started"),
		Topic:       topic,
		Description: description,
	}
}

// DebateContributionEvent is emitted when an agent contributes to a debate.
type DebateContributionEvent struct {
	baseEvent
	Topic     string // Debate topic
	AgentID   string // Contributing agent
	AgentType string // Type of the contributing agent
}

// NewDebateContributionEvent creates a DebateContributionEvent.
func NewDebateContributionEvent(topic, agentID, agentType string) DebateContributionEvent {
	return DebateContributionEvent{
		baseEvent: newBaseEvent("debate.contribution"),
		Topic:     topic,
		AgentID:   agentID,
		AgentType: agentType,
	}
}

// DebateConcludedEvent is emitted when a debate is concluded.
type DebateConcludedEvent struct {
	baseEvent
	Topic         string // Debate topic
	Conclusion    string // The synthesized conclusion
	Contributions int    // Number of contributions considered
}

// NewDebateConcludedEvent creates a DebateConcludedEvent.
func NewDebateConcludedEvent(topic, conclusion string, contributions int) DebateConcludedEvent {
	return DebateConcludedEvent{
		baseEvent:     newBaseEvent("debate.concluded"),
		Topic:         topic,
		Conclusion:    conclusion,
		Contributions: contributions,
	}
}

// -----------------------------------------------------------------------------
// Research Orchestration Events
// -----------------------------------------------------------------------------

// ResearchPhase represents the current phase of a research run.
// Mirrors research.Phase for decoupling.
type ResearchPhase string

const (
	ResearchPhaseFoundation  ResearchPhase = "foundation"
	ResearchPhasePaths       ResearchPhase = "paths"
	ResearchPhaseIntegration ResearchPhase = "integration"
	ResearchPhaseSynthesis   ResearchPhase = "synthesis"
	ResearchPhaseComplete    ResearchPhase = "complete"
)

// PhaseChangedEvent is emitted when the research coordinator changes phase.
type PhaseChangedEvent struct {
	baseEvent
	PreviousPhase ResearchPhase // Previous phase (empty if first transition)
	CurrentPhase  ResearchPhase // New current phase
}

// NewPhaseChangedEvent creates a PhaseChangedEvent.
func NewPhaseChangedEvent(previousPhase, currentPhase ResearchPhase) PhaseChangedEvent {
	return PhaseChangedEvent{
		baseEvent:     newBaseEvent("research.phase_changed"),
		PreviousPhase: previousPhase,
		CurrentPhase:  currentPhase,
	}
}

// TaskCompletedEvent is emitted when a research task finishes.
type TaskCompletedEvent struct {
	baseEvent
	TaskID  string // Task identifier
	AgentID string // Agent that executed the task
	Success bool   // Whether the task completed successfully
	Reason  string // Additional context (error message if failed)
}

// NewTaskCompletedEvent creates a TaskCompletedEvent.
func NewTaskCompletedEvent(taskID, agentID string, success bool, reason string) TaskCompletedEvent {
	return TaskCompletedEvent{
		baseEvent: newBaseEvent("research.task_completed"),
		TaskID:    taskID,
		AgentID:   agentID,
		Success:   success,
		Reason:    reason,
	}
}

// ProgressEvent is emitted periodically during a research run.
type ProgressEvent struct {
	baseEvent
	Phase     ResearchPhase // Phase the progress applies to
	Message   string        // Human-readable progress description
	Completed int           // Tasks completed so far in this phase
	Total     int           // Total tasks in this phase
}

// NewProgressEvent creates a ProgressEvent.
func NewProgressEvent(phase ResearchPhase, message string, completed, total int) ProgressEvent {
	return ProgressEvent{
		baseEvent: newBaseEvent("research.progress"),
		Phase:     phase,
		Message:   message,
		Completed: completed,
		Total:     total,
	}
}

// -----------------------------------------------------------------------------
// Workflow Events
// -----------------------------------------------------------------------------

// SessionCreatedEvent is emitted when a new workflow session is created.
type SessionCreatedEvent struct {
	baseEvent
	SessionID   string // Unique session identifier
	ProjectName string // Human-readable project name
}

// NewSessionCreatedEvent creates a SessionCreatedEvent.
func NewSessionCreatedEvent(sessionID, projectName string) SessionCreatedEvent {
	return SessionCreatedEvent{
		baseEvent:   newBaseEvent("session.created"),
		SessionID:   sessionID,
		ProjectName: projectName,
	}
}

// StageChangedEvent is emitted when a session advances to a new workflow stage.
type StageChangedEvent struct {
	baseEvent
	SessionID     string // Session that advanced
	PreviousStage string // Stage before the transition
	CurrentStage  string // Stage after the transition
}

// NewStageChangedEvent creates a StageChangedEvent.
func NewStageChangedEvent(sessionID, previousStage, currentStage string) StageChangedEvent {
	return StageChangedEvent{
		baseEvent:     newBaseEvent("stage.changed"),
		SessionID:     sessionID,
		PreviousStage: previousStage,
		CurrentStage:  currentStage,
	}
}

// DocumentDraftedEvent is emitted when a stage document is drafted or revised.
type DocumentDraftedEvent struct {
	baseEvent
	SessionID    string // Session the document belongs to
	DocumentType string // Document type (vision, prd, architecture, research_report)
	Path         string // Filesystem path of the written document
}

// NewDocumentDraftedEvent creates a DocumentDraftedEvent.
func NewDocumentDraftedEvent(sessionID, documentType, path string) DocumentDraftedEvent {
	return DocumentDraftedEvent{
		baseEvent:    newBaseEvent("document.drafted"),
		SessionID:    sessionID,
		DocumentType: documentType,
		Path:         path,
	}
}

// DocumentChangedEvent is emitted when a drafted document changes on disk,
// typically because the user edited it during review.
type DocumentChangedEvent struct {
	baseEvent
	Path string // Filesystem path of the changed document
}

// NewDocumentChangedEvent creates a DocumentChangedEvent.
func NewDocumentChangedEvent(path string) DocumentChangedEvent {
	return DocumentChangedEvent{
		baseEvent: newBaseEvent("document.changed"),
		Path:      path,
	}
}
