package event

import (
	"testing"
	"time"
)

func TestEventTypes(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  string
	}{
		{"dimension added", NewDimensionAddedEvent("Data Storage", "foundation-1"), "dimension.added"},
		{"dimension updated", NewDimensionUpdatedEvent("Data Storage"), "dimension.updated"},
		{"choice added", NewChoiceAddedEvent("Data Storage", "PostgreSQL", "synthesis-1"), "choice.added"},
		{"path added", NewPathAddedEvent("Primary Path"), "path.added"},
		{"path updated", NewPathUpdatedEvent("Primary Path", "path-1"), "path.updated"},
		{"opportunity added", NewOpportunityAddedEvent("Event-Sourced Cache", "integration-1"), "opportunity.added"},
		{"opportunity updated", NewOpportunityUpdatedEvent("Event-Sourced Cache"), "opportunity.updated"},
		{"finding added", NewFindingAddedEvent("Data Storage", "established-1", "paradigm"), "finding.added"},
		{"debate started", NewDebateStartedEvent("Foundation choices for Data Storage", "pick one"), "debate.started"},
		{"debate contribution", NewDebateContributionEvent("Foundation choices for Data Storage", "foundation-1", "foundation"), "debate.contribution"},
		{"debate concluded", NewDebateConcludedEvent("Foundation choices for Data Storage", "PostgreSQL", 4), "debate.concluded"},
		{"phase changed", NewPhaseChangedEvent(ResearchPhaseFoundation, ResearchPhasePaths), "research.phase_changed"},
		{"task completed", NewTaskCompletedEvent("task-1", "path-1", true, ""), "research.task_completed"},
		{"progress", NewProgressEvent(ResearchPhasePaths, "exploring paths", 1, 3), "research.progress"},
		{"session created", NewSessionCreatedEvent("sess-1", "my-project"), "session.created"},
		{"stage changed", NewStageChangedEvent("sess-1", "brainstorm", "vision"), "stage.changed"},
		{"document drafted", NewDocumentDraftedEvent("sess-1", "vision", "/tmp/vision.md"), "document.drafted"},
		{"document changed", NewDocumentChangedEvent("/tmp/vision.md"), "document.changed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.EventType(); got != tt.want {
				t.Errorf("EventType() = %q, want %q", got, tt.want)
			}
			if tt.event.Timestamp().IsZero() {
				t.Error("Timestamp() should not be zero")
			}
			if time.Since(tt.event.Timestamp()) > time.Minute {
				t.Error("Timestamp() should be recent")
			}
		})
	}
}

func TestDebateConcludedEvent_Fields(t *testing.T) {
	e := NewDebateConcludedEvent("Foundation choices for Data Storage", "PostgreSQL with read replicas", 5)

	if e.Topic != "Foundation choices for Data Storage" {
		t.Errorf("Topic = %q, want %q", e.Topic, "Foundation choices for Data Storage")
	}
	if e.Conclusion != "PostgreSQL with read replicas" {
		t.Errorf("Conclusion = %q, want %q", e.Conclusion, "PostgreSQL with read replicas")
	}
	if e.Contributions != 5 {
		t.Errorf("Contributions = %d, want 5", e.Contributions)
	}
}
