// Package session persists workflow sessions on the local filesystem.
//
// A session tracks one project through the drafting stages: its documents,
// stage history, arbitrary metadata (conversation state lives here), and
// the research run's outcome. Sessions are JSON files under
// <base>/.ideaforge/sessions/<id>/session.json, written atomically so a
// crash never leaves a half-written session behind.
package session

import (
	"encoding/json"
	"time"
)

// SessionFileName is the per-session state file.
const SessionFileName = "session.json"

// CurrentMarkerName is the file recording the active session ID.
const CurrentMarkerName = "current"

// StageTransition records one stage advance in a session's history.
type StageTransition struct {
	From string    `json:"from"`
	To   string    `json:"to"`
	At   time.Time `json:"at"`
}

// ResearchState captures what the research run produced for a session.
type ResearchState struct {
	FoundationDone  bool   `json:"foundation_done"`
	PathsDone       bool   `json:"paths_done"`
	IntegrationDone bool   `json:"integration_done"`
	SynthesisDone   bool   `json:"synthesis_done"`
	ReportPath      string `json:"report_path,omitempty"`

	// Repository is the knowledge repository snapshot, kept opaque so the
	// session file round-trips without this package importing knowledge.
	Repository json.RawMessage `json:"repository,omitempty"`
}

// Session is the persistent state of one project workflow.
type Session struct {
	ID          string            `json:"id"`
	ProjectName string            `json:"project_name"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Stage       string            `json:"stage"`
	Metadata    map[string]string `json:"metadata,omitempty"`

	// Documents maps a document type (vision, prd, architecture,
	// research_report) to the path of the drafted file.
	Documents map[string]string `json:"documents,omitempty"`

	History  []StageTransition `json:"history,omitempty"`
	Research *ResearchState    `json:"research,omitempty"`
}

// AdvanceStage records a transition to the given stage, appending to the
// session's history.
func (s *Session) AdvanceStage(to string) {
	s.History = append(s.History, StageTransition{
		From: s.Stage,
		To:   to,
		At:   time.Now(),
	})
	s.Stage = to
}

// SetMetadata stores a metadata value, allocating the map on first use.
func (s *Session) SetMetadata(key, value string) {
	if s.Metadata == nil {
		s.Metadata = make(map[string]string)
	}
	s.Metadata[key] = value
}

// SetDocument records the path of a drafted document by type.
func (s *Session) SetDocument(docType, path string) {
	if s.Documents == nil {
		s.Documents = make(map[string]string)
	}
	s.Documents[docType] = path
}

// Info is the session summary returned by Store.List.
type Info struct {
	ID          string    `json:"id"`
	ProjectName string    `json:"project_name"`
	Stage       string    `json:"stage"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
