// Package message defines the inter-agent message format used by the
// research coordinator. Messages carry research requests, debate
// contributions, and findings between registered agents.
package message

import (
	"time"

	"github.com/google/uuid"

	"ideaforge/internal/errors"
)

// Type identifies the kind of inter-agent message.
type Type string

const (
	// TypeResearchRequest asks an agent to research a dimension or topic.
	TypeResearchRequest Type = "research_request"

	// TypeDimensionAnalysis carries the result of a dimension analysis.
	TypeDimensionAnalysis Type = "dimension_analysis"

	// TypeDebateRequest asks an agent to contribute to a debate.
	TypeDebateRequest Type = "debate_request"

	// TypeDebateContribution carries an agent's position in a debate.
	TypeDebateContribution Type = "debate_contribution"

	// TypeFinding shares a research finding with other agents.
	TypeFinding Type = "finding"

	// TypeStatus provides a progress update.
	TypeStatus Type = "status"

	// TypeQuestion requests help from another agent.
	TypeQuestion Type = "question"

	// TypeAnswer responds to a question from another agent.
	TypeAnswer Type = "answer"
)

// BroadcastRecipient is the special "to" value for messages intended for all agents.
const BroadcastRecipient = "broadcast"

// Message represents a single inter-agent communication.
type Message struct {
	ID        string         `json:"id"`
	From      string         `json:"from"`
	To        string         `json:"to"`
	Type      Type           `json:"type"`
	Body      string         `json:"body"`
	ReplyTo   string         `json:"reply_to,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// New creates a Message with a generated ID and the current timestamp.
func New(from, to string, msgType Type, body string) Message {
	return Message{
		ID:        uuid.NewString(),
		From:      from,
		To:        to,
		Type:      msgType,
		Body:      body,
		Timestamp: time.Now(),
	}
}

// IsBroadcast returns true if the message is addressed to all agents.
func (m Message) IsBroadcast() bool {
	return m.To == BroadcastRecipient
}

// Valid message types for validation.
var validTypes = map[Type]bool{
	TypeResearchRequest:    true,
	TypeDimensionAnalysis:  true,
	TypeDebateRequest:      true,
	TypeDebateContribution: true,
	TypeFinding:            true,
	TypeStatus:             true,
	TypeQuestion:           true,
	TypeAnswer:             true,
}

// ValidateType returns an error if the given type is not a known message type.
func ValidateType(t Type) error {
	if !validTypes[t] {
		return errors.NewValidationError("unknown message type").
			WithField("type").
			WithValue(string(t)).
			WithCause(errors.ErrUnknownMessageType)
	}
	return nil
}
