package agent

import (
	"context"
	"sync"

	"ideaforge/internal/errors"
	"ideaforge/internal/knowledge"
	"ideaforge/internal/llm"
	"ideaforge/internal/logging"
	"ideaforge/internal/message"
)

// Type identifies the role of a research agent.
type Type string

const (
	// TypeFoundation analyzes requirements into foundational dimensions.
	TypeFoundation Type = "foundation"

	// TypeParadigm researches dimensions from one paradigm's viewpoint.
	TypeParadigm Type = "paradigm"

	// TypePath explores a coherent combination of foundation choices.
	TypePath Type = "path"

	// TypeIntegration identifies cross-paradigm integration opportunities.
	TypeIntegration Type = "integration"

	// TypeSynthesis concludes debates and writes the final report.
	TypeSynthesis Type = "synthesis"
)

// IsValid returns true if the type is one of the known agent roles.
func (t Type) IsValid() bool {
	switch t {
	case TypeFoundation, TypeParadigm, TypePath, TypeIntegration, TypeSynthesis:
		return true
	default:
		return false
	}
}

// String returns the string form of the type.
func (t Type) String() string {
	return string(t)
}

// Agent is a role-specific research worker registered with the coordinator.
type Agent interface {
	// ID returns the agent's unique identifier, e.g. "foundation-1".
	ID() string

	// Type returns the agent's role.
	Type() Type

	// Init prepares the agent for a research run.
	Init(ctx context.Context) error

	// HandleMessage dispatches an inter-agent message to the agent's
	// registered handler for the message type.
	HandleMessage(ctx context.Context, msg message.Message) error
}

// Handler processes one inter-agent message.
type Handler func(ctx context.Context, msg message.Message) error

// Base carries the state shared by every agent: identity, the LLM client,
// the shared repository, a logger, and the message handler map. Concrete
// agents embed *Base and register handlers in their constructors.
type Base struct {
	id        string
	agentType Type
	client    llm.Client
	repo      *knowledge.Repository
	logger    *logging.Logger

	mu         sync.Mutex
	handlers   map[message.Type]Handler
	lastPrompt string
}

// NewBase creates the shared agent core. A nil logger is replaced with a
// no-op logger.
func NewBase(id string, agentType Type, client llm.Client, repo *knowledge.Repository, logger *logging.Logger) *Base {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Base{
		id:        id,
		agentType: agentType,
		client:    client,
		repo:      repo,
		logger:    logger.WithAgent(id),
		handlers:  make(map[message.Type]Handler),
	}
}

// ID returns the agent's unique identifier.
func (b *Base) ID() string { return b.id }

// Type returns the agent's role.
func (b *Base) Type() Type { return b.agentType }

// Repository returns the shared knowledge repository.
func (b *Base) Repository() *knowledge.Repository { return b.repo }

// Logger returns the agent's logger.
func (b *Base) Logger() *logging.Logger { return b.logger }

// Init is a no-op; concrete agents override it when they need setup.
func (b *Base) Init(ctx context.Context) error { return nil }

// On registers a handler for a message type, replacing any existing one.
func (b *Base) On(msgType message.Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[msgType] = handler
}

// HandleMessage validates the message type and dispatches it to the
// registered handler. Messages with no handler are logged and dropped;
// unhandled types are not an error for the sender.
func (b *Base) HandleMessage(ctx context.Context, msg message.Message) error {
	if err := message.ValidateType(msg.Type); err != nil {
		return err
	}

	b.mu.Lock()
	handler, ok := b.handlers[msg.Type]
	b.mu.Unlock()

	if !ok {
		b.logger.Debug("no handler for message type, dropping",
			"type", string(msg.Type), "from", msg.From)
		return nil
	}
	return handler(ctx, msg)
}

// Generate builds an llm.Request from the agent's system prompt and calls
// the client. The assembled prompt is recorded for inspection. Errors are
// returned wrapped and never folded into the response text.
func (b *Base) Generate(ctx context.Context, system, prompt string, contextSections map[string]string) (string, error) {
	req := llm.Request{
		System:  system,
		Prompt:  prompt,
		Context: contextSections,
	}

	b.mu.Lock()
	b.lastPrompt = llm.BuildPrompt(req)
	b.mu.Unlock()

	resp, err := b.client.Generate(ctx, req)
	if err != nil {
		return "", errors.Wrapf(err, "agent %s generation", b.id)
	}
	return resp.Text, nil
}

// LastPrompt returns the most recently assembled prompt, or the empty
// string before the first Generate call.
func (b *Base) LastPrompt() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastPrompt
}
