package research

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"ideaforge/internal/agent"
	"ideaforge/internal/errors"
	"ideaforge/internal/event"
	"ideaforge/internal/knowledge"
	"ideaforge/internal/llm"
	"ideaforge/internal/logging"
	"ideaforge/internal/message"
)

// Phase aliases the event package's research phase so callers subscribe to
// phase changes without importing both vocabularies.
const (
	PhaseFoundation  = event.ResearchPhaseFoundation
	PhasePaths       = event.ResearchPhasePaths
	PhaseIntegration = event.ResearchPhaseIntegration
	PhaseSynthesis   = event.ResearchPhaseSynthesis
	PhaseComplete    = event.ResearchPhaseComplete
)

// TaskStatus is the lifecycle state of a research task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskRunning   TaskStatus = "running"
	TaskCompleted TaskStatus = "completed"
	TaskFailed    TaskStatus = "failed"
)

// Task records one unit of agent work within a phase.
type Task struct {
	ID          string
	Kind        string
	AgentID     string
	Status      TaskStatus
	Error       string
	StartedAt   time.Time
	CompletedAt time.Time
}

// Config sets the fleet size and run timing.
type Config struct {
	FoundationAgents  int
	PathAgents        int
	IntegrationAgents int

	// DebateWindow bounds how long agents get to contribute to each
	// foundation debate before the synthesis agent concludes it.
	DebateWindow time.Duration

	// TaskTimeout bounds a single agent task.
	TaskTimeout time.Duration
}

// DefaultConfig returns the default fleet sizing.
func DefaultConfig() Config {
	return Config{
		FoundationAgents:  2,
		PathAgents:        3,
		IntegrationAgents: 2,
		DebateWindow:      10 * time.Second,
		TaskTimeout:       90 * time.Second,
	}
}

// Status is a point-in-time snapshot of a research run.
type Status struct {
	Phase           event.ResearchPhase
	FoundationDone  bool
	PathsDone       bool
	IntegrationDone bool
	SynthesisDone   bool
	TasksTotal      int
	TasksCompleted  int
	TasksFailed     int
}

// coordinatorSender is the From value on messages the coordinator originates.
const coordinatorSender = "coordinator"

// Coordinator owns the agent fleet and drives the research phases against
// the shared knowledge repository.
type Coordinator struct {
	client llm.Client
	repo   *knowledge.Repository
	bus    *event.Bus
	logger *logging.Logger
	cfg    Config

	mu         sync.RWMutex
	agents     map[string]agent.Agent
	agentOrder []string
	byType     map[agent.Type][]agent.Agent
	history    []message.Message
	tasks      []*Task

	phase           event.ResearchPhase
	foundationDone  bool
	pathsDone       bool
	integrationDone bool
	synthesisDone   bool
}

// NewCoordinator creates a Coordinator over the given repository. The bus
// may be nil; a nil logger is replaced with a no-op logger.
func NewCoordinator(client llm.Client, repo *knowledge.Repository, bus *event.Bus, logger *logging.Logger, cfg Config) *Coordinator {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Coordinator{
		client: client,
		repo:   repo,
		bus:    bus,
		logger: logger,
		cfg:    cfg,
		agents: make(map[string]agent.Agent),
		byType: make(map[agent.Type][]agent.Agent),
		phase:  PhaseFoundation,
	}
}

// Repository returns the shared knowledge repository.
func (c *Coordinator) Repository() *knowledge.Repository { return c.repo }

func (c *Coordinator) publish(e event.Event) {
	if c.bus != nil {
		c.bus.Publish(e)
	}
}

// -----------------------------------------------------------------------------
// Registry
// -----------------------------------------------------------------------------

// Register adds an agent to the fleet. Returns an AlreadyExists error if an
// agent with the same ID is registered.
func (c *Coordinator) Register(a agent.Agent) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.agents[a.ID()]; ok {
		return errors.NewAlreadyExistsError("agent", a.ID()).
			WithCause(errors.ErrAgentExists)
	}

	c.agents[a.ID()] = a
	c.agentOrder = append(c.agentOrder, a.ID())
	c.byType[a.Type()] = append(c.byType[a.Type()], a)
	c.logger.Debug("agent registered", "agent_id", a.ID(), "type", a.Type().String())
	return nil
}

// Agent returns the registered agent with the given ID.
func (c *Coordinator) Agent(id string) (agent.Agent, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	a, ok := c.agents[id]
	if !ok {
		return nil, errors.NewNotFoundError("agent", id).
			WithCause(errors.ErrAgentNotFound)
	}
	return a, nil
}

// AgentsByType returns registered agents of the given type in registration
// order.
func (c *Coordinator) AgentsByType(t agent.Type) []agent.Agent {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]agent.Agent, len(c.byType[t]))
	copy(result, c.byType[t])
	return result
}

// Agents returns all registered agents in registration order.
func (c *Coordinator) Agents() []agent.Agent {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]agent.Agent, 0, len(c.agentOrder))
	for _, id := range c.agentOrder {
		result = append(result, c.agents[id])
	}
	return result
}

// SpawnAgents builds and registers the default fleet: the configured number
// of foundation, path, and integration agents, one paradigm agent per
// category, and a single synthesis agent.
func (c *Coordinator) SpawnAgents() error {
	for i := 1; i <= c.cfg.FoundationAgents; i++ {
		id := agentID("foundation", i)
		if err := c.Register(agent.NewFoundationAgent(id, c.client, c.repo, c.logger)); err != nil {
			return err
		}
	}
	for _, paradigm := range knowledge.Paradigms() {
		id := agentID(paradigm.String(), 1)
		if err := c.Register(agent.NewParadigmAgent(id, paradigm, c.client, c.repo, c.logger)); err != nil {
			return err
		}
	}
	for i := 1; i <= c.cfg.PathAgents; i++ {
		id := agentID("path", i)
		if err := c.Register(agent.NewPathAgent(id, c.client, c.repo, c.logger)); err != nil {
			return err
		}
	}
	for i := 1; i <= c.cfg.IntegrationAgents; i++ {
		id := agentID("integration", i)
		if err := c.Register(agent.NewIntegrationAgent(id, c.client, c.repo, c.logger)); err != nil {
			return err
		}
	}
	if err := c.Register(agent.NewSynthesisAgent(agentID("synthesis", 1), c.client, c.repo, c.logger)); err != nil {
		return err
	}

	c.logger.Info("agent fleet spawned", "agents", len(c.Agents()))
	return nil
}

func agentID(prefix string, n int) string {
	return fmt.Sprintf("%s-%d", prefix, n)
}

// InitAgents initializes every registered agent concurrently. Any failure
// fails the whole operation.
func (c *Coordinator) InitAgents(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, a := range c.Agents() {
		g.Go(func() error {
			if err := a.Init(ctx); err != nil {
				return errors.Wrapf(err, "init agent %s", a.ID())
			}
			return nil
		})
	}
	return g.Wait()
}

// -----------------------------------------------------------------------------
// Message delivery
// -----------------------------------------------------------------------------

// Deliver routes a message to its recipient, or to every agent except the
// sender for broadcasts. Accepted messages are appended to the delivery
// history in send order. Handler errors on broadcasts are logged per agent;
// a targeted delivery returns the handler's error.
func (c *Coordinator) Deliver(ctx context.Context, msg message.Message) error {
	if err := message.ValidateType(msg.Type); err != nil {
		return err
	}

	if msg.IsBroadcast() {
		c.appendHistory(msg)
		for _, a := range c.Agents() {
			if a.ID() == msg.From {
				continue
			}
			if err := a.HandleMessage(ctx, msg); err != nil {
				c.logger.Warn("broadcast handler failed",
					"agent_id", a.ID(), "type", string(msg.Type), "error", err.Error())
			}
		}
		return nil
	}

	recipient, ok := c.lookup(msg.To)
	if !ok {
		return errors.NewAgentError("cannot deliver message", errors.ErrUnknownRecipient).
			WithAgentID(msg.To)
	}
	c.appendHistory(msg)
	return recipient.HandleMessage(ctx, msg)
}

func (c *Coordinator) lookup(id string) (agent.Agent, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.agents[id]
	return a, ok
}

func (c *Coordinator) appendHistory(msg message.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history, msg)
}

// History returns a copy of all delivered messages in send order.
func (c *Coordinator) History() []message.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]message.Message, len(c.history))
	copy(result, c.history)
	return result
}

// -----------------------------------------------------------------------------
// Tasks and status
// -----------------------------------------------------------------------------

// startTask records a running task and returns it for completion.
func (c *Coordinator) startTask(kind, agentID string) *Task {
	task := &Task{
		ID:        uuid.NewString(),
		Kind:      kind,
		AgentID:   agentID,
		Status:    TaskRunning,
		StartedAt: time.Now(),
	}
	c.mu.Lock()
	c.tasks = append(c.tasks, task)
	c.mu.Unlock()
	return task
}

// finishTask marks the task completed or failed and publishes the outcome.
// A failed task is logged but never aborts sibling tasks.
func (c *Coordinator) finishTask(task *Task, err error) {
	c.mu.Lock()
	task.CompletedAt = time.Now()
	if err != nil {
		task.Status = TaskFailed
		task.Error = err.Error()
	} else {
		task.Status = TaskCompleted
	}
	phase := c.phase
	completed, total := c.taskCountsLocked()
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("task failed",
			"task_id", task.ID, "kind", task.Kind, "agent_id", task.AgentID, "error", err.Error())
		c.publish(event.NewTaskCompletedEvent(task.ID, task.AgentID, false, err.Error()))
	} else {
		c.publish(event.NewTaskCompletedEvent(task.ID, task.AgentID, true, ""))
	}
	c.publish(event.NewProgressEvent(phase, task.Kind, completed, total))
}

// taskCountsLocked returns finished and total task counts. Caller holds mu.
func (c *Coordinator) taskCountsLocked() (finished, total int) {
	for _, t := range c.tasks {
		if t.Status == TaskCompleted || t.Status == TaskFailed {
			finished++
		}
	}
	return finished, len(c.tasks)
}

// Tasks returns copies of all recorded tasks in start order.
func (c *Coordinator) Tasks() []Task {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]Task, 0, len(c.tasks))
	for _, t := range c.tasks {
		result = append(result, *t)
	}
	return result
}

// Status returns a snapshot of the run.
func (c *Coordinator) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	status := Status{
		Phase:           c.phase,
		FoundationDone:  c.foundationDone,
		PathsDone:       c.pathsDone,
		IntegrationDone: c.integrationDone,
		SynthesisDone:   c.synthesisDone,
		TasksTotal:      len(c.tasks),
	}
	for _, t := range c.tasks {
		switch t.Status {
		case TaskCompleted:
			status.TasksCompleted++
		case TaskFailed:
			status.TasksFailed++
		}
	}
	return status
}

// setPhase transitions the run to a new phase and publishes the change.
func (c *Coordinator) setPhase(phase event.ResearchPhase) {
	c.mu.Lock()
	previous := c.phase
	c.phase = phase
	c.mu.Unlock()

	if previous != phase {
		c.logger.Info("phase changed", "from", string(previous), "to", string(phase))
		c.publish(event.NewPhaseChangedEvent(previous, phase))
	}
}
