package knowledge

import (
	"time"

	"ideaforge/internal/errors"
	"ideaforge/internal/event"
)

// StartDebate opens a debate on the given topic. The topic doubles as the
// debate's unique identifier. Returns ErrDebateActive if a debate with this
// topic is already active.
func (r *Repository) StartDebate(topic, description string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.debates[topic]; ok && existing.Status == DebateActive {
		return errors.NewRepositoryError("cannot start debate", errors.ErrDebateActive).
			WithResource("debate", topic)
	}

	r.debates[topic] = &Debate{
		Topic:       topic,
		Description: description,
		Status:      DebateActive,
		StartedAt:   time.Now(),
	}
	r.debateOrder = append(r.debateOrder, topic)
	r.logger.Debug("debate started", "topic", topic)
	r.publish(event.NewDebateStartedEvent(topic, description))
	return nil
}

// Contribute adds an agent position to an active debate.
// Returns ErrDebateNotFound for an unknown topic and ErrDebateConcluded if
// the debate has already been resolved.
func (r *Repository) Contribute(topic string, contribution Contribution) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	debate, ok := r.debates[topic]
	if !ok {
		return errors.NewRepositoryError("cannot contribute", errors.ErrDebateNotFound).
			WithResource("debate", topic)
	}
	if debate.Status == DebateConcluded {
		return errors.NewRepositoryError("cannot contribute", errors.ErrDebateConcluded).
			WithResource("debate", topic)
	}

	if contribution.Timestamp.IsZero() {
		contribution.Timestamp = time.Now()
	}
	debate.Contributions = append(debate.Contributions, contribution)
	r.publish(event.NewDebateContributionEvent(topic, contribution.AgentID, contribution.AgentType))
	return nil
}

// ConcludeDebate resolves an active debate with the given conclusion.
// Returns ErrDebateNotFound for an unknown topic, ErrDebateConcluded if the
// debate was already resolved, and ErrNoContributions if there is nothing
// to conclude from.
func (r *Repository) ConcludeDebate(topic, conclusion string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	debate, ok := r.debates[topic]
	if !ok {
		return errors.NewRepositoryError("cannot conclude debate", errors.ErrDebateNotFound).
			WithResource("debate", topic)
	}
	if debate.Status == DebateConcluded {
		return errors.NewRepositoryError("cannot conclude debate", errors.ErrDebateConcluded).
			WithResource("debate", topic)
	}
	if len(debate.Contributions) == 0 {
		return errors.NewRepositoryError("cannot conclude debate", errors.ErrNoContributions).
			WithResource("debate", topic)
	}

	debate.Status = DebateConcluded
	debate.Conclusion = conclusion
	debate.ConcludedAt = time.Now()
	r.logger.Debug("debate concluded", "topic", topic, "contributions", len(debate.Contributions))
	r.publish(event.NewDebateConcludedEvent(topic, conclusion, len(debate.Contributions)))
	return nil
}

// Debate returns a copy of the debate with the given topic.
func (r *Repository) Debate(topic string) (Debate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	debate, ok := r.debates[topic]
	if !ok {
		return Debate{}, errors.NewRepositoryError("debate lookup failed", errors.ErrDebateNotFound).
			WithResource("debate", topic)
	}
	return *cloneDebate(debate), nil
}

// Debates returns copies of all debates in the order they were started.
func (r *Repository) Debates() []Debate {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Debate, 0, len(r.debateOrder))
	for _, topic := range r.debateOrder {
		result = append(result, *cloneDebate(r.debates[topic]))
	}
	return result
}

// ActiveDebates returns copies of all debates still accepting contributions.
func (r *Repository) ActiveDebates() []Debate {
	return r.debatesByStatus(DebateActive)
}

// ConcludedDebates returns copies of all resolved debates.
func (r *Repository) ConcludedDebates() []Debate {
	return r.debatesByStatus(DebateConcluded)
}

func (r *Repository) debatesByStatus(status DebateStatus) []Debate {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Debate
	for _, topic := range r.debateOrder {
		if debate := r.debates[topic]; debate.Status == status {
			result = append(result, *cloneDebate(debate))
		}
	}
	return result
}
