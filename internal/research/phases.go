package research

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"ideaforge/internal/agent"
	"ideaforge/internal/errors"
	"ideaforge/internal/knowledge"
	"ideaforge/internal/message"
)

// Run drives all four research phases in order and returns the synthesis
// report. Requires a registered fleet; returns a validation error when no
// agents are registered.
func (c *Coordinator) Run(ctx context.Context, requirements string) (string, error) {
	if len(c.Agents()) == 0 {
		return "", errors.NewValidationError("no agents registered").
			WithField("agents")
	}

	if err := c.RunFoundationPhase(ctx, requirements); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := c.RunPathsPhase(ctx); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := c.RunIntegrationPhase(ctx); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return c.RunSynthesisPhase(ctx)
}

// -----------------------------------------------------------------------------
// Foundation phase
// -----------------------------------------------------------------------------

// RunFoundationPhase has the foundation agents break the requirements into
// dimensions, opens a debate per foundation dimension, collects agent
// contributions within the debate window, and has the synthesis agent
// conclude each debate into a foundation choice.
func (c *Coordinator) RunFoundationPhase(ctx context.Context, requirements string) error {
	c.setPhase(PhaseFoundation)

	foundationAgents := c.AgentsByType(agent.TypeFoundation)
	if len(foundationAgents) == 0 {
		return errors.NewValidationError("no foundation agents registered").
			WithField("agents")
	}

	var wg errgroup.Group
	for _, a := range foundationAgents {
		fa, ok := a.(*agent.FoundationAgent)
		if !ok {
			continue
		}
		wg.Go(func() error {
			task := c.startTask("analyze requirements", fa.ID())
			err := c.withTaskTimeout(ctx, func(ctx context.Context) error {
				dims, err := fa.AnalyzeRequirements(ctx, requirements)
				if err != nil {
					return err
				}
				for _, dim := range dims {
					c.repo.AddDimension(dim, fa.ID())
				}
				return nil
			})
			c.finishTask(task, err)
			return nil
		})
	}
	_ = wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	// Paradigm research runs before the debates so positions are informed
	// and alternatives exist for path building.
	dims := c.repo.Dimensions()
	var pg errgroup.Group
	for _, a := range c.AgentsByType(agent.TypeParadigm) {
		pa, ok := a.(*agent.ParadigmAgent)
		if !ok {
			continue
		}
		for _, dim := range dims {
			pg.Go(func() error {
				task := c.startTask(fmt.Sprintf("research %s", dim.Name), pa.ID())
				c.finishTask(task, c.withTaskTimeout(ctx, func(ctx context.Context) error {
					return pa.AnalyzeDimension(ctx, dim)
				}))
				return nil
			})
		}
	}
	_ = pg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	for _, dim := range c.repo.FoundationDimensions() {
		if err := c.runFoundationDebate(ctx, dim); err != nil {
			return err
		}
	}

	c.mu.Lock()
	c.foundationDone = true
	c.mu.Unlock()
	return nil
}

// runFoundationDebate opens the debate for one foundation dimension, fans
// contribution requests out to the foundation and paradigm agents, and
// concludes the debate once the contribution window closes.
func (c *Coordinator) runFoundationDebate(ctx context.Context, dim knowledge.Dimension) error {
	topic := agent.DebateTopicForDimension(dim.Name)
	if err := c.repo.StartDebate(topic, dim.Description); err != nil {
		if errors.Is(err, errors.ErrDebateActive) {
			return nil
		}
		return err
	}

	debaters := append(c.AgentsByType(agent.TypeFoundation), c.AgentsByType(agent.TypeParadigm)...)

	// Contributions that outlast the window are abandoned, not waited for.
	window := c.cfg.DebateWindow
	if window <= 0 {
		window = DefaultConfig().DebateWindow
	}
	debateCtx, cancel := context.WithTimeout(ctx, window)
	defer cancel()

	var wg errgroup.Group
	for _, a := range debaters {
		wg.Go(func() error {
			task := c.startTask(fmt.Sprintf("debate %s", dim.Name), a.ID())
			msg := message.New(coordinatorSender, a.ID(), message.TypeDebateRequest, topic)
			msg.Metadata = map[string]any{"topic": topic, "dimension": dim.Name}
			c.finishTask(task, c.Deliver(debateCtx, msg))
			return nil
		})
	}
	_ = wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	synthesis, err := c.synthesisAgent()
	if err != nil {
		return err
	}
	task := c.startTask(fmt.Sprintf("conclude %s", dim.Name), synthesis.ID())
	err = c.withTaskTimeout(ctx, func(ctx context.Context) error {
		_, err := synthesis.ConcludeDebate(ctx, topic)
		return err
	})
	c.finishTask(task, err)
	return nil
}

// -----------------------------------------------------------------------------
// Paths phase
// -----------------------------------------------------------------------------

// RunPathsPhase builds candidate paths from the concluded foundation
// choices and assigns them round-robin to the path agents for concurrent
// exploration. With no concluded choices the phase completes trivially.
func (c *Coordinator) RunPathsPhase(ctx context.Context) error {
	c.setPhase(PhasePaths)

	candidates := c.buildCandidatePaths()
	pathAgents := c.AgentsByType(agent.TypePath)

	if len(candidates) == 0 || len(pathAgents) == 0 {
		c.mu.Lock()
		c.pathsDone = true
		c.mu.Unlock()
		return nil
	}

	for _, path := range candidates {
		if err := c.repo.AddPath(path); err != nil {
			var exists *errors.AlreadyExistsError
			if errors.As(err, &exists) {
				continue
			}
			return err
		}
	}

	var wg errgroup.Group
	for i, path := range candidates {
		a, ok := pathAgents[i%len(pathAgents)].(*agent.PathAgent)
		if !ok {
			continue
		}
		wg.Go(func() error {
			task := c.startTask(fmt.Sprintf("explore %s", path.Name), a.ID())
			c.finishTask(task, c.withTaskTimeout(ctx, func(ctx context.Context) error {
				return a.ExplorePath(ctx, path)
			}))
			return nil
		})
	}
	_ = wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	c.pathsDone = true
	c.mu.Unlock()
	return nil
}

// buildCandidatePaths derives the Primary Path from all selected foundation
// choices, plus one alternative path for each of the first two foundation
// dimensions that have both a choice and a researched alternative.
func (c *Coordinator) buildCandidatePaths() []knowledge.Path {
	foundationDims := c.repo.FoundationDimensions()

	selected := make(map[string]string)
	var decided []knowledge.Dimension
	for _, dim := range foundationDims {
		if choice, ok := c.repo.ChoiceForDimension(dim.Name); ok {
			selected[dim.Name] = choice.Choice
			decided = append(decided, dim)
		}
	}
	if len(selected) == 0 {
		return nil
	}

	primary := knowledge.Path{
		Name:              "Primary Path",
		Description:       "All selected foundation choices taken together.",
		FoundationChoices: cloneChoices(selected),
	}
	paths := []knowledge.Path{primary}

	for i, dim := range decided {
		if i >= 2 {
			break
		}
		alternative := c.alternativeChoice(dim, selected[dim.Name])
		if alternative == "" {
			continue
		}
		choices := cloneChoices(selected)
		choices[dim.Name] = alternative
		paths = append(paths, knowledge.Path{
			Name: fmt.Sprintf("Alternative Path: %s", dim.Name),
			Description: fmt.Sprintf("The primary path with %s for %s instead of %s.",
				alternative, dim.Name, selected[dim.Name]),
			FoundationChoices: choices,
		})
	}
	return paths
}

// alternativeChoice picks the highest-relevance researched technology for
// the dimension that differs from the selected choice.
func (c *Coordinator) alternativeChoice(dim knowledge.Dimension, chosen string) string {
	full, err := c.repo.Dimension(dim.Name)
	if err != nil {
		return ""
	}

	var best string
	var bestScore float64
	for _, paradigm := range knowledge.Paradigms() {
		finding, ok := full.ParadigmFindings[paradigm]
		if !ok {
			continue
		}
		for _, tech := range finding.Technologies {
			if tech.Name == chosen {
				continue
			}
			if tech.RelevanceScore > bestScore {
				best = tech.Name
				bestScore = tech.RelevanceScore
			}
		}
	}
	return best
}

func cloneChoices(choices map[string]string) map[string]string {
	out := make(map[string]string, len(choices))
	for k, v := range choices {
		out[k] = v
	}
	return out
}

// -----------------------------------------------------------------------------
// Integration phase
// -----------------------------------------------------------------------------

// RunIntegrationPhase has every integration agent look for cross-paradigm
// opportunities over the explored paths.
func (c *Coordinator) RunIntegrationPhase(ctx context.Context) error {
	c.setPhase(PhaseIntegration)

	var wg errgroup.Group
	for _, a := range c.AgentsByType(agent.TypeIntegration) {
		ia, ok := a.(*agent.IntegrationAgent)
		if !ok {
			continue
		}
		wg.Go(func() error {
			task := c.startTask("identify opportunities", ia.ID())
			err := c.withTaskTimeout(ctx, func(ctx context.Context) error {
				_, err := ia.IdentifyOpportunities(ctx)
				return err
			})
			c.finishTask(task, err)
			return nil
		})
	}
	_ = wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	c.integrationDone = true
	c.mu.Unlock()
	return nil
}

// -----------------------------------------------------------------------------
// Synthesis phase
// -----------------------------------------------------------------------------

// RunSynthesisPhase has the synthesis agent write the final report and
// marks the run complete.
func (c *Coordinator) RunSynthesisPhase(ctx context.Context) (string, error) {
	c.setPhase(PhaseSynthesis)

	synthesis, err := c.synthesisAgent()
	if err != nil {
		return "", err
	}

	task := c.startTask("write report", synthesis.ID())
	report, err := synthesis.WriteReport(ctx)
	c.finishTask(task, err)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.synthesisDone = true
	c.mu.Unlock()
	c.setPhase(PhaseComplete)
	return report, nil
}

// synthesisAgent returns the first registered synthesis agent.
func (c *Coordinator) synthesisAgent() (*agent.SynthesisAgent, error) {
	for _, a := range c.AgentsByType(agent.TypeSynthesis) {
		if sa, ok := a.(*agent.SynthesisAgent); ok {
			return sa, nil
		}
	}
	return nil, errors.NewNotFoundError("agent", "synthesis").
		WithCause(errors.ErrAgentNotFound)
}

// withTaskTimeout runs fn under the configured per-task timeout.
func (c *Coordinator) withTaskTimeout(ctx context.Context, fn func(context.Context) error) error {
	if c.cfg.TaskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.TaskTimeout)
		defer cancel()
	}
	return fn(ctx)
}
