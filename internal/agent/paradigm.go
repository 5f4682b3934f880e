package agent

import (
	"context"
	"fmt"

	"ideaforge/internal/knowledge"
	"ideaforge/internal/llm"
	"ideaforge/internal/logging"
	"ideaforge/internal/message"
	"ideaforge/internal/parse"
)

// ParadigmAgent researches dimensions from a single paradigm's viewpoint.
// One agent exists per paradigm category so every dimension is examined
// from all six angles.
type ParadigmAgent struct {
	*Base
	paradigm knowledge.ParadigmCategory
}

// NewParadigmAgent creates a paradigm agent for the given category.
func NewParadigmAgent(id string, paradigm knowledge.ParadigmCategory, client llm.Client, repo *knowledge.Repository, logger *logging.Logger) *ParadigmAgent {
	a := &ParadigmAgent{
		Base:     NewBase(id, TypeParadigm, client, repo, logger),
		paradigm: paradigm,
	}
	a.On(message.TypeDebateRequest, a.handleDebateRequest)
	return a
}

// Paradigm returns the agent's paradigm category.
func (a *ParadigmAgent) Paradigm() knowledge.ParadigmCategory {
	return a.paradigm
}

// AnalyzeDimension researches the dimension from this agent's paradigm and
// records both a Finding (keyed by agent ID) and a ParadigmFinding (keyed by
// paradigm) on the dimension.
func (a *ParadigmAgent) AnalyzeDimension(ctx context.Context, dim knowledge.Dimension) error {
	text, err := a.Generate(ctx, paradigmSystemPrompt(a.paradigm),
		analyzeDimensionPrompt(dim), nil)
	if err != nil {
		return err
	}

	sections := parse.Sections(text, "Technology", "Framework", "Approach", "Solution")
	techs := make([]knowledge.Technology, 0, len(sections))
	for i, sec := range sections {
		name := sec.Title
		if name == "" {
			name = fmt.Sprintf("Technology %d", i+1)
		}
		techs = append(techs, knowledge.Technology{
			Name:           name,
			Description:    parse.Description(sec.Body),
			Strengths:      parse.LabeledList(sec.Body, "Strengths", "Pros"),
			Limitations:    parse.LabeledList(sec.Body, "Limitations", "Cons", "Weaknesses"),
			Integrations:   parse.LabeledList(sec.Body, "Integrations", "Integrates with"),
			Paradigm:       a.paradigm,
			RelevanceScore: parse.Score(sec.Body, "Relevance score", "Relevance"),
			Complexity:     parse.Complexity(sec.Body),
		})
	}

	summary := parse.Description(text)

	if err := a.Repository().AddFinding(dim.Name, knowledge.Finding{
		AgentID:      a.ID(),
		AgentType:    a.Type().String(),
		Summary:      summary,
		Technologies: techs,
	}); err != nil {
		return err
	}
	if err := a.Repository().AddParadigmFinding(dim.Name, knowledge.ParadigmFinding{
		Paradigm:     a.paradigm,
		Summary:      summary,
		Technologies: techs,
	}); err != nil {
		return err
	}

	a.Logger().Debug("dimension analyzed",
		"dimension", dim.Name, "paradigm", a.paradigm.String(), "technologies", len(techs))
	return nil
}

func (a *ParadigmAgent) handleDebateRequest(ctx context.Context, msg message.Message) error {
	return a.contributeToDebate(ctx, paradigmSystemPrompt(a.paradigm), debateTopic(msg))
}
