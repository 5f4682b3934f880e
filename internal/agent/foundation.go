package agent

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"ideaforge/internal/knowledge"
	"ideaforge/internal/llm"
	"ideaforge/internal/logging"
	"ideaforge/internal/message"
	"ideaforge/internal/parse"
)

// FoundationAgent breaks project requirements into design dimensions and
// proposes candidate approaches for them.
type FoundationAgent struct {
	*Base
}

// NewFoundationAgent creates a foundation agent that contributes to debates
// on request.
func NewFoundationAgent(id string, client llm.Client, repo *knowledge.Repository, logger *logging.Logger) *FoundationAgent {
	a := &FoundationAgent{Base: NewBase(id, TypeFoundation, client, repo, logger)}
	a.On(message.TypeDebateRequest, a.handleDebateRequest)
	return a
}

var impactRe = regexp.MustCompile(`(?mi)foundation\s+impact\s*:\s*([A-Za-z]+)`)

// foundationImpact extracts the "Foundation impact:" rating, title-cased.
// Returns the empty string when no rating appears.
func foundationImpact(text string) string {
	m := impactRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	switch strings.ToLower(m[1]) {
	case "low":
		return "Low"
	case "medium":
		return "Medium"
	case "high":
		return "High"
	default:
		return ""
	}
}

// AnalyzeRequirements prompts for the foundational dimensions of the given
// requirements and returns them parsed. The caller decides whether to merge
// them into the repository.
func (a *FoundationAgent) AnalyzeRequirements(ctx context.Context, requirements string) ([]knowledge.Dimension, error) {
	text, err := a.Generate(ctx, foundationSystemPrompt,
		analyzeRequirementsPrompt(requirements), nil)
	if err != nil {
		return nil, err
	}

	sections := parse.Sections(text, "Foundation Dimension", "Dimension")
	dims := make([]knowledge.Dimension, 0, len(sections))
	for i, sec := range sections {
		name := sec.Title
		if name == "" {
			name = fmt.Sprintf("Dimension %d", i+1)
		}
		dims = append(dims, knowledge.Dimension{
			Name:             name,
			Description:      parse.Description(sec.Body),
			ResearchAreas:    parse.LabeledList(sec.Body, "Research areas"),
			Dependencies:     parse.LabeledList(sec.Body, "Dependencies", "Depends on"),
			FoundationImpact: foundationImpact(sec.Body),
		})
	}

	a.Logger().Info("requirements analyzed", "dimensions", len(dims))
	return dims, nil
}

// Approach is a candidate way of resolving a single dimension.
type Approach struct {
	Name        string
	Description string
	Strengths   []string
	Limitations []string
	Paradigm    knowledge.ParadigmCategory
}

// ProposeApproaches prompts for concrete approaches to the given dimension.
// Each approach's paradigm is sniffed from its description when stated.
func (a *FoundationAgent) ProposeApproaches(ctx context.Context, dim knowledge.Dimension) ([]Approach, error) {
	text, err := a.Generate(ctx, foundationApproachPrompt,
		proposeApproachesPrompt(dim), nil)
	if err != nil {
		return nil, err
	}

	sections := parse.Sections(text, "Approach", "Option")
	approaches := make([]Approach, 0, len(sections))
	for i, sec := range sections {
		name := sec.Title
		if name == "" {
			name = fmt.Sprintf("Approach %d", i+1)
		}
		approach := Approach{
			Name:        name,
			Description: parse.Description(sec.Body),
			Strengths:   parse.LabeledList(sec.Body, "Strengths", "Pros"),
			Limitations: parse.LabeledList(sec.Body, "Limitations", "Cons", "Weaknesses"),
		}
		if paradigm, ok := parse.ParadigmIn(sec.Body); ok {
			approach.Paradigm = paradigm
		}
		approaches = append(approaches, approach)
	}
	return approaches, nil
}

func (a *FoundationAgent) handleDebateRequest(ctx context.Context, msg message.Message) error {
	return a.contributeToDebate(ctx, foundationSystemPrompt, debateTopic(msg))
}
