package agent

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"ideaforge/internal/errors"
	"ideaforge/internal/knowledge"
	"ideaforge/internal/llm"
	"ideaforge/internal/logging"
	"ideaforge/internal/parse"
)

// debateTopicPrefix names foundation debates so the dimension can be
// recovered from the topic when the debate concludes.
const debateTopicPrefix = "Foundation choices for "

// DebateTopicForDimension returns the canonical debate topic for a
// foundation dimension.
func DebateTopicForDimension(dimension string) string {
	return debateTopicPrefix + dimension
}

// UnspecifiedChoice is recorded when a synthesis response never states a
// selected choice in the expected form.
const UnspecifiedChoice = "Unspecified choice"

// SynthesisAgent concludes debates and writes the final research report.
type SynthesisAgent struct {
	*Base
}

// NewSynthesisAgent creates the synthesis agent.
func NewSynthesisAgent(id string, client llm.Client, repo *knowledge.Repository, logger *logging.Logger) *SynthesisAgent {
	return &SynthesisAgent{Base: NewBase(id, TypeSynthesis, client, repo, logger)}
}

var selectedChoiceRe = regexp.MustCompile(
	`(?mi)selected\s+foundation\s+choice\s*:\s*(?:\*\*)?\s*(.+?)\s*(?:\*\*)?\s*$`)

// ConcludeDebate weighs an active debate's contributions, concludes it, and
// records the resulting foundation choice. The chosen approach is taken
// from the response's "Selected foundation choice:" line; a response that
// never commits is recorded as UnspecifiedChoice rather than failing the run.
func (a *SynthesisAgent) ConcludeDebate(ctx context.Context, topic string) (knowledge.FoundationChoice, error) {
	debate, err := a.Repository().Debate(topic)
	if err != nil {
		return knowledge.FoundationChoice{}, err
	}
	if debate.Status == knowledge.DebateConcluded {
		return knowledge.FoundationChoice{}, errors.NewRepositoryError("cannot conclude debate", errors.ErrDebateConcluded).
			WithResource("debate", topic)
	}
	if len(debate.Contributions) == 0 {
		return knowledge.FoundationChoice{}, errors.NewRepositoryError("cannot conclude debate", errors.ErrNoContributions).
			WithResource("debate", topic)
	}

	text, err := a.Generate(ctx, synthesisSystemPrompt, concludeDebatePrompt(debate), nil)
	if err != nil {
		return knowledge.FoundationChoice{}, err
	}

	choice := UnspecifiedChoice
	if m := selectedChoiceRe.FindStringSubmatch(text); m != nil {
		choice = strings.TrimRight(m[1], ".")
	}

	if err := a.Repository().ConcludeDebate(topic, text); err != nil {
		return knowledge.FoundationChoice{}, err
	}

	foundation := knowledge.FoundationChoice{
		Dimension:    strings.TrimPrefix(topic, debateTopicPrefix),
		Choice:       choice,
		Rationale:    parse.Description(text),
		ChosenBy:     a.ID(),
		Paradigm:     "synthesis",
		Implications: parse.LabeledList(text, "Implications"),
		Score:        parse.Score(text, "Confidence"),
	}
	a.Repository().AddFoundationChoice(foundation)

	a.Logger().Info("debate concluded", "topic", topic, "choice", choice)
	return foundation, nil
}

func concludeDebatePrompt(debate knowledge.Debate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Conclude the debate %q by selecting one foundation choice.\n", debate.Topic)
	if debate.Description != "" {
		fmt.Fprintf(&b, "\nDebate context: %s\n", debate.Description)
	}
	b.WriteString("\nContributions:\n")
	for _, c := range debate.Contributions {
		fmt.Fprintf(&b, "\n--- %s (%s) ---\n%s\n", c.AgentID, c.AgentType, c.Content)
	}
	return b.String()
}

// WriteReport builds the final research report from repository state. The
// structured sections are rendered deterministically; the executive
// summary, recommendations, and conclusion are generated.
func (a *SynthesisAgent) WriteReport(ctx context.Context) (string, error) {
	repo := a.Repository()
	dimensions := repo.Dimensions()
	choices := repo.FoundationChoices()
	paths := repo.Paths()
	opportunities := repo.Opportunities()

	overview := reportOverview(dimensions, choices, paths, opportunities)

	summary, err := a.Generate(ctx, reportSystemPrompt,
		"Write a two-paragraph executive summary of this research.", map[string]string{
			"research overview": overview,
		})
	if err != nil {
		return "", err
	}
	recommendations, err := a.Generate(ctx, reportSystemPrompt,
		"Write concrete recommendations for the project team based on this research. Use a short bullet list.",
		map[string]string{"research overview": overview})
	if err != nil {
		return "", err
	}
	conclusion, err := a.Generate(ctx, reportSystemPrompt,
		"Write a one-paragraph conclusion for this research report.", map[string]string{
			"research overview": overview,
		})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("# Research Report\n\n")
	b.WriteString("## Executive Summary\n\n")
	b.WriteString(strings.TrimSpace(summary))
	b.WriteString("\n\n## Research Dimensions and Foundation Choices\n\n")
	writeDimensionSection(&b, dimensions, repo)
	b.WriteString("\n## Research Paths Analysis\n\n")
	writePathSection(&b, paths)
	b.WriteString("\n## Cross-Paradigm Opportunities\n\n")
	writeOpportunitySection(&b, opportunities)
	b.WriteString("\n## Recommendations\n\n")
	b.WriteString(strings.TrimSpace(recommendations))
	b.WriteString("\n\n## Conclusion\n\n")
	b.WriteString(strings.TrimSpace(conclusion))
	b.WriteString("\n")

	a.Logger().Info("report written",
		"dimensions", len(dimensions), "paths", len(paths), "opportunities", len(opportunities))
	return b.String(), nil
}

// reportOverview condenses repository state into prompt context for the
// generated report sections.
func reportOverview(dimensions []knowledge.Dimension, choices []knowledge.FoundationChoice, paths []knowledge.Path, opportunities []knowledge.Opportunity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dimensions researched: %d\n", len(dimensions))
	for _, dim := range dimensions {
		fmt.Fprintf(&b, "- %s: %s\n", dim.Name, dim.Description)
	}
	fmt.Fprintf(&b, "\nFoundation choices: %d\n", len(choices))
	for _, choice := range choices {
		fmt.Fprintf(&b, "- %s: %s\n", choice.Dimension, choice.Choice)
	}
	fmt.Fprintf(&b, "\nPaths explored: %d\n", len(paths))
	for _, path := range paths {
		fmt.Fprintf(&b, "- %s: %s\n", path.Name, strings.Join(path.Technologies, ", "))
	}
	fmt.Fprintf(&b, "\nIntegration opportunities: %d\n", len(opportunities))
	for _, opp := range opportunities {
		fmt.Fprintf(&b, "- %s: %s\n", opp.Name, opp.Description)
	}
	return b.String()
}

func writeDimensionSection(b *strings.Builder, dimensions []knowledge.Dimension, repo *knowledge.Repository) {
	if len(dimensions) == 0 {
		b.WriteString("No dimensions were identified.\n")
		return
	}
	for _, dim := range dimensions {
		fmt.Fprintf(b, "### %s\n\n", dim.Name)
		if dim.Description != "" {
			fmt.Fprintf(b, "%s\n\n", dim.Description)
		}
		if choice, ok := repo.ChoiceForDimension(dim.Name); ok {
			fmt.Fprintf(b, "**Selected:** %s\n\n", choice.Choice)
			if choice.Rationale != "" {
				fmt.Fprintf(b, "%s\n\n", choice.Rationale)
			}
		}
		if n := len(dim.ParadigmFindings); n > 0 {
			fmt.Fprintf(b, "Paradigm findings recorded: %d\n\n", n)
		}
	}
}

func writePathSection(b *strings.Builder, paths []knowledge.Path) {
	if len(paths) == 0 {
		b.WriteString("No paths were explored.\n")
		return
	}
	for _, path := range paths {
		fmt.Fprintf(b, "### %s\n\n", path.Name)
		if path.Description != "" {
			fmt.Fprintf(b, "%s\n\n", path.Description)
		}
		if len(path.Technologies) > 0 {
			fmt.Fprintf(b, "**Technologies:** %s\n\n", strings.Join(path.Technologies, ", "))
		}
		if len(path.TradeOffs) > 0 {
			b.WriteString("**Trade-offs:**\n\n")
			for _, t := range path.TradeOffs {
				fmt.Fprintf(b, "- %s\n", t)
			}
			b.WriteString("\n")
		}
	}
}

func writeOpportunitySection(b *strings.Builder, opportunities []knowledge.Opportunity) {
	if len(opportunities) == 0 {
		b.WriteString("No cross-paradigm opportunities were identified.\n")
		return
	}
	for _, opp := range opportunities {
		fmt.Fprintf(b, "### %s\n\n", opp.Name)
		if opp.Description != "" {
			fmt.Fprintf(b, "%s\n\n", opp.Description)
		}
		if opp.Paradigms[0] != "" && opp.Paradigms[1] != "" {
			fmt.Fprintf(b, "**Combines:** %s + %s\n\n", opp.Paradigms[0], opp.Paradigms[1])
		}
		if opp.Approach != "" {
			fmt.Fprintf(b, "**Approach:** %s\n\n", opp.Approach)
		}
		fmt.Fprintf(b, "Potential %.2f, complexity %s.\n\n", opp.PotentialScore, opp.Complexity)
	}
}
