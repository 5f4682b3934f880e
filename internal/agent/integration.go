package agent

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"ideaforge/internal/errors"
	"ideaforge/internal/knowledge"
	"ideaforge/internal/llm"
	"ideaforge/internal/logging"
	"ideaforge/internal/parse"
)

// IntegrationAgent looks across explored paths for ways to combine
// technologies from different paradigms.
type IntegrationAgent struct {
	*Base
}

// NewIntegrationAgent creates an integration research agent.
func NewIntegrationAgent(id string, client llm.Client, repo *knowledge.Repository, logger *logging.Logger) *IntegrationAgent {
	return &IntegrationAgent{Base: NewBase(id, TypeIntegration, client, repo, logger)}
}

var (
	fromParadigmRe = regexp.MustCompile(`(?mi)^\s*(?:[-*]\s*)?From\s+([A-Za-z_ \-]+?)\s*:\s*(.+?)\s*$`)
	approachRe     = regexp.MustCompile(`(?mi)^\s*(?:\*\*)?(?:Implementation\s+)?Approach(?:\*\*)?\s*:\s*(.+?)\s*$`)
)

// IdentifyOpportunities prompts for cross-paradigm combinations over the
// technologies surfaced by path exploration and records each parsed
// opportunity in the repository. Duplicate names are skipped, not errors.
func (a *IntegrationAgent) IdentifyOpportunities(ctx context.Context) ([]knowledge.Opportunity, error) {
	text, err := a.Generate(ctx, integrationSystemPrompt,
		identifyOpportunitiesPrompt(a.Repository().Paths()), nil)
	if err != nil {
		return nil, err
	}

	sections := parse.Sections(text, "Opportunity", "Integration")
	opportunities := make([]knowledge.Opportunity, 0, len(sections))
	for i, sec := range sections {
		name := sec.Title
		if name == "" {
			name = fmt.Sprintf("Opportunity %d", i+1)
		}

		opp := knowledge.Opportunity{
			Name:           name,
			Description:    parse.Description(sec.Body),
			Benefits:       parse.LabeledList(sec.Body, "Benefits"),
			Challenges:     parse.LabeledList(sec.Body, "Challenges", "Risks"),
			PotentialScore: parse.Score(sec.Body, "Potential score", "Potential", "Score"),
			Complexity:     parse.Complexity(sec.Body),
			IdentifiedBy:   a.ID(),
		}
		if m := approachRe.FindStringSubmatch(sec.Body); m != nil {
			opp.Approach = m[1]
		}

		for _, m := range fromParadigmRe.FindAllStringSubmatch(sec.Body, 2) {
			paradigm := canonicalParadigm(m[1])
			opp.Technologies = append(opp.Technologies, knowledge.OpportunityTech{
				Name:     m[2],
				Paradigm: paradigm,
			})
			if opp.Paradigms[0] == "" {
				opp.Paradigms[0] = paradigm
			} else if opp.Paradigms[1] == "" {
				opp.Paradigms[1] = paradigm
			}
		}

		if err := a.Repository().AddOpportunity(opp); err != nil {
			// Two integration agents can surface the same combination.
			var exists *errors.AlreadyExistsError
			if errors.As(err, &exists) {
				a.Logger().Debug("duplicate opportunity skipped", "opportunity", opp.Name)
				continue
			}
			return nil, err
		}
		opportunities = append(opportunities, opp)
	}

	a.Logger().Info("opportunities identified", "count", len(opportunities))
	return opportunities, nil
}

// canonicalParadigm normalizes a paradigm name as written in a response
// ("Cutting Edge", "cutting-edge") to its category form.
func canonicalParadigm(name string) string {
	if p, ok := parse.ParadigmIn(name); ok {
		return p.String()
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")
	return normalized
}

// identifyOpportunitiesPrompt summarizes each path's technologies per
// dimension so the model reasons over what was actually explored.
func identifyOpportunitiesPrompt(paths []knowledge.Path) string {
	var b strings.Builder
	b.WriteString("Identify cross-paradigm integration opportunities across the explored research paths.\n")

	techsByDim := make(map[string][]string)
	var dimOrder []string
	for _, path := range paths {
		dims := make([]string, 0, len(path.Dimensions))
		for dim := range path.Dimensions {
			dims = append(dims, dim)
		}
		sort.Strings(dims)
		for _, dim := range dims {
			if _, ok := techsByDim[dim]; !ok {
				dimOrder = append(dimOrder, dim)
			}
			for _, tech := range path.Dimensions[dim].Technologies {
				techsByDim[dim] = appendUnique(techsByDim[dim], tech.Name)
			}
		}
	}

	if len(dimOrder) > 0 {
		b.WriteString("\nTechnologies explored per dimension:\n")
		for _, dim := range dimOrder {
			fmt.Fprintf(&b, "- %s: %s\n", dim, strings.Join(techsByDim[dim], ", "))
		}
	}
	return b.String()
}

func appendUnique(items []string, item string) []string {
	for _, existing := range items {
		if existing == item {
			return items
		}
	}
	return append(items, item)
}
