package agent

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"ideaforge/internal/knowledge"
	"ideaforge/internal/llm"
	"ideaforge/internal/logging"
	"ideaforge/internal/parse"
)

// PathAgent explores one coherent combination of foundation choices across
// every design dimension and records the result on the repository path.
type PathAgent struct {
	*Base
}

// NewPathAgent creates a path exploration agent.
func NewPathAgent(id string, client llm.Client, repo *knowledge.Repository, logger *logging.Logger) *PathAgent {
	return &PathAgent{Base: NewBase(id, TypePath, client, repo, logger)}
}

// ExplorePath researches how the path's foundation choices play out across
// all dimensions, foundation dimensions first, and updates the path with the
// technologies, trade-offs, and characteristics found.
func (a *PathAgent) ExplorePath(ctx context.Context, path knowledge.Path) error {
	dims := a.Repository().Dimensions()
	sort.SliceStable(dims, func(i, j int) bool {
		return len(dims[i].Dependencies) < len(dims[j].Dependencies)
	})

	text, err := a.Generate(ctx, pathSystemPrompt, explorePathPrompt(path, dims), nil)
	if err != nil {
		return err
	}

	pathDims := make(map[string]knowledge.PathDimension, len(dims))
	var techNames []string
	seen := make(map[string]bool)
	for _, dim := range dims {
		sections := parse.Sections(text, dim.Name)
		if len(sections) == 0 {
			continue
		}
		// Sections splits on the dimension's own name, so the body runs
		// through other dimensions' headings; cut it at the next heading.
		body := truncateAtHeading(sections[0].Body)

		var techs []knowledge.Technology
		for _, mention := range parse.TechMentions(body) {
			techs = append(techs, knowledge.Technology{
				Name:        mention.Name,
				Description: parse.Description(mention.Context),
			})
			if !seen[mention.Name] {
				seen[mention.Name] = true
				techNames = append(techNames, mention.Name)
			}
		}
		pathDims[dim.Name] = knowledge.PathDimension{
			Technologies: techs,
			Notes:        parse.Description(body),
		}
	}

	tradeOffs := parse.LabeledList(text, "Trade-offs", "Tradeoffs", "Trade offs")
	characteristics := parseCharacteristics(parse.LabeledList(text, "Characteristics"))

	err = a.Repository().UpdatePath(path.Name, func(p *knowledge.Path) {
		p.Dimensions = pathDims
		p.Technologies = techNames
		p.TradeOffs = tradeOffs
		p.Characteristics = characteristics
		p.ExploredBy = a.ID()
	})
	if err != nil {
		return err
	}

	a.Logger().Info("path explored",
		"path", path.Name, "dimensions", len(pathDims), "technologies", len(techNames))
	return nil
}

// explorePathPrompt lists the path's fixed choices and the dimensions to
// cover. Dimension order matches the caller's dependency ordering.
func explorePathPrompt(path knowledge.Path, dims []knowledge.Dimension) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Explore the research path %q.\n", path.Name)
	if path.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", path.Description)
	}

	if len(path.FoundationChoices) > 0 {
		b.WriteString("\nFoundation choices (fixed for this path):\n")
		choiceDims := make([]string, 0, len(path.FoundationChoices))
		for dim := range path.FoundationChoices {
			choiceDims = append(choiceDims, dim)
		}
		sort.Strings(choiceDims)
		for _, dim := range choiceDims {
			fmt.Fprintf(&b, "- %s: %s\n", dim, path.FoundationChoices[dim])
		}
	}

	b.WriteString("\nDimensions to cover, in order:\n")
	for _, dim := range dims {
		fmt.Fprintf(&b, "- %s: %s\n", dim.Name, dim.Description)
	}
	return b.String()
}

var headingRe = regexp.MustCompile(`(?m)^#{1,6}\s`)

// truncateAtHeading returns text up to the first markdown heading line.
func truncateAtHeading(text string) string {
	if loc := headingRe.FindStringIndex(text); loc != nil {
		return strings.TrimSpace(text[:loc[0]])
	}
	return text
}

// parseCharacteristics splits "name: value" list items into a map. Items
// without a colon are kept with an empty value.
func parseCharacteristics(items []string) map[string]string {
	if len(items) == 0 {
		return nil
	}
	result := make(map[string]string, len(items))
	for _, item := range items {
		name, value, _ := strings.Cut(item, ":")
		result[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return result
}
