// Package parse extracts structured fields from unstructured LLM markdown.
//
// Model responses follow the prompts loosely at best, so every extractor
// here is best-effort: a regex sweep that returns whatever it can find and
// falls back to a usable default when nothing matches. Callers always
// receive a usable (possibly empty) result and never an error.
package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"ideaforge/internal/knowledge"
)

// Section is a heading-delimited region of a markdown response.
type Section struct {
	Title string // Text after the matched heading name (and optional number/colon)
	Body  string // Everything up to the next matching heading
}

// Sections splits text on markdown headings whose text starts with one of
// the given names, e.g. Sections(text, "Dimension", "Foundation Dimension")
// matches "## Dimension: Data Storage" and "### Foundation Dimension 2 - Scaling".
// Returns nil if no heading matches.
func Sections(text string, names ...string) []Section {
	if len(names) == 0 {
		return nil
	}

	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = regexp.QuoteMeta(name)
	}
	re := regexp.MustCompile(fmt.Sprintf(
		`(?mi)^#{1,6}\s*(?:%s)(?:\s+\d+)?\s*[:\-]?\s*(.*)$`,
		strings.Join(quoted, "|")))

	matches := re.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return nil
	}

	sections := make([]Section, 0, len(matches))
	for i, m := range matches {
		title := strings.TrimSpace(text[m[2]:m[3]])
		bodyStart := m[1]
		bodyEnd := len(text)
		if i+1 < len(matches) {
			bodyEnd = matches[i+1][0]
		}
		sections = append(sections, Section{
			Title: title,
			Body:  strings.TrimSpace(text[bodyStart:bodyEnd]),
		})
	}
	return sections
}

// LabeledList returns the bullet items that follow a "Label:" line for any
// of the given labels, e.g. LabeledList(body, "Strengths") collects the
// "- item" lines under "Strengths:". Items from multiple labels are
// concatenated in document order. Returns nil if no label matches.
func LabeledList(text string, labels ...string) []string {
	if len(labels) == 0 {
		return nil
	}

	quoted := make([]string, len(labels))
	for i, label := range labels {
		quoted[i] = regexp.QuoteMeta(label)
	}
	labelRe := regexp.MustCompile(fmt.Sprintf(
		`(?mi)^\s*(?:\*\*)?(?:%s)(?:\*\*)?\s*:\s*(?:\*\*)?\s*$`,
		strings.Join(quoted, "|")))
	itemRe := regexp.MustCompile(`^\s*[-*]\s+(.+)$`)

	var items []string
	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines); i++ {
		if !labelRe.MatchString(lines[i]) {
			continue
		}
		for j := i + 1; j < len(lines); j++ {
			line := lines[j]
			if m := itemRe.FindStringSubmatch(line); m != nil {
				items = append(items, strings.TrimSpace(m[1]))
				continue
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			// First non-item, non-blank line ends the list.
			i = j - 1
			break
		}
	}
	return items
}

// Description returns the first blank-line-delimited paragraph of text,
// skipping headings and list items. Falls back to the first 200 characters
// when no plain paragraph exists.
func Description(text string) string {
	for para := range strings.SplitSeq(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		first := strings.TrimSpace(strings.SplitN(para, "\n", 2)[0])
		if strings.HasPrefix(first, "#") || strings.HasPrefix(first, "-") || strings.HasPrefix(first, "*") {
			continue
		}
		return strings.Join(strings.Fields(para), " ")
	}

	fallback := strings.TrimSpace(text)
	if len(fallback) > 200 {
		fallback = fallback[:200]
	}
	return fallback
}

// Score returns the numeric value following "Label:" for any of the given
// labels. Values greater than 1.0 are treated as a 1-10 rating and
// normalized by dividing by 10. Returns 0.75 when no label matches.
func Score(text string, labels ...string) float64 {
	const defaultScore = 0.75
	if len(labels) == 0 {
		return defaultScore
	}

	quoted := make([]string, len(labels))
	for i, label := range labels {
		quoted[i] = regexp.QuoteMeta(label)
	}
	re := regexp.MustCompile(fmt.Sprintf(
		`(?mi)(?:%s)\s*:\s*([0-9]+(?:\.[0-9]+)?)`,
		strings.Join(quoted, "|")))

	m := re.FindStringSubmatch(text)
	if m == nil {
		return defaultScore
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return defaultScore
	}
	if value > 1.0 {
		value /= 10
	}
	if value > 1.0 {
		value = 1.0
	}
	return value
}

var complexityRe = regexp.MustCompile(`(?mi)complexity\s*(?:rating|level)?\s*:\s*([A-Za-z]+)`)

// Complexity returns the word following "Complexity:" title-cased when it
// is low, medium, or high. Returns "Medium" for anything else.
func Complexity(text string) string {
	m := complexityRe.FindStringSubmatch(text)
	if m == nil {
		return "Medium"
	}
	switch strings.ToLower(m[1]) {
	case "low":
		return "Low"
	case "medium":
		return "Medium"
	case "high":
		return "High"
	default:
		return "Medium"
	}
}

// ParadigmIn sniffs the text for a paradigm category name, matching
// case-insensitively with spaces or hyphens in place of underscores
// ("cutting edge", "cutting-edge", "cutting_edge"). Returns the first
// category found in canonical order, or false if none appears.
func ParadigmIn(text string) (knowledge.ParadigmCategory, bool) {
	lower := strings.ToLower(text)
	for _, p := range knowledge.Paradigms() {
		name := string(p)
		variants := []string{
			name,
			strings.ReplaceAll(name, "_", " "),
			strings.ReplaceAll(name, "_", "-"),
		}
		for _, v := range variants {
			if strings.Contains(lower, v) {
				return p, true
			}
		}
	}
	return "", false
}

// TechMention is a named technology with its surrounding response context.
type TechMention struct {
	Name    string // Technology name as written in the response
	Context string // Up to 200 characters before and after the mention
}

var techMentionRe = regexp.MustCompile(
	`(?mi)^\s*(?:[-*]\s*)?(?:\*\*)?(?:Technology|Framework|Tool|Approach)(?:\*\*)?\s*:\s*(?:\*\*)?([^*\n]+?)(?:\*\*)?\s*$`)

// TechMentions finds "Technology: <name>" style lines (also Framework,
// Tool, and Approach) and returns each name with up to 200 characters of
// surrounding context for downstream summarization.
func TechMentions(text string) []TechMention {
	matches := techMentionRe.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return nil
	}

	mentions := make([]TechMention, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSpace(text[m[2]:m[3]])
		if name == "" {
			continue
		}
		start := max(m[0]-200, 0)
		end := min(m[1]+200, len(text))
		mentions = append(mentions, TechMention{
			Name:    name,
			Context: strings.TrimSpace(text[start:end]),
		})
	}
	return mentions
}
