// Package llm provides the text-generation boundary for Ideaforge agents.
//
// Agents depend only on the [Client] interface: build a request, receive
// free-form text. The concrete [GeminiClient] talks to the Gemini API via
// the google.golang.org/genai SDK; [StaticClient] serves canned responses
// in tests. Retry policy, streaming, and multi-provider routing are out of
// scope for this boundary.
package llm

import (
	"context"
	"sort"
	"strings"

	"ideaforge/internal/errors"
)

// Request describes a single text-generation call.
type Request struct {
	// System is the role-defining system prompt.
	System string

	// Prompt is the user-turn prompt.
	Prompt string

	// Context holds named sections appended to the prompt, rendered as
	// "## key" headings in sorted key order so prompts are deterministic.
	Context map[string]string
}

// Validate checks that the request can be sent.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return errors.NewValidationError("prompt cannot be empty").WithField("prompt")
	}
	return nil
}

// Response is the result of a text-generation call.
type Response struct {
	// Text is the raw model output.
	Text string

	// Model identifies the model that produced the text.
	Model string
}

// Client generates text given a prompt. Implementations must be safe for
// concurrent use; the research coordinator fans requests out across agents.
type Client interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

// BuildPrompt assembles the full prompt text for a request: system prompt,
// user prompt, then one "## key" section per context entry in sorted key
// order. The assembly is deterministic for identical requests.
func BuildPrompt(req Request) string {
	var b strings.Builder
	if req.System != "" {
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}
	b.WriteString(req.Prompt)
	b.WriteString(contextSections(req.Context))
	return b.String()
}

// contextSections renders the context map as markdown sections in sorted
// key order, or returns the empty string for an empty map.
func contextSections(context map[string]string) string {
	if len(context) == 0 {
		return ""
	}

	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("\n\nContext:\n")
	for _, key := range keys {
		b.WriteString("## ")
		b.WriteString(key)
		b.WriteString("\n")
		b.WriteString(context[key])
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
