package llm

import (
	"context"
	"strings"
	"sync"
)

// StaticClient is a test double that serves canned responses keyed by
// substring match against the assembled prompt. It records every prompt it
// receives for later inspection.
type StaticClient struct {
	mu        sync.Mutex
	responses map[string]string // prompt substring -> response text
	fallback  string
	err       error
	prompts   []string
}

// NewStaticClient creates a StaticClient with an optional fallback response
// returned when no substring matches.
func NewStaticClient(fallback string) *StaticClient {
	return &StaticClient{
		responses: make(map[string]string),
		fallback:  fallback,
	}
}

// Respond registers a canned response served when the assembled prompt
// contains the given substring. Returns the client for chaining.
func (c *StaticClient) Respond(substring, response string) *StaticClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses[substring] = response
	return c
}

// Fail makes every subsequent Generate call return the given error.
func (c *StaticClient) Fail(err error) *StaticClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
	return c
}

// Generate returns the canned response whose key is a substring of the
// assembled prompt, or the fallback when none matches.
func (c *StaticClient) Generate(ctx context.Context, req Request) (Response, error) {
	if err := req.Validate(); err != nil {
		return Response{}, err
	}
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}

	prompt := BuildPrompt(req)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.prompts = append(c.prompts, prompt)

	if c.err != nil {
		return Response{}, c.err
	}

	for substring, response := range c.responses {
		if strings.Contains(prompt, substring) {
			return Response{Text: response, Model: "static"}, nil
		}
	}
	return Response{Text: c.fallback, Model: "static"}, nil
}

// Prompts returns a copy of every assembled prompt seen so far.
func (c *StaticClient) Prompts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]string, len(c.prompts))
	copy(result, c.prompts)
	return result
}

// LastPrompt returns the most recent assembled prompt, or the empty string
// if no call has been made.
func (c *StaticClient) LastPrompt() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.prompts) == 0 {
		return ""
	}
	return c.prompts[len(c.prompts)-1]
}

// CallCount returns the number of Generate calls received.
func (c *StaticClient) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.prompts)
}
