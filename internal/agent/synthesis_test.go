package agent

import (
	"context"
	"strings"
	"testing"

	"ideaforge/internal/errors"
	"ideaforge/internal/knowledge"
	"ideaforge/internal/llm"
)

func startDebateWithContribution(t *testing.T, repo *knowledge.Repository, topic string) {
	t.Helper()
	if err := repo.StartDebate(topic, "pick a store"); err != nil {
		t.Fatalf("StartDebate failed: %v", err)
	}
	if err := repo.Contribute(topic, knowledge.Contribution{
		AgentID:   "established-1",
		AgentType: "paradigm",
		Content:   "PostgreSQL is the safe default.",
	}); err != nil {
		t.Fatalf("Contribute failed: %v", err)
	}
}

func TestSynthesisAgentConcludeDebate(t *testing.T) {
	repo := newTestRepo()
	topic := DebateTopicForDimension("Data Storage")
	startDebateWithContribution(t, repo, topic)

	response := `The contributions converge on a relational store.

Implications:
- The API layer can rely on transactions

Selected foundation choice: PostgreSQL`
	client := llm.NewStaticClient("").Respond("Conclude the debate", response)
	agent := NewSynthesisAgent("synthesis-1", client, repo, nil)

	choice, err := agent.ConcludeDebate(context.Background(), topic)
	if err != nil {
		t.Fatalf("ConcludeDebate failed: %v", err)
	}
	if choice.Choice != "PostgreSQL" {
		t.Errorf("Choice = %q, want %q", choice.Choice, "PostgreSQL")
	}
	if choice.Dimension != "Data Storage" {
		t.Errorf("Dimension = %q, want %q", choice.Dimension, "Data Storage")
	}
	if choice.Paradigm != "synthesis" {
		t.Errorf("Paradigm = %q, want %q", choice.Paradigm, "synthesis")
	}
	if len(choice.Implications) != 1 {
		t.Errorf("got %d implications, want 1", len(choice.Implications))
	}

	// The prompt must carry the debate's contributions.
	if !strings.Contains(client.LastPrompt(), "PostgreSQL is the safe default.") {
		t.Error("prompt should include debate contributions")
	}

	debate, err := repo.Debate(topic)
	if err != nil {
		t.Fatalf("Debate lookup failed: %v", err)
	}
	if debate.Status != knowledge.DebateConcluded {
		t.Errorf("Status = %q, want %q", debate.Status, knowledge.DebateConcluded)
	}

	recorded, ok := repo.ChoiceForDimension("Data Storage")
	if !ok {
		t.Fatal("foundation choice not recorded")
	}
	if recorded.Choice != "PostgreSQL" {
		t.Errorf("recorded Choice = %q, want %q", recorded.Choice, "PostgreSQL")
	}
}

func TestSynthesisAgentConcludeDebateUnspecifiedChoice(t *testing.T) {
	repo := newTestRepo()
	topic := DebateTopicForDimension("Data Storage")
	startDebateWithContribution(t, repo, topic)

	client := llm.NewStaticClient("Both options have merit and trade-offs.")
	agent := NewSynthesisAgent("synthesis-1", client, repo, nil)

	choice, err := agent.ConcludeDebate(context.Background(), topic)
	if err != nil {
		t.Fatalf("ConcludeDebate failed: %v", err)
	}
	if choice.Choice != UnspecifiedChoice {
		t.Errorf("Choice = %q, want %q", choice.Choice, UnspecifiedChoice)
	}
}

func TestSynthesisAgentConcludeDebateErrors(t *testing.T) {
	t.Run("unknown topic", func(t *testing.T) {
		agent := NewSynthesisAgent("synthesis-1", llm.NewStaticClient("x"), newTestRepo(), nil)
		_, err := agent.ConcludeDebate(context.Background(), "never started")
		if !errors.Is(err, errors.ErrDebateNotFound) {
			t.Errorf("error = %v, want ErrDebateNotFound", err)
		}
	})

	t.Run("no contributions", func(t *testing.T) {
		repo := newTestRepo()
		topic := DebateTopicForDimension("Data Storage")
		if err := repo.StartDebate(topic, ""); err != nil {
			t.Fatalf("StartDebate failed: %v", err)
		}

		agent := NewSynthesisAgent("synthesis-1", llm.NewStaticClient("Selected foundation choice: X"), repo, nil)
		_, err := agent.ConcludeDebate(context.Background(), topic)
		if !errors.Is(err, errors.ErrNoContributions) {
			t.Errorf("error = %v, want ErrNoContributions", err)
		}
	})
}

func TestSynthesisAgentWriteReport(t *testing.T) {
	repo := newTestRepo()
	repo.AddDimension(knowledge.Dimension{Name: "Data Storage", Description: "persistence"}, "test")
	repo.AddFoundationChoice(knowledge.FoundationChoice{
		Dimension: "Data Storage",
		Choice:    "PostgreSQL",
		Rationale: "transactions and maturity",
		ChosenBy:  "synthesis-1",
	})
	if err := repo.AddPath(knowledge.Path{
		Name:         "Primary Path",
		Description:  "the straightforward stack",
		Technologies: []string{"PostgreSQL", "REST over HTTP"},
		TradeOffs:    []string{"vertical scaling ceiling"},
	}); err != nil {
		t.Fatalf("AddPath failed: %v", err)
	}
	if err := repo.AddOpportunity(knowledge.Opportunity{
		Name:        "Durable Core with Fast Cache",
		Description: "relational core with in-memory reads",
		Paradigms:   [2]string{"established", "cutting_edge"},
	}); err != nil {
		t.Fatalf("AddOpportunity failed: %v", err)
	}

	client := llm.NewStaticClient("generated narrative").
		Respond("executive summary", "The research points to a conventional stack.").
		Respond("recommendations", "- Start with the primary path").
		Respond("conclusion", "A relational core is the right call.")
	agent := NewSynthesisAgent("synthesis-1", client, repo, nil)

	report, err := agent.WriteReport(context.Background())
	if err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}

	for _, heading := range []string{
		"# Research Report",
		"## Executive Summary",
		"## Research Dimensions and Foundation Choices",
		"## Research Paths Analysis",
		"## Cross-Paradigm Opportunities",
		"## Recommendations",
		"## Conclusion",
	} {
		if !strings.Contains(report, heading) {
			t.Errorf("report missing heading %q", heading)
		}
	}
	if !strings.Contains(report, "The research points to a conventional stack.") {
		t.Error("report missing generated executive summary")
	}
	if !strings.Contains(report, "**Selected:** PostgreSQL") {
		t.Error("report missing the foundation choice")
	}
	if !strings.Contains(report, "Primary Path") {
		t.Error("report missing the explored path")
	}
	if !strings.Contains(report, "Durable Core with Fast Cache") {
		t.Error("report missing the integration opportunity")
	}
	if client.CallCount() != 3 {
		t.Errorf("CallCount() = %d, want 3 generated sections", client.CallCount())
	}
}
