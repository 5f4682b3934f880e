package agent

import (
	"context"
	"testing"

	"ideaforge/internal/knowledge"
	"ideaforge/internal/llm"
	"ideaforge/internal/message"
)

const dimensionsResponse = `Here is my analysis.

## Dimension: Data Storage

How and where the system persists its data.

Foundation impact: High

Research areas:
- Relational versus document storage
- Consistency requirements

## Dimension: API Design

The shape of the external interface.

Foundation impact: Medium

Dependencies:
- Data Storage

Research areas:
- REST versus RPC
`

func TestFoundationAgentAnalyzeRequirements(t *testing.T) {
	client := llm.NewStaticClient("").Respond("foundational design dimensions", dimensionsResponse)
	agent := NewFoundationAgent("foundation-1", client, newTestRepo(), nil)

	dims, err := agent.AnalyzeRequirements(context.Background(), "a task tracker for small teams")
	if err != nil {
		t.Fatalf("AnalyzeRequirements failed: %v", err)
	}
	if len(dims) != 2 {
		t.Fatalf("got %d dimensions, want 2", len(dims))
	}

	storage := dims[0]
	if storage.Name != "Data Storage" {
		t.Errorf("Name = %q, want %q", storage.Name, "Data Storage")
	}
	if storage.Description != "How and where the system persists its data." {
		t.Errorf("Description = %q", storage.Description)
	}
	if storage.FoundationImpact != "High" {
		t.Errorf("FoundationImpact = %q, want %q", storage.FoundationImpact, "High")
	}
	if !storage.IsFoundation() {
		t.Error("Data Storage should be a foundation dimension")
	}
	if len(storage.ResearchAreas) != 2 {
		t.Errorf("got %d research areas, want 2", len(storage.ResearchAreas))
	}

	api := dims[1]
	if api.IsFoundation() {
		t.Error("API Design depends on Data Storage, should not be foundation")
	}
	if len(api.Dependencies) != 1 || api.Dependencies[0] != "Data Storage" {
		t.Errorf("Dependencies = %v, want [Data Storage]", api.Dependencies)
	}
}

func TestFoundationAgentProposeApproaches(t *testing.T) {
	response := `## Approach: Relational Database

A mainstream relational store.

Strengths:
- Transactions
- Mature tooling

Limitations:
- Schema migrations

## Approach: Event Sourcing

An experimental append-only log of events.

Strengths:
- Full audit trail

Limitations:
- Steep learning curve
`
	client := llm.NewStaticClient("").Respond("Propose concrete approaches", response)
	agent := NewFoundationAgent("foundation-1", client, newTestRepo(), nil)

	approaches, err := agent.ProposeApproaches(context.Background(), knowledge.Dimension{
		Name:        "Data Storage",
		Description: "persistence layer",
	})
	if err != nil {
		t.Fatalf("ProposeApproaches failed: %v", err)
	}
	if len(approaches) != 2 {
		t.Fatalf("got %d approaches, want 2", len(approaches))
	}
	if approaches[0].Name != "Relational Database" {
		t.Errorf("Name = %q, want %q", approaches[0].Name, "Relational Database")
	}
	if len(approaches[0].Strengths) != 2 {
		t.Errorf("got %d strengths, want 2", len(approaches[0].Strengths))
	}
	if approaches[0].Paradigm != knowledge.ParadigmMainstream {
		t.Errorf("Paradigm = %q, want %q", approaches[0].Paradigm, knowledge.ParadigmMainstream)
	}
	if approaches[1].Paradigm != knowledge.ParadigmExperimental {
		t.Errorf("Paradigm = %q, want %q", approaches[1].Paradigm, knowledge.ParadigmExperimental)
	}
}

func TestFoundationAgentDebateContribution(t *testing.T) {
	repo := newTestRepo()
	if err := repo.StartDebate("Foundation choices for Data Storage", "pick a store"); err != nil {
		t.Fatalf("StartDebate failed: %v", err)
	}

	client := llm.NewStaticClient("I argue for a relational database.")
	agent := NewFoundationAgent("foundation-1", client, repo, nil)

	msg := message.New("coordinator", "foundation-1", message.TypeDebateRequest, "")
	msg.Metadata = map[string]any{"topic": "Foundation choices for Data Storage"}
	if err := agent.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}

	debate, err := repo.Debate("Foundation choices for Data Storage")
	if err != nil {
		t.Fatalf("Debate lookup failed: %v", err)
	}
	if len(debate.Contributions) != 1 {
		t.Fatalf("got %d contributions, want 1", len(debate.Contributions))
	}
	contribution := debate.Contributions[0]
	if contribution.AgentID != "foundation-1" {
		t.Errorf("AgentID = %q, want %q", contribution.AgentID, "foundation-1")
	}
	if contribution.Content != "I argue for a relational database." {
		t.Errorf("Content = %q", contribution.Content)
	}
}
