package agent

import (
	"context"
	"testing"

	"ideaforge/internal/errors"
	"ideaforge/internal/knowledge"
	"ideaforge/internal/llm"
)

const technologiesResponse = `The established options for this dimension are below.

## Technology: PostgreSQL

A relational database with three decades of production history.

Strengths:
- ACID transactions
- Rich indexing

Limitations:
- Horizontal scaling takes work

Integrations:
- Redis

Relevance score: 9
Complexity: Medium

## Technology: SQLite

An embedded relational database.

Strengths:
- Zero operations

Limitations:
- Single writer

Relevance score: 6
Complexity: Low
`

func TestParadigmAgentAnalyzeDimension(t *testing.T) {
	repo := newTestRepo()
	repo.AddDimension(knowledge.Dimension{Name: "Data Storage", Description: "persistence"}, "test")

	client := llm.NewStaticClient("").Respond("Research the dimension", technologiesResponse)
	agent := NewParadigmAgent("established-1", knowledge.ParadigmEstablished, client, repo, nil)

	if err := agent.AnalyzeDimension(context.Background(), knowledge.Dimension{Name: "Data Storage"}); err != nil {
		t.Fatalf("AnalyzeDimension failed: %v", err)
	}

	dim, err := repo.Dimension("Data Storage")
	if err != nil {
		t.Fatalf("Dimension lookup failed: %v", err)
	}

	finding, ok := dim.Findings["established-1"]
	if !ok {
		t.Fatal("finding not recorded under agent ID")
	}
	if len(finding.Technologies) != 2 {
		t.Fatalf("got %d technologies, want 2", len(finding.Technologies))
	}

	postgres := finding.Technologies[0]
	if postgres.Name != "PostgreSQL" {
		t.Errorf("Name = %q, want %q", postgres.Name, "PostgreSQL")
	}
	if postgres.Paradigm != knowledge.ParadigmEstablished {
		t.Errorf("Paradigm = %q, want %q", postgres.Paradigm, knowledge.ParadigmEstablished)
	}
	if postgres.RelevanceScore != 0.9 {
		t.Errorf("RelevanceScore = %v, want 0.9", postgres.RelevanceScore)
	}
	if postgres.Complexity != "Medium" {
		t.Errorf("Complexity = %q, want %q", postgres.Complexity, "Medium")
	}
	if len(postgres.Strengths) != 2 {
		t.Errorf("got %d strengths, want 2", len(postgres.Strengths))
	}
	if len(postgres.Integrations) != 1 || postgres.Integrations[0] != "Redis" {
		t.Errorf("Integrations = %v, want [Redis]", postgres.Integrations)
	}

	paradigmFinding, ok := dim.ParadigmFindings[knowledge.ParadigmEstablished]
	if !ok {
		t.Fatal("paradigm finding not recorded")
	}
	if len(paradigmFinding.Technologies) != 2 {
		t.Errorf("got %d paradigm technologies, want 2", len(paradigmFinding.Technologies))
	}
}

func TestParadigmAgentAnalyzeDimensionUnknownDimension(t *testing.T) {
	client := llm.NewStaticClient(technologiesResponse)
	agent := NewParadigmAgent("established-1", knowledge.ParadigmEstablished, client, newTestRepo(), nil)

	err := agent.AnalyzeDimension(context.Background(), knowledge.Dimension{Name: "Nonexistent"})
	if !errors.Is(err, errors.ErrDimensionNotFound) {
		t.Errorf("error = %v, want ErrDimensionNotFound", err)
	}
}
