// Package internal contains integration tests that verify the packages work
// together: the staged drafting workflow, the event bus, and the research
// fleet, end to end against a canned LLM client.
package internal

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ideaforge/internal/document"
	"ideaforge/internal/event"
	"ideaforge/internal/llm"
	"ideaforge/internal/research"
	"ideaforge/internal/session"
	"ideaforge/internal/workflow"
)

// TestFullWorkflow walks a session from brainstorm through every stage to
// the research report.
func TestFullWorkflow(t *testing.T) {
	ctx := context.Background()
	bus := event.NewBus()

	var stageChanges, drafted []string
	bus.Subscribe("stage.changed", func(e event.Event) {
		ev := e.(event.StageChangedEvent)
		stageChanges = append(stageChanges, ev.CurrentStage)
	})
	bus.Subscribe("document.drafted", func(e event.Event) {
		ev := e.(event.DocumentDraftedEvent)
		drafted = append(drafted, ev.DocumentType)
	})

	sessions, err := session.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	docs, err := document.NewDirStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirStore failed: %v", err)
	}
	engine := workflow.NewEngine(sessions, docs, bus, workflowClient(), nil, research.Config{
		FoundationAgents:  1,
		PathAgents:        1,
		IntegrationAgents: 1,
		DebateWindow:      time.Second,
		TaskTimeout:       time.Second,
	})

	s, err := sessions.Create(ctx, "task tracker", workflow.StageBrainstorm.String())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Brainstorm.
	if _, err := engine.StartBrainstorm(ctx, s.ID, "a task tracker for small teams"); err != nil {
		t.Fatalf("StartBrainstorm failed: %v", err)
	}
	if _, err := engine.Converse(ctx, s.ID, "Keep it offline-first"); err != nil {
		t.Fatalf("Converse failed: %v", err)
	}

	// Draft and approve each document stage.
	if _, err := engine.Approve(ctx, s.ID); err != nil {
		t.Fatalf("Approve to vision failed: %v", err)
	}
	for _, stage := range []workflow.Stage{workflow.StageVision, workflow.StagePRD, workflow.StageArchitecture} {
		if _, err := engine.Draft(ctx, s.ID); err != nil {
			t.Fatalf("Draft at %s failed: %v", stage, err)
		}
		if _, err := engine.Approve(ctx, s.ID); err != nil {
			t.Fatalf("Approve at %s failed: %v", stage, err)
		}
	}

	// Research.
	reportPath, err := engine.RunResearch(ctx, s.ID)
	if err != nil {
		t.Fatalf("RunResearch failed: %v", err)
	}
	if filepath.Base(reportPath) != "research-report.md" {
		t.Errorf("report path = %q, want research-report.md", reportPath)
	}
	report, err := docs.Read(reportPath)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	for _, heading := range []string{"# Research Report", "## Executive Summary", "## Conclusion"} {
		if !strings.Contains(report.Content, heading) {
			t.Errorf("report missing heading %q", heading)
		}
	}

	// Session state after the full run.
	final, err := sessions.Load(ctx, s.ID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if final.Stage != workflow.StageResearch.String() {
		t.Errorf("Stage = %q, want %q", final.Stage, workflow.StageResearch)
	}
	if len(final.Documents) != 4 {
		t.Errorf("got %d documents, want 4: %v", len(final.Documents), final.Documents)
	}
	if final.Research == nil || !final.Research.SynthesisDone {
		t.Errorf("research state = %+v, want synthesis done", final.Research)
	}

	wantStages := []string{"vision", "prd", "architecture", "research"}
	if len(stageChanges) != len(wantStages) {
		t.Fatalf("stage changes = %v, want %v", stageChanges, wantStages)
	}
	for i := range wantStages {
		if stageChanges[i] != wantStages[i] {
			t.Errorf("stageChanges[%d] = %q, want %q", i, stageChanges[i], wantStages[i])
		}
	}
	if len(drafted) != 4 {
		t.Errorf("drafted events = %v, want 4 documents", drafted)
	}
}

// workflowClient serves canned responses for every prompt of the full
// workflow: the brainstorm, the three document drafts, and the research run.
func workflowClient() *llm.StaticClient {
	const vision = `## Overview

A task tracker for small teams that works offline.

## Technical Requirements

Local-first storage with sync.`

	const prd = `## User Stories

Users create, assign, and complete tasks without a connection.`

	const architecture = `## Components

A local store, a sync engine, and an HTTP API.

## Open Decisions

- Sync protocol`

	const dimensions = `## Dimension: Data Storage

How the system persists tasks.

Foundation impact: High
`
	const technologies = `## Technology: PostgreSQL

A relational database.

Relevance score: 9
Complexity: Medium
`
	const pathExploration = `## Data Storage

The store of record.

Technology: PostgreSQL
`
	const opportunities = `## Opportunity: Durable Core with Fast Cache

Pair the relational core with a read cache.

From established: PostgreSQL
From cutting edge: Dragonfly

Potential score: 8
`
	return llm.NewStaticClient("Noted. Tell me more.").
		Respond("Draft the vision document", vision).
		Respond("Draft the product requirements document", prd).
		Respond("Draft the architecture document", architecture).
		Respond("foundational design dimensions", dimensions).
		Respond("Research the dimension", technologies).
		Respond("Contribute your position", "PostgreSQL is the right call.").
		Respond("Conclude the debate", "Selected foundation choice: PostgreSQL").
		Respond("Explore the research path", pathExploration).
		Respond("cross-paradigm integration opportunities", opportunities).
		Respond("executive summary", "A conventional stack wins.").
		Respond("recommendations", "- Ship the primary path").
		Respond("conclusion", "Build it on PostgreSQL.")
}
