package workflow

import (
	"context"
	"strings"

	"ideaforge/internal/document"
	"ideaforge/internal/errors"
	"ideaforge/internal/event"
	"ideaforge/internal/knowledge"
	"ideaforge/internal/llm"
	"ideaforge/internal/logging"
	"ideaforge/internal/research"
	"ideaforge/internal/session"
)

// conversationKey is the session metadata key holding the brainstorm
// transcript.
const conversationKey = "conversation"

// Engine runs the staged drafting workflow over a session: brainstorm
// conversation, per-stage document drafting and revision, stage approval,
// and finally the research run.
type Engine struct {
	sessions session.Store
	docs     *document.DirStore
	bus      *event.Bus
	client   llm.Client
	logger   *logging.Logger

	researchCfg research.Config
}

// NewEngine builds a workflow engine. A nil logger disables logging and a
// zero research config falls back to research.DefaultConfig.
func NewEngine(sessions session.Store, docs *document.DirStore, bus *event.Bus, client llm.Client, logger *logging.Logger, researchCfg research.Config) *Engine {
	if logger == nil {
		logger = logging.NopLogger()
	}
	if researchCfg.FoundationAgents == 0 {
		researchCfg = research.DefaultConfig()
	}
	return &Engine{
		sessions:    sessions,
		docs:        docs,
		bus:         bus,
		client:      client,
		logger:      logger,
		researchCfg: researchCfg,
	}
}

// StartBrainstorm opens the brainstorm conversation for a session with the
// given topic and returns the analyst's opening reply.
func (e *Engine) StartBrainstorm(ctx context.Context, sessionID, topic string) (string, error) {
	s, err := e.sessions.Load(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if Stage(s.Stage) != StageBrainstorm {
		return "", errors.NewWorkflowError("brainstorming is only available before the vision stage", errors.ErrWrongStage).
			WithStage(s.Stage)
	}

	kickoff := kickoffMessage(topic)
	reply, err := e.generate(ctx, analystSystemPrompt, kickoff, nil)
	if err != nil {
		return "", err
	}

	s.SetMetadata("topic", topic)
	s.SetMetadata(conversationKey, appendTurns("", kickoff, reply))
	if err := e.sessions.Save(ctx, s); err != nil {
		return "", err
	}

	e.logger.WithSession(sessionID).Info("brainstorm started", "topic", topic)
	return reply, nil
}

// Converse continues the brainstorm conversation with a user message and
// returns the analyst's reply. Only valid in the brainstorm stage.
func (e *Engine) Converse(ctx context.Context, sessionID, userMessage string) (string, error) {
	s, err := e.sessions.Load(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if Stage(s.Stage) != StageBrainstorm {
		return "", errors.NewWorkflowError("the conversation closes once the vision stage begins", errors.ErrWrongStage).
			WithStage(s.Stage)
	}

	conversation := s.Metadata[conversationKey]
	reply, err := e.generate(ctx, analystSystemPrompt, userMessage, map[string]string{
		"conversation so far": conversation,
	})
	if err != nil {
		return "", err
	}

	s.SetMetadata(conversationKey, appendTurns(conversation, userMessage, reply))
	if err := e.sessions.Save(ctx, s); err != nil {
		return "", err
	}
	return reply, nil
}

// Draft generates the document for the session's current stage, writes it
// to the document store, and records its path on the session. It returns
// the written path.
func (e *Engine) Draft(ctx context.Context, sessionID string) (string, error) {
	s, err := e.sessions.Load(ctx, sessionID)
	if err != nil {
		return "", err
	}
	stage := Stage(s.Stage)
	docType, ok := stage.DocumentType()
	if !ok {
		return "", errors.NewWorkflowError("no document is drafted at this stage", errors.ErrWrongStage).
			WithStage(s.Stage)
	}

	var content string
	switch stage {
	case StageVision:
		content, err = e.generate(ctx, analystSystemPrompt, visionDraftPrompt, map[string]string{
			"brainstorm conversation": s.Metadata[conversationKey],
		})
	case StagePRD:
		var vision string
		vision, err = e.documentContent(s, document.TypeVision)
		if err != nil {
			return "", err
		}
		content, err = e.generate(ctx, plannerSystemPrompt, prdDraftPrompt, map[string]string{
			"vision document": vision,
		})
	case StageArchitecture:
		var vision, prd string
		vision, err = e.documentContent(s, document.TypeVision)
		if err != nil {
			return "", err
		}
		prd, err = e.documentContent(s, document.TypePRD)
		if err != nil {
			return "", err
		}
		content, err = e.generate(ctx, architectSystemPrompt, architectureDraftPrompt, map[string]string{
			"vision document": vision,
			"prd":             prd,
		})
		if err == nil {
			content = checklistOpenDecisions(content)
		}
	}
	if err != nil {
		return "", err
	}

	return e.writeDocument(ctx, s, docType, content)
}

// Revise regenerates the current stage's document from reviewer feedback.
// It reads the document from disk first, so edits made outside the tool
// are part of what gets revised.
func (e *Engine) Revise(ctx context.Context, sessionID, feedback string) (string, error) {
	s, err := e.sessions.Load(ctx, sessionID)
	if err != nil {
		return "", err
	}
	stage := Stage(s.Stage)
	docType, ok := stage.DocumentType()
	if !ok {
		return "", errors.NewWorkflowError("no document to revise at this stage", errors.ErrWrongStage).
			WithStage(s.Stage)
	}
	current, err := e.documentContent(s, docType)
	if err != nil {
		return "", err
	}

	content, err := e.generate(ctx, stageSystemPrompt(stage), revisePrompt(feedback), map[string]string{
		"current document": current,
	})
	if err != nil {
		return "", err
	}
	if stage == StageArchitecture {
		content = checklistOpenDecisions(content)
	}

	return e.writeDocument(ctx, s, docType, content)
}

// Approve advances the session to the next stage. Document stages require
// their document to have been drafted first.
func (e *Engine) Approve(ctx context.Context, sessionID string) (Stage, error) {
	s, err := e.sessions.Load(ctx, sessionID)
	if err != nil {
		return "", err
	}
	stage := Stage(s.Stage)
	next, ok := stage.Next()
	if !ok {
		return "", errors.NewWorkflowError("the final stage has no successor", errors.ErrWorkflowComplete).
			WithStage(s.Stage)
	}
	if docType, drafts := stage.DocumentType(); drafts {
		if s.Documents[docType.String()] == "" {
			return "", errors.NewWorkflowError("draft the stage document before approving", errors.ErrDocumentNotFound).
				WithStage(s.Stage).
				WithDocument(docType.String())
		}
	}

	s.AdvanceStage(next.String())
	if err := e.sessions.Save(ctx, s); err != nil {
		return "", err
	}
	e.publish(event.NewStageChangedEvent(sessionID, stage.String(), next.String()))
	e.logger.WithSession(sessionID).Info("stage approved", "from", stage.String(), "to", next.String())
	return next, nil
}

// RunResearch runs the full research fleet over the approved vision and
// PRD, writes the report document, and records the research state and
// knowledge snapshot on the session. It returns the report path.
func (e *Engine) RunResearch(ctx context.Context, sessionID string) (string, error) {
	s, err := e.sessions.Load(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if Stage(s.Stage) != StageResearch {
		return "", errors.NewWorkflowError("research runs after the architecture document is approved", errors.ErrWrongStage).
			WithStage(s.Stage)
	}

	vision, err := e.documentContent(s, document.TypeVision)
	if err != nil {
		return "", err
	}
	prd, err := e.documentContent(s, document.TypePRD)
	if err != nil {
		return "", err
	}
	requirements := "# Vision\n\n" + vision + "\n\n# Requirements\n\n" + prd

	logger := e.logger.WithSession(sessionID)
	repo := knowledge.NewRepository(e.bus, logger)
	coord := research.NewCoordinator(e.client, repo, e.bus, logger, e.researchCfg)
	if err := coord.SpawnAgents(); err != nil {
		return "", err
	}
	if err := coord.InitAgents(ctx); err != nil {
		return "", err
	}
	report, err := coord.Run(ctx, requirements)
	if err != nil {
		return "", err
	}

	path, err := e.writeDocument(ctx, s, document.TypeResearchReport, report)
	if err != nil {
		return "", err
	}

	status := coord.Status()
	snapshot, err := repo.Snapshot()
	if err != nil {
		return "", err
	}
	s.Research = &session.ResearchState{
		FoundationDone:  status.FoundationDone,
		PathsDone:       status.PathsDone,
		IntegrationDone: status.IntegrationDone,
		SynthesisDone:   status.SynthesisDone,
		ReportPath:      path,
		Repository:      snapshot,
	}
	if err := e.sessions.Save(ctx, s); err != nil {
		return "", err
	}

	logger.Info("research complete",
		"report", path,
		"tasks_completed", status.TasksCompleted,
		"tasks_failed", status.TasksFailed)
	return path, nil
}

// -----------------------------------------------------------------------
// Internals
// -----------------------------------------------------------------------

func (e *Engine) generate(ctx context.Context, system, prompt string, contextSections map[string]string) (string, error) {
	resp, err := e.client.Generate(ctx, llm.Request{
		System:  system,
		Prompt:  prompt,
		Context: contextSections,
	})
	if err != nil {
		return "", errors.Wrap(err, "workflow generation")
	}
	return resp.Text, nil
}

// writeDocument persists the document, records its path on the session,
// and announces the draft.
func (e *Engine) writeDocument(ctx context.Context, s *session.Session, docType document.Type, content string) (string, error) {
	path, err := e.docs.Write(document.Document{
		Type:    docType,
		Title:   documentTitles[docType],
		Content: content,
	})
	if err != nil {
		return "", err
	}
	s.SetDocument(docType.String(), path)
	if err := e.sessions.Save(ctx, s); err != nil {
		return "", err
	}
	e.publish(event.NewDocumentDraftedEvent(s.ID, docType.String(), path))
	return path, nil
}

// documentContent reads a previously drafted document's body from disk.
func (e *Engine) documentContent(s *session.Session, docType document.Type) (string, error) {
	path := s.Documents[docType.String()]
	if path == "" {
		return "", errors.NewWorkflowError("required document has not been drafted", errors.ErrDocumentNotFound).
			WithStage(s.Stage).
			WithDocument(docType.String())
	}
	doc, err := e.docs.Read(path)
	if err != nil {
		return "", err
	}
	return doc.Content, nil
}

func (e *Engine) publish(ev event.Event) {
	if e.bus != nil {
		e.bus.Publish(ev)
	}
}

// stageSystemPrompt maps a drafting stage to its role prompt.
func stageSystemPrompt(stage Stage) string {
	switch stage {
	case StagePRD:
		return plannerSystemPrompt
	case StageArchitecture:
		return architectSystemPrompt
	default:
		return analystSystemPrompt
	}
}

// appendTurns extends the stored transcript with one user/analyst exchange.
func appendTurns(conversation, userMessage, reply string) string {
	turn := "User: " + userMessage + "\n\nAnalyst: " + reply
	if conversation == "" {
		return turn
	}
	return conversation + "\n\n" + turn
}

// checklistOpenDecisions turns the bullets under the "Open Decisions"
// heading into an unchecked task list so reviewers can tick them off.
func checklistOpenDecisions(content string) string {
	lines := strings.Split(content, "\n")
	in := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			in = strings.Contains(strings.ToLower(trimmed), "open decisions")
			continue
		}
		if !in {
			continue
		}
		if rest, ok := strings.CutPrefix(trimmed, "- "); ok && !strings.HasPrefix(rest, "[ ]") && !strings.HasPrefix(rest, "[x]") {
			indent := line[:strings.Index(line, "-")]
			lines[i] = indent + "- [ ] " + rest
		}
	}
	return strings.Join(lines, "\n")
}
