package cmd

import (
	"context"
	"fmt"
	"os"

	"ideaforge/internal/config"
	"ideaforge/internal/document"
	"ideaforge/internal/event"
	"ideaforge/internal/llm"
	"ideaforge/internal/logging"
	"ideaforge/internal/research"
	"ideaforge/internal/session"
	"ideaforge/internal/workflow"
)

// app holds the wired dependencies shared by every command.
type app struct {
	cfg      *config.Config
	logger   *logging.Logger
	bus      *event.Bus
	sessions session.Store
	docs     *document.DirStore
}

// newApp loads configuration and wires the stores. It does not build an
// LLM client; commands that generate text call engine.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.NopLogger()
	if cfg.Logging.Enabled {
		logger, err = logging.NewLogger(cfg.Logging.File, cfg.Logging.Level)
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	baseDir := cfg.Workflow.ResolveBaseDir(cwd)
	sessions, err := session.NewFileStore(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	docs, err := document.NewDirStore(cfg.Workflow.ResolveOutputDir(baseDir))
	if err != nil {
		return nil, fmt.Errorf("failed to open document store: %w", err)
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		bus:      event.NewBus(),
		sessions: sessions,
		docs:     docs,
	}, nil
}

func (a *app) close() {
	_ = a.logger.Close()
}

// engine builds the workflow engine backed by the configured Gemini model.
func (a *app) engine(ctx context.Context) (*workflow.Engine, error) {
	client, err := llm.NewGeminiClient(ctx, a.cfg.LLM.APIKey(),
		llm.WithModel(a.cfg.LLM.Model),
		llm.WithTemperature(float32(a.cfg.LLM.Temperature)),
		llm.WithMaxOutputTokens(int32(a.cfg.LLM.MaxTokens)),
		llm.WithTimeout(a.cfg.LLM.Timeout()),
		llm.WithLogger(a.logger),
	)
	if err != nil {
		return nil, err
	}
	return workflow.NewEngine(a.sessions, a.docs, a.bus, client, a.logger, a.researchConfig()), nil
}

// offlineEngine builds an engine without an LLM client, for commands that
// never generate text.
func (a *app) offlineEngine() *workflow.Engine {
	return workflow.NewEngine(a.sessions, a.docs, a.bus, nil, a.logger, a.researchConfig())
}

func (a *app) researchConfig() research.Config {
	return research.Config{
		FoundationAgents:  a.cfg.Research.FoundationAgents,
		PathAgents:        a.cfg.Research.PathAgents,
		IntegrationAgents: a.cfg.Research.IntegrationAgents,
		DebateWindow:      a.cfg.Research.DebateWindow(),
		TaskTimeout:       a.cfg.Research.TaskTimeout(),
	}
}

// session resolves the target session: the --session flag when given,
// otherwise the current session marker.
func (a *app) session(ctx context.Context) (*session.Session, error) {
	if sessionID != "" {
		return a.sessions.Load(ctx, sessionID)
	}
	id, err := a.sessions.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("no session selected: %w (run 'ideaforge new <project>' or pass --session)", err)
	}
	return a.sessions.Load(ctx, id)
}
