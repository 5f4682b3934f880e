package agent

import (
	"context"
	"strings"
	"testing"

	"ideaforge/internal/errors"
	"ideaforge/internal/knowledge"
	"ideaforge/internal/llm"
	"ideaforge/internal/message"
)

func newTestRepo() *knowledge.Repository {
	return knowledge.NewRepository(nil, nil)
}

func TestTypeIsValid(t *testing.T) {
	tests := []struct {
		agentType Type
		want      bool
	}{
		{TypeFoundation, true},
		{TypeParadigm, true},
		{TypePath, true},
		{TypeIntegration, true},
		{TypeSynthesis, true},
		{Type("manager"), false},
		{Type(""), false},
	}
	for _, tt := range tests {
		if got := tt.agentType.IsValid(); got != tt.want {
			t.Errorf("Type(%q).IsValid() = %v, want %v", tt.agentType, got, tt.want)
		}
	}
}

func TestBaseHandleMessage(t *testing.T) {
	t.Run("dispatches to registered handler", func(t *testing.T) {
		base := NewBase("a-1", TypeFoundation, llm.NewStaticClient("ok"), newTestRepo(), nil)

		var handled message.Message
		base.On(message.TypeStatus, func(ctx context.Context, msg message.Message) error {
			handled = msg
			return nil
		})

		msg := message.New("a-2", "a-1", message.TypeStatus, "halfway done")
		if err := base.HandleMessage(context.Background(), msg); err != nil {
			t.Fatalf("HandleMessage failed: %v", err)
		}
		if handled.Body != "halfway done" {
			t.Errorf("handled body = %q, want %q", handled.Body, "halfway done")
		}
	})

	t.Run("drops messages with no handler", func(t *testing.T) {
		base := NewBase("a-1", TypeFoundation, llm.NewStaticClient("ok"), newTestRepo(), nil)
		msg := message.New("a-2", "a-1", message.TypeQuestion, "anyone?")
		if err := base.HandleMessage(context.Background(), msg); err != nil {
			t.Errorf("unhandled message type should not error, got %v", err)
		}
	})

	t.Run("rejects unknown message types", func(t *testing.T) {
		base := NewBase("a-1", TypeFoundation, llm.NewStaticClient("ok"), newTestRepo(), nil)
		msg := message.Message{From: "a-2", To: "a-1", Type: "telepathy"}
		err := base.HandleMessage(context.Background(), msg)
		if !errors.Is(err, errors.ErrUnknownMessageType) {
			t.Errorf("error = %v, want ErrUnknownMessageType", err)
		}
	})
}

func TestBaseGenerate(t *testing.T) {
	client := llm.NewStaticClient("generated text")
	base := NewBase("a-1", TypePath, client, newTestRepo(), nil)

	got, err := base.Generate(context.Background(), "system prompt", "user prompt", nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "generated text" {
		t.Errorf("Generate() = %q, want %q", got, "generated text")
	}
	if !strings.Contains(base.LastPrompt(), "system prompt") {
		t.Error("LastPrompt() should include the system prompt")
	}
	if !strings.Contains(base.LastPrompt(), "user prompt") {
		t.Error("LastPrompt() should include the user prompt")
	}
}

func TestBaseGenerateError(t *testing.T) {
	client := llm.NewStaticClient("x").Fail(errors.ErrGenerationFailed)
	base := NewBase("a-1", TypePath, client, newTestRepo(), nil)

	text, err := base.Generate(context.Background(), "", "prompt", nil)
	if !errors.Is(err, errors.ErrGenerationFailed) {
		t.Errorf("error = %v, want ErrGenerationFailed", err)
	}
	if text != "" {
		t.Errorf("failed Generate returned text %q, want empty", text)
	}
}
