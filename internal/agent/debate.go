package agent

import (
	"context"

	"ideaforge/internal/knowledge"
	"ideaforge/internal/message"
)

// debateTopic pulls the debate topic out of a debate_request message,
// preferring the "topic" metadata key and falling back to the body.
func debateTopic(msg message.Message) string {
	if topic, ok := msg.Metadata["topic"].(string); ok && topic != "" {
		return topic
	}
	return msg.Body
}

// contributeToDebate generates a position on the debate topic using the
// given system prompt and records it as a contribution. The debate's
// description, when present, is folded into the prompt as context.
func (b *Base) contributeToDebate(ctx context.Context, system, topic string) error {
	var description string
	if debate, err := b.repo.Debate(topic); err == nil {
		description = debate.Description
	}

	position, err := b.Generate(ctx, system+debateFormatRules,
		debateContributionPrompt(topic, description), nil)
	if err != nil {
		return err
	}

	return b.repo.Contribute(topic, knowledge.Contribution{
		AgentID:   b.id,
		AgentType: b.agentType.String(),
		Content:   position,
	})
}
