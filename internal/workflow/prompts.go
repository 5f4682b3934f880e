package workflow

import "fmt"

// Role system prompts for the drafting agents. These agents are plain
// text-generation consumers, distinct from the research fleet.

const analystSystemPrompt = `You are a business analyst helping someone turn a raw idea into a concrete
project. In conversation, ask sharp questions, challenge vague claims, and
summarize what has been agreed so far. When asked to draft the vision
document, write it from the conversation, not from your own preferences.`

const plannerSystemPrompt = `You are a product planner. You turn an agreed vision into a product
requirements document: concrete user stories, prioritized requirements,
and measurable success criteria. Stay inside the vision's scope; flag
anything the vision left undecided instead of inventing an answer.`

const architectSystemPrompt = `You are a software architect. You turn a vision and PRD into an
architecture document: components, data flow, and the key technical
decisions with their alternatives. For every decision you cannot settle
from the inputs, state it plainly as an open decision.`

// kickoffMessage opens every brainstorm conversation.
func kickoffMessage(topic string) string {
	return fmt.Sprintf(
		"I want to brainstorm about this idea: %s. Help me refine this idea into a concrete project.",
		topic)
}

const visionDraftPrompt = `Draft the vision document for this project from the brainstorm
conversation. Use exactly this structure, as markdown headings:

## Overview
## Problem Statement
## Solution Description
## Features
## Technical Requirements
## Next Steps`

const prdDraftPrompt = `Draft the product requirements document for this project from the vision
document. Cover user stories, functional requirements, non-functional
requirements, and success criteria.`

const architectureDraftPrompt = `Draft the architecture document for this project from the vision and PRD.
Cover the component breakdown, data flow, and technology decisions. List
every unsettled technical decision under a heading "Open Decisions" as a
bullet list.`

func revisePrompt(feedback string) string {
	return fmt.Sprintf("Please revise the document based on this feedback: %s", feedback)
}
