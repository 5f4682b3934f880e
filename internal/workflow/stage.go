// Package workflow drives a session through the staged drafting process:
// brainstorm the idea, then draft and approve the vision, PRD, and
// architecture documents, then run the research fleet over the result.
package workflow

import "ideaforge/internal/document"

// Stage is one step of the drafting workflow.
type Stage string

const (
	StageBrainstorm   Stage = "brainstorm"
	StageVision       Stage = "vision"
	StagePRD          Stage = "prd"
	StageArchitecture Stage = "architecture"
	StageResearch     Stage = "research"
)

// Stages returns all workflow stages in order.
func Stages() []Stage {
	return []Stage{StageBrainstorm, StageVision, StagePRD, StageArchitecture, StageResearch}
}

// IsValid returns true if the stage is a known workflow stage.
func (s Stage) IsValid() bool {
	switch s {
	case StageBrainstorm, StageVision, StagePRD, StageArchitecture, StageResearch:
		return true
	default:
		return false
	}
}

// Next returns the stage that follows, or false at the terminal research
// stage.
func (s Stage) Next() (Stage, bool) {
	switch s {
	case StageBrainstorm:
		return StageVision, true
	case StageVision:
		return StagePRD, true
	case StagePRD:
		return StageArchitecture, true
	case StageArchitecture:
		return StageResearch, true
	default:
		return "", false
	}
}

// String returns the string form of the stage.
func (s Stage) String() string {
	return string(s)
}

// DocumentType returns the document drafted at this stage, or false for
// stages that do not draft one.
func (s Stage) DocumentType() (document.Type, bool) {
	switch s {
	case StageVision:
		return document.TypeVision, true
	case StagePRD:
		return document.TypePRD, true
	case StageArchitecture:
		return document.TypeArchitecture, true
	default:
		return "", false
	}
}

// documentTitles gives each drafted document its on-disk title (and
// therefore its slug).
var documentTitles = map[document.Type]string{
	document.TypeVision:         "Vision Document",
	document.TypePRD:            "PRD",
	document.TypeArchitecture:   "Architecture Document",
	document.TypeResearchReport: "Research Report",
}
