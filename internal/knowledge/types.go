package knowledge

import "time"

// ParadigmCategory classifies a technology paradigm by maturity and approach.
type ParadigmCategory string

const (
	// ParadigmEstablished covers battle-tested, decades-old technology.
	ParadigmEstablished ParadigmCategory = "established"

	// ParadigmMainstream covers widely adopted current-generation technology.
	ParadigmMainstream ParadigmCategory = "mainstream"

	// ParadigmCuttingEdge covers recent technology with growing adoption.
	ParadigmCuttingEdge ParadigmCategory = "cutting_edge"

	// ParadigmExperimental covers research-stage or pre-1.0 technology.
	ParadigmExperimental ParadigmCategory = "experimental"

	// ParadigmCrossParadigm covers approaches that combine multiple paradigms.
	ParadigmCrossParadigm ParadigmCategory = "cross_paradigm"

	// ParadigmFirstPrinciples covers ground-up approaches that ignore convention.
	ParadigmFirstPrinciples ParadigmCategory = "first_principles"
)

// Paradigms returns all paradigm categories in canonical order.
func Paradigms() []ParadigmCategory {
	return []ParadigmCategory{
		ParadigmEstablished,
		ParadigmMainstream,
		ParadigmCuttingEdge,
		ParadigmExperimental,
		ParadigmCrossParadigm,
		ParadigmFirstPrinciples,
	}
}

// IsValid returns true if the category is one of the known paradigms.
func (p ParadigmCategory) IsValid() bool {
	switch p {
	case ParadigmEstablished, ParadigmMainstream, ParadigmCuttingEdge,
		ParadigmExperimental, ParadigmCrossParadigm, ParadigmFirstPrinciples:
		return true
	default:
		return false
	}
}

// String returns the string form of the category.
func (p ParadigmCategory) String() string {
	return string(p)
}

// Technology describes a single technology surfaced during research.
type Technology struct {
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Strengths      []string         `json:"strengths,omitempty"`
	Limitations    []string         `json:"limitations,omitempty"`
	Integrations   []string         `json:"integrations,omitempty"`
	Paradigm       ParadigmCategory `json:"paradigm,omitempty"`
	RelevanceScore float64          `json:"relevance_score"`
	Complexity     string           `json:"complexity,omitempty"`
}

// Finding is an agent's research result for a single dimension.
type Finding struct {
	AgentID      string       `json:"agent_id"`
	AgentType    string       `json:"agent_type"`
	Summary      string       `json:"summary"`
	Technologies []Technology `json:"technologies,omitempty"`
	AddedAt      time.Time    `json:"added_at"`
}

// ParadigmFinding is a paradigm agent's view of a dimension.
type ParadigmFinding struct {
	Paradigm     ParadigmCategory `json:"paradigm"`
	Summary      string           `json:"summary"`
	Technologies []Technology     `json:"technologies,omitempty"`
	AddedAt      time.Time        `json:"added_at"`
}

// Dimension is a named aspect of a system design that agents research and
// debate, such as "Data Storage" or "Deployment Model".
type Dimension struct {
	Name             string                               `json:"name"`
	Description      string                               `json:"description"`
	ResearchAreas    []string                             `json:"research_areas,omitempty"`
	Dependencies     []string                             `json:"dependencies,omitempty"`
	FoundationImpact string                               `json:"foundation_impact,omitempty"` // High, Medium, or Low
	Findings         map[string]Finding                   `json:"findings,omitempty"`          // keyed by agent ID
	ParadigmFindings map[ParadigmCategory]ParadigmFinding `json:"paradigm_findings,omitempty"`
	Completed        bool                                 `json:"completed"`
}

// IsFoundation returns true if the dimension has no dependencies and must
// therefore be decided before dependent dimensions can be researched.
func (d Dimension) IsFoundation() bool {
	return len(d.Dependencies) == 0
}

// FoundationChoice records a selected approach for a foundation dimension.
type FoundationChoice struct {
	Dimension    string    `json:"dimension"`
	Choice       string    `json:"choice"`
	Rationale    string    `json:"rationale,omitempty"`
	ChosenBy     string    `json:"chosen_by"`
	Paradigm     string    `json:"paradigm,omitempty"`
	Implications []string  `json:"implications,omitempty"`
	Score        float64   `json:"score,omitempty"`
	ChosenAt     time.Time `json:"chosen_at"`
}

// PathDimension holds a path's per-dimension exploration result.
type PathDimension struct {
	Technologies []Technology `json:"technologies,omitempty"`
	Notes        string       `json:"notes,omitempty"`
}

// Path is a coherent combination of foundation choices explored end-to-end.
type Path struct {
	Name              string                   `json:"name"`
	Description       string                   `json:"description"`
	FoundationChoices map[string]string        `json:"foundation_choices,omitempty"` // dimension -> choice
	Dimensions        map[string]PathDimension `json:"dimensions,omitempty"`
	Technologies      []string                 `json:"technologies,omitempty"`
	TradeOffs         []string                 `json:"trade_offs,omitempty"`
	Characteristics   map[string]string        `json:"characteristics,omitempty"`
	ExploredBy        string                   `json:"explored_by,omitempty"`
}

// OpportunityTech names a technology participating in an integration
// opportunity together with the paradigm it comes from.
type OpportunityTech struct {
	Name     string `json:"name"`
	Paradigm string `json:"paradigm"`
}

// Opportunity is a cross-paradigm integration identified by integration agents.
type Opportunity struct {
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Paradigms      [2]string         `json:"paradigms"`
	Technologies   []OpportunityTech `json:"technologies,omitempty"`
	Benefits       []string          `json:"benefits,omitempty"`
	Challenges     []string          `json:"challenges,omitempty"`
	Approach       string            `json:"approach,omitempty"`
	PotentialScore float64           `json:"potential_score"`
	Complexity     string            `json:"complexity,omitempty"`
	IdentifiedBy   string            `json:"identified_by,omitempty"`
}

// DebateStatus is the lifecycle state of a debate.
type DebateStatus string

const (
	// DebateActive means the debate is accepting contributions.
	DebateActive DebateStatus = "active"

	// DebateConcluded means the debate has been resolved.
	DebateConcluded DebateStatus = "concluded"
)

// Contribution is a single agent position within a debate.
type Contribution struct {
	AgentID   string    `json:"agent_id"`
	AgentType string    `json:"agent_type"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Debate is a structured exchange between agents over an unresolved
// architectural dimension, concluded by the synthesis agent.
type Debate struct {
	Topic         string         `json:"topic"`
	Description   string         `json:"description"`
	Status        DebateStatus   `json:"status"`
	Contributions []Contribution `json:"contributions,omitempty"`
	Conclusion    string         `json:"conclusion,omitempty"`
	StartedAt     time.Time      `json:"started_at"`
	ConcludedAt   time.Time      `json:"concluded_at,omitzero"`
}
