package knowledge

import (
	"sync"
	"time"

	"ideaforge/internal/errors"
	"ideaforge/internal/event"
	"ideaforge/internal/logging"
)

// Repository is the shared in-memory research store. All research agents
// read from and write to a single Repository instance during a run.
//
// Insertion order is preserved for dimensions, paths, opportunities, and
// debates so that reports and prompts are deterministic.
type Repository struct {
	mu     sync.RWMutex
	bus    *event.Bus
	logger *logging.Logger

	dimensions     map[string]*Dimension
	dimensionOrder []string

	choices []FoundationChoice

	paths     map[string]*Path
	pathOrder []string

	opportunities    map[string]*Opportunity
	opportunityOrder []string

	debates     map[string]*Debate
	debateOrder []string

	history []event.Event
}

// NewRepository creates an empty Repository. The bus may be nil, in which
// case mutations are recorded in the event history only.
func NewRepository(bus *event.Bus, logger *logging.Logger) *Repository {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Repository{
		bus:           bus,
		logger:        logger,
		dimensions:    make(map[string]*Dimension),
		paths:         make(map[string]*Path),
		opportunities: make(map[string]*Opportunity),
		debates:       make(map[string]*Debate),
	}
}

// publish records the event in the history and dispatches it on the bus.
// Called with the write lock held so history order matches mutation order.
// Handlers must not call back into the repository; they should read from
// the event payload instead.
func (r *Repository) publish(e event.Event) {
	r.history = append(r.history, e)
	if r.bus != nil {
		r.bus.Publish(e)
	}
}

// -----------------------------------------------------------------------------
// Dimensions
// -----------------------------------------------------------------------------

// AddDimension adds a research dimension. Adding a dimension whose name is
// already present merges the new description, dependencies, and research
// areas into the existing entry and emits a dimension.updated event instead.
func (r *Repository) AddDimension(dim Dimension, addedBy string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.dimensions[dim.Name]; ok {
		if dim.Description != "" {
			existing.Description = dim.Description
		}
		existing.ResearchAreas = mergeStrings(existing.ResearchAreas, dim.ResearchAreas)
		existing.Dependencies = mergeStrings(existing.Dependencies, dim.Dependencies)
		if dim.FoundationImpact != "" {
			existing.FoundationImpact = dim.FoundationImpact
		}
		r.publish(event.NewDimensionUpdatedEvent(dim.Name))
		return
	}

	stored := cloneDimension(&dim)
	r.dimensions[dim.Name] = stored
	r.dimensionOrder = append(r.dimensionOrder, dim.Name)
	r.logger.Debug("dimension added", "dimension", dim.Name, "added_by", addedBy)
	r.publish(event.NewDimensionAddedEvent(dim.Name, addedBy))
}

// UpdateDimension applies the update function to the named dimension under
// the write lock. Returns ErrDimensionNotFound if the name is unknown.
func (r *Repository) UpdateDimension(name string, update func(*Dimension)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dim, ok := r.dimensions[name]
	if !ok {
		return errors.NewRepositoryError("cannot update dimension", errors.ErrDimensionNotFound).
			WithResource("dimension", name)
	}
	update(dim)
	r.publish(event.NewDimensionUpdatedEvent(name))
	return nil
}

// Dimension returns a copy of the named dimension.
func (r *Repository) Dimension(name string) (Dimension, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dim, ok := r.dimensions[name]
	if !ok {
		return Dimension{}, errors.NewRepositoryError("dimension lookup failed", errors.ErrDimensionNotFound).
			WithResource("dimension", name)
	}
	return *cloneDimension(dim), nil
}

// Dimensions returns copies of all dimensions in insertion order.
func (r *Repository) Dimensions() []Dimension {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Dimension, 0, len(r.dimensionOrder))
	for _, name := range r.dimensionOrder {
		result = append(result, *cloneDimension(r.dimensions[name]))
	}
	return result
}

// FoundationDimensions returns copies of all dimensions with no dependencies,
// in insertion order. These are the dimensions debated first.
func (r *Repository) FoundationDimensions() []Dimension {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Dimension
	for _, name := range r.dimensionOrder {
		if dim := r.dimensions[name]; dim.IsFoundation() {
			result = append(result, *cloneDimension(dim))
		}
	}
	return result
}

// Dependents returns the names of dimensions that list the given dimension
// as a dependency, in insertion order.
func (r *Repository) Dependents(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []string
	for _, dimName := range r.dimensionOrder {
		for _, dep := range r.dimensions[dimName].Dependencies {
			if dep == name {
				result = append(result, dimName)
				break
			}
		}
	}
	return result
}

// AddFinding records an agent's finding on a dimension.
// Returns ErrDimensionNotFound if the dimension is unknown.
func (r *Repository) AddFinding(dimension string, finding Finding) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dim, ok := r.dimensions[dimension]
	if !ok {
		return errors.NewRepositoryError("cannot add finding", errors.ErrDimensionNotFound).
			WithResource("dimension", dimension)
	}

	if finding.AddedAt.IsZero() {
		finding.AddedAt = time.Now()
	}
	if dim.Findings == nil {
		dim.Findings = make(map[string]Finding)
	}
	dim.Findings[finding.AgentID] = finding

	r.publish(event.NewFindingAddedEvent(dimension, finding.AgentID, finding.AgentType))
	return nil
}

// AddParadigmFinding records a paradigm agent's view of a dimension.
// Returns ErrDimensionNotFound if the dimension is unknown.
func (r *Repository) AddParadigmFinding(dimension string, finding ParadigmFinding) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dim, ok := r.dimensions[dimension]
	if !ok {
		return errors.NewRepositoryError("cannot add paradigm finding", errors.ErrDimensionNotFound).
			WithResource("dimension", dimension)
	}

	if finding.AddedAt.IsZero() {
		finding.AddedAt = time.Now()
	}
	if dim.ParadigmFindings == nil {
		dim.ParadigmFindings = make(map[ParadigmCategory]ParadigmFinding)
	}
	dim.ParadigmFindings[finding.Paradigm] = finding

	r.publish(event.NewFindingAddedEvent(dimension, "", string(finding.Paradigm)))
	return nil
}

// -----------------------------------------------------------------------------
// Foundation Choices
// -----------------------------------------------------------------------------

// AddFoundationChoice records a selected approach for a dimension.
func (r *Repository) AddFoundationChoice(choice FoundationChoice) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if choice.ChosenAt.IsZero() {
		choice.ChosenAt = time.Now()
	}
	r.choices = append(r.choices, choice)
	r.logger.Debug("foundation choice added",
		"dimension", choice.Dimension, "choice", choice.Choice, "chosen_by", choice.ChosenBy)
	r.publish(event.NewChoiceAddedEvent(choice.Dimension, choice.Choice, choice.ChosenBy))
}

// FoundationChoices returns a copy of all recorded foundation choices in
// the order they were made.
func (r *Repository) FoundationChoices() []FoundationChoice {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]FoundationChoice, len(r.choices))
	copy(result, r.choices)
	return result
}

// ChoiceForDimension returns the most recent foundation choice for the named
// dimension. The second return value is false if no choice has been made.
func (r *Repository) ChoiceForDimension(name string) (FoundationChoice, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.choices) - 1; i >= 0; i-- {
		if r.choices[i].Dimension == name {
			return r.choices[i], true
		}
	}
	return FoundationChoice{}, false
}

// -----------------------------------------------------------------------------
// Paths
// -----------------------------------------------------------------------------

// AddPath adds a research path. Returns an AlreadyExists error if a path
// with the same name is already present.
func (r *Repository) AddPath(path Path) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.paths[path.Name]; ok {
		return errors.NewAlreadyExistsError("path", path.Name)
	}

	r.paths[path.Name] = clonePath(&path)
	r.pathOrder = append(r.pathOrder, path.Name)
	r.publish(event.NewPathAddedEvent(path.Name))
	return nil
}

// UpdatePath applies the update function to the named path under the write
// lock. Returns ErrPathNotFound if the name is unknown.
func (r *Repository) UpdatePath(name string, update func(*Path)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	path, ok := r.paths[name]
	if !ok {
		return errors.NewRepositoryError("cannot update path", errors.ErrPathNotFound).
			WithResource("path", name)
	}
	update(path)
	r.publish(event.NewPathUpdatedEvent(name, path.ExploredBy))
	return nil
}

// Path returns a copy of the named path.
func (r *Repository) Path(name string) (Path, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	path, ok := r.paths[name]
	if !ok {
		return Path{}, errors.NewRepositoryError("path lookup failed", errors.ErrPathNotFound).
			WithResource("path", name)
	}
	return *clonePath(path), nil
}

// Paths returns copies of all paths in insertion order.
func (r *Repository) Paths() []Path {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Path, 0, len(r.pathOrder))
	for _, name := range r.pathOrder {
		result = append(result, *clonePath(r.paths[name]))
	}
	return result
}

// PathsWithChoice returns copies of paths whose foundation choices include
// the given choice for the given dimension.
func (r *Repository) PathsWithChoice(dimension, choice string) []Path {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Path
	for _, name := range r.pathOrder {
		path := r.paths[name]
		if path.FoundationChoices[dimension] == choice {
			result = append(result, *clonePath(path))
		}
	}
	return result
}

// -----------------------------------------------------------------------------
// Opportunities
// -----------------------------------------------------------------------------

// AddOpportunity records a cross-paradigm integration opportunity.
// Returns an AlreadyExists error if the name is already present.
func (r *Repository) AddOpportunity(opp Opportunity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.opportunities[opp.Name]; ok {
		return errors.NewAlreadyExistsError("opportunity", opp.Name)
	}

	r.opportunities[opp.Name] = cloneOpportunity(&opp)
	r.opportunityOrder = append(r.opportunityOrder, opp.Name)
	r.publish(event.NewOpportunityAddedEvent(opp.Name, opp.IdentifiedBy))
	return nil
}

// UpdateOpportunity applies the update function to the named opportunity
// under the write lock. Returns ErrOpportunityNotFound if the name is unknown.
func (r *Repository) UpdateOpportunity(name string, update func(*Opportunity)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	opp, ok := r.opportunities[name]
	if !ok {
		return errors.NewRepositoryError("cannot update opportunity", errors.ErrOpportunityNotFound).
			WithResource("opportunity", name)
	}
	update(opp)
	r.publish(event.NewOpportunityUpdatedEvent(name))
	return nil
}

// Opportunities returns copies of all opportunities in insertion order.
func (r *Repository) Opportunities() []Opportunity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Opportunity, 0, len(r.opportunityOrder))
	for _, name := range r.opportunityOrder {
		result = append(result, *cloneOpportunity(r.opportunities[name]))
	}
	return result
}

// -----------------------------------------------------------------------------
// Event History
// -----------------------------------------------------------------------------

// EventHistory returns a copy of all events recorded by this repository,
// in the order the mutations occurred.
func (r *Repository) EventHistory() []event.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]event.Event, len(r.history))
	copy(result, r.history)
	return result
}

// -----------------------------------------------------------------------------
// Clone helpers
// -----------------------------------------------------------------------------

func cloneDimension(d *Dimension) *Dimension {
	out := *d
	out.ResearchAreas = append([]string(nil), d.ResearchAreas...)
	out.Dependencies = append([]string(nil), d.Dependencies...)
	if d.Findings != nil {
		out.Findings = make(map[string]Finding, len(d.Findings))
		for k, v := range d.Findings {
			v.Technologies = append([]Technology(nil), v.Technologies...)
			out.Findings[k] = v
		}
	}
	if d.ParadigmFindings != nil {
		out.ParadigmFindings = make(map[ParadigmCategory]ParadigmFinding, len(d.ParadigmFindings))
		for k, v := range d.ParadigmFindings {
			v.Technologies = append([]Technology(nil), v.Technologies...)
			out.ParadigmFindings[k] = v
		}
	}
	return &out
}

func clonePath(p *Path) *Path {
	out := *p
	if p.FoundationChoices != nil {
		out.FoundationChoices = make(map[string]string, len(p.FoundationChoices))
		for k, v := range p.FoundationChoices {
			out.FoundationChoices[k] = v
		}
	}
	if p.Dimensions != nil {
		out.Dimensions = make(map[string]PathDimension, len(p.Dimensions))
		for k, v := range p.Dimensions {
			v.Technologies = append([]Technology(nil), v.Technologies...)
			out.Dimensions[k] = v
		}
	}
	out.Technologies = append([]string(nil), p.Technologies...)
	out.TradeOffs = append([]string(nil), p.TradeOffs...)
	if p.Characteristics != nil {
		out.Characteristics = make(map[string]string, len(p.Characteristics))
		for k, v := range p.Characteristics {
			out.Characteristics[k] = v
		}
	}
	return &out
}

func cloneOpportunity(o *Opportunity) *Opportunity {
	out := *o
	out.Technologies = append([]OpportunityTech(nil), o.Technologies...)
	out.Benefits = append([]string(nil), o.Benefits...)
	out.Challenges = append([]string(nil), o.Challenges...)
	return &out
}

func cloneDebate(d *Debate) *Debate {
	out := *d
	out.Contributions = append([]Contribution(nil), d.Contributions...)
	return &out
}

// mergeStrings appends items from extra that are not already in base,
// preserving order.
func mergeStrings(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	for _, s := range base {
		seen[s] = true
	}
	for _, s := range extra {
		if !seen[s] {
			base = append(base, s)
			seen[s] = true
		}
	}
	return base
}
