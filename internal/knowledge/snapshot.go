package knowledge

import (
	"encoding/json"

	"ideaforge/internal/errors"
)

// snapshot is the JSON shape of a persisted repository.
type snapshot struct {
	Dimensions    []Dimension        `json:"dimensions,omitempty"`
	Choices       []FoundationChoice `json:"foundation_choices,omitempty"`
	Paths         []Path             `json:"paths,omitempty"`
	Opportunities []Opportunity      `json:"opportunities,omitempty"`
	Debates       []Debate           `json:"debates,omitempty"`
}

// Snapshot marshals the complete repository state to JSON for persistence
// into the owning session. The event history is not part of the snapshot.
func (r *Repository) Snapshot() ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := snapshot{
		Choices: append([]FoundationChoice(nil), r.choices...),
	}
	for _, name := range r.dimensionOrder {
		snap.Dimensions = append(snap.Dimensions, *cloneDimension(r.dimensions[name]))
	}
	for _, name := range r.pathOrder {
		snap.Paths = append(snap.Paths, *clonePath(r.paths[name]))
	}
	for _, name := range r.opportunityOrder {
		snap.Opportunities = append(snap.Opportunities, *cloneOpportunity(r.opportunities[name]))
	}
	for _, topic := range r.debateOrder {
		snap.Debates = append(snap.Debates, *cloneDebate(r.debates[topic]))
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshal repository snapshot")
	}
	return data, nil
}

// Restore replaces the repository state with the contents of a snapshot
// produced by Snapshot. Restoring does not publish events or extend the
// event history; the snapshot describes state, not mutations.
func (r *Repository) Restore(data []byte) error {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return errors.Wrap(err, "unmarshal repository snapshot")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.dimensions = make(map[string]*Dimension, len(snap.Dimensions))
	r.dimensionOrder = r.dimensionOrder[:0]
	for i := range snap.Dimensions {
		dim := snap.Dimensions[i]
		r.dimensions[dim.Name] = &dim
		r.dimensionOrder = append(r.dimensionOrder, dim.Name)
	}

	r.choices = append(r.choices[:0], snap.Choices...)

	r.paths = make(map[string]*Path, len(snap.Paths))
	r.pathOrder = r.pathOrder[:0]
	for i := range snap.Paths {
		path := snap.Paths[i]
		r.paths[path.Name] = &path
		r.pathOrder = append(r.pathOrder, path.Name)
	}

	r.opportunities = make(map[string]*Opportunity, len(snap.Opportunities))
	r.opportunityOrder = r.opportunityOrder[:0]
	for i := range snap.Opportunities {
		opp := snap.Opportunities[i]
		r.opportunities[opp.Name] = &opp
		r.opportunityOrder = append(r.opportunityOrder, opp.Name)
	}

	r.debates = make(map[string]*Debate, len(snap.Debates))
	r.debateOrder = r.debateOrder[:0]
	for i := range snap.Debates {
		debate := snap.Debates[i]
		r.debates[debate.Topic] = &debate
		r.debateOrder = append(r.debateOrder, debate.Topic)
	}

	return nil
}
