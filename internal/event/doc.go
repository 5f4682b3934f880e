// Package event provides a pub-sub event bus for decoupled inter-component
// communication in Ideaforge.
//
// This package enables loose coupling between the workflow engine, the
// research coordinator, and the knowledge repository by allowing them to
// communicate through events rather than direct method calls. Components can
// publish events without knowing who will receive them, and subscribe to
// events without knowing who will produce them.
//
// # Main Types
//
//   - [Event]: Interface that all events must implement, providing EventType() and Timestamp()
//   - [Bus]: Synchronous pub-sub event dispatcher with thread-safe operations
//   - [Handler]: Function type for event handlers (func(Event))
//
// # Event Categories
//
// The package defines several categories of events:
//
// Knowledge Repository:
//   - [DimensionAddedEvent], [DimensionUpdatedEvent]: Research dimension changes
//   - [ChoiceAddedEvent]: Foundation choice recorded
//   - [PathAddedEvent], [PathUpdatedEvent]: Research path changes
//   - [OpportunityAddedEvent], [OpportunityUpdatedEvent]: Integration opportunity changes
//   - [FindingAddedEvent]: Agent finding recorded
//
// Debates:
//   - [DebateStartedEvent]: A debate opened on an unresolved dimension
//   - [DebateContributionEvent]: An agent contributed a position
//   - [DebateConcludedEvent]: The synthesis agent concluded the debate
//
// Research Orchestration:
//   - [PhaseChangedEvent]: The coordinator moved to a new research phase
//   - [TaskCompletedEvent]: A dispatched research task finished
//   - [ProgressEvent]: Periodic progress during a phase
//
// Workflow:
//   - [SessionCreatedEvent]: A new drafting session was created
//   - [StageChangedEvent]: A session advanced to the next stage
//   - [DocumentDraftedEvent]: A stage document was drafted or revised
//   - [DocumentChangedEvent]: A drafted document changed on disk
//
// # Thread Safety
//
// The [Bus] type is safe for concurrent use. Multiple goroutines can publish
// and subscribe concurrently. Handlers are called synchronously and protected
// against panics - a panicking handler will not prevent other handlers from
// being called.
//
// # Basic Usage
//
//	bus := event.NewBus()
//
//	// Subscribe to specific event types
//	bus.Subscribe("dimension.added", func(e event.Event) {
//	    added := e.(event.DimensionAddedEvent)
//	    log.Printf("Dimension %s added", added.Dimension)
//	})
//
//	// Subscribe to all events (useful for logging)
//	bus.SubscribeAll(func(e event.Event) {
//	    log.Printf("Event: %s at %v", e.EventType(), e.Timestamp())
//	})
//
//	// Publish events
//	bus.Publish(event.NewDimensionAddedEvent("Data Storage", "foundation-1"))
//
//	// Unsubscribe when done
//	id := bus.Subscribe("debate.concluded", handler)
//	bus.Unsubscribe(id)
//
// # Event Type Naming Convention
//
// Event types follow the pattern "category.action":
//   - dimension.added, dimension.updated, choice.added, finding.added
//   - path.added, path.updated, opportunity.added, opportunity.updated
//   - debate.started, debate.contribution, debate.concluded
//   - research.phase_changed, research.task_completed, research.progress
//   - session.created, stage.changed, document.drafted, document.changed
package event
