// Package knowledge provides the shared in-memory research repository used
// by the agent fleet during dimensional research.
//
// The [Repository] accumulates research dimensions, foundation choices,
// candidate paths, and integration opportunities as agents produce them, and
// hosts structured debates over unresolved architectural dimensions. Every
// mutation publishes a typed event on the event bus and is appended to an
// internal event history, so observers (the CLI, the workflow engine, tests)
// can follow a research run without polling.
//
// # Concurrency
//
// All Repository methods are safe for concurrent use. Agents run in parallel
// during research phases and write findings as they complete. Accessors
// return copies of internal state; callers can never mutate the repository
// through a returned value.
//
// # Debates
//
// A debate is opened on a topic (one per unresolved foundation dimension),
// collects contributions from agents, and is concluded exactly once by the
// synthesis agent. The lifecycle is strictly active to concluded: starting a
// duplicate active topic, contributing to a concluded debate, or concluding
// a debate with no contributions are all errors.
//
// # Persistence
//
// [Repository.Snapshot] and [Repository.Restore] marshal the complete
// repository state to JSON so a research run can be persisted into the
// owning session and resumed later.
package knowledge
