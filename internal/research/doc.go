// Package research orchestrates the multi-agent research run.
//
// The [Coordinator] owns the agent registry, routes inter-agent messages,
// and drives the four phases of a run: foundation analysis, path
// exploration, integration research, and synthesis. Agents within a phase
// run concurrently; a failed task is recorded and logged but does not
// abort its siblings, so a run degrades rather than dies when a single
// generation fails.
package research
