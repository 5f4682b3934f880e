// Package agent implements the research agent fleet.
//
// Five roles cooperate through the shared knowledge repository: foundation
// agents break requirements into dimensions, paradigm agents research each
// dimension from a fixed technological viewpoint, path agents explore
// coherent combinations of foundation choices, integration agents look for
// cross-paradigm combinations, and the synthesis agent concludes debates
// and writes the final report.
//
// Every agent embeds [Base], which owns the LLM client, the repository
// handle, and the inter-agent message handler map. Model responses are
// free-form markdown; agents extract structure from them with the parse
// package and never fail a run because a response was loosely formatted.
package agent
