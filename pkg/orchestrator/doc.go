// Package orchestrator wires a schema into a running form session: form
// synthesis, the output log, the run dispatcher and the frontend registry.
// Every collaborator can be injected through options; missing ones fall back to
// the built-in implementations so a single New call is enough to start.
package orchestrator
