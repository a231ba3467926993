// Package engine is the orchestrator between the settings, the three provider
// clients and the frontends. It reads a settings snapshot per operation,
// dispatches to the provider selected there, echoes the effective model
// selection back into the settings, and guards scoring so that only one
// attempt is dispatching at a time. Frontends observe activity through an
// EventBus.
package engine
