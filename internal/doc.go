// Package internal documents the Gatherline server internals.
//
// The internal tree is organized by responsibility:
// - api: HTTP handlers, middleware, problem responses, and routing
// - domain: entity models, repository contracts, mutation dispatchers, relations
// - storage: the in-memory store and seed loading
// - bus: topic fan-out between dispatchers and live channels
// - live: caller-facing subscription channels over the bus
// - config, metrics: shared infrastructure
//
// Code in internal/ is not meant for external import.
package internal
