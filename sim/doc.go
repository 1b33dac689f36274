// Package sim provides the core discrete-event engine of the queueing
// network simulator: client generators issue requests that traverse a
// randomly chosen switch before one of several stations serves them.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - simulator.go: the virtual clock, the event loop, and topology construction
//   - switch.go: the bounded-capacity resource with pluggable dequeue discipline
//   - generator.go: the client process expressed as scheduled continuations
//
// # Determinism
//
// Everything runs on one logical clock. Events scheduled for the same tick
// execute in scheduling order, and all randomness flows through a seeded
// PartitionedRNG, so a run is exactly reproducible from its Config.
//
// Reporting and rendering live outside this package; consumers read the
// Metrics collector and the Summary only after Run returns.
package sim
