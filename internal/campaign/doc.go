// Package campaign implements the crowdfunding campaign state engine.
//
// A Contract is a deterministic state machine over one persistent aggregate
// (State) kept in the instance storage of a deployed contract. Every
// operation runs against an Env supplied by the host for a single
// invocation: it loads the aggregate, applies one transition and stores it
// back. The engine never locks, spawns goroutines or retries. Atomicity and
// serialization of invocations are the host's responsibility, and any error
// returned from an operation means the host must discard the invocation's
// writes.
//
// Macro-states are Uninitialized and Initialized. Initialize is the only
// transition between them. Within Initialized, whether the campaign is
// active is derived from the ledger clock and the deadline and only gates
// Donate.
//
// Import Path: ezcrow.dev/crowdfund/internal/campaign
package campaign
