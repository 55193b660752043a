// Package host runs the campaign contract outside a blockchain.
//
// It supplies what a contract host normally provides: a transactional
// key-value Backend, the invocation signer set, a ledger clock and a token
// ledger per asset. Runtime ties them together so that each invocation
// executes in exactly one backend transaction, committed only when the
// contract returns without error.
//
// Import Path: ezcrow.dev/crowdfund/internal/host
package host
