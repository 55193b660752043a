// Package jobs defines River Queue job types for background maintenance.
//
// River runs only on postgres deployments, where jobs share the database
// that holds the invocation journal.
//
// Import Path: ezcrow.dev/crowdfund/internal/jobs
package jobs
