// Package handlers implements the crowdfund HTTP contract surface.
//
// Server satisfies the oapi-codegen generated ServerInterface. Route
// registration and parameter binding are done by
// generated.RegisterHandlersWithOptions. Handlers decode bodies, call the
// ContractService and attach failures with c.Error; middleware.ErrorHandler
// renders them.
//
// Import Path: ezcrow.dev/crowdfund/internal/api/handlers
package handlers

import (
	"ezcrow.dev/crowdfund/internal/api/generated"
	"ezcrow.dev/crowdfund/internal/audit"
	"ezcrow.dev/crowdfund/internal/usecase"
)

// Compile-time check: Server must implement generated.ServerInterface.
var _ generated.ServerInterface = (*Server)(nil)

// Server implements all API handlers.
type Server struct {
	contract *usecase.ContractService
	journal  *audit.Journal
}

// ServerDeps holds all dependencies for creating a Server.
type ServerDeps struct {
	Contract *usecase.ContractService
	Journal  *audit.Journal
}

// NewServer creates a new Server with all dependencies.
func NewServer(deps ServerDeps) *Server {
	return &Server{
		contract: deps.Contract,
		journal:  deps.Journal,
	}
}
