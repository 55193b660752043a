package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ezcrow.dev/crowdfund/internal/api/generated"
	"ezcrow.dev/crowdfund/internal/api/middleware"
	"ezcrow.dev/crowdfund/internal/audit"
	apperrors "ezcrow.dev/crowdfund/internal/pkg/errors"
	"ezcrow.dev/crowdfund/internal/pkg/logger"
)

const (
	defaultInvocationLimit = 100
	maxInvocationLimit     = 1000
)

// Mint handles POST /admin/token/mint.
func (s *Server) Mint(c *gin.Context) {
	var req mintRequest
	if !bind(c, &req) {
		return
	}
	to, ok := address(c, "to", req.To)
	if !ok {
		return
	}
	operator := middleware.GetSubject(c.Request.Context())
	bal, err := s.contract.Mint(c.Request.Context(), operator, to, *req.Amount)
	if err != nil {
		_ = c.Error(err)
		return
	}
	logger.Info("Tokens minted",
		zap.String("operator", operator),
		zap.String("to", string(to)),
		zap.String("amount", req.Amount.String()),
	)
	c.JSON(http.StatusOK, balanceResponse(to, s.contract.TokenAddress(), bal))
}

// ListInvocations handles GET /admin/invocations.
func (s *Server) ListInvocations(c *gin.Context, params generated.ListInvocationsParams) {
	limit := defaultInvocationLimit
	if params.Limit != nil {
		if n := *params.Limit; n < 1 || n > maxInvocationLimit {
			_ = c.Error(apperrors.BadRequest(apperrors.CodeInvalidRequest, "limit must be between 1 and 1000"))
			return
		}
		limit = *params.Limit
	}
	entries, err := s.journal.List(c.Request.Context(), limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if entries == nil {
		entries = []audit.Entry{}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// VerifyInvocations handles GET /admin/invocations/verify.
func (s *Server) VerifyInvocations(c *gin.Context) {
	rep, err := s.journal.Verify(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	if !rep.Valid {
		logger.Error("Invocation journal chain broken",
			zap.Int64("broken_seq", rep.BrokenSeq),
			zap.String("reason", rep.Reason),
		)
		_ = c.Error(apperrors.Conflict(apperrors.CodeJournalBroken, "invocation journal hash chain is broken").
			WithParams(map[string]interface{}{
				"checked":    rep.Checked,
				"broken_seq": rep.BrokenSeq,
				"reason":     rep.Reason,
			}))
		return
	}
	c.JSON(http.StatusOK, rep)
}

// GetLogLevel handles GET /admin/log/level.
func (s *Server) GetLogLevel(c *gin.Context) {
	logger.HTTPHandler().ServeHTTP(c.Writer, c.Request)
}

// SetLogLevel handles PUT /admin/log/level.
func (s *Server) SetLogLevel(c *gin.Context) {
	logger.HTTPHandler().ServeHTTP(c.Writer, c.Request)
}
