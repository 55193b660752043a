package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ezcrow.dev/crowdfund/internal/pkg/logger"
)

type contextKey string

const (
	// RequestIDHeader is the HTTP header for request tracing.
	RequestIDHeader = "X-Request-ID"

	ctxKeyRequestID contextKey = "request_id"
	ctxKeySubject   contextKey = "subject"
	ctxKeySigners   contextKey = "signers"
	ctxKeyRoles     contextKey = "roles"
)

// RequestID injects a unique request ID into the context and response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			id, _ := uuid.NewV7()
			rid = id.String()
		}
		c.Set(string(ctxKeyRequestID), rid)
		c.Writer.Header().Set(RequestIDHeader, rid)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), rid))
		c.Next()
	}
}

// GetRequestID extracts request ID from context.
func GetRequestID(ctx context.Context) string {
	return logger.RequestID(ctx)
}

// SetSignerContext stores the authenticated token subject, signer
// addresses and roles in context.
func SetSignerContext(ctx context.Context, subject string, signers, roles []string) context.Context {
	ctx = context.WithValue(ctx, ctxKeySubject, subject)
	ctx = context.WithValue(ctx, ctxKeySigners, signers)
	ctx = context.WithValue(ctx, ctxKeyRoles, roles)
	return ctx
}

// GetSubject extracts the token subject from context.
func GetSubject(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeySubject).(string); ok {
		return v
	}
	return ""
}

// GetSigners extracts the signer addresses from context.
func GetSigners(ctx context.Context) []string {
	if v, ok := ctx.Value(ctxKeySigners).([]string); ok {
		return v
	}
	return nil
}

// GetRoles extracts roles from context.
func GetRoles(ctx context.Context) []string {
	if v, ok := ctx.Value(ctxKeyRoles).([]string); ok {
		return v
	}
	return nil
}
