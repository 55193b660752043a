// Package middleware provides HTTP middleware for the crowdfund API.
//
// Import Path: ezcrow.dev/crowdfund/internal/api/middleware
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ezcrow.dev/crowdfund/internal/pkg/logger"
	"ezcrow.dev/crowdfund/internal/usecase"
)

// ErrorHandler is a Gin middleware that provides centralized error handling.
// It captures errors added via c.Error() and returns a consistent JSON response.
// Engine and host errors are translated to their envelope codes.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr := usecase.Translate(err)

		fields := []zap.Field{
			zap.String("code", appErr.Code),
			zap.Int("status", appErr.HTTPStatus),
			zap.String("request_id", GetRequestID(c.Request.Context())),
			zap.Error(err),
		}
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			logger.Error("Request failed", fields...)
		} else {
			logger.Warn("Request error", fields...)
		}

		body := gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		}
		if len(appErr.Params) > 0 {
			body["params"] = appErr.Params
		}
		if len(appErr.FieldErrors) > 0 {
			body["field_errors"] = appErr.FieldErrors
		}
		c.JSON(appErr.HTTPStatus, body)
	}
}
