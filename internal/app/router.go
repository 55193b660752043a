package app

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"ezcrow.dev/crowdfund/internal/api/generated"
	"ezcrow.dev/crowdfund/internal/api/middleware"
	"ezcrow.dev/crowdfund/internal/config"
	apperrors "ezcrow.dev/crowdfund/internal/pkg/errors"
)

const basePath = "/api/v1"

// signedPrefixes are routes whose non-GET methods need a signer token.
var signedPrefixes = []string{
	basePath + "/contract/",
}

// adminPrefixes are routes that require a signer token with the admin role.
var adminPrefixes = []string{
	basePath + "/admin/",
}

func newRouter(cfg *config.Config, server generated.ServerInterface, jwtCfg middleware.JWTConfig) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		otelgin.Middleware(cfg.Tracing.ServiceName),
		middleware.RequestID(),
		middleware.CORS(cfg.CORS),
		middleware.ErrorHandler(),
		middleware.MustOpenAPIValidator(basePath, cfg.Server.ValidateResponse),
	)
	router.Use(signerAuthRoutes(jwtCfg))
	router.Use(rbacAdminRoutes())

	generated.RegisterHandlersWithOptions(router, server, generated.GinServerOptions{
		BaseURL:      basePath,
		ErrorHandler: parameterError,
	})
	router.NoRoute(routeNotFound)
	return router
}

// parameterError reports a path or query parameter that failed to bind.
func parameterError(c *gin.Context, err error, status int) {
	_ = c.Error(apperrors.New(apperrors.CodeInvalidRequest, "invalid request parameter", status).
		WithParams(map[string]interface{}{"reason": err.Error()}))
}

func routeNotFound(c *gin.Context) {
	_ = c.Error(apperrors.NotFound(apperrors.CodeNotFound, "route not found"))
}

// signerAuthRoutes returns middleware that applies signer auth to contract
// writes and every admin route. Reads stay public.
func signerAuthRoutes(jwtCfg middleware.JWTConfig) gin.HandlerFunc {
	authMw := middleware.SignerAuth(jwtCfg)
	return func(c *gin.Context) {
		if requiresSigner(c.Request.Method, c.Request.URL.Path) {
			authMw(c)
			return
		}
		c.Next()
	}
}

func requiresSigner(method, path string) bool {
	if hasAnyPrefix(path, adminPrefixes) {
		return true
	}
	if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
		return false
	}
	return hasAnyPrefix(path, signedPrefixes)
}

// rbacAdminRoutes returns middleware enforcing the admin role on admin endpoints.
func rbacAdminRoutes() gin.HandlerFunc {
	adminMw := middleware.RequireRole(middleware.RoleAdmin)
	return func(c *gin.Context) {
		if hasAnyPrefix(c.Request.URL.Path, adminPrefixes) {
			adminMw(c)
			return
		}
		c.Next()
	}
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
