package middleware

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ezcrow.dev/crowdfund/internal/api/openapi"
	apperrors "ezcrow.dev/crowdfund/internal/pkg/errors"
	"ezcrow.dev/crowdfund/internal/pkg/logger"
)

// MustOpenAPIValidator is NewOpenAPIValidator that panics on setup failure.
func MustOpenAPIValidator(basePath string, validateResponse bool) gin.HandlerFunc {
	mw, err := NewOpenAPIValidator(basePath, validateResponse)
	if err != nil {
		panic(fmt.Sprintf("init openapi validator: %v", err))
	}
	return mw
}

// NewOpenAPIValidator checks requests under basePath, and optionally the
// responses to them, against the embedded OpenAPI document. Paths the
// document does not describe pass through untouched. Violations are
// attached with c.Error and rendered by ErrorHandler.
func NewOpenAPIValidator(basePath string, validateResponse bool) (gin.HandlerFunc, error) {
	doc, err := openapi.Load()
	if err != nil {
		return nil, err
	}
	// Document paths are relative to basePath.
	doc.Servers = nil

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("create openapi router: %w", err)
	}

	v := &contractValidator{
		router:    router,
		basePath:  strings.TrimRight(strings.TrimSpace(basePath), "/"),
		responses: validateResponse,
		options: &openapi3filter.Options{
			// Signer auth and roles are enforced by their own middleware.
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	}
	return v.handle, nil
}

type contractValidator struct {
	router    routers.Router
	basePath  string
	responses bool
	options   *openapi3filter.Options
}

func (v *contractValidator) handle(c *gin.Context) {
	input, ok := v.validateRequest(c)
	if !ok {
		return
	}
	if input == nil || !v.responses {
		c.Next()
		return
	}
	v.validateResponse(c, input)
}

// validateRequest returns a nil input for paths outside the document and
// false when the request was rejected.
func (v *contractValidator) validateRequest(c *gin.Context) (*openapi3filter.RequestValidationInput, bool) {
	route, params, err := v.route(c.Request)
	if err != nil {
		if notInContract(err) {
			return nil, true
		}
		reject(c, apperrors.BadRequest(apperrors.CodeRequestContract, err.Error()))
		return nil, false
	}

	input := &openapi3filter.RequestValidationInput{
		Request:    c.Request,
		PathParams: params,
		Route:      route,
		Options:    v.options,
	}
	if err := openapi3filter.ValidateRequest(c.Request.Context(), input); err != nil {
		reject(c, apperrors.BadRequest(apperrors.CodeRequestContract, err.Error()).WithCause(err))
		return nil, false
	}
	return input, true
}

// validateResponse runs the rest of the chain against a recorder and only
// forwards the recorded response when it matches the document.
func (v *contractValidator) validateResponse(c *gin.Context, input *openapi3filter.RequestValidationInput) {
	orig := c.Writer
	rec := &responseRecorder{ResponseWriter: orig}
	c.Writer = rec
	c.Next()
	c.Writer = orig

	// Handler errors are rendered by ErrorHandler after this returns.
	if !rec.Written() {
		return
	}

	out := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: input,
		Status:                 rec.Status(),
		Header:                 orig.Header(),
		Options:                v.options,
	}
	out.SetBodyBytes(rec.body.Bytes())

	if err := openapi3filter.ValidateResponse(c.Request.Context(), out); err != nil {
		logger.Error("OpenAPI response validation failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", rec.Status()),
			zap.Error(err),
		)
		_ = c.Error(apperrors.Internal(apperrors.CodeResponseContract, "response does not conform to OpenAPI contract").WithCause(err))
		return
	}

	orig.WriteHeader(rec.Status())
	if _, err := orig.Write(rec.body.Bytes()); err != nil {
		logger.Warn("Failed to write validated response", zap.Error(err))
	}
}

// route resolves req against the document with basePath stripped. The
// request itself is left unchanged.
func (v *contractValidator) route(req *http.Request) (*routers.Route, map[string]string, error) {
	path, ok := v.relative(req.URL.Path)
	if !ok {
		return nil, nil, &routers.RouteError{Reason: routers.ErrPathNotFound.Error()}
	}
	u := *req.URL
	u.Path, u.RawPath = path, ""
	lookup := *req
	lookup.URL = &u
	return v.router.FindRoute(&lookup)
}

// relative strips basePath from path. It reports false for paths outside
// basePath.
func (v *contractValidator) relative(path string) (string, bool) {
	if v.basePath == "" {
		return path, true
	}
	rest, ok := strings.CutPrefix(path, v.basePath)
	if !ok {
		return "", false
	}
	switch {
	case rest == "":
		return "/", true
	case rest[0] == '/':
		return rest, true
	default:
		return "", false
	}
}

// notInContract reports whether err means the document has no operation
// for the request. Those requests fall through to the router's 404.
func notInContract(err error) bool {
	var routeErr *routers.RouteError
	if !errors.As(err, &routeErr) {
		return false
	}
	return routeErr.Reason == routers.ErrPathNotFound.Error() ||
		routeErr.Reason == routers.ErrMethodNotAllowed.Error()
}

func reject(c *gin.Context, err *apperrors.AppError) {
	_ = c.Error(err)
	c.Abort()
}

// responseRecorder holds the status and body until the response has been
// validated. Headers go straight to the wrapped writer.
type responseRecorder struct {
	gin.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *responseRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
}

func (r *responseRecorder) WriteHeaderNow() {
	if r.status == 0 {
		r.status = http.StatusOK
	}
}

func (r *responseRecorder) Write(data []byte) (int, error) {
	r.WriteHeaderNow()
	return r.body.Write(data)
}

func (r *responseRecorder) WriteString(s string) (int, error) {
	return r.Write([]byte(s))
}

func (r *responseRecorder) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

func (r *responseRecorder) Size() int {
	if r.status == 0 {
		return -1
	}
	return r.body.Len()
}

func (r *responseRecorder) Written() bool {
	return r.status != 0
}
