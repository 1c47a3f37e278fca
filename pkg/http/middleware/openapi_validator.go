package middleware

import (
	"bytes"
	"net/http"
	"path"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/gin-gonic/gin"
	oapiMiddleware "github.com/oapi-codegen/gin-middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/hakantaylan/problem-handler/pkg/config"
	"github.com/hakantaylan/problem-handler/pkg/core/logger"
	"github.com/hakantaylan/problem-handler/pkg/problem"
)

// OpenAPIErrorKey is the error key under which request-validation failures
// are reported.
const OpenAPIErrorKey = "openapi.validation"

// createOpenAPIValidatorHandler creates OpenAPI request validator middleware
// honoring the configured exclude patterns. Validation failures are routed
// through the advice registry instead of being written directly.
func createOpenAPIValidatorHandler(props *config.ProblemProperties, doc *openapi3.T) gin.HandlerFunc {
	if doc == nil || !props.OpenAPI.ReqValidationEnabled {
		return nil
	}

	doc.Servers = nil
	validator := oapiMiddleware.OapiRequestValidatorWithOptions(doc, &oapiMiddleware.Options{
		ErrorHandler: func(c *gin.Context, message string, statusCode int) {
			_ = c.Error(problem.NewError(statusCode, message).WithCode(OpenAPIErrorKey))
			c.Abort()
		},
		SilenceServersWarning: true,
	})

	return func(c *gin.Context) {
		if skipValidation(props, c.Request.URL.Path) {
			c.Next()
			return
		}
		validator(c)
	}
}

// createResponseValidatorHandler buffers the response and validates it
// against the specification before flushing. Invalid responses are replaced
// with a 500 problem so clients never see spec-violating bodies.
func createResponseValidatorHandler(props *config.ProblemProperties, doc *openapi3.T) gin.HandlerFunc {
	if doc == nil || !props.OpenAPI.ResValidationEnabled {
		return nil
	}

	doc.Servers = nil
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil
	}

	return func(c *gin.Context) {
		if skipValidation(props, c.Request.URL.Path) {
			c.Next()
			return
		}

		bw := &bufferedWriter{ResponseWriter: c.Writer, status: http.StatusOK}
		c.Writer = bw

		c.Next()

		c.Writer = bw.ResponseWriter
		if len(c.Errors) > 0 {
			// The problem middleware renders these. Drop any partial body.
			return
		}

		if err := validateResponse(c, router, bw); err != nil {
			logger.FromContext(c).Error("Response validation failed",
				append(requestFields(c), zap.Error(err))...)
			body, _ := problem.Of(http.StatusInternalServerError, "response does not conform to the API specification").Build().MarshalJSON()
			c.Writer.Header().Set("Content-Type", problem.MediaTypeProblem)
			c.Writer.WriteHeader(http.StatusInternalServerError)
			_, _ = c.Writer.Write(body)
			return
		}
		bw.flush()
	}
}

func validateResponse(c *gin.Context, router routers.Router, bw *bufferedWriter) error {
	// Problem responses are produced by this library, not the API spec.
	if strings.HasPrefix(bw.Header().Get("Content-Type"), problem.MediaTypeProblem) {
		return nil
	}

	route, pathParams, err := router.FindRoute(c.Request)
	if err != nil {
		// Unroutable requests were already rejected by request validation.
		return nil
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    c.Request,
			PathParams: pathParams,
			Route:      route,
		},
		Status: bw.status,
		Header: bw.Header(),
	}
	input.SetBodyBytes(bw.buf.Bytes())

	return openapi3filter.ValidateResponse(c.Request.Context(), input)
}

// bufferedWriter holds back the response until validation passed.
type bufferedWriter struct {
	gin.ResponseWriter
	buf    bytes.Buffer
	status int
}

func (w *bufferedWriter) WriteHeader(status int) { w.status = status }

func (w *bufferedWriter) Write(b []byte) (int, error) { return w.buf.Write(b) }

func (w *bufferedWriter) WriteString(s string) (int, error) { return w.buf.WriteString(s) }

func (w *bufferedWriter) Written() bool { return w.buf.Len() > 0 }

func (w *bufferedWriter) flush() {
	w.ResponseWriter.WriteHeader(w.status)
	_, _ = w.ResponseWriter.Write(w.buf.Bytes())
}

// skipValidation excludes the spec endpoint itself and any configured
// exclude pattern.
func skipValidation(props *config.ProblemProperties, requestPath string) bool {
	if requestPath == props.OpenAPI.Path {
		return true
	}
	for _, pattern := range props.OpenAPI.ExcludePatterns {
		if ok, _ := path.Match(pattern, requestPath); ok {
			return true
		}
		if prefix, found := strings.CutSuffix(pattern, "/**"); found && strings.HasPrefix(requestPath, prefix) {
			return true
		}
	}
	return false
}

// OpenAPIValidatorModule provides OpenAPI request validator middleware.
func OpenAPIValidatorModule(priority int) fx.Option {
	return fx.Provide(
		fx.Annotate(
			func(props *config.ProblemProperties, doc *openapi3.T) Middleware {
				return Middleware{
					Priority: priority,
					Handler:  createOpenAPIValidatorHandler(props, doc),
				}
			},
			fx.ParamTags(``, `optional:"true"`),
			fx.ResultTags(`group:"gin_mw"`),
		),
	)
}

// OpenAPIResponseValidatorModule provides OpenAPI response validator
// middleware.
func OpenAPIResponseValidatorModule(priority int) fx.Option {
	return fx.Provide(
		fx.Annotate(
			func(props *config.ProblemProperties, doc *openapi3.T) Middleware {
				return Middleware{
					Priority: priority,
					Handler:  createResponseValidatorHandler(props, doc),
				}
			},
			fx.ParamTags(``, `optional:"true"`),
			fx.ResultTags(`group:"gin_mw"`),
		),
	)
}
