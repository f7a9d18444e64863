package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/runtime"
)

// ChiServerOptions configures Handler.
type ChiServerOptions struct {
	BaseRouter       chi.Router
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// Handler mounts the API on a new router.
func Handler(s *Server) http.Handler {
	return HandlerWithOptions(s, ChiServerOptions{})
}

// HandlerWithOptions mounts the API on opts.BaseRouter. Middlewares must be
// registered on the base router before calling.
func HandlerWithOptions(s *Server, opts ChiServerOptions) http.Handler {
	r := opts.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if opts.ErrorHandlerFunc == nil {
		opts.ErrorHandlerFunc = func(w http.ResponseWriter, _ *http.Request, err error) {
			writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		}
	}
	wrapper := serverWrapper{handler: s, errorHandlerFunc: opts.ErrorHandlerFunc}

	r.Use(EscapedRoutePath, chiMiddleware.StripSlashes)

	r.Post("/strings", s.CreateString)
	r.Get("/strings", s.ListStrings)
	r.Get("/strings/{value}", wrapper.GetString)
	r.Delete("/strings/{value}", wrapper.DeleteString)
	r.Get("/me", s.GetProfile)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	return r
}

// EscapedRoutePath routes on the escaped request path so that an encoded
// slash inside a path parameter stays in its segment. Path parameters are
// unescaped once when bound.
func EscapedRoutePath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePath == "" {
			rctx.RoutePath = r.URL.EscapedPath()
		}
		next.ServeHTTP(w, r)
	})
}

// serverWrapper binds path parameters before calling the handler.
type serverWrapper struct {
	handler          *Server
	errorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

func (sw serverWrapper) GetString(w http.ResponseWriter, r *http.Request) {
	value, ok := sw.bindValue(w, r)
	if !ok {
		return
	}
	sw.handler.GetString(w, r, value)
}

func (sw serverWrapper) DeleteString(w http.ResponseWriter, r *http.Request) {
	value, ok := sw.bindValue(w, r)
	if !ok {
		return
	}
	sw.handler.DeleteString(w, r, value)
}

func (sw serverWrapper) bindValue(w http.ResponseWriter, r *http.Request) (string, bool) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", "value", chi.URLParam(r, "value"), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		sw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "value", Err: err})
		return "", false
	}
	return value, true
}

// InvalidParamFormatError reports a path parameter that failed to bind.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return "Invalid format for parameter " + e.ParamName + ": " + e.Err.Error()
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }
