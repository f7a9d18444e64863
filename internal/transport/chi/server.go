package chi

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/stranalyzer/internal/domain"
	healthuc "github.com/kailas-cloud/stranalyzer/internal/usecase/health"
	profileuc "github.com/kailas-cloud/stranalyzer/internal/usecase/profile"
	strusecase "github.com/kailas-cloud/stranalyzer/internal/usecase/strings"
)

// Public messages for domain sentinels.
const (
	msgStringNotFound = "String not found in the database."
	msgAlreadyExists  = "String already exists in the system"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the string analysis API.
type Server struct {
	strings       *strusecase.Service
	profile       *profileuc.Service
	health        *healthuc.Service
	validator     *bodyValidator
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	strings *strusecase.Service,
	profile *profileuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		strings:   strings,
		profile:   profile,
		health:    health,
		validator: newBodyValidator(strings.MaxLength()),
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		messageHandler(domain.ErrStringNotFound, http.StatusNotFound, msgStringNotFound),
		messageHandler(domain.ErrAlreadyExists, http.StatusConflict, msgAlreadyExists),
		invalidValueHandler,
	}
	return s
}

// CreateString handles POST /strings.
func (s *Server) CreateString(w http.ResponseWriter, r *http.Request) {
	req, err := s.validator.decodeCreateString(w, r)
	if err != nil {
		writeRequestError(w, err)
		return
	}

	e, err := s.strings.Create(r.Context(), req.Value)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, stringToResponse(&e))
}

// ListStrings handles GET /strings.
func (s *Server) ListStrings(w http.ResponseWriter, r *http.Request) {
	res, err := s.strings.List(r.Context(), firstValues(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listToResponse(res))
}

// GetString handles GET /strings/{value}.
func (s *Server) GetString(w http.ResponseWriter, r *http.Request, value string) {
	e, err := s.strings.Get(r.Context(), value)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stringToResponse(&e))
}

// DeleteString handles DELETE /strings/{value}.
func (s *Server) DeleteString(w http.ResponseWriter, r *http.Request, value string) {
	if err := s.strings.Delete(r.Context(), value); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetProfile handles GET /me.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, profileToResponse(s.profile.Get(r.Context())))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthToResponse(report))
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// firstValues flattens the query string; the first occurrence of a repeated
// parameter wins.
func firstValues(r *http.Request) map[string]string {
	q := r.URL.Query()
	out := make(map[string]string, len(q))
	for k, vs := range q {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeRequestError(w http.ResponseWriter, err error) {
	var re *requestError
	if !errors.As(err, &re) {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "invalid request")
		return
	}
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Code:    re.code,
		Message: re.message,
		Fields:  re.fields,
	})
}

// messageHandler returns an errorHandler that matches a single sentinel
// error and answers with a fixed {"error": msg} body.
func messageHandler(sentinel error, status int, msg string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeJSON(w, status, MessageResponse{Error: msg})
		return true
	}
}

func invalidValueHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrInvalidValue) {
		return false
	}
	writeRequestError(w, validationFailed("value", domain.ErrInvalidValue.Error()))
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Debug("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
