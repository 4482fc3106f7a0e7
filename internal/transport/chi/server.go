package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docsearch/internal/domain"
	"github.com/kailas-cloud/docsearch/internal/domain/search/request"
	"github.com/kailas-cloud/docsearch/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/docsearch/internal/logger"
	"github.com/kailas-cloud/docsearch/internal/metrics"
	healthuc "github.com/kailas-cloud/docsearch/internal/usecase/health"
)

// UsageText is served on GET /.
const UsageText = "docsearch: use /search?q=query&content_type=type"

const (
	backendUnavailableMessage = "search backend unavailable"
	internalErrorMessage      = "internal error"
)

// Searcher runs a validated query and returns shaped items.
type Searcher interface {
	Search(ctx context.Context, req *request.Request) ([]result.Item, error)
}

// HealthChecker reports engine health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the query HTTP API.
type Server struct {
	search        Searcher
	health        HealthChecker
	pageSize      int
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. pageSize <= 0 falls back to request.DefaultSize.
func NewServer(search Searcher, health HealthChecker, pageSize int, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		search:   search,
		health:   health,
		pageSize: pageSize,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		clientErrorHandler(domain.ErrInvalidQuery),
		clientErrorHandler(domain.ErrInvalidContentType),
		sentinelHandler(domain.ErrBackend, http.StatusBadGateway, backendUnavailableMessage),
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.Index)
	r.Get("/search", s.Search)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type searchResponse struct {
	Query             string       `json:"query"`
	ContentTypeFilter *string      `json:"content_type_filter"`
	Results           []resultItem `json:"results"`
}

type resultItem struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Index handles GET /.
func (s *Server) Index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(UsageText))
}

// Search handles GET /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var q, contentType *string
	params := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "q", params, &q); err != nil {
		writeError(w, http.StatusBadRequest, "invalid 'q' parameter: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "content_type", params, &contentType); err != nil {
		writeError(w, http.StatusBadRequest, "invalid 'content_type' parameter: "+err.Error())
		return
	}

	req, err := request.New(deref(q), deref(contentType), s.pageSize)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	results := make([]resultItem, len(items))
	for i := range items {
		results[i] = resultItem{Title: items[i].Title(), Snippet: items[i].Snippet()}
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Query:             deref(q),
		ContentTypeFilter: contentType,
		Results:           results,
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics.Handler().ServeHTTP(w, r)
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// clientErrorHandler answers 400 with the error text, which only carries caller input.
func clientErrorHandler(sentinel error) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return true
	}
}

// sentinelHandler returns an errorHandler that answers a fixed message for a single sentinel error.
func sentinelHandler(sentinel error, status int, message string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, message)
		return true
	}
}

// handleDomainError logs err once on the request logger and writes the mapped response.
func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContextOr(r.Context(), s.logger)
	if domain.IsClientError(err) {
		log.Debug("request rejected", zap.Error(err))
	} else {
		log.Error("request failed", zap.Error(err))
	}

	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	writeError(w, http.StatusInternalServerError, internalErrorMessage)
}
