package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docgate/internal/domain"
	logpkg "github.com/kailas-cloud/docgate/internal/logger"
	"github.com/kailas-cloud/docgate/internal/metrics"
	analyticsuc "github.com/kailas-cloud/docgate/internal/usecase/analytics"
	bulkuc "github.com/kailas-cloud/docgate/internal/usecase/bulk"
	documentuc "github.com/kailas-cloud/docgate/internal/usecase/document"
	healthuc "github.com/kailas-cloud/docgate/internal/usecase/health"
	indexuc "github.com/kailas-cloud/docgate/internal/usecase/index"
	searchuc "github.com/kailas-cloud/docgate/internal/usecase/search"
)

// Envelope status values.
const (
	statusSuccess = "success"
	statusError   = "error"
)

// Error codes returned in the envelope.
const (
	codeBadRequest      = "bad_request"
	codeInvalidArgument = "invalid_argument"
	codeNotFound        = "not_found"
	codeConflict        = "conflict"
	codePartialFailure  = "partial_failure"
	codeEngineRejected  = "engine_rejected"
	codeUnavailable     = "engine_unavailable"
	codeNotInitialized  = "engine_not_initialized"
	codeTimeout         = "timeout"
	codeUnauthorized    = "unauthorized"
	codeForbidden       = "forbidden"
	codeInternal        = "internal_error"
)

// maxBodyBytes caps request bodies; bulk payloads are the largest.
const maxBodyBytes = 64 << 20

// envelope is the response shape for every API route.
type envelope struct {
	Status  string `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Services groups the use cases the HTTP API exposes.
type Services struct {
	Documents *documentuc.Service
	Search    *searchuc.Service
	Bulk      *bulkuc.Service
	Analytics *analyticsuc.Service
	Indexes   *indexuc.Service
	Health    *healthuc.Service
}

// Server serves the docgate HTTP API.
type Server struct {
	documents     *documentuc.Service
	search        *searchuc.Service
	bulk          *bulkuc.Service
	analytics     *analyticsuc.Service
	indexes       *indexuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(svc Services, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		documents: svc.Documents,
		search:    svc.Search,
		bulk:      svc.Bulk,
		analytics: svc.Analytics,
		indexes:   svc.Indexes,
		health:    svc.Health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidArgument, http.StatusBadRequest, codeInvalidArgument),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrConflict, http.StatusConflict, codeConflict),
		alreadyExistsHandler,
		sentinelHandler(domain.ErrPartialFailure, http.StatusMultiStatus, codePartialFailure),
		sentinelHandler(domain.ErrEngineRejected, http.StatusUnprocessableEntity, codeEngineRejected),
		sentinelHandler(domain.ErrNotInitialized, http.StatusServiceUnavailable, codeNotInitialized),
		sentinelHandler(domain.ErrConnection, http.StatusServiceUnavailable, codeUnavailable),
		sentinelHandler(context.DeadlineExceeded, http.StatusGatewayTimeout, codeTimeout),
	}
	return s
}

// RouterConfig holds the middleware settings for Handler.
type RouterConfig struct {
	APIKeys      []string
	OperatorKeys []string
}

// Handler builds the chi router with the full middleware stack.
func (s *Server) Handler(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(JSONRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEventMiddleware(s.logger))
	r.Use(BearerAuthMiddleware(cfg.APIKeys))
	r.Use(metrics.Middleware())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeBadRequest, "method not allowed")
	})

	r.Get("/", s.Root)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/create_index", s.CreateIndexLegacy)
		r.Post("/indexes", s.CreateIndex)
		byIndex := r.With(tagURLParam("index", "index"))
		byIndex.Get("/indexes/{index}/mapping", s.GetMapping)
		byIndex.Put("/indexes/{index}/mapping", s.UpdateMapping)
		byIndex.Post("/indexes/{index}/validate", s.ValidateDocument)

		r.Get("/visa_fees", s.VisaFees)
		r.Post("/search", s.Search)

		r.Post("/documents", s.CreateDocument)
		byDoc := r.With(tagURLParam("id", "doc_id"))
		byDoc.Get("/documents/{id}", s.GetDocument)
		byDoc.Put("/documents/{id}", s.UpdateDocument)
		byDoc.Delete("/documents/{id}", s.DeleteDocument)

		r.Post("/bulk", s.BulkLoad)
		r.Post("/bulk/seed", s.BulkSeed)

		r.Get("/analytics/dashboard", s.Dashboard)
		r.Get("/analytics/facets/{facet}", s.Facet)

		r.Route("/operator", func(r chi.Router) {
			r.Use(OperatorKeyMiddleware(cfg.OperatorKeys))
			r.Delete("/documents", s.ClearDocuments)
			r.Delete("/indexes/{index}", s.DeleteIndex)
		})
	})
	return r
}

// Root handles GET /.
func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, envelope{Status: statusSuccess})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Status: statusSuccess, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, envelope{Status: statusError, Code: code, Message: message})
}

// safeDomainMessage returns the client-facing message. Caller-caused errors
// keep their detail; connectivity errors are reduced to the sentinel so
// engine addresses never leak.
func safeDomainMessage(err error) string {
	detailed := []error{
		domain.ErrInvalidArgument,
		domain.ErrNotFound,
		domain.ErrConflict,
		domain.ErrAlreadyExists,
		domain.ErrPartialFailure,
		domain.ErrEngineRejected,
	}
	for _, s := range detailed {
		if errors.Is(err, s) {
			return err.Error()
		}
	}

	opaque := []error{
		domain.ErrNotInitialized,
		domain.ErrConnection,
		context.DeadlineExceeded,
	}
	for _, s := range opaque {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// alreadyExistsHandler reports ErrAlreadyExists as an idempotent success.
func alreadyExistsHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrAlreadyExists) {
		return false
	}
	writeSuccess(w, http.StatusOK, msg, map[string]string{"status": string(indexuc.StatusAlreadyExists)})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContextOr(r.Context(), s.logger)

	var rejected *domain.RejectedError
	if errors.As(err, &rejected) {
		log.Warn("engine rejected request",
			zap.String("engine_type", rejected.Type),
			zap.String("engine_reason", rejected.Reason),
			zap.Error(err),
		)
	} else {
		log.Warn("domain error", zap.Error(err))
	}

	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
}
