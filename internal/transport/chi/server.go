// Package chi exposes the hireboard HTTP API on a chi router.
package chi

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/hireboard/internal/logger"
	"github.com/kailas-cloud/hireboard/internal/metrics"
	analyticsuc "github.com/kailas-cloud/hireboard/internal/usecase/analytics"
	collectionuc "github.com/kailas-cloud/hireboard/internal/usecase/collection"
	healthuc "github.com/kailas-cloud/hireboard/internal/usecase/health"
	"github.com/kailas-cloud/hireboard/internal/usecase/listing"
	recorduc "github.com/kailas-cloud/hireboard/internal/usecase/record"
	"github.com/kailas-cloud/hireboard/internal/version"
)

const maxBodyBytes = 1 << 20

// Services bundles the use cases the API serves.
type Services struct {
	Collections *collectionuc.Service
	Listing     *listing.Service
	Records     *recorduc.Service
	Analytics   *analyticsuc.Service
	Health      *healthuc.Service
}

// Server holds the HTTP handlers.
type Server struct {
	svc           Services
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(svc Services, logger *zap.Logger) *Server {
	return &Server{svc: svc, logger: logger, errorHandlers: defaultErrorHandlers()}
}

// Router returns the API with the standard middleware stack.
func (s *Server) Router(apiKeys []string) http.Handler {
	r := chi.NewRouter()
	r.Use(JSONRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEventMiddleware(s.logger))
	r.Use(BearerAuthMiddleware(apiKeys))
	r.Use(metrics.Middleware())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeBadRequest, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeBadRequest, "method not allowed")
	})

	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/collections", s.ListCollections)
	r.Route("/collections/{collection}", func(r chi.Router) {
		r.Get("/", s.GetCollection)
		r.Get("/records", s.ListRecords)
		r.Post("/records", s.InsertRecord)
		r.Get("/records/{id}", s.GetRecord)
		r.Get("/deadlines", s.ListDeadlines)
	})

	r.Get("/analytics", s.GetAnalytics)
	r.Get("/dashboard", s.GetDashboard)
	return r
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.svc.Health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{
		Status:  report.Status,
		Checks:  report.Checks,
		Version: version.Version,
	})
}

// ListCollections handles GET /collections.
func (s *Server) ListCollections(w http.ResponseWriter, r *http.Request) {
	sums, err := s.svc.Collections.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	items := make([]CollectionResponse, 0, len(sums))
	for _, sum := range sums {
		items = append(items, collectionToResponse(sum))
	}
	writeJSON(w, http.StatusOK, CollectionListResponse{Items: items})
}

// GetCollection handles GET /collections/{collection}.
func (s *Server) GetCollection(w http.ResponseWriter, r *http.Request) {
	sum, err := s.svc.Collections.Get(r.Context(), chi.URLParam(r, "collection"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, collectionToResponse(sum))
}

// ListRecords handles GET /collections/{collection}/records. Every query
// parameter outside q, sort, order, limit and has.<field> is an exact
// constraint, so stray parameters such as cache busters match nothing.
func (s *Server) ListRecords(w http.ResponseWriter, r *http.Request) {
	params, err := listParams(r.URL.Query())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	res, err := s.svc.Listing.List(r.Context(), chi.URLParam(r, "collection"), params)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listToResponse(res))
}

// InsertRecord handles POST /collections/{collection}/records.
func (s *Server) InsertRecord(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")

	var body map[string]any
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if body == nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Request body must be a JSON object")
		return
	}

	rec, err := s.svc.Records.Insert(r.Context(), collection, body)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.Header().Set("Location", "/collections/"+collection+"/records/"+url.PathEscape(rec.ID()))
	writeJSON(w, http.StatusCreated, InsertResponse{ID: rec.ID()})
}

// GetRecord handles GET /collections/{collection}/records/{id}.
func (s *Server) GetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.svc.Listing.Get(r.Context(), chi.URLParam(r, "collection"), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// ListDeadlines handles GET /collections/{collection}/deadlines.
func (s *Server) ListDeadlines(w http.ResponseWriter, r *http.Request) {
	params, err := deadlineParams(r.URL.Query())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	ds, err := s.svc.Listing.Deadlines(r.Context(), chi.URLParam(r, "collection"), params)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DeadlineListResponse{Items: deadlinesToResponse(ds)})
}

// GetAnalytics handles GET /analytics.
func (s *Server) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	params, err := reportParams(r.URL.Query())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	report, err := s.svc.Analytics.Report(r.Context(), params)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reportToResponse(report))
}

// GetDashboard handles GET /dashboard.
func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	asOf, err := bindDate(r.URL.Query(), "as_of")
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	d, err := s.svc.Analytics.Dashboard(r.Context(), asOf)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboardToResponse(d))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context())
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
