// Package server exposes the path engine to the grid editor over HTTP/JSON.
//
// Obstacles and paths cross the boundary as flat, interleaved x,y integer
// arrays, the same contract as gridpath.AStar.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pdrpinto/gridpath"
	"github.com/pdrpinto/gridpath/internal/cache"
	"github.com/pdrpinto/gridpath/internal/config"
)

const (
	maxBodyBytes    = 8 << 20
	shutdownTimeout = 5 * time.Second
	requestIDHeader = "X-Request-ID"
)

// Server handles path requests. The cache is optional.
type Server struct {
	cfg   *config.Config
	cache cache.PathCache
	mux   *http.ServeMux
}

// New creates a server for cfg. Pass a nil cache to disable caching.
func New(cfg *config.Config, c cache.PathCache) *Server {
	s := &Server{cfg: cfg, cache: c, mux: http.NewServeMux()}
	s.mux.HandleFunc("/api/path", s.handlePath)
	s.mux.HandleFunc("/api/paths", s.handleBatch)
	s.mux.HandleFunc("/healthz", s.handleHealth)
	return s
}

// Handler returns the root handler with request logging.
func (s *Server) Handler() http.Handler {
	return withRequestID(s.mux)
}

// ListenAndServe serves on the configured address until ctx is done, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[INFO] Listening on %s", s.cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Printf("[INFO] Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type pathResponse struct {
	Path   []int `json:"path"`
	Found  bool  `json:"found"`
	Cached bool  `json:"cached"`
}

type batchRequest struct {
	Requests []gridpath.Request `json:"requests"`
}

type batchItem struct {
	Path  []int  `json:"path"`
	Found bool   `json:"found"`
	Error string `json:"error,omitempty"`
}

type batchResponse struct {
	Results []batchItem `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// statusFor maps engine errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, gridpath.ErrInvalidGrid), errors.Is(err, gridpath.ErrInvalidEndpoints):
		return http.StatusBadRequest
	case errors.Is(err, gridpath.ErrAborted):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) searchOptions() []gridpath.Option {
	return []gridpath.Option{
		gridpath.WithMaxExpansions(s.cfg.Search.MaxExpansions),
		gridpath.WithWorkers(s.cfg.Search.Workers),
		gridpath.WithCellLimit(s.cfg.Search.MaxCells),
	}
}

// applyDefaults turns on diagonal movement when the server is configured for it.
func (s *Server) applyDefaults(req *gridpath.Request) {
	if s.cfg.Search.Diagonal {
		req.Diagonal = true
	}
	if req.Diagonal && req.DiagonalCost == 0 {
		req.DiagonalCost = s.cfg.Search.DiagonalCost
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return false
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid JSON body: "+err.Error()))
		return false
	}
	return true
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	var req gridpath.Request
	if !decodeBody(w, r, &req) {
		return
	}
	s.applyDefaults(&req)
	ctx := r.Context()
	id := RequestID(ctx)

	g, key, err := req.GridAndKey(gridpath.WithMaxCells(s.cfg.Search.MaxCells))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	if s.cache != nil {
		path, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			log.Printf("[WARN] request=%s cache lookup failed: %v", id, err)
		} else if ok {
			writeJSON(w, http.StatusOK, pathResponse{Path: path, Found: len(path) > 0, Cached: true})
			return
		}
	}

	p, outcome, err := gridpath.FindPathContext(ctx, g, req.Start(), req.End(), s.searchOptions()...)
	if err != nil {
		if errors.Is(err, gridpath.ErrAborted) {
			log.Printf("[WARN] request=%s search aborted on %dx%d grid: %v", id, req.Cols, req.Rows, err)
		}
		writeError(w, statusFor(err), err)
		return
	}
	path := gridpath.EncodePath(p)
	log.Printf("[DEBUG] request=%s %dx%d %s -> %s: %s, %d cells", id, req.Cols, req.Rows, req.Start(), req.End(), outcome, p.Len())

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, path); err != nil {
			log.Printf("[WARN] request=%s cache store failed: %v", id, err)
		}
	}
	writeJSON(w, http.StatusOK, pathResponse{Path: path, Found: outcome == gridpath.PathFound})
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	for i := range req.Requests {
		s.applyDefaults(&req.Requests[i])
	}

	results := gridpath.SolveBatch(r.Context(), req.Requests, s.searchOptions()...)
	resp := batchResponse{Results: make([]batchItem, len(results))}
	for i, res := range results {
		item := batchItem{Path: res.Path, Found: res.Found()}
		if res.Err != nil {
			item.Error = res.Err.Error()
			item.Path = []int{}
		}
		resp.Results[i] = item
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.cache != nil {
		if err := s.cache.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "cache": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type requestIDKey struct{}

// RequestID returns the request ID stored by the logging middleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withRequestID tags each request with an ID (reusing a client-supplied one)
// and logs method, path, status and latency.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		started := time.Now()
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
		log.Printf("[INFO] request=%s %s %s %d %s", id, r.Method, r.URL.Path, rec.status, time.Since(started))
	})
}
