// Package api serves stored gait analysis runs over HTTP.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/banshee-data/gait.report/internal/db"
	"github.com/banshee-data/gait.report/internal/httputil"
	"github.com/banshee-data/gait.report/internal/monitoring"
)

const (
	colorCyan      = "\033[36m"
	colorReset     = "\033[0m"
	colorYellow    = "\033[33m"
	colorBoldGreen = "\033[1;32m"
	colorBoldRed   = "\033[1;31m"
)

// Store is the subset of the database used by the API.
type Store interface {
	ListRecordings() ([]*db.Recording, error)
	ListRuns(recordingID string) ([]*db.Run, error)
	GetRun(runID string) (*db.Run, error)
	LoadRunColumns(runID string) (map[string][]float64, error)
}

type Server struct {
	store Store
}

func NewServer(store Store) *Server {
	return &Server{store: store}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		monitoring.Logf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/recordings", s.listRecordings)
	mux.HandleFunc("/api/runs", s.listRuns)
	mux.HandleFunc("/api/runs/", s.runRoutes)
	return mux
}

func (s *Server) listRecordings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	recs, err := s.store.ListRecordings()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if recs == nil {
		recs = []*db.Recording{}
	}
	httputil.WriteJSONOK(w, recs)
}

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	runs, err := s.store.ListRuns(r.URL.Query().Get("recording_id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httputil.WriteJSONOK(w, runs)
}

// runRoutes dispatches /api/runs/{id}, /api/runs/{id}/table and
// /api/runs/{id}/chart.
func (s *Server) runRoutes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/runs/"), "/")
	if len(parts) == 0 || parts[0] == "" || len(parts) > 2 {
		httputil.NotFound(w, "unknown route")
		return
	}
	runID := parts[0]

	if len(parts) == 1 {
		run, err := s.store.GetRun(runID)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		httputil.WriteJSONOK(w, run)
		return
	}

	switch parts[1] {
	case "table":
		s.runTable(w, runID)
	case "chart":
		s.runChart(w, r, runID)
	default:
		httputil.NotFound(w, "unknown route")
	}
}

func (s *Server) runTable(w http.ResponseWriter, runID string) {
	cols, err := s.store.LoadRunColumns(runID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	out := make(map[string]httputil.Floats, len(cols))
	for k, v := range cols {
		out[k] = httputil.Floats(v)
	}
	httputil.WriteJSONOK(w, out)
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, db.ErrNotFound) {
		httputil.NotFound(w, err.Error())
		return
	}
	httputil.InternalServerError(w, err.Error())
}
