package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openpathway/pathway-analyzer/pkg/analyze"
	"github.com/openpathway/pathway-analyzer/pkg/export"
	"github.com/openpathway/pathway-analyzer/pkg/logging"
	"github.com/openpathway/pathway-analyzer/pkg/metrics"
	"github.com/openpathway/pathway-analyzer/pkg/model"
	"github.com/openpathway/pathway-analyzer/pkg/pubsub"
	"github.com/openpathway/pathway-analyzer/pkg/resolve"
	"github.com/openpathway/pathway-analyzer/pkg/stats"
)

//go:embed static/*
var staticFiles embed.FS

// GraphNode represents a node in a pathway graph view
type GraphNode struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Namespace string `json:"namespace"`
}

// GraphEdge represents an edge in a pathway graph view. Parallel edges
// between the same pair stay separate entries, each with its own types.
type GraphEdge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Types  []string `json:"types"`
}

// GraphData holds one pathway graph for visualization
type GraphData struct {
	Info  model.PathwayInfo `json:"info"`
	Nodes []GraphNode       `json:"nodes"`
	Edges []GraphEdge       `json:"edges"`
}

// PathwaySummary is one row of the pathway listing
type PathwaySummary struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
	Source     string `json:"source"`
	Organism   string `json:"organism,omitempty"`
	Nodes      int    `json:"nodes"`
	Edges      int    `json:"edges"`
	Loops      int    `json:"loops"`
}

// StatisticsResponse is the global statistics view
type StatisticsResponse struct {
	PathwayCount int                     `json:"pathway_count"`
	Categories   stats.PathwayStatistics `json:"categories"`
	Outcomes     resolve.Outcomes        `json:"outcomes"`
	Errors       []analyze.FileError     `json:"errors"`
	ElapsedMs    int64                   `json:"elapsed_ms"`
}

// TableResponse is the wide per-pathway statistics table
type TableResponse struct {
	Headers []string   `json:"headers"`
	Rows    []TableRow `json:"rows"`
}

// TableRow is one pathway's cells, parallel to Headers[1:]
type TableRow struct {
	Pathway string   `json:"pathway"`
	Cells   []string `json:"cells"`
}

// Server represents the web server
type Server struct {
	router    *mux.Router
	publisher pubsub.Publisher
	registry  *metrics.Registry
	log       *slog.Logger

	mu     sync.RWMutex
	result *analyze.Result
}

// NewServer creates a new web server. A nil metrics registry falls back to
// the process-wide one.
func NewServer(reg *metrics.Registry) *Server {
	if reg == nil {
		reg = metrics.DefaultRegistry()
	}

	ssePublisher := pubsub.NewSSEPublisher()

	// analysis_status: keep a short history, replay only the current state
	ssePublisher.ConfigureTopic(pubsub.TopicStatus, pubsub.TopicConfig{
		BufferSize: 10,
		ReplayAll:  false,
	})

	// statistics: new subscribers only need the latest totals
	ssePublisher.ConfigureTopic(pubsub.TopicStatistics, pubsub.TopicConfig{
		BufferSize: 5,
		ReplayAll:  false,
	})

	s := &Server{
		router:    mux.NewRouter(),
		publisher: ssePublisher,
		registry:  reg,
		log:       logging.New("web"),
	}
	s.setupRoutes()
	return s
}

// SetResult stores the latest run and notifies statistics subscribers. The
// watcher calls this after every re-run while clients keep reading.
func (s *Server) SetResult(result *analyze.Result) {
	s.mu.Lock()
	s.result = result
	s.mu.Unlock()

	var nodes, edges int
	for _, pr := range result.Pathways {
		nodes += pr.Graph.NodeCount()
		edges += pr.Graph.EdgeCount()
	}
	data := pubsub.StatisticsData{
		PathwaysCount: len(result.Pathways),
		NodesCount:    nodes,
		EdgesCount:    edges,
		ErrorsCount:   len(result.Errors),
		Complete:      true,
	}
	if err := s.publisher.Publish(pubsub.TopicStatistics, "updated", data); err != nil {
		s.log.Warn("failed to publish statistics event", "error", err)
	}
}

// PublishStatus publishes a pipeline status event
func (s *Server) PublishStatus(state, message string, step, total int) error {
	status := pubsub.AnalysisStatus{
		State:   state,
		Message: message,
		Step:    step,
		Total:   total,
	}
	return s.publisher.Publish(pubsub.TopicStatus, state, status)
}

func (s *Server) setupRoutes() {
	s.router.Use(logging.RequestIDMiddleware)
	s.router.Use(s.metricsMiddleware)

	// SSE subscription endpoint, topic selected by query parameter
	s.router.HandleFunc("/api/events", s.handleEvents).Methods("GET")

	// API routes - more specific routes must come first
	s.router.HandleFunc("/api/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/api/statistics/table", s.handleStatisticsTable).Methods("GET")
	s.router.HandleFunc("/api/statistics", s.handleStatistics).Methods("GET")
	s.router.HandleFunc("/api/pathways/{id}/graph", s.handlePathwayGraph).Methods("GET")
	s.router.HandleFunc("/api/pathways", s.handlePathways).Methods("GET")

	// Prometheus metrics
	s.router.Handle("/metrics", promhttp.HandlerFor(
		s.registry.GetPrometheusRegistry(), promhttp.HandlerOpts{}))

	// Serve static files
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	s.router.PathPrefix("/").Handler(http.FileServer(http.FS(staticFS)))
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	if topic == "" {
		topic = pubsub.TopicStatistics
	}
	if topic != pubsub.TopicStatistics && topic != pubsub.TopicStatus {
		http.Error(w, fmt.Sprintf("unknown topic: %s", topic), http.StatusBadRequest)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*") // CORS support

	// Send initial comment to establish connection (Safari compatibility)
	fmt.Fprintf(w, ": connected\n\n")
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	sub, err := s.publisher.Subscribe(r.Context(), topic)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer sub.Close()

	for event := range sub.Events() {
		if err := pubsub.WriteSSE(w, event); err != nil {
			s.log.Warn("failed to write SSE event", "error", err)
			return
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	s.mu.RLock()
	pathways := 0
	if s.result != nil {
		pathways = len(s.result.Pathways)
	}
	s.mu.RUnlock()

	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":   "ok",
		"pathways": pathways,
	})
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	s.mu.RLock()
	result := s.result
	s.mu.RUnlock()

	if result == nil {
		http.Error(w, "Statistics not available yet", http.StatusServiceUnavailable)
		return
	}

	json.NewEncoder(w).Encode(StatisticsResponse{
		PathwayCount: result.Global.PathwayCount(),
		Categories:   result.Global.Categories,
		Outcomes:     result.Outcomes,
		Errors:       result.Errors,
		ElapsedMs:    result.Elapsed.Milliseconds(),
	})
}

func (s *Server) handleStatisticsTable(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	s.mu.RLock()
	result := s.result
	s.mu.RUnlock()

	if result == nil {
		http.Error(w, "Statistics not available yet", http.StatusServiceUnavailable)
		return
	}

	table := export.BuildTable(result.Global.AllPathways)
	response := TableResponse{
		Headers: make([]string, 0, len(table.Columns)+1),
		Rows:    make([]TableRow, 0, len(table.Rows)),
	}
	response.Headers = append(response.Headers, "pathway")
	for _, col := range table.Columns {
		response.Headers = append(response.Headers, col.Header())
	}
	for _, row := range table.Rows {
		response.Rows = append(response.Rows, TableRow{Pathway: row.Pathway, Cells: row.Cells})
	}

	json.NewEncoder(w).Encode(response)
}

func (s *Server) handlePathways(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	s.mu.RLock()
	result := s.result
	s.mu.RUnlock()

	summaries := make([]PathwaySummary, 0)
	if result != nil {
		for _, pr := range result.Pathways {
			summaries = append(summaries, PathwaySummary{
				Identifier: pr.Info.Identifier,
				Name:       pr.Info.Name(),
				Source:     pr.Source,
				Organism:   pr.Info.Organism,
				Nodes:      pr.Graph.NodeCount(),
				Edges:      pr.Graph.EdgeCount(),
				Loops:      len(pr.Loops),
			})
		}
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Identifier < summaries[j].Identifier
	})

	json.NewEncoder(w).Encode(summaries)
}

func (s *Server) handlePathwayGraph(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	s.mu.RLock()
	result := s.result
	s.mu.RUnlock()

	if result == nil {
		http.Error(w, "Statistics not available yet", http.StatusServiceUnavailable)
		return
	}

	id := mux.Vars(r)["id"]
	for _, pr := range result.Pathways {
		if pr.Info.Identifier == id || pr.Info.Name() == id {
			json.NewEncoder(w).Encode(buildGraphData(pr.Graph))
			return
		}
	}
	http.Error(w, fmt.Sprintf("Pathway not found: %s", id), http.StatusNotFound)
}

// buildGraphData flattens a pathway graph into the visualization DTO
func buildGraphData(g *model.PathwayGraph) *GraphData {
	data := &GraphData{
		Info:  g.Info(),
		Nodes: make([]GraphNode, 0, g.NodeCount()),
		Edges: make([]GraphEdge, 0, g.EdgeCount()),
	}

	for _, id := range g.NodeIDs() {
		attrs, _ := g.Node(id)
		label := attrs.Get(model.KeyName)
		if label == "" {
			label = id
		}
		data.Nodes = append(data.Nodes, GraphNode{
			ID:        id,
			Label:     label,
			Namespace: attrs.Get(model.KeyNamespace),
		})
	}

	for _, edge := range g.Edges() {
		types := edge.Attributes[model.KeyInteractionTypes].Values()
		if types == nil {
			types = []string{}
		}
		data.Edges = append(data.Edges, GraphEdge{
			Source: edge.Subject,
			Target: edge.Object,
			Types:  types,
		})
	}

	return data
}

// metricsMiddleware records request counts and latency per route template
func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil && tpl != "" {
				path = tpl
			}
		}
		s.registry.RecordHTTPRequest(r.Method, path, strconv.Itoa(wrapped.status), time.Since(start))
	})
}

// statusRecorder wraps http.ResponseWriter to capture the status code
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// Flush implements http.Flusher for SSE support
func (sr *statusRecorder) Flush() {
	if flusher, ok := sr.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Router exposes the handler for tests and custom servers
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the web server on the specified port
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.log.Info("starting web server", "url", fmt.Sprintf("http://localhost%s", addr))
	return http.ListenAndServe(addr, s.router)
}
