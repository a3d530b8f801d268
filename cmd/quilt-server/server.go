package main

import (
	"embed"
	"encoding/json"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/quiltlab/quilt"
	"github.com/rs/zerolog"
)

//go:embed frontend
var frontendFS embed.FS

// maxSnapshotSize bounds uploaded snapshot documents.
const maxSnapshotSize = 1 << 20 // 1 MiB

// defaultGrid is the shape new sessions start with.
var defaultGrid = quilt.GridConfig{Rows: 4, Cols: 4}

// Server is the designer HTTP server. All session mutations happen under a
// single mutex: the designer is an event-loop application, and one request
// at a time is its event loop.
type Server struct {
	mux   *http.ServeMux
	store *quilt.SessionStore
	mu    sync.Mutex
	log   zerolog.Logger
}

// NewServer creates a configured HTTP server over the given session store.
func NewServer(store *quilt.SessionStore, log zerolog.Logger) *Server {
	s := &Server{
		mux:   http.NewServeMux(),
		store: store,
		log:   log,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	// Session API
	s.mux.HandleFunc("GET /api/session", s.handleGetSession)
	s.mux.HandleFunc("POST /api/session/grid", s.handleSetGrid)
	s.mux.HandleFunc("POST /api/session/shuffle", s.handleShuffle)
	s.mux.HandleFunc("POST /api/session/drop", s.handleDrop)
	s.mux.HandleFunc("POST /api/session/rotate/{index}", s.handleRotate)

	// Library API
	s.mux.HandleFunc("POST /api/library", s.handleCopyToLibrary)
	s.mux.HandleFunc("DELETE /api/library/{index}", s.handleRemoveFromLibrary)

	// Rendering
	s.mux.HandleFunc("GET /api/cell/{index}/svg", s.handleCellSVG)
	s.mux.HandleFunc("GET /api/library/{index}/svg", s.handleLibrarySVG)
	s.mux.HandleFunc("GET /api/export.png", s.handleExport)

	// Snapshot save/load
	s.mux.HandleFunc("GET /api/snapshot", s.handleSaveSnapshot)
	s.mux.HandleFunc("POST /api/snapshot", s.handleLoadSnapshot)

	// Frontend static files
	frontendDir, _ := fs.Sub(frontendFS, "frontend")
	s.mux.Handle("GET /", http.FileServer(http.FS(frontendDir)))
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	start := time.Now()
	s.mux.ServeHTTP(rec, r)
	s.log.Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", rec.status).
		Dur("duration", time.Since(start)).
		Msg("request")
}

// session resolves the request's session, creating it on first use. The
// session name comes from the "session" query parameter; browser clients
// that never set one share the default session.
func (s *Server) session(r *http.Request) (*quilt.Session, error) {
	id := r.URL.Query().Get("session")
	if id == "" {
		id = "default"
	}
	return s.store.GetOrCreate(id, func() (*quilt.Session, error) {
		return quilt.NewSession(defaultGrid, nil)
	})
}

// viewport reads the optional vw/vh query parameters. A request without
// them gets the logical orientation.
func viewport(r *http.Request) (quilt.Viewport, bool) {
	vw, errW := strconv.Atoi(r.URL.Query().Get("vw"))
	vh, errH := strconv.Atoi(r.URL.Query().Get("vh"))
	if errW != nil || errH != nil || vw < 1 || vh < 1 {
		return quilt.Viewport{}, false
	}
	return quilt.Viewport{Width: vw, Height: vh}, true
}

// sessionView is the state document served to the frontend. The display
// block tells the client how to arrange the logical patterns for its
// viewport: cells[i] is the logical index shown at display position i.
type sessionView struct {
	Grid     quilt.GridConfig `json:"grid"`
	Patterns []quilt.Pattern  `json:"patterns"`
	Library  []quilt.Pattern  `json:"library"`
	Display  displayView      `json:"display"`
}

type displayView struct {
	Rows       int   `json:"rows"`
	Cols       int   `json:"cols"`
	Transposed bool  `json:"transposed"`
	Cells      []int `json:"cells"`
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	sess.EnsurePatterns()
	disp := quilt.IdentityDisplay(sess.Grid)
	if vp, ok := viewport(r); ok {
		disp = quilt.DisplayFor(sess.Grid, vp)
	}
	view := sessionView{
		Grid:     sess.Grid,
		Patterns: sess.Patterns,
		Library:  sess.Library,
		Display: displayView{
			Rows:       disp.Rows,
			Cols:       disp.Cols,
			Transposed: disp.Transposed,
			Cells:      make([]int, disp.Cells()),
		},
	}
	for i := range view.Display.Cells {
		view.Display.Cells[i] = disp.DisplayToLogical(i)
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleSetGrid(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var cfg quilt.GridConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		jsonError(w, "invalid grid config", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	err = sess.SetGrid(cfg)
	s.mu.Unlock()
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleShuffle(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	sess.Shuffle()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// dropRequest describes a completed drag: source is "cell" for a grid to
// grid swap or "library" for placing a library copy.
type dropRequest struct {
	Source string `json:"source"`
	From   int    `json:"from"`
	To     int    `json:"to"`
}

func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var req dropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid drop request", http.StatusBadRequest)
		return
	}

	var src quilt.DragSource
	switch req.Source {
	case "cell":
		src = quilt.DragCell
	case "library":
		src = quilt.DragLibrary
	default:
		jsonError(w, "source must be \"cell\" or \"library\"", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	err = sess.BeginDrag(src, req.From)
	if err == nil {
		// Drop clears the drag state on every path; an invalid target is a
		// silent no-op, mirroring a drop outside the grid.
		err = sess.Drop(req.To)
	}
	s.mu.Unlock()
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRotate(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		jsonError(w, "invalid cell index", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	err = sess.RotateCell(index)
	s.mu.Unlock()
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCopyToLibrary(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var req struct {
		Index int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid library request", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	err = sess.CopyToLibrary(req.Index)
	s.mu.Unlock()
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRemoveFromLibrary(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		jsonError(w, "invalid library index", http.StatusBadRequest)
		return
	}

	// Out-of-range removal is a no-op, not an error.
	s.mu.Lock()
	sess.RemoveFromLibrary(index)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCellSVG(w http.ResponseWriter, r *http.Request) {
	s.servePatternSVG(w, r, false)
}

func (s *Server) handleLibrarySVG(w http.ResponseWriter, r *http.Request) {
	s.servePatternSVG(w, r, true)
}

func (s *Server) servePatternSVG(w http.ResponseWriter, r *http.Request, fromLibrary bool) {
	sess, err := s.session(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		jsonError(w, "invalid index", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	sess.EnsurePatterns()
	source := sess.Patterns
	if fromLibrary {
		source = sess.Library
	}
	var pattern quilt.Pattern
	ok := index >= 0 && index < len(source)
	if ok {
		pattern = source[index].Clone()
	}
	s.mu.Unlock()

	if !ok {
		jsonError(w, "index out of range", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	if err := quilt.RenderSVG(w, pattern); err != nil {
		s.log.Error().Err(err).Msg("svg render failed")
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	opts := []quilt.Option{}
	if cell, err := strconv.Atoi(r.URL.Query().Get("cell")); err == nil && cell > 0 {
		opts = append(opts, quilt.WithCellSize(cell))
	}
	vp, hasVp := viewport(r)

	s.mu.Lock()
	sess.EnsurePatterns()
	patterns := make([]quilt.Pattern, len(sess.Patterns))
	for i, p := range sess.Patterns {
		patterns[i] = p.Clone()
	}
	cfg := sess.Grid
	s.mu.Unlock()

	if hasVp {
		opts = append(opts, quilt.WithViewport(vp))
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition",
		"attachment; filename=\""+quilt.ExportFilename(time.Now())+"\"")
	if err := quilt.ExportPNG(w, patterns, cfg, opts...); err != nil {
		s.log.Error().Err(err).Msg("export failed")
	}
}

func (s *Server) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	now := time.Now()
	s.mu.Lock()
	data, err := sess.EncodeSnapshot(now)
	s.mu.Unlock()
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		"attachment; filename=\"quilt-"+strconv.FormatInt(now.UnixMilli(), 10)+".json\"")
	w.Write(data)
}

func (s *Server) handleLoadSnapshot(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxSnapshotSize)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, "snapshot too large", http.StatusRequestEntityTooLarge)
		return
	}

	s.mu.Lock()
	err = sess.LoadSnapshot(data)
	s.mu.Unlock()
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
