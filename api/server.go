// Package api provides the HTTP preview server for pageblocks.
//
// It serves the block catalog as HTML pages and fragments, computes arc
// geometry and donut charts on demand, and streams live arc results over
// a WebSocket.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/seenimoa/pageblocks/internal/blocks"
	"github.com/seenimoa/pageblocks/internal/chart"
	"github.com/seenimoa/pageblocks/internal/config"
	"github.com/seenimoa/pageblocks/internal/geometry"
	"github.com/seenimoa/pageblocks/internal/infra"
	"github.com/seenimoa/pageblocks/internal/logging"
	"github.com/seenimoa/pageblocks/web"
)

// Version is reported by the health endpoint. Set by the CLI at startup.
var Version = "dev"

const maxBodyBytes = 1 << 20

// Server is the HTTP preview server.
type Server struct {
	router  chi.Router
	cfg     *config.Config
	catalog *blocks.Catalog
	logger  *zap.Logger
	wsHub   *WSHub
	charts  *infra.Cache[string]
	limiter *rate.Limiter
}

// NewServer creates a configured server with all routes and middleware.
// A nil logger discards logs.
func NewServer(cfg *config.Config, catalog *blocks.Catalog, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := &Server{
		cfg:     cfg,
		catalog: catalog,
		logger:  logger,
		wsHub:   NewWSHub(logger),
		charts:  infra.NewCache[string](time.Duration(cfg.Server.CacheTTL) * time.Second),
		limiter: infra.PerMinute(cfg.Server.RateLimit),
	}
	srv.router = srv.buildRouter()
	return srv
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// Hub returns the WebSocket hub.
func (s *Server) Hub() *WSHub {
	return s.wsHub
}

// ListenAndServe starts the HTTP server and blocks until ctx is done or
// SIGINT/SIGTERM arrives, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	bg, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.wsHub.Run(bg)
	go s.charts.RunJanitor(bg, time.Minute)

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	s.logger.Info("server listening", zap.String("addr", addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	return httpSrv.Shutdown(shutdownCtx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// CORS
	origins := []string{"*"}
	if len(s.cfg.Server.CORSOrigins) > 0 {
		origins = s.cfg.Server.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// Pages
	r.Get("/", s.handleIndex)
	r.Get("/blocks/{name}", s.handleBlockPage)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.StaticFS()))))

	// Health check
	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// Catalog
		r.Get("/blocks", s.handleListBlocks)
		r.Get("/blocks/{name}", s.handleBlockFragment)

		// Geometry and charts
		r.Group(func(r chi.Router) {
			r.Use(infra.Limit(s.limiter, func(w http.ResponseWriter, r *http.Request) {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			}))
			r.Post("/arcs", s.handleArcs)
			r.Post("/charts/donut", s.handleDonut)
		})

		// Configuration
		r.Get("/config", s.handleGetConfig)

		// WebSocket
		r.Get("/ws", s.handleWebSocket)
	})

	return r
}

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// HealthInfo is the payload of the health endpoint.
type HealthInfo struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Blocks    int    `json:"blocks"`
	WSClients int    `json:"ws_clients"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: HealthInfo{
			Status:    "ok",
			Version:   Version,
			Blocks:    s.catalog.Len(),
			WSClients: s.wsHub.ClientCount(),
		},
	})
}

func (s *Server) handleListBlocks(w http.ResponseWriter, r *http.Request) {
	list := s.catalog.List()
	if category := r.URL.Query().Get("category"); category != "" {
		list = s.catalog.ByCategory(category)
	}
	if list == nil {
		list = []blocks.Block{}
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: list})
}

func (s *Server) handleBlockFragment(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var buf bytes.Buffer
	if err := s.catalog.RenderFragment(&buf, name); err != nil {
		s.logRenderError(r, name, err)
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeHTML(w, buf.Bytes())
}

func (s *Server) handleBlockPage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var buf bytes.Buffer
	if err := s.catalog.RenderPage(&buf, []string{name}, blocks.PageConfig{}); err != nil {
		s.logRenderError(r, name, err)
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	writeHTML(w, buf.Bytes())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := s.catalog.RenderIndex(&buf, blocks.PageConfig{Title: "Block catalog"}, func(name string) string {
		return "/blocks/" + name
	})
	if err != nil {
		s.logger.Error("render index", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeHTML(w, buf.Bytes())
}

func (s *Server) logRenderError(r *http.Request, name string, err error) {
	if statusFor(err) >= http.StatusInternalServerError {
		s.logger.Error("render block",
			zap.String("block", name),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
	}
}

// ============================================================
// Helpers
// ============================================================

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var notFound *blocks.BlockNotFoundError
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.Is(err, geometry.ErrInvalidSlice),
		errors.Is(err, geometry.ErrInvalidRing),
		errors.Is(err, chart.ErrPlotTooSmall),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, geometry.ErrDegenerateInput):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
