package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/seenimoa/pageblocks/internal/chart"
	"github.com/seenimoa/pageblocks/internal/config"
	"github.com/seenimoa/pageblocks/internal/geometry"
	"github.com/seenimoa/pageblocks/internal/infra"
)

var errBadRequest = errors.New("bad request")

// ArcsRequest is the body for POST /api/v1/arcs and the data of a "ring"
// WebSocket message. Omitted center and start angle fall back to a ring
// centered in its 2*outer square starting at the configured angle.
type ArcsRequest struct {
	Slices     []geometry.Slice `json:"slices"`
	Inner      float64          `json:"inner"`
	Outer      float64          `json:"outer"`
	Center     *geometry.Point  `json:"center,omitempty"`
	StartAngle *float64         `json:"start_angle,omitempty"`
	Precision  *int             `json:"precision,omitempty"`
}

// Arc is one computed slice with its rendered path data.
type Arc struct {
	geometry.ArcPath
	D string `json:"d"`
}

// ArcsResponse is the payload of POST /api/v1/arcs.
type ArcsResponse struct {
	Total float64 `json:"total"`
	Arcs  []Arc   `json:"arcs"`
}

// DonutRequest is the body for POST /api/v1/charts/donut.
type DonutRequest struct {
	Slices      []geometry.Slice `json:"slices"`
	InnerRatio  *float64         `json:"inner_ratio,omitempty"`
	StartAngle  *float64         `json:"start_angle,omitempty"`
	Title       string           `json:"title,omitempty"`
	CenterLabel string           `json:"center_label,omitempty"`
	CenterSub   string           `json:"center_sub,omitempty"`
	Width       int              `json:"width,omitempty"`
	Height      int              `json:"height,omitempty"`
	HideLegend  bool             `json:"hide_legend,omitempty"`
}

// ChartEvent is broadcast to WebSocket clients after a chart render.
type ChartEvent struct {
	Title  string `json:"title,omitempty"`
	Slices int    `json:"slices"`
	Cached bool   `json:"cached"`
}

// computeArcs validates req and returns arcs with path data.
func computeArcs(req ArcsRequest, rc config.RenderConfig) (*ArcsResponse, error) {
	ring := geometry.NewRing(req.Slices, req.Inner, req.Outer).WithStartAngle(rc.StartAngle)
	if req.Center != nil {
		ring = ring.WithCenter(*req.Center)
	}
	if req.StartAngle != nil {
		ring = ring.WithStartAngle(*req.StartAngle)
	}
	prec := rc.Precision
	if req.Precision != nil {
		prec = *req.Precision
	}
	if prec < 0 || prec > 6 {
		return nil, fmt.Errorf("%w: precision must be 0..6, got %d", errBadRequest, prec)
	}

	paths, err := geometry.Compute(ring)
	if err != nil {
		return nil, err
	}
	arcs := make([]Arc, len(paths))
	for i, p := range paths {
		arcs[i] = Arc{ArcPath: p, D: p.DWithPrecision(prec)}
	}
	return &ArcsResponse{Total: geometry.Total(req.Slices), Arcs: arcs}, nil
}

func (s *Server) handleArcs(w http.ResponseWriter, r *http.Request) {
	var req ArcsRequest
	if _, err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := computeArcs(req, s.cfg.Render)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: resp})
}

func (s *Server) handleDonut(w http.ResponseWriter, r *http.Request) {
	var req DonutRequest
	body, err := readJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := infra.Key("donut", body)
	if svg, ok := s.charts.Get(key); ok {
		s.wsHub.Broadcast(WSMessage{Type: "chart", Data: ChartEvent{Title: req.Title, Slices: len(req.Slices), Cached: true}})
		writeSVG(w, svg, true)
		return
	}

	svg, err := chart.DonutChart(req.Slices, s.donutOptions(req), s.donutConfig(req))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	s.charts.Set(key, svg)
	s.logger.Debug("donut rendered", zap.Int("slices", len(req.Slices)), zap.Int("bytes", len(svg)))
	s.wsHub.Broadcast(WSMessage{Type: "chart", Data: ChartEvent{Title: req.Title, Slices: len(req.Slices)}})
	writeSVG(w, svg, false)
}

func (s *Server) donutOptions(req DonutRequest) chart.DonutOptions {
	opts := chart.DefaultDonutOptions()
	opts.InnerRatio = s.cfg.Render.InnerRatio
	opts.StartAngle = s.cfg.Render.StartAngle
	if req.InnerRatio != nil {
		opts.InnerRatio = *req.InnerRatio
	}
	if req.StartAngle != nil {
		opts.StartAngle = *req.StartAngle
	}
	opts.CenterLabel = req.CenterLabel
	opts.CenterSub = req.CenterSub
	opts.ShowLegend = !req.HideLegend
	return opts
}

func (s *Server) donutConfig(req DonutRequest) chart.ChartConfig {
	width, height := s.cfg.Render.Width, s.cfg.Render.Height
	if req.Width > 0 {
		width = req.Width
	}
	if req.Height > 0 {
		height = req.Height
	}
	if !req.HideLegend && req.Width == 0 {
		width += 160
	}
	cfg := chart.WidgetConfig(width, height)
	cfg.Precision = s.cfg.Render.Precision
	cfg.Title = req.Title
	if req.Title != "" {
		cfg.MarginTop = 32
	}
	return cfg
}

// readJSON decodes the request body into v and returns the raw bytes.
func readJSON(w http.ResponseWriter, r *http.Request, v any) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return body, nil
}

func writeSVG(w http.ResponseWriter, svg string, cached bool) {
	w.Header().Set("Content-Type", "image/svg+xml")
	if cached {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, svg)
}
