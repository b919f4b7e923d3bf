package api

import (
	"net/http"

	"github.com/seenimoa/pageblocks/internal/config"
)

// ConfigResponse is the JSON payload returned by GET /api/v1/config.
type ConfigResponse struct {
	Config   *config.Config   `json:"config"`
	Settings []config.Setting `json:"settings"`
}

// handleGetConfig returns the running configuration and where each
// setting came from.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: ConfigResponse{
			Config:   s.cfg,
			Settings: config.Describe(s.cfg),
		},
	})
}
