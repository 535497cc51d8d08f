package api

import "net/http"

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"widgets": s.manager.Count(),
		"latency": s.manager.Stats(),
	})
}
