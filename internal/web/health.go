package web

import (
	"encoding/json"
	"net/http"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	body := map[string]string{
		"status":        "ok",
		"session_store": s.sessions.Backend(),
	}
	status := http.StatusOK

	if err := s.sessions.Ping(r.Context()); err != nil {
		body["status"] = "degraded"
		body["error"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
