package api

import "net/http"

type statusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Items   int    `json:"items"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	n, err := s.Store.CountItems()
	if err != nil {
		s.Log.Error("count items", "error", err)
		writeError(w, http.StatusInternalServerError, "count items failed")
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "ok",
		Version: s.Version,
		Items:   n,
	})
}
