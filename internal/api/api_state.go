package api

import (
	"net/http"
)

func (cfg *APIConfig) handleReadiness(w http.ResponseWriter, r *http.Request) {
	type rspSchema struct {
		Status string `json:"status"`
	}
	respondWithJSON(w, http.StatusOK, rspSchema{Status: "ok"})
}
