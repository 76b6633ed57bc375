package api

import (
	"net/http"
)

// handleGetTotalUserCount is a diagnostics endpoint served only when PLATFORM=dev.
func (cfg *APIConfig) handleGetTotalUserCount(w http.ResponseWriter, r *http.Request) {
	if cfg.platform != "dev" {
		respondWithError(w, KindForbidden, "Only available on the dev platform", nil)
		return
	}

	count, err := cfg.db.GetUserCount(r.Context())
	if err != nil {
		respondWithError(w, KindInternal, "Could not count users", err)
		return
	}

	type rspSchema struct {
		Count int64 `json:"count"`
	}

	respondWithJSON(w, http.StatusOK, rspSchema{Count: count})
}
