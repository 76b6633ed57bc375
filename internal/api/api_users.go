package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/YouWantToPinch/pincher-notes/internal/auth"
	"github.com/YouWantToPinch/pincher-notes/internal/database"
)

// handleUpdateProfile changes username, email and/or password. The current
// password is checked before any field changes, even when the password
// itself stays the same.
func (cfg *APIConfig) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())

	type rqSchema struct {
		Username        string `json:"username"`
		Email           string `json:"email"`
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}

	rqPayload, err := decodePayload[rqSchema](r)
	if err != nil {
		respondWithError(w, KindValidation, "Malformed request body", err)
		return
	}

	dbUser, err := cfg.db.GetUserByID(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondWithError(w, KindNotFound, "User not found", nil)
			return
		}
		respondWithError(w, KindProfileUpdateFailed, "Error updating profile", err)
		return
	}

	match, err := auth.CheckPasswordHash(rqPayload.CurrentPassword, dbUser.HashedPassword)
	if err != nil {
		respondWithError(w, KindProfileUpdateFailed, "Error updating profile", err)
		return
	}
	if !match {
		respondWithError(w, KindInvalidCredentials, "Current password is incorrect", nil)
		return
	}

	params := database.UpdateUserProfileParams{
		ID:             dbUser.ID,
		Username:       dbUser.Username,
		Email:          dbUser.Email,
		HashedPassword: dbUser.HashedPassword,
	}
	if rqPayload.Username != "" {
		params.Username = rqPayload.Username
	}
	if rqPayload.Email != "" {
		params.Email = rqPayload.Email
	}
	if rqPayload.NewPassword != "" {
		hashedPass, err := auth.HashPassword(rqPayload.NewPassword, cfg.hashAlgo)
		if err != nil {
			if errors.Is(err, auth.ErrPasswordTooLong) {
				respondWithError(w, KindValidation, "Password is too long", nil)
				return
			}
			respondWithError(w, KindProfileUpdateFailed, "Error updating profile", err)
			return
		}
		params.HashedPassword = hashedPass
	}

	updated, err := cfg.db.UpdateUserProfile(r.Context(), params)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondWithError(w, KindNotFound, "User not found", nil)
			return
		}
		cause := "storage"
		if database.IsUniqueViolation(err) {
			cause = "duplicate_username"
		}
		slog.Warn("profile update failed", slog.String("cause", cause))
		respondWithError(w, KindProfileUpdateFailed, "Error updating profile", err)
		return
	}

	respondWithJSON(w, http.StatusOK, Profile{
		Username: updated.Username,
		Email:    updated.Email,
	})
}

func (cfg *APIConfig) handleAdminArea(w http.ResponseWriter, r *http.Request) {
	respondWithMessage(w, http.StatusOK, "Admin")
}

func (cfg *APIConfig) handleUserArea(w http.ResponseWriter, r *http.Request) {
	respondWithMessage(w, http.StatusOK, "User")
}
