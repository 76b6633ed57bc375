package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/YouWantToPinch/pincher-notes/internal/auth"
	"github.com/YouWantToPinch/pincher-notes/internal/database"
)

// registrationFailedMsg is shared by every registration failure cause.
const registrationFailedMsg = "Something went wrong"

func (cfg *APIConfig) handleRegister(w http.ResponseWriter, r *http.Request) {
	type rqSchema struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Email    string `json:"email"`
		Role     string `json:"role"`
	}

	rqPayload, err := decodePayload[rqSchema](r)
	if err != nil {
		respondWithError(w, KindValidation, "Malformed request body", err)
		return
	}

	if rqPayload.Username == "" || rqPayload.Password == "" {
		respondWithError(w, KindValidation, "Missing username or password", nil)
		return
	}

	role := auth.USER
	if rqPayload.Role != "" {
		role, err = auth.RoleFromString(rqPayload.Role)
		if err != nil {
			respondWithError(w, KindValidation, "Unknown role", err)
			return
		}
	}

	hashedPass, err := auth.HashPassword(rqPayload.Password, cfg.hashAlgo)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			respondWithError(w, KindValidation, "Password is too long", nil)
			return
		}
		respondWithError(w, KindRegistrationFailed, registrationFailedMsg, err)
		return
	}

	dbUser, err := cfg.db.CreateUser(r.Context(), database.CreateUserParams{
		Username:       rqPayload.Username,
		HashedPassword: hashedPass,
		Email:          rqPayload.Email,
		Role:           role.String(),
	})
	if err != nil {
		cause := "storage"
		if database.IsUniqueViolation(err) {
			cause = "duplicate_username"
		}
		slog.Warn("registration failed", slog.String("cause", cause))
		respondWithError(w, KindRegistrationFailed, registrationFailedMsg, err)
		return
	}

	accessToken, err := auth.MakeJWT(dbUser.ID, role, jwt.SigningMethodHS256, cfg.secret, accessTokenTTL)
	if err != nil {
		respondWithError(w, KindRegistrationFailed, registrationFailedMsg, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, AuthResponse{
		Token:    accessToken,
		Username: dbUser.Username,
		Message:  "User registered with username " + dbUser.Username,
	})
}

func (cfg *APIConfig) handleLogin(w http.ResponseWriter, r *http.Request) {
	type rqSchema struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	rqPayload, err := decodePayload[rqSchema](r)
	if err != nil {
		respondWithError(w, KindValidation, "Malformed request body", err)
		return
	}

	if rqPayload.Username == "" || rqPayload.Password == "" {
		respondWithError(w, KindValidation, "Missing credential(s)", nil)
		return
	}

	dbUser, err := cfg.db.GetUserByUsername(r.Context(), rqPayload.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondWithError(w, KindUserNotFound, "User with username "+rqPayload.Username+" not found", nil)
			return
		}
		respondWithError(w, KindInternal, "Something went wrong", err)
		return
	}

	match, err := auth.CheckPasswordHash(rqPayload.Password, dbUser.HashedPassword)
	if err != nil {
		respondWithError(w, KindInternal, "Something went wrong", err)
		return
	}
	if !match {
		respondWithError(w, KindInvalidCredentials, "Invalid Password", nil)
		return
	}

	role, err := auth.RoleFromString(dbUser.Role)
	if err != nil {
		respondWithError(w, KindInternal, "Something went wrong", err)
		return
	}

	accessToken, err := auth.MakeJWT(dbUser.ID, role, jwt.SigningMethodHS256, cfg.secret, accessTokenTTL)
	if err != nil {
		respondWithError(w, KindInternal, "Something went wrong", err)
		return
	}

	respondWithJSON(w, http.StatusOK, AuthResponse{
		Token:    accessToken,
		Username: dbUser.Username,
	})
}
