package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/YouWantToPinch/pincher-notes/internal/database"
)

// noteNotFoundMsg covers both a missing note and someone else's note.
const noteNotFoundMsg = "Note not found"

type noteRqSchema struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

func (cfg *APIConfig) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())

	rqPayload, err := decodePayload[noteRqSchema](r)
	if err != nil {
		respondWithError(w, KindValidation, "Malformed request body", err)
		return
	}
	if strings.TrimSpace(rqPayload.Title) == "" {
		respondWithError(w, KindValidation, "Title is required", nil)
		return
	}

	dbNote, err := cfg.db.CreateNote(r.Context(), database.CreateNoteParams{
		UserID:   identity.UserID,
		Title:    rqPayload.Title,
		Content:  rqPayload.Content,
		Category: rqPayload.Category,
	})
	if err != nil {
		respondWithError(w, KindInternal, "Error creating note", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, noteFromDB(dbNote))
}

func (cfg *APIConfig) handleGetNotes(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())

	dbNotes, err := cfg.db.GetNotesByUserID(r.Context(), identity.UserID)
	if err != nil {
		respondWithError(w, KindInternal, "Error fetching notes", err)
		return
	}

	rspPayload := make([]Note, 0, len(dbNotes))
	for _, n := range dbNotes {
		rspPayload = append(rspPayload, noteFromDB(n))
	}

	respondWithJSON(w, http.StatusOK, rspPayload)
}

func (cfg *APIConfig) handleGetNote(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())

	noteID, err := parseUUIDFromPath("note_id", r)
	if err != nil {
		respondWithError(w, KindNotFound, noteNotFoundMsg, err)
		return
	}

	dbNote, err := cfg.db.GetNoteByIDAndUserID(r.Context(), database.GetNoteByIDAndUserIDParams{
		ID:     noteID,
		UserID: identity.UserID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondWithError(w, KindNotFound, noteNotFoundMsg, nil)
			return
		}
		respondWithError(w, KindInternal, "Error fetching note", err)
		return
	}

	respondWithJSON(w, http.StatusOK, noteFromDB(dbNote))
}

func (cfg *APIConfig) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())

	noteID, err := parseUUIDFromPath("note_id", r)
	if err != nil {
		respondWithError(w, KindNotFound, noteNotFoundMsg, err)
		return
	}

	rqPayload, err := decodePayload[noteRqSchema](r)
	if err != nil {
		respondWithError(w, KindValidation, "Malformed request body", err)
		return
	}
	if strings.TrimSpace(rqPayload.Title) == "" {
		respondWithError(w, KindValidation, "Title is required", nil)
		return
	}

	dbNote, err := cfg.db.UpdateNote(r.Context(), database.UpdateNoteParams{
		ID:       noteID,
		UserID:   identity.UserID,
		Title:    rqPayload.Title,
		Content:  rqPayload.Content,
		Category: rqPayload.Category,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondWithError(w, KindNotFound, noteNotFoundMsg, nil)
			return
		}
		respondWithError(w, KindInternal, "Error updating note", err)
		return
	}

	respondWithJSON(w, http.StatusOK, noteFromDB(dbNote))
}

func (cfg *APIConfig) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())

	noteID, err := parseUUIDFromPath("note_id", r)
	if err != nil {
		respondWithError(w, KindNotFound, noteNotFoundMsg, err)
		return
	}

	removed, err := cfg.db.DeleteNote(r.Context(), database.DeleteNoteParams{
		ID:     noteID,
		UserID: identity.UserID,
	})
	if err != nil {
		respondWithError(w, KindInternal, "Error deleting note", err)
		return
	}
	if removed == 0 {
		respondWithError(w, KindNotFound, noteNotFoundMsg, nil)
		return
	}

	respondWithMessage(w, http.StatusOK, "Note deleted successfully")
}
