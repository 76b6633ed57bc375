package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

func decodePayload[T any](r *http.Request) (T, error) {
	var v T
	err := json.NewDecoder(r.Body).Decode(&v)
	defer r.Body.Close()
	if err != nil {
		return v, fmt.Errorf("failure decoding request payload: %w", err)
	}
	return v, err
}

func makeStatusCodeMsg(code int) string {
	return fmt.Sprintf("%d %s", code, http.StatusText(code))
}

// respondWithError writes msg to the client and logs msg plus err on the
// server. err never reaches the client.
func respondWithError(w http.ResponseWriter, kind ErrorKind, msg string, err error) {
	code := kind.Status()
	// prefix the message with a status code message
	errorMessage := makeStatusCodeMsg(code)
	// add the optional info message, if it exists
	if msg != "" {
		errorMessage += fmt.Sprintf("; %s", msg)
	}
	// add the technical error message, if it exists
	if err != nil {
		errorMessage += fmt.Sprintf(": %s", err.Error())
	}

	// log the error on the server
	if code >= http.StatusInternalServerError {
		slog.Error(errorMessage, slog.Int("HTTP Status Code", code), slog.String("code", string(kind)))
	} else {
		slog.Warn(errorMessage, slog.Int("HTTP Status Code", code), slog.String("code", string(kind)))
	}

	if msg == "" {
		msg = http.StatusText(code)
	}

	type errorResponse struct {
		Error string    `json:"error"`
		Code  ErrorKind `json:"code"`
	}
	respondWithJSON(w, code, errorResponse{
		Error: msg,
		Code:  kind,
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("could not marshal JSON for response: " + err.Error())
		w.WriteHeader(500)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, err = w.Write(data)
	if err != nil {
		slog.Error("could not write to header from JSON payload: " + err.Error())
	}
}

// respondWithMessage responds with a JSON body of the form {"message": msg}.
func respondWithMessage(w http.ResponseWriter, code int, msg string) {
	type messageResponse struct {
		Message string `json:"message"`
	}
	respondWithJSON(w, code, messageResponse{Message: msg})
}

// parseUUIDFromPath parses the named path parameter as a UUID.
func parseUUIDFromPath(pathParam string, r *http.Request) (uuid.UUID, error) {
	uuidString := r.PathValue(pathParam)
	parsedID, err := uuid.Parse(uuidString)
	if err != nil {
		return uuid.Nil, fmt.Errorf("value '%s' for path parameter '%s' could not be parsed as UUID: %w", uuidString, pathParam, err)
	}
	return parsedID, nil
}
