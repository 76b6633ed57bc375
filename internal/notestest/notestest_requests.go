// Package notestest holds request builders, response helpers and an
// in-memory store for exercising the API without a database.
package notestest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
)

// MakeRequest builds a JSON request, attaching a bearer token when one is given.
func MakeRequest(method, path, token string, body any) *http.Request {
	var buffer io.Reader

	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		buffer = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, buffer)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// USER AUTH

func Register(username, password string) *http.Request {
	return MakeRequest(http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": username,
		"password": password,
	})
}

func RegisterWithRole(username, password, email, role string) *http.Request {
	return MakeRequest(http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": username,
		"password": password,
		"email":    email,
		"role":     role,
	})
}

func Login(username, password string) *http.Request {
	return MakeRequest(http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": username,
		"password": password,
	})
}

// USER PROFILE

func UpdateProfile(token string, fields map[string]any) *http.Request {
	return MakeRequest(http.MethodPut, "/api/user/profile", token, fields)
}

func AdminArea(token string) *http.Request {
	return MakeRequest(http.MethodGet, "/api/user/admin", token, nil)
}

func UserArea(token string) *http.Request {
	return MakeRequest(http.MethodGet, "/api/user/user", token, nil)
}

func GetUserCount() *http.Request {
	return MakeRequest(http.MethodGet, "/admin/users/count", "", nil)
}

// NOTE CRUD

func CreateNote(token, title, content, category string) *http.Request {
	return MakeRequest(http.MethodPost, "/api/notes", token, map[string]any{
		"title":    title,
		"content":  content,
		"category": category,
	})
}

func GetNotes(token string) *http.Request {
	return MakeRequest(http.MethodGet, "/api/notes", token, nil)
}

func GetNote(token, noteID string) *http.Request {
	return MakeRequest(http.MethodGet, "/api/notes/"+noteID, token, nil)
}

func UpdateNote(token, noteID, title, content, category string) *http.Request {
	return MakeRequest(http.MethodPut, "/api/notes/"+noteID, token, map[string]any{
		"title":    title,
		"content":  content,
		"category": category,
	})
}

func DeleteNote(token, noteID string) *http.Request {
	return MakeRequest(http.MethodDelete, "/api/notes/"+noteID, token, nil)
}
