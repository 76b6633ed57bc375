package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/YouWantToPinch/pincher-notes/internal/database"
)

type Note struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
}

func noteFromDB(n database.Note) Note {
	return Note{
		ID:        n.ID,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
		UserID:    n.UserID,
		Title:     n.Title,
		Content:   n.Content,
		Category:  n.Category,
	}
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Message  string `json:"message,omitempty"`
}

// Profile holds the public user fields; the password hash never leaves the server.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}
