package notestest

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/YouWantToPinch/pincher-notes/internal/database"
)

// MemQueries is an in-memory database.Querier with the same observable
// behavior as the Postgres queries: sql.ErrNoRows for missing rows, a
// 23505 *pq.Error for duplicate usernames, and newest-first note lists.
type MemQueries struct {
	mu    sync.Mutex
	users map[uuid.UUID]database.User
	notes map[uuid.UUID]database.Note
	clock time.Time
	// FailWith, when set, is returned by every call.
	FailWith error
}

var _ database.Querier = (*MemQueries)(nil)

func NewMemQueries() *MemQueries {
	return &MemQueries{
		users: make(map[uuid.UUID]database.User),
		notes: make(map[uuid.UUID]database.Note),
		clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns a strictly increasing timestamp so ordering is deterministic.
func (m *MemQueries) tick() time.Time {
	m.clock = m.clock.Add(time.Millisecond)
	return m.clock
}

func duplicateUsername() error {
	return &pq.Error{
		Code:       "23505",
		Message:    "duplicate key value violates unique constraint \"users_username_key\"",
		Constraint: "users_username_key",
	}
}

func (m *MemQueries) usernameTaken(username string, except uuid.UUID) bool {
	for id, u := range m.users {
		if u.Username == username && id != except {
			return true
		}
	}
	return false
}

func (m *MemQueries) CreateUser(ctx context.Context, arg database.CreateUserParams) (database.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return database.User{}, m.FailWith
	}
	if m.usernameTaken(arg.Username, uuid.Nil) {
		return database.User{}, duplicateUsername()
	}
	now := m.tick()
	u := database.User{
		ID:             uuid.New(),
		CreatedAt:      now,
		UpdatedAt:      now,
		Username:       arg.Username,
		HashedPassword: arg.HashedPassword,
		Email:          arg.Email,
		Role:           arg.Role,
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *MemQueries) GetUserByUsername(ctx context.Context, username string) (database.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return database.User{}, m.FailWith
	}
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return database.User{}, sql.ErrNoRows
}

func (m *MemQueries) GetUserByID(ctx context.Context, id uuid.UUID) (database.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return database.User{}, m.FailWith
	}
	u, ok := m.users[id]
	if !ok {
		return database.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (m *MemQueries) UpdateUserProfile(ctx context.Context, arg database.UpdateUserProfileParams) (database.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return database.User{}, m.FailWith
	}
	u, ok := m.users[arg.ID]
	if !ok {
		return database.User{}, sql.ErrNoRows
	}
	if m.usernameTaken(arg.Username, arg.ID) {
		return database.User{}, duplicateUsername()
	}
	u.Username = arg.Username
	u.Email = arg.Email
	u.HashedPassword = arg.HashedPassword
	u.UpdatedAt = m.tick()
	m.users[u.ID] = u
	return u, nil
}

func (m *MemQueries) GetUserCount(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return 0, m.FailWith
	}
	return int64(len(m.users)), nil
}

// DeleteUser removes a user directly; no API operation does this, but
// tests use it to simulate an account vanishing under a live token.
func (m *MemQueries) DeleteUser(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	for noteID, n := range m.notes {
		if n.UserID == id {
			delete(m.notes, noteID)
		}
	}
}

// UserByUsername returns the stored row, hash included, for assertions.
func (m *MemQueries) UserByUsername(username string) (database.User, bool) {
	u, err := m.GetUserByUsername(context.Background(), username)
	return u, err == nil
}

func (m *MemQueries) CreateNote(ctx context.Context, arg database.CreateNoteParams) (database.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return database.Note{}, m.FailWith
	}
	if _, ok := m.users[arg.UserID]; !ok {
		return database.Note{}, &pq.Error{Code: "23503", Message: "insert or update on table \"notes\" violates foreign key constraint"}
	}
	now := m.tick()
	n := database.Note{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		UserID:    arg.UserID,
		Title:     arg.Title,
		Content:   arg.Content,
		Category:  arg.Category,
	}
	m.notes[n.ID] = n
	return n, nil
}

func (m *MemQueries) GetNotesByUserID(ctx context.Context, userID uuid.UUID) ([]database.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	var items []database.Note
	for _, n := range m.notes {
		if n.UserID == userID {
			items = append(items, n)
		}
	}
	slices.SortFunc(items, func(a, b database.Note) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return slices.Compare(b.ID[:], a.ID[:])
	})
	return items, nil
}

func (m *MemQueries) GetNoteByIDAndUserID(ctx context.Context, arg database.GetNoteByIDAndUserIDParams) (database.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return database.Note{}, m.FailWith
	}
	n, ok := m.notes[arg.ID]
	if !ok || n.UserID != arg.UserID {
		return database.Note{}, sql.ErrNoRows
	}
	return n, nil
}

func (m *MemQueries) UpdateNote(ctx context.Context, arg database.UpdateNoteParams) (database.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return database.Note{}, m.FailWith
	}
	n, ok := m.notes[arg.ID]
	if !ok || n.UserID != arg.UserID {
		return database.Note{}, sql.ErrNoRows
	}
	n.Title = arg.Title
	n.Content = arg.Content
	n.Category = arg.Category
	n.UpdatedAt = m.tick()
	m.notes[n.ID] = n
	return n, nil
}

func (m *MemQueries) DeleteNote(ctx context.Context, arg database.DeleteNoteParams) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return 0, m.FailWith
	}
	n, ok := m.notes[arg.ID]
	if !ok || n.UserID != arg.UserID {
		return 0, nil
	}
	delete(m.notes, arg.ID)
	return 1, nil
}

// ErrStoreDown is a convenient FailWith value.
var ErrStoreDown = errors.New("connection refused")
