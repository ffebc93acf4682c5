package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Dan9191/crypto-companion/internal/models"
)

// MemoryStore keeps every table in memory. It backs tests and DB_CONN=memory runs
// without Postgres.
type MemoryStore struct {
	mu       sync.RWMutex
	seq      int64
	users    map[string]*models.User
	sessions map[string]*models.Session
	recovery map[string]models.RecoveryToken
	holdings []*storedHolding
	todos    []*storedTodo
	now      func() time.Time
}

type storedHolding struct {
	seq int64
	h   models.Holding
}

type storedTodo struct {
	seq int64
	t   models.Todo
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]*models.User),
		sessions: make(map[string]*models.Session),
		recovery: make(map[string]models.RecoveryToken),
		now:      time.Now,
	}
}

func (s *MemoryStore) next() int64 {
	s.seq++
	return s.seq
}

func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("user %s: %w", user.Email, ErrDuplicate)
		}
	}
	user.CreatedAt = s.now()
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *MemoryStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user: %w", ErrNotFound)
}

func (s *MemoryStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user: %w", ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("user: %w", ErrNotFound)
	}
	u.PasswordHash = passwordHash
	return nil
}

func (s *MemoryStore) CreateSession(ctx context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *session
	cp.Token = ""
	s.sessions[session.ID] = &cp
	return nil
}

func (s *MemoryStore) FindSession(ctx context.Context, id string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session: %w", ErrNotFound)
	}
	cp := *session
	if u, ok := s.users[cp.UserID]; ok {
		cp.Email = u.Email
	}
	return &cp, nil
}

func (s *MemoryStore) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) CreateRecoveryToken(ctx context.Context, token *models.RecoveryToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recovery[token.ID] = *token
	return nil
}

func (s *MemoryStore) ConsumeRecoveryToken(ctx context.Context, id string) (*models.RecoveryToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.recovery[id]
	if !ok {
		return nil, fmt.Errorf("recovery token: %w", ErrNotFound)
	}
	delete(s.recovery, id)
	return &token, nil
}

func (s *MemoryStore) UpsertHolding(ctx context.Context, h *models.Holding) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, stored := range s.holdings {
		if stored.h.UserID == h.UserID && stored.h.CoinID == h.CoinID {
			h.CreatedAt = stored.h.CreatedAt
			stored.h = *h
			return nil
		}
	}
	h.CreatedAt = s.now()
	s.holdings = append(s.holdings, &storedHolding{seq: s.next(), h: *h})
	return nil
}

func (s *MemoryStore) ListHoldings(ctx context.Context, userID string, selectedOnly bool) ([]models.Holding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Holding, 0)
	for _, stored := range s.holdings {
		if stored.h.UserID != userID || (selectedOnly && !stored.h.IsSelected) {
			continue
		}
		out = append(out, stored.h)
	}
	return out, nil
}

func (s *MemoryStore) ListAllHoldings(ctx context.Context) ([]models.Holding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Holding, 0, len(s.holdings))
	for _, stored := range s.holdings {
		out = append(out, stored.h)
	}
	return out, nil
}

func (s *MemoryStore) SetHoldingSelected(ctx context.Context, userID, coinID string, selected bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, stored := range s.holdings {
		if stored.h.UserID == userID && stored.h.CoinID == coinID {
			stored.h.IsSelected = selected
			return nil
		}
	}
	return fmt.Errorf("holding: %w", ErrNotFound)
}

func (s *MemoryStore) UpdateHoldingPrice(ctx context.Context, coinID string, price float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, stored := range s.holdings {
		if stored.h.CoinID == coinID {
			stored.h.Revalue(price)
		}
	}
	return nil
}

func (s *MemoryStore) DeleteHoldings(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.holdings[:0]
	for _, stored := range s.holdings {
		if stored.h.UserID != userID {
			kept = append(kept, stored)
		}
	}
	s.holdings = kept
	return nil
}

func (s *MemoryStore) InsertTodo(ctx context.Context, todo *models.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo.CreatedAt = s.now()
	s.todos = append(s.todos, &storedTodo{seq: s.next(), t: cloneTodo(*todo)})
	return nil
}

func (s *MemoryStore) ListTodos(ctx context.Context, userID string, todoType models.TodoType, ascending bool) ([]models.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*storedTodo, 0)
	for _, stored := range s.todos {
		if stored.t.UserID == userID && stored.t.Type == todoType {
			matched = append(matched, stored)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.t.CreatedAt.Equal(b.t.CreatedAt) {
			return a.t.CreatedAt.Before(b.t.CreatedAt) == ascending
		}
		return (a.seq < b.seq) == ascending
	})

	out := make([]models.Todo, 0, len(matched))
	for _, stored := range matched {
		out = append(out, cloneTodo(stored.t))
	}
	return out, nil
}

func (s *MemoryStore) FindTodo(ctx context.Context, userID, id string) (*models.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, stored := range s.todos {
		if stored.t.UserID == userID && stored.t.ID == id {
			t := cloneTodo(stored.t)
			return &t, nil
		}
	}
	return nil, fmt.Errorf("todo: %w", ErrNotFound)
}

func (s *MemoryStore) UpdateTodo(ctx context.Context, todo *models.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, stored := range s.todos {
		if stored.t.UserID == todo.UserID && stored.t.ID == todo.ID {
			stored.t.Text = append([]string(nil), todo.Text...)
			stored.t.Completed = append([]bool(nil), todo.Completed...)
			return nil
		}
	}
	return fmt.Errorf("todo: %w", ErrNotFound)
}

func (s *MemoryStore) DeleteTodo(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, stored := range s.todos {
		if stored.t.UserID == userID && stored.t.ID == id {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("todo: %w", ErrNotFound)
}

func (s *MemoryStore) DeleteTodos(ctx context.Context, userID string, todoType models.TodoType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.todos[:0]
	for _, stored := range s.todos {
		if stored.t.UserID != userID || stored.t.Type != todoType {
			kept = append(kept, stored)
		}
	}
	s.todos = kept
	return nil
}

func cloneTodo(t models.Todo) models.Todo {
	t.Text = append([]string(nil), t.Text...)
	t.Completed = append([]bool(nil), t.Completed...)
	return t
}
