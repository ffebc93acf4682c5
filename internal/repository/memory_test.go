package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dan9191/crypto-companion/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Users(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.CreateUser(ctx, &models.User{ID: "u1", Email: "a@example.com", PasswordHash: "h"}))
	err := s.CreateUser(ctx, &models.User{ID: "u2", Email: "A@example.com"})
	assert.True(t, errors.Is(err, ErrDuplicate))

	u, err := s.FindUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	require.NoError(t, s.UpdatePassword(ctx, "u1", "h2"))
	u, err = s.FindUserByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "h2", u.PasswordHash)

	_, err = s.FindUserByID(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStore_Sessions(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.CreateUser(ctx, &models.User{ID: "u1", Email: "a@example.com"}))

	require.NoError(t, s.CreateSession(ctx, &models.Session{ID: "s1", UserID: "u1", Token: "secret"}))
	session, err := s.FindSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", session.Email)
	assert.Empty(t, session.Token)

	require.NoError(t, s.DeleteSession(ctx, "s1"))
	_, err = s.FindSession(ctx, "s1")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStore_RecoveryTokensAreSingleUse(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	expires := time.Now().Add(time.Hour)

	require.NoError(t, s.CreateRecoveryToken(ctx, &models.RecoveryToken{ID: "r1", UserID: "u1", ExpiresAt: expires}))

	token, err := s.ConsumeRecoveryToken(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "u1", token.UserID)
	assert.Equal(t, expires, token.ExpiresAt)

	_, err = s.ConsumeRecoveryToken(ctx, "r1")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStore_Holdings(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.UpsertHolding(ctx, &models.Holding{UserID: "u1", CoinID: "bitcoin", Price: 10, Quantity: 1, IsSelected: true}))
	require.NoError(t, s.UpsertHolding(ctx, &models.Holding{UserID: "u1", CoinID: "ethereum", Price: 5, Quantity: 2, IsSelected: true}))
	require.NoError(t, s.UpsertHolding(ctx, &models.Holding{UserID: "u2", CoinID: "bitcoin", Price: 10, Quantity: 3, IsSelected: true}))
	require.NoError(t, s.UpsertHolding(ctx, &models.Holding{UserID: "u1", CoinID: "bitcoin", Price: 11, Quantity: 4, IsSelected: true}))

	holdings, err := s.ListHoldings(ctx, "u1", false)
	require.NoError(t, err)
	require.Len(t, holdings, 2)
	assert.Equal(t, "bitcoin", holdings[0].CoinID)
	assert.Equal(t, 4.0, holdings[0].Quantity)

	require.NoError(t, s.SetHoldingSelected(ctx, "u1", "ethereum", false))
	selected, err := s.ListHoldings(ctx, "u1", true)
	require.NoError(t, err)
	assert.Len(t, selected, 1)
	assert.True(t, errors.Is(s.SetHoldingSelected(ctx, "u1", "doge", true), ErrNotFound))

	require.NoError(t, s.UpdateHoldingPrice(ctx, "bitcoin", 20))
	all, err := s.ListAllHoldings(ctx)
	require.NoError(t, err)
	for _, h := range all {
		if h.CoinID == "bitcoin" {
			assert.Equal(t, 20.0, h.Price)
			assert.Equal(t, 20*h.Quantity, h.Value)
		}
	}

	require.NoError(t, s.DeleteHoldings(ctx, "u1"))
	holdings, err = s.ListHoldings(ctx, "u1", false)
	require.NoError(t, err)
	assert.Empty(t, holdings)
	others, err := s.ListHoldings(ctx, "u2", false)
	require.NoError(t, err)
	assert.Len(t, others, 1)
}

func TestMemoryStore_TodoOrdering(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.InsertTodo(ctx, &models.Todo{ID: id, UserID: "u1", Type: models.TodoCustom, Text: []string{id}, Completed: []bool{false}}))
	}
	require.NoError(t, s.InsertTodo(ctx, &models.Todo{ID: "p", UserID: "u1", Type: models.TodoPlan}))

	asc, err := s.ListTodos(ctx, "u1", models.TodoCustom, true)
	require.NoError(t, err)
	desc, err := s.ListTodos(ctx, "u1", models.TodoCustom, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, todoIDs(asc))
	assert.Equal(t, []string{"c", "b", "a"}, todoIDs(desc))
}

func TestMemoryStore_TodoUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	todo := &models.Todo{ID: "a", UserID: "u1", Type: models.TodoCustom, Text: []string{"buy"}, Completed: []bool{false}}
	require.NoError(t, s.InsertTodo(ctx, todo))

	todo.Completed[0] = true
	stored, err := s.FindTodo(ctx, "u1", "a")
	require.NoError(t, err)
	assert.False(t, stored.Completed[0])

	require.NoError(t, s.UpdateTodo(ctx, todo))
	stored, err = s.FindTodo(ctx, "u1", "a")
	require.NoError(t, err)
	assert.True(t, stored.Completed[0])

	assert.True(t, errors.Is(s.DeleteTodo(ctx, "u2", "a"), ErrNotFound))
	require.NoError(t, s.DeleteTodo(ctx, "u1", "a"))
	_, err = s.FindTodo(ctx, "u1", "a")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func todoIDs(todos []models.Todo) []string {
	ids := make([]string, 0, len(todos))
	for _, t := range todos {
		ids = append(ids, t.ID)
	}
	return ids
}
