package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dan9191/crypto-companion/internal/models"
	"github.com/lib/pq"
)

// InsertTodo stores a new to-do row
func (r *Repository) InsertTodo(ctx context.Context, todo *models.Todo) error {
	query := `
		INSERT INTO user_todos (id, user_id, type, text, completed, created_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, todo.ID, todo.UserID, string(todo.Type), pq.Array(todo.Text), pq.Array(todo.Completed)).
		Scan(&todo.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert todo: %w", err)
	}
	return nil
}

// ListTodos returns the rows of one type ordered by creation time
func (r *Repository) ListTodos(ctx context.Context, userID string, todoType models.TodoType, ascending bool) ([]models.Todo, error) {
	order := "DESC"
	if ascending {
		order = "ASC"
	}
	query := `
		SELECT id, user_id, type, text, completed, created_at
		FROM user_todos
		WHERE user_id = $1 AND type = $2
		ORDER BY created_at ` + order

	rows, err := r.db.QueryContext(ctx, query, userID, string(todoType))
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := make([]models.Todo, 0)
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read todos: %w", err)
	}
	return todos, nil
}

// FindTodo retrieves one row of a user
func (r *Repository) FindTodo(ctx context.Context, userID, id string) (*models.Todo, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, type, text, completed, created_at
		FROM user_todos
		WHERE user_id = $1 AND id = $2`, userID, id)
	todo, err := scanTodo(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("todo: %w", ErrNotFound)
	}
	return todo, err
}

// UpdateTodo stores the text and completion flags of a row
func (r *Repository) UpdateTodo(ctx context.Context, todo *models.Todo) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE user_todos SET text = $1, completed = $2 WHERE user_id = $3 AND id = $4`,
		pq.Array(todo.Text), pq.Array(todo.Completed), todo.UserID, todo.ID)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}
	return expectRows(res, "todo")
}

// DeleteTodo removes one row of a user
func (r *Repository) DeleteTodo(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM user_todos WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return expectRows(res, "todo")
}

// DeleteTodos removes every row of one type
func (r *Repository) DeleteTodos(ctx context.Context, userID string, todoType models.TodoType) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_todos WHERE user_id = $1 AND type = $2`, userID, string(todoType)); err != nil {
		return fmt.Errorf("failed to delete todos: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(s scanner) (*models.Todo, error) {
	var (
		todo     models.Todo
		todoType string
	)
	err := s.Scan(&todo.ID, &todo.UserID, &todoType, pq.Array(&todo.Text), pq.Array(&todo.Completed), &todo.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan todo: %w", err)
	}
	todo.Type = models.TodoType(todoType)
	return &todo, nil
}
