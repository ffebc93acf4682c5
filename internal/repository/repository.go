package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/crypto-companion/internal/models"
	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when no row matches the filter
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique key already exists
	ErrDuplicate = errors.New("already exists")
)

// Store is the row store behind users, sessions, portfolios and to-dos.
// Every portfolio and to-do operation is scoped by user id.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	CreateSession(ctx context.Context, session *models.Session) error
	FindSession(ctx context.Context, id string) (*models.Session, error)
	DeleteSession(ctx context.Context, id string) error

	CreateRecoveryToken(ctx context.Context, token *models.RecoveryToken) error
	ConsumeRecoveryToken(ctx context.Context, id string) (*models.RecoveryToken, error)

	UpsertHolding(ctx context.Context, holding *models.Holding) error
	ListHoldings(ctx context.Context, userID string, selectedOnly bool) ([]models.Holding, error)
	ListAllHoldings(ctx context.Context) ([]models.Holding, error)
	SetHoldingSelected(ctx context.Context, userID, coinID string, selected bool) error
	UpdateHoldingPrice(ctx context.Context, coinID string, price float64) error
	DeleteHoldings(ctx context.Context, userID string) error

	InsertTodo(ctx context.Context, todo *models.Todo) error
	ListTodos(ctx context.Context, userID string, todoType models.TodoType, ascending bool) ([]models.Todo, error)
	FindTodo(ctx context.Context, userID, id string) (*models.Todo, error)
	UpdateTodo(ctx context.Context, todo *models.Todo) error
	DeleteTodo(ctx context.Context, userID, id string) error
	DeleteTodos(ctx context.Context, userID string, todoType models.TodoType) error
}

// Repository provides Postgres operations.
//
// Tables:
//
//	users(id uuid pk, email text unique, password_hash text, provider text, created_at timestamptz)
//	sessions(id uuid pk, user_id uuid, created_at timestamptz, expires_at timestamptz)
//	recovery_tokens(id uuid pk, user_id uuid, expires_at timestamptz)
//	user_portfolio(user_id uuid, coin_id text, name text, symbol text, price float8,
//	               quantity float8, value float8, "isSelected" bool, created_at timestamptz,
//	               primary key (user_id, coin_id))
//	user_todos(id uuid pk, user_id uuid, type text, text text[], completed bool[], created_at timestamptz)
type Repository struct {
	db *sql.DB
}

var _ Store = (*Repository)(nil)

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, provider, created_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, user.ID, user.Email, user.PasswordHash, user.Provider).
		Scan(&user.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("user %s: %w", user.Email, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, provider, created_at
		FROM users
		WHERE email = $1`
	return r.findUser(ctx, query, email)
}

// FindUserByID retrieves a user by id
func (r *Repository) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, provider, created_at
		FROM users
		WHERE id = $1`
	return r.findUser(ctx, query, id)
}

func (r *Repository) findUser(ctx context.Context, query string, arg string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Provider, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdatePassword replaces the password hash of a user
func (r *Repository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return expectRows(res, "user")
}

// CreateSession stores a new session
func (r *Repository) CreateSession(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)`
	if _, err := r.db.ExecContext(ctx, query, session.ID, session.UserID, session.CreatedAt, session.ExpiresAt); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// FindSession retrieves a session together with its user's email
func (r *Repository) FindSession(ctx context.Context, id string) (*models.Session, error) {
	session := &models.Session{}
	query := `
		SELECT s.id, s.user_id, u.email, s.created_at, s.expires_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&session.ID, &session.UserID, &session.Email, &session.CreatedAt, &session.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return session, nil
}

// DeleteSession removes a session
func (r *Repository) DeleteSession(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// CreateRecoveryToken records an issued recovery link
func (r *Repository) CreateRecoveryToken(ctx context.Context, token *models.RecoveryToken) error {
	query := `INSERT INTO recovery_tokens (id, user_id, expires_at) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, token.ID, token.UserID, token.ExpiresAt); err != nil {
		return fmt.Errorf("failed to create recovery token: %w", err)
	}
	return nil
}

// ConsumeRecoveryToken deletes a recovery token and returns it. A second
// call with the same id finds nothing.
func (r *Repository) ConsumeRecoveryToken(ctx context.Context, id string) (*models.RecoveryToken, error) {
	token := &models.RecoveryToken{}
	query := `DELETE FROM recovery_tokens WHERE id = $1 RETURNING id, user_id, expires_at`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&token.ID, &token.UserID, &token.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("recovery token: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to consume recovery token: %w", err)
	}
	return token, nil
}

func expectRows(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
