package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/Dan9191/crypto-companion/internal/models"
	"github.com/Dan9191/crypto-companion/internal/repository"
	"github.com/Dan9191/crypto-companion/internal/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionTTL        = 24 * time.Hour
	recoveryTTL       = time.Hour
	minPasswordLength = 6

	purposeAccess   = "access"
	purposeRecovery = "recovery"
)

type tokenClaims struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// SignUp creates a new user with a hashed password
func (s *Service) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := checkPassword(password); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Provider:     "email",
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, invalid("an account already exists for %s", email)
		}
		return nil, err
	}

	if err := s.mailer.SendWelcome(user.Email); err != nil {
		s.log.Warnf("Welcome email to %s failed: %v", user.Email, err)
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// SignInWithPassword authenticates a user and opens a session
func (s *Service) SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	return s.openSession(ctx, user, session.SignedIn)
}

// Authenticate resolves an access token into its live session
func (s *Service) Authenticate(ctx context.Context, token string) (*models.Session, error) {
	claims, err := s.parseToken(token, purposeAccess)
	if err != nil {
		return nil, err
	}

	sess, err := s.repo.FindSession(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: session ended", ErrUnauthorized)
		}
		return nil, err
	}
	if sess.UserID != claims.Subject || !s.now().Before(sess.ExpiresAt) {
		return nil, fmt.Errorf("%w: session expired", ErrUnauthorized)
	}

	sess.Token = token
	return sess, nil
}

// SignOut ends a session
func (s *Service) SignOut(ctx context.Context, sess *models.Session) error {
	if err := s.repo.DeleteSession(ctx, sess.ID); err != nil {
		return err
	}

	s.log.Infof("User signed out: %s", sess.Email)
	s.notifier.Publish(session.Event{Kind: session.SignedOut, UserID: sess.UserID})
	return nil
}

// ResetPasswordForEmail mails a recovery link pointing at redirectURL, which
// must be on one of the allowed origins or the configured reset page.
// Unknown addresses succeed without sending anything.
func (s *Service) ResetPasswordForEmail(ctx context.Context, email, redirectURL string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	link, err := url.Parse(redirectURL)
	if err != nil || (link.Scheme != "http" && link.Scheme != "https") || link.Host == "" {
		return invalid("redirect url must be an absolute http(s) url")
	}
	if !s.allowedRedirect(link) {
		return invalid("redirect url %s is not an allowed origin", origin(link))
	}

	user, err := s.repo.FindUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		s.log.Infof("Password reset requested for unknown email %s", email)
		return nil
	}
	if err != nil {
		return err
	}

	recovery := &models.RecoveryToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(recoveryTTL),
	}
	token, err := s.signToken(user, recovery.ID, purposeRecovery, recovery.ExpiresAt)
	if err != nil {
		return err
	}
	if err := s.repo.CreateRecoveryToken(ctx, recovery); err != nil {
		return err
	}

	q := link.Query()
	q.Set("token", token)
	link.RawQuery = q.Encode()

	if err := s.mailer.SendPasswordReset(user.Email, link.String(), recovery.ExpiresAt); err != nil {
		return err
	}

	s.log.Infof("Password reset link sent to %s", user.Email)
	return nil
}

// Recover exchanges a recovery token for a session. Each token works once.
func (s *Service) Recover(ctx context.Context, token string) (*models.Session, error) {
	claims, err := s.parseToken(token, purposeRecovery)
	if err != nil {
		return nil, err
	}

	issued, err := s.repo.ConsumeRecoveryToken(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: recovery link already used", ErrUnauthorized)
		}
		return nil, err
	}
	if issued.UserID != claims.Subject {
		return nil, fmt.Errorf("%w: recovery link does not match its user", ErrUnauthorized)
	}

	user, err := s.repo.FindUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown user", ErrUnauthorized)
		}
		return nil, err
	}

	return s.openSession(ctx, user, session.Recovered)
}

// UpdateUser sets a new password for the session's user
func (s *Service) UpdateUser(ctx context.Context, sess *models.Session, newPassword string) error {
	if err := checkPassword(newPassword); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, sess.UserID, string(hashedPassword)); err != nil {
		return storeErr(err)
	}

	s.log.Infof("Password updated for %s", sess.Email)
	s.notifier.Publish(session.Event{Kind: session.Updated, UserID: sess.UserID, State: session.State{Session: sess}})
	return nil
}

// openSession stores a session for user and signs its access token
func (s *Service) openSession(ctx context.Context, user *models.User, kind session.EventKind) (*models.Session, error) {
	now := s.now()
	sess := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}

	token, err := s.signToken(user, sess.ID, purposeAccess, sess.ExpiresAt)
	if err != nil {
		return nil, err
	}
	sess.Token = token

	if err := s.repo.CreateSession(ctx, sess); err != nil {
		return nil, err
	}

	s.log.Infof("User logged in: %s", user.Email)
	s.notifier.Publish(session.Event{Kind: kind, UserID: user.ID, State: session.State{Session: sess}})
	return sess, nil
}

func (s *Service) signToken(user *models.User, id, purpose string, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Email:   user.Email,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

func (s *Service) parseToken(token, purpose string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(s.config.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if claims.Purpose != purpose {
		return nil, fmt.Errorf("%w: token is not a %s token", ErrUnauthorized, purpose)
	}
	return claims, nil
}

// allowedRedirect reports whether link points at an allowed origin or at the
// origin of the configured reset page
func (s *Service) allowedRedirect(link *url.URL) bool {
	want := origin(link)
	allowed := append([]string{s.config.ResetRedirectURL}, s.config.AllowedOrigin...)
	for _, candidate := range allowed {
		u, err := url.Parse(candidate)
		if err != nil || u.Host == "" {
			continue
		}
		if origin(u) == want {
			return true
		}
	}
	return false
}

func origin(u *url.URL) string {
	return strings.ToLower(u.Scheme + "://" + u.Host)
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", invalid("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", invalid("email %q is not valid", email)
	}
	return email, nil
}

func checkPassword(password string) error {
	if len(password) < minPasswordLength {
		return invalid("password must be at least %d characters", minPasswordLength)
	}
	return nil
}
