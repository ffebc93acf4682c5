package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Dan9191/crypto-companion/internal/config"
	"github.com/Dan9191/crypto-companion/internal/models"
	"github.com/Dan9191/crypto-companion/internal/repository"
	"github.com/Dan9191/crypto-companion/internal/session"
	"github.com/Dan9191/crypto-companion/internal/utils"
	"github.com/google/uuid"
)

// OAuthStateTTL is how long a sign-in started with SignInWithOAuth can be completed
const OAuthStateTTL = 10 * time.Minute

type oauthProvider struct {
	authURL      string
	tokenURL     string
	userInfoURL  string
	clientID     string
	clientSecret string
	redirectURL  string
	scopes       []string
}

func oauthProviders(cfg *config.Config) map[string]oauthProvider {
	providers := map[string]oauthProvider{}
	if cfg.GoogleClientID != "" {
		providers["google"] = oauthProvider{
			authURL:      "https://accounts.google.com/o/oauth2/v2/auth",
			tokenURL:     "https://oauth2.googleapis.com/token",
			userInfoURL:  "https://openidconnect.googleapis.com/v1/userinfo",
			clientID:     cfg.GoogleClientID,
			clientSecret: cfg.GoogleClientSecret,
			redirectURL:  cfg.OAuthRedirectURL,
			scopes:       []string{"openid", "email"},
		}
	}
	return providers
}

// SignInWithOAuth returns the provider URL the client should be redirected to
// and the state value embedded in it. The caller binds the state to the
// browser so the callback can be matched to it.
func (s *Service) SignInWithOAuth(provider string) (string, string, error) {
	p, ok := s.oauth[provider]
	if !ok {
		return "", "", invalid("unsupported provider %q", provider)
	}

	state, err := utils.SignState(provider, s.config.HMACSecret, s.now())
	if err != nil {
		return "", "", err
	}

	q := url.Values{}
	q.Set("client_id", p.clientID)
	q.Set("redirect_uri", p.redirectURL)
	q.Set("response_type", "code")
	q.Set("scope", strings.Join(p.scopes, " "))
	q.Set("state", state)
	return p.authURL + "?" + q.Encode(), state, nil
}

// CompleteOAuth verifies the callback state, exchanges the code and opens a
// session for the provider's e-mail, creating the user on first sign-in.
func (s *Service) CompleteOAuth(ctx context.Context, provider, code, state string) (*models.Session, error) {
	p, ok := s.oauth[provider]
	if !ok {
		return nil, invalid("unsupported provider %q", provider)
	}
	if err := utils.VerifyState(state, provider, s.config.HMACSecret, s.now(), OAuthStateTTL); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if code == "" {
		return nil, invalid("authorization code is required")
	}

	accessToken, err := s.exchangeCode(ctx, p, code)
	if err != nil {
		return nil, upstream(provider, err)
	}
	email, err := s.fetchEmail(ctx, p, accessToken)
	if err != nil {
		return nil, upstream(provider, err)
	}
	email = strings.ToLower(email)

	user, err := s.repo.FindUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		user = &models.User{ID: uuid.NewString(), Email: email, Provider: provider}
		if err = s.repo.CreateUser(ctx, user); err == nil {
			s.log.Infof("User registered via %s: %s", provider, email)
		}
	}
	if err != nil {
		return nil, err
	}

	return s.openSession(ctx, user, session.SignedIn)
}

func (s *Service) exchangeCode(ctx context.Context, p oauthProvider, code string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", p.clientID)
	form.Set("client_secret", p.clientSecret)
	form.Set("redirect_uri", p.redirectURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := s.doJSON(req, &token); err != nil {
		return "", fmt.Errorf("token exchange: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("token exchange: empty access token")
	}
	return token.AccessToken, nil
}

func (s *Service) fetchEmail(ctx context.Context, p oauthProvider, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	var info struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
	}
	if err := s.doJSON(req, &info); err != nil {
		return "", fmt.Errorf("user info: %w", err)
	}
	if info.Email == "" || !info.EmailVerified {
		return "", fmt.Errorf("user info: no verified email")
	}
	return info.Email, nil
}

func (s *Service) doJSON(req *http.Request, out any) error {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
