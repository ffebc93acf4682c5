package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Dan9191/crypto-companion/internal/config"
	"github.com/Dan9191/crypto-companion/internal/models"
	"github.com/Dan9191/crypto-companion/internal/repository"
	"github.com/Dan9191/crypto-companion/internal/session"
	"github.com/sirupsen/logrus"
)

var (
	// ErrValidation marks input the caller has to fix
	ErrValidation = errors.New("invalid input")
	// ErrUnauthorized marks missing, expired or wrong credentials
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound marks a missing row or coin
	ErrNotFound = errors.New("not found")
	// ErrUpstream marks a failed call to the price oracle or identity provider
	ErrUpstream = errors.New("upstream failure")
)

// PriceOracle is the subset of the CoinGecko client the service uses
type PriceOracle interface {
	Markets(ctx context.Context) ([]models.Quote, error)
	SimplePrices(ctx context.Context, ids []string) (map[string]float64, error)
	Lookup(ctx context.Context, name string) (*models.Quote, error)
}

// Mailer sends account e-mails
type Mailer interface {
	SendPasswordReset(to, link string, expiresAt time.Time) error
	SendWelcome(to string) error
}

// Service handles business logic
type Service struct {
	repo     repository.Store
	oracle   PriceOracle
	mailer   Mailer
	notifier *session.Notifier
	log      *logrus.Logger
	config   *config.Config

	httpClient *http.Client
	oauth      map[string]oauthProvider
	now        func() time.Time
}

// NewService initializes a new service
func NewService(repo repository.Store, oracle PriceOracle, mailer Mailer, notifier *session.Notifier, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		repo:       repo,
		oracle:     oracle,
		mailer:     mailer,
		notifier:   notifier,
		log:        log,
		config:     cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		oauth:      oauthProviders(cfg),
		now:        time.Now,
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func upstream(what string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUpstream, what, err)
}

// storeErr translates repository lookups into service errors
func storeErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
