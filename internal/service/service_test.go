package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Dan9191/crypto-companion/internal/config"
	"github.com/Dan9191/crypto-companion/internal/integrations/coingecko"
	"github.com/Dan9191/crypto-companion/internal/models"
	"github.com/Dan9191/crypto-companion/internal/repository"
	"github.com/Dan9191/crypto-companion/internal/session"
	"github.com/sirupsen/logrus/hooks/test"
)

type fakeOracle struct {
	mu      sync.Mutex
	markets []models.Quote
	prices  map[string]float64
	coins   map[string]models.Quote
	err     error
	calls   [][]string
}

func (f *fakeOracle) Markets(ctx context.Context) ([]models.Quote, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.markets, nil
}

func (f *fakeOracle) SimplePrices(ctx context.Context, ids []string) (map[string]float64, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string(nil), ids...))
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := map[string]float64{}
	for _, id := range ids {
		if p, ok := f.prices[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (f *fakeOracle) Lookup(ctx context.Context, name string) (*models.Quote, error) {
	if f.err != nil {
		return nil, f.err
	}
	q, ok := f.coins[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", coingecko.ErrCoinNotFound, name)
	}
	return &q, nil
}

type sentMail struct {
	to, link string
}

type fakeMailer struct {
	resets   []sentMail
	welcomes []string
	err      error
}

func (f *fakeMailer) SendPasswordReset(to, link string, expiresAt time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.resets = append(f.resets, sentMail{to: to, link: link})
	return nil
}

func (f *fakeMailer) SendWelcome(to string) error {
	if f.err != nil {
		return f.err
	}
	f.welcomes = append(f.welcomes, to)
	return nil
}

type fixture struct {
	svc    *Service
	store  *repository.MemoryStore
	oracle *fakeOracle
	mailer *fakeMailer
	events []session.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log, _ := test.NewNullLogger()

	f := &fixture{
		store: repository.NewMemoryStore(),
		oracle: &fakeOracle{
			prices: map[string]float64{"bitcoin": 50000, "ethereum": 2000},
			coins: map[string]models.Quote{
				"bitcoin":  {ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", Price: 50000},
				"ethereum": {ID: "ethereum", Symbol: "eth", Name: "Ethereum", Price: 2000},
			},
		},
		mailer: &fakeMailer{},
	}
	notifier := session.NewNotifier()
	notifier.Subscribe(func(e session.Event) { f.events = append(f.events, e) })

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		HMACSecret:       "test-hmac",
		AllowedOrigin:    []string{"http://localhost:5173"},
		ResetRedirectURL: "https://app.example.com/reset-password",
	}
	f.svc = NewService(f.store, f.oracle, f.mailer, notifier, log, cfg)
	return f
}

var errBoom = errors.New("boom")
