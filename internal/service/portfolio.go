package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/Dan9191/crypto-companion/internal/calculator"
	"github.com/Dan9191/crypto-companion/internal/format"
	"github.com/Dan9191/crypto-companion/internal/integrations/coingecko"
	"github.com/Dan9191/crypto-companion/internal/models"
)

const bitcoinID = "bitcoin"

// Holdings returns the user's holdings revalued at current prices. When the
// oracle fails or omits a coin, its stored price is kept.
func (s *Service) Holdings(ctx context.Context, userID string) (*models.Portfolio, error) {
	holdings, err := s.repo.ListHoldings(ctx, userID, false)
	if err != nil {
		return nil, err
	}

	prices := map[string]float64{}
	if len(holdings) > 0 {
		prices, err = s.oracle.SimplePrices(ctx, coinIDs(holdings))
		if err != nil {
			s.log.Warnf("Price refresh for user %s failed, using stored prices: %v", userID, err)
			prices = map[string]float64{}
		}
	}

	for i := range holdings {
		price, ok := prices[holdings[i].CoinID]
		if !ok {
			price = holdings[i].Price
		}
		holdings[i].Revalue(price)
	}

	total := calculator.TotalValue(holdings)
	return &models.Portfolio{
		Holdings:     holdings,
		TotalValue:   total,
		TotalDisplay: format.USD(total),
	}, nil
}

// AddHolding resolves a coin by name and stores it as a selected holding,
// replacing the quantity of an existing one.
func (s *Service) AddHolding(ctx context.Context, userID, name string, quantity float64) (*models.Holding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("coin name is required")
	}
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) || quantity <= 0 {
		return nil, invalid("quantity must be a positive number")
	}

	quote, err := s.oracle.Lookup(ctx, name)
	if err != nil {
		if errors.Is(err, coingecko.ErrCoinNotFound) {
			return nil, fmt.Errorf("%w: coin %q", ErrNotFound, name)
		}
		return nil, upstream("coin lookup", err)
	}

	holding := &models.Holding{
		UserID:     userID,
		CoinID:     quote.ID,
		Symbol:     quote.Symbol,
		Name:       quote.Name,
		Quantity:   quantity,
		IsSelected: true,
	}
	holding.Revalue(quote.Price)

	if err := s.repo.UpsertHolding(ctx, holding); err != nil {
		return nil, err
	}

	s.log.Infof("Holding %s set to %v for user %s", holding.CoinID, quantity, userID)
	return holding, nil
}

// ToggleHolding flips whether a holding counts towards the dashboard
func (s *Service) ToggleHolding(ctx context.Context, userID, coinID string) (*models.Holding, error) {
	holdings, err := s.repo.ListHoldings(ctx, userID, false)
	if err != nil {
		return nil, err
	}

	for i := range holdings {
		if holdings[i].CoinID != coinID {
			continue
		}
		h := holdings[i]
		h.IsSelected = !h.IsSelected
		if err := s.repo.SetHoldingSelected(ctx, userID, coinID, h.IsSelected); err != nil {
			return nil, storeErr(err)
		}
		return &h, nil
	}
	return nil, fmt.Errorf("%w: holding %s", ErrNotFound, coinID)
}

// ResetPortfolio removes every holding of the user
func (s *Service) ResetPortfolio(ctx context.Context, userID string) error {
	if err := s.repo.DeleteHoldings(ctx, userID); err != nil {
		return err
	}
	s.log.Infof("Portfolio reset for user %s", userID)
	return nil
}

// Dashboard totals the selected holdings in USD and BTC using one price call
func (s *Service) Dashboard(ctx context.Context, userID string) (*models.Dashboard, error) {
	holdings, err := s.repo.ListHoldings(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	if len(holdings) == 0 {
		return &models.Dashboard{TotalDisplay: format.USD(0)}, nil
	}

	ids := coinIDs(holdings)
	if !slices.Contains(ids, bitcoinID) {
		ids = append(ids, bitcoinID)
	}
	prices, err := s.oracle.SimplePrices(ctx, ids)
	if err != nil {
		return nil, upstream("prices", err)
	}

	for i := range holdings {
		holdings[i].Revalue(prices[holdings[i].CoinID])
	}
	total := calculator.TotalValue(holdings)

	return &models.Dashboard{
		TotalUSD:     total,
		TotalBTC:     calculator.InBitcoin(total, prices[bitcoinID]),
		TotalDisplay: format.USD(total),
		Holdings:     len(holdings),
	}, nil
}

// RefreshPrices writes current prices into every stored holding and returns
// the number of coins updated. Prices are requested in batches of
// coingecko.MarketsPageSize ids; a failed batch stops the refresh and the
// coins stored before it stay updated.
func (s *Service) RefreshPrices(ctx context.Context) (int, error) {
	holdings, err := s.repo.ListAllHoldings(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for batch := range slices.Chunk(coinIDs(holdings), coingecko.MarketsPageSize) {
		prices, err := s.oracle.SimplePrices(ctx, batch)
		if err != nil {
			return updated, upstream("prices", err)
		}

		for _, id := range batch {
			price, ok := prices[id]
			if !ok {
				continue
			}
			if err := s.repo.UpdateHoldingPrice(ctx, id, price); err != nil {
				s.log.Errorf("Failed to store price of %s: %v", id, err)
				continue
			}
			updated++
		}
	}
	return updated, nil
}

// coinIDs returns the distinct coin ids in order of first appearance
func coinIDs(holdings []models.Holding) []string {
	seen := make(map[string]bool, len(holdings))
	ids := make([]string, 0, len(holdings))
	for _, h := range holdings {
		if seen[h.CoinID] {
			continue
		}
		seen[h.CoinID] = true
		ids = append(ids, h.CoinID)
	}
	return ids
}
