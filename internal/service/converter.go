package service

import (
	"context"
	"fmt"

	"github.com/Dan9191/crypto-companion/internal/converter"
	"github.com/Dan9191/crypto-companion/internal/models"
)

// ConverterAssets lists the tradable assets matching query
func (s *Service) ConverterAssets(ctx context.Context, query string) ([]models.Quote, error) {
	view, err := s.converterView(ctx)
	if err != nil {
		return nil, err
	}
	return view.Filter(query), nil
}

// Convert expresses amount units of from in units of to. An amount that
// does not parse counts as zero.
func (s *Service) Convert(ctx context.Context, amount, from, to string) (*models.Conversion, error) {
	view, err := s.converterView(ctx)
	if err != nil {
		return nil, err
	}

	if from == "" {
		from = converter.DefaultFrom
	}
	if to == "" {
		to = converter.DefaultTo
	}
	if !view.SelectFrom(from) {
		return nil, fmt.Errorf("%w: asset %q", ErrNotFound, from)
	}
	if !view.SelectTo(to) {
		return nil, fmt.Errorf("%w: asset %q", ErrNotFound, to)
	}
	if amount != "" {
		view.SetAmount(amount)
	}

	return &models.Conversion{
		Amount:    view.Amount(),
		From:      *view.From(),
		To:        *view.To(),
		Converted: view.Converted(),
		Display:   view.Display(),
	}, nil
}

func (s *Service) converterView(ctx context.Context) (*converter.View, error) {
	quotes, err := s.oracle.Markets(ctx)
	if err != nil {
		return nil, upstream("markets", err)
	}
	view := converter.NewView()
	view.Load(quotes)
	return view, nil
}
