package service

import (
	"context"
	"fmt"
	"math"

	"github.com/Dan9191/crypto-companion/internal/calculator"
	"github.com/Dan9191/crypto-companion/internal/format"
	"github.com/Dan9191/crypto-companion/internal/models"
	"github.com/google/uuid"
)

// Project validates the form and runs the compounding projection
func (s *Service) Project(in models.CompoundingInput) (*models.CompoundingResult, error) {
	if err := calculator.ValidateCompounding(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return calculator.Project(in.StartingAmount, in.TargetAmount, in.DailyRate), nil
}

// CalculatePosition validates the form and computes the position outcome
func (s *Service) CalculatePosition(in models.PositionInput) (*models.PositionResult, error) {
	if err := calculator.ValidatePosition(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	result := calculator.Calculate(in)
	for _, v := range []float64{result.TargetPrice, result.ExpectedProfit, result.TotalPositionSize, result.PriceChangePercent} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, invalid("position is too large to calculate")
		}
	}
	return result, nil
}

// ExportPlan stores the projection's daily breakdown as a new plan checklist
func (s *Service) ExportPlan(ctx context.Context, userID string, result *models.CompoundingResult) (*models.Todo, error) {
	if result == nil || len(result.DailyBreakdown) == 0 {
		return nil, invalid("the projection has no days to export")
	}

	todo := &models.Todo{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      models.TodoPlan,
		Text:      make([]string, len(result.DailyBreakdown)),
		Completed: make([]bool, len(result.DailyBreakdown)),
	}
	for i, d := range result.DailyBreakdown {
		todo.Text[i] = fmt.Sprintf("Day - %d: %s", d.Day, format.Grouped(d.Amount))
	}

	if err := s.repo.InsertTodo(ctx, todo); err != nil {
		return nil, err
	}

	s.log.Infof("Plan of %d days exported for user %s", len(todo.Text), userID)
	return todo, nil
}
