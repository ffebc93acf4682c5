package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dan9191/crypto-companion/internal/models"
	"github.com/google/uuid"
)

// PlanItems returns the checklist of the user's oldest plan
func (s *Service) PlanItems(ctx context.Context, userID string) ([]models.TodoItem, error) {
	plan, err := s.oldestPlan(ctx, userID)
	if err != nil || plan == nil {
		return []models.TodoItem{}, err
	}
	return planItems(plan), nil
}

// TogglePlanItem flips the completion of every plan item up to and
// including index.
func (s *Service) TogglePlanItem(ctx context.Context, userID string, index int) ([]models.TodoItem, error) {
	plan, err := s.oldestPlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, fmt.Errorf("%w: no plan", ErrNotFound)
	}
	if index < 0 || index >= len(plan.Completed) {
		return nil, invalid("item %d is out of range", index)
	}

	for i := 0; i <= index; i++ {
		plan.Completed[i] = !plan.Completed[i]
	}
	if err := s.repo.UpdateTodo(ctx, plan); err != nil {
		return nil, storeErr(err)
	}
	return planItems(plan), nil
}

// ResetPlan deletes every plan of the user
func (s *Service) ResetPlan(ctx context.Context, userID string) error {
	if err := s.repo.DeleteTodos(ctx, userID, models.TodoPlan); err != nil {
		return err
	}
	s.log.Infof("Plan reset for user %s", userID)
	return nil
}

// CustomItems returns the user's own tasks, newest first
func (s *Service) CustomItems(ctx context.Context, userID string) ([]models.TodoItem, error) {
	todos, err := s.repo.ListTodos(ctx, userID, models.TodoCustom, false)
	if err != nil {
		return nil, err
	}
	items := make([]models.TodoItem, 0, len(todos))
	for i := range todos {
		items = append(items, customItem(&todos[i]))
	}
	return items, nil
}

// AddCustom stores a new task
func (s *Service) AddCustom(ctx context.Context, userID, text string) (*models.TodoItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid("task text is required")
	}

	todo := &models.Todo{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      models.TodoCustom,
		Text:      []string{text},
		Completed: []bool{false},
	}
	if err := s.repo.InsertTodo(ctx, todo); err != nil {
		return nil, err
	}

	item := customItem(todo)
	return &item, nil
}

// ToggleCustom flips the completion of a task
func (s *Service) ToggleCustom(ctx context.Context, userID, id string) (*models.TodoItem, error) {
	todo, err := s.findCustom(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if len(todo.Completed) == 0 {
		todo.Completed = []bool{false}
	}
	todo.Completed[0] = !todo.Completed[0]
	if err := s.repo.UpdateTodo(ctx, todo); err != nil {
		return nil, storeErr(err)
	}

	item := customItem(todo)
	return &item, nil
}

// DeleteCustom removes a task
func (s *Service) DeleteCustom(ctx context.Context, userID, id string) error {
	if _, err := s.findCustom(ctx, userID, id); err != nil {
		return err
	}
	return storeErr(s.repo.DeleteTodo(ctx, userID, id))
}

func (s *Service) oldestPlan(ctx context.Context, userID string) (*models.Todo, error) {
	plans, err := s.repo.ListTodos(ctx, userID, models.TodoPlan, true)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, nil
	}
	return &plans[0], nil
}

func (s *Service) findCustom(ctx context.Context, userID, id string) (*models.Todo, error) {
	todo, err := s.repo.FindTodo(ctx, userID, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if todo.Type != models.TodoCustom {
		return nil, fmt.Errorf("%w: task %s", ErrNotFound, id)
	}
	return todo, nil
}

func planItems(plan *models.Todo) []models.TodoItem {
	items := make([]models.TodoItem, len(plan.Text))
	for i, text := range plan.Text {
		items[i] = models.TodoItem{
			ID:   fmt.Sprintf("plan-%d", i),
			Text: text,
			Type: models.TodoPlan,
		}
		if i < len(plan.Completed) {
			items[i].Completed = plan.Completed[i]
		}
	}
	return items
}

func customItem(todo *models.Todo) models.TodoItem {
	item := models.TodoItem{ID: todo.ID, Type: models.TodoCustom}
	if len(todo.Text) > 0 {
		item.Text = todo.Text[0]
	}
	if len(todo.Completed) > 0 {
		item.Completed = todo.Completed[0]
	}
	return item
}
