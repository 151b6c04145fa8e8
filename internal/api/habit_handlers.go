package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/habitloop/habitloop-server/internal/domain"
)

func (s *Server) registerHabitRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "addHabit",
		Method:        http.MethodPost,
		Path:          "/api/habits",
		Summary:       "Add habit",
		Description:   "Creates a habit from a label. The id is a slug derived from the label; existing history entries get a false value back-filled.",
		Tags:          []string{"Habits"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddHabit)

	huma.Register(s.api, huma.Operation{
		OperationID: "renameHabit",
		Method:      http.MethodPatch,
		Path:        "/api/habits/{id}",
		Summary:     "Rename habit",
		Description: "Changes a habit's label. The id and all history stay untouched.",
		Tags:        []string{"Habits"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRenameHabit)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeHabit",
		Method:      http.MethodDelete,
		Path:        "/api/habits/{id}",
		Summary:     "Remove habit",
		Description: "Deletes a habit and strips its key from every history entry",
		Tags:        []string{"Habits"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRemoveHabit)

	huma.Register(s.api, huma.Operation{
		OperationID: "setHabitDone",
		Method:      http.MethodPut,
		Path:        "/api/habits/{id}/history/{date}",
		Summary:     "Set habit completion",
		Description: "Records whether a habit was done on the given day",
		Tags:        []string{"Habits"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSetHabitDone)
}

// === DTOs ===

// AddHabitRequest is the request body for creating a habit.
type AddHabitRequest struct {
	Label string `json:"label" validate:"required,min=1,max=100" doc:"Habit label"`
}

// AddHabitInput wraps the add habit request for Huma.
type AddHabitInput struct {
	Body AddHabitRequest
}

// HabitResponse contains habit data in API responses.
type HabitResponse struct {
	ID    string `json:"id" doc:"Slug-derived habit id"`
	Label string `json:"label" doc:"Habit label"`
}

// HabitOutput wraps a habit response for Huma.
type HabitOutput struct {
	Status int
	Body   HabitResponse
}

// RenameHabitRequest is the request body for renaming a habit.
type RenameHabitRequest struct {
	Label string `json:"label" validate:"required,min=1,max=100" doc:"New habit label"`
}

// RenameHabitInput wraps the rename request for Huma.
type RenameHabitInput struct {
	ID   string `path:"id" doc:"Habit id"`
	Body RenameHabitRequest
}

// RemoveHabitInput contains parameters for deleting a habit.
type RemoveHabitInput struct {
	ID string `path:"id" doc:"Habit id"`
}

// SetHabitDoneRequest is the request body for a completion toggle.
type SetHabitDoneRequest struct {
	Done bool `json:"done" doc:"Completion state for the day"`
}

// SetHabitDoneInput wraps the completion toggle for Huma.
type SetHabitDoneInput struct {
	ID   string `path:"id" doc:"Habit id"`
	Date string `path:"date" doc:"Date key (YYYY-MM-DD)"`
	Body SetHabitDoneRequest
}

// HabitsOutput returns the resulting habit list.
type HabitsOutput struct {
	Body struct {
		Habits []domain.Habit `json:"habits" doc:"Habit list after the change"`
	}
}

// HistoryEntryOutput returns one date's habit states.
type HistoryEntryOutput struct {
	Body struct {
		Date   string          `json:"date" doc:"Date key"`
		Habits map[string]bool `json:"habits" doc:"Habit states for the day"`
	}
}

// === Handlers ===

func (s *Server) handleAddHabit(ctx context.Context, input *AddHabitInput) (*HabitOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	_, habit, err := s.services.Docs.AddHabit(ctx, identity, input.Body.Label)
	if err != nil {
		return nil, err
	}

	return &HabitOutput{
		Status: http.StatusCreated,
		Body:   HabitResponse{ID: habit.ID, Label: habit.Label},
	}, nil
}

func (s *Server) handleRenameHabit(ctx context.Context, input *RenameHabitInput) (*HabitOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := s.services.Docs.RenameHabit(ctx, identity, input.ID, input.Body.Label)
	if err != nil {
		return nil, err
	}

	habit, _ := doc.HabitByID(input.ID)
	return &HabitOutput{
		Status: http.StatusOK,
		Body:   HabitResponse{ID: habit.ID, Label: habit.Label},
	}, nil
}

func (s *Server) handleRemoveHabit(ctx context.Context, input *RemoveHabitInput) (*HabitsOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := s.services.Docs.RemoveHabit(ctx, identity, input.ID)
	if err != nil {
		return nil, err
	}

	out := &HabitsOutput{}
	out.Body.Habits = doc.Habits
	return out, nil
}

func (s *Server) handleSetHabitDone(ctx context.Context, input *SetHabitDoneInput) (*HistoryEntryOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkDateKey(input.Date); err != nil {
		return nil, err
	}

	doc, err := s.services.Docs.SetHabitDone(ctx, identity, input.Date, input.ID, input.Body.Done)
	if err != nil {
		return nil, err
	}

	out := &HistoryEntryOutput{}
	out.Body.Date = input.Date
	out.Body.Habits = doc.History[input.Date].Habits
	return out, nil
}
