package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/habitloop/habitloop-server/internal/domain"
)

func (s *Server) registerTaskRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "addTask",
		Method:        http.MethodPost,
		Path:          "/api/tasks/{date}",
		Summary:       "Add task",
		Description:   "Prepends a task to the date's list. Setting a reminder time arms a one-shot reminder if the instant is still in the future.",
		Tags:          []string{"Tasks"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddTask)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTask",
		Method:      http.MethodPatch,
		Path:        "/api/tasks/{date}/{id}",
		Summary:     "Update task",
		Description: "Replaces a task's text, done flag, and reminder time. Reminders are rebuilt from the updated list.",
		Tags:        []string{"Tasks"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateTask)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeTask",
		Method:      http.MethodDelete,
		Path:        "/api/tasks/{date}/{id}",
		Summary:     "Remove task",
		Description: "Deletes a task; a pending reminder for it is cancelled",
		Tags:        []string{"Tasks"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRemoveTask)
}

// === DTOs ===

// AddTaskRequest is the request body for creating a task.
type AddTaskRequest struct {
	Text         string `json:"text" validate:"required,min=1,max=500" doc:"Task text"`
	ReminderTime string `json:"reminderTime,omitempty" validate:"omitempty,datetime=15:04" doc:"Optional reminder time-of-day (HH:MM)"`
}

// AddTaskInput wraps the add task request for Huma.
type AddTaskInput struct {
	Date string `path:"date" doc:"Date key (YYYY-MM-DD)"`
	Body AddTaskRequest
}

// TaskResponse contains task data in API responses.
type TaskResponse struct {
	ID           string `json:"id" doc:"Task id"`
	Text         string `json:"text" doc:"Task text"`
	ReminderTime string `json:"reminderTime,omitempty" doc:"Reminder time-of-day (HH:MM), empty when unset"`
	Done         bool   `json:"done" doc:"Completion flag"`
}

// TaskOutput wraps a task response for Huma.
type TaskOutput struct {
	Status int
	Body   TaskResponse
}

// UpdateTaskRequest is the request body for updating a task.
type UpdateTaskRequest struct {
	Text         string `json:"text" validate:"required,min=1,max=500" doc:"Task text"`
	ReminderTime string `json:"reminderTime,omitempty" validate:"omitempty,datetime=15:04" doc:"Reminder time-of-day (HH:MM), empty clears it"`
	Done         bool   `json:"done" doc:"Completion flag"`
}

// UpdateTaskInput wraps the update request for Huma.
type UpdateTaskInput struct {
	Date string `path:"date" doc:"Date key (YYYY-MM-DD)"`
	ID   string `path:"id" doc:"Task id"`
	Body UpdateTaskRequest
}

// RemoveTaskInput contains parameters for deleting a task.
type RemoveTaskInput struct {
	Date string `path:"date" doc:"Date key (YYYY-MM-DD)"`
	ID   string `path:"id" doc:"Task id"`
}

// TaskListOutput returns the date's task list after a change.
type TaskListOutput struct {
	Body struct {
		Date  string        `json:"date" doc:"Date key"`
		Tasks []domain.Task `json:"tasks" doc:"Tasks for the date, newest first"`
	}
}

func taskResponse(t domain.Task) TaskResponse {
	return TaskResponse{
		ID:           t.ID,
		Text:         t.Text,
		Done:         t.Done,
		ReminderTime: t.ReminderTime,
	}
}

// === Handlers ===

func (s *Server) handleAddTask(ctx context.Context, input *AddTaskInput) (*TaskOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkDateKey(input.Date); err != nil {
		return nil, err
	}

	_, task, err := s.services.Docs.AddTask(ctx, identity, input.Date, input.Body.Text, input.Body.ReminderTime)
	if err != nil {
		return nil, err
	}

	return &TaskOutput{
		Status: http.StatusCreated,
		Body:   taskResponse(task),
	}, nil
}

func (s *Server) handleUpdateTask(ctx context.Context, input *UpdateTaskInput) (*TaskOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkDateKey(input.Date); err != nil {
		return nil, err
	}

	doc, err := s.services.Docs.UpdateTask(ctx, identity, input.Date, domain.Task{
		ID:           input.ID,
		Text:         input.Body.Text,
		Done:         input.Body.Done,
		ReminderTime: input.Body.ReminderTime,
	})
	if err != nil {
		return nil, err
	}

	task, _ := doc.TaskByID(input.Date, input.ID)
	return &TaskOutput{
		Status: http.StatusOK,
		Body:   taskResponse(task),
	}, nil
}

func (s *Server) handleRemoveTask(ctx context.Context, input *RemoveTaskInput) (*TaskListOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkDateKey(input.Date); err != nil {
		return nil, err
	}

	doc, err := s.services.Docs.RemoveTask(ctx, identity, input.Date, input.ID)
	if err != nil {
		return nil, err
	}

	out := &TaskListOutput{}
	out.Body.Date = input.Date
	out.Body.Tasks = doc.TasksByDate[input.Date]
	return out, nil
}
