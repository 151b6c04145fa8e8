package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/habitloop/habitloop-server/internal/domain"
)

func (s *Server) registerDataRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getData",
		Method:      http.MethodGet,
		Path:        "/api/data",
		Summary:     "Get document",
		Description: "Returns the full document for the authenticated identity, seeding a default one on first access",
		Tags:        []string{"Data"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetData)

	huma.Register(s.api, huma.Operation{
		OperationID: "saveData",
		Method:      http.MethodPost,
		Path:        "/api/data",
		Summary:     "Save document",
		Description: "Replaces the identity's document with the uploaded one and returns the saved state",
		Tags:        []string{"Data"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSaveData)
}

// === DTOs ===

// DocumentBody is the document shape on the wire. It mirrors the persisted
// shape; all collections are optional on upload.
type DocumentBody struct {
	Identity    string                         `json:"identity,omitempty" doc:"Mobile number owning the document"`
	Habits      []domain.Habit                 `json:"habits,omitempty" doc:"Habit list"`
	History     map[string]domain.HistoryEntry `json:"history,omitempty" doc:"Per-date habit completion"`
	TasksByDate map[string][]domain.Task       `json:"tasksByDate,omitempty" doc:"Per-date task lists"`
}

// DocumentOutput wraps a document response for Huma.
type DocumentOutput struct {
	Body DocumentBody
}

// SaveDataInput wraps the uploaded document for Huma.
type SaveDataInput struct {
	Body DocumentBody
}

func documentBody(doc *domain.Document) DocumentBody {
	return DocumentBody{
		Identity:    doc.Identity,
		Habits:      doc.Habits,
		History:     doc.History,
		TasksByDate: doc.TasksByDate,
	}
}

// === Handlers ===

func (s *Server) handleGetData(ctx context.Context, _ *struct{}) (*DocumentOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := s.services.Docs.Document(ctx, identity)
	if err != nil {
		return nil, err
	}

	return &DocumentOutput{Body: documentBody(doc)}, nil
}

func (s *Server) handleSaveData(ctx context.Context, input *SaveDataInput) (*DocumentOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := s.services.Docs.Replace(ctx, identity, &domain.Document{
		Habits:      input.Body.Habits,
		History:     input.Body.History,
		TasksByDate: input.Body.TasksByDate,
	})
	if err != nil {
		return nil, err
	}

	return &DocumentOutput{Body: documentBody(doc)}, nil
}
