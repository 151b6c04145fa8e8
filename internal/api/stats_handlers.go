package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/habitloop/habitloop-server/internal/service"
)

func (s *Server) registerStatsRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getStats",
		Method:      http.MethodGet,
		Path:        "/api/stats",
		Summary:     "Get stats",
		Description: "Returns today's completion, the current streak, and weekly/monthly aggregates",
		Tags:        []string{"Stats"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetStats)
}

// StatsOutput wraps the derived stats for Huma.
type StatsOutput struct {
	Body service.Stats
}

func (s *Server) handleGetStats(ctx context.Context, _ *struct{}) (*StatsOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := s.services.Stats.Stats(ctx, identity)
	if err != nil {
		return nil, err
	}

	return &StatsOutput{Body: *stats}, nil
}
