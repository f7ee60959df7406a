package mcp

import (
	"context"

	"github.com/slidevault-labs/slidevault-cli/internal/core/domain"
	"github.com/slidevault-labs/slidevault-cli/internal/core/ports/driving"
)

// mockExportService is a test double for driving.ExportService.
type mockExportService struct {
	lastReq domain.ExportRequest
	resp    *domain.ExportResponse
	err     error
}

var _ driving.ExportService = (*mockExportService)(nil)

func (m *mockExportService) Export(_ context.Context, req domain.ExportRequest) (*domain.ExportResponse, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	if m.resp != nil {
		return m.resp, nil
	}
	return &domain.ExportResponse{Success: true, Nodes: []domain.ExportedNode{}}, nil
}
