package application

import (
	"context"
	"fmt"

	"github.com/alorle/iptv-catalog/internal/port/driven"
)

// HealthService reports readiness of the service's dependencies.
type HealthService struct {
	sources driven.SourceRepository
}

// NewHealthService creates a HealthService checking the given
// repository.
func NewHealthService(sources driven.SourceRepository) *HealthService {
	return &HealthService{sources: sources}
}

// Check verifies that the store is accessible.
func (s *HealthService) Check(ctx context.Context) error {
	if err := s.sources.Ping(ctx); err != nil {
		return fmt.Errorf("store unreachable: %w", err)
	}
	return nil
}
