package audit

import (
	"context"

	"github.com/bookkeep/backend/internal/domain/audit"
	"github.com/google/uuid"
)

// QueryService provides read access to audit trails and chain verification
type QueryService struct {
	repo audit.Repository
}

// NewQueryService creates a new QueryService
func NewQueryService(repo audit.Repository) *QueryService {
	return &QueryService{repo: repo}
}

// List returns a tenant's audit entries in sequence order with filtering.
// A nil tenant yields an empty trail, not an error.
func (s *QueryService) List(ctx context.Context, tenantID uuid.UUID, filter audit.Filter) ([]audit.Entry, error) {
	if tenantID == uuid.Nil {
		return []audit.Entry{}, nil
	}
	return s.repo.ListForTenant(ctx, tenantID, filter)
}

// History returns the trail of one entity, oldest first
func (s *QueryService) History(ctx context.Context, tenantID uuid.UUID, entityType string, entityID uuid.UUID) ([]audit.Entry, error) {
	return s.List(ctx, tenantID, audit.Filter{
		EntityType: entityType,
		EntityID:   &entityID,
	})
}

// VerifyChain walks the tenant's full chain and reports the first broken
// link, if any. An empty chain is valid.
func (s *QueryService) VerifyChain(ctx context.Context, tenantID uuid.UUID) (*audit.VerificationResult, error) {
	if tenantID == uuid.Nil {
		return &audit.VerificationResult{Valid: true}, nil
	}
	entries, err := s.repo.ChainForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	result := audit.VerifyChain(entries)
	return &result, nil
}
