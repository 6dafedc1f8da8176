package proposal

import (
	"context"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/domain/proposal"
)

// VersionService serves proposal history: listing snapshots and
// computing diffs between two of them
type VersionService struct {
	versionRepo  proposal.VersionRepository
	proposalRepo proposal.ProposalRepository
}

// NewVersionService creates a new VersionService
func NewVersionService(versionRepo proposal.VersionRepository, proposalRepo proposal.ProposalRepository) *VersionService {
	return &VersionService{
		versionRepo:  versionRepo,
		proposalRepo: proposalRepo,
	}
}

// List returns all versions of a proposal, oldest first
func (s *VersionService) List(ctx context.Context, tenantID, proposalID uuid.UUID) ([]VersionResponse, error) {
	// Resolve the proposal first so a missing proposal surfaces as
	// NOT_FOUND instead of an empty history
	if _, err := s.proposalRepo.FindByIDForTenant(ctx, tenantID, proposalID); err != nil {
		return nil, err
	}

	versions, err := s.versionRepo.FindByProposal(ctx, tenantID, proposalID)
	if err != nil {
		return nil, err
	}

	responses := make([]VersionResponse, 0, len(versions))
	for i := range versions {
		resp, err := ToVersionResponse(&versions[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// Get returns one version of a proposal
func (s *VersionService) Get(ctx context.Context, tenantID, proposalID uuid.UUID, number int) (*VersionResponse, error) {
	version, err := s.versionRepo.FindByNumber(ctx, tenantID, proposalID, number)
	if err != nil {
		return nil, err
	}
	resp, err := ToVersionResponse(version)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Diff compares the line items of two versions of the same proposal
func (s *VersionService) Diff(ctx context.Context, tenantID, proposalID uuid.UUID, from, to int) (*proposal.Diff, error) {
	fromVersion, err := s.versionRepo.FindByNumber(ctx, tenantID, proposalID, from)
	if err != nil {
		return nil, err
	}
	toVersion, err := s.versionRepo.FindByNumber(ctx, tenantID, proposalID, to)
	if err != nil {
		return nil, err
	}
	return proposal.ComputeDiff(fromVersion, toVersion)
}
