package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/domain/proposal"
	"github.com/posalpro/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormVersionRepository implements VersionRepository using GORM
type GormVersionRepository struct {
	db *gorm.DB
}

// NewGormVersionRepository creates a new GormVersionRepository
func NewGormVersionRepository(db *gorm.DB) *GormVersionRepository {
	return &GormVersionRepository{db: db}
}

// FindByProposal returns all versions of a proposal, oldest first
func (r *GormVersionRepository) FindByProposal(ctx context.Context, tenantID, proposalID uuid.UUID) ([]proposal.Version, error) {
	var versions []proposal.Version
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND proposal_id = ?", tenantID, proposalID).
		Order("number ASC").
		Find(&versions).Error; err != nil {
		return nil, err
	}
	return versions, nil
}

// FindByNumber returns one specific version of a proposal
func (r *GormVersionRepository) FindByNumber(ctx context.Context, tenantID, proposalID uuid.UUID, number int) (*proposal.Version, error) {
	var version proposal.Version
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND proposal_id = ? AND number = ?", tenantID, proposalID, number).
		First(&version).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &version, nil
}

// NextNumber returns the next free version number for a proposal
func (r *GormVersionRepository) NextNumber(ctx context.Context, tenantID, proposalID uuid.UUID) (int, error) {
	var max int64
	if err := r.db.WithContext(ctx).
		Model(&proposal.Version{}).
		Where("tenant_id = ? AND proposal_id = ?", tenantID, proposalID).
		Select("COALESCE(MAX(number), 0)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return int(max) + 1, nil
}

// Save appends a version
func (r *GormVersionRepository) Save(ctx context.Context, version *proposal.Version) error {
	return r.db.WithContext(ctx).Create(version).Error
}

// Ensure GormVersionRepository implements VersionRepository
var _ proposal.VersionRepository = (*GormVersionRepository)(nil)
