package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/leadpilot/leadpilot/pkg/models"
)

// CampaignRepository persists campaigns.
type CampaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository creates a campaign repository.
func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// List returns all campaigns, newest first.
func (r *CampaignRepository) List(ctx context.Context) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&campaigns).Error; err != nil {
		return nil, fmt.Errorf("failed to query campaigns: %w", err)
	}
	return campaigns, nil
}

// GetBySlug fetches a campaign by its slug.
func (r *CampaignRepository) GetBySlug(ctx context.Context, slug string) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.WithContext(ctx).First(&campaign, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	return &campaign, nil
}

// Create inserts a new campaign.
func (r *CampaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	if err := r.db.WithContext(ctx).Create(campaign).Error; err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}
	return nil
}
