// Package store implements the repositories over the database client. The
// store speaks rows and equality filters; classification, deduplication and
// ordering beyond the timestamp default belong to the services above it.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/leadpilot/leadpilot/pkg/models"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// LeadFilters are the equality filters the listing supports.
type LeadFilters struct {
	CampaignID string
	Status     string
	Source     string
}

// LeadRepository persists leads.
type LeadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a lead repository.
func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// List returns leads matching the filters, newest first. TRASH rows are
// excluded from every listing.
func (r *LeadRepository) List(ctx context.Context, f LeadFilters) ([]models.Lead, error) {
	q := r.db.WithContext(ctx).
		Where("status <> ?", models.StatusTrash).
		Order("created_at DESC")

	if f.CampaignID != "" {
		q = q.Where("campaign_id = ?", f.CampaignID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Source != "" {
		q = q.Where("source = ?", f.Source)
	}

	var leads []models.Lead
	if err := q.Find(&leads).Error; err != nil {
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	return leads, nil
}

// GetByID fetches a single lead.
func (r *LeadRepository) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	var lead models.Lead
	err := r.db.WithContext(ctx).First(&lead, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	return &lead, nil
}

// Create inserts a new lead row.
func (r *LeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	if err := r.db.WithContext(ctx).Create(lead).Error; err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}
	return nil
}

// UpdateStatus sets the lifecycle status of a lead.
func (r *LeadRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res := r.db.WithContext(ctx).Model(&models.Lead{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateNotes replaces the notes blob of a lead. Used by the pin toggle and
// the proposal drafting path.
func (r *LeadRepository) UpdateNotes(ctx context.Context, id, notes string) error {
	res := r.db.WithContext(ctx).Model(&models.Lead{}).Where("id = ?", id).Update("notes", notes)
	if res.Error != nil {
		return fmt.Errorf("failed to update notes: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByBusinessName deletes every row whose normalized business name
// matches. This is the bulk duplicate purge behind the dashboard's delete
// action; it is destructive and irreversible.
func (r *LeadRepository) DeleteByBusinessName(ctx context.Context, businessName string) (int64, error) {
	normalized := models.NormalizeName(businessName)
	res := r.db.WithContext(ctx).
		Where("LOWER(TRIM(business_name)) = ?", normalized).
		Delete(&models.Lead{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete leads by name: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteByID deletes a single row, the fallback when no business name is
// available.
func (r *LeadRepository) DeleteByID(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Lead{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete lead: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByStatus returns row counts per lifecycle status, TRASH excluded.
func (r *LeadRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		N      int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.Lead{}).
		Select("status, COUNT(*) as n").
		Where("status <> ?", models.StatusTrash).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count leads: %w", err)
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.N
	}
	return counts, nil
}
