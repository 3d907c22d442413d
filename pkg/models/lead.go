package models

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Lead statuses. TRASH rows are excluded from every listing.
const (
	StatusNew       = "NEW"
	StatusContacted = "CONTACTED"
	StatusManual    = "MANUAL"
	StatusTrash     = "TRASH"
)

// Phone types stored on a lead. Empty means unknown.
const (
	PhoneTypeMobile   = "MOBILE"
	PhoneTypeLandline = "LANDLINE"
)

// Acquisition campaign identifiers recognized on the primary source column.
const (
	SourceAdBurnerHunt      = "AD_BURNER_HUNT"
	SourceIndeedGulfHunt    = "INDEED_GULF_HUNT"
	SourceLinkedInAuthSnipe = "LINKEDIN_AUTH_SNIPE"
	SourceCenturionGulfHunt = "CENTURION_GULF_HUNT"
	SourceGulfSniper        = "GULF_SNIPER"
	SourceMissionControl    = "MISSION_CONTROL"
	SourceVerifiedFunding   = "VERIFIED_FUNDING"
	SourceHighIntentProject = "HIGH_INTENT_PROJECT"
)

// Lead is a prospective business contact record. Rows come from external
// scrapers or manual operator entry; the classifier derives everything else.
type Lead struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	BusinessName string    `gorm:"index" json:"business_name"`
	Phone        string    `json:"phone,omitempty"`
	PhoneType    string    `json:"phone_type,omitempty"`
	Email        string    `json:"email,omitempty"`
	Website      string    `json:"website,omitempty"`
	MapsURL      string    `json:"maps_url,omitempty"`
	Rating       float64   `json:"rating"`
	ReviewCount  int       `json:"review_count"`
	Source       string    `gorm:"index" json:"source,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	IsPremium    bool      `json:"is_premium"`
	Status       string    `gorm:"index;default:NEW" json:"status"`
	ContactName  string    `json:"contact_name,omitempty"`
	CampaignID   string    `gorm:"index" json:"campaign_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasWebsite reports whether the lead has a usable website value.
func (l *Lead) HasWebsite() bool {
	return l.Website != ""
}

// NormalizeName is the deduplication identity of a lead: the trimmed,
// case-folded business name. Two rows sharing a normalized name are
// duplicates. A fresh Caser per call because Casers are not goroutine-safe.
func NormalizeName(businessName string) string {
	return cases.Fold().String(strings.TrimSpace(businessName))
}

// Campaign is a named grouping of leads used for tab-based filtering.
type Campaign struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	Slug      string    `gorm:"uniqueIndex" json:"slug"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrorResponse is the standard error envelope for API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
