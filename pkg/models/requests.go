package models

// LoginRequest carries the shared dashboard password.
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// CreateLeadRequest is the manual lead entry payload. Manually created leads
// always start in the MANUAL status with a synthesized id.
type CreateLeadRequest struct {
	BusinessName string  `json:"business_name" validate:"required,min=2"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email" validate:"omitempty,email"`
	Website      string  `json:"website" validate:"omitempty,url"`
	Rating       float64 `json:"rating" validate:"min=0,max=5"`
	ReviewCount  int     `json:"review_count" validate:"min=0"`
	Source       string  `json:"source"`
	Notes        string  `json:"notes"`
	ContactName  string  `json:"contact_name"`
	CampaignID   string  `json:"campaign_id"`
}

// ListLeadsRequest holds the listing filters bound from query parameters.
type ListLeadsRequest struct {
	CampaignID string `query:"campaign_id"`
	Channel    string `query:"channel"`
	Status     string `query:"status" validate:"omitempty,oneof=NEW CONTACTED MANUAL"`
	Pinned     *bool  `query:"pinned"`
}

// DeleteLeadRequest identifies the delete target. BusinessName drives a bulk
// purge of every duplicate row sharing the normalized name; ID is the
// fallback when the name is absent.
type DeleteLeadRequest struct {
	ID           string `json:"id" validate:"required"`
	BusinessName string `json:"business_name"`
}

// CreateCampaignRequest creates a named tab grouping.
type CreateCampaignRequest struct {
	Name  string `json:"name" validate:"required,min=2"`
	Slug  string `json:"slug" validate:"required,lowercase"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

// LeadView is a lead plus everything the dashboard renders for it: the
// classification bundle, outreach deep links and the quality score.
type LeadView struct {
	Lead         Lead           `json:"lead"`
	Channel      string         `json:"channel"`
	Tag          string         `json:"tag"`
	Pitch        string         `json:"pitch"`
	Email        string         `json:"email,omitempty"`
	Platform     string         `json:"platform,omitempty"`
	SourceURL    string         `json:"source_url,omitempty"`
	WebsiteURL   string         `json:"website_url,omitempty"`
	Budget       string         `json:"budget,omitempty"`
	IsPinned     bool           `json:"is_pinned"`
	WhatsAppLink string         `json:"whatsapp_link,omitempty"`
	MailtoLink   string         `json:"mailto_link,omitempty"`
	QualityScore int            `json:"quality_score"`
	ScoreDetail  map[string]int `json:"score_detail,omitempty"`
}

// LeadListResponse is the listing envelope: deduplicated, classified and
// sorted views plus per-channel tab counts and lifecycle status counts.
type LeadListResponse struct {
	Data          []LeadView       `json:"data"`
	Total         int              `json:"total"`
	ChannelCounts map[string]int   `json:"channel_counts"`
	StatusCounts  map[string]int64 `json:"status_counts"`
}

// ExportRequest selects the listing slice to export.
type ExportRequest struct {
	Format     string `json:"format" validate:"required,oneof=csv excel"`
	CampaignID string `json:"campaign_id"`
	Channel    string `json:"channel"`
}

// ExportResponse describes a finished export artifact.
type ExportResponse struct {
	File      string `json:"file"`
	Format    string `json:"format"`
	LeadCount int    `json:"lead_count"`
	S3Key     string `json:"s3_key,omitempty"`
}
