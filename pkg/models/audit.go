package models

import "encoding/json"

// Audit market and intent markers recognized inside the notes blob.
const (
	MarketMiddleEast        = "MIDDLE_EAST"
	IntentDirectDevelopment = "DIRECT_DEVELOPER_NEED"
)

// Audit is the structured annotation blob stored JSON-encoded in a lead's
// notes column. Every consumed field is declared and zero-defaulted so that
// absent fields never need nil checks downstream.
type Audit struct {
	Source          string   `json:"source,omitempty"`
	Market          string   `json:"market,omitempty"`
	JobTitle        string   `json:"job_title,omitempty"`
	Role            string   `json:"role,omitempty"`
	Budget          string   `json:"budget,omitempty"`
	Intent          string   `json:"intent,omitempty"`
	FounderName     string   `json:"founder_name,omitempty"`
	FounderEmail    string   `json:"founder_email,omitempty"`
	FounderLinkedIn string   `json:"founder_linkedin,omitempty"`
	ConnectionPitch string   `json:"connection_pitch,omitempty"`
	AIProposal      string   `json:"ai_proposal,omitempty"`
	FundingAmount   string   `json:"funding_amount,omitempty"`
	Score           float64  `json:"score,omitempty"`
	Issues          []string `json:"issues,omitempty"`
	IsPinned        bool     `json:"is_pinned,omitempty"`
	IsGoldMine      bool     `json:"is_gold_mine,omitempty"`
	Keyword         string   `json:"keyword,omitempty"`
	FailReason      string   `json:"fail_reason,omitempty"`
	TargetURL       string   `json:"target_url,omitempty"`
	Platform        string   `json:"platform,omitempty"`
	ProjectURL      string   `json:"project_url,omitempty"`
	JobURL          string   `json:"job_url,omitempty"`
}

// ParseAudit decodes the notes blob into an Audit. Annotation data is
// best-effort: malformed or empty JSON yields the zero Audit, never an error.
func ParseAudit(notes string) Audit {
	var a Audit
	if notes == "" {
		return a
	}
	if err := json.Unmarshal([]byte(notes), &a); err != nil {
		return Audit{}
	}
	return a
}

// EncodeAudit serializes an Audit back into the notes blob format. Used by
// the pin toggle and proposal drafting paths, which rewrite the blob in place.
func EncodeAudit(a Audit) string {
	b, err := json.Marshal(a)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// HasFounderContact reports whether the audit carries a direct founder
// channel (LinkedIn or email), which routes the lead into the bypass flow.
func (a Audit) HasFounderContact() bool {
	return a.FounderLinkedIn != "" || a.FounderEmail != ""
}
