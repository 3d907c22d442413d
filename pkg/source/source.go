// Package source assigns each lead to exactly one logical acquisition
// channel. Channels drive the dashboard's tab filtering and count badges and
// are the single source of truth for the classifier's heuristic buckets.
package source

import (
	"regexp"
	"strings"

	"github.com/leadpilot/leadpilot/pkg/models"
)

// Channel is a logical acquisition channel tag.
type Channel = string

// Consolidated channels produced by Resolve. Literal campaign codes pass
// through unchanged and are not enumerated here.
const (
	ChannelMoneyHunt       Channel = "MONEY_HUNT"
	ChannelGulf            Channel = "GULF"
	ChannelHackerNews      Channel = "HACKER_NEWS"
	ChannelReddit          Channel = "REDDIT"
	ChannelVerifiedFunding Channel = "VERIFIED_FUNDING"
	ChannelSniperHighValue Channel = "SNIPER_HIGH_VALUE"
	ChannelSniperQuality   Channel = "SNIPER_QUALITY"
	ChannelGoogleMaps      Channel = "GOOGLE_MAPS"
	ChannelUnknown         Channel = "UNKNOWN"
)

// Bracketed business-name markers left by ingestion scripts that predate the
// source column.
var nameMarkers = []struct {
	prefix  string
	channel Channel
}{
	{"[HN]", ChannelHackerNews},
	{"[Reddit]", ChannelReddit},
	{"[FUNDED]", ChannelVerifiedFunding},
}

// moneyHuntSources are campaign identifiers consolidated into MONEY_HUNT.
var moneyHuntSources = map[string]bool{
	models.SourceIndeedGulfHunt:    true,
	models.SourceLinkedInAuthSnipe: true,
	models.SourceCenturionGulfHunt: true,
}

// campaignCodePattern matches date-coded campaign identifiers
// (e.g. OUTREACH_20250614), which pass through as their own channel.
var campaignCodePattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*_\d{6,8}$`)

// highValueKeywords is the fixed keyword list for the legacy heuristic
// reclassification. Matched case-insensitively as substrings of the
// business name.
var highValueKeywords = []string{
	"luxury", "premium", "diamond", "gold", "jewel", "realty", "estate",
	"robotic", "implant", "architect", "villa", "residency", "heights",
	"developer", "associate", "international", "wedding", "event", "clinic",
	"fitness", "gym", "skin", "derma", "dental",
}

// Resolve maps a lead to its acquisition channel. Predicates are evaluated
// in order and the first match wins; several overlap, so the order is part
// of the contract.
func Resolve(lead *models.Lead, audit models.Audit) Channel {
	// 1. Explicit audit source or a recognized money-hunt campaign.
	if audit.Source != "" || moneyHuntSources[lead.Source] {
		return ChannelMoneyHunt
	}

	// 2. Middle-East market annotation or the Gulf sniper campaign.
	if audit.Market == models.MarketMiddleEast || lead.Source == models.SourceGulfSniper {
		return ChannelGulf
	}

	// 3. Date-coded campaign identifiers pass through unchanged.
	if campaignCodePattern.MatchString(lead.Source) {
		return lead.Source
	}

	// 4. Bracketed name markers from legacy ingestion scripts.
	for _, m := range nameMarkers {
		if strings.HasPrefix(lead.BusinessName, m.prefix) {
			return m.channel
		}
	}

	// 5. Heuristic reclassification for legacy rows lacking a source.
	if !lead.HasWebsite() && lead.Phone != "" {
		if lead.ReviewCount >= 100 && (HasHighValueKeyword(lead.BusinessName) || lead.Rating >= 4.7) {
			return ChannelSniperHighValue
		}
		if lead.ReviewCount >= 70 && lead.Rating >= 4.7 {
			return ChannelSniperQuality
		}
	}

	// 6. Rows scraped from a maps profile.
	if strings.Contains(lead.MapsURL, "google.com/maps") {
		return ChannelGoogleMaps
	}

	return ChannelUnknown
}

// HasHighValueKeyword reports whether the business name contains any of the
// fixed high-value keywords.
func HasHighValueKeyword(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range highValueKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
