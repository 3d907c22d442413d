// Package testdata generates realistic fake leads for development seeding and
// demos. Every source bucket the dashboard knows gets representative rows,
// including the notes blob the classifier reads.
package testdata

import (
	"context"
	"encoding/base64"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"

	"github.com/leadpilot/leadpilot/pkg/models"
)

// GeneratorConfig configures lead generation parameters
type GeneratorConfig struct {
	Count         int
	CampaignID    string
	EmailChance   float64 // 0.0-1.0 (probability of having email)
	WebsiteChance float64
	PinnedChance  float64
}

// DefaultConfig mirrors real scrape output: most rows have a phone, about
// half have a website and a pinned row is rare.
func DefaultConfig(count int) GeneratorConfig {
	return GeneratorConfig{
		Count:         count,
		EmailChance:   0.4,
		WebsiteChance: 0.5,
		PinnedChance:  0.05,
	}
}

// Business name parts per vertical the hunts target.
var businessNameParts = map[string]struct {
	Prefixes []string
	Suffixes []string
}{
	"real_estate": {
		Prefixes: []string{"Skyline", "Palm", "Marina", "Emirates", "Golden", "Premier", "Oasis", "Crown", "Desert", "Pearl"},
		Suffixes: []string{"Real Estate", "Properties", "Realty", "Property Group", "Homes", "Estates"},
	},
	"clinic": {
		Prefixes: []string{"Family", "Advanced", "Harmony", "Elite", "Care", "Wellness", "Bright", "Gentle", "Prime", "Noor"},
		Suffixes: []string{"Clinic", "Medical Center", "Dental Care", "Polyclinic", "Healthcare", "Medical Clinic"},
	},
	"salon": {
		Prefixes: []string{"Glamour", "Luxe", "Royal", "Bella", "Chic", "Divine", "Radiant", "Elegant", "Pure", "Velvet"},
		Suffixes: []string{"Salon", "Beauty Lounge", "Spa", "Beauty Studio", "Ladies Salon", "Gents Salon"},
	},
	"restaurant": {
		Prefixes: []string{"Golden", "Spice", "Olive", "Saffron", "Royal", "Casa", "Zaitoon", "Mandi", "Urban", "Corner"},
		Suffixes: []string{"Restaurant", "Kitchen", "Grill", "Bistro", "Cafeteria", "Eatery"},
	},
	"gym": {
		Prefixes: []string{"Iron", "Peak", "Alpha", "Titan", "Prime", "Force", "Pulse", "Apex", "Warrior", "Summit"},
		Suffixes: []string{"Fitness", "Gym", "Training Center", "Athletic Club", "CrossFit", "Fitness Studio"},
	},
	"services": {
		Prefixes: []string{"Rapid", "Expert", "Pro", "Quality", "Reliable", "Master", "Precision", "Total", "Swift", "Falcon"},
		Suffixes: []string{"Technical Services", "Maintenance", "Cleaning Services", "Movers", "AC Repair", "Contracting"},
	},
}

var verticals = []string{"real_estate", "clinic", "salon", "restaurant", "gym", "services"}

// sourceProfiles pair each scraper bucket with the audit shape it writes.
type sourceProfile struct {
	source string
	audit  func() models.Audit
}

var sourceProfiles = []sourceProfile{
	{source: models.SourceAdBurnerHunt, audit: func() models.Audit {
		return models.Audit{
			Platform:  "Facebook",
			TargetURL: "https://facebook.com/ads/library/" + gofakeit.DigitN(12),
			IsPinned:  false,
		}
	}},
	{source: models.SourceIndeedGulfHunt, audit: func() models.Audit {
		return models.Audit{
			JobTitle: gofakeit.JobTitle(),
			Role:     gofakeit.RandomString([]string{"Real Estate Agent", "Marketing Manager", "Software Developer", "Sales Executive"}),
			Market:   models.MarketMiddleEast,
			JobURL:   "https://indeed.com/viewjob?jk=" + gofakeit.DigitN(10),
		}
	}},
	{source: models.SourceHighIntentProject, audit: func() models.Audit {
		return models.Audit{
			Intent:     models.IntentDirectDevelopment,
			Budget:     gofakeit.RandomString([]string{"$2k-5k", "$5k-10k", "$10k+"}),
			ProjectURL: "https://freelancer.example/projects/" + gofakeit.DigitN(8),
		}
	}},
	{source: models.SourceLinkedInAuthSnipe, audit: func() models.Audit {
		return models.Audit{
			FounderName:     gofakeit.Name(),
			FounderLinkedIn: "https://linkedin.com/in/" + gofakeit.Username(),
			ConnectionPitch: "Saw your post about scaling ops, would love to connect.",
		}
	}},
	{source: models.SourceVerifiedFunding, audit: func() models.Audit {
		return models.Audit{
			FounderName:   gofakeit.Name(),
			FounderEmail:  gofakeit.Email(),
			FundingAmount: gofakeit.RandomString([]string{"$1.2M", "$3M", "$500K", "$8M"}),
		}
	}},
	{source: models.SourceGulfSniper, audit: func() models.Audit {
		return models.Audit{
			Keyword:    gofakeit.RandomString([]string{"real estate", "clinic", "salon", "typing center"}),
			IsGoldMine: rand.Float64() < 0.2,
		}
	}},
	{source: models.SourceCenturionGulfHunt, audit: func() models.Audit { return models.Audit{} }},
	{source: models.SourceMissionControl, audit: func() models.Audit { return models.Audit{} }},
}

// GenerateBusinessName creates a vertical-specific realistic business name.
func GenerateBusinessName(vertical string) string {
	parts, ok := businessNameParts[vertical]
	if !ok {
		return fmt.Sprintf("%s %s", gofakeit.Company(), gofakeit.BuzzWord())
	}
	prefix := parts.Prefixes[rand.Intn(len(parts.Prefixes))]
	suffix := parts.Suffixes[rand.Intn(len(parts.Suffixes))]
	return fmt.Sprintf("%s %s", prefix, suffix)
}

// GeneratePhone returns a raw phone in one of the formats the scrapers emit:
// UAE local, UAE international, Indian mobile, or a placeholder.
func GeneratePhone() string {
	switch rand.Intn(5) {
	case 0:
		return "05" + gofakeit.DigitN(8)
	case 1:
		return "+9715" + gofakeit.DigitN(8)
	case 2:
		return fmt.Sprint(rand.Intn(4)+6) + gofakeit.DigitN(9)
	case 3:
		return "5" + gofakeit.DigitN(8)
	default:
		return "SEARCH"
	}
}

// GenerateLead creates a single lead with realistic data.
func GenerateLead(config GeneratorConfig) *models.Lead {
	profile := sourceProfiles[rand.Intn(len(sourceProfiles))]
	vertical := verticals[rand.Intn(len(verticals))]
	name := GenerateBusinessName(vertical)

	audit := profile.audit()
	audit.Source = profile.source
	audit.IsPinned = rand.Float64() < config.PinnedChance
	audit.Score = float64(40 + rand.Intn(60))

	lead := &models.Lead{
		ID:           synthesizeID(name),
		BusinessName: name,
		Phone:        GeneratePhone(),
		Rating:       float64(rand.Intn(21)+30) / 10, // 3.0-5.0
		ReviewCount:  rand.Intn(400),
		Source:       profile.source,
		Notes:        models.EncodeAudit(audit),
		Status:       models.StatusNew,
		CampaignID:   config.CampaignID,
		CreatedAt:    time.Now().Add(-time.Duration(rand.Intn(72)) * time.Hour),
	}

	if rand.Float64() < config.EmailChance {
		lead.Email = contactEmail(name)
	}
	if rand.Float64() < config.WebsiteChance {
		lead.Website = "https://www." + slugify(name) + ".com"
	}
	if lead.Website == "" && rand.Float64() < 0.7 {
		lead.MapsURL = "https://google.com/maps/place/" + strings.ReplaceAll(name, " ", "+")
	}
	if audit.FounderName != "" {
		lead.ContactName = audit.FounderName
	}

	return lead
}

// GenerateLeads creates multiple leads with the given config.
func GenerateLeads(config GeneratorConfig) []*models.Lead {
	leads := make([]*models.Lead, config.Count)
	for i := range leads {
		leads[i] = GenerateLead(config)
	}
	return leads
}

// BulkInsertLeads inserts leads in batches.
func BulkInsertLeads(ctx context.Context, db *gorm.DB, leads []*models.Lead, batchSize int) error {
	if err := db.WithContext(ctx).CreateInBatches(leads, batchSize).Error; err != nil {
		return fmt.Errorf("failed to insert leads: %w", err)
	}
	return nil
}

func synthesizeID(name string) string {
	raw := fmt.Sprintf("%s:%d", name, time.Now().UnixNano()+int64(rand.Intn(1_000_000)))
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func contactEmail(name string) string {
	return "contact@" + slugify(name) + ".com"
}

func slugify(name string) string {
	s := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	s = strings.ReplaceAll(s, "'", "")
	if len(s) > 20 {
		s = s[:20]
	}
	return s
}
