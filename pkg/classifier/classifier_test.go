package classifier

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadpilot/leadpilot/pkg/models"
)

func notes(t *testing.T, a models.Audit) string {
	t.Helper()
	s := models.EncodeAudit(a)
	require.NotEmpty(t, s)
	return s
}

func TestClassifyRuleChain(t *testing.T) {
	t.Run("ad burner hunt", func(t *testing.T) {
		l := models.Lead{
			ID:           "l1",
			BusinessName: "Glow Clinic",
			Source:       models.SourceAdBurnerHunt,
			Notes:        notes(t, models.Audit{Keyword: "laser hair removal", FailReason: "the landing page 404s", TargetURL: "https://ads.example/landing"}),
		}
		r := Classify(&l)
		assert.Equal(t, TagCashBleed, r.Tag)
		assert.Contains(t, r.Pitch, "laser hair removal")
		assert.Contains(t, r.Pitch, "404s")
		assert.Equal(t, "https://ads.example/landing", r.SourceURL)
	})

	t.Run("hirer gold mine", func(t *testing.T) {
		l := models.Lead{
			ID:           "l2",
			BusinessName: "Skyline Properties",
			Source:       models.SourceIndeedGulfHunt,
			Notes:        notes(t, models.Audit{IsGoldMine: true, Role: "Real Estate Agent", JobURL: "https://indeed.example/job/1"}),
		}
		r := Classify(&l)
		assert.Equal(t, TagGoldMine, r.Tag)
		assert.Contains(t, r.Pitch, "listing site")
		assert.Equal(t, "https://indeed.example/job/1", r.SourceURL)
	})

	t.Run("hirer tech wording", func(t *testing.T) {
		l := models.Lead{
			ID:           "l3",
			BusinessName: "Acme Systems",
			Source:       models.SourceLinkedInAuthSnipe,
			Notes:        notes(t, models.Audit{JobTitle: "Senior Software Engineer"}),
		}
		r := Classify(&l)
		assert.Equal(t, TagMoneyHuntHirer, r.Tag)
		assert.Contains(t, r.Pitch, "contractor")
	})

	t.Run("hirer generic wording", func(t *testing.T) {
		l := models.Lead{
			ID:           "l4",
			BusinessName: "Acme Retail",
			Source:       models.SourceCenturionGulfHunt,
			Notes:        notes(t, models.Audit{Role: "Store Manager"}),
		}
		r := Classify(&l)
		assert.Equal(t, TagMoneyHuntHirer, r.Tag)
		assert.Contains(t, r.Pitch, "growing teams")
	})

	t.Run("project prefers prewritten proposal", func(t *testing.T) {
		l := models.Lead{
			ID:     "l5",
			Source: models.SourceHighIntentProject,
			Notes:  notes(t, models.Audit{AIProposal: "Here is the plan.", Budget: "$5k", ProjectURL: "https://board.example/p/9"}),
		}
		r := Classify(&l)
		assert.Equal(t, TagProjectHot, r.Tag)
		assert.Equal(t, "Here is the plan.", r.Pitch)
		assert.Equal(t, "$5k", r.Budget)
		assert.Equal(t, "https://board.example/p/9", r.SourceURL)
	})

	t.Run("project via audit intent", func(t *testing.T) {
		l := models.Lead{
			ID:    "l6",
			Notes: notes(t, models.Audit{Intent: models.IntentDirectDevelopment}),
		}
		r := Classify(&l)
		assert.Equal(t, TagProjectHot, r.Tag)
		assert.NotEmpty(t, r.Pitch)
	})

	t.Run("bypass mission resolves founder email", func(t *testing.T) {
		l := models.Lead{
			ID:           "l7",
			BusinessName: "Orbital AI",
			Email:        "info@orbital.example",
			Source:       models.SourceMissionControl,
			Notes: notes(t, models.Audit{
				FounderName:     "Sara",
				FounderEmail:    "sara@orbital.example",
				FounderLinkedIn: "https://linkedin.com/in/sara",
			}),
		}
		r := Classify(&l)
		assert.Equal(t, TagBypassMission, r.Tag)
		assert.Equal(t, "sara@orbital.example", r.Email)
		assert.Equal(t, "https://linkedin.com/in/sara", r.SourceURL)
	})

	t.Run("bypass via founder contact without source", func(t *testing.T) {
		l := models.Lead{
			ID:    "l8",
			Email: "hello@startup.example",
			Notes: notes(t, models.Audit{FounderLinkedIn: "https://linkedin.com/in/founder", ConnectionPitch: "We met at the meetup."}),
		}
		r := Classify(&l)
		assert.Equal(t, TagBypassMission, r.Tag)
		assert.Equal(t, "We met at the meetup.", r.Pitch)
		// No founder email: falls back to the lead's email.
		assert.Equal(t, "hello@startup.example", r.Email)
	})

	t.Run("premium target", func(t *testing.T) {
		l := models.Lead{ID: "l9", BusinessName: "Velvet Lounge", IsPremium: true}
		r := Classify(&l)
		assert.Equal(t, TagPremiumTarget, r.Tag)
		assert.Contains(t, r.Pitch, "Velvet Lounge")
	})

	t.Run("aukat strike quotes reputation", func(t *testing.T) {
		l := models.Lead{ID: "l10", BusinessName: "Marina Dental", Rating: 4.8, ReviewCount: 230}
		r := Classify(&l)
		assert.Equal(t, TagAukatStrike, r.Tag)
		assert.Contains(t, r.Pitch, "230 reviews")
		assert.Contains(t, r.Pitch, "4.8 rating")
	})

	t.Run("top rated", func(t *testing.T) {
		l := models.Lead{ID: "l11", BusinessName: "Corner Barbers", Rating: 4.6, ReviewCount: 60}
		r := Classify(&l)
		assert.Equal(t, TagTopRated, r.Tag)
	})

	t.Run("no website", func(t *testing.T) {
		l := models.Lead{ID: "l12", BusinessName: "Quiet Cafe", Rating: 3.9, ReviewCount: 12}
		r := Classify(&l)
		assert.Equal(t, TagNoWebsiteGold, r.Tag)
	})

	t.Run("default growth target", func(t *testing.T) {
		l := models.Lead{ID: "l13", BusinessName: "Acme", Website: "https://acme.example"}
		r := Classify(&l)
		assert.Equal(t, TagGrowthTarget, r.Tag)
	})
}

func TestRuleOrderIsStrict(t *testing.T) {
	// A lead matching rules 1 through 6 simultaneously must take rule 1, and
	// stripping conditions one at a time walks down the chain in order.
	base := func() models.Lead {
		return models.Lead{
			ID:           "order",
			BusinessName: "Everything Corp",
			Source:       models.SourceAdBurnerHunt,
			IsPremium:    true,
			Rating:       4.9,
			ReviewCount:  500,
			Notes: notes(t, models.Audit{
				Intent:          models.IntentDirectDevelopment,
				FounderEmail:    "f@x.example",
				FounderLinkedIn: "https://linkedin.com/in/f",
			}),
		}
	}

	l := base()
	assert.Equal(t, TagCashBleed, Classify(&l).Tag)

	l = base()
	l.Source = models.SourceIndeedGulfHunt
	assert.Equal(t, TagMoneyHuntHirer, Classify(&l).Tag)

	l = base()
	l.Source = ""
	assert.Equal(t, TagProjectHot, Classify(&l).Tag)

	l = base()
	l.Source = ""
	l.Notes = notes(t, models.Audit{FounderEmail: "f@x.example"})
	assert.Equal(t, TagBypassMission, Classify(&l).Tag)

	l = base()
	l.Source = ""
	l.Notes = ""
	assert.Equal(t, TagPremiumTarget, Classify(&l).Tag)

	l = base()
	l.Source = ""
	l.Notes = ""
	l.IsPremium = false
	assert.Equal(t, TagAukatStrike, Classify(&l).Tag)
}

func TestClassifyNeverFails(t *testing.T) {
	t.Run("malformed notes treated as empty audit", func(t *testing.T) {
		broken := models.Lead{ID: "b1", BusinessName: "Broken", Notes: "{not json"}
		clean := models.Lead{ID: "b1", BusinessName: "Broken"}
		assert.Equal(t, Classify(&clean), Classify(&broken))
	})

	t.Run("zero lead", func(t *testing.T) {
		var l models.Lead
		assert.NotPanics(t, func() { Classify(&l) })
		r := Classify(&l)
		assert.Equal(t, TagNoWebsiteGold, r.Tag)
	})
}

func TestPitchVariantStable(t *testing.T) {
	// sum("abc") = 97+98+99 = 294, 294 % 3 == 0
	assert.Equal(t, 0, PitchVariant("abc"))
	// sum("abd") = 295, 295 % 3 == 1
	assert.Equal(t, 1, PitchVariant("abd"))

	// Same id, same variant, across many renders.
	for i := 0; i < 10; i++ {
		assert.Equal(t, PitchVariant("lead-42"), PitchVariant("lead-42"))
	}

	l := models.Lead{ID: "lead-42", BusinessName: "Velvet", IsPremium: true}
	want := fmt.Sprintf(premiumPitches[PitchVariant(l.ID)], l.BusinessName)
	for i := 0; i < 5; i++ {
		assert.Equal(t, want, Classify(&l).Pitch)
	}
}

func TestCrossCuttingDefaults(t *testing.T) {
	l := models.Lead{
		ID:           "cc",
		BusinessName: "Acme",
		Email:        "acme@example.com",
		Website:      "https://acme.example",
		MapsURL:      "https://www.google.com/maps/place/acme",
		Notes:        notes(t, models.Audit{IsPinned: true, Platform: "upwork", Budget: "$2k"}),
	}
	r := Classify(&l)
	assert.True(t, r.IsPinned)
	assert.Equal(t, "acme@example.com", r.Email)
	assert.Equal(t, "https://acme.example", r.WebsiteURL)
	assert.Equal(t, "https://www.google.com/maps/place/acme", r.SourceURL)
	assert.Equal(t, "upwork", r.Platform)
	assert.Equal(t, "$2k", r.Budget)
}
