// Package classifier is the central decision table of the dashboard. It
// consumes a lead plus its parsed audit blob and produces the presentation
// bundle: priority tag, synthesized outreach pitch, contact target and URLs.
//
// The table is an ordered chain of mutually exclusive rules evaluated
// top-to-bottom with first-match-wins semantics. The chain is a package-level
// slice so rule precedence stays auditable and testable in isolation.
package classifier

import (
	"fmt"
	"strings"

	"github.com/leadpilot/leadpilot/pkg/models"
)

// Tags produced by the rule chain.
const (
	TagCashBleed      = "Cash Bleed: Social Ads"
	TagGoldMine       = "Gold Mine"
	TagMoneyHuntHirer = "Money Hunt: Hirer"
	TagProjectHot     = "Project: Hot"
	TagBypassMission  = "Bypass Mission"
	TagPremiumTarget  = "Premium Target"
	TagAukatStrike    = "Aukat Strike Target"
	TagTopRated       = "Top Rated Target"
	TagNoWebsiteGold  = "No Website Gold"
	TagGrowthTarget   = "Growth Target"
)

// Result is the presentation bundle for a single lead.
type Result struct {
	Tag        string
	Pitch      string
	Email      string
	Platform   string
	SourceURL  string
	WebsiteURL string
	Budget     string
	IsPinned   bool
	Rule       string
	Priority   int
}

// hiringIntentSources are the campaign identifiers that mark a lead as an
// active hirer.
var hiringIntentSources = map[string]bool{
	models.SourceIndeedGulfHunt:    true,
	models.SourceLinkedInAuthSnipe: true,
	models.SourceCenturionGulfHunt: true,
}

type rule struct {
	name  string
	match func(l *models.Lead, a models.Audit) bool
	apply func(l *models.Lead, a models.Audit, r *Result)
}

// rules is the ordered chain. Order is part of the contract: a premium lead
// sourced from AD_BURNER_HUNT gets the cash-bleed treatment, not the premium
// one.
var rules = []rule{
	{
		name: "ad_burner",
		match: func(l *models.Lead, a models.Audit) bool {
			return l.Source == models.SourceAdBurnerHunt
		},
		apply: func(l *models.Lead, a models.Audit, r *Result) {
			r.Tag = TagCashBleed
			r.Pitch = adBurnerPitch(l, a)
			if a.TargetURL != "" {
				r.SourceURL = a.TargetURL
			}
		},
	},
	{
		name: "hirer",
		match: func(l *models.Lead, a models.Audit) bool {
			return hiringIntentSources[l.Source]
		},
		apply: func(l *models.Lead, a models.Audit, r *Result) {
			if a.IsGoldMine {
				r.Tag = TagGoldMine
			} else {
				r.Tag = TagMoneyHuntHirer
			}
			r.Pitch = hirerPitch(l, a)
			if a.JobURL != "" {
				r.SourceURL = a.JobURL
			}
		},
	},
	{
		name: "project",
		match: func(l *models.Lead, a models.Audit) bool {
			return l.Source == models.SourceHighIntentProject || a.Intent == models.IntentDirectDevelopment
		},
		apply: func(l *models.Lead, a models.Audit, r *Result) {
			r.Tag = TagProjectHot
			if a.AIProposal != "" {
				r.Pitch = a.AIProposal
			} else {
				r.Pitch = fmt.Sprintf("Hi%s, I saw the project you posted. I build exactly this kind of thing and can share a working first cut within a week. Open to a quick call?", forName(a.FounderName))
			}
			if a.ProjectURL != "" {
				r.SourceURL = a.ProjectURL
			}
		},
	},
	{
		name: "bypass",
		match: func(l *models.Lead, a models.Audit) bool {
			return l.Source == models.SourceMissionControl || a.HasFounderContact()
		},
		apply: func(l *models.Lead, a models.Audit, r *Result) {
			r.Tag = TagBypassMission
			if a.ConnectionPitch != "" {
				r.Pitch = a.ConnectionPitch
			} else {
				r.Pitch = fmt.Sprintf("Hi%s, congrats on the traction at %s. I work with funded teams on shipping product faster and thought a direct intro beats the contact form.", forName(a.FounderName), l.BusinessName)
			}
			if a.FounderEmail != "" {
				r.Email = a.FounderEmail
			}
			if a.FounderLinkedIn != "" {
				r.SourceURL = a.FounderLinkedIn
			}
		},
	},
	{
		name: "premium",
		match: func(l *models.Lead, a models.Audit) bool {
			return l.IsPremium
		},
		apply: func(l *models.Lead, a models.Audit, r *Result) {
			r.Tag = TagPremiumTarget
			r.Pitch = fmt.Sprintf(premiumPitches[PitchVariant(l.ID)], l.BusinessName)
		},
	},
	{
		name: "aukat_strike",
		match: func(l *models.Lead, a models.Audit) bool {
			return !l.HasWebsite() && l.Rating >= 4.5 && l.ReviewCount >= 100
		},
		apply: func(l *models.Lead, a models.Audit, r *Result) {
			r.Tag = TagAukatStrike
			r.Pitch = fmt.Sprintf("%s has %d reviews and a %.1f rating but no website. Businesses with half your reputation are taking your customers online. I can fix that this week.", l.BusinessName, l.ReviewCount, l.Rating)
		},
	},
	{
		name: "top_rated",
		match: func(l *models.Lead, a models.Audit) bool {
			return !l.HasWebsite() && l.Rating >= 4.5 && l.ReviewCount >= 50
		},
		apply: func(l *models.Lead, a models.Audit, r *Result) {
			r.Tag = TagTopRated
			r.Pitch = fmt.Sprintf("%s is one of the best-rated businesses in the area and still has no website. A simple site would turn that reputation into bookings.", l.BusinessName)
		},
	},
	{
		name: "no_website",
		match: func(l *models.Lead, a models.Audit) bool {
			return !l.HasWebsite()
		},
		apply: func(l *models.Lead, a models.Audit, r *Result) {
			r.Tag = TagNoWebsiteGold
			r.Pitch = fmt.Sprintf("Customers searching for %s right now find nothing. A one-page site with your number and location captures them before a competitor does.", l.BusinessName)
		},
	},
	{
		name: "default",
		match: func(l *models.Lead, a models.Audit) bool {
			return true
		},
		apply: func(l *models.Lead, a models.Audit, r *Result) {
			r.Tag = TagGrowthTarget
			r.Pitch = fmt.Sprintf("I took a look at %s's online presence and found a few quick wins that would bring in more enquiries. Happy to walk you through them, no strings.", l.BusinessName)
		},
	},
}

// premiumPitches are the three fixed variants for premium targets. The
// variant is selected by PitchVariant so the same lead always renders the
// same pitch.
var premiumPitches = [3]string{
	"%s stands out in its market, and that deserves a digital presence to match. I build premium sites for exactly this tier of business.",
	"I shortlisted %s as one of the few businesses here worth a bespoke build. Can I send over a one-page concept?",
	"Most agencies would pitch %s a template. I'd rather show you what a properly designed presence does for a premium brand.",
}

// Classify runs the rule chain for a lead. It is pure and total: malformed
// notes degrade to an empty audit and no combination of absent optional
// fields can make it fail.
func Classify(l *models.Lead) Result {
	return ClassifyWithAudit(l, models.ParseAudit(l.Notes))
}

// ClassifyWithAudit is Classify with the audit already parsed, for callers
// that need the audit for other derivations (channel resolution, scoring).
func ClassifyWithAudit(l *models.Lead, a models.Audit) Result {
	r := Result{
		Email:      l.Email,
		Platform:   a.Platform,
		SourceURL:  l.MapsURL,
		WebsiteURL: l.Website,
		Budget:     a.Budget,
		IsPinned:   a.IsPinned,
	}
	for i, rl := range rules {
		if rl.match(l, a) {
			r.Rule = rl.name
			r.Priority = i + 1
			rl.apply(l, a, &r)
			break
		}
	}
	return r
}

// PitchVariant selects the stable premium pitch variant for a lead id: the
// sum of the id's byte values modulo 3. The same lead must show the same
// pitch across re-renders.
func PitchVariant(id string) int {
	sum := 0
	for _, b := range []byte(id) {
		sum += int(b)
	}
	return sum % 3
}

func adBurnerPitch(l *models.Lead, a models.Audit) string {
	keyword := a.Keyword
	if keyword == "" {
		keyword = "your niche"
	}
	if a.FailReason != "" {
		return fmt.Sprintf("You're paying for clicks on %q but %s. Every day that runs, the ad budget bleeds. I can plug the leak before the next billing cycle.", keyword, a.FailReason)
	}
	return fmt.Sprintf("Your ads on %q are sending paid traffic to a page that doesn't convert. I audit exactly this kind of spend leak for businesses like %s.", keyword, l.BusinessName)
}

// hirerPitch selects the wording branch by substring match on the role or
// job title: real-estate wording, tech-hiring wording, or generic hiring
// wording.
func hirerPitch(l *models.Lead, a models.Audit) string {
	role := a.Role
	if role == "" {
		role = a.JobTitle
	}
	lower := strings.ToLower(role)

	switch {
	case strings.Contains(lower, "real estate") || strings.Contains(lower, "property") || strings.Contains(lower, "realty"):
		return fmt.Sprintf("Saw %s is hiring for %s. Agencies that pair new agents with a strong listing site close faster. I build those. Worth a conversation before the new hires start?", l.BusinessName, roleOrDefault(role))
	case strings.Contains(lower, "developer") || strings.Contains(lower, "engineer") || strings.Contains(lower, "software") || strings.Contains(lower, "tech"):
		return fmt.Sprintf("Noticed %s is hiring %s. If the backlog is bigger than the team, I take on exactly that overflow as a contractor. Shipped, not managed.", l.BusinessName, roleOrDefault(role))
	default:
		return fmt.Sprintf("Saw %s is hiring%s. Growing teams usually means growing demand. I help businesses at this stage capture that demand online before the competition does.", l.BusinessName, forRole(role))
	}
}

func roleOrDefault(role string) string {
	if role == "" {
		return "new people"
	}
	return "a " + role
}

func forRole(role string) string {
	if role == "" {
		return ""
	}
	return " for a " + role
}

func forName(name string) string {
	if name == "" {
		return ""
	}
	return " " + name
}
