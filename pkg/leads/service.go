// Package leads implements the dashboard's lead business logic: the
// deduplicated, classified, sorted listing, the lifecycle mutations, and the
// quality score.
package leads

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/leadpilot/leadpilot/pkg/cache"
	"github.com/leadpilot/leadpilot/pkg/classifier"
	"github.com/leadpilot/leadpilot/pkg/metrics"
	"github.com/leadpilot/leadpilot/pkg/models"
	"github.com/leadpilot/leadpilot/pkg/outreach"
	"github.com/leadpilot/leadpilot/pkg/phone"
	"github.com/leadpilot/leadpilot/pkg/source"
	"github.com/leadpilot/leadpilot/pkg/store"
)

// ErrInvalidTransition is returned for status changes the lifecycle does not
// permit.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrNotFound mirrors the store's not-found error for handler convenience.
var ErrNotFound = store.ErrNotFound

const listCacheTTL = 2 * time.Minute

// Quality score weights. The total of all weights is 100.
const (
	scorePhoneReachable = 25
	scoreHasEmail       = 15
	scoreHasWebsite     = 10
	scoreHighRating     = 15
	scoreManyReviews    = 15
	scoreFounderContact = 10
	scoreHasProposal    = 10
)

// Service handles lead business logic
type Service struct {
	repo    *store.LeadRepository
	cache   *cache.Client
	metrics *metrics.Metrics
}

// NewService creates a new lead service. The metrics instance may be nil,
// in which case cache instrumentation is skipped.
func NewService(repo *store.LeadRepository, cache *cache.Client, m *metrics.Metrics) *Service {
	return &Service{repo: repo, cache: cache, metrics: m}
}

// List returns the deduplicated, classified and sorted listing with
// per-channel tab counts. Results are cached briefly; every mutation
// invalidates the cache.
func (s *Service) List(ctx context.Context, req models.ListLeadsRequest) (*models.LeadListResponse, error) {
	cacheKey := listCacheKey(req)
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
		var response models.LeadListResponse
		if err := json.Unmarshal([]byte(cached), &response); err == nil {
			if s.metrics != nil {
				s.metrics.RecordCacheHit("leads")
			}
			return &response, nil
		}
	}
	if s.metrics != nil {
		s.metrics.RecordCacheMiss("leads")
	}

	rows, err := s.repo.List(ctx, store.LeadFilters{
		CampaignID: req.CampaignID,
		Status:     req.Status,
	})
	if err != nil {
		return nil, err
	}

	views := buildViews(dedupe(rows))

	// Tab badges count every channel over the full deduplicated set, before
	// the channel filter narrows the visible slice.
	counts := make(map[string]int)
	for _, v := range views {
		counts[v.Channel]++
	}

	if req.Channel != "" {
		views = filterByChannel(views, req.Channel)
	}
	if req.Pinned != nil {
		filtered := views[:0]
		for _, v := range views {
			if v.IsPinned == *req.Pinned {
				filtered = append(filtered, v)
			}
		}
		views = filtered
	}

	SortViews(views)

	statusCounts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	response := &models.LeadListResponse{
		Data:          views,
		Total:         len(views),
		ChannelCounts: counts,
		StatusCounts:  statusCounts,
	}

	if encoded, err := json.Marshal(response); err == nil {
		_ = s.cache.Set(ctx, cacheKey, encoded, listCacheTTL)
	}

	return response, nil
}

// Create performs manual operator entry. The id is synthesized from the name
// and creation timestamp, the status is always MANUAL, and the phone type is
// backfilled when it can be inferred.
func (s *Service) Create(ctx context.Context, req models.CreateLeadRequest) (*models.Lead, error) {
	now := time.Now()
	lead := &models.Lead{
		ID:           SynthesizeID(req.BusinessName, now),
		BusinessName: req.BusinessName,
		Phone:        req.Phone,
		Email:        req.Email,
		Website:      req.Website,
		Rating:       req.Rating,
		ReviewCount:  req.ReviewCount,
		Source:       req.Source,
		Notes:        req.Notes,
		ContactName:  req.ContactName,
		CampaignID:   req.CampaignID,
		Status:       models.StatusManual,
		CreatedAt:    now,
	}
	if lead.Phone != "" && phone.IsReachable(lead.Phone) {
		lead.PhoneType = phone.InferType(phone.Normalize(lead.Phone))
	}
	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return lead, nil
}

// ToggleStatus flips a lead between NEW and CONTACTED. The flip is
// idempotent in the sense that two toggles restore the original status. All
// other states reject the transition.
func (s *Service) ToggleStatus(ctx context.Context, id string) (*models.Lead, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var next string
	switch lead.Status {
	case models.StatusNew:
		next = models.StatusContacted
	case models.StatusContacted:
		next = models.StatusNew
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidTransition, lead.Status)
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	lead.Status = next
	s.invalidate(ctx)
	return lead, nil
}

// TogglePin flips the pinned flag inside the lead's notes blob.
func (s *Service) TogglePin(ctx context.Context, id string) (*models.Lead, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	audit := models.ParseAudit(lead.Notes)
	audit.IsPinned = !audit.IsPinned
	lead.Notes = models.EncodeAudit(audit)

	if err := s.repo.UpdateNotes(ctx, id, lead.Notes); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return lead, nil
}

// Delete performs the bulk duplicate purge: every row sharing the normalized
// business name is removed, falling back to an id-based delete when the name
// is absent. The caller must already hold operator confirmation; this is
// destructive and irreversible.
func (s *Service) Delete(ctx context.Context, req models.DeleteLeadRequest) (int64, error) {
	var deleted int64
	if req.BusinessName != "" {
		n, err := s.repo.DeleteByBusinessName(ctx, req.BusinessName)
		if err != nil {
			return 0, err
		}
		deleted = n
	} else {
		if err := s.repo.DeleteByID(ctx, req.ID); err != nil {
			return 0, err
		}
		deleted = 1
	}
	s.invalidate(ctx)
	return deleted, nil
}

// UpdateNotes replaces the notes blob, used by the proposal drafting path.
func (s *Service) UpdateNotes(ctx context.Context, id, notes string) error {
	if err := s.repo.UpdateNotes(ctx, id, notes); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// GetByID fetches a single lead.
func (s *Service) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	return s.repo.GetByID(ctx, id)
}

// BuildView assembles the full presentation bundle for one lead.
func BuildView(lead models.Lead) models.LeadView {
	audit := models.ParseAudit(lead.Notes)
	result := classifier.ClassifyWithAudit(&lead, audit)
	score, detail := Score(&lead, audit)

	return models.LeadView{
		Lead:         lead,
		Channel:      source.Resolve(&lead, audit),
		Tag:          result.Tag,
		Pitch:        result.Pitch,
		Email:        result.Email,
		Platform:     result.Platform,
		SourceURL:    result.SourceURL,
		WebsiteURL:   result.WebsiteURL,
		Budget:       result.Budget,
		IsPinned:     result.IsPinned,
		WhatsAppLink: outreach.WhatsAppLink(lead.Phone, result.Pitch),
		MailtoLink:   outreach.MailtoLink(result.Email, "Quick question about "+lead.BusinessName, result.Pitch),
		QualityScore: score,
		ScoreDetail:  detail,
	}
}

// Score computes the 0-100 quality score with its breakdown.
func Score(lead *models.Lead, audit models.Audit) (int, map[string]int) {
	detail := make(map[string]int)
	total := 0
	add := func(key string, points int) {
		detail[key] = points
		total += points
	}

	if phone.IsReachable(lead.Phone) {
		add("phone_reachable", scorePhoneReachable)
	}
	if lead.Email != "" {
		add("has_email", scoreHasEmail)
	}
	if lead.HasWebsite() {
		add("has_website", scoreHasWebsite)
	}
	if lead.Rating >= 4.5 {
		add("high_rating", scoreHighRating)
	}
	if lead.ReviewCount >= 100 {
		add("many_reviews", scoreManyReviews)
	}
	if audit.HasFounderContact() {
		add("founder_contact", scoreFounderContact)
	}
	if audit.AIProposal != "" || audit.ConnectionPitch != "" {
		add("has_proposal", scoreHasProposal)
	}

	return total, detail
}

// SortViews orders a listing in place: pinned first, then Aukat strike
// targets, then by review count descending. Stable, so equal keys keep
// their first-seen order.
func SortViews(views []models.LeadView) {
	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i], views[j]
		if a.IsPinned != b.IsPinned {
			return a.IsPinned
		}
		aStrike := a.Tag == classifier.TagAukatStrike
		bStrike := b.Tag == classifier.TagAukatStrike
		if aStrike != bStrike {
			return aStrike
		}
		return a.Lead.ReviewCount > b.Lead.ReviewCount
	})
}

// SynthesizeID encodes a manual lead's identity from its name and creation
// timestamp.
func SynthesizeID(businessName string, createdAt time.Time) string {
	raw := fmt.Sprintf("%s:%d", businessName, createdAt.UnixNano())
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// dedupe keeps the first-seen row per normalized business name, preserving
// order.
func dedupe(rows []models.Lead) []models.Lead {
	seen := make(map[string]bool, len(rows))
	out := rows[:0]
	for _, row := range rows {
		key := models.NormalizeName(row.BusinessName)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, row)
	}
	return out
}

func buildViews(rows []models.Lead) []models.LeadView {
	views := make([]models.LeadView, 0, len(rows))
	for _, row := range rows {
		views = append(views, BuildView(row))
	}
	return views
}

func filterByChannel(views []models.LeadView, channel string) []models.LeadView {
	out := views[:0]
	for _, v := range views {
		if v.Channel == channel {
			out = append(out, v)
		}
	}
	return out
}

func listCacheKey(req models.ListLeadsRequest) string {
	pinned := ""
	if req.Pinned != nil {
		pinned = fmt.Sprintf("%t", *req.Pinned)
	}
	return fmt.Sprintf("leads:list:%s:%s:%s:%s", req.CampaignID, req.Channel, req.Status, pinned)
}

func (s *Service) invalidate(ctx context.Context) {
	_ = s.cache.DeletePattern(ctx, "leads:*")
}
