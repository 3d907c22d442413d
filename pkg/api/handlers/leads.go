package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/leadpilot/leadpilot/pkg/ai"
	"github.com/leadpilot/leadpilot/pkg/api/errors"
	"github.com/leadpilot/leadpilot/pkg/email"
	"github.com/leadpilot/leadpilot/pkg/leads"
	"github.com/leadpilot/leadpilot/pkg/metrics"
	"github.com/leadpilot/leadpilot/pkg/models"
)

// LeadHandler handles the lead listing and mutation endpoints
type LeadHandler struct {
	leadService  *leads.Service
	aiService    *ai.Service
	emailService *email.Service
	metrics      *metrics.Metrics
	validator    *validator.Validate
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leadService *leads.Service, aiService *ai.Service, emailService *email.Service, m *metrics.Metrics) *LeadHandler {
	return &LeadHandler{
		leadService:  leadService,
		aiService:    aiService,
		emailService: emailService,
		metrics:      m,
		validator:    validator.New(),
	}
}

// List godoc
// @Summary List classified leads
// @Description Returns the deduplicated, classified and sorted listing plus channel tab counts.
// @Tags Leads
// @Produce json
// @Param campaign_id query string false "Campaign filter"
// @Param channel query string false "Channel tab filter"
// @Param status query string false "Status filter (NEW, CONTACTED, MANUAL)"
// @Param pinned query boolean false "Only pinned leads"
// @Success 200 {object} models.LeadListResponse "Listing"
// @Router /leads [get]
func (h *LeadHandler) List(c echo.Context) error {
	var req models.ListLeadsRequest
	if err := c.Bind(&req); err != nil {
		return errors.ValidationError(c, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	resp, err := h.leadService.List(c.Request().Context(), req)
	if err != nil {
		return errors.DatabaseError(c, err)
	}

	for _, v := range resp.Data {
		h.metrics.RecordClassification(v.Tag)
		if v.WhatsAppLink != "" {
			h.metrics.RecordOutreachLink("whatsapp")
		}
		if v.MailtoLink != "" {
			h.metrics.RecordOutreachLink("email")
		}
	}

	return c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Create a manual lead
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body models.CreateLeadRequest true "Lead data"
// @Success 201 {object} models.Lead "Created lead"
// @Router /leads [post]
func (h *LeadHandler) Create(c echo.Context) error {
	var req models.CreateLeadRequest
	if err := c.Bind(&req); err != nil {
		return errors.ValidationError(c, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	lead, err := h.leadService.Create(c.Request().Context(), req)
	if err != nil {
		return errors.DatabaseError(c, err)
	}

	h.metrics.LeadsCreated.Inc()
	return c.JSON(http.StatusCreated, lead)
}

// ToggleStatus godoc
// @Summary Toggle a lead between NEW and CONTACTED
// @Tags Leads
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} models.Lead "Updated lead"
// @Failure 404 {object} models.ErrorResponse "Lead not found"
// @Failure 409 {object} models.ErrorResponse "Status cannot be toggled"
// @Router /leads/{id}/status [patch]
func (h *LeadHandler) ToggleStatus(c echo.Context) error {
	lead, err := h.leadService.ToggleStatus(c.Request().Context(), c.Param("id"))
	if err != nil {
		switch {
		case stderrors.Is(err, leads.ErrNotFound):
			return errors.NotFoundError(c, "lead")
		case stderrors.Is(err, leads.ErrInvalidTransition):
			return errors.ConflictError(c, "lead status cannot be toggled")
		default:
			return errors.DatabaseError(c, err)
		}
	}
	return c.JSON(http.StatusOK, lead)
}

// TogglePin godoc
// @Summary Toggle the pinned flag on a lead
// @Tags Leads
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} models.Lead "Updated lead"
// @Failure 404 {object} models.ErrorResponse "Lead not found"
// @Router /leads/{id}/pin [patch]
func (h *LeadHandler) TogglePin(c echo.Context) error {
	lead, err := h.leadService.TogglePin(c.Request().Context(), c.Param("id"))
	if err != nil {
		if stderrors.Is(err, leads.ErrNotFound) {
			return errors.NotFoundError(c, "lead")
		}
		return errors.DatabaseError(c, err)
	}
	return c.JSON(http.StatusOK, lead)
}

// Delete godoc
// @Summary Delete a lead and all duplicates sharing its name
// @Description Requires confirm=true. With a business name every row sharing
// the normalized name is purged; otherwise only the given id is removed.
// @Tags Leads
// @Accept json
// @Produce json
// @Param confirm query boolean true "Must be true"
// @Param request body models.DeleteLeadRequest true "Delete target"
// @Success 200 {object} map[string]int64 "Rows deleted"
// @Router /leads [delete]
func (h *LeadHandler) Delete(c echo.Context) error {
	if c.QueryParam("confirm") != "true" {
		return errors.ValidationError(c, stderrors.New("delete requires confirm=true"))
	}

	var req models.DeleteLeadRequest
	if err := c.Bind(&req); err != nil {
		return errors.ValidationError(c, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	deleted, err := h.leadService.Delete(c.Request().Context(), req)
	if err != nil {
		return errors.DatabaseError(c, err)
	}

	h.metrics.LeadsDeleted.Add(float64(deleted))
	return c.JSON(http.StatusOK, map[string]int64{"deleted": deleted})
}

// DraftProposal godoc
// @Summary Draft an outreach proposal for a lead
// @Description Drafts a proposal, stores it in the lead's notes and optionally
// emails it to the contact when send=true.
// @Tags Leads
// @Produce json
// @Param id path string true "Lead ID"
// @Param send query boolean false "Send the proposal by email"
// @Success 200 {object} map[string]string "Drafted proposal"
// @Failure 404 {object} models.ErrorResponse "Lead not found"
// @Router /leads/{id}/proposal [post]
func (h *LeadHandler) DraftProposal(c echo.Context) error {
	ctx := c.Request().Context()

	lead, err := h.leadService.GetByID(ctx, c.Param("id"))
	if err != nil {
		if stderrors.Is(err, leads.ErrNotFound) {
			return errors.NotFoundError(c, "lead")
		}
		return errors.DatabaseError(c, err)
	}

	view := leads.BuildView(*lead)
	proposal, err := h.aiService.DraftProposal(ctx, view)
	if err != nil {
		return errors.InternalError(c, err)
	}

	audit := models.ParseAudit(lead.Notes)
	audit.AIProposal = proposal
	if err := h.leadService.UpdateNotes(ctx, lead.ID, models.EncodeAudit(audit)); err != nil {
		return errors.DatabaseError(c, err)
	}
	h.metrics.ProposalsDrafted.Inc()

	if c.QueryParam("send") == "true" {
		if err := h.emailService.SendOutreach(view, proposal); err != nil {
			return errors.InternalError(c, err)
		}
	}

	return c.JSON(http.StatusOK, map[string]string{"proposal": proposal})
}
