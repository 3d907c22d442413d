package handlers

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/leadpilot/leadpilot/pkg/api/errors"
	"github.com/leadpilot/leadpilot/pkg/models"
	"github.com/leadpilot/leadpilot/pkg/store"
)

// CampaignHandler handles campaign tab endpoints
type CampaignHandler struct {
	repo      *store.CampaignRepository
	validator *validator.Validate
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(repo *store.CampaignRepository) *CampaignHandler {
	return &CampaignHandler{
		repo:      repo,
		validator: validator.New(),
	}
}

// List godoc
// @Summary List campaigns
// @Tags Campaigns
// @Produce json
// @Success 200 {array} models.Campaign "Campaigns"
// @Router /campaigns [get]
func (h *CampaignHandler) List(c echo.Context) error {
	campaigns, err := h.repo.List(c.Request().Context())
	if err != nil {
		return errors.DatabaseError(c, err)
	}
	return c.JSON(http.StatusOK, campaigns)
}

// Create godoc
// @Summary Create a campaign
// @Tags Campaigns
// @Accept json
// @Produce json
// @Param request body models.CreateCampaignRequest true "Campaign data"
// @Success 201 {object} models.Campaign "Created campaign"
// @Failure 409 {object} models.ErrorResponse "Slug already exists"
// @Router /campaigns [post]
func (h *CampaignHandler) Create(c echo.Context) error {
	var req models.CreateCampaignRequest
	if err := c.Bind(&req); err != nil {
		return errors.ValidationError(c, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	ctx := c.Request().Context()
	if existing, err := h.repo.GetBySlug(ctx, req.Slug); err == nil && existing != nil {
		return errors.ConflictError(c, "a campaign with this slug already exists")
	} else if err != nil && !stderrors.Is(err, store.ErrNotFound) {
		return errors.DatabaseError(c, err)
	}

	campaign := &models.Campaign{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Slug:      req.Slug,
		Color:     req.Color,
		CreatedAt: time.Now(),
	}
	if err := h.repo.Create(ctx, campaign); err != nil {
		return errors.DatabaseError(c, err)
	}

	return c.JSON(http.StatusCreated, campaign)
}
