package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/leadpilot/leadpilot/pkg/ai"
	"github.com/leadpilot/leadpilot/pkg/cache"
	"github.com/leadpilot/leadpilot/pkg/email"
	"github.com/leadpilot/leadpilot/pkg/leads"
	"github.com/leadpilot/leadpilot/pkg/metrics"
	"github.com/leadpilot/leadpilot/pkg/models"
	"github.com/leadpilot/leadpilot/pkg/store"
)

// Prometheus collectors register globally, so the whole package shares one
// metrics instance.
var testMetrics = metrics.New()

type testEnv struct {
	echo         *echo.Echo
	leadService  *leads.Service
	leadRepo     *store.LeadRepository
	campaignRepo *store.CampaignRepository
	leadHandler  *LeadHandler
	campaignHdlr *CampaignHandler
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Lead{}, &models.Campaign{}))

	mr := miniredis.RunT(t)
	c := &cache.Client{Redis: redis.NewClient(&redis.Options{Addr: mr.Addr()})}

	leadRepo := store.NewLeadRepository(db)
	campaignRepo := store.NewCampaignRepository(db)
	leadService := leads.NewService(leadRepo, c, testMetrics)

	return &testEnv{
		echo:         echo.New(),
		leadService:  leadService,
		leadRepo:     leadRepo,
		campaignRepo: campaignRepo,
		leadHandler:  NewLeadHandler(leadService, ai.NewService(ai.Config{}), email.NewService("test@leadpilot.dev", "LeadPilot", ""), testMetrics),
		campaignHdlr: NewCampaignHandler(campaignRepo),
	}
}

func (env *testEnv) request(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return env.echo.NewContext(req, rec), rec
}

func (env *testEnv) seedLead(t *testing.T, lead models.Lead) {
	t.Helper()
	if lead.Status == "" {
		lead.Status = models.StatusNew
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now()
	}
	require.NoError(t, env.leadRepo.Create(context.Background(), &lead))
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "body: %s", rec.Body.String())
}
