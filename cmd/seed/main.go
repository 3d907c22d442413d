// Command seed fills the database with generated leads for local development.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/leadpilot/leadpilot/config"
	"github.com/leadpilot/leadpilot/pkg/database"
	"github.com/leadpilot/leadpilot/pkg/testdata"
)

func main() {
	count := flag.Int("count", 200, "number of leads to generate")
	campaignID := flag.String("campaign", "", "campaign id to attach leads to")
	flag.Parse()

	if err := godotenv.Load(); err == nil {
		log.Printf("🔧 Loaded .env file")
	}
	cfg := config.Load()

	db, err := database.NewClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	genCfg := testdata.DefaultConfig(*count)
	genCfg.CampaignID = *campaignID
	leads := testdata.GenerateLeads(genCfg)

	if err := testdata.BulkInsertLeads(context.Background(), db.Gorm, leads, 100); err != nil {
		log.Fatalf("❌ Failed to insert leads: %v", err)
	}

	log.Printf("✅ Inserted %d generated leads", len(leads))
}
