// Package export writes the classified listing to CSV or Excel files, with
// optional upload to S3.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/leadpilot/leadpilot/pkg/leads"
	"github.com/leadpilot/leadpilot/pkg/models"
	"github.com/leadpilot/leadpilot/pkg/phone"
)

// Config holds export configuration
type Config struct {
	Dir                string
	S3Bucket           string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

// Service handles listing exports
type Service struct {
	leads    *leads.Service
	dir      string
	bucket   string
	s3Client *s3.Client
}

// Header row shared by both formats.
var columns = []string{"Business", "Channel", "Tag", "Phone", "Email", "Rating", "Reviews", "Pitch"}

// NewService creates a new export service. When an S3 bucket is configured
// the finished files are uploaded as well as stored locally.
func NewService(leadService *leads.Service, cfg Config) (*Service, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	svc := &Service{
		leads:  leadService,
		dir:    cfg.Dir,
		bucket: cfg.S3Bucket,
	}

	if cfg.S3Bucket != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(cfg.AWSRegion),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AWSAccessKeyID,
				cfg.AWSSecretAccessKey,
				"",
			)),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		svc.s3Client = s3.NewFromConfig(awsCfg)
		log.Printf("✅ Export S3 upload enabled (bucket: %s)", cfg.S3Bucket)
	}

	return svc, nil
}

// Export writes the filtered listing in the requested format and returns the
// artifact description.
func (s *Service) Export(ctx context.Context, req models.ExportRequest) (*models.ExportResponse, error) {
	listing, err := s.leads.List(ctx, models.ListLeadsRequest{
		CampaignID: req.CampaignID,
		Channel:    req.Channel,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load listing for export: %w", err)
	}

	var filename string
	switch req.Format {
	case "excel":
		filename = fmt.Sprintf("leads-%s.xlsx", uuid.New().String())
		err = s.writeExcel(filepath.Join(s.dir, filename), listing.Data)
	default:
		filename = fmt.Sprintf("leads-%s.csv", uuid.New().String())
		err = s.writeCSV(filepath.Join(s.dir, filename), listing.Data)
	}
	if err != nil {
		return nil, err
	}

	resp := &models.ExportResponse{
		File:      filename,
		Format:    req.Format,
		LeadCount: len(listing.Data),
	}

	if s.s3Client != nil {
		key := "exports/" + filename
		if err := s.upload(ctx, filepath.Join(s.dir, filename), key); err != nil {
			// Local artifact already exists; surface the upload failure but
			// keep the export usable.
			log.Printf("⚠️  S3 upload failed for %s: %v", filename, err)
		} else {
			resp.S3Key = key
		}
	}

	return resp, nil
}

// FilePath resolves a previously exported file inside the export directory.
func (s *Service) FilePath(filename string) string {
	return filepath.Join(s.dir, filepath.Base(filename))
}

func (s *Service) writeCSV(path string, views []models.LeadView) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, v := range views {
		if err := w.Write(row(v)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func (s *Service) writeExcel(path string, views []models.LeadView) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Leads"
	f.SetSheetName("Sheet1", sheet)

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	for r, v := range views {
		for c, val := range row(v) {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (s *Service) upload(ctx context.Context, path, key string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	return err
}

func row(v models.LeadView) []string {
	normalized := ""
	if phone.IsReachable(v.Lead.Phone) {
		normalized = phone.Normalize(v.Lead.Phone)
	}
	return []string{
		v.Lead.BusinessName,
		v.Channel,
		v.Tag,
		normalized,
		v.Email,
		strconv.FormatFloat(v.Lead.Rating, 'f', 1, 64),
		strconv.Itoa(v.Lead.ReviewCount),
		v.Pitch,
	}
}
