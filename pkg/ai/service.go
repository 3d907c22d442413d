// Package ai drafts outreach proposals for leads with OpenAI. Without an API
// key the service falls back to a deterministic template so the feature stays
// usable in development.
package ai

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/leadpilot/leadpilot/pkg/models"
)

const systemPrompt = `You are a senior business development writer for a software agency.
Write a short, direct outreach proposal (max 150 words) for the lead described by the user.
No greetings longer than one line, no filler, end with a single concrete call to action.`

// completer is the slice of the OpenAI client the drafter needs.
type completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Service drafts proposals for individual leads
type Service struct {
	client      completer
	model       string
	temperature float32
	maxTokens   int
}

// Config for the proposal drafter
type Config struct {
	APIKey      string
	Model       string  // default: gpt-4o-mini
	Temperature float32 // default: 0.7
	MaxTokens   int     // default: 400
}

// NewService creates a proposal drafter. A missing API key leaves the client
// nil and every draft comes from the built-in template.
func NewService(cfg Config) *Service {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 400
	}

	svc := &Service{
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
	if cfg.APIKey != "" {
		svc.client = openai.NewClient(cfg.APIKey)
	} else {
		log.Printf("⚠️  OPENAI_API_KEY not set, proposal drafts use the built-in template")
	}
	return svc
}

// DraftProposal produces a proposal text for the classified lead view.
func (s *Service) DraftProposal(ctx context.Context, view models.LeadView) (string, error) {
	if s.client == nil {
		return templateProposal(view), nil
	}

	start := time.Now()
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: leadBrief(view)},
		},
	})
	if err != nil {
		log.Printf("❌ Proposal draft failed for %s: %v (duration: %v)", view.Lead.ID, err, time.Since(start))
		return "", fmt.Errorf("proposal draft failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}
	log.Printf("✅ Proposal drafted for %s: %d tokens (duration: %v)", view.Lead.ID, resp.Usage.TotalTokens, time.Since(start))

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// leadBrief flattens the view into the user prompt.
func leadBrief(view models.LeadView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Business: %s\n", view.Lead.BusinessName)
	fmt.Fprintf(&b, "Channel: %s\n", view.Channel)
	fmt.Fprintf(&b, "Tag: %s\n", view.Tag)
	if view.Lead.ContactName != "" {
		fmt.Fprintf(&b, "Contact: %s\n", view.Lead.ContactName)
	}
	if view.Budget != "" {
		fmt.Fprintf(&b, "Budget: %s\n", view.Budget)
	}
	if view.Lead.ReviewCount > 0 {
		fmt.Fprintf(&b, "Reputation: %d reviews, %.1f rating\n", view.Lead.ReviewCount, view.Lead.Rating)
	}
	if view.WebsiteURL != "" {
		fmt.Fprintf(&b, "Website: %s\n", view.WebsiteURL)
	} else {
		b.WriteString("Website: none\n")
	}
	fmt.Fprintf(&b, "Opening angle already used: %s\n", view.Pitch)
	return b.String()
}

func templateProposal(view models.LeadView) string {
	name := strings.TrimSpace(view.Lead.ContactName)
	greeting := "Hi,"
	if name != "" {
		greeting = "Hi " + name + ","
	}
	return fmt.Sprintf(
		"%s\n\n%s\n\nWe build exactly this kind of system for businesses like %s. "+
			"I can share a one-page plan with timeline and pricing within a day. "+
			"Reply with a good time for a 15-minute call.",
		greeting, view.Pitch, view.Lead.BusinessName,
	)
}
