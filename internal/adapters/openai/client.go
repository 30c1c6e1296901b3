package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"payopti/internal/domain"
)

type Config struct {
	Endpoint   string
	APIKey     string
	Deployment string
	APIVersion string
	Timeout    time.Duration
}

// Client talks to an Azure OpenAI chat-completions deployment. Callers wrap
// it behind resilient interpreters, so every method here is allowed to fail
// and the failure never reaches allocation logic.
type Client struct {
	cfg  Config
	http *http.Client
	log  logrus.FieldLogger
}

func New(cfg Config, log logrus.FieldLogger) *Client {
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2024-02-01"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p,omitempty"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		c.cfg.Endpoint, c.cfg.Deployment, c.cfg.APIVersion)
	body, err := json.Marshal(chatRequest{
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.1,
		TopP:        0.7,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("chat completion status %d: %s", resp.StatusCode, snippet)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// termsResult mirrors the constrained output schema the model is asked for.
// Pointers let missing keys take the contract defaults.
type termsResult struct {
	PaymentType  *string  `json:"payment_type"`
	DiscountRate *float64 `json:"discount_rate"`
	DiscountDays *int     `json:"discount_days"`
	NetDays      *int     `json:"net_days"`
	LateFeeRate  *float64 `json:"late_fee_rate"`
	Confidence   *float64 `json:"confidence"`
}

const termsSystemPrompt = "You are a financial expert specializing in payment terms analysis. " +
	"Extract payment term details accurately and return only JSON."

// ParseTerms interprets raw terms text through the model.
func (c *Client) ParseTerms(ctx context.Context, raw string) (domain.PaymentTerms, error) {
	prompt := fmt.Sprintf(`Parse this payment term into structured JSON: %q

Extract:
- payment_type: one of "net_term", "early_discount", "cod", "advance_payment", "eom"
- discount_rate: percentage (e.g. 2.5 for 2.5%%)
- discount_days: days for the early payment discount
- net_days: total days for payment
- late_fee_rate: late payment penalty rate
- confidence: your confidence in parsing (0.0 to 1.0)

Return only valid JSON.`, raw)

	content, err := c.complete(ctx, termsSystemPrompt, prompt, 256)
	if err != nil {
		return domain.PaymentTerms{}, err
	}

	var result termsResult
	if err := json.Unmarshal(extractJSON(content), &result); err != nil {
		return domain.PaymentTerms{}, fmt.Errorf("parse terms response: %w", err)
	}

	terms := domain.PaymentTerms{
		PaymentType: "net_term",
		NetDays:     domain.DefaultNetDays,
		Confidence:  domain.AssistedParseConfidence,
	}
	if result.PaymentType != nil {
		terms.PaymentType = *result.PaymentType
	}
	if result.DiscountRate != nil {
		terms.DiscountRate = *result.DiscountRate
	}
	if result.DiscountDays != nil {
		terms.DiscountDays = *result.DiscountDays
	}
	if result.NetDays != nil {
		terms.NetDays = *result.NetDays
	}
	if result.LateFeeRate != nil {
		terms.LateFeeRate = *result.LateFeeRate
	}
	if result.Confidence != nil {
		terms.Confidence = *result.Confidence
	}
	return terms, nil
}

const analysisSystemPrompt = "You are a financial analyst specializing in vendor payment optimization " +
	"and relationship management. Provide detailed, actionable insights in JSON format."

// Analyze asks the model for the full vendor narrative.
func (c *Client) Analyze(ctx context.Context, vc domain.VendorContext, mode string) (domain.VendorInsight, error) {
	content, err := c.complete(ctx, analysisSystemPrompt, analysisPrompt(vc, mode), 1024)
	if err != nil {
		return domain.VendorInsight{}, err
	}
	var insight domain.VendorInsight
	if err := json.Unmarshal(extractJSON(content), &insight); err != nil {
		return domain.VendorInsight{}, fmt.Errorf("parse analysis response: %w", err)
	}
	if insight.VendorClassification == "" || insight.PaymentPriority == "" {
		return domain.VendorInsight{}, fmt.Errorf("analysis response missing classification fields")
	}
	return insight, nil
}

func analysisPrompt(vc domain.VendorContext, mode string) string {
	onTimeRate := 0.0
	if vc.Vendor.History.TotalInvoices > 0 {
		onTimeRate = float64(vc.Vendor.History.PaidOnTime) / float64(vc.Vendor.History.TotalInvoices) * 100
	}
	return fmt.Sprintf(`Analyze this vendor using comprehensive business intelligence:

VENDOR PROFILE:
- Company: %s
- Industry: %s
- Strategic Classification: %s

RELATIONSHIP INTELLIGENCE:
- Partnership Duration: %.0f years
- Annual Contract Value: $%.0f
- Our Payment Reliability: %.1f%% on-time payment rate

PERFORMANCE METRICS:
- VRS Score: %.1f/100
- On-Time Delivery: %.1f%%
- Communication Quality: %.1f/100

MARKET INTELLIGENCE:
- Market Position: %s with %.1f%% market share
- Competitive Landscape: %d major competitors

BUSINESS VALUE ANALYSIS:
- Calculated Business Value: $%.0f
- Strategic Impact: %.1fx multiplier
- Relationship Value: %.1fx multiplier
- Risk Assessment: %.1fx multiplier

OPTIMIZATION MODE: %s

Respond with JSON containing vendor_classification
(strategic_partner|key_supplier|standard_vendor|commodity_supplier),
payment_priority (immediate|high|medium|low), negotiation_strategy
{approach, success_probability, key_leverage_points, negotiation_goals,
draft_email}, relationship_insights {strengths, improvement_areas,
relationship_trajectory, strategic_value}, risk_assessment {overall_risk,
financial_risk, operational_risk, relationship_risk}, and
optimization_recommendations.`,
		vc.Vendor.DisplayName,
		vc.Vendor.Industry,
		vc.Vendor.BusinessImpact,
		vc.Vendor.YearsAsVendor,
		vc.Vendor.AnnualContractValue,
		onTimeRate,
		vc.Relationship.FinalVRS,
		vc.Relationship.ReliabilityScore,
		vc.Relationship.CommunicationScore,
		vc.Vendor.Market.Position,
		vc.Vendor.Market.Share*100,
		vc.Vendor.Market.CompetitorCount,
		vc.Value.FinalBusinessValue,
		vc.Value.BusinessImpactMultiplier,
		vc.Value.RelationshipMultiplier,
		vc.Value.RiskMultiplier,
		mode,
	)
}

// extractJSON strips markdown fences and isolates the outermost JSON object
// from a model response.
func extractJSON(content string) []byte {
	raw := []byte(content)
	start := bytes.IndexByte(raw, '{')
	end := bytes.LastIndexByte(raw, '}')
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
