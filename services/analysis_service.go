package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/dediosardie/dns-maynilad-vmms/config"
	"github.com/dediosardie/dns-maynilad-vmms/models"
)

// ErrAnalysisNotConfigured is returned when no API credential is set. The
// caller must surface this to the user rather than swallow it.
var ErrAnalysisNotConfigured = errors.New("AI analysis is not configured: missing API key")

// FuelEfficiencyAnalysis is the structured verdict produced by the model.
type FuelEfficiencyAnalysis struct {
	Summary         string   `json:"summary"`
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
	CostTrends      string   `json:"costTrends"`
	EfficiencyScore int      `json:"efficiencyScore"`
	Anomalies       []string `json:"anomalies"`
}

// AnalysisService asks a chat-completion model to analyze fleet fuel usage.
type AnalysisService struct {
	client *openai.Client
	model  string
}

func NewAnalysisService(cfg *config.Config) *AnalysisService {
	s := &AnalysisService{model: cfg.OpenAIModel}
	if cfg.OpenAIKey == "" {
		return s
	}

	clientConfig := openai.DefaultConfig(cfg.OpenAIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}
	s.client = openai.NewClientWithConfig(clientConfig)
	return s
}

func (s *AnalysisService) IsConfigured() bool {
	return s.client != nil
}

// AnalyzeFuelEfficiency summarizes the transaction log, sends it with an
// analysis prompt, and decodes the JSON verdict.
func (s *AnalysisService) AnalyzeFuelEfficiency(ctx context.Context, transactions []models.FuelTransaction, vehicles []models.Vehicle, drivers []models.Driver) (*FuelEfficiencyAnalysis, error) {
	if !s.IsConfigured() {
		return nil, ErrAnalysisNotConfigured
	}

	dataSummary := prepareFuelDataSummary(transactions, vehicles, drivers)

	prompt := fmt.Sprintf(`You are a fleet management AI analyst. Analyze the following fuel transaction data and provide insights:

%s

Please provide a comprehensive analysis in the following JSON format:
{
  "summary": "Brief overview of fuel usage patterns (2-3 sentences)",
  "insights": ["Key insight 1", "Key insight 2", "Key insight 3"],
  "recommendations": ["Actionable recommendation 1", "Actionable recommendation 2", "Actionable recommendation 3"],
  "costTrends": "Analysis of cost trends and patterns",
  "efficiencyScore": 75,
  "anomalies": ["Any unusual patterns or outliers detected"]
}

The efficiencyScore is a number from 0-100 based on efficiency.

Focus on:
1. Cost efficiency and trends
2. Fuel consumption patterns
3. Vehicle-specific insights
4. Driver behavior patterns (if applicable)
5. Potential cost savings opportunities
6. Unusual patterns or anomalies

Provide actionable, data-driven recommendations.`, dataSummary)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an expert fleet management analyst specializing in fuel efficiency optimization. Provide clear, actionable insights based on data analysis.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.7,
		MaxTokens:   2000,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("AI analysis failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("AI analysis failed: empty response")
	}

	var analysis FuelEfficiencyAnalysis
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &analysis); err != nil {
		return nil, fmt.Errorf("AI analysis returned malformed JSON: %w", err)
	}
	return &analysis, nil
}

// prepareFuelDataSummary condenses the transaction log into the plain-text
// overview sent to the model.
func prepareFuelDataSummary(transactions []models.FuelTransaction, vehicles []models.Vehicle, drivers []models.Driver) string {
	var totalLiters, totalCost float64
	for _, t := range transactions {
		totalLiters += t.Liters
		totalCost += t.Cost
	}
	avgCostPerLiter := 0.0
	if totalLiters > 0 {
		avgCostPerLiter = totalCost / totalLiters
	}

	var b strings.Builder
	fmt.Fprintf(&b, "FLEET FUEL CONSUMPTION OVERVIEW:\n")
	fmt.Fprintf(&b, "- Total Transactions: %d\n", len(transactions))
	fmt.Fprintf(&b, "- Total Fuel Consumed: %.2f liters\n", totalLiters)
	fmt.Fprintf(&b, "- Total Cost: %.2f\n", totalCost)
	fmt.Fprintf(&b, "- Average Cost Per Liter: %.2f\n", avgCostPerLiter)

	b.WriteString("\nPER-VEHICLE STATISTICS:\n")
	for _, v := range vehicles {
		var liters, cost float64
		count := 0
		for _, t := range transactions {
			if t.VehicleID == v.ID {
				liters += t.Liters
				cost += t.Cost
				count++
			}
		}
		if count == 0 {
			continue
		}
		perLiter := 0.0
		if liters > 0 {
			perLiter = cost / liters
		}
		fmt.Fprintf(&b, "- %s %s (%s): %d transactions, %.2f liters, cost %.2f, avg %.2f/liter\n",
			v.Make, v.Model, v.PlateNumber, count, liters, cost, perLiter)
	}

	b.WriteString("\nPER-DRIVER STATISTICS:\n")
	for _, d := range drivers {
		var liters, cost float64
		count := 0
		for _, t := range transactions {
			if t.DriverID == d.ID {
				liters += t.Liters
				cost += t.Cost
				count++
			}
		}
		if count == 0 {
			continue
		}
		fmt.Fprintf(&b, "- %s: %d transactions, %.2f liters, cost %.2f\n",
			d.FullName, count, liters, cost)
	}

	return b.String()
}
