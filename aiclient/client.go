package aiclient

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"vita-server/logger"

	"google.golang.org/genai"
)

// ErrUnavailable is the single error every AI failure collapses to. The
// underlying cause is logged, never surfaced to the user.
var ErrUnavailable = errors.New("ai service unavailable")

const defaultModel = "gemini-2.5-flash"

// Client wraps the Gemini API for the food/activity/coaching analyses.
type Client struct {
	genai *genai.Client
	model string
	log   *logger.Logger
}

func New(ctx context.Context, apiKey, model string, log *logger.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if model == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	return &Client{genai: client, model: model, log: log}, nil
}

// ImageHash returns the hex SHA-256 of image bytes, used by the
// duplicate-submission guard.
func ImageHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NutrientEstimate is the structured result of a food analysis.
type NutrientEstimate struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	Serving  string  `json:"serving"`
}

// ActivityExtraction is the structured result of a free-text activity log.
type ActivityExtraction struct {
	Activity       string  `json:"activity"`
	DurationMin    float64 `json:"duration_min"`
	CaloriesBurned float64 `json:"calories_burned"`
}

// PlannedMeal is one meal in a generated plan.
type PlannedMeal struct {
	Meal     string  `json:"meal"` // breakfast, lunch, dinner, snack
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
}

var nutrientSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name":      {Type: genai.TypeString},
		"calories":  {Type: genai.TypeNumber},
		"protein_g": {Type: genai.TypeNumber},
		"carbs_g":   {Type: genai.TypeNumber},
		"fat_g":     {Type: genai.TypeNumber},
		"serving":   {Type: genai.TypeString},
	},
	Required: []string{"name", "calories"},
}

var activitySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"activity":        {Type: genai.TypeString},
		"duration_min":    {Type: genai.TypeNumber},
		"calories_burned": {Type: genai.TypeNumber},
	},
	Required: []string{"activity", "calories_burned"},
}

var mealPlanSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"meal":     {Type: genai.TypeString},
			"name":     {Type: genai.TypeString},
			"calories": {Type: genai.TypeNumber},
		},
		Required: []string{"meal", "name", "calories"},
	},
}

const foodSystemPrompt = "You are a nutritionist. Estimate the nutrients of the meal. " +
	"Answer with realistic values for a single serving as eaten in Thailand."

// AnalyzeFoodImage estimates nutrients from a photo. customPrompt, when
// set, is the user's own system-instruction override.
func (c *Client) AnalyzeFoodImage(ctx context.Context, image []byte, mimeType, customPrompt string) (*NutrientEstimate, error) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(image, mimeType),
		genai.NewPartFromText("Identify this meal and estimate its nutrients."),
	}
	var out NutrientEstimate
	if err := c.generateJSON(ctx, systemOr(customPrompt, foodSystemPrompt), parts, nutrientSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyzeFoodText estimates nutrients from a free-text description.
func (c *Client) AnalyzeFoodText(ctx context.Context, description, customPrompt string) (*NutrientEstimate, error) {
	parts := []*genai.Part{genai.NewPartFromText("Meal description: " + description)}
	var out NutrientEstimate
	if err := c.generateJSON(ctx, systemOr(customPrompt, foodSystemPrompt), parts, nutrientSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExtractActivity parses a free-text exercise log into a structured record.
func (c *Client) ExtractActivity(ctx context.Context, description string) (*ActivityExtraction, error) {
	parts := []*genai.Part{genai.NewPartFromText("Exercise log: " + description)}
	system := "Extract the exercise activity, duration in minutes and estimated calories burned."
	var out ActivityExtraction
	if err := c.generateJSON(ctx, system, parts, activitySchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CoachingAdvice produces a short coaching message for a daily summary.
func (c *Client) CoachingAdvice(ctx context.Context, summary string) (string, error) {
	contents := []*genai.Content{genai.NewContentFromText(summary, genai.RoleUser)}
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(
			"You are an encouraging health coach. Reply in Thai, three sentences at most.", genai.RoleUser),
	})
	if err != nil {
		c.log.Warn("ai coaching call failed", "error", err)
		return "", ErrUnavailable
	}
	text := resp.Text()
	if text == "" {
		return "", ErrUnavailable
	}
	return text, nil
}

// MealPlan generates a one-day meal plan from a profile summary.
func (c *Client) MealPlan(ctx context.Context, profileSummary string, targetKcal float64) ([]PlannedMeal, error) {
	prompt := fmt.Sprintf("%s\nDaily calorie target: %.0f kcal.", profileSummary, targetKcal)
	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	system := "Plan one day of Thai meals for this user within the calorie target."
	var out []PlannedMeal
	if err := c.generateJSON(ctx, system, parts, mealPlanSchema, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) generateJSON(ctx context.Context, system string, parts []*genai.Part, schema *genai.Schema, out interface{}) error {
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    schema,
	})
	if err != nil {
		c.log.Warn("ai call failed", "error", err)
		return ErrUnavailable
	}
	text := resp.Text()
	if text == "" {
		c.log.Warn("ai call returned empty response")
		return ErrUnavailable
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		c.log.Warn("ai response did not match schema", "error", err)
		return ErrUnavailable
	}
	return nil
}

func systemOr(custom, fallback string) string {
	if custom != "" {
		return custom
	}
	return fallback
}
