package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jwebster45206/adventure-engine/pkg/crafting"
	"github.com/jwebster45206/adventure-engine/pkg/locale"
	"github.com/jwebster45206/adventure-engine/pkg/state"
)

const (
	DefaultGeminiModel = "gemini-2.5-flash"

	storyTemperature    float32 = 0.8
	craftingTemperature float32 = 0.7
)

// GeminiNarrator implements Narrator using Gemini structured JSON output
// for story and crafting generation. Image generation is delegated to a
// separate composed backend.
type GeminiNarrator struct {
	client    *genai.Client
	modelName string
	images    ImageGenerator
	logger    *slog.Logger
}

var _ Narrator = (*GeminiNarrator)(nil)

// NewGeminiNarrator creates a Gemini-backed narrator. images may be nil
// when image generation is disabled.
func NewGeminiNarrator(ctx context.Context, apiKey, modelName string, images ImageGenerator, logger *slog.Logger) (*GeminiNarrator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiNarrator{
		client:    client,
		modelName: modelName,
		images:    images,
		logger:    logger,
	}, nil
}

// Close releases the underlying client.
func (g *GeminiNarrator) Close() error {
	return g.client.Close()
}

// generateJSON runs one structured-output completion and returns the raw
// JSON text.
func (g *GeminiNarrator) generateJSON(ctx context.Context, prompt string, schema *genai.Schema, temperature float32) (string, error) {
	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(temperature)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = schema

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from gemini")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response part type from gemini")
	}
	return string(text), nil
}

// GenerateNextStep asks Gemini for the next story segment and state delta.
// Rate-limit failures are classified as ErrQuotaExceeded.
func (g *GeminiNarrator) GenerateNextStep(ctx context.Context, previousStory, choice string, gs *state.GameState, lang locale.Language) (*StoryResponse, error) {
	prompt := buildStoryPrompt(previousStory, choice, gs, lang)

	raw, err := g.generateJSON(ctx, prompt, storySchema(), storyTemperature)
	if err != nil {
		g.logger.Error("Story generation failed", "error", err)
		return nil, classifyError(err)
	}

	var resp StoryResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		g.logger.Error("Failed to parse story response", "error", err, "raw", raw)
		return nil, fmt.Errorf("failed to parse story response: %w", err)
	}
	return &resp, nil
}

// GenerateImage delegates to the composed image backend.
func (g *GeminiNarrator) GenerateImage(ctx context.Context, visualPrompt string) ([]byte, error) {
	if g.images == nil {
		return nil, fmt.Errorf("image generation is not configured")
	}
	return g.images.GenerateImage(ctx, visualPrompt)
}

// GenerateCraftingResult asks Gemini to rule a crafting attempt. The
// contract is total: any internal failure is converted into a localized
// failure result so crafting stays a lightweight flow.
func (g *GeminiNarrator) GenerateCraftingResult(ctx context.Context, selected []string, inventory []string, lang locale.Language) *crafting.Result {
	prompt := buildCraftingPrompt(selected, inventory, lang)

	raw, err := g.generateJSON(ctx, prompt, craftingSchema(), craftingTemperature)
	if err != nil {
		g.logger.Warn("Crafting generation failed, synthesizing fallback", "error", err)
		return fallbackCraftingResult(selected, lang)
	}

	var result crafting.Result
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		g.logger.Warn("Failed to parse crafting response, synthesizing fallback", "error", err, "raw", raw)
		return fallbackCraftingResult(selected, lang)
	}
	return &result
}

// statItemSchema is shared by player and companion stats.
func statItemSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":  {Type: genai.TypeString},
			"value": {Type: genai.TypeString},
		},
		Required: []string{"name", "value"},
	}
}

func skillSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":             {Type: genai.TypeString},
			"description":      {Type: genai.TypeString},
			"level":            {Type: genai.TypeInteger},
			"xp":               {Type: genai.TypeInteger},
			"xp_to_next_level": {Type: genai.TypeInteger},
		},
		Required: []string{"name", "description", "level", "xp", "xp_to_next_level"},
	}
}

// storySchema is the structured-output contract for one turn.
func storySchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"story": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"story_text": {
						Type:        genai.TypeString,
						Description: "The next paragraph of the story. Max 150 words.",
					},
					"choices": {
						Type:        genai.TypeArray,
						Items:       &genai.Schema{Type: genai.TypeString},
						Description: "An array of 3-4 possible actions for the player.",
					},
					"visual_description": {
						Type:        genai.TypeString,
						Description: "A concise, visually descriptive prompt for an image generator based on the story text. Always in English.",
					},
				},
				Required: []string{"story_text", "choices", "visual_description"},
			},
			"game_state": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"level":            {Type: genai.TypeInteger, Description: "Player's new current level."},
					"xp":               {Type: genai.TypeInteger, Description: "Player's new current XP."},
					"xp_to_next_level": {Type: genai.TypeInteger, Description: "XP needed for the player's next level."},
					"rebirths":         {Type: genai.TypeInteger, Description: "Number of times the player has rebirthed."},
					"skills": {
						Type:        genai.TypeArray,
						Items:       skillSchema(),
						Description: "Player's updated skills array.",
					},
					"inventory": {
						Type:        genai.TypeArray,
						Items:       &genai.Schema{Type: genai.TypeString},
						Description: "The player's updated inventory. Add or remove items logically.",
					},
					"current_quest": {
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"title": {Type: genai.TypeString, Description: "A brief title for the current quest."},
							"objectives": {
								Type:        genai.TypeArray,
								Items:       &genai.Schema{Type: genai.TypeString},
								Description: "A list of 1-3 concrete objectives for the current quest.",
							},
						},
						Required: []string{"title", "objectives"},
					},
					"stats": {
						Type:        genai.TypeArray,
						Items:       statItemSchema(),
						Description: "Character statistics. Only add, update, or remove stats if narratively relevant.",
					},
					"lorebook": {
						Type:        genai.TypeArray,
						Description: "NEWLY discovered lore only. Do NOT include lore the player already has.",
						Items: &genai.Schema{
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"title":        {Type: genai.TypeString, Description: "A short, captivating title for the lore entry."},
								"content":      {Type: genai.TypeString, Description: "The detailed content of the lore snippet."},
								"image_prompt": {Type: genai.TypeString, Description: "A concise English image prompt for this lore."},
								"rewards_gained": {
									Type:        genai.TypeArray,
									Items:       &genai.Schema{Type: genai.TypeString},
									Description: "If this lore granted items or skills, their names.",
								},
							},
							Required: []string{"title", "content"},
						},
					},
					"companion": {
						Type:        genai.TypeObject,
						Nullable:    true,
						Description: "The player's AI companion. Create one if null, update its state otherwise.",
						Properties: map[string]*genai.Schema{
							"name":        {Type: genai.TypeString},
							"description": {Type: genai.TypeString},
							"mood":        {Type: genai.TypeString},
							"stats": {
								Type:  genai.TypeArray,
								Items: statItemSchema(),
							},
						},
						Required: []string{"name", "description", "mood", "stats"},
					},
				},
				Required: []string{"level", "xp", "xp_to_next_level", "rebirths", "skills", "inventory", "current_quest", "stats", "lorebook"},
			},
		},
		Required: []string{"story", "game_state"},
	}
}

// craftingSchema is the structured-output contract for a crafting ruling.
func craftingSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"success":       {Type: genai.TypeBoolean, Description: "Was the crafting attempt successful?"},
			"new_item_name": {Type: genai.TypeString, Description: "Name of the created item. Empty string if unsuccessful."},
			"consumed_items": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "Items consumed in the attempt. Can include all or some of the selected items.",
			},
			"message": {Type: genai.TypeString, Description: "A description for the player about what happened."},
		},
		Required: []string{"success", "new_item_name", "consumed_items", "message"},
	}
}
