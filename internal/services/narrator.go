package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jwebster45206/adventure-engine/pkg/crafting"
	"github.com/jwebster45206/adventure-engine/pkg/locale"
	"github.com/jwebster45206/adventure-engine/pkg/state"
)

// ErrQuotaExceeded marks a narrator failure caused by rate limiting or an
// exhausted quota. Callers match with errors.Is instead of scraping
// backend message strings.
var ErrQuotaExceeded = errors.New("narrator quota exceeded")

// StoryResponse is the narrator's full answer for one turn: the next story
// segment and the proposed game state delta.
type StoryResponse struct {
	Story     state.StorySegment  `json:"story"`
	GameState state.NarratorDelta `json:"game_state"`
}

// Narrator is the generative backend contract. Any implementation with
// these semantics is substitutable:
//
//   - GenerateNextStep may fail; quota failures satisfy
//     errors.Is(err, ErrQuotaExceeded).
//   - GenerateImage may fail independently of the story call.
//   - GenerateCraftingResult never fails: on any internal error the
//     backend synthesizes a localized failure result instead.
type Narrator interface {
	GenerateNextStep(ctx context.Context, previousStory, choice string, gs *state.GameState, lang locale.Language) (*StoryResponse, error)
	GenerateImage(ctx context.Context, visualPrompt string) ([]byte, error)
	GenerateCraftingResult(ctx context.Context, selected []string, inventory []string, lang locale.Language) *crafting.Result
}

// ImageGenerator produces an image for a visual prompt. Image generation
// is a separate backend from text generation, so narrators compose one in.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, visualPrompt string) ([]byte, error)
}

// quotaMarkers are the substrings backends emit for rate-limit failures.
var quotaMarkers = []string{"429", "RESOURCE_EXHAUSTED", "QUOTA_EXCEEDED", "quota"}

// classifyError wraps rate-limit failures with ErrQuotaExceeded so the
// engine can branch on a structured error kind.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	for _, marker := range quotaMarkers {
		if strings.Contains(msg, marker) {
			return errors.Join(ErrQuotaExceeded, err)
		}
	}
	return err
}

// fallbackCraftingResult is the synthesized ruling when the crafting
// backend errors: the attempt fails and the selected items are consumed,
// with a localized flavor message.
func fallbackCraftingResult(selected []string, lang locale.Language) *crafting.Result {
	return &crafting.Result{
		Success:       false,
		NewItemName:   "",
		ConsumedItems: append([]string(nil), selected...),
		Message:       locale.TextFor(lang).CraftingFallback,
	}
}
