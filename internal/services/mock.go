package services

import (
	"context"
	"sync"

	"github.com/jwebster45206/adventure-engine/pkg/crafting"
	"github.com/jwebster45206/adventure-engine/pkg/locale"
	"github.com/jwebster45206/adventure-engine/pkg/state"
)

// MockNarrator is a mock implementation of Narrator for testing
type MockNarrator struct {
	GenerateNextStepFunc       func(ctx context.Context, previousStory, choice string, gs *state.GameState, lang locale.Language) (*StoryResponse, error)
	GenerateImageFunc          func(ctx context.Context, visualPrompt string) ([]byte, error)
	GenerateCraftingResultFunc func(ctx context.Context, selected []string, inventory []string, lang locale.Language) *crafting.Result

	// Track calls for testing
	NextStepCalls []NextStepCall
	ImageCalls    []string
	CraftingCalls []CraftingCall

	mu sync.Mutex // protects all fields above
}

type NextStepCall struct {
	PreviousStory string
	Choice        string
	Language      locale.Language
}

type CraftingCall struct {
	Selected  []string
	Inventory []string
}

var _ Narrator = (*MockNarrator)(nil)

// NewMockNarrator creates a new mock narrator
func NewMockNarrator() *MockNarrator {
	return &MockNarrator{
		NextStepCalls: make([]NextStepCall, 0),
		ImageCalls:    make([]string, 0),
		CraftingCalls: make([]CraftingCall, 0),
	}
}

// GenerateNextStep mocks story generation
func (m *MockNarrator) GenerateNextStep(ctx context.Context, previousStory, choice string, gs *state.GameState, lang locale.Language) (*StoryResponse, error) {
	m.mu.Lock()
	m.NextStepCalls = append(m.NextStepCalls, NextStepCall{
		PreviousStory: previousStory,
		Choice:        choice,
		Language:      lang,
	})
	fn := m.GenerateNextStepFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, previousStory, choice, gs, lang)
	}

	// Default behavior - a minimal valid turn that leaves progression as-is
	return &StoryResponse{
		Story: state.StorySegment{
			StoryText:         "The path ahead narrows into mist.",
			Choices:           []string{"Press on", "Turn back", "Listen"},
			VisualDescription: "A narrow misty forest path at dusk",
		},
		GameState: state.NarratorDelta{
			Level:         gs.Level,
			XP:            gs.XP,
			XPToNextLevel: gs.XPToNextLevel,
			Rebirths:      gs.Rebirths,
			Skills:        append([]state.Skill(nil), gs.Skills...),
			Inventory:     append([]string(nil), gs.Inventory...),
			CurrentQuest:  gs.CurrentQuest,
			Stats:         append([]state.StatItem(nil), gs.Stats...),
		},
	}, nil
}

// GenerateImage mocks image generation
func (m *MockNarrator) GenerateImage(ctx context.Context, visualPrompt string) ([]byte, error) {
	m.mu.Lock()
	m.ImageCalls = append(m.ImageCalls, visualPrompt)
	fn := m.GenerateImageFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, visualPrompt)
	}
	return []byte("mock-image"), nil
}

// GenerateCraftingResult mocks crafting rulings
func (m *MockNarrator) GenerateCraftingResult(ctx context.Context, selected []string, inventory []string, lang locale.Language) *crafting.Result {
	m.mu.Lock()
	m.CraftingCalls = append(m.CraftingCalls, CraftingCall{
		Selected:  append([]string(nil), selected...),
		Inventory: append([]string(nil), inventory...),
	})
	fn := m.GenerateCraftingResultFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, selected, inventory, lang)
	}
	return fallbackCraftingResult(selected, lang)
}

// NextStepCallCount returns how many story generations were requested.
func (m *MockNarrator) NextStepCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.NextStepCalls)
}

// ImageCallCount returns how many image generations were requested.
func (m *MockNarrator) ImageCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ImageCalls)
}

// CraftingCallCount returns how many crafting rulings were requested.
func (m *MockNarrator) CraftingCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.CraftingCalls)
}
