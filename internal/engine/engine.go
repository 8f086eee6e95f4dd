// Package engine orchestrates the adventure: it drives the narrator,
// enforces the progression rules, owns the lore ledger and the save slot,
// and publishes notifications for the UI.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jwebster45206/adventure-engine/internal/services"
	"github.com/jwebster45206/adventure-engine/internal/storage"
	"github.com/jwebster45206/adventure-engine/pkg/archetype"
	"github.com/jwebster45206/adventure-engine/pkg/crafting"
	"github.com/jwebster45206/adventure-engine/pkg/locale"
	"github.com/jwebster45206/adventure-engine/pkg/lore"
	"github.com/jwebster45206/adventure-engine/pkg/state"
)

const (
	// DefaultAutosaveInterval is the periodic autosave cadence.
	DefaultAutosaveInterval = 60 * time.Second

	// transientDuration is how long toasts and the crafting result stay
	// visible before auto-dismissing.
	transientDuration = 4 * time.Second

	// minCraftingItems is the smallest crafting selection the engine
	// accepts.
	minCraftingItems = 2
)

// NotificationType tags engine notifications for the UI.
type NotificationType string

const (
	NoteUpdate         NotificationType = "update"
	NoteLoreDiscovered NotificationType = "lore_discovered"
	NoteSaved          NotificationType = "saved"
	NoteError          NotificationType = "error"
	NoteCrafting       NotificationType = "crafting"
)

// Notification is a UI refresh hint. State is read back through the
// engine's accessors, so the message is advisory.
type Notification struct {
	Type    NotificationType
	Message string
}

// Config holds engine behavior toggles.
type Config struct {
	// ImagesEnabled controls scene image generation. When false the
	// engine never calls the image backend and drops images from loaded
	// saves.
	ImagesEnabled bool

	// AutosaveInterval overrides the periodic autosave cadence.
	// Zero means DefaultAutosaveInterval.
	AutosaveInterval time.Duration
}

// Engine is the single-player adventure orchestrator. All state access
// goes through the mutex; turn generation and crafting are single-flight.
type Engine struct {
	narrator services.Narrator
	store    storage.SnapshotStore
	logger   *slog.Logger
	cfg      Config

	mu             sync.Mutex
	lang           locale.Language
	hasStarted     bool
	isLoading      bool
	loadingMessage string
	userError      string
	story          *state.StorySegment
	gs             *state.GameState
	image          []byte

	isCrafting     bool
	craftingResult *crafting.Result
	craftingTimer  *time.Timer
	toast          string
	toastTimer     *time.Timer

	notes    chan Notification
	stopOnce sync.Once
	stop     chan struct{}
}

// New creates an engine and starts its autosave loop.
func New(narrator services.Narrator, store storage.SnapshotStore, logger *slog.Logger, cfg Config) *Engine {
	if cfg.AutosaveInterval <= 0 {
		cfg.AutosaveInterval = DefaultAutosaveInterval
	}
	e := &Engine{
		narrator: narrator,
		store:    store,
		logger:   logger,
		cfg:      cfg,
		lang:     locale.Thai,
		notes:    make(chan Notification, 16),
		stop:     make(chan struct{}),
	}
	go e.autosaveLoop()
	return e
}

// Close stops the autosave loop and pending transient timers.
func (e *Engine) Close() {
	e.stopOnce.Do(func() { close(e.stop) })

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.toastTimer != nil {
		e.toastTimer.Stop()
	}
	if e.craftingTimer != nil {
		e.craftingTimer.Stop()
	}
}

// Notifications is the UI refresh channel. Sends never block; a slow
// consumer just misses redundant hints.
func (e *Engine) Notifications() <-chan Notification {
	return e.notes
}

func (e *Engine) notify(t NotificationType, msg string) {
	select {
	case e.notes <- Notification{Type: t, Message: msg}:
	default:
	}
}

// SetLanguage selects the narration language. It is only honored before
// the adventure starts; mid-run switches would desync narrated state.
func (e *Engine) SetLanguage(lang locale.Language) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.hasStarted {
		return
	}
	e.lang = lang
}

// Language returns the active narration language.
func (e *Engine) Language() locale.Language {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lang
}

// HasStarted reports whether an adventure is in progress.
func (e *Engine) HasStarted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hasStarted
}

// IsLoading reports whether a turn is being generated.
func (e *Engine) IsLoading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isLoading
}

// LoadingMessage returns the localized progress message for the active
// generation, or empty.
func (e *Engine) LoadingMessage() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadingMessage
}

// UserError returns the localized error to show the player, or empty.
func (e *Engine) UserError() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.userError
}

// ClearError dismisses the player-facing error.
func (e *Engine) ClearError() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.userError = ""
}

// Story returns a copy of the current story segment, or nil before the
// first turn.
func (e *Engine) Story() *state.StorySegment {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.story == nil {
		return nil
	}
	s := *e.story
	s.Choices = append([]string(nil), e.story.Choices...)
	return &s
}

// GameState returns a deep copy of the current game state, or nil before
// the adventure starts.
func (e *Engine) GameState() *state.GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gs == nil {
		return nil
	}
	copied, err := e.gs.DeepCopy()
	if err != nil {
		e.logger.Error("Failed to copy game state", "error", err)
		return nil
	}
	return copied
}

// Image returns the current scene image bytes, or nil.
func (e *Engine) Image() []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]byte(nil), e.image...)
}

// Toast returns the transient notice (lore discovery, soft warning), or
// empty once dismissed.
func (e *Engine) Toast() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.toast
}

// CraftingResult returns the pending crafting result modal content, or
// nil once dismissed.
func (e *Engine) CraftingResult() *crafting.Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.craftingResult
}

// IsCrafting reports whether a crafting ruling is in flight.
func (e *Engine) IsCrafting() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isCrafting
}

// DismissCraftingResult closes the crafting result early.
func (e *Engine) DismissCraftingResult() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.craftingTimer != nil {
		e.craftingTimer.Stop()
		e.craftingTimer = nil
	}
	e.craftingResult = nil
}

// HasSavedGame reports whether the save slot holds a game.
func (e *Engine) HasSavedGame(ctx context.Context) bool {
	snap, err := e.store.LoadSnapshot(ctx)
	if err != nil {
		e.logger.Warn("Failed to check save slot", "error", err)
		return false
	}
	return snap != nil && snap.GameState != nil && snap.StorySegment != nil
}

// StartAdventure creates a fresh game from the archetype and generates
// the opening turn. No-op when a game is already running or loading.
func (e *Engine) StartAdventure(ctx context.Context, characterName string, gender state.Gender, archetypeID string) error {
	e.mu.Lock()
	if e.hasStarted || e.isLoading {
		e.mu.Unlock()
		return nil
	}
	arch, ok := archetype.Get(archetypeID)
	if !ok {
		arch, _ = archetype.Get(archetype.DefaultID)
	}
	lang := e.lang
	gs := arch.NewGameState(characterName, gender, lang)
	text := locale.TextFor(lang)
	e.isLoading = true
	e.loadingMessage = text.LoadingWorld
	e.userError = ""
	e.mu.Unlock()

	err := e.runTurn(ctx, text.InitialStoryContext, text.InitialChoice, &gs, lang)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.hasStarted = true
	e.mu.Unlock()
	e.notify(NoteUpdate, "")
	return nil
}

// MakeChoice advances the story by one turn. No-op while another turn is
// loading or before the adventure starts.
func (e *Engine) MakeChoice(ctx context.Context, choice string) error {
	e.mu.Lock()
	if !e.hasStarted || e.isLoading || e.isCrafting {
		e.mu.Unlock()
		return nil
	}
	lang := e.lang
	text := locale.TextFor(lang)
	previousStory := ""
	if e.story != nil {
		previousStory = e.story.StoryText
	}
	gs, err := e.gs.DeepCopy()
	if err != nil {
		e.mu.Unlock()
		return fmt.Errorf("failed to copy game state: %w", err)
	}
	e.isLoading = true
	e.loadingMessage = text.LoadingWeaving
	e.userError = ""
	e.mu.Unlock()

	return e.runTurn(ctx, previousStory, choice, gs, lang)
}

// runTurn generates one story step, validates and applies it, then
// autosaves. The caller has already set isLoading.
func (e *Engine) runTurn(ctx context.Context, previousStory, choice string, gs *state.GameState, lang locale.Language) error {
	text := locale.TextFor(lang)

	resp, err := e.narrator.GenerateNextStep(ctx, previousStory, choice, gs, lang)
	if err != nil {
		e.failTurn(err, text)
		return err
	}
	if err := state.ValidateStory(&resp.Story); err != nil {
		e.logger.Error("Narrator returned invalid story", "error", err)
		e.failTurn(err, text)
		return err
	}
	if err := resp.GameState.Validate(); err != nil {
		e.logger.Error("Narrator returned invalid state delta", "error", err)
		e.failTurn(err, text)
		return err
	}

	next := state.ApplyProgression(*gs, resp.GameState)
	merged, added := lore.Merge(gs.Lorebook, resp.GameState.Lorebook)
	next.Lorebook = merged

	// Image failures never fail the turn. The previous scene image stays
	// up and the player gets a transient warning.
	var img []byte
	imageFailed := false
	if e.cfg.ImagesEnabled && resp.Story.VisualDescription != "" {
		e.setLoadingMessage(text.LoadingPainting)
		img, err = e.narrator.GenerateImage(ctx, resp.Story.VisualDescription)
		if err != nil {
			e.logger.Warn("Image generation failed, keeping previous image", "error", err)
			imageFailed = true
		}
	}

	e.mu.Lock()
	story := resp.Story
	e.story = &story
	e.gs = &next
	if img != nil {
		e.image = img
	}
	if len(added) > 0 {
		e.setToastLocked(fmt.Sprintf(text.LoreDiscovered, added[0].Title))
	} else if imageFailed {
		e.setToastLocked(text.ErrImage)
	}
	e.isLoading = false
	e.loadingMessage = ""
	e.mu.Unlock()

	if len(added) > 0 {
		e.notify(NoteLoreDiscovered, added[0].Title)
	}
	if imageFailed {
		e.notify(NoteError, text.ErrImage)
	}
	e.notify(NoteUpdate, "")

	e.autosave(ctx)
	return nil
}

// failTurn records a player-facing error for a failed generation.
func (e *Engine) failTurn(err error, text locale.Text) {
	msg := text.ErrGeneric
	if errors.Is(err, services.ErrQuotaExceeded) {
		msg = text.ErrQuota
	}

	e.mu.Lock()
	e.isLoading = false
	e.loadingMessage = ""
	e.userError = msg
	e.mu.Unlock()

	e.notify(NoteError, msg)
}

func (e *Engine) setLoadingMessage(msg string) {
	e.mu.Lock()
	e.loadingMessage = msg
	e.mu.Unlock()
}

// setToastLocked shows a transient notice and arms its auto-dismiss,
// superseding any pending one. Caller holds the mutex.
func (e *Engine) setToastLocked(msg string) {
	e.toast = msg
	if e.toastTimer != nil {
		e.toastTimer.Stop()
	}
	e.toastTimer = time.AfterFunc(transientDuration, func() {
		e.mu.Lock()
		e.toast = ""
		e.mu.Unlock()
		e.notify(NoteUpdate, "")
	})
}

// AttemptCrafting asks the narrator to rule a crafting attempt and
// applies the ruling to the inventory. The selection must contain at
// least two items. Crafting is single-flight and blocked during turns.
func (e *Engine) AttemptCrafting(ctx context.Context, selected []string) error {
	if len(selected) < minCraftingItems {
		return fmt.Errorf("crafting requires at least %d items", minCraftingItems)
	}

	e.mu.Lock()
	if !e.hasStarted || e.isLoading || e.isCrafting {
		e.mu.Unlock()
		return nil
	}
	lang := e.lang
	inventory := append([]string(nil), e.gs.Inventory...)
	e.isCrafting = true
	e.loadingMessage = locale.TextFor(lang).LoadingCrafting
	e.mu.Unlock()

	result := e.narrator.GenerateCraftingResult(ctx, selected, inventory, lang)

	e.mu.Lock()
	e.gs.Inventory = crafting.Apply(e.gs.Inventory, *result)
	e.craftingResult = result
	if e.craftingTimer != nil {
		e.craftingTimer.Stop()
	}
	e.craftingTimer = time.AfterFunc(transientDuration, func() {
		e.DismissCraftingResult()
		e.notify(NoteUpdate, "")
	})
	e.isCrafting = false
	e.loadingMessage = ""
	e.mu.Unlock()

	e.notify(NoteCrafting, result.Message)
	e.autosave(ctx)
	return nil
}

// LoadSavedGame restores the save slot. Returns false when no save
// exists. The loaded language replaces the engine's language.
func (e *Engine) LoadSavedGame(ctx context.Context) (bool, error) {
	e.mu.Lock()
	if e.hasStarted || e.isLoading {
		e.mu.Unlock()
		return false, nil
	}
	e.isLoading = true
	e.loadingMessage = locale.TextFor(e.lang).LoadingWorld
	e.mu.Unlock()

	snap, err := e.store.LoadSnapshot(ctx)
	if err != nil {
		e.mu.Lock()
		e.isLoading = false
		e.loadingMessage = ""
		e.userError = locale.TextFor(e.lang).ErrGeneric
		e.mu.Unlock()
		e.notify(NoteError, "")
		return false, err
	}
	if snap == nil || snap.GameState == nil || snap.StorySegment == nil {
		e.mu.Lock()
		e.isLoading = false
		e.loadingMessage = ""
		e.mu.Unlock()
		return false, nil
	}

	e.mu.Lock()
	e.lang = locale.Parse(string(snap.Language))
	e.story = snap.StorySegment
	e.gs = snap.GameState
	if e.cfg.ImagesEnabled {
		e.image = snap.Image
	} else {
		e.image = nil
	}
	e.hasStarted = true
	e.isLoading = false
	e.loadingMessage = ""
	e.mu.Unlock()

	e.notify(NoteUpdate, "")
	return true, nil
}

// Save writes the current game to the save slot. It is a no-op until a
// full turn exists. When images are enabled a snapshot without a scene
// image is considered incomplete and skipped.
func (e *Engine) Save(ctx context.Context) error {
	e.mu.Lock()
	if e.story == nil || e.gs == nil {
		e.mu.Unlock()
		return nil
	}
	if e.cfg.ImagesEnabled && len(e.image) == 0 {
		e.mu.Unlock()
		return nil
	}
	gs, err := e.gs.DeepCopy()
	if err != nil {
		e.mu.Unlock()
		return fmt.Errorf("failed to copy game state: %w", err)
	}
	story := *e.story
	story.Choices = append([]string(nil), e.story.Choices...)
	snap := &state.SavedSnapshot{
		StorySegment: &story,
		GameState:    gs,
		Image:        append([]byte(nil), e.image...),
		Language:     e.lang,
	}
	lang := e.lang
	e.mu.Unlock()

	if err := e.store.SaveSnapshot(ctx, snap); err != nil {
		e.logger.Error("Failed to save game", "error", err)
		return err
	}

	e.notify(NoteSaved, locale.TextFor(lang).SavedMessage)
	return nil
}

// autosave is the post-action save. Failures are logged, not surfaced;
// the next action or tick retries.
func (e *Engine) autosave(ctx context.Context) {
	if err := e.Save(ctx); err != nil {
		e.logger.Warn("Autosave failed", "error", err)
	}
}

// autosaveLoop periodically saves a quiet, healthy game.
func (e *Engine) autosaveLoop() {
	ticker := time.NewTicker(e.cfg.AutosaveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stop:
			return
		case <-ticker.C:
			e.mu.Lock()
			ok := e.hasStarted && !e.isLoading && !e.isCrafting && e.userError == ""
			e.mu.Unlock()
			if ok {
				e.autosave(context.Background())
			}
		}
	}
}
