package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/adventure-engine/internal/engine"
	"github.com/jwebster45206/adventure-engine/pkg/archetype"
	"github.com/jwebster45206/adventure-engine/pkg/locale"
	"github.com/jwebster45206/adventure-engine/pkg/lore"
	"github.com/jwebster45206/adventure-engine/pkg/state"
)

// Setup flow steps before the adventure starts.
type startStep int

const (
	stepLanguage startStep = iota
	stepMenu
	stepName
	stepGender
	stepArchetype
	stepStarting
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	engine *engine.Engine

	storyViewport viewport.Model
	sideViewport  viewport.Model
	nameInput     textinput.Model
	searchInput   textinput.Model

	ready   bool
	width   int
	height  int
	loading bool

	// Setup flow state
	step           startStep
	hasSave        bool
	selectedLang   int
	selectedMenu   int
	selectedGender int
	selectedArch   int

	// Game state mirrors, refreshed from the engine
	lang  locale.Language
	story *state.StorySegment
	gs    *state.GameState

	selectedChoice int

	// Lorebook modal state
	showLorebook bool
	loreOrder    lore.SortOrder
	selectedLore int

	// Crafting modal state
	showCrafting  bool
	craftCursor   int
	craftSelected map[int]bool

	// Quit confirmation state
	showQuitModal bool

	toast string

	// Progress bar state
	progressTick int
}

type startedMsg struct{ err error }
type loadedMsg struct {
	ok  bool
	err error
}
type turnDoneMsg struct{ err error }
type craftDoneMsg struct{ err error }
type engineNoteMsg engine.Notification
type progressTickMsg struct{}

var (
	storyPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	sidePanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	storyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // light grey

	choiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	selectedChoiceStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("39")).
				Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	toastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("156")). // light green
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

func NewConsoleUI(eng *engine.Engine) ConsoleUI {
	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 40
	name.Width = 30

	search := textinput.New()
	search.CharLimit = 60
	search.Width = 30

	storyVp := viewport.New(50, 20)
	storyVp.MouseWheelEnabled = true
	sideVp := viewport.New(20, 20)

	return ConsoleUI{
		engine:        eng,
		nameInput:     name,
		searchInput:   search,
		storyViewport: storyVp,
		sideViewport:  sideVp,
		lang:          eng.Language(),
		hasSave:       eng.HasSavedGame(context.Background()),
		loreOrder:     lore.SortByDate,
		craftSelected: make(map[int]bool),
	}
}

func (m ConsoleUI) text() locale.Text {
	return locale.TextFor(m.lang)
}

func (m ConsoleUI) Init() tea.Cmd {
	return m.waitForNote()
}

// waitForNote blocks on the engine's notification channel and turns the
// next notification into a message.
func (m ConsoleUI) waitForNote() tea.Cmd {
	return func() tea.Msg {
		n, ok := <-m.engine.Notifications()
		if !ok {
			return nil
		}
		return engineNoteMsg(n)
	}
}

func (m ConsoleUI) startAdventure() tea.Cmd {
	name := strings.TrimSpace(m.nameInput.Value())
	gender := genderOptions()[m.selectedGender]
	arch := archetype.All()[m.selectedArch].ID
	return func() tea.Msg {
		err := m.engine.StartAdventure(context.Background(), name, gender, arch)
		return startedMsg{err}
	}
}

func (m ConsoleUI) loadSavedGame() tea.Cmd {
	return func() tea.Msg {
		ok, err := m.engine.LoadSavedGame(context.Background())
		return loadedMsg{ok, err}
	}
}

func (m ConsoleUI) makeChoice(choice string) tea.Cmd {
	return func() tea.Msg {
		err := m.engine.MakeChoice(context.Background(), choice)
		return turnDoneMsg{err}
	}
}

func (m ConsoleUI) attemptCrafting(items []string) tea.Cmd {
	return func() tea.Msg {
		err := m.engine.AttemptCrafting(context.Background(), items)
		return craftDoneMsg{err}
	}
}

func genderOptions() []state.Gender {
	return []state.Gender{
		state.GenderFemale,
		state.GenderMale,
		state.GenderOther,
		state.GenderUnspecified,
	}
}

// refresh pulls the UI's state mirror from the engine.
func (m *ConsoleUI) refresh() {
	m.story = m.engine.Story()
	m.gs = m.engine.GameState()
	m.lang = m.engine.Language()
	m.loading = m.engine.IsLoading() || m.engine.IsCrafting()
	if m.story != nil && m.selectedChoice >= len(m.story.Choices) {
		m.selectedChoice = 0
	}
	m.toast = m.engine.Toast()
	m.writeStoryContent()
	m.writeSidebar()
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		storyWidth := int(float64(m.width)*0.7) - 4
		sideWidth := m.width - storyWidth - 6
		m.storyViewport.Width = storyWidth - 2
		m.storyViewport.Height = m.height - 4
		m.sideViewport.Width = sideWidth - 2
		m.sideViewport.Height = m.height - 4
		m.ready = true
		m.refresh()
		return m, nil

	case engineNoteMsg:
		m.refresh()
		return m, m.waitForNote()

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeStoryContent()
			return m, progressTickCmd()
		}
		return m, nil

	case startedMsg, turnDoneMsg, craftDoneMsg:
		m.refresh()
		if m.step == stepStarting && !m.engine.HasStarted() {
			// Failed start; the error modal shows, then setup resumes.
			m.step = stepArchetype
		}
		return m, nil

	case loadedMsg:
		m.refresh()
		if !m.engine.HasStarted() {
			if msg.err != nil {
				m.step = stepMenu
			} else if !msg.ok {
				// Slot was empty after all; fall back to the new-game flow.
				m.step = stepName
				m.nameInput.Focus()
				return m, textinput.Blink
			}
		}
		return m, nil
	}

	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}
	if m.engine.UserError() != "" {
		return m.updateErrorModal(msg)
	}
	if !m.engine.HasStarted() {
		return m.updateStartFlow(msg)
	}
	if m.engine.CraftingResult() != nil {
		return m.updateCraftingResult(msg)
	}
	if m.showLorebook {
		return m.updateLorebook(msg)
	}
	if m.showCrafting {
		return m.updateCrafting(msg)
	}
	return m.updateGame(msg)
}

func (m ConsoleUI) updateStartFlow(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if keyMsg.Type == tea.KeyCtrlC || keyMsg.Type == tea.KeyEsc {
		m.showQuitModal = true
		return m, nil
	}

	switch m.step {
	case stepLanguage:
		switch keyMsg.Type {
		case tea.KeyUp, tea.KeyDown:
			m.selectedLang = 1 - m.selectedLang
		case tea.KeyEnter:
			if m.selectedLang == 0 {
				m.engine.SetLanguage(locale.Thai)
			} else {
				m.engine.SetLanguage(locale.English)
			}
			m.lang = m.engine.Language()
			if m.hasSave {
				m.step = stepMenu
			} else {
				m.step = stepName
				m.nameInput.Focus()
				return m, textinput.Blink
			}
		}

	case stepMenu:
		switch keyMsg.Type {
		case tea.KeyUp, tea.KeyDown:
			m.selectedMenu = 1 - m.selectedMenu
		case tea.KeyEnter:
			if m.selectedMenu == 1 {
				m.step = stepStarting
				return m, tea.Batch(m.loadSavedGame(), progressTickCmd())
			}
			m.step = stepName
			m.nameInput.Focus()
			return m, textinput.Blink
		}

	case stepName:
		if keyMsg.Type == tea.KeyEnter {
			if strings.TrimSpace(m.nameInput.Value()) == "" {
				return m, nil
			}
			m.nameInput.Blur()
			m.step = stepGender
			return m, nil
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd

	case stepGender:
		switch keyMsg.Type {
		case tea.KeyUp:
			if m.selectedGender > 0 {
				m.selectedGender--
			}
		case tea.KeyDown:
			if m.selectedGender < len(genderOptions())-1 {
				m.selectedGender++
			}
		case tea.KeyEnter:
			m.step = stepArchetype
		}

	case stepArchetype:
		switch keyMsg.Type {
		case tea.KeyUp:
			if m.selectedArch > 0 {
				m.selectedArch--
			}
		case tea.KeyDown:
			if m.selectedArch < len(archetype.All())-1 {
				m.selectedArch++
			}
		case tea.KeyEnter:
			m.step = stepStarting
			m.loading = true
			return m, tea.Batch(m.startAdventure(), progressTickCmd())
		}
	}

	return m, nil
}

func (m ConsoleUI) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	var vpCmd, svCmd tea.Cmd

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.storyViewport, vpCmd = m.storyViewport.Update(msg)
		m.sideViewport, svCmd = m.sideViewport.Update(msg)
		return m, tea.Batch(vpCmd, svCmd)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyUp:
			if !m.loading && m.selectedChoice > 0 {
				m.selectedChoice--
				m.writeStoryContent()
			}
			return m, nil
		case tea.KeyDown:
			if !m.loading && m.story != nil && m.selectedChoice < len(m.story.Choices)-1 {
				m.selectedChoice++
				m.writeStoryContent()
			}
			return m, nil
		case tea.KeyEnter:
			if m.loading || m.story == nil || len(m.story.Choices) == 0 {
				return m, nil
			}
			choice := m.story.Choices[m.selectedChoice]
			m.loading = true
			m.progressTick = 0
			m.writeStoryContent()
			return m, tea.Batch(m.makeChoice(choice), progressTickCmd())
		}

		switch msg.String() {
		case "l":
			m.showLorebook = true
			m.selectedLore = 0
			m.searchInput.SetValue("")
			m.searchInput.Focus()
			return m, textinput.Blink
		case "c":
			if !m.loading {
				m.showCrafting = true
				m.craftCursor = 0
				m.craftSelected = make(map[int]bool)
			}
			return m, nil
		case "y":
			if m.story != nil {
				_ = clipboard.WriteAll(m.story.StoryText)
			}
			return m, nil
		}
	}

	m.storyViewport, vpCmd = m.storyViewport.Update(msg)
	m.sideViewport, svCmd = m.sideViewport.Update(msg)
	return m, tea.Batch(vpCmd, svCmd)
}

func (m ConsoleUI) updateLorebook(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.showLorebook = false
		m.searchInput.Blur()
		return m, nil
	case tea.KeyUp:
		if m.selectedLore > 0 {
			m.selectedLore--
		}
		return m, nil
	case tea.KeyDown:
		if m.selectedLore < len(m.filteredLore())-1 {
			m.selectedLore++
		}
		return m, nil
	case tea.KeyTab:
		// Toggle sort order
		if m.loreOrder == lore.SortByDate {
			m.loreOrder = lore.SortByTitle
		} else {
			m.loreOrder = lore.SortByDate
		}
		m.selectedLore = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.selectedLore = 0
	return m, cmd
}

func (m ConsoleUI) filteredLore() []lore.Entry {
	if m.gs == nil {
		return nil
	}
	return lore.FilterAndSort(m.gs.Lorebook, m.searchInput.Value(), m.loreOrder, m.lang.Tag())
}

func (m ConsoleUI) updateCrafting(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	inventory := []string{}
	if m.gs != nil {
		inventory = m.gs.Inventory
	}

	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.showCrafting = false
		return m, nil
	case tea.KeyUp:
		if m.craftCursor > 0 {
			m.craftCursor--
		}
	case tea.KeyDown:
		if m.craftCursor < len(inventory)-1 {
			m.craftCursor++
		}
	case tea.KeySpace:
		m.craftSelected[m.craftCursor] = !m.craftSelected[m.craftCursor]
	case tea.KeyEnter:
		var items []string
		for i, on := range m.craftSelected {
			if on && i < len(inventory) {
				items = append(items, inventory[i])
			}
		}
		if len(items) < 2 {
			return m, nil
		}
		m.showCrafting = false
		m.loading = true
		m.progressTick = 0
		return m, tea.Batch(m.attemptCrafting(items), progressTickCmd())
	}

	return m, nil
}

func (m ConsoleUI) updateCraftingResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			m.engine.DismissCraftingResult()
			m.refresh()
		}
	}
	return m, nil
}

func (m ConsoleUI) updateErrorModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyCtrlC:
			m.showQuitModal = true
		case tea.KeyEnter, tea.KeyEsc:
			m.engine.ClearError()
			m.refresh()
		}
	}
	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch keyMsg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				return m, nil
			}
		}
	}
	return m, nil
}

// writeStoryContent builds the story panel for the current width.
func (m *ConsoleUI) writeStoryContent() {
	if !m.ready {
		return
	}
	text := m.text()
	storyWidth := m.storyViewport.Width - 6

	var content strings.Builder
	content.WriteString(titleStyle.Render(text.MainTitle) + "\n")
	content.WriteString(promptStyle.Render(text.MainSubtitle) + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", max(storyWidth-6, 10))) + "\n\n")

	if m.story == nil {
		content.WriteString(storyStyle.Render(wordwrap.String(text.WelcomeMessage, storyWidth)) + "\n\n")
	} else {
		content.WriteString(storyStyle.Render(wordwrap.String(m.story.StoryText, storyWidth)) + "\n\n")

		if m.loading {
			content.WriteString(loadingStyle.Render(m.engine.LoadingMessage()) + "\n")
			content.WriteString(m.renderProgressBar() + "\n")
		} else {
			for i, choice := range m.story.Choices {
				line := fmt.Sprintf("%d. %s", i+1, choice)
				if i == m.selectedChoice {
					content.WriteString(selectedChoiceStyle.Render("▶ "+line) + "\n")
				} else {
					content.WriteString(choiceStyle.Render("  "+line) + "\n")
				}
			}
		}
	}

	if m.toast != "" {
		content.WriteString("\n" + toastStyle.Render(m.toast) + "\n")
	}

	m.storyViewport.SetContent(content.String())
	m.storyViewport.GotoBottom()
}

// writeSidebar builds the character panel.
func (m *ConsoleUI) writeSidebar() {
	if !m.ready || m.gs == nil {
		m.sideViewport.SetContent("")
		return
	}
	text := m.text()
	var content strings.Builder

	content.WriteString(titleStyle.Render(m.gs.CharacterName) + "\n")
	content.WriteString(fmt.Sprintf("Lv %d  XP %d/%d", m.gs.Level, m.gs.XP, m.gs.XPToNextLevel))
	if m.gs.Rebirths > 0 {
		content.WriteString(fmt.Sprintf("  ✦%d", m.gs.Rebirths))
	}
	content.WriteString("\n\n")

	content.WriteString(sectionStyle.Render(text.QuestTitle) + "\n")
	content.WriteString(m.gs.CurrentQuest.Title + "\n")
	for _, obj := range m.gs.CurrentQuest.Objectives {
		content.WriteString("• " + obj + "\n")
	}
	content.WriteString("\n")

	content.WriteString(sectionStyle.Render(text.StatsTitle) + "\n")
	for _, s := range m.gs.Stats {
		content.WriteString(fmt.Sprintf("%s: %s\n", s.Name, s.Value))
	}
	content.WriteString("\n")

	content.WriteString(sectionStyle.Render(text.SkillsTitle) + "\n")
	for _, s := range m.gs.Skills {
		content.WriteString(fmt.Sprintf("%s Lv %d (%d/%d)\n", s.Name, s.Level, s.XP, s.XPToNextLevel))
	}
	content.WriteString("\n")

	content.WriteString(sectionStyle.Render(text.InventoryTitle) + "\n")
	if len(m.gs.Inventory) == 0 {
		content.WriteString(text.EmptyInventory + "\n")
	}
	for _, item := range m.gs.Inventory {
		content.WriteString("• " + item + "\n")
	}
	content.WriteString("\n")

	if m.gs.Companion != nil {
		content.WriteString(sectionStyle.Render(text.CompanionTitle) + "\n")
		content.WriteString(fmt.Sprintf("%s (%s)\n", m.gs.Companion.Name, m.gs.Companion.Mood))
		for _, s := range m.gs.Companion.Stats {
			content.WriteString(fmt.Sprintf("%s: %s\n", s.Name, s.Value))
		}
		content.WriteString("\n")
	}

	content.WriteString(sectionStyle.Render(text.LoreTitle) + "\n")
	content.WriteString(fmt.Sprintf("%d\n\n", len(m.gs.Lorebook)))

	content.WriteString(promptStyle.Render("↑/↓ + Enter: choose\nl: lorebook\nc: craft\ny: copy story\nEsc: quit"))

	m.sideViewport.SetContent(content.String())
}

func (m ConsoleUI) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if m.engine.UserError() != "" {
		return m.renderErrorModal()
	}
	if !m.engine.HasStarted() {
		return m.renderStartScreen()
	}
	if result := m.engine.CraftingResult(); result != nil {
		return m.renderCraftingResult()
	}
	if m.showLorebook {
		return m.renderLorebook()
	}
	if m.showCrafting {
		return m.renderCraftingModal()
	}

	storyWidth := int(float64(m.width)*0.7) - 4
	sideWidth := m.width - storyWidth - 6

	storyPanel := storyPanelStyle.Width(storyWidth).Height(m.height - 2).Render(m.storyViewport.View())
	sidePanel := sidePanelStyle.Width(sideWidth).Height(m.height - 2).Render(m.sideViewport.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, storyPanel, sidePanel)
}

func (m ConsoleUI) renderStartScreen() string {
	text := m.text()
	var content strings.Builder

	content.WriteString(modalTitleStyle.Render(text.MainTitle))
	content.WriteString("\n")
	content.WriteString(promptStyle.Render(text.MainSubtitle))
	content.WriteString("\n\n")

	renderList := func(options []string, selected int) {
		for i, opt := range options {
			if i == selected {
				content.WriteString(modalSelectedItemStyle.Render("▶ "+opt) + "\n")
			} else {
				content.WriteString(modalItemStyle.Render("  "+opt) + "\n")
			}
		}
	}

	switch m.step {
	case stepLanguage:
		content.WriteString("Language / ภาษา:\n\n")
		renderList([]string{"ไทย", "English"}, m.selectedLang)

	case stepMenu:
		renderList([]string{text.StartButton, text.ContinueButton}, m.selectedMenu)

	case stepName:
		content.WriteString(text.NamePrompt + "\n\n")
		content.WriteString(m.nameInput.View() + "\n")

	case stepGender:
		content.WriteString(text.GenderPrompt + "\n\n")
		options := make([]string, 0, len(genderOptions()))
		for _, g := range genderOptions() {
			options = append(options, string(g))
		}
		renderList(options, m.selectedGender)

	case stepArchetype:
		content.WriteString(text.ArchetypePrompt + "\n\n")
		for i, a := range archetype.All() {
			label := fmt.Sprintf("%s: %s", a.Name.For(m.lang), a.Description.For(m.lang))
			if i == m.selectedArch {
				content.WriteString(modalSelectedItemStyle.Render("▶ "+label) + "\n")
			} else {
				content.WriteString(modalItemStyle.Render("  "+label) + "\n")
			}
		}

	case stepStarting:
		content.WriteString(loadingStyle.Render(m.engine.LoadingMessage()) + "\n\n")
		content.WriteString(m.renderProgressBar())
	}

	content.WriteString("\n")
	content.WriteString(promptStyle.Render("↑/↓ + Enter · Esc: quit"))

	modal := modalStyle.Width(min(70, m.width-4)).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderLorebook() string {
	text := m.text()
	entries := m.filteredLore()

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render(text.LoreTitle))
	content.WriteString("\n\n")
	content.WriteString(m.searchInput.View() + "\n")
	content.WriteString(promptStyle.Render(fmt.Sprintf("Tab: sort (%s)", m.loreOrder)) + "\n\n")

	if len(entries) == 0 {
		content.WriteString(promptStyle.Render(text.UnseenWorld) + "\n")
	}

	for i, e := range entries {
		label := fmt.Sprintf("%s · %s", e.DiscoveredAt.Local().Format("Jan 2 15:04"), e.Title)
		if i == m.selectedLore {
			content.WriteString(modalSelectedItemStyle.Render("▶ "+label) + "\n")
		} else {
			content.WriteString(modalItemStyle.Render("  "+label) + "\n")
		}
	}

	if m.selectedLore < len(entries) {
		e := entries[m.selectedLore]
		content.WriteString("\n" + separatorStyle.Render(strings.Repeat("─", 40)) + "\n")
		content.WriteString(storyStyle.Render(wordwrap.String(e.Content, 60)) + "\n")
		if len(e.RewardsGained) > 0 {
			content.WriteString(toastStyle.Render("✦ "+strings.Join(e.RewardsGained, ", ")) + "\n")
		}
	}

	content.WriteString("\n" + promptStyle.Render("Esc: close"))

	modal := modalStyle.Width(min(76, m.width-4)).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderCraftingModal() string {
	text := m.text()
	var content strings.Builder

	content.WriteString(modalTitleStyle.Render(text.CraftingTitle))
	content.WriteString("\n\n")

	if m.gs == nil || len(m.gs.Inventory) == 0 {
		content.WriteString(promptStyle.Render(text.EmptyInventory) + "\n")
	}
	if m.gs != nil {
		for i, item := range m.gs.Inventory {
			mark := "[ ]"
			if m.craftSelected[i] {
				mark = "[x]"
			}
			line := fmt.Sprintf("%s %s", mark, item)
			if i == m.craftCursor {
				content.WriteString(modalSelectedItemStyle.Render("▶ "+line) + "\n")
			} else {
				content.WriteString(modalItemStyle.Render("  "+line) + "\n")
			}
		}
	}

	content.WriteString("\n")
	content.WriteString(promptStyle.Render("Space: select · Enter: craft (2+) · Esc: close"))

	modal := modalStyle.Width(min(60, m.width-4)).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderCraftingResult() string {
	text := m.text()
	result := m.engine.CraftingResult()
	if result == nil {
		return ""
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render(text.CraftingTitle))
	content.WriteString("\n\n")
	if result.Success {
		content.WriteString(toastStyle.Render("✦ "+result.NewItemName) + "\n\n")
	}
	content.WriteString(storyStyle.Render(wordwrap.String(result.Message, 50)))
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Enter: close"))

	modal := modalStyle.Width(min(60, m.width-4)).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderErrorModal() string {
	text := m.text()
	var content strings.Builder
	content.WriteString(modalTitleStyle.Render(text.ErrorTitle))
	content.WriteString("\n\n")
	content.WriteString(errorStyle.Render(wordwrap.String(m.engine.UserError(), 50)))
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Enter: dismiss"))

	modal := modalStyle.Width(min(60, m.width-4)).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderQuitModal() string {
	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit?"))
	content.WriteString("\n\n")
	content.WriteString("Your adventure is saved automatically.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

// renderProgressBar creates an animated progress bar for loading states
func (m ConsoleUI) renderProgressBar() string {
	usable := m.storyViewport.Width - 6
	if usable <= 0 {
		usable = 30 // fallback before sizing
	}
	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓")
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

// progressTickCmd drives the loading animation.
func progressTickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
