// Package tui provides the Bubble Tea analysis interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/textlens/internal/analysis"
	"github.com/verte-zerg/textlens/internal/speech"
	"github.com/verte-zerg/textlens/internal/store"
)

type focusArea int

const (
	focusEditor focusArea = iota
	focusCloud
)

const (
	historySource   = "tui"
	minEditorHeight = 5
	editorShare     = 0.35
	speechPoll      = 250 * time.Millisecond
)

type speechPollMsg struct{}

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	sentenceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Italic(true)
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	cardStyle      = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cloudStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cloudFocusedStyle = cloudStyle.BorderForeground(lipgloss.Color("#C89A3A"))
)

// Options configures a Model.
type Options struct {
	// Voice drives speech for selected keywords. Nil disables speech.
	Voice *speech.Controller
	// Store receives every analysis when Save is set.
	Store *store.Store
	Save  bool
	// Hue colors keywords. Nil uses analysis.RandomHue.
	Hue analysis.HueFunc
	// Now stamps saved analyses. Nil uses time.Now.
	Now func() time.Time
}

// Model implements the Bubble Tea analysis UI. The selected keyword and the
// voice flag live here and in the speech controller, never in the engine.
type Model struct {
	editor textarea.Model
	voice  *speech.Controller
	store  *store.Store
	save   bool
	hue    analysis.HueFunc
	now    func() time.Time

	result   analysis.Result
	analyzed bool
	selected int
	focus    focusArea

	status string
	errMsg string

	width  int
	height int
}

// NewModel constructs the analysis TUI model.
func NewModel(opts Options) *Model {
	editor := textarea.New()
	editor.Placeholder = "Paste or type text, then press ctrl+s to analyze."
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.MaxHeight = 0
	editor.Focus()

	voice := opts.Voice
	if voice == nil {
		voice = speech.NewController(speech.Nop{}, false)
	}
	hue := opts.Hue
	if hue == nil {
		hue = analysis.RandomHue
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Model{
		editor:   editor,
		voice:    voice,
		store:    opts.Store,
		save:     opts.Save && opts.Store != nil,
		hue:      hue,
		now:      now,
		selected: -1,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeEditor()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.deselect()
			return m, tea.Quit
		case "ctrl+s":
			m.analyze()
			return m, nil
		case "ctrl+l":
			m.editor.Reset()
			m.resetResults()
			m.status = ""
			return m, m.focusEditor()
		case "ctrl+v":
			m.toggleVoice()
			return m, nil
		case "tab":
			return m, m.toggleFocus()
		}
		if m.focus == focusCloud {
			return m, m.handleCloudKey(msg)
		}
	case speechPollMsg:
		return m, m.pollSpeech()
	}
	return m, m.updateEditor(msg)
}

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{titleStyle.Render("textlens"), m.editor.View()}
	if m.analyzed {
		sections = append(sections, layoutCards(statisticCards(m.result.Statistics), m.width))
		cloudBox := cloudStyle
		if m.focus == focusCloud {
			cloudBox = cloudFocusedStyle
		}
		cloudWidth := m.width - cloudBox.GetHorizontalFrameSize()
		sections = append(sections, cloudBox.Render(renderCloud(m.result.Keywords, m.selected, cloudWidth)))
		if sentence := m.selectedSentence(); sentence != "" {
			style := sentenceStyle
			if m.width > 0 {
				style = style.Width(m.width)
			}
			sections = append(sections, style.Render(sentence))
		}
	}
	if m.errMsg != "" {
		sections = append(sections, errorStyle.Render(m.errMsg))
	}
	sections = append(sections, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) resizeEditor() {
	if m.width > 0 {
		m.editor.SetWidth(m.width)
	}
	h := int(float64(m.height) * editorShare)
	if h < minEditorHeight {
		h = minEditorHeight
	}
	m.editor.SetHeight(h)
}

func (m *Model) updateEditor(msg tea.Msg) tea.Cmd {
	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if m.editor.Value() != before {
		m.resetResults()
		m.status = ""
	}
	return cmd
}

func (m *Model) analyze() {
	m.errMsg = ""
	result, ok := analysis.AnalyzeWithHue(m.editor.Value(), m.hue)
	if !ok {
		m.resetResults()
		m.status = "Nothing to analyze."
		return
	}
	m.deselect()
	m.result = result
	m.analyzed = true
	m.status = fmt.Sprintf("Analyzed %d words, %d keywords.", result.Statistics.Words, len(result.Keywords))
	if !m.save {
		return
	}
	ctx := context.Background()
	if _, err := m.store.InsertAnalysis(ctx, m.now(), historySource, result.Statistics, result.Keywords); err != nil {
		m.errMsg = fmt.Sprintf("failed to save analysis: %v", err)
		return
	}
	m.status += " Saved to history."
}

// resetResults discards the current analysis. Results never outlive the text
// they were computed from.
func (m *Model) resetResults() {
	if !m.analyzed {
		return
	}
	m.deselect()
	m.result = analysis.Result{}
	m.analyzed = false
	if m.focus == focusCloud {
		m.focus = focusEditor
		m.editor.Focus()
	}
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == focusCloud {
		return m.focusEditor()
	}
	if !m.analyzed || len(m.result.Keywords) == 0 {
		return nil
	}
	m.focus = focusCloud
	m.editor.Blur()
	return nil
}

func (m *Model) focusEditor() tea.Cmd {
	m.focus = focusEditor
	return m.editor.Focus()
}

func (m *Model) handleCloudKey(msg tea.KeyMsg) tea.Cmd {
	n := len(m.result.Keywords)
	if n == 0 {
		return nil
	}
	switch msg.String() {
	case "right", "l":
		next := 0
		if m.selected >= 0 {
			next = (m.selected + 1) % n
		}
		m.selectKeyword(next)
		return m.pollSpeech()
	case "left", "h":
		next := n - 1
		if m.selected >= 0 {
			next = (m.selected - 1 + n) % n
		}
		m.selectKeyword(next)
		return m.pollSpeech()
	case "esc":
		m.deselect()
	}
	return nil
}

// pollSpeech re-renders the footer until the current utterance ends.
func (m *Model) pollSpeech() tea.Cmd {
	if m.voice.State() != speech.Speaking {
		return nil
	}
	return tea.Tick(speechPoll, func(time.Time) tea.Msg { return speechPollMsg{} })
}

func (m *Model) selectKeyword(i int) {
	m.selected = i
	m.errMsg = ""
	if err := m.voice.Select(context.Background(), m.result.Keywords[i].Sentence); err != nil {
		m.errMsg = err.Error()
	}
}

func (m *Model) deselect() {
	m.selected = -1
	if err := m.voice.Deselect(); err != nil {
		m.errMsg = err.Error()
	}
}

func (m *Model) toggleVoice() {
	if err := m.voice.SetEnabled(!m.voice.Enabled()); err != nil {
		m.errMsg = err.Error()
	}
}

func (m *Model) selectedSentence() string {
	if m.selected < 0 || m.selected >= len(m.result.Keywords) {
		return ""
	}
	return m.result.Keywords[m.selected].Sentence
}

func (m *Model) renderFooter() string {
	voice := "Voice off"
	if m.voice.Enabled() {
		voice = "Voice on"
		if m.voice.State() == speech.Speaking {
			voice += " (speaking)"
		}
	}
	segments := []string{"ctrl+s analyze", "ctrl+l clear", "tab focus", "ctrl+v " + voice}
	if m.focus == focusCloud {
		segments = append(segments, "←/→ select", "esc deselect")
	}
	segments = append(segments, "ctrl+c quit")
	if m.status != "" {
		segments = append(segments, m.status)
	}
	return footerStyle.Render(strings.Join(segments, " · "))
}
