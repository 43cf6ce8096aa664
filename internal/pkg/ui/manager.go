// Package ui provides terminal UI components for CodeSage.
package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/codesage/codesage/internal/pkg/errors"
)

// Spinner provides loading animation functionality.
type Spinner interface {
	Start()
	Stop()
	UpdateText(text string)
}

// Manager defines the interface for UI operations.
type Manager interface {
	ShowSpinner(text string) Spinner
	ShowError(err error)
	ShowSuccess(message string)
	ShowInfo(message string)
	PromptConfirm(message string) (bool, error)
	PromptSecret(title, description string) (string, error)
}

// DefaultManager implements the Manager interface using charmbracelet libraries.
type DefaultManager struct {
	colorEnabled bool
	styles       *styles
}

// styles holds the lipgloss styles for UI rendering.
type styles struct {
	success    lipgloss.Style
	errorStyle lipgloss.Style
	info       lipgloss.Style
}

// NewDefaultManager creates a new DefaultManager with the specified options.
func NewDefaultManager(colorEnabled bool) *DefaultManager {
	m := &DefaultManager{
		colorEnabled: colorEnabled,
	}
	m.initStyles()
	return m
}

// initStyles initializes the lipgloss styles.
func (m *DefaultManager) initStyles() {
	if !m.colorEnabled {
		m.styles = &styles{
			success:    lipgloss.NewStyle(),
			errorStyle: lipgloss.NewStyle(),
			info:       lipgloss.NewStyle(),
		}
		return
	}

	m.styles = &styles{
		success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")),
		errorStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")),
	}
}

// ShowSpinner creates and returns a spinner for loading states.
func (m *DefaultManager) ShowSpinner(text string) Spinner {
	return newBubbleSpinner(text)
}

// ShowError displays an error message to the user as a single
// non-blocking notification.
func (m *DefaultManager) ShowError(err error) {
	if err == nil {
		return
	}
	fmt.Println()
	fmt.Println(m.styles.errorStyle.Render(apperrors.FormatError(err)))
	fmt.Println()
}

// ShowSuccess displays a success message to the user.
func (m *DefaultManager) ShowSuccess(message string) {
	fmt.Println()
	fmt.Println(m.styles.success.Render("[OK] " + message))
	fmt.Println()
}

// ShowInfo displays an informational message to the user.
func (m *DefaultManager) ShowInfo(message string) {
	fmt.Println(m.styles.info.Render(message))
}

// PromptConfirm prompts the user for a yes/no confirmation using Bubble Tea.
func (m *DefaultManager) PromptConfirm(message string) (bool, error) {
	model := newConfirmModel(message)
	p := tea.NewProgram(model)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	result := finalModel.(confirmModel)
	return result.confirmed, nil
}

// PromptSecret prompts for a secret value through a masked input field.
func (m *DefaultManager) PromptSecret(title, description string) (string, error) {
	var value string

	err := huh.NewInput().
		Title(title).
		Description(description).
		Value(&value).
		Password(true).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("value cannot be empty")
			}
			return nil
		}).
		Run()
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrInputCancelled, "input cancelled")
	}

	return strings.TrimSpace(value), nil
}

// confirmModel is the Bubble Tea model for yes/no confirmation.
type confirmModel struct {
	message   string
	cursor    int // 0 = Yes, 1 = No
	confirmed bool
	done      bool
}

func newConfirmModel(message string) confirmModel {
	return confirmModel{
		message: message,
		cursor:  0, // Default to Yes
	}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "n":
			m.confirmed = false
			m.done = true
			return m, tea.Quit
		case "y", "Y":
			m.confirmed = true
			m.done = true
			return m, tea.Quit
		case "left", "h":
			m.cursor = 0
		case "right", "l":
			m.cursor = 1
		case "enter", " ":
			m.confirmed = m.cursor == 0
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("220"))

	selectedStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("42"))

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.message))
	sb.WriteString(" ")

	yesStyle := normalStyle
	noStyle := normalStyle
	if m.cursor == 0 {
		yesStyle = selectedStyle
	} else {
		noStyle = selectedStyle
	}

	sb.WriteString(yesStyle.Render("[Y]es"))
	sb.WriteString(" / ")
	sb.WriteString(noStyle.Render("[N]o"))

	return sb.String()
}

// bubbleSpinner implements Spinner using Bubble Tea.
type bubbleSpinner struct {
	text    string
	program *tea.Program
	model   *spinnerModel
	mu      sync.Mutex
}

// spinnerModel is the Bubble Tea model for the spinner.
type spinnerModel struct {
	spinner  spinner.Model
	text     string
	quitting bool
}

// spinnerTextMsg is sent to update spinner text from outside.
type spinnerTextMsg struct {
	text string
}

// spinnerQuitMsg signals the spinner to quit.
type spinnerQuitMsg struct{}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTextMsg:
		m.text = msg.text
		return m, nil
	case spinnerQuitMsg:
		m.quitting = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.quitting {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.text)
}

func newBubbleSpinner(text string) *bubbleSpinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	model := &spinnerModel{
		spinner: s,
		text:    text,
	}

	return &bubbleSpinner{
		text:  text,
		model: model,
	}
}

func (s *bubbleSpinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.program = tea.NewProgram(s.model)
	go func() {
		_, _ = s.program.Run()
	}()
}

func (s *bubbleSpinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.program != nil {
		s.program.Send(spinnerQuitMsg{})
		time.Sleep(50 * time.Millisecond)
	}
}

func (s *bubbleSpinner) UpdateText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.text = text
	if s.program != nil {
		s.program.Send(spinnerTextMsg{text: text})
	}
}

// NonInteractiveManager implements Manager without prompting, for use
// with --yes and in scripts.
type NonInteractiveManager struct {
	colorEnabled bool
	styles       *styles
}

// NewNonInteractiveManager creates a manager that never prompts.
func NewNonInteractiveManager(colorEnabled bool) *NonInteractiveManager {
	m := &NonInteractiveManager{colorEnabled: colorEnabled}
	dm := NewDefaultManager(colorEnabled)
	m.styles = dm.styles
	return m
}

// ShowSpinner returns a no-op spinner.
func (m *NonInteractiveManager) ShowSpinner(text string) Spinner {
	return noopSpinner{}
}

// ShowError displays an error message.
func (m *NonInteractiveManager) ShowError(err error) {
	if err == nil {
		return
	}
	fmt.Println(m.styles.errorStyle.Render(apperrors.FormatError(err)))
}

// ShowSuccess displays a success message.
func (m *NonInteractiveManager) ShowSuccess(message string) {
	fmt.Println(m.styles.success.Render("[OK] " + message))
}

// ShowInfo displays an informational message.
func (m *NonInteractiveManager) ShowInfo(message string) {
	fmt.Println(m.styles.info.Render(message))
}

// PromptConfirm auto-confirms without prompting.
func (m *NonInteractiveManager) PromptConfirm(message string) (bool, error) {
	return true, nil
}

// PromptSecret fails: secrets cannot be collected non-interactively.
func (m *NonInteractiveManager) PromptSecret(title, description string) (string, error) {
	return "", apperrors.New(apperrors.ErrInputCancelled,
		"cannot prompt for a secret in non-interactive mode")
}

// noopSpinner is a Spinner that does nothing.
type noopSpinner struct{}

func (noopSpinner) Start()            {}
func (noopSpinner) Stop()             {}
func (noopSpinner) UpdateText(string) {}
