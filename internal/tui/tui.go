// Package tui provides a Bubble Tea terminal user interface for photo-sorter.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/zoidzter/photo-sorter/internal/config"
	"github.com/zoidzter/photo-sorter/internal/exif"
	"github.com/zoidzter/photo-sorter/internal/group"
	"github.com/zoidzter/photo-sorter/internal/job"
	"github.com/zoidzter/photo-sorter/internal/mapping"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	groupStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StatePreviewing
	StatePreviewDone
	StateCopying
	StateComplete
	StateError
)

const pollInterval = 200 * time.Millisecond

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state       State
	sourceInput textinput.Model
	destInput   textinput.Model
	focusDest   bool
	spinner     spinner.Model
	progress    progress.Model
	settings    *config.Settings
	err         error

	// Job wiring
	store         *job.Store
	previewRunner *job.PreviewRunner
	copyRunner    *job.CopyRunner
	jobID         string

	// Latest poll results
	preview job.PreviewPayload
	status  job.Status

	width  int
	height int
}

// NewModel creates a new TUI model wired to the given settings.
func NewModel(settings *config.Settings) Model {
	src := textinput.New()
	src.Placeholder = "/path/to/unsorted/photos"
	src.Focus()
	src.CharLimit = 500
	src.Width = 60

	dst := textinput.New()
	dst.Placeholder = settings.DestinationPath
	dst.CharLimit = 500
	dst.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	rules := group.LoadRules(settings.RulesPath)
	namer := group.NewNamer(rules, settings.Geocoder())
	builder := mapping.NewBuilder(exif.NewDefaultExtractor(), namer, settings.MappingTTL())

	store := job.NewStore()

	return Model{
		state:         StateInput,
		sourceInput:   src,
		destInput:     dst,
		spinner:       sp,
		progress:      prog,
		settings:      settings,
		store:         store,
		previewRunner: job.NewPreviewRunner(builder, store),
		copyRunner:    job.NewCopyRunner(builder, store),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// TickMsg drives periodic job store polling.
type TickMsg struct{}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}

		case "tab":
			if m.state == StateInput {
				m.focusDest = !m.focusDest
				if m.focusDest {
					m.sourceInput.Blur()
					m.destInput.Focus()
				} else {
					m.destInput.Blur()
					m.sourceInput.Focus()
				}
			}

		case "enter":
			switch {
			case m.state == StateInput && m.sourceInput.Value() != "":
				m.state = StatePreviewing
				m.jobID = m.previewRunner.Start(m.sourceInput.Value())
				return m, tea.Batch(m.tickPoll(), m.spinner.Tick)

			case m.state == StatePreviewDone:
				m.state = StateCopying
				m.jobID = m.copyRunner.Start(m.sourceInput.Value(), m.destPath(), "", false)
				return m, m.tickPoll()
			}

		case "q":
			if m.state == StateComplete || m.state == StateError || m.state == StatePreviewDone {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError || m.state == StatePreviewDone {
				// Reset for a new run
				m.state = StateInput
				m.err = nil
				m.jobID = ""
				m.preview = job.PreviewPayload{}
				m.status = job.Status{}
				m.sourceInput.SetValue("")
				m.destInput.SetValue("")
				m.focusDest = false
				m.destInput.Blur()
				m.sourceInput.Focus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case TickMsg:
		if m.jobID != "" && (m.state == StatePreviewing || m.state == StateCopying) {
			status, ok := m.store.Poll(m.jobID)
			if !ok {
				m.state = StateError
				m.err = fmt.Errorf("job %s not found", m.jobID)
				return m, nil
			}
			m.status = status

			if status.Terminal() {
				if status.State() == job.StateError {
					m.state = StateError
					msg, _ := status.Record[job.FieldError].(string)
					m.err = fmt.Errorf("%s", msg)
					return m, nil
				}
				if m.state == StatePreviewing {
					m.preview, _ = status.Record[job.FieldResult].(job.PreviewPayload)
					m.state = StatePreviewDone
				} else {
					m.state = StateComplete
				}
				return m, nil
			}

			cmds = append(cmds, m.progress.SetPercent(status.Percent/100), m.tickPoll())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text inputs
	if m.state == StateInput {
		var cmd tea.Cmd
		m.sourceInput, cmd = m.sourceInput.Update(msg)
		cmds = append(cmds, cmd)
		m.destInput, cmd = m.destInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) destPath() string {
	if v := m.destInput.Value(); v != "" {
		return v
	}
	return m.settings.DestinationPath
}

// tickPoll returns a command to poll the job store.
func (m Model) tickPoll() tea.Cmd {
	return tea.Tick(pollInterval, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("photo-sorter"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Organize photos and videos by date, place and event"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StatePreviewing:
		b.WriteString(m.viewPreviewing())
	case StatePreviewDone:
		b.WriteString(m.viewPreviewDone())
	case StateCopying:
		b.WriteString(m.viewCopying())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Source folder:"))
	b.WriteString("\n")
	b.WriteString(m.sourceInput.View())
	b.WriteString("\n\n")
	b.WriteString(subtitleStyle.Render("Destination folder:"))
	b.WriteString("\n")
	b.WriteString(m.destInput.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Default destination: %s", m.settings.DestinationPath)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewPreviewing() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Scanning and grouping files..."))
	b.WriteString("\n\n")

	total := m.status.Record[job.FieldTotal]
	processed := m.status.Record[job.FieldProcessed]
	if t, ok := total.(int); ok && t > 0 {
		b.WriteString(infoStyle.Render(fmt.Sprintf("Read metadata for %v of %v files", processed, t)))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewPreviewDone() string {
	var b strings.Builder

	b.WriteString(successStyle.Render(fmt.Sprintf(
		"Found %s file(s) in %d group(s):",
		humanize.Comma(int64(m.preview.Total)), len(m.preview.Groups))))
	b.WriteString("\n")

	for _, g := range m.preview.Groups {
		b.WriteString(groupStyle.Render(fmt.Sprintf("  %s (%d)", g.Name, g.Count)))
		b.WriteString("\n")
		for _, sample := range g.Samples {
			b.WriteString(dimStyle.Render(fmt.Sprintf("    %s", sample)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Destination: %s", m.destPath())))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewCopying() string {
	var b strings.Builder

	rec := m.status.Record

	b.WriteString(m.progress.ViewAs(m.status.Percent / 100))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Files: %v/%v | Copied: %v | Duplicates: %v | Failed: %v",
		rec[job.FieldProcessed], rec[job.FieldTotal],
		rec[job.FieldCopied], rec[job.FieldDuplicates], rec[job.FieldFailed])))
	b.WriteString("\n")

	if g, ok := rec[job.FieldCurrentGroup].(string); ok && g != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("Group: %s", g)))
		b.WriteString("\n")
	}
	if f, ok := rec[job.FieldCurrentFile].(string); ok && f != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("File:  %s", f)))
		b.WriteString("\n")
	}
	if m.status.ETA > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf(
			"ETA: %s", humanize.RelTime(time.Now(), time.Now().Add(m.status.ETA), "", ""))))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewComplete() string {
	rec := m.status.Record

	summary := fmt.Sprintf(
		"Copy complete\n\n"+
			"Copied:     %v\n"+
			"Duplicates: %v\n"+
			"Failed:     %v\n"+
			"Elapsed:    %s",
		rec[job.FieldCopied], rec[job.FieldDuplicates], rec[job.FieldFailed],
		m.status.Elapsed.Round(time.Second))

	var b strings.Builder
	b.WriteString(boxStyle.Render(summary))

	if errs, ok := rec[job.FieldErrors].([]string); ok && len(errs) > 0 {
		b.WriteString("\n\n")
		b.WriteString(warningStyle.Render(fmt.Sprintf("%d file(s) had problems:", len(errs))))
		b.WriteString("\n")
		for _, e := range errs {
			b.WriteString(warningStyle.Render("  ! " + e))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: preview • tab: switch field • esc: quit"
	case StatePreviewing, StateCopying:
		return "running..."
	case StatePreviewDone:
		return "enter: copy • r: start over • q: quit"
	case StateComplete, StateError:
		return "r: new run • q: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
