// Package tui is the interactive terminal presenter for repository search.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stahnma/gh-reposearch/internal/debounce"
	"github.com/stahnma/gh-reposearch/internal/format"
	"github.com/stahnma/gh-reposearch/internal/search"
)

// Options configures a Model.
type Options struct {
	Debounce    time.Duration
	InitialTerm string
	// Now anchors relative update times. Defaults to time.Now.
	Now func() time.Time
}

// changedMsg reports that the controller snapshot changed.
type changedMsg struct{}

// closedMsg reports that the controller was closed.
type closedMsg struct{}

// settledMsg reports that the debouncer emitted a value.
type settledMsg struct{}

// Model is the Bubble Tea model. Keystrokes go through a debouncer into the
// controller; controller changes come back as changedMsg.
type Model struct {
	ctrl    *search.Controller
	deb     *debounce.Debouncer
	settled chan struct{}
	down    *sync.Once
	initial string
	now     func() time.Time

	input   textinput.Model
	spinner spinner.Model

	snap    search.Snapshot
	pending bool
	notice  string
	width   int
}

// New creates a Model driving ctrl.
func New(ctrl *search.Controller, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	settled := make(chan struct{}, 1)
	signal := func() {
		select {
		case settled <- struct{}{}:
		default:
		}
	}
	// Settled keystrokes only fetch on a changed term; Enter always fetches.
	deb := debounce.NewWithSubmit(opts.Debounce,
		func(term string) {
			_ = ctrl.SetTerm(term)
			signal()
		},
		func(term string) {
			_ = ctrl.Submit(term)
			signal()
		})

	ti := textinput.New()
	ti.Placeholder = "Search GitHub repositories"
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Width = 60
	ti.SetValue(opts.InitialTerm)
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctrl:    ctrl,
		deb:     deb,
		settled: settled,
		down:    new(sync.Once),
		initial: strings.TrimSpace(opts.InitialTerm),
		now:     opts.Now,
		input:   ti,
		spinner: sp,
		snap:    ctrl.Snapshot(),
		width:   80,
	}
}

// Init starts the input cursor, the spinner and the change listeners, and
// submits the initial term if one was given.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		m.spinner.Tick,
		waitForChange(m.ctrl.Changes()),
		waitForSettle(m.settled),
	}
	if m.initial != "" {
		deb, term := m.deb, m.initial
		cmds = append(cmds, func() tea.Msg {
			deb.Submit(term)
			return nil
		})
	}
	return tea.Batch(cmds...)
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return closedMsg{}
		}
		return changedMsg{}
	}
}

func waitForSettle(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return closedMsg{}
		}
		return settledMsg{}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 10 {
			m.input.Width = msg.Width - 10
		}
		return m, nil

	case changedMsg:
		m.snap = m.ctrl.Snapshot()
		m.pending = m.deb.Pending()
		return m, waitForChange(m.ctrl.Changes())

	case settledMsg:
		m.pending = m.deb.Pending()
		return m, waitForSettle(m.settled)

	case closedMsg:
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch msg.String() {
	case "ctrl+c":
		m.Teardown()
		return m, tea.Quit
	case "enter":
		m.deb.Submit(m.input.Value())
		m.pending = false
		return m, nil
	case "tab":
		m.report(m.ctrl.SetSort(m.ctrl.Snapshot().Query.Sort.Toggle()))
		return m, nil
	case "pgup", "ctrl+p":
		m.prevPage()
		return m, nil
	case "pgdown", "ctrl+n":
		m.nextPage()
		return m, nil
	}

	if !m.input.Focused() {
		switch msg.String() {
		case "left", "p":
			m.prevPage()
		case "right", "n":
			m.nextPage()
		case "q":
			m.Teardown()
			return m, tea.Quit
		case "/", "i":
			return m, m.input.Focus()
		}
		return m, nil
	}

	if msg.String() == "esc" {
		m.input.Blur()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != before {
		m.deb.Push(v)
		m.pending = true
	}
	return m, cmd
}

func (m *Model) prevPage() {
	snap := m.ctrl.Snapshot()
	if !snap.HasPrev() {
		return
	}
	m.report(m.ctrl.RequestPage(snap.CurrentPage() - 1))
}

func (m *Model) nextPage() {
	snap := m.ctrl.Snapshot()
	if !snap.HasNext() {
		return
	}
	m.report(m.ctrl.RequestPage(snap.CurrentPage() + 1))
}

func (m *Model) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, search.ErrPageOutOfRange):
		m.notice = "No more pages"
	default:
		m.notice = err.Error()
	}
}

// Teardown stops the debouncer and closes the controller. It is safe to call
// more than once.
func (m Model) Teardown() {
	m.down.Do(func() {
		m.deb.Stop()
		close(m.settled)
		m.ctrl.Close()
	})
}

// View renders the model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("GitHub repository search"))
	b.WriteString("  ")
	b.WriteString(metaStyle.Render(fmt.Sprintf("sort: %s", m.snap.Query.Sort)))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")

	if m.snap.Status == search.StatusSucceeded || (m.snap.Status == search.StatusLoading && len(m.snap.Result.Items) > 0) {
		b.WriteString(headerStyle.Render(format.Header(m.snap)))
		b.WriteString("\n")
		for _, r := range m.snap.Result.Items {
			b.WriteString(m.renderCard(r))
			b.WriteString("\n")
		}
		b.WriteString(m.pagination())
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

func (m Model) statusLine() string {
	switch {
	case m.pending:
		return m.spinner.View() + hintStyle.Render("Searching…")
	case m.snap.Status == search.StatusLoading:
		return m.spinner.View() + hintStyle.Render("Loading…")
	case m.snap.Err != nil:
		return errorStyle.Render(m.snap.Message())
	case m.notice != "":
		return hintStyle.Render(m.notice)
	}
	return ""
}

func (m Model) renderCard(r search.Repository) string {
	var lines []string
	lines = append(lines, repoNameStyle.Render(r.FullName)+"  "+starsStyle.Render("★ "+format.Number(r.Stars)))
	if r.Description != "" {
		lines = append(lines, r.Description)
	}
	var meta []string
	if r.Language != "" {
		meta = append(meta, r.Language)
	}
	meta = append(meta, format.Number(r.Forks)+" forks", "updated "+format.Updated(r.UpdatedAt, m.now()))
	lines = append(lines, metaStyle.Render(strings.Join(meta, " · ")))
	lines = append(lines, linkStyle.Render(r.URL))

	width := m.width - 4
	if width < 20 {
		width = 20
	}
	return cardStyle.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) pagination() string {
	prev := disabledControlStyle.Render("← prev")
	if m.snap.HasPrev() {
		prev = activeControlStyle.Render("← prev")
	}
	next := disabledControlStyle.Render("next →")
	if m.snap.HasNext() {
		next = activeControlStyle.Render("next →")
	}
	return fmt.Sprintf("%s   page %d of %d   %s", prev, m.snap.CurrentPage(), m.snap.TotalPages(), next)
}

func (m Model) help() string {
	if m.input.Focused() {
		return "enter: search • tab: sort • pgup/pgdn: page • esc: browse • ctrl+c: quit"
	}
	return "←/p: prev • →/n: next • tab: sort • /: edit • q: quit"
}

// Snapshot returns the state last rendered.
func (m Model) Snapshot() search.Snapshot {
	return m.snap
}

// Pending reports whether typed input is waiting to settle.
func (m Model) Pending() bool {
	return m.pending
}
