package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stahnma/gh-reposearch/internal/search"
)

// Run shows the interactive search UI until the user quits or ctx is done.
// ctrl is closed on return.
func Run(ctx context.Context, ctrl *search.Controller, opts Options, progOpts ...tea.ProgramOption) error {
	m := New(ctrl, opts)
	defer m.Teardown()

	progOpts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, progOpts...)
	_, err := tea.NewProgram(m, progOpts...).Run()
	return err
}
