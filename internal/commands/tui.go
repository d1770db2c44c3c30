package commands

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/stahnma/gh-reposearch/internal/search"
	"github.com/stahnma/gh-reposearch/internal/tui"
)

func (a *App) newTUICommand() *cobra.Command {
	var sortFlag string
	cmd := &cobra.Command{
		Use:   "tui [term...]",
		Short: "Search repositories interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			sort, err := search.ParseSortMode(sortFlag)
			if err != nil {
				return err
			}
			ctrl, err := a.NewController(sort)
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), ctrl, tui.Options{
				Debounce:    a.Config.Debounce,
				InitialTerm: strings.Join(args, " "),
			}, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
		},
	}
	cmd.Flags().StringVarP(&sortFlag, "sort", "s", string(search.SortStars), "Initial sort order: stars or relevance")
	return cmd
}
