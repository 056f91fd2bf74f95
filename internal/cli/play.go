package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/skylinelabs/skyline/pkg/puzzle"
	"github.com/skylinelabs/skyline/pkg/puzzlefile"
)

// playCommand creates the play command for the interactive terminal game.
func (c *CLI) playCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play [puzzle.toml]",
		Short: "Play a puzzle interactively in the terminal",
		Long: `Play opens a terminal game. Move the cursor with the arrow keys or
hjkl, place numbers with 1-6 and clear cells with backspace or 0.
Press s to watch the solver finish the board step by step; pressing s
again cancels the animation. Without a file argument the built-in
default puzzle is loaded.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "default puzzle"
			p := puzzle.NewWithClues(puzzle.DefaultClues())
			if len(args) == 1 {
				def, err := puzzlefile.ReadDefinitionFile(args[0])
				if err != nil {
					return err
				}
				if p, err = def.Puzzle(); err != nil {
					return err
				}
				name = displayName(def, args[0])
			}

			prog := tea.NewProgram(newGameModel(p, name), tea.WithAltScreen())
			_, err := prog.Run()
			return err
		},
	}

	return cmd
}
