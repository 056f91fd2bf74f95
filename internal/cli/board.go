package cli

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/skylinelabs/skyline/pkg/puzzle"
)

// Board styles
var (
	styleClue   = lipgloss.NewStyle().Foreground(colorBlue)
	styleFrame  = lipgloss.NewStyle().Foreground(colorDim)
	styleCell   = lipgloss.NewStyle().Foreground(colorWhite)
	styleEmpty  = lipgloss.NewStyle().Foreground(colorDim)
	styleCursor = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Reverse(true)
)

// renderBoard draws the grid with its border clues. The top and bottom
// clue rows sit above and below the frame, left and right clues flank
// each grid row. When highlight is set the cell at (curRow, curCol) is
// drawn inverted, which the interactive game uses as its cursor.
func renderBoard(p *puzzle.Puzzle, curRow, curCol int, highlight bool) string {
	grid := p.Grid()
	clues := p.Clues()

	var b strings.Builder

	// The frame's vertical bar shifts the cells one column right of the
	// margin, so the clue rows get one extra leading space to line up.
	b.WriteString("    ")
	for col := 0; col < puzzle.Size; col++ {
		b.WriteString(" " + clueText(clues.Top[col]) + " ")
	}
	b.WriteString("\n")

	b.WriteString("   " + styleFrame.Render("┌"+strings.Repeat("─", puzzle.Size*3)+"┐") + "\n")

	for row := 0; row < puzzle.Size; row++ {
		b.WriteString(" " + clueText(clues.Left[row]) + " ")
		b.WriteString(styleFrame.Render("│"))
		for col := 0; col < puzzle.Size; col++ {
			b.WriteString(cellText(grid[row][col], highlight && row == curRow && col == curCol))
		}
		b.WriteString(styleFrame.Render("│"))
		b.WriteString(" " + clueText(clues.Right[row]))
		b.WriteString("\n")
	}

	b.WriteString("   " + styleFrame.Render("└"+strings.Repeat("─", puzzle.Size*3)+"┘") + "\n")

	b.WriteString("    ")
	for col := 0; col < puzzle.Size; col++ {
		b.WriteString(" " + clueText(clues.Bottom[col]) + " ")
	}
	b.WriteString("\n")

	return b.String()
}

// clueText renders a single clue digit; 0 means "no clue" and renders
// as a blank so the border stays aligned.
func clueText(v int) string {
	if v == 0 {
		return " "
	}
	return styleClue.Render(strconv.Itoa(v))
}

// cellText renders one grid cell padded to three columns.
func cellText(v int, cursor bool) string {
	text := "·"
	style := styleEmpty
	if v != 0 {
		text = strconv.Itoa(v)
		style = styleCell
	}
	if cursor {
		style = styleCursor
	}
	return style.Render(" " + text + " ")
}
