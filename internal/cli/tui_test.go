package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skylinelabs/skyline/pkg/puzzle"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func updateGame(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	game, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T, want GameModel", next)
	}
	return game
}

func TestGameCursorMovement(t *testing.T) {
	m := newGameModel(puzzle.NewWithClues(puzzle.DefaultClues()), "test")

	m = updateGame(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = updateGame(t, m, keyRunes("l"))
	if m.CurRow != 1 || m.CurCol != 1 {
		t.Errorf("cursor = (%d,%d), want (1,1)", m.CurRow, m.CurCol)
	}

	// The cursor clamps at the board edges.
	for i := 0; i < 10; i++ {
		m = updateGame(t, m, keyRunes("k"))
		m = updateGame(t, m, keyRunes("h"))
	}
	if m.CurRow != 0 || m.CurCol != 0 {
		t.Errorf("cursor = (%d,%d), want (0,0)", m.CurRow, m.CurCol)
	}
}

func TestGamePlaceAndClear(t *testing.T) {
	m := newGameModel(puzzle.NewWithClues(puzzle.DefaultClues()), "test")

	m = updateGame(t, m, keyRunes("3"))
	if m.Puzzle.Cell(0, 0) != 3 {
		t.Fatalf("cell (0,0) = %d, want 3", m.Puzzle.Cell(0, 0))
	}

	// Same number in the same row must be rejected with a status message.
	m = updateGame(t, m, keyRunes("l"))
	m = updateGame(t, m, keyRunes("3"))
	if m.Puzzle.Cell(0, 1) != 0 {
		t.Error("conflicting placement reached the grid")
	}
	if m.Status == "" {
		t.Error("no status message after a rejected placement")
	}

	m = updateGame(t, m, keyRunes("h"))
	m = updateGame(t, m, keyRunes("0"))
	if m.Puzzle.Cell(0, 0) != 0 {
		t.Errorf("cell (0,0) after clear = %d, want 0", m.Puzzle.Cell(0, 0))
	}
}

func TestGameReset(t *testing.T) {
	m := newGameModel(puzzle.NewWithClues(puzzle.DefaultClues()), "test")

	m = updateGame(t, m, keyRunes("3"))
	m = updateGame(t, m, keyRunes("r"))
	if m.Puzzle.Cell(0, 0) != 0 {
		t.Error("reset kept a placed value")
	}
}

func TestGameSolverAnimation(t *testing.T) {
	m := newGameModel(puzzle.NewWithClues(puzzle.DefaultClues()), "test")

	m = updateGame(t, m, keyRunes("s"))
	if !m.solving() {
		t.Fatal("solver did not start")
	}

	// Keys that edit the board are ignored while the solver runs.
	m = updateGame(t, m, keyRunes("1"))

	for i := 0; i < 1_000_000 && m.solving(); i++ {
		m = updateGame(t, m, stepMsg(time.Now()))
	}
	if !m.Won {
		t.Fatal("solver animation did not finish the default puzzle")
	}
	if !m.Puzzle.CheckWin() {
		t.Error("board is not a winning grid after the animation")
	}
}

func TestGameSolverCancel(t *testing.T) {
	m := newGameModel(puzzle.NewWithClues(puzzle.DefaultClues()), "test")

	m = updateGame(t, m, keyRunes("s"))
	m = updateGame(t, m, keyRunes("s")) // toggles off
	m = updateGame(t, m, stepMsg(time.Now()))
	if m.Won {
		t.Error("cancelled solver reported a win")
	}
	if m.solving() {
		t.Error("solver still running after cancel")
	}
}

func TestGameViewShowsClues(t *testing.T) {
	m := newGameModel(puzzle.NewWithClues(puzzle.DefaultClues()), "my-puzzle")

	view := m.View()
	if !strings.Contains(view, "my-puzzle") {
		t.Error("view missing the puzzle name")
	}
	if !strings.Contains(view, "4") {
		t.Error("view missing clue digits")
	}
}
