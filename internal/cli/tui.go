package cli

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skylinelabs/skyline/pkg/puzzle"
)

// Animation pacing for the solver overlay. A handful of search steps per
// frame keeps the board visibly churning without dragging the solve out.
const (
	stepInterval = 25 * time.Millisecond
	stepsPerTick = 24
)

// stepMsg drives one animation frame of the solver.
type stepMsg time.Time

func stepTick() tea.Cmd {
	return tea.Tick(stepInterval, func(t time.Time) tea.Msg {
		return stepMsg(t)
	})
}

// =============================================================================
// GameModel - Interactive puzzle board
// =============================================================================

// GameModel is the bubbletea model for the interactive game. Number keys
// place values through the validated move path, so illegal entries never
// reach the grid; the solver animation drives the same incremental
// search the engine uses everywhere else.
type GameModel struct {
	Puzzle  *puzzle.Puzzle
	Name    string
	CurRow  int
	CurCol  int
	Won     bool
	Status  string
	stepper *puzzle.Stepper
}

// newGameModel creates a game over p. The model takes ownership of the
// puzzle for the lifetime of the program.
func newGameModel(p *puzzle.Puzzle, name string) GameModel {
	return GameModel{
		Puzzle: p,
		Name:   name,
		Won:    p.CheckWin(),
	}
}

func (m GameModel) Init() tea.Cmd {
	return nil
}

// solving reports whether the solver animation is in flight.
func (m GameModel) solving() bool {
	return m.stepper != nil && m.stepper.Status() == puzzle.StepRunning
}

func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case stepMsg:
		return m.advanceSolver()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "s", " ":
		return m.toggleSolver()
	}

	// Everything below edits the board; the solver owns it while running.
	if m.solving() {
		return m, nil
	}

	switch key {
	case "up", "k":
		if m.CurRow > 0 {
			m.CurRow--
		}
	case "down", "j":
		if m.CurRow < puzzle.Size-1 {
			m.CurRow++
		}
	case "left", "h":
		if m.CurCol > 0 {
			m.CurCol--
		}
	case "right", "l":
		if m.CurCol < puzzle.Size-1 {
			m.CurCol++
		}
	case "backspace", "delete", "0":
		m.Puzzle.ClearCell(m.CurRow, m.CurCol)
		m.Won = false
		m.Status = ""
	case "r":
		m.Puzzle.Reset()
		m.stepper = nil
		m.Won = false
		m.Status = ""
	case "1", "2", "3", "4", "5", "6":
		num := int(key[0] - '0')
		if !m.Puzzle.MakeMove(m.CurRow, m.CurCol, num) {
			m.Status = StyleWarning.Render("that placement breaks a rule")
			return m, nil
		}
		m.Status = ""
		if m.Puzzle.CheckWin() {
			m.Won = true
			m.Status = StyleSuccess.Render("Solved, well done!")
		}
	}
	return m, nil
}

// toggleSolver starts the animated solve, or cancels a running one.
func (m GameModel) toggleSolver() (tea.Model, tea.Cmd) {
	if m.solving() {
		m.stepper.Cancel()
		m.Status = StyleWarning.Render("solver cancelled")
		return m, nil
	}
	if m.Won {
		return m, nil
	}
	m.stepper = puzzle.NewStepper(m.Puzzle, puzzle.HeuristicMRV)
	m.Status = StyleDim.Render("solving...")
	return m, stepTick()
}

// advanceSolver runs a burst of search steps and schedules the next
// frame while the search is still open.
func (m GameModel) advanceSolver() (tea.Model, tea.Cmd) {
	if m.stepper == nil {
		return m, nil
	}
	status := m.stepper.Status()
	for i := 0; i < stepsPerTick && status == puzzle.StepRunning; i++ {
		status = m.stepper.Step()
	}

	switch status {
	case puzzle.StepRunning:
		return m, stepTick()
	case puzzle.StepSolved:
		m.Won = true
		m.Status = StyleSuccess.Render("Solved!") + " " + StyleDim.Render(m.stepper.Stats().Report())
	case puzzle.StepExhausted:
		m.Status = StyleWarning.Render("no solution from this position")
	case puzzle.StepCancelled:
		m.Status = StyleWarning.Render("solver cancelled")
	}
	return m, nil
}

func (m GameModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Skyline") + " " + StyleDim.Render(m.Name))
	b.WriteString("\n\n")
	b.WriteString(renderBoard(m.Puzzle, m.CurRow, m.CurCol, !m.solving()))
	b.WriteString("\n")

	if m.Status != "" {
		b.WriteString(m.Status)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render("arrows/hjkl move · 1-6 place · 0 clear · r reset · s solve · q quit"))
	b.WriteString("\n")

	return b.String()
}
