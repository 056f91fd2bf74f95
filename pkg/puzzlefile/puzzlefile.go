// Package puzzlefile reads and writes Skyscrapers puzzle definitions as
// TOML.
//
// A puzzle file holds the four clue sequences and optional pre-filled
// cells:
//
//	name = "weekend-puzzle"
//
//	[clues]
//	top    = [1, 2, 2, 3, 4, 3]
//	right  = [4, 3, 1, 2, 3, 2]
//	bottom = [3, 3, 2, 1, 3, 2]
//	left   = [1, 2, 4, 2, 3, 2]
//
//	[[givens]]
//	row = 0
//	col = 0
//	num = 3
//
// Clue entries of 0 mean "unset" and are only useful for files that feed
// an interactive setup flow. Givens are applied through the engine's
// validated move path, so an inconsistent file fails to load instead of
// producing an unsolvable board silently.
package puzzlefile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/skylinelabs/skyline/pkg/errors"
	"github.com/skylinelabs/skyline/pkg/puzzle"
)

// =============================================================================
// Definition
// =============================================================================

// Definition is the on-disk form of a puzzle.
type Definition struct {
	Name   string  `toml:"name,omitempty"`
	Clues  ClueSet `toml:"clues"`
	Givens []Given `toml:"givens,omitempty"`
}

// ClueSet mirrors puzzle.Clues with slices so TOML arrays of any length
// decode cleanly and can be length-checked with a useful message.
type ClueSet struct {
	Top    []int `toml:"top"`
	Right  []int `toml:"right"`
	Bottom []int `toml:"bottom"`
	Left   []int `toml:"left"`
}

// Given is one pre-filled cell.
type Given struct {
	Row int `toml:"row"`
	Col int `toml:"col"`
	Num int `toml:"num"`
}

// Validate checks ranges and lengths without building a puzzle.
func (d *Definition) Validate() error {
	sides := []struct {
		name   string
		values []int
	}{
		{"top", d.Clues.Top},
		{"right", d.Clues.Right},
		{"bottom", d.Clues.Bottom},
		{"left", d.Clues.Left},
	}
	for _, side := range sides {
		if len(side.values) != puzzle.Size {
			return errors.New(errors.ErrCodeInvalidClue,
				"clues.%s has %d entries, want %d", side.name, len(side.values), puzzle.Size)
		}
		for i, v := range side.values {
			if v < 0 || v > puzzle.Size {
				return errors.New(errors.ErrCodeInvalidClue,
					"clues.%s[%d] = %d, want 0..%d", side.name, i, v, puzzle.Size)
			}
		}
	}
	for i, g := range d.Givens {
		if g.Row < 0 || g.Row >= puzzle.Size || g.Col < 0 || g.Col >= puzzle.Size {
			return errors.New(errors.ErrCodeInvalidInput,
				"givens[%d] cell (%d,%d) out of range", i, g.Row, g.Col)
		}
		if g.Num < 1 || g.Num > puzzle.Size {
			return errors.New(errors.ErrCodeInvalidInput,
				"givens[%d] value %d, want 1..%d", i, g.Num, puzzle.Size)
		}
	}
	return nil
}

// Puzzle builds an engine puzzle from the definition, applying givens
// through the validated move path.
func (d *Definition) Puzzle() (*puzzle.Puzzle, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	var clues puzzle.Clues
	copy(clues.Top[:], d.Clues.Top)
	copy(clues.Right[:], d.Clues.Right)
	copy(clues.Bottom[:], d.Clues.Bottom)
	copy(clues.Left[:], d.Clues.Left)

	p := puzzle.NewWithClues(clues)
	for i, g := range d.Givens {
		if !p.MakeMove(g.Row, g.Col, g.Num) {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"givens[%d]: %d at (%d,%d) conflicts with the board or clues",
				i, g.Num, g.Row, g.Col)
		}
	}
	return p, nil
}

// FromPuzzle converts a puzzle back into a definition. Every non-empty
// cell becomes a given, which makes the round trip usable for exporting
// solved boards.
func FromPuzzle(p *puzzle.Puzzle, name string) *Definition {
	c := p.Clues()
	d := &Definition{
		Name: name,
		Clues: ClueSet{
			Top:    append([]int(nil), c.Top[:]...),
			Right:  append([]int(nil), c.Right[:]...),
			Bottom: append([]int(nil), c.Bottom[:]...),
			Left:   append([]int(nil), c.Left[:]...),
		},
	}
	for r := 0; r < puzzle.Size; r++ {
		for col := 0; col < puzzle.Size; col++ {
			if v := p.Cell(r, col); v != 0 {
				d.Givens = append(d.Givens, Given{Row: r, Col: col, Num: v})
			}
		}
	}
	return d
}

// =============================================================================
// Serialization API
// =============================================================================

// ReadPuzzle decodes a TOML puzzle definition and builds the puzzle.
func ReadPuzzle(r io.Reader) (*puzzle.Puzzle, error) {
	d, err := ReadDefinition(r)
	if err != nil {
		return nil, err
	}
	return d.Puzzle()
}

// ReadPuzzleFile reads a TOML puzzle file and builds the puzzle.
func ReadPuzzleFile(path string) (*puzzle.Puzzle, error) {
	d, err := ReadDefinitionFile(path)
	if err != nil {
		return nil, err
	}
	return d.Puzzle()
}

// ReadDefinition decodes a definition without building a puzzle.
func ReadDefinition(r io.Reader) (*Definition, error) {
	var d Definition
	if _, err := toml.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode puzzle definition")
	}
	return &d, nil
}

// ReadDefinitionFile reads a definition from path.
func ReadDefinitionFile(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadDefinition(f)
}

// WritePuzzle encodes the puzzle as TOML to w.
func WritePuzzle(p *puzzle.Puzzle, name string, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(FromPuzzle(p, name)); err != nil {
		return fmt.Errorf("encode puzzle: %w", err)
	}
	return nil
}

// WritePuzzleFile writes the puzzle as a TOML file with 0644
// permissions.
func WritePuzzleFile(p *puzzle.Puzzle, name, path string) error {
	var buf bytes.Buffer
	if err := WritePuzzle(p, name, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
