package puzzle

// Incomplete is returned by CountVisible for lines that still contain
// empty cells, where a visibility count would be meaningless.
const Incomplete = -1

// CountVisible returns the number of visible buildings along line,
// viewed from its first element: a building is counted when it is
// strictly taller than every building before it, so the first entry is
// always visible. Returns Incomplete if any entry is 0.
func CountVisible(line []int) int {
	for _, h := range line {
		if h == 0 {
			return Incomplete
		}
	}
	visible, max := 0, 0
	for _, h := range line {
		if h > max {
			visible++
			max = h
		}
	}
	return visible
}

// SatisfiesClues reports whether every completed line of the grid
// matches its clues in both directions. Lines with empty cells are
// skipped rather than failed, which makes this a search prune, not a
// full-board validator; CheckWin is the success oracle.
func (p *Puzzle) SatisfiesClues() bool {
	return satisfiesClues(&p.grid, &p.clues)
}

func satisfiesClues(g *Grid, c *Clues) bool {
	for col := 0; col < Size; col++ {
		down, up, complete := columnCounts(g, col)
		if !complete {
			continue
		}
		if down != c.Top[col] || up != c.Bottom[col] {
			return false
		}
	}
	for row := 0; row < Size; row++ {
		ltr, rtl, complete := rowCounts(g, row)
		if !complete {
			continue
		}
		if ltr != c.Left[row] || rtl != c.Right[row] {
			return false
		}
	}
	return true
}

// columnCounts scans column col once in each direction. complete is
// false if the column holds any empty cell, in which case the counts are
// meaningless.
func columnCounts(g *Grid, col int) (down, up int, complete bool) {
	var maxDown, maxUp int
	for i := 0; i < Size; i++ {
		top, bottom := g[i][col], g[Size-1-i][col]
		if top == 0 {
			return 0, 0, false
		}
		if top > maxDown {
			down++
			maxDown = top
		}
		if bottom > maxUp {
			up++
			maxUp = bottom
		}
	}
	return down, up, true
}

func rowCounts(g *Grid, row int) (ltr, rtl int, complete bool) {
	var maxLTR, maxRTL int
	for i := 0; i < Size; i++ {
		left, right := g[row][i], g[row][Size-1-i]
		if left == 0 {
			return 0, 0, false
		}
		if left > maxLTR {
			ltr++
			maxLTR = left
		}
		if right > maxRTL {
			rtl++
			maxRTL = right
		}
	}
	return ltr, rtl, true
}
