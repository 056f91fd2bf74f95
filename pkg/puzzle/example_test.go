package puzzle_test

import (
	"context"
	"fmt"

	"github.com/skylinelabs/skyline/pkg/puzzle"
)

func ExampleCountVisible() {
	fmt.Println(puzzle.CountVisible([]int{3, 1, 4, 1, 5, 9}))
	fmt.Println(puzzle.CountVisible([]int{6, 5, 4, 3, 2, 1}))
	fmt.Println(puzzle.CountVisible([]int{1, 0, 3, 4, 5, 6}))
	// Output:
	// 4
	// 1
	// -1
}

func ExamplePuzzle_Solve() {
	p := puzzle.NewWithClues(puzzle.DefaultClues())
	solved, err := p.Solve(context.Background())
	if err != nil {
		fmt.Println("fault:", err)
		return
	}
	fmt.Println(solved, p.CheckWin())
	// Output: true true
}

func ExamplePuzzle_MakeMove() {
	p := puzzle.NewWithClues(puzzle.DefaultClues())
	fmt.Println(p.MakeMove(0, 0, 3)) // free cell
	fmt.Println(p.MakeMove(0, 5, 3)) // same row, same height
	// Output:
	// true
	// false
}
