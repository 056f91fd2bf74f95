// Package puzzle implements a Skyscrapers puzzle engine.
//
// A Skyscrapers puzzle is a 6x6 Latin square with visibility clues: every
// row and column contains each height 1-6 exactly once, and each clue on
// the border states how many buildings are visible looking into that row
// or column from that side (a building is visible when it is taller than
// everything in front of it).
//
// The package provides the grid and clue data model, move validation,
// visibility counting, and two backtracking solvers sharing one search
// body: an MRV (minimum remaining values) heuristic and a baseline
// first-empty-cell scan. Searches are instrumented with node and
// backtrack counters and support cooperative cancellation through
// context.Context.
//
// The engine is deliberately dependency-free. Rendering, serialization
// and transport live in wrapper packages ([pkg/puzzlefile], [pkg/trace],
// the CLI and the HTTP server) which observe the search through the
// optional [Tracer] hook or the iterative [Stepper].
package puzzle
