package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/skylinelabs/skyline/pkg/errors"
	"github.com/skylinelabs/skyline/pkg/puzzle"
)

// =============================================================================
// Wire Types
// =============================================================================

type clueSet struct {
	Top    []int `json:"top"`
	Right  []int `json:"right"`
	Bottom []int `json:"bottom"`
	Left   []int `json:"left"`
}

type gameState struct {
	ID    string  `json:"id"`
	Name  string  `json:"name,omitempty"`
	Grid  [][]int `json:"grid"`
	Clues clueSet `json:"clues"`
	Win   bool    `json:"win"`
}

type createReq struct {
	Name  string   `json:"name,omitempty"`
	Clues *clueSet `json:"clues,omitempty"`
}

type moveReq struct {
	Row int `json:"row"`
	Col int `json:"col"`
	Num int `json:"num"`
}

type moveResp struct {
	OK   bool    `json:"ok"`
	Win  bool    `json:"win"`
	Grid [][]int `json:"grid"`
}

type clearReq struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type cluesReq struct {
	Side   string `json:"side"`
	Values []int  `json:"values"`
}

type solveReq struct {
	Heuristic string `json:"heuristic,omitempty"`
}

type solveResp struct {
	Solved bool       `json:"solved"`
	Grid   [][]int    `json:"grid"`
	Stats  statsBlock `json:"stats"`
}

type statsBlock struct {
	NodesExplored int    `json:"nodesExplored"`
	Backtracks    int    `json:"backtracks"`
	ElapsedMs     int64  `json:"elapsedMs"`
	Report        string `json:"report"`
}

type errorResp struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest,
				errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body"))
			return
		}
	}

	var p *puzzle.Puzzle
	if req.Clues != nil {
		clues, err := toEngineClues(*req.Clues)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		p = puzzle.NewWithClues(clues)
	} else {
		p = puzzle.New()
	}

	g := &game{puzzle: p, name: req.Name, created: time.Now()}
	id := s.insert(g)
	s.logger.Info("game created", "id", id, "name", req.Name)
	writeJSON(w, http.StatusCreated, stateOf(id, g))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	g := s.lookup(id)
	if g == nil {
		writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeGameNotFound, "no game %s", id))
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	writeJSON(w, http.StatusOK, stateOf(id, g))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.remove(id) {
		writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeGameNotFound, "no game %s", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	g := s.lookup(id)
	if g == nil {
		writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeGameNotFound, "no game %s", id))
		return
	}
	var req moveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest,
			errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body"))
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	ok := g.puzzle.MakeMove(req.Row, req.Col, req.Num)
	writeJSON(w, http.StatusOK, moveResp{
		OK:   ok,
		Win:  g.puzzle.CheckWin(),
		Grid: gridRows(g.puzzle.Grid()),
	})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	g := s.lookup(id)
	if g == nil {
		writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeGameNotFound, "no game %s", id))
		return
	}
	var req clearReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest,
			errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body"))
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.puzzle.ClearCell(req.Row, req.Col)
	writeJSON(w, http.StatusOK, moveResp{OK: true, Grid: gridRows(g.puzzle.Grid())})
}

func (s *Server) handleClues(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	g := s.lookup(id)
	if g == nil {
		writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeGameNotFound, "no game %s", id))
		return
	}
	var req cluesReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest,
			errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body"))
		return
	}
	side, ok := puzzle.ParseSide(req.Side)
	if !ok {
		writeError(w, http.StatusBadRequest,
			errors.New(errors.ErrCodeInvalidClue, "unknown side %q", req.Side))
		return
	}
	if len(req.Values) != puzzle.Size {
		writeError(w, http.StatusBadRequest,
			errors.New(errors.ErrCodeInvalidClue, "%d clue values, want %d", len(req.Values), puzzle.Size))
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for i, v := range req.Values {
		if !g.puzzle.SetClue(side, i, v) {
			writeError(w, http.StatusBadRequest,
				errors.New(errors.ErrCodeInvalidClue, "clue %d at %s[%d] out of range", v, side, i))
			return
		}
	}
	writeJSON(w, http.StatusOK, stateOf(id, g))
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	g := s.lookup(id)
	if g == nil {
		writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeGameNotFound, "no game %s", id))
		return
	}
	var req solveReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest,
				errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body"))
			return
		}
	}
	h, ok := puzzle.ParseHeuristic(req.Heuristic)
	if !ok {
		writeError(w, http.StatusBadRequest,
			errors.New(errors.ErrCodeInvalidInput, "unknown heuristic %q", req.Heuristic))
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// The request context cancels the search if the client goes away.
	var solved bool
	var err error
	if h == puzzle.HeuristicFirstEmpty {
		solved, err = g.puzzle.SolveSimple(r.Context())
	} else {
		solved, err = g.puzzle.Solve(r.Context())
	}
	if err != nil {
		s.logger.Error("solve failed", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError,
			errors.Wrap(errors.ErrCodeInternal, err, "solve game %s", id))
		return
	}

	stats := g.puzzle.Stats()
	writeJSON(w, http.StatusOK, solveResp{
		Solved: solved,
		Grid:   gridRows(g.puzzle.Grid()),
		Stats: statsBlock{
			NodesExplored: stats.NodesExplored,
			Backtracks:    stats.Backtracks,
			ElapsedMs:     stats.Elapsed.Milliseconds(),
			Report:        stats.Report(),
		},
	})
}

// =============================================================================
// Helpers
// =============================================================================

func stateOf(id string, g *game) gameState {
	c := g.puzzle.Clues()
	return gameState{
		ID:   id,
		Name: g.name,
		Grid: gridRows(g.puzzle.Grid()),
		Clues: clueSet{
			Top:    c.Top[:],
			Right:  c.Right[:],
			Bottom: c.Bottom[:],
			Left:   c.Left[:],
		},
		Win: g.puzzle.CheckWin(),
	}
}

func gridRows(g puzzle.Grid) [][]int {
	rows := make([][]int, puzzle.Size)
	for r := 0; r < puzzle.Size; r++ {
		rows[r] = append([]int(nil), g[r][:]...)
	}
	return rows
}

func toEngineClues(c clueSet) (puzzle.Clues, error) {
	var out puzzle.Clues
	sides := []struct {
		name   string
		values []int
		dst    *[puzzle.Size]int
	}{
		{"top", c.Top, &out.Top},
		{"right", c.Right, &out.Right},
		{"bottom", c.Bottom, &out.Bottom},
		{"left", c.Left, &out.Left},
	}
	for _, side := range sides {
		if len(side.values) != puzzle.Size {
			return out, errors.New(errors.ErrCodeInvalidClue,
				"clues.%s has %d entries, want %d", side.name, len(side.values), puzzle.Size)
		}
		for i, v := range side.values {
			if v < 0 || v > puzzle.Size {
				return out, errors.New(errors.ErrCodeInvalidClue,
					"clues.%s[%d] = %d, want 0..%d", side.name, i, v, puzzle.Size)
			}
			side.dst[i] = v
		}
	}
	return out, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResp{Error: errorBody{
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
	}})
}
