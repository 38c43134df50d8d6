// Package sheet implements the dependency-tracked cell table: a
// sparse two-dimensional table of Cells, the reverse-dependency graph
// used for cache invalidation, cycle detection over the Cells' own
// forward references, and the printable bounding box. The formula grammar itself lives in package formula;
// Sheet only ever calls the Formula contract (Evaluate, Expression,
// ReferencedCells) it exposes.
package sheet

import (
	"fmt"
	"strconv"

	"github.com/kalexmills/sheetengine/formula"
	"github.com/kalexmills/sheetengine/position"
	"golang.org/x/exp/maps"
)

// Sheet is a sparse table of Cells plus the bookkeeping needed to
// evaluate formulas lazily and keep their caches coherent.
type Sheet struct {
	// table holds every occupied position's Cell. Absent entries are
	// semantically Empty.
	table map[position.Position]*Cell
	// occupied is the set of positions currently holding a Cell; used
	// to recompute the bounding box in O(|occupied|) on ClearCell.
	occupied map[position.Position]struct{}
	// dependents maps a position p to the set of positions whose
	// Formula expression references p. It is the reverse of the
	// forward "references" relation each Cell exposes. Entries may
	// exist for positions that have never been assigned.
	dependents map[position.Position]map[position.Position]struct{}
	// rows, cols form the printable bounding box: one past the
	// largest occupied row/column, or (0,0) when empty.
	rows, cols int
}

// New returns an empty Sheet.
func New() *Sheet {
	return &Sheet{
		table:      make(map[position.Position]*Cell),
		occupied:   make(map[position.Position]struct{}),
		dependents: make(map[position.Position]map[position.Position]struct{}),
	}
}

// SetCell parses and installs text at p. Any failure — an invalid
// position, a formula that fails to parse, or a formula that would
// introduce a circular dependency — leaves the Sheet exactly as it
// was before the call.
func (s *Sheet) SetCell(p position.Position, text string) error {
	if !p.IsValid() {
		return fmt.Errorf("%w: %s", ErrPosition, p)
	}

	prospective, err := newCell(text)
	if err != nil {
		return err
	}

	refs := prospective.ReferencedCells()
	if s.hasCycle(p, refs) {
		return fmt.Errorf("%w: assigning %s would reference itself transitively", ErrCircular, p)
	}

	if old, ok := s.table[p]; ok {
		s.invalidate(p)
		for _, oldRef := range old.ReferencedCells() {
			delete(s.dependents[oldRef], p)
		}
	}

	s.table[p] = prospective

	for _, ref := range refs {
		// An out-of-range reference gets no implicit cell; Resolve
		// reports it as #REF! when the formula is evaluated.
		if _, ok := s.occupied[ref]; !ok && ref.IsValid() {
			if err := s.SetCell(ref, ""); err != nil {
				return fmt.Errorf("sheet: materializing implicit empty cell at %s: %w", ref, err)
			}
		}
		if s.dependents[ref] == nil {
			s.dependents[ref] = make(map[position.Position]struct{})
		}
		s.dependents[ref][p] = struct{}{}
	}

	s.occupied[p] = struct{}{}
	s.growSize(p)
	return nil
}

// GetCell returns a non-owning handle to the Cell at p, or nil if p
// is outside the printable bounding box or has never been assigned.
func (s *Sheet) GetCell(p position.Position) (*Cell, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrPosition, p)
	}
	if p.Row >= s.rows || p.Col >= s.cols {
		return nil, nil
	}
	c, ok := s.table[p]
	if !ok {
		return nil, nil
	}
	return c, nil
}

// ClearCell removes the Cell at p. It is a no-op if p is outside the
// bounding box or already empty.
//
// Dependents of p are invalidated (their caches may have read a
// nonzero value from p that implicitly becomes 0 once p is cleared),
// but p's own outgoing links are left in dependents — a stale
// forward edge only costs an extra, harmless invalidation the next
// time its target changes, never an incorrect value.
func (s *Sheet) ClearCell(p position.Position) error {
	if !p.IsValid() {
		return fmt.Errorf("%w: %s", ErrPosition, p)
	}
	if p.Row >= s.rows || p.Col >= s.cols {
		return nil
	}
	if _, ok := s.table[p]; !ok {
		return nil
	}

	s.invalidate(p)
	delete(s.table, p)
	delete(s.occupied, p)

	if p.Row == s.rows-1 || p.Col == s.cols-1 {
		s.recomputeSize()
	}
	return nil
}

// PrintableSize returns the bounding box (rows, cols): one past the
// largest occupied row and column, or (0,0) when the Sheet is empty.
func (s *Sheet) PrintableSize() (rows, cols int) {
	return s.rows, s.cols
}

// Resolve implements the cell-resolution contract formulas evaluate
// against: an absent or Empty cell yields 0, a numeric cell's value
// passes through, a string cell is parsed as a number (failure raises
// #VALUE!), and an error-valued cell propagates its error. Adapters
// holding a Sheet (the printing routines, primarily) use it directly
// together with Cell.GetValue.
func (s *Sheet) Resolve(p position.Position) (float64, error) {
	if !p.IsValid() {
		return 0, fmt.Errorf("%w: reference to %s is out of range", formula.ErrRef, p)
	}
	c, ok := s.table[p]
	if !ok {
		return 0, nil
	}
	v := c.GetValue(s.Resolve)
	switch v.Kind {
	case KindNumber:
		return v.Number, nil
	case KindText:
		n, err := strconv.ParseFloat(v.Text, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", formula.ErrValue, v.Text)
		}
		return n, nil
	default: // KindError
		return 0, v.Err
	}
}

// hasCycle reports whether any position reachable from start, by
// following the forward references of currently installed Formula
// cells, is target. The candidate assignment at target is not yet
// installed, so its own edges are exactly start.
func (s *Sheet) hasCycle(target position.Position, start []position.Position) bool {
	if len(start) == 0 {
		return false
	}
	visited := make(map[position.Position]struct{})
	queue := append([]position.Position(nil), start...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == target {
			return true
		}
		if _, seen := visited[cur]; seen {
			continue
		}
		visited[cur] = struct{}{}
		if c, ok := s.table[cur]; ok {
			queue = append(queue, c.ReferencedCells()...)
		}
	}
	return false
}

// invalidate performs a breadth-first traversal of dependents starting
// at p, dropping the cached Formula result of every cell reached
// (including p itself). The visited set bounds the work and protects
// against any pre-existing stale edges in dependents.
func (s *Sheet) invalidate(p position.Position) {
	visited := make(map[position.Position]struct{})
	queue := []position.Position{p}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if _, seen := visited[cur]; seen {
			continue
		}
		visited[cur] = struct{}{}
		if c, ok := s.table[cur]; ok {
			c.InvalidateCache()
		}
		for dep := range s.dependents[cur] {
			queue = append(queue, dep)
		}
	}
}

func (s *Sheet) growSize(p position.Position) {
	if p.Row+1 > s.rows {
		s.rows = p.Row + 1
	}
	if p.Col+1 > s.cols {
		s.cols = p.Col + 1
	}
}

// recomputeSize rebuilds the bounding box from scratch; called only
// when ClearCell removes a cell that sat on the frontier.
func (s *Sheet) recomputeSize() {
	if len(s.occupied) == 0 {
		s.rows, s.cols = 0, 0
		return
	}
	maxRow, maxCol := 0, 0
	for _, p := range maps.Keys(s.occupied) {
		if p.Row+1 > maxRow {
			maxRow = p.Row + 1
		}
		if p.Col+1 > maxCol {
			maxCol = p.Col + 1
		}
	}
	s.rows, s.cols = maxRow, maxCol
}
