package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/trimcut/internal/model"
)

// fitTolerance absorbs float rounding when comparing a cut plus kerf against
// the room left on a board, so a segment of exactly BoardLength-Kerf always fits.
const fitTolerance = 1e-9

// maxSegments caps how many pieces one joined cut may be split into.
const maxSegments = 10000

// CutListMaker packs cuts onto boards of one stock profile. It is not safe
// for concurrent use: Make consumes entries from the offcut pool.
type CutListMaker struct {
	Settings model.StockSettings
	offcuts  []float64
}

// New returns a maker for the given stock. The offcut lengths are copied;
// Make draws boards from this private pool.
func New(settings model.StockSettings, offcuts []float64) *CutListMaker {
	pool := make([]float64, len(offcuts))
	copy(pool, offcuts)
	return &CutListMaker{Settings: settings, offcuts: pool}
}

// Offcuts returns the lengths still left in the pool.
func (m *CutListMaker) Offcuts() []float64 {
	out := make([]float64, len(m.offcuts))
	copy(out, m.offcuts)
	return out
}

// Make splits or rejects oversize cuts and then packs every cut onto boards
// with a greedy longest-fit-first heuristic. The input slice is not modified.
func (m *CutListMaker) Make(name string, cuts []model.Cut) (*model.CutList, error) {
	if err := m.Settings.Validate(); err != nil {
		return nil, err
	}
	for _, c := range cuts {
		if c.Length <= 0 || math.IsNaN(c.Length) || math.IsInf(c.Length, 0) {
			return nil, fmt.Errorf("cut %q length %g: %w", c.Label, c.Length, model.ErrInvalidLength)
		}
	}

	work, err := m.splitOversize(cuts)
	if err != nil {
		return nil, err
	}

	cl := model.NewCutList(name, m.Settings.Kerf)
	m.pack(cl, work)
	return cl, nil
}

// splitOversize returns a new slice in which every cut longer than a board
// allows is either rejected or replaced in place by its segments.
func (m *CutListMaker) splitOversize(cuts []model.Cut) ([]model.Cut, error) {
	boardLen := m.Settings.BoardLength
	kerf := m.Settings.Kerf

	out := make([]model.Cut, 0, len(cuts))
	for _, c := range cuts {
		if c.Length+kerf <= boardLen+fitTolerance {
			out = append(out, c)
			continue
		}
		if !m.Settings.Join {
			return nil, &model.OversizeCutError{
				Label:       c.Label,
				Length:      c.Length + kerf,
				BoardLength: boardLen,
			}
		}
		segments, err := splitCut(c, boardLen, kerf)
		if err != nil {
			return nil, err
		}
		out = append(out, segments...)
	}
	return out, nil
}

// splitCut divides an oversize cut into n = ceil((L+kerf)/board) segments,
// each at most board-kerf long; the last takes what remains. Segment IDs
// derive from the parent cut's ID.
func splitCut(c model.Cut, boardLen, kerf float64) ([]model.Cut, error) {
	maxSeg := boardLen - kerf
	if maxSeg <= 0 {
		return nil, &model.OversizeCutError{Label: c.Label, Length: c.Length + kerf, BoardLength: boardLen}
	}

	count := math.Ceil((c.Length+kerf)/boardLen - fitTolerance)
	// A large kerf can leave count segments of maxSeg short of the full length.
	if count*maxSeg < c.Length-fitTolerance {
		count = math.Ceil(c.Length/maxSeg - fitTolerance)
	}
	if math.IsNaN(count) || math.IsInf(count, 0) || count > maxSegments {
		return nil, fmt.Errorf("cut %q length %g needs more than %d segments of %g: %w",
			c.Label, c.Length, maxSegments, maxSeg, model.ErrInvalidLength)
	}
	n := int(count)

	segments := make([]model.Cut, 0, n)
	remaining := c.Length
	for i := 1; i <= n; i++ {
		seg := math.Min(remaining, maxSeg)
		if i == n {
			seg = remaining
		}
		remaining -= seg
		segments = append(segments, model.Cut{
			ID:     fmt.Sprintf("%s-%d", c.ID, i),
			Job:    c.Job,
			Label:  fmt.Sprintf("%s %d/%d", c.Label, i, n),
			Length: seg,
		})
	}
	return segments, nil
}

// pack assigns every cut to a board. Each pass places the longest unplaced
// cut that still fits the current board; when none fits a fresh board is opened.
func (m *CutListMaker) pack(cl *model.CutList, cuts []model.Cut) {
	kerf := m.Settings.Kerf
	placed := make([]bool, len(cuts))
	remaining := len(cuts)

	var board *model.Board
	for remaining > 0 {
		if board == nil {
			board = m.openBoard(cl, shortestUnplaced(cuts, placed))
		}

		next := -1
		excess := board.Excess()
		for i, c := range cuts {
			if placed[i] {
				continue
			}
			if c.Length+kerf <= excess+fitTolerance {
				if next < 0 || c.Length > cuts[next].Length {
					next = i
				}
			}
		}

		if next < 0 {
			board = nil
			continue
		}
		placed[next] = true
		board.Cuts = append(board.Cuts, cuts[next])
		remaining--
	}
}

// openBoard starts a new board. With offcuts on hand it spends the smallest
// one strictly longer than the shortest pending cut, saving longer offcuts
// for longer cuts; otherwise it uses a full-length board.
func (m *CutListMaker) openBoard(cl *model.CutList, shortest float64) *model.Board {
	best := -1
	for i, o := range m.offcuts {
		if o > shortest && (best < 0 || o < m.offcuts[best]) {
			best = i
		}
	}
	if best < 0 {
		return cl.NewBoard(m.Settings.BoardLength)
	}
	length := m.offcuts[best]
	m.offcuts = append(m.offcuts[:best], m.offcuts[best+1:]...)
	return cl.NewBoard(length)
}

func shortestUnplaced(cuts []model.Cut, placed []bool) float64 {
	shortest := math.Inf(1)
	for i, c := range cuts {
		if !placed[i] && c.Length < shortest {
			shortest = c.Length
		}
	}
	return shortest
}
