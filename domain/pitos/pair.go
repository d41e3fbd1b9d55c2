package pitos

import "fmt"

// Pair is an ordered pair of 1-based order-statistic indices.
// (a,b) and (b,a) select different sub-statistics.
type Pair struct {
	Start  int `json:"start"`
	Finish int `json:"finish"`
}

// NewPair builds a pair from its two indices
func NewPair(start, finish int) Pair {
	return Pair{Start: start, Finish: finish}
}

func (p Pair) String() string {
	return fmt.Sprintf("(%d,%d)", p.Start, p.Finish)
}

// Direction classifies which sub-statistic the pair selects
type Direction int

const (
	Diagonal Direction = iota
	Forward
	Backward
)

func (d Direction) String() string {
	switch d {
	case Diagonal:
		return "diagonal"
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	}
	return "unknown"
}

// Direction reports whether the pair is diagonal, forward or backward
func (p Pair) Direction() Direction {
	switch {
	case p.Start == p.Finish:
		return Diagonal
	case p.Start < p.Finish:
		return Forward
	default:
		return Backward
	}
}

// InRange reports whether both indices lie in [1, n]
func (p Pair) InRange(n int) bool {
	return p.Start >= 1 && p.Start <= n && p.Finish >= 1 && p.Finish <= n
}

// PairSequence is an ordered list of pairs. Duplicates are allowed.
// A nil sequence asks the engine to synthesize one.
type PairSequence []Pair

// PairsFromIndices converts [][2]int style input into a PairSequence.
func PairsFromIndices(idx [][2]int) PairSequence {
	if idx == nil {
		return nil
	}
	seq := make(PairSequence, len(idx))
	for i, p := range idx {
		seq[i] = Pair{Start: p[0], Finish: p[1]}
	}
	return seq
}

// Marginals returns the diagonal block (1,1), (2,2), ..., (n,n).
func Marginals(n int) PairSequence {
	if n <= 0 {
		return PairSequence{}
	}
	seq := make(PairSequence, n)
	for k := 1; k <= n; k++ {
		seq[k-1] = Pair{Start: k, Finish: k}
	}
	return seq
}
