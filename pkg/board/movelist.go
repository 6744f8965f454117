package board

import (
	"container/heap"
	"fmt"
	"math"
	"sort"
)

// MovePriority represents a move ordering priority: higher is searched first.
type MovePriority int32

// MovePriorityFn assigns a priority to a move.
type MovePriorityFn func(move Move) MovePriority

// MovePredicateFn decides whether a move should be explored at all.
type MovePredicateFn func(move Move) bool

// AnyMove accepts every move.
func AnyMove(Move) bool {
	return true
}

// First puts the given move first (as the transposition-table best move
// would be); otherwise defers to fn.
func First(first Move, fn MovePriorityFn) MovePriorityFn {
	return func(m Move) MovePriority {
		if first.Equals(m) {
			return math.MaxInt32
		}
		return fn(m)
	}
}

// SortByPriority sorts moves by descending priority, preserving relative
// order for equal priorities.
func SortByPriority(moves []Move, fn MovePriorityFn) {
	sort.SliceStable(moves, func(i, j int) bool {
		return fn(moves[i]) > fn(moves[j])
	})
}

// MoveList is a move priority queue used for move ordering during search.
type MoveList struct {
	h moveHeap
}

// NewMoveList returns a new move list with priorities assigned by fn.
func NewMoveList(moves []Move, fn MovePriorityFn) *MoveList {
	h := make(moveHeap, len(moves))
	for i, m := range moves {
		h[i] = elm{m: m, val: fn(m), seq: i}
	}
	heap.Init(&h)
	return &MoveList{h: h}
}

// Next returns the next move: the highest priority move remaining, ties
// broken by generation order.
func (ml *MoveList) Next() (Move, bool) {
	if ml.Size() == 0 {
		return Move{}, false
	}
	ret := heap.Pop(&ml.h).(elm)
	return ret.m, true
}

func (ml *MoveList) Size() int {
	return ml.h.Len()
}

func (ml *MoveList) String() string {
	if ml.Size() == 0 {
		return "[size=0]"
	}
	return fmt.Sprintf("[top=%v, size=%v]", ml.h[0].m, ml.Size())
}

type elm struct {
	m   Move
	val MovePriority
	seq int
}

type moveHeap []elm

func (h moveHeap) Len() int { return len(h) }

func (h moveHeap) Less(i, j int) bool {
	if h[i].val != h[j].val {
		return h[i].val > h[j].val
	}
	return h[i].seq < h[j].seq
}

func (h moveHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *moveHeap) Push(x interface{}) {
	*h = append(*h, x.(elm))
}

func (h *moveHeap) Pop() interface{} {
	old := *h
	n := len(old)
	ret := old[n-1]
	*h = old[0 : n-1]
	return ret
}
