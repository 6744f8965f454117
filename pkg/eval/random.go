package eval

import (
	"math/rand"

	"github.com/blackriver/jieqi/pkg/board"
)

// Random is a randomized noise term, used to break ties between otherwise
// equal moves and to give weaker engine profiles some variety. limit bounds
// the noise magnitude to [-limit/2, limit/2] in score points; a non-positive
// limit disables it entirely.
type Random struct {
	rand  *rand.Rand
	limit int
}

func NewRandom(limit int, seed int64) Random {
	return Random{
		limit: limit,
		rand:  rand.New(rand.NewSource(seed)),
	}
}

func (n Random) Noise() Score {
	if n.limit <= 0 {
		return 0
	}
	return Score(n.rand.Intn(n.limit) - n.limit/2)
}

// Noisy decorates an Evaluator with Rand's tie-breaking noise, added to the
// wrapped evaluator's score.
type Noisy struct {
	Evaluator
	Rand Random
}

func (n Noisy) Evaluate(b *board.Board, pov board.Color) Score {
	return n.Evaluator.Evaluate(b, pov) + n.Rand.Noise()
}
