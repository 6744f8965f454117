package searchctl_test

import (
	"context"
	"testing"
	"time"

	"github.com/blackriver/jieqi/pkg/board"
	"github.com/blackriver/jieqi/pkg/board/fen"
	"github.com/blackriver/jieqi/pkg/eval"
	"github.com/blackriver/jieqi/pkg/search"
	"github.com/blackriver/jieqi/pkg/search/searchctl"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, text string) *board.Board {
	t.Helper()
	b, err := fen.Decode(text)
	require.NoError(t, err)
	return b
}

func TestIterativePublishesCompletedDepthsOnly(t *testing.T) {
	b := mustDecode(t, "4k4/9/9/9/4c4/4R4/9/9/9/4K4 -:- r r")

	launcher := searchctl.Iterative{
		Search: search.AlphaBeta{Eval: eval.Standard{}},
		Eval:   eval.Standard{},
	}

	handle, out := launcher.Launch(context.Background(), b, board.Red, searchctl.Options{
		DepthLimit: lang.Some(2),
	})

	var lastDepth int
	for pv := range out {
		assert.Greater(t, pv.Depth, lastDepth, "depths must publish monotonically")
		lastDepth = pv.Depth
		assert.NotEmpty(t, pv.Ranked)
	}
	assert.Equal(t, 2, lastDepth)

	final := handle.Halt()
	assert.Equal(t, 2, final.Depth)
	assert.Equal(t, board.Move{Action: board.MovePlain, From: board.NewSquare(4, 4), To: board.NewSquare(5, 4)}, final.Ranked[0].Move)
}

func TestHaltBeforeAnyDepthReturnsStaticRanking(t *testing.T) {
	b := mustDecode(t, fen.Initial)

	launcher := searchctl.Iterative{
		Search: search.AlphaBeta{Eval: eval.Standard{}},
		Eval:   eval.Standard{},
	}

	handle, _ := launcher.Launch(context.Background(), b, board.Red, searchctl.Options{
		TimeBudget: lang.Some(0 * time.Millisecond),
	})

	pv := handle.Halt()
	assert.Equal(t, 0, pv.Depth)
	assert.NotEmpty(t, pv.Ranked)
}

func TestOptionsN(t *testing.T) {
	b := mustDecode(t, fen.Initial)

	launcher := searchctl.Iterative{
		Search: search.AlphaBeta{Eval: eval.Standard{}},
		Eval:   eval.Standard{},
	}

	handle, out := launcher.Launch(context.Background(), b, board.Red, searchctl.Options{
		DepthLimit: lang.Some(1),
		N:          3,
	})
	for range out {
	}

	pv := handle.Halt()
	assert.LessOrEqual(t, len(pv.Ranked), 3)
}
