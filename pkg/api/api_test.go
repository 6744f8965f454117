package api_test

import (
	"context"
	"testing"

	"github.com/blackriver/jieqi/pkg/api"
	"github.com/blackriver/jieqi/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e, err := engine.New(context.Background(), "jieqi-test", "nobody")
	require.NoError(t, err)
	return e
}

func TestDispatchMoves(t *testing.T) {
	e := newTestEngine(t)
	resp := api.Dispatch(context.Background(), e, api.Request{
		Cmd: "moves",
		FEN: "4k4/9/9/9/4c4/4R4/9/9/9/4K4 -:- r r",
	})
	require.True(t, resp.OK)
	assert.Contains(t, resp.Moves, "e4e5")
}

func TestDispatchEval(t *testing.T) {
	e := newTestEngine(t)
	resp := api.Dispatch(context.Background(), e, api.Request{
		Cmd: "eval",
		FEN: "4k4/9/9/9/4c4/4R4/9/9/9/4K4 -:- r r",
	})
	require.True(t, resp.OK)
	require.NotNil(t, resp.Eval)
}

func TestDispatchBestFindsTheCapture(t *testing.T) {
	e := newTestEngine(t)
	depth := 2
	resp := api.Dispatch(context.Background(), e, api.Request{
		Cmd:   "best",
		FEN:   "4k4/9/9/9/4c4/4R4/9/9/9/4K4 -:- r r",
		Depth: &depth,
	})
	require.True(t, resp.OK)
	require.NotEmpty(t, resp.Ranked)
	assert.Equal(t, "e4e5", resp.Ranked[0].Move)
	require.NotNil(t, resp.Stats)
	assert.Equal(t, 2, resp.Stats.DepthReached)
}

func TestDispatchSearchIncludesDebugTree(t *testing.T) {
	e := newTestEngine(t)
	depth := 1
	n := 3
	resp := api.Dispatch(context.Background(), e, api.Request{
		Cmd:   "search",
		FEN:   "4k4/9/9/9/4c4/4R4/9/9/9/4K4 -:- r r",
		Depth: &depth,
		N:     &n,
	})
	require.True(t, resp.OK)
	require.NotNil(t, resp.DebugTree)
	assert.LessOrEqual(t, len(resp.DebugTree.RootMoves), n)
}

func TestDispatchUnknownCmd(t *testing.T) {
	e := newTestEngine(t)
	resp := api.Dispatch(context.Background(), e, api.Request{Cmd: "bogus"})
	assert.False(t, resp.OK)
	assert.NotEmpty(t, resp.Error)
}

func TestDispatchInvalidFEN(t *testing.T) {
	e := newTestEngine(t)
	resp := api.Dispatch(context.Background(), e, api.Request{Cmd: "moves", FEN: "garbage"})
	assert.False(t, resp.OK)
	assert.NotEmpty(t, resp.Error)
}
