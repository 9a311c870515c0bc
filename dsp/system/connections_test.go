package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chain(t *testing.T) *System {
	t.Helper()
	s := newSystem(t)
	require.NoError(t, s.AddFIR("a", []float64{1}))
	require.NoError(t, s.AddFIR("b", []float64{2}))
	require.NoError(t, s.AddIIR("c", []float64{3}, []float64{1}))
	require.NoError(t, s.AddSummator("sum", 1, 1))
	return s
}

func TestConnectChain(t *testing.T) {
	s := chain(t)
	require.NoError(t, s.Connect("b", []string{"a"}))
	require.NoError(t, s.Connect("c", []string{"b"}))

	y, err := s.ComputeBlock("c", 1)
	require.NoError(t, err)
	assert.Equal(t, 6.0, y)

	src, err := s.Sources("c")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, src)

	src, err = s.Sources("a")
	require.NoError(t, err)
	assert.Nil(t, src)

	assert.Equal(t, []string{"a", "sum", "b", "c"}, s.Order())
}

func TestConnectReplaces(t *testing.T) {
	s := chain(t)
	require.NoError(t, s.Connect("c", []string{"a"}))
	require.NoError(t, s.Connect("c", []string{"b"}))

	y, err := s.ComputeBlock("c", 1)
	require.NoError(t, err)
	assert.Equal(t, 6.0, y)
	assert.Equal(t, map[string][]string{"c": {"b"}}, s.Connections())
}

func TestConnectEmptyClears(t *testing.T) {
	s := chain(t)
	require.NoError(t, s.Connect("c", []string{"b"}))
	require.NoError(t, s.Connect("c", nil))

	assert.Empty(t, s.Connections())

	y, err := s.ComputeBlock("c", 1)
	require.NoError(t, err)
	assert.Equal(t, 3.0, y)
}

func TestConnectUnknownConsumer(t *testing.T) {
	s := chain(t)
	require.ErrorIs(t, s.Connect("ghost", []string{"a"}), ErrNameNotFound)
	assert.Empty(t, s.Connections())
}

func TestConnectDanglingLeavesTableUnchanged(t *testing.T) {
	s := chain(t)
	require.NoError(t, s.Connect("sum", []string{"a", "b"}))
	before := s.Connections()

	err := s.Connect("sum", []string{"a", "nope"})
	require.ErrorIs(t, err, ErrDanglingConnection)
	assert.Contains(t, err.Error(), `"nope"`)
	assert.Equal(t, before, s.Connections())

	err = s.Connect("c", []string{"nope"})
	require.ErrorIs(t, err, ErrDanglingConnection)
	assert.Equal(t, before, s.Connections())
}

func TestConnectArity(t *testing.T) {
	s := chain(t)

	require.ErrorIs(t, s.Connect("sum", []string{"a"}), ErrDimensionMismatch)
	require.ErrorIs(t, s.Connect("sum", []string{"a", "b", "c"}), ErrDimensionMismatch)
	require.ErrorIs(t, s.Connect("c", []string{"a", "b"}), ErrDimensionMismatch)
	assert.Empty(t, s.Connections())
}

func TestConnectRejectsCycle(t *testing.T) {
	s := chain(t)
	require.NoError(t, s.Connect("b", []string{"a"}))
	require.NoError(t, s.Connect("c", []string{"b"}))
	before := s.Connections()

	require.ErrorIs(t, s.Connect("a", []string{"c"}), ErrCycle)
	require.ErrorIs(t, s.Connect("a", []string{"a"}), ErrCycle)
	require.ErrorIs(t, s.Connect("sum", []string{"sum", "a"}), ErrCycle)
	assert.Equal(t, before, s.Connections())

	y, err := s.ComputeBlock("c", 1)
	require.NoError(t, err)
	assert.Equal(t, 6.0, y)
}

func TestSharedSourceAdvancesOncePerTick(t *testing.T) {
	s := newSystem(t)
	// Two-tap FIR: its output depends on how often it has been fed.
	require.NoError(t, s.AddFIR("src", []float64{1, 10}))
	require.NoError(t, s.AddSummator("sum", 1, 1))
	require.NoError(t, s.Connect("sum", []string{"src", "src"}))

	out := make([]float64, 3)
	require.NoError(t, s.ProcessSignal("sum", []float64{1, 2, 3}, out))

	// src yields 1, 12, 23.
	assert.Equal(t, []float64{2, 24, 46}, out)
	b, err := s.Block("src")
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 2}, b.History())
}

func TestDiamond(t *testing.T) {
	s := newSystem(t)
	require.NoError(t, s.AddFIR("in", []float64{1, 1}))
	require.NoError(t, s.AddFIR("left", []float64{2}))
	require.NoError(t, s.AddIIR("right", []float64{1}, []float64{2}))
	require.NoError(t, s.AddSummator("out", 1, -1))
	require.NoError(t, s.Connect("left", []string{"in"}))
	require.NoError(t, s.Connect("right", []string{"in"}))
	require.NoError(t, s.Connect("out", []string{"left", "right"}))

	assert.Equal(t, []string{"in", "left", "right", "out"}, s.Order())

	out := make([]float64, 3)
	require.NoError(t, s.ProcessSignal("out", []float64{2, 2, 2}, out))

	// in yields 2, 4, 4; out = 2*in - in/2.
	assert.Equal(t, []float64{3, 6, 6}, out)
}

func TestEvaluatingUpstreamOnlyLeavesDownstreamFresh(t *testing.T) {
	s := chain(t)
	require.NoError(t, s.Connect("b", []string{"a"}))

	_, err := s.ComputeBlock("a", 1)
	require.NoError(t, err)

	st, _ := s.State("b")
	assert.Equal(t, "fresh", st.String())
}
