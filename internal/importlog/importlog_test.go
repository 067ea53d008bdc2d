package importlog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStackLogsToTopSink(t *testing.T) {
	var s Stack
	var outer, inner []string
	s.Push(func(_ Level, msg string) { outer = append(outer, msg) })
	s.Log(LevelInfo, "from outer")

	s.Push(func(_ Level, msg string) { inner = append(inner, msg) })
	s.Log(LevelInfo, "from inner")
	s.Pop()

	s.Log(LevelInfo, "from outer again")

	require.Equal(t, []string{"from outer", "from outer again"}, outer)
	require.Equal(t, []string{"from inner"}, inner)
}

func TestStackDiscardsWithoutSink(t *testing.T) {
	var s Stack
	require.NotPanics(t, func() { s.Log(LevelWarn, "nobody listening") })
}
