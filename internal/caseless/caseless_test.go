package caseless

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEqualFolding(t *testing.T) {
	require.True(t, Equal("FT", "ft"))
	require.True(t, Equal("Ft", "fT"))
	require.False(t, Equal("ft", "vrc6"))
}

func TestSetAddPreservesFirstSeenCasing(t *testing.T) {
	var s Set
	s.Add("Percussion")
	s.Add("PERCUSSION")
	s.Add("melody")

	require.Equal(t, 2, s.Len())
	require.True(t, s.Has("percussion"))
	require.True(t, s.Has("MELODY"))
	require.ElementsMatch(t, []string{"melody", "Percussion"}, s.Values())
}

func TestNewSetDeduplicatesCaseInsensitively(t *testing.T) {
	s := NewSet("ft", "FT", "vrc6")
	require.Equal(t, 2, s.Len())
}
