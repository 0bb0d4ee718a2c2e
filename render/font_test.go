package render

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdvanceIsPositiveAndMonotonic(t *testing.T) {
	short := DefaultFont.Advance("hi")
	long := DefaultFont.Advance("hello there")
	require.Greater(t, short, 0)
	require.Greater(t, long, short)
}

func TestWrapWidthBreaksAtWordBoundaries(t *testing.T) {
	lines := DefaultFont.WrapWidth("the quick brown fox jumps", 40)
	require.Greater(t, len(lines), 1)
	for _, l := range lines {
		require.LessOrEqual(t, DefaultFont.Advance(l), 40)
	}
}

func TestWrapWidthSingleOversizedWord(t *testing.T) {
	lines := DefaultFont.WrapWidth("supercalifragilisticexpialidocious", 10)
	require.Len(t, lines, 1, "a lone word wider than maxWidth still gets its own line")
}

func TestMeasureHeightMatchesWrappedLineCount(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	lines := DefaultFont.WrapWidth(text, 60)
	require.Equal(t, len(lines)*(DefaultFont.Height+1), DefaultFont.MeasureHeight(text, 60))
}
