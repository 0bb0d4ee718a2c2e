package render

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionsHas(t *testing.T) {
	o := ShowCreatures | ShowItems
	require.True(t, o.Has(ShowCreatures))
	require.True(t, o.Has(ShowItems))
	require.False(t, o.Has(ShowMissiles))
	require.True(t, o.Has(ShowCreatures|ShowItems))
}

func TestDefaultOptionsEnablesEverything(t *testing.T) {
	require.True(t, DefaultOptions.Has(ShowCreatures))
	require.True(t, DefaultOptions.Has(ShowSpeechBubbles))
	require.True(t, DefaultOptions.Has(ShowClientBackground))
}
