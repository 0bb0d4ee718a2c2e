package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTripletOrdering(t *testing.T) {
	require.True(t, (Triplet{Major: 8, Minor: 55}).Less(Triplet{Major: 9, Minor: 0}))
	require.True(t, (Triplet{Major: 9, Minor: 0}).AtLeast(9, 0))
	require.False(t, (Triplet{Major: 8, Minor: 99}).AtLeast(9, 0))
	require.Equal(t, "7.72", Triplet{Major: 7, Minor: 72}.String())
	require.Equal(t, "10.98.1", Triplet{Major: 10, Minor: 98, Preview: 1}.String())
}

func TestProfileBaseline(t *testing.T) {
	p := New(Triplet{Major: 7, Minor: 55})
	require.False(t, p.Features.SpriteIndexU32)
	require.False(t, p.Features.AnimationPhases)
	require.Equal(t, 100, p.Features.CapacityDivisor)

	prop, ok := p.PropertyOf(0x00)
	require.True(t, ok)
	require.Equal(t, PropertyGround, prop)
}

func TestProfileDeltasAccumulate(t *testing.T) {
	p := New(Triplet{Major: 10, Minor: 98})

	require.True(t, p.Features.SpriteIndexU32)
	require.True(t, p.Features.AnimationPhases)
	require.True(t, p.Features.FrameGroups)
	require.True(t, p.Protocol.Has(ProtocolMounts))
	require.True(t, p.Protocol.Has(ProtocolPreviewByte))
	require.False(t, p.Features.IconBar)
}

func TestHazyNewTileStuffGate(t *testing.T) {
	before := New(Triplet{Major: 8, Minor: 99})
	require.False(t, before.Protocol.Has(ProtocolHazyNewTileStuff))

	after := New(Triplet{Major: 9, Minor: 0})
	require.True(t, after.Protocol.Has(ProtocolHazyNewTileStuff))
}

func TestProfileIsolatedBetweenInstances(t *testing.T) {
	a := New(Triplet{Major: 7, Minor: 55})
	b := New(Triplet{Major: 11, Minor: 0})

	_, ok := a.PropertyOf(0xFF)
	require.True(t, ok)

	require.Equal(t, 1, b.Features.CapacityDivisor)
	require.Equal(t, 100, a.Features.CapacityDivisor)
}

func TestMessageModeLookup(t *testing.T) {
	p := New(Triplet{Major: 7, Minor: 55})
	mode, ok := p.SpeakMode(0x01)
	require.True(t, ok)
	require.Equal(t, MessageSay, mode)

	_, ok = p.SpeakMode(0xEE)
	require.False(t, ok)
}

func TestPictureIndexLookup(t *testing.T) {
	p := New(Triplet{Major: 7, Minor: 55})
	idx, ok := p.PictureIndex(PictureClientBackground)
	require.True(t, ok)
	require.Equal(t, 1, idx)
}
