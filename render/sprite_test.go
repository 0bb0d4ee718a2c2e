package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kelindar/tibiavcr/assets"
	"github.com/kelindar/tibiavcr/gamestate"
	"github.com/kelindar/tibiavcr/version"
)

func TestStackBucketModern(t *testing.T) {
	require.Equal(t, 0, stackBucket(1, true))
	require.Equal(t, 0, stackBucket(0, true))
	require.Equal(t, 3, stackBucket(4, true))
	require.Equal(t, 4, stackBucket(5, true))
	require.Equal(t, 4, stackBucket(9, true))
	require.Equal(t, 6, stackBucket(49, true))
	require.Equal(t, len(stackableBuckets), stackBucket(100, true))
}

func TestStackBucketLegacy(t *testing.T) {
	require.Equal(t, 0, stackBucket(1, false))
	require.Equal(t, 1, stackBucket(2, false))
	require.Equal(t, len(stackableBuckets), stackBucket(100, false))
}

func TestFloorModAlwaysNonNegative(t *testing.T) {
	require.Equal(t, 0, floorMod(0, 4))
	require.Equal(t, 3, floorMod(-1, 4))
	require.Equal(t, 1, floorMod(5, 4))
	require.Equal(t, 0, floorMod(-4, 4))
}

func TestMax1(t *testing.T) {
	require.Equal(t, 1, max1(0))
	require.Equal(t, 1, max1(-5))
	require.Equal(t, 3, max1(3))
}

func TestSelectItemFrameOrdinaryTiling(t *testing.T) {
	ty := &assets.Type{PatternX: 2, PatternY: 2, PatternZ: 1}
	obj := gamestate.Object{ID: 100}
	pos := gamestate.Position{X: 3, Y: 5, Z: 0}

	sel := selectItemFrame(nil, nil, ty, obj, pos, nil)
	require.Equal(t, 1, sel.PX)
	require.Equal(t, 1, sel.PY)
	require.Equal(t, 0, sel.PZ)
}

func TestSelectItemFrameStackable(t *testing.T) {
	ty := &assets.Type{
		PatternX:   8,
		Properties: map[version.ItemProperty]assets.PropertyValue{version.PropertyStackable: {}},
	}
	obj := gamestate.Object{ID: 100, ExtraByte: 9, HasExtra: true}
	pos := gamestate.Position{}

	sel := selectItemFrame(nil, nil, ty, obj, pos, nil)
	require.GreaterOrEqual(t, sel.PX, 0)
}
