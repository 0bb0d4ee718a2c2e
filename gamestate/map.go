package gamestate

// MapWidth, MapHeight and MapDepth are the dimensions of the visible tile
// window kept in memory: 18x14 screen tiles across every floor the
// protocol can address.
const (
	MapWidth  = 18
	MapHeight = 14
	MapDepth  = 16
)

// Map is a dense cylindrical ring buffer addressed directly by absolute
// world coordinates modulo its dimensions. It never tracks an origin or
// shifts its contents when the player walks: a world position always maps
// to the same slot regardless of where the viewport currently sits, so
// recentering the view is free and simply consists of the server resending
// descriptions for the columns that scrolled into range. Two far-apart
// positions aliasing to the same slot is fine, since only tiles inside the
// current window are ever read by the renderer.
type Map struct {
	tiles [MapWidth][MapHeight][MapDepth]Tile

	// renderHeight is the secondary 2D render-height grid: the highest
	// floor actually drawn for each screen column, used by the renderer
	// to hide floors above it so indoor ceilings don't occlude the
	// player.
	renderHeight [MapWidth][MapHeight]int
}

// NewMap returns an empty Map.
func NewMap() *Map { return &Map{} }

func floorMod(v, m int) int {
	v %= m
	if v < 0 {
		v += m
	}
	return v
}

func (m *Map) index(p Position) (int, int, int) {
	return floorMod(p.X, MapWidth), floorMod(p.Y, MapHeight), floorMod(p.Z, MapDepth)
}

// Tile returns the (possibly stale) tile slot for p. Callers that are about
// to describe a square fresh should Reset it first.
func (m *Map) Tile(p Position) *Tile {
	x, y, z := m.index(p)
	return &m.tiles[x][y][z]
}

// RenderHeight returns the highest floor drawn for the screen column at
// (x, y), ignoring z.
func (m *Map) RenderHeight(x, y int) int {
	return m.renderHeight[floorMod(x, MapWidth)][floorMod(y, MapHeight)]
}

// SetRenderHeight records z as the highest floor drawn for column (x, y).
func (m *Map) SetRenderHeight(x, y, z int) {
	m.renderHeight[floorMod(x, MapWidth)][floorMod(y, MapHeight)] = z
}
