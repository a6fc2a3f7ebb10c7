package scene

import (
	"context"

	"go.uber.org/zap"

	"github.com/Faultbox/tilescape/internal/label"
	"github.com/Faultbox/tilescape/internal/logger"
	"github.com/Faultbox/tilescape/internal/source"
	"github.com/Faultbox/tilescape/internal/style"
	"github.com/Faultbox/tilescape/internal/tile"
	"github.com/Faultbox/tilescape/internal/view"
)

// TileManager keeps the loaded tile set in sync with the view: tiles
// entering the visible set are built from the feature source, tiles
// leaving it are dropped. Not safe for concurrent use; driven from the
// frame loop.
type TileManager struct {
	src    source.FeatureSource
	styles []style.Style
	buffer label.Buffer
	tiles  map[tile.ID]*MapTile
}

// NewTileManager creates a manager with no tiles loaded.
func NewTileManager(src source.FeatureSource, styles []style.Style, buffer label.Buffer) *TileManager {
	return &TileManager{
		src:    src,
		styles: styles,
		buffer: buffer,
		tiles:  make(map[tile.ID]*MapTile),
	}
}

// UpdateTileSet diffs the view's visible tiles against the loaded set,
// building new tiles and evicting tiles no longer on screen. A failed
// tile load is logged and skipped; the remaining tiles still update.
func (m *TileManager) UpdateTileSet(ctx context.Context, v *view.View) {
	visible := v.VisibleTiles()

	for id, t := range m.tiles {
		if !visible.Contains(id) {
			t.Release()
			delete(m.tiles, id)
		}
	}

	for _, id := range visible.Sorted() {
		if _, ok := m.tiles[id]; ok {
			continue
		}
		t, err := m.buildTile(ctx, id, v)
		if err != nil {
			logger.Error("tile load failed",
				zap.String("tile", id.String()),
				zap.Error(err))
			continue
		}
		m.tiles[id] = t
	}
}

func (m *TileManager) buildTile(ctx context.Context, id tile.ID, v *view.View) (*MapTile, error) {
	layers, err := m.src.LoadTile(ctx, id)
	if err != nil {
		return nil, err
	}
	t := NewMapTile(id, v.MapProjection())
	t.Build(layers, m.styles, m.buffer)
	return t, nil
}

// UpdateTiles refreshes every loaded tile's model matrix and labels
// against the view's current frame state.
func (m *TileManager) UpdateTiles(v *view.View) {
	viewProj := v.ViewProjectionMatrix()
	x, y, z := v.Position()
	w := float32(v.PixelWidth())
	h := float32(v.PixelHeight())

	for _, t := range m.tiles {
		t.Update(viewProj, x, y, z, w, h)
	}
}

// Tiles returns the loaded tiles in draw order, sorted by id so the
// render pass is stable from frame to frame.
func (m *TileManager) Tiles() []*MapTile {
	ids := make(tile.Set, len(m.tiles))
	for id := range m.tiles {
		ids.Add(id)
	}
	out := make([]*MapTile, 0, len(m.tiles))
	for _, id := range ids.Sorted() {
		out = append(out, m.tiles[id])
	}
	return out
}

// NumTiles returns the loaded tile count.
func (m *TileManager) NumTiles() int {
	return len(m.tiles)
}
