package scene

import (
	"context"
	"errors"
	"testing"

	"github.com/Faultbox/tilescape/internal/label"
	"github.com/Faultbox/tilescape/internal/projection"
	"github.com/Faultbox/tilescape/internal/source"
	"github.com/Faultbox/tilescape/internal/style"
	"github.com/Faultbox/tilescape/internal/tile"
	"github.com/Faultbox/tilescape/internal/view"
)

func newTestManager() (*TileManager, *view.View) {
	v := view.New(800, 600, projection.Mercator)
	v.SetPosition(0, 0)
	v.SetZoom(4)
	v.Update()

	src := source.NewProcedural(v.MapProjection())
	styles := []style.Style{style.NewPolygonStyle("polygons", style.DefaultRules())}
	return NewTileManager(src, styles, label.NewTransformStore()), v
}

func TestUpdateTileSetLoadsVisible(t *testing.T) {
	m, v := newTestManager()

	m.UpdateTileSet(context.Background(), v)

	want := len(v.VisibleTiles())
	if m.NumTiles() != want {
		t.Fatalf("loaded %d tiles, want %d", m.NumTiles(), want)
	}
	for _, mt := range m.Tiles() {
		if !v.VisibleTiles().Contains(mt.ID()) {
			t.Errorf("loaded tile %v is not visible", mt.ID())
		}
		if mesh := mt.Mesh("polygons"); mesh == nil || mesh.NumVertices() == 0 {
			t.Errorf("tile %v has no geometry", mt.ID())
		}
	}
}

func TestUpdateTileSetIdempotent(t *testing.T) {
	m, v := newTestManager()

	m.UpdateTileSet(context.Background(), v)
	before := m.Tiles()
	m.UpdateTileSet(context.Background(), v)
	after := m.Tiles()

	if len(before) != len(after) {
		t.Fatalf("tile count changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Error("unchanged view should keep the same tile instances")
			break
		}
	}
}

func TestUpdateTileSetEvicts(t *testing.T) {
	m, v := newTestManager()
	m.UpdateTileSet(context.Background(), v)

	// Move the view a quarter of the world away; the visible set is
	// disjoint from the old one.
	v.SetPosition(projection.HalfCircumference/2, 0)
	v.Update()
	m.UpdateTileSet(context.Background(), v)

	if m.NumTiles() != len(v.VisibleTiles()) {
		t.Fatalf("loaded %d tiles, want %d", m.NumTiles(), len(v.VisibleTiles()))
	}
	for _, mt := range m.Tiles() {
		if !v.VisibleTiles().Contains(mt.ID()) {
			t.Errorf("stale tile %v survived eviction", mt.ID())
		}
	}
}

func TestUpdateTilesRefreshesLabels(t *testing.T) {
	v := view.New(800, 600, projection.Mercator)
	v.SetPosition(0, 0)
	v.SetZoom(16)
	v.Update()

	buffer := label.NewTransformStore()
	src := source.NewProcedural(v.MapProjection())
	styles := []style.Style{style.NewPolygonStyle("polygons", style.DefaultRules())}
	m := NewTileManager(src, styles, buffer)

	m.UpdateTileSet(context.Background(), v)
	m.UpdateTiles(v)

	var pushed int
	for _, mt := range m.Tiles() {
		for range mt.Labels() {
			pushed++
		}
	}
	if pushed == 0 {
		t.Fatal("zoom 16 tiles should carry labels")
	}
	// Every label has a transform in the buffer after the frame update,
	// and the labels near the view center are visible.
	visible := 0
	for id := 0; id < pushed; id++ {
		state, ok := buffer.State(id)
		if !ok {
			t.Errorf("label %d has no pushed transform", id)
			continue
		}
		if state.Alpha == 1 {
			visible++
		}
	}
	if visible == 0 {
		t.Error("no label is visible with the camera over the tile set")
	}
}

func TestEvictReleasesLabels(t *testing.T) {
	v := view.New(800, 600, projection.Mercator)
	v.SetPosition(0, 0)
	v.SetZoom(16)
	v.Update()

	buffer := label.NewTransformStore()
	src := source.NewProcedural(v.MapProjection())
	m := NewTileManager(src, nil, buffer)

	m.UpdateTileSet(context.Background(), v)
	m.UpdateTiles(v)

	var old int
	for _, mt := range m.Tiles() {
		old += len(mt.Labels())
	}
	if old == 0 {
		t.Fatal("expected labels before eviction")
	}
	if _, ok := buffer.State(0); !ok {
		t.Fatal("expected a pushed transform before eviction")
	}

	// Jump half a world away; every initial tile is evicted.
	v.SetPosition(projection.HalfCircumference/2, 0)
	v.Update()
	m.UpdateTileSet(context.Background(), v)

	for id := 0; id < old; id++ {
		if _, ok := buffer.State(id); ok {
			t.Errorf("evicted label %d still has buffer state", id)
		}
		if buffer.Text(id) != "" {
			t.Errorf("evicted label %d still has rasterized text", id)
		}
	}
}

type failingSource struct{}

func (failingSource) LoadTile(ctx context.Context, id tile.ID) ([]source.Layer, error) {
	return nil, errors.New("source offline")
}

func TestUpdateTileSetLoadFailure(t *testing.T) {
	v := view.New(800, 600, projection.Mercator)
	v.SetPosition(0, 0)
	v.SetZoom(4)
	v.Update()

	m := NewTileManager(failingSource{}, nil, label.NewTransformStore())
	m.UpdateTileSet(context.Background(), v)

	if m.NumTiles() != 0 {
		t.Errorf("failed loads should leave no tiles, got %d", m.NumTiles())
	}
	// Failed tiles are retried on the next pass.
	m.UpdateTileSet(context.Background(), v)
	if m.NumTiles() != 0 {
		t.Error("retry of failing source should still load nothing")
	}
}
