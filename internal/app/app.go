// Package app wires the window, camera, tile pipeline, and renderer
// into the main frame loop.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/tilescape/internal/config"
	"github.com/Faultbox/tilescape/internal/input"
	"github.com/Faultbox/tilescape/internal/label"
	"github.com/Faultbox/tilescape/internal/logger"
	"github.com/Faultbox/tilescape/internal/projection"
	"github.com/Faultbox/tilescape/internal/render"
	"github.com/Faultbox/tilescape/internal/scene"
	"github.com/Faultbox/tilescape/internal/source"
	"github.com/Faultbox/tilescape/internal/style"
	"github.com/Faultbox/tilescape/internal/view"
	gmath "github.com/Faultbox/tilescape/pkg/math"
)

// The style pass drawn from every tile.
const polygonStyleName = "polygons"

// App is the running viewer instance.
type App struct {
	cfg *config.Config

	window   *render.Window
	renderer *render.Renderer
	view     *view.View
	manager  *scene.TileManager
	labels   *label.TransformStore

	input      *input.Input
	controller *input.Controller

	running bool
}

// New creates the viewer: window and GL context first, then the
// renderer, then the camera and tile pipeline.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	a := &App{cfg: cfg}

	var err error
	a.window, err = render.NewWindow(render.WindowConfig{
		Title:      "Tilescape",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context the window created.
	a.renderer, err = render.NewRenderer([]string{polygonStyleName})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.view = view.New(cfg.Graphics.Width, cfg.Graphics.Height, projection.Type(cfg.Map.Projection))
	a.view.SetPixelScale(cfg.Map.PixelScale)
	a.view.SetZoom(cfg.Map.StartZoom)

	start := a.view.MapProjection().LonLatToMeters(gmath.Vec2d{
		X: cfg.Map.StartLongitude,
		Y: cfg.Map.StartLatitude,
	})
	a.view.SetPosition(start.X, start.Y)

	rules := style.DefaultRules()
	if cfg.Map.StyleRules != "" {
		rules, err = style.LoadRules(cfg.Map.StyleRules)
		if err != nil {
			a.renderer.Close()
			a.window.Close()
			return nil, fmt.Errorf("failed to load style rules: %w", err)
		}
	}
	styles := []style.Style{style.NewPolygonStyle(polygonStyleName, rules)}

	a.labels = label.NewTransformStore()
	src := source.NewProcedural(a.view.MapProjection())
	a.manager = scene.NewTileManager(src, styles, a.labels)

	a.input = input.New()
	a.controller = input.NewController()

	logger.Info("viewer initialized",
		zap.Float64("lon", cfg.Map.StartLongitude),
		zap.Float64("lat", cfg.Map.StartLatitude),
		zap.Float32("zoom", cfg.Map.StartZoom),
	)
	return a, nil
}

// Run starts the main frame loop and blocks until quit.
func (a *App) Run(ctx context.Context) error {
	a.running = true

	var frameLimit time.Duration
	if a.cfg.Graphics.FPSLimit > 0 {
		frameLimit = time.Second / time.Duration(a.cfg.Graphics.FPSLimit)
	}

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting frame loop")

	for a.running {
		if err := ctx.Err(); err != nil {
			return err
		}

		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}
		action := a.controller.Apply(a.input.Events(), a.view)
		if action.Quit {
			a.running = false
			break
		}
		if action.Resized {
			a.renderer.Resize(action.Width, action.Height)
		}

		// 2. Update camera and tile set
		a.view.Update()
		if a.view.ChangedOnLastUpdate() {
			a.manager.UpdateTileSet(ctx, a.view)
		}
		a.manager.UpdateTiles(a.view)

		// 3. Render
		a.renderer.Begin()
		a.renderer.Draw(a.manager.Tiles(), a.view)

		// 4. Present
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Duration("dt", dt),
				zap.Int("tiles", a.manager.NumTiles()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameLimit > 0 {
			if elapsed := time.Since(now); elapsed < frameLimit {
				time.Sleep(frameLimit - elapsed)
			}
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (a *App) Close() {
	logger.Info("closing viewer")
	a.renderer.Close()
	a.window.Close()
}
