package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/tilescape/internal/view"
)

// Gesture speeds, tuned by hand.
const (
	wheelZoomStep = 0.25
	keyRollStep   = 0.05
)

// Action is what a frame of input asks the application to do beyond
// camera changes.
type Action struct {
	Quit    bool
	Resized bool
	Width   int
	Height  int
}

// Controller turns input events into camera gestures: left-drag pans,
// the wheel zooms, Q and E roll the map.
type Controller struct {
	dragging     bool
	lastX, lastY int
}

// NewController creates a controller with no gesture in progress.
func NewController() *Controller {
	return &Controller{}
}

// Apply runs one frame of events against the view and reports any
// application-level action they requested.
func (c *Controller) Apply(events []Event, v *view.View) Action {
	var action Action

	for _, e := range events {
		switch e.Type {
		case EventQuit:
			action.Quit = true

		case EventWindowResize:
			v.SetSize(e.Width, e.Height)
			action.Resized = true
			action.Width = e.Width
			action.Height = e.Height

		case EventMouseDown:
			if e.Button == sdl.BUTTON_LEFT {
				c.dragging = true
				c.lastX = e.MouseX
				c.lastY = e.MouseY
			}

		case EventMouseUp:
			if e.Button == sdl.BUTTON_LEFT {
				c.dragging = false
			}

		case EventMouseMove:
			if !c.dragging {
				break
			}
			dx := float32(e.MouseX - c.lastX)
			dy := float32(e.MouseY - c.lastY)
			c.lastX = e.MouseX
			c.lastY = e.MouseY

			// Screen y grows downward, world y upward. The map follows
			// the cursor, so the camera moves the opposite way.
			worldX, worldY := v.ToWorldDisplacement(dx, -dy)
			v.Translate(float64(-worldX), float64(-worldY))

		case EventMouseWheel:
			v.Zoom(e.WheelY * wheelZoomStep)

		case EventKeyDown:
			switch e.Key {
			case sdl.SCANCODE_Q:
				v.Roll(keyRollStep)
			case sdl.SCANCODE_E:
				v.Roll(-keyRollStep)
			case sdl.SCANCODE_ESCAPE:
				action.Quit = true
			}
		}
	}

	return action
}
