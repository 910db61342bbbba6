package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wisp/ui"
)

// handleInput processes keyboard and mouse input.
func (a *App) handleInput() {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		a.paused = !a.paused
	}

	if rl.IsKeyPressed(rl.KeyR) {
		a.reseed()
	}

	if rl.IsKeyPressed(rl.KeyC) {
		a.copyConfigYAML()
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		a.controls.Toggle()
	}

	// Overlay toggle keys
	for _, desc := range a.overlays.All() {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			a.overlays.Toggle(desc.ID)
		}
	}

	a.handleCameraInput()
}

// handleCameraInput processes orbit/zoom controls.
func (a *App) handleCameraInput() {
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) && !a.mouseOverPanel() {
		delta := rl.GetMouseDelta()
		a.cam.Orbit(-delta.X*0.4, delta.Y*0.4)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.cam.Dolly(1 - wheel*0.1)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		a.cam.Reset()
	}
}

// mouseOverPanel reports whether the cursor sits on the tuning panel,
// so slider drags never double as camera orbits.
func (a *App) mouseOverPanel() bool {
	if !a.overlays.IsEnabled(ui.OverlayParams) {
		return false
	}
	return rl.CheckCollisionPointRec(rl.GetMousePosition(), a.paramsPanel.Bounds(a.screenW))
}
