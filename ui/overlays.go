package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayHUD    OverlayID = "hud"
	OverlayPerf   OverlayID = "perf"
	OverlayParams OverlayID = "params"
	OverlayGrid   OverlayID = "grid"
	OverlayProbes OverlayID = "probes"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID       OverlayID // Unique identifier
	Name     string    // Display name
	Key      int32     // Keyboard key to toggle (0 = no key)
	KeyLabel string    // Key label for display (e.g., "F1", "G")
	Default  bool      // Enabled at startup
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds standard overlays.
func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:       OverlayHUD,
		Name:     "Status",
		Key:      rl.KeyF1,
		KeyLabel: "F1",
		Default:  true,
	})

	r.Register(OverlayDescriptor{
		ID:       OverlayPerf,
		Name:     "Performance",
		Key:      rl.KeyF2,
		KeyLabel: "F2",
	})

	r.Register(OverlayDescriptor{
		ID:       OverlayProbes,
		Name:     "Flow Probes",
		Key:      rl.KeyF3,
		KeyLabel: "F3",
	})

	r.Register(OverlayDescriptor{
		ID:       OverlayParams,
		Name:     "Parameters",
		Key:      rl.KeyF4,
		KeyLabel: "F4",
	})

	r.Register(OverlayDescriptor{
		ID:       OverlayGrid,
		Name:     "Grid",
		Key:      rl.KeyG,
		KeyLabel: "G",
		Default:  true,
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off and returns the new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	newState := !r.enabled[id]
	r.enabled[id] = newState
	return newState
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	if _, ok := r.byID[id]; !ok {
		return
	}
	r.enabled[id] = enabled
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// Legend returns a short key reference for the control strip.
func (r *OverlayRegistry) Legend() string {
	out := ""
	for i, desc := range r.descriptors {
		if desc.KeyLabel == "" {
			continue
		}
		if i > 0 {
			out += " | "
		}
		out += desc.KeyLabel + " " + desc.Name
	}
	return out
}
