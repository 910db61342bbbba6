// Distance volume preview tool - interactive slice viewer with sliders.
//
// Usage: go run ./cmd/volumepreview
package main

import (
	"fmt"
	"image/color"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wisp/config"
	"github.com/pthm-cable/wisp/field"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
)

func defaultFieldConfig() config.FieldConfig {
	return config.FieldConfig{
		Resolution:    48,
		Extent:        2.0,
		DistanceScale: 1.5,
		Shape:         "torus",
		Sphere:        config.SphereConfig{Radius: 1.0},
		Box:           config.BoxConfig{Width: 1.6, Height: 1.0, Depth: 1.6, Round: 0.15},
		Torus:         config.TorusConfig{Radius: 1.1, Thickness: 0.35},
		Displacement:  config.DisplacementConfig{Amplitude: 0.12, Frequency: 1.8, Seed: 7},
	}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Distance Volume Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	fc := defaultFieldConfig()

	var (
		vol      *field.Volume
		slice    []float32
		texture  rl.Texture2D
		texRes   int
		axis     = 2 // 0=X 1=Y 2=Z
		sliceIdx = fc.Resolution / 2
		bakeTime time.Duration
		minW     float32
		maxW     float32
	)

	rebuildTexture := func(res int) {
		if texRes == res {
			return
		}
		if texRes != 0 {
			rl.UnloadTexture(texture)
		}
		img := rl.GenImageColor(res, res, rl.Black)
		texture = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
		texRes = res
		slice = make([]float32, res*res)
	}

	needsBake := true
	needsSlice := true

	for !rl.WindowShouldClose() {
		if needsBake {
			start := time.Now()
			v, err := field.BakeFromConfig(fc)
			bakeTime = time.Since(start)
			if err == nil {
				vol = v
			}
			needsBake = false
			needsSlice = true
		}

		if needsSlice && vol != nil {
			rebuildTexture(fc.Resolution)
			if sliceIdx >= fc.Resolution {
				sliceIdx = fc.Resolution - 1
			}
			minW, maxW = extractSlice(slice, vol, axis, sliceIdx)
			updateTexture(texture, slice, fc.Resolution)
			needsSlice = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(texRes), Height: float32(texRes)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Draw stats
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Dist: %.3f - %.3f  Bake: %s", minW, maxW, bakeTime.Round(time.Millisecond)), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Axis: %s  Slice: %d/%d", axisName(axis), sliceIdx, fc.Resolution-1), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Distance Volume Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		// Resolution slider
		rl.DrawText("Resolution (texels per axis)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newRes := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"16", "96",
			float32(fc.Resolution), 16, 96,
		)
		rl.DrawText(fmt.Sprintf("%d", fc.Resolution), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newRes) != fc.Resolution {
			fc.Resolution = int(newRes)
			needsBake = true
		}
		panelY += 35

		// Extent slider
		rl.DrawText("Extent (half width of cube)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newExtent := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1.0", "4.0",
			float32(fc.Extent), 1.0, 4.0,
		)
		rl.DrawText(fmt.Sprintf("%.2f", fc.Extent), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if float64(newExtent) != fc.Extent {
			fc.Extent = float64(newExtent)
			needsBake = true
		}
		panelY += 35

		// Distance scale slider
		rl.DrawText("Distance scale (w divisor)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newScale := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.5", "4.0",
			float32(fc.DistanceScale), 0.5, 4.0,
		)
		rl.DrawText(fmt.Sprintf("%.2f", fc.DistanceScale), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if float64(newScale) != fc.DistanceScale {
			fc.DistanceScale = float64(newScale)
			needsBake = true
		}
		panelY += 35

		// Shape and axis buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Shape: "+fc.Shape) {
			fc.Shape = nextShape(fc.Shape)
			needsBake = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Axis: "+axisName(axis)) {
			axis = (axis + 1) % 3
			needsSlice = true
		}
		panelY += 45

		// Shape size sliders
		switch fc.Shape {
		case "sphere":
			rl.DrawText("Radius", int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			newRadius := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"0.2", "2.0",
				float32(fc.Sphere.Radius), 0.2, 2.0,
			)
			rl.DrawText(fmt.Sprintf("%.2f", fc.Sphere.Radius), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if float64(newRadius) != fc.Sphere.Radius {
				fc.Sphere.Radius = float64(newRadius)
				needsBake = true
			}
			panelY += 35

		case "box":
			rl.DrawText("Width / Depth", int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			newWidth := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"0.2", "3.0",
				float32(fc.Box.Width), 0.2, 3.0,
			)
			rl.DrawText(fmt.Sprintf("%.2f", fc.Box.Width), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if float64(newWidth) != fc.Box.Width {
				fc.Box.Width = float64(newWidth)
				fc.Box.Depth = float64(newWidth)
				needsBake = true
			}
			panelY += 35

			rl.DrawText("Height", int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			newHeight := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"0.2", "3.0",
				float32(fc.Box.Height), 0.2, 3.0,
			)
			rl.DrawText(fmt.Sprintf("%.2f", fc.Box.Height), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if float64(newHeight) != fc.Box.Height {
				fc.Box.Height = float64(newHeight)
				needsBake = true
			}
			panelY += 35

		case "torus":
			rl.DrawText("Ring radius", int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			newRadius := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"0.3", "2.0",
				float32(fc.Torus.Radius), 0.3, 2.0,
			)
			rl.DrawText(fmt.Sprintf("%.2f", fc.Torus.Radius), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if float64(newRadius) != fc.Torus.Radius {
				fc.Torus.Radius = float64(newRadius)
				needsBake = true
			}
			panelY += 35

			rl.DrawText("Thickness", int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			newThickness := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"0.05", "1.0",
				float32(fc.Torus.Thickness), 0.05, 1.0,
			)
			rl.DrawText(fmt.Sprintf("%.2f", fc.Torus.Thickness), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if float64(newThickness) != fc.Torus.Thickness {
				fc.Torus.Thickness = float64(newThickness)
				needsBake = true
			}
			panelY += 35
		}

		// Displacement sliders
		rl.DrawText("Displacement amplitude", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newAmp := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "0.5",
			float32(fc.Displacement.Amplitude), 0, 0.5,
		)
		rl.DrawText(fmt.Sprintf("%.3f", fc.Displacement.Amplitude), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if float64(newAmp) != fc.Displacement.Amplitude {
			fc.Displacement.Amplitude = float64(newAmp)
			needsBake = true
		}
		panelY += 35

		rl.DrawText("Displacement frequency", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newFreq := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.5", "4.0",
			float32(fc.Displacement.Frequency), 0.5, 4.0,
		)
		rl.DrawText(fmt.Sprintf("%.2f", fc.Displacement.Frequency), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if float64(newFreq) != fc.Displacement.Frequency {
			fc.Displacement.Frequency = float64(newFreq)
			needsBake = true
		}
		panelY += 35

		// Slice slider
		rl.DrawText("Slice index", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSlice := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", fmt.Sprintf("%d", fc.Resolution-1),
			float32(sliceIdx), 0, float32(fc.Resolution-1),
		)
		rl.DrawText(fmt.Sprintf("%d", sliceIdx), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newSlice) != sliceIdx {
			sliceIdx = int(newSlice)
			needsSlice = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			fc = defaultFieldConfig()
			axis = 2
			sliceIdx = fc.Resolution / 2
			needsBake = true
		}
		panelY += 50

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(fc) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		// Instructions
		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		// Copy to clipboard on C key
		if rl.IsKeyPressed(rl.KeyC) {
			yaml := ""
			for _, line := range yamlLines(fc) {
				yaml += line + "\n"
			}
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}

	if texRes != 0 {
		rl.UnloadTexture(texture)
	}
}

func yamlLines(fc config.FieldConfig) []string {
	lines := []string{
		"field:",
		fmt.Sprintf("  resolution: %d", fc.Resolution),
		fmt.Sprintf("  extent: %.2f", fc.Extent),
		fmt.Sprintf("  distance_scale: %.2f", fc.DistanceScale),
		fmt.Sprintf("  shape: %s", fc.Shape),
	}
	switch fc.Shape {
	case "sphere":
		lines = append(lines,
			"  sphere:",
			fmt.Sprintf("    radius: %.2f", fc.Sphere.Radius),
		)
	case "box":
		lines = append(lines,
			"  box:",
			fmt.Sprintf("    width: %.2f", fc.Box.Width),
			fmt.Sprintf("    height: %.2f", fc.Box.Height),
			fmt.Sprintf("    depth: %.2f", fc.Box.Depth),
		)
	case "torus":
		lines = append(lines,
			"  torus:",
			fmt.Sprintf("    radius: %.2f", fc.Torus.Radius),
			fmt.Sprintf("    thickness: %.2f", fc.Torus.Thickness),
		)
	}
	return append(lines,
		"  displacement:",
		fmt.Sprintf("    amplitude: %.3f", fc.Displacement.Amplitude),
		fmt.Sprintf("    frequency: %.2f", fc.Displacement.Frequency),
	)
}

func nextShape(shape string) string {
	switch shape {
	case "sphere":
		return "box"
	case "box":
		return "torus"
	default:
		return "sphere"
	}
}

func axisName(axis int) string {
	switch axis {
	case 0:
		return "X"
	case 1:
		return "Y"
	default:
		return "Z"
	}
}

// extractSlice copies one plane of scaled distances out of the volume
// and returns the min and max values seen.
func extractSlice(dst []float32, vol *field.Volume, axis, idx int) (minW, maxW float32) {
	res := vol.W
	first := true
	for row := 0; row < res; row++ {
		for col := 0; col < res; col++ {
			var w float32
			switch axis {
			case 0:
				w = vol.At(idx, col, row).W
			case 1:
				w = vol.At(col, idx, row).W
			default:
				w = vol.At(col, row, idx).W
			}
			// Flip rows so +up in volume space is up on screen.
			dst[(res-1-row)*res+col] = w
			if first || w < minW {
				minW = w
			}
			if first || w > maxW {
				maxW = w
			}
			first = false
		}
	}
	return minW, maxW
}

// updateTexture maps scaled distance to a heat ramp: texels on the
// surface render hot, texels far away fade to dark blue.
func updateTexture(texture rl.Texture2D, slice []float32, size int) {
	pixels := make([]color.RGBA, size*size)
	for i, w := range slice {
		v := 1 - clamp01(w)
		var r, g, b uint8
		if v < 0.25 {
			t := v / 0.25
			r = uint8(10 + t*30)
			g = uint8(20 + t*60)
			b = uint8(60 + t*100)
		} else if v < 0.5 {
			t := (v - 0.25) / 0.25
			r = uint8(40 + t*20)
			g = uint8(80 + t*120)
			b = uint8(160 + t*40)
		} else if v < 0.75 {
			t := (v - 0.5) / 0.25
			r = uint8(60 + t*140)
			g = uint8(200 - t*40)
			b = uint8(200 - t*150)
		} else {
			t := (v - 0.75) / 0.25
			r = uint8(200 + t*55)
			g = uint8(160 + t*95)
			b = uint8(50 + t*205)
		}
		pixels[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	rl.UpdateTexture(texture, pixels)
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
