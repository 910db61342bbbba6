package field

import (
	"fmt"

	"github.com/pthm-cable/wisp/config"
	"github.com/pthm-cable/wisp/vmath"
)

// FromConfig builds the configured shape. Box dimensions in the config
// are full edge lengths and are halved here.
func FromConfig(c config.FieldConfig) (Shape, error) {
	var s Shape
	switch c.Shape {
	case "sphere":
		s = Sphere{Radius: float32(c.Sphere.Radius)}
	case "box":
		s = Box{
			Size: vmath.Vec3{
				X: float32(c.Box.Width / 2),
				Y: float32(c.Box.Height / 2),
				Z: float32(c.Box.Depth / 2),
			},
			Round: float32(c.Box.Round),
		}
	case "torus":
		s = Torus{
			Radius:    float32(c.Torus.Radius),
			Thickness: float32(c.Torus.Thickness),
		}
	default:
		return nil, fmt.Errorf("unknown field shape %q", c.Shape)
	}
	return Displace(s, c.Displacement.Seed, float32(c.Displacement.Amplitude), float32(c.Displacement.Frequency)), nil
}

// BakeFromConfig builds the configured shape and bakes it into a volume.
func BakeFromConfig(c config.FieldConfig) (*Volume, error) {
	s, err := FromConfig(c)
	if err != nil {
		return nil, err
	}
	return Bake(s, c.Resolution, float32(c.Extent), float32(c.DistanceScale)), nil
}
