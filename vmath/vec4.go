package vmath

// Vec4 is a 4-component float32 vector. The simulation packs a vector
// in XYZ and a scalar channel in W.
type Vec4 struct {
	X, Y, Z, W float32
}

// XYZ drops the w component.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}
