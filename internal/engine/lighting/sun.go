// Package lighting provides the directional sun shared by the terrain
// shader and the offline relief renderer.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Sun is a directional light given as angles in degrees.
type Sun struct {
	Azimuth   float32 // Rotation around +Y; 0 points toward +Z, 90 toward +X
	Elevation float32 // Angle above the horizon, 0-90
	Ambient   float32 // Light floor in [0,1] for surfaces facing away
}

// DefaultSun lights the terrain from the north-west, 45 degrees up.
func DefaultSun() Sun {
	return Sun{Azimuth: 225, Elevation: 45, Ambient: 0.35}
}

// SunDirection converts azimuth/elevation angles to a unit vector pointing
// toward the sun.
func SunDirection(azimuth, elevation float32) mgl32.Vec3 {
	lonRad := float64(azimuth) * math.Pi / 180.0
	latRad := float64(elevation) * math.Pi / 180.0

	// Spherical to Cartesian: azimuth around Y, elevation from the horizon.
	x := float32(math.Cos(latRad) * math.Sin(lonRad))
	y := float32(math.Sin(latRad))
	z := float32(math.Cos(latRad) * math.Cos(lonRad))

	return mgl32.Vec3{x, y, z}
}

// Direction returns the unit vector toward the sun.
func (s Sun) Direction() mgl32.Vec3 {
	return SunDirection(s.Azimuth, s.Elevation)
}

// Shade returns the light intensity in [0,1] for a surface normal:
// ambient plus the Lambert term scaled into the remaining range.
// The terrain fragment shader computes the same expression.
func (s Sun) Shade(normal mgl32.Vec3) float32 {
	if normal.Len() == 0 {
		return clamp01(s.Ambient)
	}
	diffuse := max(normal.Normalize().Dot(s.Direction()), 0)
	ambient := clamp01(s.Ambient)
	return clamp01(ambient + (1-ambient)*diffuse)
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}
