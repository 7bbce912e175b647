// Package terrain builds triangulated terrain meshes from grayscale heightfields.
package terrain

import "errors"

var (
	// ErrDecode is returned when a heightfield image cannot be read or decoded.
	ErrDecode = errors.New("heightfield decode failed")

	// ErrEmptyHeightfield is returned for images with zero width or height.
	ErrEmptyHeightfield = errors.New("heightfield has no samples")

	// ErrInvalidMesh is returned by Mesh.Validate when an invariant is broken.
	ErrInvalidMesh = errors.New("invalid terrain mesh")
)

// Heightfield is a grid of 8-bit elevation samples, row-major with the
// origin at the top-left pixel.
type Heightfield struct {
	Width   int
	Height  int
	Samples []uint8
}

// Vertex is a terrain mesh vertex. The layout is uploaded to the GPU as-is:
// location 0 = Position (vec3), location 1 = TexCoord (vec2).
type Vertex struct {
	Position [3]float32
	TexCoord [2]float32
}

// Mesh holds the complete terrain mesh data ready for GPU upload.
type Mesh struct {
	Width    int
	Height   int
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the midpoint of the bounding box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Size returns the extent of the bounding box along each axis.
func (b Bounds) Size() [3]float32 {
	return [3]float32{
		b.Max[0] - b.Min[0],
		b.Max[1] - b.Min[1],
		b.Max[2] - b.Min[2],
	}
}
