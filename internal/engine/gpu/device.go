// Package gpu is the boundary between the renderers and the graphics API.
//
// All Device methods must be called from the goroutine that owns the GL
// context. Callers are expected to leave bindings in their neutral state
// (vertex array 0, texture 0 on unit 0) after each draw.
package gpu

import (
	"errors"
	"image"
)

// ErrGL is returned when the driver reports an error during resource creation.
var ErrGL = errors.New("gl error")

// Attrib describes one float vertex attribute within an interleaved buffer.
type Attrib struct {
	Location   uint32
	Components int32
	Offset     uintptr
}

// MeshHandles are the driver objects backing an indexed mesh.
type MeshHandles struct {
	VAO uint32
	VBO uint32
	EBO uint32
}

// IsZero reports whether no handle is set.
func (h MeshHandles) IsZero() bool {
	return h.VAO == 0 && h.VBO == 0 && h.EBO == 0
}

// TextureOptions controls sampling of an uploaded texture.
type TextureOptions struct {
	Mipmaps bool
	Repeat  bool
}

// Device is the subset of the graphics API used by the renderers.
type Device interface {
	// CreateMesh uploads interleaved vertex data and indices once (static draw)
	// and records the attribute layout in a new vertex array. On failure no
	// handles are left allocated.
	CreateMesh(vertices []byte, stride int32, attribs []Attrib, indices []uint32) (MeshHandles, error)
	DeleteMesh(h MeshHandles)

	CreateTexture(img *image.RGBA, opts TextureOptions) (uint32, error)
	DeleteTexture(tex uint32)

	ActiveTexture(unit uint32)
	BindTexture(tex uint32)
	UseProgram(program uint32)
	BindVertexArray(vao uint32)
	DrawTriangles(indexCount int32)

	// ReadPixels returns the RGBA contents of the default framebuffer,
	// bottom row first.
	ReadPixels(width, height int) []byte
}
