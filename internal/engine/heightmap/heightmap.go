// Package heightmap owns the GPU resources of a terrain mesh built from a
// heightfield image and issues its draw calls.
package heightmap

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-heightmap/internal/engine/gpu"
	"github.com/Faultbox/midgard-heightmap/internal/engine/terrain"
	"github.com/Faultbox/midgard-heightmap/internal/logger"
)

// Vertex attribute locations expected by the terrain shader.
const (
	AttribPosition = 0
	AttribTexCoord = 1
)

var vertexStride = int32(unsafe.Sizeof(terrain.Vertex{}))

var vertexLayout = []gpu.Attrib{
	{Location: AttribPosition, Components: 3, Offset: unsafe.Offsetof(terrain.Vertex{}.Position)},
	{Location: AttribTexCoord, Components: 2, Offset: unsafe.Offsetof(terrain.Vertex{}.TexCoord)},
}

// Heightmap is an uploaded terrain mesh. It exclusively owns its vertex
// array, vertex buffer and index buffer until Close.
type Heightmap struct {
	dev     gpu.Device
	handles gpu.MeshHandles

	width       int
	height      int
	vertexCount int
	indexCount  int32
	bounds      terrain.Bounds
}

// Build decodes the image at path, builds the terrain mesh and uploads it.
// On failure a diagnostic is logged and no GPU resources are held.
func Build(dev gpu.Device, path string) (*Heightmap, error) {
	mesh, err := terrain.Load(path)
	if err != nil {
		logger.Error("failed to load heightmap", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("heightmap: %w", err)
	}

	h, err := New(dev, mesh)
	if err != nil {
		logger.Error("failed to upload heightmap", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	logger.Info("heightmap loaded",
		zap.String("path", path),
		zap.Int("width", mesh.Width),
		zap.Int("height", mesh.Height),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", mesh.TriangleCount()),
	)
	return h, nil
}

// New uploads mesh to the device once. The mesh is not retained.
func New(dev gpu.Device, mesh *terrain.Mesh) (*Heightmap, error) {
	if err := mesh.Validate(); err != nil {
		return nil, fmt.Errorf("heightmap: %w", err)
	}

	handles, err := dev.CreateMesh(vertexBytes(mesh.Vertices), vertexStride, vertexLayout, mesh.Indices)
	if err != nil {
		return nil, fmt.Errorf("heightmap: upload: %w", err)
	}

	return &Heightmap{
		dev:         dev,
		handles:     handles,
		width:       mesh.Width,
		height:      mesh.Height,
		vertexCount: len(mesh.Vertices),
		indexCount:  int32(len(mesh.Indices)),
		bounds:      mesh.Bounds,
	}, nil
}

// Draw renders the mesh with program and texture bound on unit 0, then
// restores vertex array 0 and texture 0 on unit 0. Safe to call every
// frame; does nothing after Close.
func (h *Heightmap) Draw(program, texture uint32) {
	if h.handles.IsZero() || h.indexCount == 0 {
		return
	}

	h.dev.ActiveTexture(0)
	h.dev.BindTexture(texture)
	h.dev.UseProgram(program)
	h.dev.BindVertexArray(h.handles.VAO)

	h.dev.DrawTriangles(h.indexCount)

	h.dev.BindVertexArray(0)
	h.dev.BindTexture(0)
	h.dev.ActiveTexture(0)
}

// Close releases the vertex array and both buffers. Calling it again is a no-op.
func (h *Heightmap) Close() {
	if h.handles.IsZero() {
		return
	}
	h.dev.DeleteMesh(h.handles)
	h.handles = gpu.MeshHandles{}
}

// Size returns the heightfield dimensions in samples.
func (h *Heightmap) Size() (int, int) {
	return h.width, h.height
}

// VertexCount returns the number of uploaded vertices.
func (h *Heightmap) VertexCount() int {
	return h.vertexCount
}

// IndexCount returns the number of indices drawn per Draw call.
func (h *Heightmap) IndexCount() int {
	return int(h.indexCount)
}

// Bounds returns the mesh bounds in model space.
func (h *Heightmap) Bounds() terrain.Bounds {
	return h.bounds
}

// vertexBytes reinterprets the vertex slice as raw bytes for upload.
func vertexBytes(vertices []terrain.Vertex) []byte {
	if len(vertices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), len(vertices)*int(vertexStride))
}
