// Package gputest provides a recording gpu.Device for tests that run
// without a graphics context.
package gputest

import (
	"fmt"
	"image"

	"github.com/Faultbox/midgard-heightmap/internal/engine/gpu"
)

// Call is one recorded device call.
type Call struct {
	Op  string
	Arg uint32
}

// Recorder implements gpu.Device by handing out sequential handles and
// recording every state change.
type Recorder struct {
	Calls []Call

	// FailCreateMesh makes the next CreateMesh fail.
	FailCreateMesh bool
	// FailCreateTexture makes the next CreateTexture fail.
	FailCreateTexture bool

	// Uploaded data from the last CreateMesh call.
	Vertices []byte
	Stride   int32
	Attribs  []gpu.Attrib
	Indices  []uint32

	// Live handles keyed by handle value.
	LiveBuffers  map[uint32]bool
	LiveArrays   map[uint32]bool
	LiveTextures map[uint32]bool

	// Current binding state.
	ActiveUnit   uint32
	BoundTexture uint32
	BoundArray   uint32
	Program      uint32

	// Pixels returned by ReadPixels; a zero-filled buffer when nil.
	Pixels []byte

	next uint32
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		LiveBuffers:  make(map[uint32]bool),
		LiveArrays:   make(map[uint32]bool),
		LiveTextures: make(map[uint32]bool),
	}
}

func (r *Recorder) handle() uint32 {
	r.next++
	return r.next
}

func (r *Recorder) record(op string, arg uint32) {
	r.Calls = append(r.Calls, Call{Op: op, Arg: arg})
}

// CreateMesh implements gpu.Device.
func (r *Recorder) CreateMesh(vertices []byte, stride int32, attribs []gpu.Attrib, indices []uint32) (gpu.MeshHandles, error) {
	if r.FailCreateMesh {
		r.FailCreateMesh = false
		r.record("CreateMesh", 0)
		return gpu.MeshHandles{}, fmt.Errorf("%w: out of memory", gpu.ErrGL)
	}

	h := gpu.MeshHandles{VAO: r.handle(), VBO: r.handle(), EBO: r.handle()}
	r.LiveArrays[h.VAO] = true
	r.LiveBuffers[h.VBO] = true
	r.LiveBuffers[h.EBO] = true

	r.Vertices = append([]byte(nil), vertices...)
	r.Stride = stride
	r.Attribs = append([]gpu.Attrib(nil), attribs...)
	r.Indices = append([]uint32(nil), indices...)
	r.record("CreateMesh", h.VAO)
	return h, nil
}

// DeleteMesh implements gpu.Device.
func (r *Recorder) DeleteMesh(h gpu.MeshHandles) {
	delete(r.LiveArrays, h.VAO)
	delete(r.LiveBuffers, h.VBO)
	delete(r.LiveBuffers, h.EBO)
	r.record("DeleteMesh", h.VAO)
}

// CreateTexture implements gpu.Device.
func (r *Recorder) CreateTexture(img *image.RGBA, opts gpu.TextureOptions) (uint32, error) {
	if r.FailCreateTexture {
		r.FailCreateTexture = false
		return 0, fmt.Errorf("%w: texture upload", gpu.ErrGL)
	}
	tex := r.handle()
	r.LiveTextures[tex] = true
	r.record("CreateTexture", tex)
	return tex, nil
}

// DeleteTexture implements gpu.Device.
func (r *Recorder) DeleteTexture(tex uint32) {
	delete(r.LiveTextures, tex)
	r.record("DeleteTexture", tex)
}

// ActiveTexture implements gpu.Device.
func (r *Recorder) ActiveTexture(unit uint32) {
	r.ActiveUnit = unit
	r.record("ActiveTexture", unit)
}

// BindTexture implements gpu.Device.
func (r *Recorder) BindTexture(tex uint32) {
	r.BoundTexture = tex
	r.record("BindTexture", tex)
}

// UseProgram implements gpu.Device.
func (r *Recorder) UseProgram(program uint32) {
	r.Program = program
	r.record("UseProgram", program)
}

// BindVertexArray implements gpu.Device.
func (r *Recorder) BindVertexArray(vao uint32) {
	r.BoundArray = vao
	r.record("BindVertexArray", vao)
}

// DrawTriangles implements gpu.Device.
func (r *Recorder) DrawTriangles(indexCount int32) {
	r.record("DrawTriangles", uint32(indexCount))
}

// ReadPixels implements gpu.Device.
func (r *Recorder) ReadPixels(width, height int) []byte {
	if r.Pixels != nil {
		return r.Pixels
	}
	return make([]byte, width*height*4)
}

// Ops returns the recorded operation names in order.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Reset clears the call log without touching live handles.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

var _ gpu.Device = (*Recorder)(nil)
