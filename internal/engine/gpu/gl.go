package gpu

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-heightmap/internal/logger"
)

// GL implements Device on top of OpenGL 4.1 core.
// gl.Init must have been called on the context-owning thread.
type GL struct{}

// NewGL returns the OpenGL device.
func NewGL() *GL {
	return &GL{}
}

// CreateMesh implements Device.
func (GL) CreateMesh(vertices []byte, stride int32, attribs []Attrib, indices []uint32) (MeshHandles, error) {
	var h MeshHandles
	drainErrors()

	gl.GenVertexArrays(1, &h.VAO)
	gl.BindVertexArray(h.VAO)

	gl.GenBuffers(1, &h.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, h.VBO)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices), gl.Ptr(vertices), gl.STATIC_DRAW)
	}

	gl.GenBuffers(1, &h.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, h.EBO)
	if len(indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	}

	for _, a := range attribs {
		gl.VertexAttribPointerWithOffset(a.Location, a.Components, gl.FLOAT, false, stride, a.Offset)
		gl.EnableVertexAttribArray(a.Location)
	}

	// The element buffer binding is part of VAO state, so unbind the VAO first.
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		GL{}.DeleteMesh(h)
		return MeshHandles{}, fmt.Errorf("%w: create mesh: 0x%04x", ErrGL, code)
	}

	logger.Debug("mesh uploaded",
		zap.Uint32("vao", h.VAO),
		zap.Int("vertexBytes", len(vertices)),
		zap.Int("indices", len(indices)),
	)
	return h, nil
}

// DeleteMesh implements Device.
func (GL) DeleteMesh(h MeshHandles) {
	if h.EBO != 0 {
		gl.DeleteBuffers(1, &h.EBO)
	}
	if h.VBO != 0 {
		gl.DeleteBuffers(1, &h.VBO)
	}
	if h.VAO != 0 {
		gl.DeleteVertexArrays(1, &h.VAO)
	}
}

// CreateTexture implements Device.
func (GL) CreateTexture(img *image.RGBA, opts TextureOptions) (uint32, error) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return 0, fmt.Errorf("%w: empty texture", ErrGL)
	}
	drainErrors()

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))

	wrap := int32(gl.CLAMP_TO_EDGE)
	if opts.Repeat {
		wrap = gl.REPEAT
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)

	if opts.Mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &tex)
		return 0, fmt.Errorf("%w: create texture: 0x%04x", ErrGL, code)
	}
	return tex, nil
}

// DeleteTexture implements Device.
func (GL) DeleteTexture(tex uint32) {
	if tex != 0 {
		gl.DeleteTextures(1, &tex)
	}
}

// ActiveTexture selects texture unit GL_TEXTURE0+unit.
func (GL) ActiveTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
}

// BindTexture binds a 2D texture to the active unit.
func (GL) BindTexture(tex uint32) {
	gl.BindTexture(gl.TEXTURE_2D, tex)
}

// UseProgram implements Device.
func (GL) UseProgram(program uint32) {
	gl.UseProgram(program)
}

// BindVertexArray implements Device.
func (GL) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

// DrawTriangles draws indexCount uint32 indices from the bound element buffer.
func (GL) DrawTriangles(indexCount int32) {
	gl.DrawElementsWithOffset(gl.TRIANGLES, indexCount, gl.UNSIGNED_INT, 0)
}

// ReadPixels implements Device.
func (GL) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

// drainErrors clears stale error flags so the next check reflects only our calls.
func drainErrors() {
	for i := 0; i < 16 && gl.GetError() != gl.NO_ERROR; i++ {
	}
}
