package terrain

import (
	"bufio"
	"fmt"
	"image"
	"io"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-heightmap/internal/engine/lighting"
)

// WriteOBJ writes the mesh as a Wavefront OBJ: one v/vt pair per vertex and
// one face per triangle, keeping the mesh winding. OBJ indices are 1-based.
func WriteOBJ(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# heightmap %dx%d, %d vertices, %d triangles\n",
		m.Width, m.Height, len(m.Vertices), m.TriangleCount())
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.Position[0], v.Position[1], v.Position[2])
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "vt %g %g\n", v.TexCoord[0], v.TexCoord[1])
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i]+1, m.Indices[i+1]+1, m.Indices[i+2]+1
		fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n", a, a, b, b, c, c)
	}

	return bw.Flush()
}

// Relief renders a hillshaded top-down view of the mesh, one pixel per
// vertex, lit by sun. heightScale exaggerates elevation relative to the
// grid spacing.
func Relief(m *Mesh, heightScale float32, sun lighting.Sun) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	if len(m.Vertices) == 0 {
		return img
	}

	height := func(x, y int) float32 {
		x = min(max(x, 0), m.Width-1)
		y = min(max(y, 0), m.Height-1)
		return m.Vertices[y*m.Width+x].Position[1] * heightScale
	}

	for y := range m.Height {
		for x := range m.Width {
			// Central differences; the normal of z = h(x, y) is (-dx, 1, -dy).
			dx := (height(x+1, y) - height(x-1, y)) / 2
			dy := (height(x, y+1) - height(x, y-1)) / 2
			shade := sun.Shade(mgl32.Vec3{-dx, 1, -dy})
			img.Pix[y*img.Stride+x] = uint8(shade*255 + 0.5)
		}
	}

	return img
}
