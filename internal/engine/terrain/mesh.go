package terrain

import "fmt"

// Load decodes the heightfield at path and builds its mesh.
// The decoded samples are dropped once the mesh exists.
func Load(path string) (*Mesh, error) {
	hf, err := LoadHeightfield(path)
	if err != nil {
		return nil, err
	}
	return BuildMesh(hf), nil
}

// BuildMesh creates a terrain mesh with one vertex per sample and two
// triangles per grid cell.
func BuildMesh(hf *Heightfield) *Mesh {
	vertices := BuildVertices(hf)
	return &Mesh{
		Width:    hf.Width,
		Height:   hf.Height,
		Vertices: vertices,
		Indices:  BuildIndices(hf.Width, hf.Height),
		Bounds:   computeBounds(vertices),
	}
}

// BuildVertices emits vertices in row-major order: vertex y*Width+x sits at
// (x, sample/255, y) with texture coordinate (x/(Width-1), y/(Height-1)).
func BuildVertices(hf *Heightfield) []Vertex {
	vertices := make([]Vertex, 0, hf.Width*hf.Height)

	for y := range hf.Height {
		v := texCoord(y, hf.Height)
		for x := range hf.Width {
			vertices = append(vertices, Vertex{
				Position: [3]float32{float32(x), hf.Normalized(x, y), float32(y)},
				TexCoord: [2]float32{texCoord(x, hf.Width), v},
			})
		}
	}

	return vertices
}

// texCoord maps i in [0, n) onto [0, 1]. A single-sample axis maps to 0.
func texCoord(i, n int) float32 {
	if n <= 1 {
		return 0
	}
	return float32(i) / float32(n-1)
}

// BuildIndices triangulates a width x height vertex grid.
//
// Cells are visited row-major. Each cell emits (topLeft, bottomLeft, topRight)
// then (topRight, bottomLeft, bottomRight); this order fixes the winding
// used for back-face culling. Grids narrower than two samples on either
// axis have no cells and produce no indices.
func BuildIndices(width, height int) []uint32 {
	if width < 2 || height < 2 {
		return []uint32{}
	}

	indices := make([]uint32, 0, 6*(width-1)*(height-1))
	for y := range height - 1 {
		for x := range width - 1 {
			topLeft := uint32(y*width + x)
			topRight := topLeft + 1
			bottomLeft := uint32((y+1)*width + x)
			bottomRight := bottomLeft + 1

			indices = append(indices,
				topLeft, bottomLeft, topRight,
				topRight, bottomLeft, bottomRight,
			)
		}
	}

	return indices
}

// Validate checks the vertex/index counts and index ranges.
func (m *Mesh) Validate() error {
	if want := m.Width * m.Height; len(m.Vertices) != want {
		return fmt.Errorf("%w: %d vertices, want %d", ErrInvalidMesh, len(m.Vertices), want)
	}

	want := 0
	if m.Width > 1 && m.Height > 1 {
		want = 6 * (m.Width - 1) * (m.Height - 1)
	}
	if len(m.Indices) != want {
		return fmt.Errorf("%w: %d indices, want %d", ErrInvalidMesh, len(m.Indices), want)
	}

	count := uint32(len(m.Vertices))
	for i, idx := range m.Indices {
		if idx >= count {
			return fmt.Errorf("%w: index %d at %d out of range (%d vertices)", ErrInvalidMesh, idx, i, count)
		}
	}
	return nil
}

// TriangleCount returns the number of triangles described by the index buffer.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

func computeBounds(vertices []Vertex) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}

	bounds := Bounds{Min: vertices[0].Position, Max: vertices[0].Position}
	for _, v := range vertices[1:] {
		for i := range 3 {
			if v.Position[i] < bounds.Min[i] {
				bounds.Min[i] = v.Position[i]
			}
			if v.Position[i] > bounds.Max[i] {
				bounds.Max[i] = v.Position[i]
			}
		}
	}
	return bounds
}
