package terrain

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func flatHeightfield(w, h int, value uint8) *Heightfield {
	hf := &Heightfield{Width: w, Height: h, Samples: make([]uint8, w*h)}
	for i := range hf.Samples {
		hf.Samples[i] = value
	}
	return hf
}

func TestBuildMeshCounts(t *testing.T) {
	tests := []struct {
		w, h        int
		wantIndices int
	}{
		{2, 2, 6},
		{3, 2, 12},
		{4, 5, 72},
		{16, 16, 6 * 15 * 15},
		{1, 1, 0},
		{1, 7, 0},
		{7, 1, 0},
	}

	for _, tt := range tests {
		mesh := BuildMesh(flatHeightfield(tt.w, tt.h, 0))

		if len(mesh.Vertices) != tt.w*tt.h {
			t.Errorf("%dx%d: %d vertices, want %d", tt.w, tt.h, len(mesh.Vertices), tt.w*tt.h)
		}
		if len(mesh.Indices) != tt.wantIndices {
			t.Errorf("%dx%d: %d indices, want %d", tt.w, tt.h, len(mesh.Indices), tt.wantIndices)
		}
		for i, idx := range mesh.Indices {
			if int(idx) >= tt.w*tt.h {
				t.Errorf("%dx%d: index %d at %d out of range", tt.w, tt.h, idx, i)
			}
		}
		if err := mesh.Validate(); err != nil {
			t.Errorf("%dx%d: Validate: %v", tt.w, tt.h, err)
		}
	}
}

func TestBuildVerticesLayout(t *testing.T) {
	const w, h = 5, 4
	hf := &Heightfield{Width: w, Height: h, Samples: make([]uint8, w*h)}
	for i := range hf.Samples {
		hf.Samples[i] = uint8(i * 10)
	}

	vertices := BuildVertices(hf)

	for y := range h {
		for x := range w {
			v := vertices[y*w+x]
			if v.Position[0] != float32(x) || v.Position[2] != float32(y) {
				t.Errorf("vertex (%d,%d) position = %v", x, y, v.Position)
			}
			if want := float32((y*w+x)*10) / 255; v.Position[1] != want {
				t.Errorf("vertex (%d,%d) height = %f, want %f", x, y, v.Position[1], want)
			}
			u, tv := v.TexCoord[0], v.TexCoord[1]
			if u < 0 || u > 1 || tv < 0 || tv > 1 {
				t.Errorf("vertex (%d,%d) texcoord %v outside [0,1]", x, y, v.TexCoord)
			}
		}
	}

	if first := vertices[0].TexCoord; first != [2]float32{0, 0} {
		t.Errorf("first texcoord = %v, want (0,0)", first)
	}
	if last := vertices[len(vertices)-1].TexCoord; last != [2]float32{1, 1} {
		t.Errorf("last texcoord = %v, want (1,1)", last)
	}
}

func TestBuildVerticesFlat(t *testing.T) {
	want := float32(128) / 255
	for _, v := range BuildVertices(flatHeightfield(8, 6, 128)) {
		if v.Position[1] != want {
			t.Fatalf("height = %f, want %f", v.Position[1], want)
		}
	}
	if want < 0.501 || want > 0.503 {
		t.Errorf("128/255 = %f, expected ~0.502", want)
	}
}

func TestBuildVerticesCorners(t *testing.T) {
	const w, h = 6, 4
	hf := flatHeightfield(w, h, 0)
	hf.Samples[0] = 0
	hf.Samples[(h-1)*w+(w-1)] = 255

	vertices := BuildVertices(hf)

	if vertices[0].Position[1] != 0 {
		t.Errorf("top-left height = %f, want 0", vertices[0].Position[1])
	}
	if got := vertices[len(vertices)-1].Position[1]; got != 1 {
		t.Errorf("bottom-right height = %f, want 1", got)
	}
	raised := 0
	for _, v := range vertices[1 : len(vertices)-1] {
		if v.Position[1] != 0 {
			raised++
		}
	}
	if raised != 0 {
		t.Errorf("%d interior vertices have non-zero height", raised)
	}
}

func TestBuildVerticesSingleSampleAxis(t *testing.T) {
	vertices := BuildVertices(flatHeightfield(1, 3, 50))
	for i, v := range vertices {
		if v.TexCoord[0] != 0 {
			t.Errorf("vertex %d u = %f, want 0", i, v.TexCoord[0])
		}
	}
	if vertices[2].TexCoord[1] != 1 {
		t.Errorf("last v = %f, want 1", vertices[2].TexCoord[1])
	}
}

func TestBuildIndicesWinding(t *testing.T) {
	const w, h = 4, 3
	indices := BuildIndices(w, h)

	cell := 0
	for y := range h - 1 {
		for x := range w - 1 {
			tl := uint32(y*w + x)
			tr := tl + 1
			bl := uint32((y+1)*w + x)
			br := bl + 1

			want := [6]uint32{tl, bl, tr, tr, bl, br}
			var got [6]uint32
			copy(got[:], indices[cell*6:cell*6+6])
			if got != want {
				t.Errorf("cell (%d,%d) = %v, want %v", x, y, got, want)
			}
			cell++
		}
	}
}

func TestBuildIndicesDegenerate(t *testing.T) {
	for _, dims := range [][2]int{{0, 0}, {1, 1}, {1, 5}, {5, 1}, {0, 9}} {
		indices := BuildIndices(dims[0], dims[1])
		if indices == nil || len(indices) != 0 {
			t.Errorf("BuildIndices(%d,%d) = %v, want empty slice", dims[0], dims[1], indices)
		}
	}
}

func TestMeshBounds(t *testing.T) {
	hf := flatHeightfield(3, 2, 0)
	hf.Samples[4] = 255

	b := BuildMesh(hf).Bounds
	if b.Min != [3]float32{0, 0, 0} {
		t.Errorf("min = %v", b.Min)
	}
	if b.Max != [3]float32{2, 1, 1} {
		t.Errorf("max = %v", b.Max)
	}
	if c := b.Center(); c != [3]float32{1, 0.5, 0.5} {
		t.Errorf("center = %v", c)
	}
}

func TestValidateRejectsBadIndex(t *testing.T) {
	mesh := BuildMesh(flatHeightfield(2, 2, 0))
	mesh.Indices[5] = 4

	if err := mesh.Validate(); !errors.Is(err, ErrInvalidMesh) {
		t.Errorf("expected ErrInvalidMesh, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 3))
	for i := range img.Pix {
		img.Pix[i] = 128
	}
	img.SetGray(2, 2, color.Gray{Y: 255})

	mesh, err := Load(writePNG(t, img))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if mesh.Width != 3 || mesh.Height != 3 {
		t.Errorf("size = %dx%d", mesh.Width, mesh.Height)
	}
	if mesh.TriangleCount() != 8 {
		t.Errorf("triangles = %d, want 8", mesh.TriangleCount())
	}
	if mesh.Vertices[8].Position[1] != 1 {
		t.Errorf("peak height = %f, want 1", mesh.Vertices[8].Position[1])
	}
}

func TestLoadMissing(t *testing.T) {
	mesh, err := Load("/nonexistent/heightmap.png")
	if err == nil || mesh != nil {
		t.Fatalf("Load = %v, %v; want nil, error", mesh, err)
	}
	if !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}
}
