package terrain

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Faultbox/midgard-heightmap/internal/engine/lighting"
)

// Sun from the north-west, 45 degrees up, no ambient floor.
var testSun = lighting.Sun{Azimuth: 225, Elevation: 45}

func TestWriteOBJ(t *testing.T) {
	hf := &Heightfield{Width: 2, Height: 2, Samples: []uint8{0, 255, 0, 0}}

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, BuildMesh(hf)); err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}

	var verts, uvs, faces []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		switch {
		case strings.HasPrefix(line, "v "):
			verts = append(verts, line)
		case strings.HasPrefix(line, "vt "):
			uvs = append(uvs, line)
		case strings.HasPrefix(line, "f "):
			faces = append(faces, line)
		}
	}

	if len(verts) != 4 || len(uvs) != 4 || len(faces) != 2 {
		t.Fatalf("got %d v, %d vt, %d f", len(verts), len(uvs), len(faces))
	}
	if verts[1] != "v 1 1 0" {
		t.Errorf("vertex 2 = %q, want %q", verts[1], "v 1 1 0")
	}
	if uvs[3] != "vt 1 1" {
		t.Errorf("uv 4 = %q", uvs[3])
	}
	// (TL, BL, TR) and (TR, BL, BR), 1-based.
	if faces[0] != "f 1/1 3/3 2/2" || faces[1] != "f 2/2 3/3 4/4" {
		t.Errorf("faces = %q", faces)
	}
}

func TestReliefFlatIsUniform(t *testing.T) {
	img := Relief(BuildMesh(flatHeightfield(4, 3, 90)), 10, testSun)

	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	first := img.Pix[0]
	for i, p := range img.Pix {
		if p != first {
			t.Fatalf("pixel %d = %d, want %d on flat terrain", i, p, first)
		}
	}
	// A level surface faces the light at 45 degrees: cos(45) * 255.
	if first < 179 || first > 182 {
		t.Errorf("flat shade = %d, want ~180", first)
	}
}

func TestReliefSlopeFacingLightIsBrighter(t *testing.T) {
	// Terrain rising toward +x faces west, toward the light.
	const w, h = 5, 3
	up := &Heightfield{Width: w, Height: h, Samples: make([]uint8, w*h)}
	down := &Heightfield{Width: w, Height: h, Samples: make([]uint8, w*h)}
	for y := range h {
		for x := range w {
			up.Samples[y*w+x] = uint8(x * 50)
			down.Samples[y*w+x] = uint8((w - 1 - x) * 50)
		}
	}

	rising := Relief(BuildMesh(up), 5, testSun).GrayAt(2, 1).Y
	falling := Relief(BuildMesh(down), 5, testSun).GrayAt(2, 1).Y
	if rising <= falling {
		t.Errorf("slope facing light (%d) should be brighter than slope facing away (%d)", rising, falling)
	}
}

func TestReliefAmbientFloor(t *testing.T) {
	// A steep wall facing away from the sun still gets the ambient level.
	hf := &Heightfield{Width: 3, Height: 1, Samples: []uint8{255, 0, 0}}
	sun := lighting.Sun{Azimuth: 270, Elevation: 10, Ambient: 0.5}

	got := Relief(BuildMesh(hf), 100, sun).GrayAt(0, 0).Y
	if got < 127 || got > 129 {
		t.Errorf("shade = %d, want ambient ~128", got)
	}
}
