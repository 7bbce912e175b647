package viewer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-heightmap/internal/engine/terrain"
)

func TestModelMatrixScalesAxes(t *testing.T) {
	m := ModelMatrix(2, 64)
	p := mgl32.TransformCoordinate(mgl32.Vec3{3, 0.5, 4}, m)
	if !p.ApproxEqual(mgl32.Vec3{6, 32, 8}) {
		t.Errorf("transformed = %v, want (6, 32, 8)", p)
	}
}

func TestWorldBounds(t *testing.T) {
	b := terrain.Bounds{Min: [3]float32{0, 0, 0}, Max: [3]float32{127, 1, 63}}

	lo, hi := WorldBounds(b, ModelMatrix(1, 40))
	if !lo.ApproxEqual(mgl32.Vec3{}) {
		t.Errorf("min = %v", lo)
	}
	if !hi.ApproxEqual(mgl32.Vec3{127, 40, 63}) {
		t.Errorf("max = %v", hi)
	}
}
