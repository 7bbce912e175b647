package viewer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-heightmap/internal/engine/terrain"
)

// ModelMatrix maps mesh space (one unit per sample, height in [0, 1]) to
// world space.
func ModelMatrix(horizontalScale, heightScale float32) mgl32.Mat4 {
	return mgl32.Scale3D(horizontalScale, heightScale, horizontalScale)
}

// WorldBounds transforms mesh bounds by model. model must not rotate.
func WorldBounds(b terrain.Bounds, model mgl32.Mat4) (lo, hi mgl32.Vec3) {
	lo = mgl32.TransformCoordinate(mgl32.Vec3(b.Min), model)
	hi = mgl32.TransformCoordinate(mgl32.Vec3(b.Max), model)
	return lo, hi
}
