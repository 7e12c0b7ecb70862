package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxelcraft.ai/chunkworld/internal/sim/world/terrain/block"
)

type Face uint8

const (
	PosZ Face = iota // front
	NegZ             // back
	PosX             // right
	NegX             // left
	PosY             // top
	NegY             // bottom
)

// Faces lists all six faces in emission order.
var Faces = [6]Face{PosZ, NegZ, PosX, NegX, PosY, NegY}

var faceStep = [6][3]int{
	PosZ: {0, 0, 1},
	NegZ: {0, 0, -1},
	PosX: {1, 0, 0},
	NegX: {-1, 0, 0},
	PosY: {0, 1, 0},
	NegY: {0, -1, 0},
}

// Corners are unit-cube offsets, counter-clockwise seen from outside.
var faceCorners = [6][4]mgl32.Vec3{
	PosZ: {{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}},
	NegZ: {{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}},
	PosX: {{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}},
	NegX: {{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
	PosY: {{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0}},
	NegY: {{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
}

func (f Face) Step() (dx, dy, dz int) {
	s := faceStep[f]
	return s[0], s[1], s[2]
}

func (f Face) Normal() mgl32.Vec3 {
	s := faceStep[f]
	return mgl32.Vec3{float32(s[0]), float32(s[1]), float32(s[2])}
}

func (f Face) Orientation() block.Orientation {
	switch f {
	case PosY:
		return block.Top
	case NegY:
		return block.Bottom
	default:
		return block.Side
	}
}

func (f Face) String() string {
	switch f {
	case PosZ:
		return "+z"
	case NegZ:
		return "-z"
	case PosX:
		return "+x"
	case NegX:
		return "-x"
	case PosY:
		return "+y"
	default:
		return "-y"
	}
}
