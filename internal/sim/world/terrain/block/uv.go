package block

// Orientation selects which atlas cell a face samples.
type Orientation uint8

const (
	Top Orientation = iota
	Side
	Bottom

	orientationCount
)

// UVRect is (UMin, VMin, UMax, VMax) in atlas space.
type UVRect struct {
	UMin, VMin, UMax, VMax float32
}

// FullRect is used for any (kind, orientation) pair the atlas does not map.
var FullRect = UVRect{0, 0, 1, 1}

// The atlas is a 4x4 grid of cells.
const atlasCell = float32(1) / 4

func cell(col, row int) UVRect {
	u := float32(col) * atlasCell
	v := float32(row) * atlasCell
	return UVRect{UMin: u, VMin: v, UMax: u + atlasCell, VMax: v + atlasCell}
}

type faceUVs struct {
	rect [orientationCount]UVRect
	ok   [orientationCount]bool
}

func uniform(r UVRect) faceUVs {
	return faceUVs{
		rect: [orientationCount]UVRect{r, r, r},
		ok:   [orientationCount]bool{true, true, true},
	}
}

var uvTable = [kindCount]faceUVs{
	Grass: {
		rect: [orientationCount]UVRect{cell(0, 0), cell(1, 0), cell(1, 1)},
		ok:   [orientationCount]bool{true, true, true},
	},
	Dirt:    uniform(cell(1, 1)),
	Stone:   uniform(cell(2, 0)),
	Bedrock: uniform(cell(3, 1)),
	Sand:    uniform(cell(1, 2)),
	Gravel:  uniform(cell(2, 2)),
	Snow: {
		rect: [orientationCount]UVRect{cell(3, 2), cell(3, 2), cell(1, 1)},
		ok:   [orientationCount]bool{true, true, true},
	},
	Wood: {
		rect: [orientationCount]UVRect{cell(0, 3), cell(3, 0), cell(0, 3)},
		ok:   [orientationCount]bool{true, true, true},
	},
	Leaves: uniform(cell(0, 1)),
	// Water only samples a surface cell.
	Water: {
		rect: [orientationCount]UVRect{cell(2, 1)},
		ok:   [orientationCount]bool{true, false, false},
	},
}

// FaceUV returns the atlas rectangle for a face of kind k, falling back to
// FullRect for unmapped pairs.
func FaceUV(k Kind, o Orientation) UVRect {
	if !k.Valid() || o >= orientationCount {
		return FullRect
	}
	e := uvTable[k]
	if !e.ok[o] {
		return FullRect
	}
	return e.rect[o]
}
