package block

// Kind is a closed set of voxel kinds. The zero value is Air, so a freshly
// allocated grid is empty.
type Kind uint8

const (
	Air Kind = iota
	Bedrock
	Stone
	Dirt
	Grass
	Sand
	Gravel
	Snow
	Wood
	Leaves
	Water

	kindCount
)

type props struct {
	name        string
	solid       bool
	transparent bool
	// 0 means unbreakable.
	hardness float64
}

var table = [kindCount]props{
	Air:     {name: "AIR", solid: false, transparent: true},
	Bedrock: {name: "BEDROCK", solid: true},
	Stone:   {name: "STONE", solid: true, hardness: 1.5},
	Dirt:    {name: "DIRT", solid: true, hardness: 0.5},
	Grass:   {name: "GRASS", solid: true, hardness: 0.6},
	Sand:    {name: "SAND", solid: true, hardness: 0.5},
	Gravel:  {name: "GRAVEL", solid: true, hardness: 0.6},
	Snow:    {name: "SNOW", solid: true, hardness: 0.2},
	Wood:    {name: "WOOD", solid: true, hardness: 2.0},
	Leaves:  {name: "LEAVES", solid: true, transparent: true, hardness: 0.2},
	Water:   {name: "WATER", solid: false, transparent: true},
}

// All lists every kind in declaration order.
func All() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Air; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

func (k Kind) Valid() bool { return k < kindCount }

func (k Kind) String() string {
	if !k.Valid() {
		return "UNKNOWN"
	}
	return table[k].name
}

func (k Kind) IsAir() bool { return k == Air }

func (k Kind) Solid() bool {
	return k.Valid() && table[k].solid
}

// Transparent reports whether faces behind this kind stay visible.
// Unknown kinds count as transparent so they never hide geometry.
func (k Kind) Transparent() bool {
	return !k.Valid() || table[k].transparent
}

// Opaque is the set of kinds the mesher emits faces for.
func (k Kind) Opaque() bool {
	return k.Solid() && !k.Transparent()
}

// Hardness returns the break resistance; ok is false for unbreakable kinds.
func (k Kind) Hardness() (h float64, ok bool) {
	if !k.Valid() || table[k].hardness <= 0 {
		return 0, false
	}
	return table[k].hardness, true
}

// Parse maps a kind name back to its Kind.
func Parse(name string) (Kind, bool) {
	for k := Air; k < kindCount; k++ {
		if table[k].name == name {
			return k, true
		}
	}
	return Air, false
}
