package core

// Entity is a stable integer handle into the world's component stores
// Zero is never issued and means "no entity"
type Entity uint64

// Vec3 is a world-space position
type Vec3 struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
	Z float64 `json:"z" toml:"z"`
}

// V3 builds a Vec3
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}
