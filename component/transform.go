package component

import "github.com/lixenwraith/farmcycle/core"

// TransformComponent places an entity in the field
type TransformComponent struct {
	Position core.Vec3
	Scale    float64
}

// NameComponent is a human-readable label used in logs and the observer API
type NameComponent struct {
	Name string
}
