package component

import (
	"time"

	"github.com/lixenwraith/farmcycle/core"
)

// EffectComponent is a one-shot particle effect; the entity is destroyed when Remaining runs out
type EffectComponent struct {
	ID        string
	Position  core.Vec3
	Particles int
	Remaining time.Duration
}
