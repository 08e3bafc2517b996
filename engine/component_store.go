package engine

import (
	"github.com/lixenwraith/farmcycle/component"
	"github.com/lixenwraith/farmcycle/core"
)

// entityStore is the type-erased view of a Store used for bulk teardown
type entityStore interface {
	RemoveEntity(e core.Entity)
	ClearAllComponents()
}

// ComponentStore holds typed pointers to every component store in the world
type ComponentStore struct {
	// Crop lifecycle
	Crop  *Store[component.CropComponent]
	Fruit *Store[component.CropFruitComponent]

	// Spatial and presentation
	Transform *Store[component.TransformComponent]
	Name      *Store[component.NameComponent]
	Model     *Store[component.ModelComponent]

	// Effect
	Effect *Store[component.EffectComponent]
}

func newComponentStore() ComponentStore {
	return ComponentStore{
		Crop:      NewStore[component.CropComponent](),
		Fruit:     NewStore[component.CropFruitComponent](),
		Transform: NewStore[component.TransformComponent](),
		Name:      NewStore[component.NameComponent](),
		Model:     NewStore[component.ModelComponent](),
		Effect:    NewStore[component.EffectComponent](),
	}
}

func (cs *ComponentStore) all() []entityStore {
	return []entityStore{cs.Crop, cs.Fruit, cs.Transform, cs.Name, cs.Model, cs.Effect}
}
