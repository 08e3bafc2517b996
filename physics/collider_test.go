package physics

import "testing"

func TestHullRegistryLifecycle(t *testing.T) {
	r := NewHullRegistry()

	r.RegenerateColliders(1, "::crops/a.glb")
	r.RegenerateColliders(1, "::crops/b.glb")
	shapes := r.Get(1)
	if len(shapes) != 1 || shapes[0].Model != "::crops/b.glb" {
		t.Fatalf("shapes = %+v, want one hull from b", shapes)
	}
	if shapes[0].Constructor != ConvexHullFromMesh || shapes[0].Body != BodyStatic {
		t.Errorf("unexpected collider kind %+v", shapes[0])
	}

	r.RemoveColliders(1)
	r.RemoveColliders(1)
	r.RemoveColliders(2)
	if len(r.Get(1)) != 0 {
		t.Error("shapes remain after removal")
	}

	removed, regenerated := r.Stats()
	if removed != 1 || regenerated != 2 {
		t.Errorf("Stats() = %d, %d; want 1, 2", removed, regenerated)
	}
}
