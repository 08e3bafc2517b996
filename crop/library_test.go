package crop

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func writeRaw(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

const embeddedRadish = `
id = "radish"

[[stages]]
model = "::crops/radish.glb"
duration = { min = 1, max = 1 }
`

func TestLibraryLoadsFromDataRoot(t *testing.T) {
	root := t.TempDir()
	lib := NewLibrary(root)

	def := Example()
	def.ID = "pumpkin"
	if err := WriteFile(filepath.Join(lib.Dir(), "pumpkin.crop.json"), def); err != nil {
		t.Fatal(err)
	}

	got, err := lib.Get("pumpkin")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.Equal(def) {
		t.Error("loaded definition differs from file")
	}

	again, _ := lib.Get("pumpkin")
	if again != got {
		t.Error("second Get should return the cached definition")
	}
}

func TestLibraryFallsBackToEmbedded(t *testing.T) {
	lib := NewLibrary(t.TempDir()).WithEmbedded(map[string]string{"radish": embeddedRadish})
	def, err := lib.Get("radish")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if def.ID != "radish" || len(def.Stages) != 1 {
		t.Errorf("unexpected definition %+v", def)
	}
}

func TestLibraryMissingSuggests(t *testing.T) {
	lib := NewLibrary(t.TempDir()).WithEmbedded(map[string]string{"radish": embeddedRadish})

	_, err := lib.Get("radsh")
	var loadErr *DefinitionLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("got %T %v, want *DefinitionLoadError", err, err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("missing definition should wrap fs.ErrNotExist")
	}
	if loadErr.Suggestion != "radish" {
		t.Errorf("Suggestion = %q, want radish", loadErr.Suggestion)
	}

	if _, err := lib.Get("zucchini"); err == nil {
		t.Fatal("expected error")
	} else if errors.As(err, &loadErr); loadErr.Suggestion != "" {
		t.Errorf("far id got suggestion %q", loadErr.Suggestion)
	}
}

func TestLibraryMalformedFileAbortsOnlyThatCrop(t *testing.T) {
	lib := NewLibrary(t.TempDir())
	if err := writeRaw(filepath.Join(lib.Dir(), "bad.crop.toml"), "id = \"bad\"\nstages = []\n"); err != nil {
		t.Fatal(err)
	}
	if err := lib.Register(Example()); err != nil {
		t.Fatal(err)
	}

	_, err := lib.Get("bad")
	if !errors.Is(err, ErrEmptyStages) {
		t.Errorf("bad: got %v, want ErrEmptyStages", err)
	}
	if _, err := lib.Get("Example"); err != nil {
		t.Errorf("unrelated crop failed: %v", err)
	}
}

func TestLibraryIDs(t *testing.T) {
	lib := NewLibrary(t.TempDir()).WithEmbedded(map[string]string{"radish": embeddedRadish})
	if err := WriteFile(filepath.Join(lib.Dir(), "onion.crop.yaml"), &Definition{ID: "onion", Stages: []Stage{{Model: "m", Duration: Fixed(1)}}}); err != nil {
		t.Fatal(err)
	}
	ids := lib.IDs()
	if !equalStrings(ids, []string{"onion", "radish"}) {
		t.Errorf("IDs() = %v", ids)
	}
}

func TestLibraryRejectsIDsOutsideDataDir(t *testing.T) {
	lib := NewLibrary(t.TempDir())

	def := Example()
	def.ID = "escape"
	if err := WriteFile(filepath.Join(lib.Dir(), "..", "escape.crop.json"), def); err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{"../escape", `..\escape`, "sub/escape", ""} {
		if _, found := lib.PathFor(id); found {
			t.Errorf("PathFor(%q) resolved a file", id)
		}
		_, err := lib.Get(id)
		if !errors.Is(err, ErrInvalidID) {
			t.Errorf("Get(%q) err = %v, want ErrInvalidID", id, err)
		}
	}
	if ids := lib.IDs(); len(ids) != 0 {
		t.Errorf("rejected ids cached: %v", ids)
	}
}
