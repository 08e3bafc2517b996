package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/farmcycle/crop"
)

func runTool(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeExample(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if code, _, stderr := runTool(t, "example", "-o", path); code != 0 {
		t.Fatalf("example -o: %s", stderr)
	}
	return path
}

func TestExample_Stdout(t *testing.T) {
	for _, format := range []string{"toml", "json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			code, out, stderr := runTool(t, "example", "-format", format)
			if code != 0 {
				t.Fatalf("exit %d: %s", code, stderr)
			}
			f, _ := crop.FormatFromPath("x." + format)
			def, err := crop.Unmarshal([]byte(out), f)
			if err != nil {
				t.Fatalf("decode output: %v", err)
			}
			if !def.Equal(crop.Example()) {
				t.Errorf("decoded %+v", def)
			}
		})
	}
}

func TestValidateAndConvert(t *testing.T) {
	src := writeExample(t, "example.crop.toml")
	dst := filepath.Join(t.TempDir(), "example.crop.json")

	if code, out, _ := runTool(t, "validate", src); code != 0 || !strings.Contains(out, "3 stages") {
		t.Fatalf("validate: code=%d out=%q", code, out)
	}
	if code, _, stderr := runTool(t, "convert", src, dst); code != 0 {
		t.Fatalf("convert: %s", stderr)
	}
	def, err := crop.ReadFile(dst)
	if err != nil {
		t.Fatalf("read converted: %v", err)
	}
	if !def.Equal(crop.Example()) {
		t.Errorf("converted %+v", def)
	}
}

func TestValidate_ReportsBadFiles(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.crop.txt")
	code, out, _ := runTool(t, "validate", bad)
	if code != 1 || !strings.Contains(out, "FAIL") {
		t.Errorf("code=%d out=%q", code, out)
	}
}

func TestStageEditing(t *testing.T) {
	path := writeExample(t, "edit.crop.toml")

	code, _, stderr := runTool(t, "stage", "add", path, "-model", "::dead.glb", "-min", "2", "-max", "4", "-status", "dead")
	if code != 0 {
		t.Fatalf("add: %s", stderr)
	}
	def, _ := crop.ReadFile(path)
	if len(def.Stages) != 4 || def.Stages[3].BeginStatus.Kind != crop.StatusDead || def.Stages[3].Duration != (crop.Range{Min: 2, Max: 4}) {
		t.Fatalf("after add = %+v", def.Stages)
	}

	if code, _, stderr := runTool(t, "stage", "move", path, "3", "-10"); code != 0 {
		t.Fatalf("move: %s", stderr)
	}
	def, _ = crop.ReadFile(path)
	if def.Stages[0].Model != "::dead.glb" {
		t.Fatalf("after move = %+v", def.Stages)
	}

	if code, _, stderr := runTool(t, "stage", "remove", path, "0"); code != 0 {
		t.Fatalf("remove: %s", stderr)
	}
	def, _ = crop.ReadFile(path)
	if !def.Equal(crop.Example()) {
		t.Errorf("after remove = %+v", def.Stages)
	}
}

func TestStageAdd_FruitingDrops(t *testing.T) {
	path := writeExample(t, "fruit.crop.yaml")

	code, _, stderr := runTool(t, "stage", "add", path, "-model", "::m.glb",
		"-status", "Fruiting", "-status-model", "::f.glb", "-drop", "corn:1:3", "-drop", "seed:0:1")
	if code != 0 {
		t.Fatalf("add: %s", stderr)
	}
	def, _ := crop.ReadFile(path)
	st := def.Stages[len(def.Stages)-1].BeginStatus
	if st == nil || st.Model != "::f.glb" || len(st.Drops) != 2 || st.Drops[0] != crop.Drop("corn", 1, 3) {
		t.Errorf("status = %+v", st)
	}
}

func TestStage_Errors(t *testing.T) {
	path := writeExample(t, "err.crop.toml")

	tests := []struct {
		name string
		args []string
	}{
		{"bad index", []string{"stage", "remove", path, "7"}},
		{"bad range", []string{"stage", "add", path, "-min", "5", "-max", "1"}},
		{"bad status", []string{"stage", "add", path, "-status", "Sleeping"}},
		{"bad drop", []string{"stage", "add", path, "-status", "Seeding", "-drop", "corn:1"}},
		{"unknown op", []string{"stage", "split", path}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code, _, _ := runTool(t, tt.args...); code == 0 {
				t.Error("expected failure")
			}
		})
	}

	def, _ := crop.ReadFile(path)
	if !def.Equal(crop.Example()) {
		t.Error("failed edits modified the file")
	}
}

func TestRun_Usage(t *testing.T) {
	if code, _, _ := runTool(t); code != 2 {
		t.Errorf("no args exit = %d", code)
	}
	if code, _, _ := runTool(t, "dance"); code != 2 {
		t.Errorf("unknown command exit = %d", code)
	}
}

func TestList_Embedded(t *testing.T) {
	code, out, _ := runTool(t, "list", "-data", t.TempDir())
	if code != 0 || !strings.Contains(out, "corn") || !strings.Contains(out, "embedded") {
		t.Errorf("code=%d out=%q", code, out)
	}
}
