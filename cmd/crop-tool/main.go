// crop-tool authors crop definition files without starting the farm
//
//	crop-tool example [-format toml|json|yaml] [-o file]
//	crop-tool validate <file>...
//	crop-tool convert <in> <out>
//	crop-tool list [-data dir]
//	crop-tool stage add <file> -model m [-min n -max n] [-status kind -status-model m -drop item:min:max]
//	crop-tool stage remove <file> <index>
//	crop-tool stage move <file> <index> <delta>
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lixenwraith/farmcycle/asset"
	"github.com/lixenwraith/farmcycle/crop"
	"github.com/lixenwraith/farmcycle/parameter"
)

var errUsage = errors.New("usage: crop-tool example|validate|convert|list|stage ...")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, errUsage)
		return 2
	}

	var err error
	switch args[0] {
	case "example":
		err = cmdExample(args[1:], stdout)
	case "validate":
		err = cmdValidate(args[1:], stdout)
	case "convert":
		err = cmdConvert(args[1:], stdout)
	case "list":
		err = cmdList(args[1:], stdout)
	case "stage":
		err = cmdStage(args[1:], stdout)
	default:
		err = errUsage
	}

	if err != nil {
		fmt.Fprintf(stderr, "crop-tool: %v\n", err)
		if errors.Is(err, errUsage) {
			return 2
		}
		return 1
	}
	return 0
}

func cmdExample(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("example", flag.ContinueOnError)
	format := fs.String("format", "toml", "output format: toml, json, yaml")
	out := fs.String("o", "", "write to file instead of stdout (format from extension)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	def := crop.Example()
	if *out != "" {
		if err := crop.WriteFile(*out, def); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "wrote %s\n", *out)
		return nil
	}

	f, err := crop.FormatFromPath("x." + *format)
	if err != nil {
		return err
	}
	data, err := crop.Marshal(def, f)
	if err != nil {
		return err
	}
	_, err = stdout.Write(data)
	return err
}

func cmdValidate(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: validate <file>...", errUsage)
	}
	failed := 0
	for _, path := range args {
		def, err := crop.ReadFile(path)
		if err != nil {
			fmt.Fprintf(stdout, "FAIL %s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Fprintf(stdout, "ok   %s: %s, %d stages\n", path, def.ID, len(def.Stages))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files invalid", failed, len(args))
	}
	return nil
}

func cmdConvert(args []string, stdout io.Writer) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: convert <in> <out>", errUsage)
	}
	def, err := crop.ReadFile(args[0])
	if err != nil {
		return err
	}
	if err := crop.WriteFile(args[1], def); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s -> %s\n", args[0], args[1])
	return nil
}

func cmdList(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	root := fs.String("data", parameter.AssetRoot, "asset root holding data/crops")
	if err := fs.Parse(args); err != nil {
		return err
	}

	lib := crop.NewLibrary(*root).WithEmbedded(asset.DefaultCropData)
	for _, id := range lib.IDs() {
		def, err := lib.Get(id)
		if err != nil {
			fmt.Fprintf(stdout, "%-16s error: %v\n", id, err)
			continue
		}
		source := "embedded"
		if path, ok := lib.PathFor(id); ok {
			source = path
		}
		fmt.Fprintf(stdout, "%-16s %2d stages  %s\n", id, len(def.Stages), source)
	}
	return nil
}

func cmdStage(args []string, stdout io.Writer) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: stage add|remove|move <file> ...", errUsage)
	}
	op, path, rest := args[0], args[1], args[2:]

	def, err := crop.ReadFile(path)
	if err != nil {
		return err
	}

	switch op {
	case "add":
		stage, err := parseStage(rest)
		if err != nil {
			return err
		}
		idx := def.AddStage(stage)
		fmt.Fprintf(stdout, "added stage %d (%s, %s)\n", idx, stage.Model, stage.Duration)

	case "remove":
		if len(rest) != 1 {
			return fmt.Errorf("%w: stage remove <file> <index>", errUsage)
		}
		idx, err := strconv.Atoi(rest[0])
		if err != nil {
			return fmt.Errorf("index: %w", err)
		}
		if len(def.Stages) == 1 {
			return fmt.Errorf("cannot remove the last stage: %w", crop.ErrEmptyStages)
		}
		if err := def.RemoveStage(idx); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "removed stage %d\n", idx)

	case "move":
		if len(rest) != 2 {
			return fmt.Errorf("%w: stage move <file> <index> <delta>", errUsage)
		}
		idx, err := strconv.Atoi(rest[0])
		if err != nil {
			return fmt.Errorf("index: %w", err)
		}
		delta, err := strconv.Atoi(rest[1])
		if err != nil {
			return fmt.Errorf("delta: %w", err)
		}
		to, err := def.MoveStage(idx, delta)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "moved stage %d to %d\n", idx, to)

	default:
		return fmt.Errorf("%w: unknown stage op %q", errUsage, op)
	}

	return crop.WriteFile(path, def)
}

// dropList collects repeated -drop item:min:max flags
type dropList []crop.ItemDrop

func (d *dropList) String() string { return fmt.Sprint(len(*d)) }

func (d *dropList) Set(v string) error {
	parts := strings.Split(v, ":")
	if len(parts) != 3 || parts[0] == "" {
		return fmt.Errorf("drop %q: want item:min:max", v)
	}
	lo, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return fmt.Errorf("drop %q min: %w", v, err)
	}
	hi, err := strconv.ParseUint(parts[2], 10, 32)
	if err != nil {
		return fmt.Errorf("drop %q max: %w", v, err)
	}
	*d = append(*d, crop.Drop(crop.ItemID(parts[0]), uint32(lo), uint32(hi)))
	return nil
}

func parseStage(args []string) (crop.Stage, error) {
	fs := flag.NewFlagSet("stage add", flag.ContinueOnError)
	model := fs.String("model", "", "stage model shortcode")
	lo := fs.Uint("min", 1, "minimum duration in days")
	hi := fs.Uint("max", 1, "maximum duration in days")
	status := fs.String("status", "", "begin status: Growing, Fruiting, Seeding, Dead (empty keeps the previous)")
	statusModel := fs.String("status-model", "", "model shown while Fruiting or Seeding")
	var drops dropList
	fs.Var(&drops, "drop", "drop entry item:min:max (repeatable)")
	if err := fs.Parse(args); err != nil {
		return crop.Stage{}, err
	}

	stage := crop.Stage{
		Model:    *model,
		Duration: crop.Range{Min: uint32(*lo), Max: uint32(*hi)},
	}
	if err := stage.Duration.Validate(); err != nil {
		return crop.Stage{}, err
	}
	if *status == "" {
		return stage, nil
	}

	var kind crop.StatusKind
	if err := kind.UnmarshalText([]byte(*status)); err != nil {
		return crop.Stage{}, err
	}
	st := crop.Status{Kind: kind}
	if st.HasPayload() {
		st.Model = *statusModel
		st.Drops = drops
	}
	if err := st.Validate(); err != nil {
		return crop.Stage{}, err
	}
	stage.BeginStatus = &st
	return stage, nil
}
