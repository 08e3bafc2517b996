package asset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lixenwraith/farmcycle/parameter"
)

// Path resolves a content shortcode ("root::relative") to a file under the asset root
// "::x" uses the core root; a shortcode without "::" is taken as a literal relative path
type Path struct {
	Short string
	Full  string
}

func newPath(short, infix string) Path {
	return Path{Short: short, Full: parse(short, infix)}
}

func parse(short, infix string) string {
	root, rel, ok := strings.Cut(short, "::")
	if !ok {
		return filepath.Clean(short)
	}
	if root == "" {
		root = parameter.AssetCoreDir
	}
	return filepath.Join(root, infix, rel)
}

// Data resolves a shortcode under the data directory
func Data(short string) Path { return newPath(short, parameter.PathData) }

// Model resolves a shortcode under the models directory
func Model(short string) Path { return newPath(short, parameter.PathModels) }

// Texture resolves a shortcode under the textures directory
func Texture(short string) Path { return newPath(short, parameter.PathTextures) }

// Sfx resolves a shortcode under the sound effects directory
func Sfx(short string) Path { return newPath(short, parameter.PathSfx) }

// Under joins the path with the asset root
func (p Path) Under(root string) string {
	return filepath.Join(root, p.Full)
}

// Exists reports whether the file is present under root
func (p Path) Exists(root string) bool {
	_, err := os.Stat(p.Under(root))
	return err == nil
}

func (p Path) String() string {
	return fmt.Sprintf("[%s](%s)", p.Short, p.Full)
}
