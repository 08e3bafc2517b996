package crop

import (
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/lixenwraith/farmcycle/asset"
	"github.com/lixenwraith/farmcycle/parameter"
)

// Library is the definition asset cache, one file per crop type under the data root
// Definitions are loaded on first use and shared read-only afterwards
type Library struct {
	root string

	mu       sync.RWMutex
	cache    map[string]*Definition
	embedded map[string]string
}

// NewLibrary creates a library resolving "::crops/<id>.crop.*" under assetRoot
func NewLibrary(assetRoot string) *Library {
	return &Library{
		root:     assetRoot,
		cache:    make(map[string]*Definition),
		embedded: make(map[string]string),
	}
}

// WithEmbedded adds TOML sources consulted when no file exists for an id
func (l *Library) WithEmbedded(sources map[string]string) *Library {
	l.mu.Lock()
	defer l.mu.Unlock()
	for id, src := range sources {
		l.embedded[id] = src
	}
	return l
}

// Register stores an in-memory definition under its id
func (l *Library) Register(def *Definition) error {
	if err := def.Validate(); err != nil {
		return &DefinitionLoadError{ID: def.ID, Err: err}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache[def.ID] = def
	return nil
}

// Dir returns the directory holding crop definition files
func (l *Library) Dir() string {
	return asset.Data(parameter.CropDataPrefix).Under(l.root)
}

// ValidID reports whether id names a file directly inside the crop data directory
func ValidID(id string) bool {
	return id != "" && !strings.ContainsAny(id, `/\`) && !strings.Contains(id, "..")
}

// PathFor returns the first existing definition file for id
func (l *Library) PathFor(id string) (string, bool) {
	if !ValidID(id) {
		return "", false
	}
	for _, ext := range parameter.CropFileExtensions {
		p := asset.Data(parameter.CropDataPrefix + id + ext)
		if p.Exists(l.root) {
			return p.Under(l.root), true
		}
	}
	return "", false
}

// Get returns the definition for id, loading it on first request
// Failures are *DefinitionLoadError and leave the cache untouched
func (l *Library) Get(id string) (*Definition, error) {
	if !ValidID(id) {
		return nil, &DefinitionLoadError{ID: id, Err: ErrInvalidID}
	}

	l.mu.RLock()
	def, ok := l.cache[id]
	src, embedded := l.embedded[id]
	l.mu.RUnlock()
	if ok {
		return def, nil
	}

	if path, found := l.PathFor(id); found {
		def, err := ReadFile(path)
		if err != nil {
			return nil, &DefinitionLoadError{ID: id, Path: path, Err: err}
		}
		return l.store(id, def), nil
	}

	if embedded {
		def, err := Unmarshal([]byte(src), FormatTOML)
		if err != nil {
			return nil, &DefinitionLoadError{ID: id, Path: "<embedded>", Err: err}
		}
		return l.store(id, def), nil
	}

	return nil, &DefinitionLoadError{
		ID:         id,
		Path:       asset.Data(parameter.CropDataPrefix + id + parameter.CropFileExtensions[0]).Under(l.root),
		Err:        fs.ErrNotExist,
		Suggestion: l.Suggest(id),
	}
}

func (l *Library) store(id string, def *Definition) *Definition {
	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.cache[id]; ok {
		return existing
	}
	l.cache[id] = def
	return def
}

// IDs lists every known crop id: cached, on disk, and embedded
func (l *Library) IDs() []string {
	seen := make(map[string]bool)

	l.mu.RLock()
	for id := range l.cache {
		seen[id] = true
	}
	for id := range l.embedded {
		seen[id] = true
	}
	l.mu.RUnlock()

	if entries, err := os.ReadDir(l.Dir()); err == nil {
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			for _, ext := range parameter.CropFileExtensions {
				if id, ok := strings.CutSuffix(e.Name(), ext); ok {
					seen[id] = true
					break
				}
			}
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Suggest returns the closest known id within edit distance, or ""
func (l *Library) Suggest(id string) string {
	best, bestDist := "", -1
	for _, cand := range l.IDs() {
		dist := levenshtein.ComputeDistance(strings.ToLower(id), strings.ToLower(cand))
		if dist > levenshteinLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func (l *Library) String() string {
	return fmt.Sprintf("crop library at %s", l.Dir())
}
