package parameter

// Asset layout under the asset root
const (
	// AssetRoot is the default asset directory relative to the working directory
	AssetRoot = "assets"

	// AssetCoreDir is the root used when a shortcode omits one ("::file")
	AssetCoreDir = "core"

	PathData     = "data"
	PathModels   = "models"
	PathTextures = "textures"
	PathSfx      = "sfx"

	// CropDataPrefix is the shortcode prefix of crop definition files
	CropDataPrefix = "::crops/"
)

// CropFileExtensions lists recognised crop definition suffixes in lookup order
var CropFileExtensions = []string{".crop.toml", ".crop.json", ".crop.yaml", ".crop.yml"}
