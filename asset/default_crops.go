package asset

// DefaultCropData holds the built-in crop definitions (TOML) used when the data root has no file for an id
var DefaultCropData = map[string]string{
	"corn":  defaultCorn,
	"beets": defaultBeets,
}

const defaultCorn = `
id = "corn"

[[stages]]
model = "::crops/corn_sprout.glb"
duration = { min = 1, max = 2 }
begin_status = { kind = "Growing" }

[[stages]]
model = "::crops/corn_young.glb"
duration = { min = 2, max = 3 }

[[stages]]
model = "::crops/corn_mature.glb"
duration = { min = 1, max = 1 }

  [stages.begin_status]
  kind = "Fruiting"
  model = "::crops/corn_ears.glb"

  [[stages.begin_status.drops]]
  item = "corn"
  amount = { min = 2, max = 4 }

[[stages]]
model = "::crops/corn_withered.glb"
duration = { min = 1, max = 1 }
begin_status = { kind = "Dead" }
`

const defaultBeets = `
id = "beets"

[[stages]]
model = "::crops/beet_sprout.glb"
duration = { min = 1, max = 1 }
begin_status = { kind = "Growing" }

[[stages]]
model = "::crops/beet_leafy.glb"
duration = { min = 2, max = 4 }

[[stages]]
model = "::crops/beet_bolting.glb"
duration = { min = 1, max = 2 }

  [stages.begin_status]
  kind = "Seeding"
  model = "::crops/beet_seedhead.glb"

  [[stages.begin_status.drops]]
  item = "beet"
  amount = { min = 1, max = 3 }

  [[stages.begin_status.drops]]
  item = "beet_seed"
  amount = { min = 2, max = 5 }
`
