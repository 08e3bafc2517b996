package component

import "github.com/lixenwraith/farmcycle/asset"

// ModelRequest is a pending model swap waiting on the asset loader
type ModelRequest struct {
	Handle asset.Handle
	Path   asset.Path
}

// ModelComponent tracks the displayed model and queued swaps in request order
type ModelComponent struct {
	Current asset.Path
	Pending []ModelRequest
}
