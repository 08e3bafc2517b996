package engine

import (
	"sort"
	"sync"

	"github.com/lixenwraith/farmcycle/crop"
)

// InventoryResource is the player item store credited by resolved drops
type InventoryResource struct {
	mu    sync.RWMutex
	items map[crop.ItemID]uint64
}

// NewInventoryResource creates an empty inventory
func NewInventoryResource() *InventoryResource {
	return &InventoryResource{items: make(map[crop.ItemID]uint64)}
}

// Add credits amount of item and returns the new total
func (inv *InventoryResource) Add(item crop.ItemID, amount uint32) uint64 {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.items[item] += uint64(amount)
	return inv.items[item]
}

// Count returns the held amount of item
func (inv *InventoryResource) Count(item crop.ItemID) uint64 {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.items[item]
}

// ItemStack is one inventory line
type ItemStack struct {
	Item   crop.ItemID `json:"item"`
	Amount uint64      `json:"amount"`
}

// Snapshot lists every held item sorted by id
func (inv *InventoryResource) Snapshot() []ItemStack {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	out := make([]ItemStack, 0, len(inv.items))
	for id, n := range inv.items {
		out = append(out, ItemStack{Item: id, Amount: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Item < out[j].Item })
	return out
}
