package crop

// ItemID names an item kind in the inventory
type ItemID string

// ItemDrop is one entry of a drop table; Amount is sampled when the drop resolves
type ItemDrop struct {
	Item   ItemID `toml:"item" json:"item" yaml:"item"`
	Amount Range  `toml:"amount" json:"amount" yaml:"amount"`
}

// Drop builds an ItemDrop
func Drop(item ItemID, min, max uint32) ItemDrop {
	return ItemDrop{Item: item, Amount: Range{Min: min, Max: max}}
}

func cloneDrops(drops []ItemDrop) []ItemDrop {
	if drops == nil {
		return nil
	}
	out := make([]ItemDrop, len(drops))
	copy(out, drops)
	return out
}

// dropsEqual treats nil and empty lists as equal since codecs may omit empty arrays
func dropsEqual(a, b []ItemDrop) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
