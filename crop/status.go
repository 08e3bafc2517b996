package crop

import (
	"fmt"
	"strings"
)

// StatusKind discriminates the crop lifecycle status
type StatusKind uint8

const (
	StatusGrowing StatusKind = iota
	StatusFruiting
	StatusSeeding
	StatusDead
)

var statusNames = [...]string{
	StatusGrowing:  "Growing",
	StatusFruiting: "Fruiting",
	StatusSeeding:  "Seeding",
	StatusDead:     "Dead",
}

func (k StatusKind) String() string {
	if int(k) < len(statusNames) {
		return statusNames[k]
	}
	return fmt.Sprintf("StatusKind(%d)", k)
}

// MarshalText encodes the variant name
func (k StatusKind) MarshalText() ([]byte, error) {
	if int(k) >= len(statusNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStatus, k)
	}
	return []byte(statusNames[k]), nil
}

// UnmarshalText accepts variant names case-insensitively
func (k *StatusKind) UnmarshalText(text []byte) error {
	name := strings.TrimSpace(string(text))
	for i, n := range statusNames {
		if strings.EqualFold(n, name) {
			*k = StatusKind(i)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownStatus, name)
}

// Status is the crop's categorical lifecycle state
// Tagged union: Model and Drops are only meaningful for Fruiting and Seeding
type Status struct {
	Kind  StatusKind `toml:"kind" json:"kind" yaml:"kind"`
	Model string     `toml:"model,omitempty" json:"model,omitempty" yaml:"model,omitempty"`
	Drops []ItemDrop `toml:"drops,omitempty" json:"drops,omitempty" yaml:"drops,omitempty"`
}

// Growing is the default status
func Growing() Status {
	return Status{Kind: StatusGrowing}
}

// Fruiting carries a status model override and the harvestable drops
func Fruiting(model string, drops ...ItemDrop) Status {
	return Status{Kind: StatusFruiting, Model: model, Drops: drops}
}

// Seeding carries a status model override and the harvestable drops
func Seeding(model string, drops ...ItemDrop) Status {
	return Status{Kind: StatusSeeding, Model: model, Drops: drops}
}

// Dead ends the crop
func Dead() Status {
	return Status{Kind: StatusDead}
}

// HasPayload reports whether the variant carries a model and drops
func (s Status) HasPayload() bool {
	return s.Kind == StatusFruiting || s.Kind == StatusSeeding
}

// Clone returns a deep copy
func (s Status) Clone() Status {
	s.Drops = cloneDrops(s.Drops)
	return s
}

// Equal compares variant and payload
func (s Status) Equal(o Status) bool {
	return s.Kind == o.Kind && s.Model == o.Model && dropsEqual(s.Drops, o.Drops)
}

// Validate checks the kind and every drop range
func (s Status) Validate() error {
	if int(s.Kind) >= len(statusNames) {
		return fmt.Errorf("%w: %d", ErrUnknownStatus, s.Kind)
	}
	for i, d := range s.Drops {
		if err := d.Amount.Validate(); err != nil {
			return fmt.Errorf("drop %d (%s): %w", i, d.Item, err)
		}
	}
	return nil
}

func (s Status) String() string {
	if !s.HasPayload() {
		return s.Kind.String()
	}
	return fmt.Sprintf("%s{model:%q drops:%d}", s.Kind, s.Model, len(s.Drops))
}
