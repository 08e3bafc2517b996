package crop

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyStages rejects instance construction from a definition without stages
	ErrEmptyStages = errors.New("crop has no stages")

	// ErrInvalidRange is returned when a range has min > max
	ErrInvalidRange = errors.New("invalid range")

	// ErrUnknownStatus is returned for an unrecognised status variant
	ErrUnknownStatus = errors.New("unknown crop status")

	// ErrUnknownFormat is returned for a file extension no codec handles
	ErrUnknownFormat = errors.New("unknown crop data format")

	// ErrInvalidID rejects crop ids that are empty or would leave the data directory
	ErrInvalidID = errors.New("invalid crop id")

	// ErrStageIndex is returned by stage edits addressing a missing stage
	ErrStageIndex = errors.New("stage index out of range")
)

// DefinitionLoadError reports a missing or malformed crop definition file
// It aborts only the planting that requested it
type DefinitionLoadError struct {
	ID         string
	Path       string
	Suggestion string
	Err        error
}

func (e *DefinitionLoadError) Error() string {
	msg := fmt.Sprintf("load crop %q", e.ID)
	if e.Path != "" {
		msg += " from " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

func (e *DefinitionLoadError) Unwrap() error {
	return e.Err
}
