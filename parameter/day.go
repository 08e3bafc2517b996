package parameter

import "time"

// Day Cycle
const (
	// DaySeconds is the default real-time length of one simulated day
	DaySeconds = 45.0

	// DayDuration is DaySeconds as a duration
	DayDuration = time.Duration(DaySeconds * float64(time.Second))

	// MinDayDuration guards against configuration that would fire a day every frame
	MinDayDuration = 100 * time.Millisecond
)

// Crops
const (
	// CropScale is the uniform scale applied to planted crop transforms
	CropScale = 5.0

	// CropDefaultTimer is the countdown a crop component carries before its first stage is applied
	CropDefaultTimer = 2
)
