package parameter

import "time"

// Crop Stage VFX
const (
	// VfxCropStageChange is the registry name of the stage transition burst
	VfxCropStageChange = "vfx_crop_stage_change"

	// VfxCropStageChangeOneshot is how long the stage transition burst lives before despawn
	VfxCropStageChangeOneshot = 3500 * time.Millisecond

	// VfxCropStageChangeParticles is the particle count of the burst (host renderer hint)
	VfxCropStageChangeParticles = 50

	// VfxCropStageChangeRadius is the spawn sphere radius of the burst
	VfxCropStageChangeRadius = 0.1

	// VfxCropStageChangeSpeed is the tangential launch speed around the Y axis
	VfxCropStageChangeSpeed = 2.5
)
