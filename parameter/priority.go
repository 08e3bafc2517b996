package parameter

// System Execution Priorities (lower runs first)
const (
	PriorityDay     = 10 // Emits NewDay before crops observe it
	PriorityCrop    = 20
	PriorityDrop    = 30
	PriorityModel   = 40 // After crops request swaps, polls loader state
	PriorityEffect  = 500
	PriorityAudio   = 600
	PriorityJournal = 900  // After game logic, observes lifecycle
	PriorityNetwork = 1000 // After all others, outbound snapshots
)
