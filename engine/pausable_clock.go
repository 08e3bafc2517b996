package engine

import (
	"sync"
	"time"
)

// PausableClock is simulation time: a wall Clock with paused spans cut out
type PausableClock struct {
	mu sync.Mutex

	wall     Clock
	pausedAt time.Time     // zero while running
	skipped  time.Duration // sum of finished pauses
}

func NewPausableClock(wall Clock) *PausableClock {
	return &PausableClock{wall: wall}
}

// Now stands still while paused and resumes from the same instant
func (c *PausableClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	at := c.pausedAt
	if at.IsZero() {
		at = c.wall.Now()
	}
	return at.Add(-c.skipped)
}

func (c *PausableClock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pausedAt.IsZero() {
		c.pausedAt = c.wall.Now()
	}
}

func (c *PausableClock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.pausedAt.IsZero() {
		c.skipped += c.wall.Now().Sub(c.pausedAt)
		c.pausedAt = time.Time{}
	}
}

// Toggle flips the pause state and reports whether the clock is now paused
func (c *PausableClock) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.wall.Now()
	if c.pausedAt.IsZero() {
		c.pausedAt = now
		return true
	}
	c.skipped += now.Sub(c.pausedAt)
	c.pausedAt = time.Time{}
	return false
}

func (c *PausableClock) IsPaused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.pausedAt.IsZero()
}

// TotalPauseDuration includes a pause still in progress
func (c *PausableClock) TotalPauseDuration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := c.skipped
	if !c.pausedAt.IsZero() {
		total += c.wall.Now().Sub(c.pausedAt)
	}
	return total
}
