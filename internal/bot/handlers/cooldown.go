package handlers

import (
	"fmt"
	"sync"
	"time"
)

// CooldownError reports that a user invoked a command inside its cooldown
// window.
type CooldownError struct {
	Retry time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("command on cooldown, retry in %s", e.Retry)
}

// Cooldown rate-limits command use per user per command. Zero window
// disables limiting. Safe for concurrent use.
type Cooldown struct {
	window time.Duration

	mu   sync.Mutex
	last map[string]time.Time
	now  func() time.Time
}

// NewCooldown creates a limiter with the given window.
func NewCooldown(window time.Duration) *Cooldown {
	return &Cooldown{
		window: window,
		last:   make(map[string]time.Time),
		now:    time.Now,
	}
}

// Check records an attempt for (command, user) and returns nil when
// allowed, or a *CooldownError carrying the remaining wait.
func (c *Cooldown) Check(command, userID string) error {
	if c.window <= 0 {
		return nil
	}

	key := command + ":" + userID
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.last[key]; ok {
		if remaining := c.window - now.Sub(prev); remaining > 0 {
			return &CooldownError{Retry: remaining}
		}
	}
	c.last[key] = now
	return nil
}
