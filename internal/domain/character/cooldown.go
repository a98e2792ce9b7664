package character

import "time"

// MarkUsed records when an ability was last used by this character
func (c *Character) MarkUsed(abilityID string, at time.Time) {
	if c.cooldowns == nil {
		c.cooldowns = make(map[string]time.Time)
	}
	c.cooldowns[abilityID] = at
}

// LastUsed returns when an ability was last used, if ever
func (c *Character) LastUsed(abilityID string) (time.Time, bool) {
	at, ok := c.cooldowns[abilityID]
	return at, ok
}

// CooldownRemaining returns how long until the ability can be used again, zero when ready
func (c *Character) CooldownRemaining(abilityID string, window time.Duration, now time.Time) time.Duration {
	at, ok := c.cooldowns[abilityID]
	if !ok {
		return 0
	}

	remaining := at.Add(window).Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}
