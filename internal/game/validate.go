package game

import (
	"fmt"
	"strings"
)

// Validate checks the nature's stat names.
func (n Nature) Validate() error {
	check := func(field, v string) error {
		if v == "" {
			return nil
		}
		s, ok := ParseStat(v)
		if !ok {
			return fmt.Errorf("%w: nature %q has unknown %s stat %q", ErrInvalidConfiguration, n.Name, field, v)
		}
		if s == HP {
			return fmt.Errorf("%w: nature %q cannot modify hp", ErrInvalidConfiguration, n.Name)
		}
		return nil
	}
	if err := check("increased", n.Increased); err != nil {
		return err
	}
	if err := check("decreased", n.Decreased); err != nil {
		return err
	}
	if n.Increased != "" && normalizeStatName(n.Increased) == normalizeStatName(n.Decreased) {
		return fmt.Errorf("%w: nature %q increases and decreases %s", ErrInvalidConfiguration, n.Name, n.Increased)
	}
	return nil
}

// Validate checks the move's numeric ranges and damage class.
func (m Move) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: move without name", ErrInvalidConfiguration)
	}
	switch m.DamageClass {
	case Physical, Special, Status:
	default:
		return fmt.Errorf("%w: move %q has unknown damage class %q", ErrInvalidConfiguration, m.Name, m.DamageClass)
	}
	if m.Type == "" {
		return fmt.Errorf("%w: move %q has no type", ErrInvalidConfiguration, m.Name)
	}
	if m.Power < 0 {
		return fmt.Errorf("%w: move %q has negative power %d", ErrInvalidConfiguration, m.Name, m.Power)
	}
	if m.Accuracy < 0 || m.Accuracy > 100 {
		return fmt.Errorf("%w: move %q accuracy %.1f outside [0,100]", ErrInvalidConfiguration, m.Name, m.Accuracy)
	}
	if m.Drain < 0 || m.Recoil < 0 {
		return fmt.Errorf("%w: move %q has negative drain/recoil", ErrInvalidConfiguration, m.Name)
	}
	if f := m.NerfFactor(); f < 0 || f > 1 {
		return fmt.Errorf("%w: move %q nerf %.2f outside [0,1]", ErrInvalidConfiguration, m.Name, f)
	}
	return nil
}

// Validate checks the species' types and base stats.
func (s Species) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: species without name", ErrInvalidConfiguration)
	}
	if s.Type1 == "" {
		return fmt.Errorf("%w: species %q has no type", ErrInvalidConfiguration, s.Name)
	}
	if s.Type2 == s.Type1 {
		return fmt.Errorf("%w: species %q lists type %q twice", ErrInvalidConfiguration, s.Name, s.Type1)
	}
	for _, st := range AllStats {
		if s.BaseStats[st] <= 0 {
			return fmt.Errorf("%w: species %q base %s must be positive", ErrInvalidConfiguration, s.Name, st)
		}
	}
	return nil
}

// Validate checks level and variance ranges, then the nested entities.
func (c Combatant) Validate() error {
	if c.Level < 1 || c.Level > 100 {
		return fmt.Errorf("%w: %s level %d outside [1,100]", ErrInvalidConfiguration, c.Species.Name, c.Level)
	}
	for _, st := range AllStats {
		if iv := c.IV[st]; iv < 0 || iv > 31 {
			return fmt.Errorf("%w: %s iv %s=%d outside [0,31]", ErrInvalidConfiguration, c.Species.Name, st, iv)
		}
		if ev := c.EV[st]; ev < 0 || ev > 255 {
			return fmt.Errorf("%w: %s ev %s=%d outside [0,255]", ErrInvalidConfiguration, c.Species.Name, st, ev)
		}
	}
	if err := c.Species.Validate(); err != nil {
		return err
	}
	if err := c.Nature.Validate(); err != nil {
		return err
	}
	for _, m := range c.Moves {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}
