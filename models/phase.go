// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"fmt"
)

// Phase is a topic's lifecycle stage. The zero value is not a phase.
type Phase int

const (
	PhasePosting Phase = iota + 1
	PhaseVoting
	PhaseResults
	PhaseAwaitingStart
	PhaseAnnouncement
	PhaseFrozen
)

var phaseNames = map[Phase]string{
	PhasePosting:       "posting",
	PhaseVoting:        "voting",
	PhaseResults:       "results",
	PhaseAwaitingStart: "awaiting_start",
	PhaseAnnouncement:  "announcement",
	PhaseFrozen:        "frozen",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Valid reports whether p is one of the six lifecycle phases.
func (p Phase) Valid() bool {
	_, ok := phaseNames[p]
	return ok
}

// ParsePhase converts a phase name back into a Phase.
func ParsePhase(s string) (Phase, error) {
	for p, name := range phaseNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown phase %q", s)
}

func (p Phase) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid phase %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(b []byte) error {
	parsed, err := ParsePhase(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Override is an operator's phase decision for a topic: either automatic
// (derived from the schedule) or forced to a fixed phase.
// The zero value is Auto.
type Override struct {
	phase Phase
}

const overrideAuto = "auto"

func Auto() Override { return Override{} }

func Forced(p Phase) Override { return Override{phase: p} }

// Forced returns the forced phase; ok is false for Auto.
func (o Override) Forced() (p Phase, ok bool) {
	return o.phase, o.phase != 0
}

func (o Override) IsAuto() bool { return o.phase == 0 }

func (o Override) String() string {
	if o.IsAuto() {
		return overrideAuto
	}
	return o.phase.String()
}

// ParseOverride accepts "auto" (or empty) and the six phase names.
func ParseOverride(s string) (Override, error) {
	if s == "" || s == overrideAuto {
		return Auto(), nil
	}
	p, err := ParsePhase(s)
	if err != nil {
		return Override{}, err
	}
	return Forced(p), nil
}

func (o Override) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Override) UnmarshalText(b []byte) error {
	parsed, err := ParseOverride(string(b))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
