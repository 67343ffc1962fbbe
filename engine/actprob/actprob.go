// Package actprob implements the probability interval reported for an
// action attempt. Values use a 0..200 scale where one unit is 0.5%.
package actprob

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ValMax is the scale value of 100%.
const ValMax = 200

const (
	sigNotRelevant    = 253
	sigNotImplemented = 254
)

// ErrOutOfRange is returned when constructing an interval outside [0, ValMax]
// or with Min greater than Max.
var ErrOutOfRange = errors.New("probability out of range")

// Prob is a closed interval [Min, Max] of success chance. A Prob whose Max
// is below its Min is a signal rather than an interval.
type Prob struct {
	Min uint8
	Max uint8
}

func Impossible() Prob     { return Prob{0, 0} }
func Certain() Prob        { return Prob{ValMax, ValMax} }
func Unknown() Prob        { return Prob{0, ValMax} }
func NotRelevant() Prob    { return Prob{sigNotRelevant, 0} }
func NotImplemented() Prob { return Prob{sigNotImplemented, 0} }

// New builds a regular interval.
func New(min, max int) (Prob, error) {
	if min < 0 || max > ValMax || min > max {
		return Prob{}, fmt.Errorf("%w: [%d, %d]", ErrOutOfRange, min, max)
	}
	return Prob{uint8(min), uint8(max)}, nil
}

// Exact is the interval holding exactly chance, saturated to the scale.
func Exact(chance int) Prob {
	c := clamp(chance)
	return Prob{c, c}
}

// Computed is Exact for a chance a probability model produced. A chance
// outside [0, ValMax] is a model bug: debug builds (-tags actiondebug)
// panic, other builds saturate.
func Computed(chance int) Prob {
	if debugChecks && (chance < 0 || chance > ValMax) {
		panic(fmt.Sprintf("actprob: computed chance %d outside [0, %d]", chance, ValMax))
	}
	return Exact(chance)
}

func clamp(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > ValMax {
		return ValMax
	}
	return uint8(v)
}

// IsSignal reports whether p carries a signal rather than an interval.
func (p Prob) IsSignal() bool { return p.Max < p.Min }

func (p Prob) IsNotRelevant() bool    { return p == NotRelevant() }
func (p Prob) IsNotImplemented() bool { return p == NotImplemented() }
func (p Prob) IsUnknown() bool        { return p == Unknown() }
func (p Prob) IsImpossible() bool     { return p == Impossible() }
func (p Prob) IsCertain() bool        { return p == Certain() }

// Possible reports whether the action may succeed. Not implemented counts
// as possible.
func (p Prob) Possible() bool {
	return p.IsNotImplemented() || (!p.IsSignal() && p.Max > 0)
}

// Valid reports whether p is a well formed interval or a known signal.
func (p Prob) Valid() bool {
	if p.IsNotRelevant() || p.IsNotImplemented() {
		return true
	}
	return p.Min <= p.Max && p.Max <= ValMax
}

// Checked enforces the interval invariant on a computed probability.
// Debug builds (-tags actiondebug) panic on violation; other builds clamp.
func Checked(p Prob) Prob {
	if p.Valid() {
		return p
	}
	if debugChecks {
		panic(fmt.Sprintf("actprob: malformed probability [%d, %d]", p.Min, p.Max))
	}
	lo, hi := clamp(int(p.Min)), clamp(int(p.Max))
	if lo > hi {
		lo = hi
	}
	return Prob{lo, hi}
}

// signal returns the dominant signal among a and b, if any.
func signal(a, b Prob) (Prob, bool) {
	switch {
	case a.IsNotRelevant() || b.IsNotRelevant():
		return NotRelevant(), true
	case a.IsNotImplemented() || b.IsNotImplemented():
		return NotImplemented(), true
	}
	return Prob{}, false
}

// And is the chance that both a and b succeed.
func And(a, b Prob) Prob {
	if s, ok := signal(a, b); ok {
		return s
	}
	return Prob{
		Min: uint8(int(a.Min) * int(b.Min) / ValMax),
		Max: uint8(int(a.Max) * int(b.Max) / ValMax),
	}
}

// FallBack is the chance that a succeeds or, failing that, b succeeds.
func FallBack(a, b Prob) Prob {
	if s, ok := signal(a, b); ok {
		return s
	}
	return Prob{
		Min: uint8(int(a.Min) + (ValMax-int(a.Min))*int(b.Min)/ValMax),
		Max: uint8(int(a.Max) + (ValMax-int(a.Max))*int(b.Max)/ValMax),
	}
}

// CmpPessimist compares by the lower bound, then the upper bound.
// Signals sort below every interval.
func CmpPessimist(a, b Prob) int {
	switch {
	case a.IsSignal() && b.IsSignal():
		return 0
	case a.IsSignal():
		return -1
	case b.IsSignal():
		return 1
	}
	if a.Min != b.Min {
		if a.Min < b.Min {
			return -1
		}
		return 1
	}
	if a.Max != b.Max {
		if a.Max < b.Max {
			return -1
		}
		return 1
	}
	return 0
}

// ToFloatPessimist returns the lower bound as a fraction. Signals are 0.
func (p Prob) ToFloatPessimist() float64 {
	if p.IsSignal() {
		return 0
	}
	return float64(p.Min) / ValMax
}

// ToFloatOptimist returns the upper bound as a fraction. Signals are 0.
func (p Prob) ToFloatOptimist() float64 {
	if p.IsSignal() {
		return 0
	}
	return float64(p.Max) / ValMax
}

// MarshalBinary encodes p as two bytes: min then max.
func (p Prob) MarshalBinary() ([]byte, error) {
	return []byte{p.Min, p.Max}, nil
}

// UnmarshalBinary decodes the two byte form. Any pair is accepted so that
// signals survive a round trip.
func (p *Prob) UnmarshalBinary(data []byte) error {
	if len(data) != 2 {
		return fmt.Errorf("actprob: want 2 bytes, got %d", len(data))
	}
	p.Min, p.Max = data[0], data[1]
	return nil
}

type probJSON struct {
	Min uint8 `json:"min"`
	Max uint8 `json:"max"`
}

func (p Prob) MarshalJSON() ([]byte, error) {
	return json.Marshal(probJSON{p.Min, p.Max})
}

func (p *Prob) UnmarshalJSON(data []byte) error {
	var v probJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("actprob: %w", err)
	}
	p.Min, p.Max = v.Min, v.Max
	return nil
}

func (p Prob) String() string {
	switch {
	case p.IsNotRelevant():
		return "not relevant"
	case p.IsNotImplemented():
		return "not implemented"
	case p.IsSignal():
		return fmt.Sprintf("signal(%d, %d)", p.Min, p.Max)
	case p.Min == p.Max:
		return "[" + percent(p.Min) + "]"
	}
	return "[" + percent(p.Min) + ", " + percent(p.Max) + "]"
}

func percent(v uint8) string {
	return strconv.FormatFloat(float64(v)/2, 'f', -1, 64) + "%"
}
