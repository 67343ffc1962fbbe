package reqs

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/nathoo/actioncore/types"
)

// ErrBadRequirement is wrapped by every Parse failure.
var ErrBadRequirement = errors.New("invalid requirement")

// kindInfo describes the ranges and values a kind accepts.
type kindInfo struct {
	defaultRange types.ReqRange
	ranges       []types.ReqRange
	numeric      bool
	values       map[string]bool // nil accepts any non-empty name
}

var kinds = map[types.ReqKind]kindInfo{
	types.ReqDiplRel: {
		defaultRange: types.RangeLocal,
		ranges:       []types.ReqRange{types.RangeLocal},
		values: map[string]bool{
			"Foreign": true, "Has real embassy": true, "Has contact": true,
			types.DiplWar: true, types.DiplCeasefire: true, types.DiplArmistice: true,
			types.DiplPeace: true, types.DiplAlliance: true, types.DiplNoContact: true,
			types.DiplTeam: true,
		},
	},
	types.ReqUnitFlag:      {defaultRange: types.RangeLocal, ranges: []types.ReqRange{types.RangeLocal}},
	types.ReqUnitClassFlag: {defaultRange: types.RangeLocal, ranges: []types.ReqRange{types.RangeLocal}},
	types.ReqUnitType:      {defaultRange: types.RangeLocal, ranges: []types.ReqRange{types.RangeLocal}},
	types.ReqUnitState: {
		defaultRange: types.RangeLocal,
		ranges:       []types.ReqRange{types.RangeLocal},
		values: map[string]bool{
			"Transported": true, "Transporting": true, "OnLivableTile": true,
			"OnNativeTile": true, "HasHomeCity": true, "Paradropped": true,
		},
	},
	types.ReqActivity:   {defaultRange: types.RangeLocal, ranges: []types.ReqRange{types.RangeLocal}},
	types.ReqMinMoves:   {defaultRange: types.RangeLocal, ranges: []types.ReqRange{types.RangeLocal}, numeric: true},
	types.ReqMinVeteran: {defaultRange: types.RangeLocal, ranges: []types.ReqRange{types.RangeLocal}, numeric: true},
	types.ReqCityTile: {
		defaultRange: types.RangeTile,
		ranges:       []types.ReqRange{types.RangeTile},
		values:       map[string]bool{"Center": true, "Claimed": true},
	},
	types.ReqTerrainFlag:  {defaultRange: types.RangeTile, ranges: []types.ReqRange{types.RangeTile}},
	types.ReqNation:       {defaultRange: types.RangePlayer, ranges: []types.ReqRange{types.RangePlayer}},
	types.ReqTech:         {defaultRange: types.RangePlayer, ranges: []types.ReqRange{types.RangePlayer}},
	types.ReqBuilding:     {defaultRange: types.RangeCity, ranges: []types.ReqRange{types.RangeCity}},
	types.ReqMaxTileUnits: {defaultRange: types.RangeTile, ranges: []types.ReqRange{types.RangeTile}, numeric: true},
}

// Kinds returns every known requirement kind.
func Kinds() []types.ReqKind {
	out := make([]types.ReqKind, 0, len(kinds))
	for k := range kinds {
		out = append(out, k)
	}
	return out
}

// Parse builds a requirement from its authored parts. An empty range
// selects the kind's default range.
func Parse(kind, rng, value string, present bool) (types.Requirement, error) {
	k := types.ReqKind(kind)
	info, ok := kinds[k]
	if !ok {
		return types.Requirement{}, fmt.Errorf("%w: unknown kind %q", ErrBadRequirement, kind)
	}

	r := types.ReqRange(rng)
	if r == "" {
		r = info.defaultRange
	}
	if !rangeAllowed(info, r) {
		return types.Requirement{}, fmt.Errorf("%w: %s does not support range %q", ErrBadRequirement, kind, rng)
	}

	switch {
	case value == "":
		return types.Requirement{}, fmt.Errorf("%w: %s needs a value", ErrBadRequirement, kind)
	case info.numeric:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return types.Requirement{}, fmt.Errorf("%w: %s value %q is not a non-negative number", ErrBadRequirement, kind, value)
		}
	case info.values != nil && !info.values[value]:
		return types.Requirement{}, fmt.Errorf("%w: %s has no value %q", ErrBadRequirement, kind, value)
	}

	return types.Requirement{Kind: k, Range: r, Present: present, Value: value}, nil
}

func rangeAllowed(info kindInfo, r types.ReqRange) bool {
	for _, a := range info.ranges {
		if a == r {
			return true
		}
	}
	return false
}

// String renders a requirement for reports.
func String(r types.Requirement) string {
	s := fmt.Sprintf("%s(%s) %q", r.Kind, r.Range, r.Value)
	if !r.Present {
		return "not " + s
	}
	return s
}

// Req is a shorthand for a present requirement at the kind's default range.
func Req(kind types.ReqKind, value string) types.Requirement {
	return types.Requirement{Kind: kind, Range: kinds[kind].defaultRange, Present: true, Value: value}
}

// Not is a shorthand for an absent requirement at the kind's default range.
func Not(kind types.ReqKind, value string) types.Requirement {
	r := Req(kind, value)
	r.Present = false
	return r
}
