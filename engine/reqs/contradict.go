package reqs

import "github.com/nathoo/actioncore/types"

// diplStates are mutually exclusive relationship states.
var diplStates = map[string]bool{
	types.DiplWar:       true,
	types.DiplCeasefire: true,
	types.DiplArmistice: true,
	types.DiplPeace:     true,
	types.DiplAlliance:  true,
	types.DiplNoContact: true,
	types.DiplTeam:      true,
}

// exclusiveKinds can only hold one value at a time for a given range.
var exclusiveKinds = map[types.ReqKind]bool{
	types.ReqUnitType: true,
	types.ReqNation:   true,
	types.ReqActivity: true,
}

// Contradicts reports whether a and b can never both be fulfilled.
func Contradicts(a, b types.Requirement) bool {
	return contradicts(a, b) || contradicts(b, a)
}

func contradicts(a, b types.Requirement) bool {
	if a.Kind != b.Kind || a.Range != b.Range {
		return false
	}

	if a.Value == b.Value && a.Present != b.Present {
		return true
	}

	switch a.Kind {
	case types.ReqDiplRel:
		if a.Present && b.Present && a.Value != b.Value &&
			diplStates[a.Value] && diplStates[b.Value] {
			return true
		}
		// Not foreign means same player, which has no diplomatic state.
		if a.Value == "Foreign" && !a.Present && b.Present && diplStates[b.Value] {
			return true
		}

	case types.ReqCityTile:
		// A city center is always claimed.
		if a.Value == "Center" && a.Present && b.Value == "Claimed" && !b.Present {
			return true
		}

	case types.ReqMinMoves, types.ReqMinVeteran:
		// at least x vs less than y
		if a.Present && !b.Present && atoi(a.Value) >= atoi(b.Value) {
			return true
		}

	case types.ReqMaxTileUnits:
		// at most x vs more than y
		if a.Present && !b.Present && atoi(a.Value) <= atoi(b.Value) {
			return true
		}

	default:
		if exclusiveKinds[a.Kind] && a.Present && b.Present && a.Value != b.Value {
			return true
		}
	}
	return false
}

// VectorContradicts reports whether any requirement in vec contradicts req.
func VectorContradicts(req types.Requirement, vec types.RequirementVector) bool {
	for _, r := range vec {
		if Contradicts(req, r) {
			return true
		}
	}
	return false
}
