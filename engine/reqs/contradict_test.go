package reqs

import (
	"testing"

	"github.com/nathoo/actioncore/types"
)

func TestContradicts(t *testing.T) {
	tests := []struct {
		name string
		a, b types.Requirement
		want bool
	}{
		{"opposite polarity", Req(types.ReqUnitFlag, "Spy"), Not(types.ReqUnitFlag, "Spy"), true},
		{"same polarity", Req(types.ReqUnitFlag, "Spy"), Req(types.ReqUnitFlag, "Spy"), false},
		{"different flags", Req(types.ReqUnitFlag, "Spy"), Not(types.ReqUnitFlag, "Diplomat"), false},
		{"two diplomatic states", Req(types.ReqDiplRel, types.DiplWar), Req(types.ReqDiplRel, types.DiplPeace), true},
		{"state and foreign", Req(types.ReqDiplRel, types.DiplWar), Req(types.ReqDiplRel, "Foreign"), false},
		{"domestic vs state", Not(types.ReqDiplRel, "Foreign"), Req(types.ReqDiplRel, types.DiplWar), true},
		{"domestic vs foreign", Req(types.ReqDiplRel, "Foreign"), Not(types.ReqDiplRel, "Foreign"), true},
		{"two unit types", Req(types.ReqUnitType, "Spy"), Req(types.ReqUnitType, "Diplomat"), true},
		{"two nations", Req(types.ReqNation, "roman"), Req(types.ReqNation, "greek"), true},
		{"two flags can coexist", Req(types.ReqUnitFlag, "Spy"), Req(types.ReqUnitFlag, "Diplomat"), false},
		{"center vs unclaimed", Req(types.ReqCityTile, "Center"), Not(types.ReqCityTile, "Claimed"), true},
		{"unclaimed vs center", Not(types.ReqCityTile, "Claimed"), Req(types.ReqCityTile, "Center"), true},
		{"moves at least 2 vs below 1", Req(types.ReqMinMoves, "2"), Not(types.ReqMinMoves, "1"), true},
		{"moves at least 1 vs below 2", Req(types.ReqMinMoves, "1"), Not(types.ReqMinMoves, "2"), false},
		{"max 0 units vs more than 1", Req(types.ReqMaxTileUnits, "0"), Not(types.ReqMaxTileUnits, "1"), true},
		{"max 2 units vs more than 1", Req(types.ReqMaxTileUnits, "2"), Not(types.ReqMaxTileUnits, "1"), false},
		{"kinds differ", Req(types.ReqTech, "Writing"), Not(types.ReqBuilding, "Writing"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contradicts(tt.a, tt.b); got != tt.want {
				t.Errorf("Contradicts(%s, %s) = %v, want %v", String(tt.a), String(tt.b), got, tt.want)
			}
		})
	}
}

func TestVectorContradicts(t *testing.T) {
	vec := types.RequirementVector{Req(types.ReqUnitFlag, "Spy"), Req(types.ReqDiplRel, types.DiplWar)}
	if !VectorContradicts(Not(types.ReqDiplRel, "Foreign"), vec) {
		t.Error("war implies foreign")
	}
	if VectorContradicts(Req(types.ReqDiplRel, "Foreign"), vec) {
		t.Error("foreign is compatible with war")
	}
	if VectorContradicts(Req(types.ReqDiplRel, "Foreign"), nil) {
		t.Error("empty vector contradicts nothing")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		kind, rng, value string
		ok               bool
	}{
		{"DiplRel", "", "Foreign", true},
		{"DiplRel", "Local", "Enemies", false},
		{"UnitFlag", "", "Spy", true},
		{"UnitFlag", "Player", "Spy", false},
		{"MinMoves", "", "1", true},
		{"MinMoves", "", "one", false},
		{"MaxTileUnits", "", "-1", false},
		{"CityTile", "", "Center", true},
		{"CityTile", "", "Border", false},
		{"Building", "City", "", false},
		{"Weather", "", "Rain", false},
	}
	for _, tt := range tests {
		r, err := Parse(tt.kind, tt.rng, tt.value, true)
		if (err == nil) != tt.ok {
			t.Errorf("Parse(%s, %s, %s) err = %v, want ok=%v", tt.kind, tt.rng, tt.value, err, tt.ok)
			continue
		}
		if tt.ok && r.Range == "" {
			t.Errorf("Parse(%s) left range empty", tt.kind)
		}
	}
}
