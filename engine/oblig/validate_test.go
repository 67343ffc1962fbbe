package oblig_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nathoo/actioncore/engine/oblig"
	"github.com/nathoo/actioncore/engine/reqs"
	"github.com/nathoo/actioncore/engine/ruleset"
	"github.com/nathoo/actioncore/types"
)

func newRuleset(t *testing.T, enablers ...*types.Enabler) *ruleset.Ruleset {
	t.Helper()
	rs, err := ruleset.New()
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range enablers {
		if err := rs.AddEnabler(e); err != nil {
			t.Fatal(err)
		}
	}
	if err := rs.Freeze(); err != nil {
		t.Fatal(err)
	}
	return rs
}

func TestValidateDomesticEnabler(t *testing.T) {
	rs := newRuleset(t, &types.Enabler{
		ID:        "bribe-domestic",
		Action:    types.ActionSpyBribeUnit,
		ActorReqs: types.RequirementVector{reqs.Not(types.ReqDiplRel, "Foreign"), reqs.Req(types.ReqUnitFlag, "Diplomat")},
	})

	got := oblig.Validate(rs, types.ResultBribeUnit)
	want := []oblig.Violation{{
		Action:    types.ActionSpyBribeUnit,
		Result:    types.ResultBribeUnit,
		EnablerID: "bribe-domestic",
		Message:   "All action enablers for Bribe Unit must require a foreign target.",
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Validate mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateForeignEnablerPasses(t *testing.T) {
	rs := newRuleset(t, &types.Enabler{
		ID:        "bribe",
		Action:    types.ActionSpyBribeUnit,
		ActorReqs: types.RequirementVector{reqs.Req(types.ReqDiplRel, "Foreign"), reqs.Req(types.ReqUnitFlag, "Diplomat")},
	})
	if got := oblig.Validate(rs, types.ResultBribeUnit); len(got) != 0 {
		t.Errorf("unexpected violations: %v", got)
	}
}

func TestValidateOrGroupSecondAlternative(t *testing.T) {
	// Satisfies the NonMil paradrop group through the unclaimed target
	// tile alternative only.
	rs := newRuleset(t, &types.Enabler{
		ID:         "paradrop",
		Action:     types.ActionParadrop,
		ActorReqs:  types.RequirementVector{reqs.Not(types.ReqUnitState, "Transporting")},
		TargetReqs: types.RequirementVector{reqs.Not(types.ReqCityTile, "Claimed")},
	})
	if got := oblig.Validate(rs, types.ResultParadrop); len(got) != 0 {
		t.Errorf("unexpected violations: %v", got)
	}
}

func TestValidateSharedResult(t *testing.T) {
	good := types.RequirementVector{reqs.Req(types.ReqDiplRel, "Foreign"), reqs.Not(types.ReqDiplRel, "Has real embassy")}
	rs := newRuleset(t,
		&types.Enabler{ID: "keep", Action: types.ActionEstablishEmbassyStay, ActorReqs: good},
		&types.Enabler{ID: "spend", Action: types.ActionEstablishEmbassy, ActorReqs: good[:1]},
	)
	got := oblig.Validate(rs, types.ResultEstablishEmbassy)
	if len(got) != 1 || got[0].EnablerID != "spend" {
		t.Fatalf("violations = %v", got)
	}
	if got[0].Message != "All action enablers for Establish Embassy must require the absence of a real embassy." {
		t.Errorf("message = %q", got[0].Message)
	}
}

func TestValidateSubResults(t *testing.T) {
	rs := newRuleset(t, &types.Enabler{
		ID:     "move",
		Action: types.ActionUnitMove,
		ActorReqs: types.RequirementVector{
			reqs.Req(types.ReqMinMoves, "1"),
			reqs.Not(types.ReqUnitState, "Transported"),
		},
	})
	got := oblig.Validate(rs, types.ResultUnitMove)
	if len(got) != 1 {
		t.Fatalf("violations = %v, want the hut enter rule", got)
	}

	rs = newRuleset(t, &types.Enabler{
		ID:     "move",
		Action: types.ActionUnitMove,
		ActorReqs: types.RequirementVector{
			reqs.Req(types.ReqMinMoves, "1"),
			reqs.Not(types.ReqUnitState, "Transported"),
			reqs.Not(types.ReqUnitClassFlag, "HutFrighten"),
		},
	})
	if got := oblig.Validate(rs, types.ResultUnitMove); len(got) != 0 {
		t.Errorf("violations = %v, want none", got)
	}
}

func TestValidateAllEmptyRuleset(t *testing.T) {
	rs := newRuleset(t)
	if got := oblig.ValidateAll(rs); len(got) != 0 {
		t.Errorf("empty ruleset has violations: %v", got)
	}
}

func TestValidateAnimalNation(t *testing.T) {
	rs, err := ruleset.New()
	if err != nil {
		t.Fatal(err)
	}
	if err := rs.AddNation(types.Nation{ID: "animals", Barbarian: "animal"}); err != nil {
		t.Fatal(err)
	}
	conquer := types.RequirementVector{
		reqs.Req(types.ReqDiplRel, "Foreign"),
		reqs.Req(types.ReqDiplRel, types.DiplWar),
		reqs.Req(types.ReqUnitClassFlag, "CanOccupyCity"),
		reqs.Not(types.ReqUnitFlag, "NonMil"),
		reqs.Req(types.ReqMinMoves, "1"),
	}
	if err := rs.AddEnabler(&types.Enabler{
		ID: "conquer", Action: types.ActionConquerCity, ActorReqs: conquer,
		TargetReqs: types.RequirementVector{reqs.Req(types.ReqMaxTileUnits, "0")},
	}); err != nil {
		t.Fatal(err)
	}
	if err := rs.Freeze(); err != nil {
		t.Fatal(err)
	}
	got := oblig.Validate(rs, types.ResultConquerCity)
	if len(got) != 1 || got[0].Message != "All action enablers for Conquer City must require a non animal player actor." {
		t.Errorf("violations = %v", got)
	}
}
