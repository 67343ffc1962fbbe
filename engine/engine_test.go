package engine

import (
	"errors"
	"testing"

	"github.com/nathoo/actioncore/engine/actions"
	"github.com/nathoo/actioncore/engine/actprob"
	"github.com/nathoo/actioncore/engine/reqs"
	"github.com/nathoo/actioncore/engine/ruleset"
	"github.com/nathoo/actioncore/engine/tristate"
	"github.com/nathoo/actioncore/types"
)

var (
	spyType = &types.UnitType{
		Name:          "Spy",
		Flags:         []string{FlagDiplomat, FlagSpy},
		VeteranLevels: []types.VeteranLevel{{Name: "green", PowerFact: 100}, {Name: "veteran", PowerFact: 150}},
	}
	diplomatType = &types.UnitType{
		Name:  "Diplomat",
		Flags: []string{FlagDiplomat},
		VeteranLevels: []types.VeteranLevel{
			{Name: "green", PowerFact: 100}, {Name: "veteran", PowerFact: 150},
			{Name: "hardened", PowerFact: 175}, {Name: "elite", PowerFact: 200},
		},
	}
	superSpyType = &types.UnitType{Name: "James Bond", Flags: []string{FlagDiplomat, FlagSpy, FlagSuperSpy}}
	warriorType  = &types.UnitType{Name: "Warriors", AttackStrength: 1}
)

// testEngine builds an engine over a ruleset holding the given enablers.
func testEngine(t *testing.T, enablers ...*types.Enabler) *Engine {
	t.Helper()
	rs, err := ruleset.New()
	if err != nil {
		t.Fatalf("ruleset.New: %v", err)
	}
	for _, en := range enablers {
		if err := rs.AddEnabler(en); err != nil {
			t.Fatalf("AddEnabler: %v", err)
		}
	}
	return New(rs)
}

// redActor is a red unit at (5,5), at war with and in contact with blue.
func redActor(ut *types.UnitType) *types.Context {
	return &types.Context{
		Player: &types.Player{
			ID: "red",
			Relations: map[string]types.Relation{
				"blue": {State: types.DiplWar, Contact: true},
			},
		},
		Unit: &types.Unit{ID: "r1", Owner: "red", Type: ut, MovesLeft: 3, HomeCity: "rome", OnNative: true},
		City: &types.City{ID: "rome", Owner: "red", X: 0, Y: 0},
		Tile: &types.Tile{X: 5, Y: 5, Owner: "red"},
	}
}

// blueUnit targets victim on a fully visible blue tile at (6,5). others
// share the tile after the victim.
func blueUnit(victim *types.Unit, others ...*types.Unit) *types.Context {
	return &types.Context{
		Player:     &types.Player{ID: "blue", Relations: map[string]types.Relation{"red": {State: types.DiplWar, Contact: true}}},
		Unit:       victim,
		Tile:       &types.Tile{X: 6, Y: 5, Owner: "blue", Units: append([]*types.Unit{victim}, others...)},
		Visibility: types.Visibility{Unit: true, Tile: true, KnowsTile: true},
	}
}

func blueCity() *types.Context {
	return &types.Context{
		Player: &types.Player{ID: "blue", Techs: []string{"Bronze Working", "Alphabet"}},
		City:   &types.City{ID: "athens", Owner: "blue", Size: 3, X: 6, Y: 5},
		Tile:   &types.Tile{X: 6, Y: 5, Owner: "blue", City: "athens"},
	}
}

func warrior(id, owner string) *types.Unit {
	return &types.Unit{ID: id, Owner: owner, Type: warriorType}
}

func TestInvalidActionID(t *testing.T) {
	e := testEngine(t)
	actor, target := redActor(spyType), blueCity()

	for _, id := range []types.ActionID{types.ActionCount, -1, 1000} {
		if _, err := e.IsActionEnabled(id, actor, target); !errors.Is(err, actions.ErrNoSuchAction) {
			t.Errorf("IsActionEnabled(%d) err = %v", id, err)
		}
		if _, err := e.IsActionPossible(id, actor, target, true); !errors.Is(err, actions.ErrNoSuchAction) {
			t.Errorf("IsActionPossible(%d) err = %v", id, err)
		}
		if _, err := e.ActionEnabledTristate(id, actor, target); !errors.Is(err, actions.ErrNoSuchAction) {
			t.Errorf("ActionEnabledTristate(%d) err = %v", id, err)
		}
		if _, err := e.EstimateActionProbability(id, actor, target); !errors.Is(err, actions.ErrNoSuchAction) {
			t.Errorf("EstimateActionProbability(%d) err = %v", id, err)
		}
	}
}

func TestZeroEnablers(t *testing.T) {
	e := testEngine(t)
	actor, target := redActor(spyType), blueCity()

	possible, err := e.IsActionPossible(types.ActionEstablishEmbassyStay, actor, target, true)
	if err != nil || !possible {
		t.Fatalf("embassy should be structurally possible: %v %v", possible, err)
	}
	enabled, _ := e.IsActionEnabled(types.ActionEstablishEmbassyStay, actor, target)
	if enabled {
		t.Error("action without enablers must not be enabled")
	}
	if v, _ := e.ActionEnabledTristate(types.ActionEstablishEmbassyStay, actor, target); v != tristate.No {
		t.Errorf("tristate = %v, want no", v)
	}
	if p, _ := e.EstimateActionProbability(types.ActionEstablishEmbassyStay, actor, target); !p.IsImpossible() {
		t.Errorf("probability = %v, want impossible", p)
	}
}

func TestIsActionEnabled(t *testing.T) {
	e := testEngine(t, &types.Enabler{
		Action:     types.ActionEstablishEmbassyStay,
		ActorReqs:  types.RequirementVector{reqs.Req(types.ReqUnitFlag, FlagDiplomat)},
		TargetReqs: types.RequirementVector{reqs.Req(types.ReqDiplRel, "Foreign")},
	})

	tests := []struct {
		name   string
		actor  func() *types.Context
		target func() *types.Context
		want   bool
	}{
		{
			name:   "diplomat next to foreign city",
			actor:  func() *types.Context { return redActor(spyType) },
			target: blueCity,
			want:   true,
		},
		{
			name:   "actor lacks flag",
			actor:  func() *types.Context { return redActor(warriorType) },
			target: blueCity,
			want:   false,
		},
		{
			name:  "too far away",
			actor: func() *types.Context { return redActor(spyType) },
			target: func() *types.Context {
				c := blueCity()
				c.Tile.X, c.City.X = 9, 9
				return c
			},
			want: false,
		},
		{
			name: "embassy already there",
			actor: func() *types.Context {
				c := redActor(spyType)
				c.Player.Relations["blue"] = types.Relation{State: types.DiplWar, Contact: true, RealEmbassy: true}
				return c
			},
			target: blueCity,
			want:   false,
		},
		{
			name: "never met",
			actor: func() *types.Context {
				c := redActor(spyType)
				c.Player.Relations = nil
				return c
			},
			target: blueCity,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.IsActionEnabled(types.ActionEstablishEmbassyStay, tt.actor(), tt.target())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsActionEnabled = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHardRequirementDominatesEnablers(t *testing.T) {
	// An enabler with no requirements cannot make bribing an own unit legal.
	e := testEngine(t, &types.Enabler{Action: types.ActionSpyBribeUnit})
	actor := redActor(spyType)
	own := blueUnit(warrior("r2", "red"))
	own.Player = actor.Player

	if got, _ := e.IsActionEnabled(types.ActionSpyBribeUnit, actor, own); got {
		t.Error("bribing an own unit must never be enabled")
	}
	if v, _ := e.ActionEnabledTristate(types.ActionSpyBribeUnit, actor, own); v != tristate.No {
		t.Errorf("tristate = %v, want no", v)
	}
	if p, _ := e.EstimateActionProbability(types.ActionSpyBribeUnit, actor, own); !p.IsImpossible() {
		t.Errorf("probability = %v, want impossible", p)
	}

	foreign := blueUnit(warrior("b1", "blue"))
	if got, _ := e.IsActionEnabled(types.ActionSpyBribeUnit, actor, foreign); !got {
		t.Error("bribing a foreign unit should be enabled")
	}
}

func TestActionEnabledTristate(t *testing.T) {
	// Moves left of a foreign unit are hidden from the actor.
	e := testEngine(t, &types.Enabler{
		Action:     types.ActionSpyBribeUnit,
		ActorReqs:  types.RequirementVector{reqs.Req(types.ReqUnitState, "HasHomeCity")},
		TargetReqs: types.RequirementVector{reqs.Req(types.ReqMinMoves, "1")},
	})
	actor := redActor(spyType)
	victim := warrior("b1", "blue")
	victim.MovesLeft = 1
	target := blueUnit(victim)

	v, err := e.ActionEnabledTristate(types.ActionSpyBribeUnit, actor, target)
	if err != nil {
		t.Fatal(err)
	}
	if v != tristate.Maybe {
		t.Errorf("tristate = %v, want maybe", v)
	}
	if got, _ := e.IsActionEnabled(types.ActionSpyBribeUnit, actor, target); !got {
		t.Error("omniscient decision should see the moves left")
	}
	if p, _ := e.EstimateActionProbability(types.ActionSpyBribeUnit, actor, target); !p.IsUnknown() {
		t.Errorf("probability = %v, want unknown", p)
	}

	// The actor's own side is always known even when its visibility says
	// nothing.
	actor.Visibility = types.Visibility{}
	e2 := testEngine(t, &types.Enabler{
		Action:    types.ActionSpyBribeUnit,
		ActorReqs: types.RequirementVector{reqs.Req(types.ReqUnitState, "HasHomeCity")},
	})
	if v, _ := e2.ActionEnabledTristate(types.ActionSpyBribeUnit, actor, target); v != tristate.Yes {
		t.Errorf("actor side tristate = %v, want yes", v)
	}
}

func TestTristateStopsOnFirstYes(t *testing.T) {
	e := testEngine(t,
		&types.Enabler{Action: types.ActionSpyBribeUnit,
			TargetReqs: types.RequirementVector{reqs.Req(types.ReqMinMoves, "1")}},
		&types.Enabler{Action: types.ActionSpyBribeUnit},
	)
	v, _ := e.ActionEnabledTristate(types.ActionSpyBribeUnit, redActor(spyType), blueUnit(warrior("b1", "blue")))
	if v != tristate.Yes {
		t.Errorf("a known active enabler should win over a maybe, got %v", v)
	}
}

func TestMenu(t *testing.T) {
	e := testEngine(t,
		&types.Enabler{Action: types.ActionSpyBribeUnit},
		&types.Enabler{Action: types.ActionFortify},
	)
	actor := redActor(spyType)
	entries := e.Menu(actor, blueUnit(warrior("b1", "blue")))

	seen := map[types.ActionID]MenuEntry{}
	for _, m := range entries {
		if m.Err != nil {
			t.Errorf("%s: %v", m.Action, m.Err)
		}
		if m.Action.TargetKind == types.TargetCity {
			t.Errorf("%s targets a city but the target holds none", m.Action)
		}
		seen[m.Action.ID] = m
	}

	bribe, ok := seen[types.ActionSpyBribeUnit]
	if !ok || bribe.Enabled != tristate.Yes || !bribe.Prob.IsCertain() {
		t.Errorf("bribe entry = %+v", bribe)
	}
	fortify, ok := seen[types.ActionFortify]
	if !ok || fortify.Enabled != tristate.Yes {
		t.Errorf("fortify entry = %+v", fortify)
	}
	if m, ok := seen[types.ActionSpySabotageUnit]; !ok || m.Enabled != tristate.No || !m.Prob.IsImpossible() {
		t.Errorf("sabotage without enabler = %+v", m)
	}
}

func TestMenuNilTarget(t *testing.T) {
	e := testEngine(t, &types.Enabler{Action: types.ActionFortify})
	for _, m := range e.Menu(redActor(warriorType), nil) {
		if m.Action.TargetKind != types.TargetSelf {
			t.Errorf("%s listed without a target", m.Action)
		}
	}
}

func TestEngineOptions(t *testing.T) {
	rs, _ := ruleset.New()
	e := New(rs, WithEvaluator(nil), WithLogger(nil))
	if e.ev == nil || e.log == nil {
		t.Fatal("nil options must keep the defaults")
	}
	if e.Ruleset() != rs {
		t.Error("Ruleset() should return the engine's ruleset")
	}

	var calls int
	e = New(rs, WithEvaluator(countingEvaluator{&calls}))
	if err := rs.AddEnabler(&types.Enabler{Action: types.ActionFortify,
		ActorReqs: types.RequirementVector{reqs.Req(types.ReqUnitFlag, FlagSpy)}}); err != nil {
		t.Fatal(err)
	}
	actor := redActor(spyType)
	if ok, _ := e.IsActionEnabled(types.ActionFortify, actor, actor); !ok {
		t.Error("fortify should be enabled")
	}
	if calls == 0 {
		t.Error("custom evaluator was not used")
	}
}

type countingEvaluator struct{ n *int }

func (c countingEvaluator) Eval(req types.Requirement, self, other *types.Context, p reqs.Perspective) tristate.Value {
	*c.n++
	return reqs.Standard{}.Eval(req, self, other, p)
}

func TestMenuProbabilityMatchesEstimate(t *testing.T) {
	e := testEngine(t, &types.Enabler{Action: types.ActionSpySabotageUnit})
	actor := redActor(spyType)
	target := blueUnit(warrior("b1", "blue"), &types.Unit{ID: "b2", Owner: "blue", Type: diplomatType})

	want, _ := e.EstimateActionProbability(types.ActionSpySabotageUnit, actor, target)
	for _, m := range e.Menu(actor, target) {
		if m.Action.ID == types.ActionSpySabotageUnit && m.Prob != want {
			t.Errorf("menu prob %v, estimate %v", m.Prob, want)
		}
	}
	if want != actprob.Exact(150) {
		t.Errorf("estimate = %v, want 75%%", want)
	}
}
