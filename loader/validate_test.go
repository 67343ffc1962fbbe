package loader

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/nathoo/actioncore/types"
)

// validDefs returns a minimal valid defs for testing.
func validDefs() *defs {
	return &defs{
		info:        types.RulesetInfo{Name: "test"},
		hasSettings: true,
		enablers: []enablerDef{{
			action: "Fortify",
			id:     "fortify",
			actor:  []reqDef{{kind: "Activity", value: "Fortified"}},
		}},
	}
}

func validationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	return ve
}

func TestValidate_ValidDefs(t *testing.T) {
	rs, err := validate(validDefs(), zap.NewNop())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !rs.Frozen() {
		t.Error("ruleset should be frozen")
	}
	en, err := rs.Enabler("fortify")
	if err != nil {
		t.Fatal(err)
	}
	if en.Action != types.ActionFortify || en.ActorReqs[0].Range != types.RangeLocal {
		t.Errorf("enabler = %+v", en)
	}
}

func TestValidate_EmptyName(t *testing.T) {
	d := validDefs()
	d.info.Name = ""

	rs, err := validate(d, zap.NewNop())
	if rs != nil {
		t.Error("structural errors must not return a ruleset")
	}
	assertContains(t, validationError(t, err).Errors, "Ruleset.name")
}

func TestValidate_UnknownAction(t *testing.T) {
	d := validDefs()
	d.enablers = append(d.enablers, enablerDef{action: "Teleport"})

	_, err := validate(d, zap.NewNop())
	assertContains(t, validationError(t, err).Errors, `unknown action "Teleport"`)
}

func TestValidate_BadRequirement(t *testing.T) {
	tests := []struct {
		name string
		req  reqDef
		want string
	}{
		{"unknown kind", reqDef{kind: "Mood", value: "Happy", present: true}, `unknown kind "Mood"`},
		{"bad range", reqDef{kind: "Tech", rng: "Local", value: "Alphabet", present: true}, "does not support range"},
		{"not numeric", reqDef{kind: "MinMoves", value: "lots", present: true}, "not a non-negative number"},
		{"bad dipl value", reqDef{kind: "DiplRel", value: "Frenemies", present: true}, `no value "Frenemies"`},
		{"empty value", reqDef{kind: "UnitFlag", present: true}, "needs a value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDefs()
			d.enablers[0].target = []reqDef{tt.req}

			_, err := validate(d, zap.NewNop())
			ve := validationError(t, err)
			assertContains(t, ve.Errors, tt.want)
			assertContains(t, ve.Errors, `Enabler "fortify" target`)
		})
	}
}

func TestValidate_DuplicateEnablerID(t *testing.T) {
	d := validDefs()
	d.enablers = append(d.enablers, enablerDef{
		action: "Fortify",
		id:     "fortify",
		actor:  []reqDef{{kind: "Activity", value: "Fortified"}},
	})

	_, err := validate(d, zap.NewNop())
	assertContains(t, validationError(t, err).Errors, "duplicate enabler id")
}

func TestValidate_Nations(t *testing.T) {
	d := validDefs()
	d.nations = []types.Nation{
		{ID: "roman"},
		{ID: "roman"},
		{ID: "wolves", Barbarian: "forest"},
	}

	_, err := validate(d, zap.NewNop())
	ve := validationError(t, err)
	assertContains(t, ve.Errors, `Nation "roman" defined twice`)
	assertContains(t, ve.Errors, `unknown barbarian type "forest"`)
}

func TestValidate_Oblig(t *testing.T) {
	d := validDefs()
	d.obligs = []obligDef{
		{message: "%s needs a plan", results: []string{"Time Travel"}, actor: []reqDef{{kind: "UnitFlag", value: "X", present: true}}},
		{message: "%s needs nothing", results: []string{"Fortify"}},
		{message: "%s for nobody", actor: []reqDef{{kind: "UnitFlag", value: "X", present: true}}},
	}

	_, err := validate(d, zap.NewNop())
	ve := validationError(t, err)
	assertContains(t, ve.Errors, `unknown result "Time Travel"`)
	assertContains(t, ve.Errors, "lists no requirements")
	assertContains(t, ve.Errors, "lists no results")
}

func TestValidate_ObligRegistered(t *testing.T) {
	d := validDefs()
	d.obligs = []obligDef{{
		message: "All action enablers for %s must require a veteran.",
		results: []string{"fortify"},
		actor:   []reqDef{{kind: "MinVeteran", value: "1"}},
	}}

	rs, err := validate(d, zap.NewNop())
	ve := validationError(t, err)
	if ve.Structural() {
		t.Fatalf("unexpected structural errors: %v", ve.Errors)
	}
	if rs == nil {
		t.Fatal("consistency findings should still return the ruleset")
	}
	if len(ve.Violations) != 1 || ve.Violations[0].EnablerID != "fortify" {
		t.Errorf("violations = %v", ve.Violations)
	}
	if !strings.Contains(ve.Violations[0].Message, "Fortify must require a veteran") {
		t.Errorf("message = %q", ve.Violations[0].Message)
	}
}

func TestValidate_WarningsAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	d := validDefs()
	d.hasSettings = false
	d.effects = []effectDef{{typ: "Happiness", value: 1}}
	d.enablers = append(d.enablers, enablerDef{action: "Attack", id: "bare"})

	_, err := validate(d, zap.New(core))
	ve := validationError(t, err)
	assertContains(t, ve.Warnings, "no Settings{}")
	assertContains(t, ve.Warnings, `Effect "Happiness" is not used`)
	assertContains(t, ve.Warnings, `Enabler "bare" has no requirements`)

	if got := logs.FilterMessage("ruleset warning").Len(); got != len(ve.Warnings) {
		t.Errorf("logged %d warnings, want %d", got, len(ve.Warnings))
	}
}

// assertContains checks that at least one string in the slice contains substr.
func assertContains(t *testing.T, strs []string, substr string) {
	t.Helper()
	for _, s := range strs {
		if strings.Contains(s, substr) {
			return
		}
	}
	t.Errorf("expected one of %v to contain %q", strs, substr)
}
