package loader

import (
	"testing"

	lua "github.com/yuin/gopher-lua"
)

// newTestVM creates a sandboxed Lua VM with the API registered and a fresh collector.
func newTestVM() (*lua.LState, *collector) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibs(L)
	sandbox(L)
	coll := &collector{}
	registerAPI(L, coll)
	return L, coll
}

func compileString(t *testing.T, src string) *defs {
	t.Helper()
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(src); err != nil {
		t.Fatalf("lua: %v", err)
	}
	d, err := compile(coll)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return d
}

func TestCompileRuleset(t *testing.T) {
	d := compileString(t, `
		Ruleset {
			name = "test",
			version = "2.0",
			description = "For tests.",
		}
	`)

	if d.info.Name != "test" {
		t.Errorf("Name = %q, want %q", d.info.Name, "test")
	}
	if d.info.Version != "2.0" {
		t.Errorf("Version = %q", d.info.Version)
	}
	if d.info.Description != "For tests." {
		t.Errorf("Description = %q", d.info.Description)
	}
	if d.hasSettings {
		t.Error("no Settings{} call was made")
	}
}

func TestCompile_NoRuleset(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if _, err := compile(coll); err == nil {
		t.Fatal("expected error without Ruleset{}")
	}
}

func TestCompileSettings_LaterCallsOverride(t *testing.T) {
	d := compileString(t, `
		Ruleset { name = "s" }
		Settings { citymindist = 2, trade_min_dist = 9, prevent_new_cities = true }
		Settings { citymindist = 4, tech_steal_allow_holes = true }
	`)

	s := d.settings
	if s.CityMinDist != 4 {
		t.Errorf("CityMinDist = %d, want 4", s.CityMinDist)
	}
	if s.TradeMinDist != 9 {
		t.Errorf("TradeMinDist = %d, want 9", s.TradeMinDist)
	}
	if !s.PreventNewCities || !s.TechStealAllowHoles {
		t.Errorf("settings = %+v", s)
	}
	if s.AddToSizeLimit != 0 {
		t.Errorf("AddToSizeLimit = %d, want 0", s.AddToSizeLimit)
	}
}

func TestCompileEnabler(t *testing.T) {
	d := compileString(t, `
		Ruleset { name = "e" }
		Enabler "Bribe Unit" {
			id = "bribe",
			comment = "cash talks",
			actor = { Req("DiplRel", "Foreign"), Not("DiplRel", "War"), Quiet(Req("UnitFlag", "Diplomat")) },
			target = { Not("UnitFlag", "Unbribable", "Local") },
		}
	`)

	if len(d.enablers) != 1 {
		t.Fatalf("expected 1 enabler, got %d", len(d.enablers))
	}
	en := d.enablers[0]
	if en.action != "Bribe Unit" || en.id != "bribe" || en.comment != "cash talks" {
		t.Errorf("enabler = %+v", en)
	}
	if len(en.actor) != 3 {
		t.Fatalf("actor reqs = %d, want 3", len(en.actor))
	}
	if en.actor[0] != (reqDef{kind: "DiplRel", value: "Foreign", present: true}) {
		t.Errorf("actor[0] = %+v", en.actor[0])
	}
	if en.actor[1].present {
		t.Error("Not() should compile to an absent requirement")
	}
	if !en.actor[2].quiet {
		t.Error("Quiet() lost")
	}
	if len(en.target) != 1 || en.target[0].rng != "Local" {
		t.Errorf("target = %+v", en.target)
	}
}

func TestCompileEnabler_RejectsBareValues(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		Ruleset { name = "e" }
		Enabler "Fortify" { actor = { "Fortified" } }
	`); err != nil {
		t.Fatal(err)
	}
	if _, err := compile(coll); err == nil {
		t.Fatal("expected error for a string in a requirement vector")
	}
}

func TestCompileEffectsAndNations(t *testing.T) {
	d := compileString(t, `
		Ruleset { name = "n" }
		Nation "roman" {}
		Nation "animals" { barbarian = "animal" }
		Effect "Spy_Resistant" { value = 25, reqs = { Req("Building", "Courthouse") } }
	`)

	if len(d.nations) != 2 || d.nations[1].Barbarian != "animal" {
		t.Errorf("nations = %+v", d.nations)
	}
	if len(d.effects) != 1 {
		t.Fatalf("effects = %d, want 1", len(d.effects))
	}
	ef := d.effects[0]
	if ef.typ != "Spy_Resistant" || ef.value != 25 || len(ef.reqs) != 1 {
		t.Errorf("effect = %+v", ef)
	}
}

func TestCompileOblig(t *testing.T) {
	d := compileString(t, `
		Ruleset { name = "o" }
		Oblig "All action enablers for %s must require a diplomat actor." {
			results = { "Bribe Unit", "Investigate City" },
			actor = { Not("UnitFlag", "Diplomat") },
			target = { Req("CityTile", "Center") },
		}
	`)

	if len(d.obligs) != 1 {
		t.Fatalf("obligs = %d, want 1", len(d.obligs))
	}
	o := d.obligs[0]
	if len(o.results) != 2 || o.results[1] != "Investigate City" {
		t.Errorf("results = %v", o.results)
	}
	if len(o.actor) != 1 || len(o.target) != 1 {
		t.Errorf("alternatives = %+v / %+v", o.actor, o.target)
	}
}

func TestSourceOrder_AutoIncrement(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		Enabler "Fortify" {}
		Enabler "Unit Move" {}
		Enabler "Attack" {}
	`); err != nil {
		t.Fatal(err)
	}

	if len(coll.enablers) != 3 {
		t.Fatalf("expected 3 enablers, got %d", len(coll.enablers))
	}
	for i, raw := range coll.enablers {
		if raw.order != i+1 {
			t.Errorf("enabler %d order = %d, want %d", i, raw.order, i+1)
		}
	}
}

func TestReqHelpers_ArgumentErrors(t *testing.T) {
	L, _ := newTestVM()
	defer L.Close()

	if err := L.DoString(`Req("UnitFlag")`); err == nil {
		t.Error("Req without a value should fail")
	}
	if err := L.DoString(`Quiet("x")`); err == nil {
		t.Error("Quiet on a string should fail")
	}
}
