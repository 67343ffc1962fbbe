package loader

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/nathoo/actioncore/engine/oblig"
	"github.com/nathoo/actioncore/types"
)

func TestLoad_MinimalRuleset(t *testing.T) {
	rs, err := Load("testdata/minimal")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if rs.Info.Name != "minimal" {
		t.Errorf("Name = %q, want %q", rs.Info.Name, "minimal")
	}
	if rs.Settings.CityMinDist != 2 {
		t.Errorf("CityMinDist = %d, want 2", rs.Settings.CityMinDist)
	}
	if rs.EnablerCount() != 1 {
		t.Errorf("enablers = %d, want 1", rs.EnablerCount())
	}
	if _, err := rs.Enabler("Fortify#1"); err != nil {
		t.Errorf("generated id: %v", err)
	}
	if !rs.Frozen() {
		t.Error("loaded ruleset should be frozen")
	}
}

func TestLoad_ClassicRuleset(t *testing.T) {
	rs, err := Load("testdata/classic")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if rs.Info.Version != "3.1" {
		t.Errorf("Version = %q", rs.Info.Version)
	}
	want := types.Settings{TradeMinDist: 9, AddToSizeLimit: 8, CityMinDist: 2, TechStealAllowHoles: true}
	if diff := cmp.Diff(want, rs.Settings); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
	if rs.EnablerCount() != 12 {
		t.Errorf("enablers = %d, want 12", rs.EnablerCount())
	}
	if len(rs.Nations) != 4 {
		t.Errorf("nations = %d, want 4", len(rs.Nations))
	}
	if n, ok := rs.Nation("animals"); !ok || n.Barbarian != "animal" {
		t.Errorf("animals nation = %+v", n)
	}
	if len(rs.Effects) != 1 || rs.Effects[0].Value != 50 {
		t.Errorf("effects = %+v", rs.Effects)
	}

	bribe, err := rs.Enabler("bribe")
	if err != nil {
		t.Fatal(err)
	}
	if bribe.Action != types.ActionSpyBribeUnit || len(bribe.ActorReqs) != 3 || len(bribe.TargetReqs) != 1 {
		t.Errorf("bribe = %+v", bribe)
	}

	conquer, _ := rs.Enabler("conquer")
	last := conquer.ActorReqs[len(conquer.ActorReqs)-1]
	if last.Kind != types.ReqNation || last.Present || !last.Quiet || last.Range != types.RangePlayer {
		t.Errorf("animal guard = %+v", last)
	}

	stay, _ := rs.Enabler("embassy-stay")
	if stay.Comment == "" {
		t.Error("comment lost")
	}
}

func TestLoad_ClassicRegistersAuthoredOblig(t *testing.T) {
	rs, err := Load("testdata/classic")
	if err != nil {
		t.Fatal(err)
	}

	found := false
	for _, o := range rs.Oblig().Get(types.ResultInvestigateCity) {
		if o.Message == "All action enablers for %s must require a diplomat actor." {
			found = true
		}
	}
	if !found {
		t.Error("authored obligatory requirement not registered")
	}
}

func TestLoad_InconsistentRuleset(t *testing.T) {
	rs, err := Load("testdata/inconsistent")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if ve.Structural() {
		t.Errorf("unexpected structural errors: %v", ve.Errors)
	}
	if rs == nil {
		t.Fatal("consistency findings should still return the ruleset")
	}

	want := []oblig.Violation{
		{
			Action:    types.ActionSpyBribeUnit,
			Result:    types.ResultBribeUnit,
			EnablerID: "domestic-bribe",
			Message:   "All action enablers for Bribe Unit must require a foreign target.",
		},
		{
			Action:    types.ActionFortify,
			Result:    types.ResultFortify,
			EnablerID: "fortify-always",
			Message:   "All action enablers for Fortify must require that the actor unit isn't already fortified.",
		},
	}
	if diff := cmp.Diff(want, ve.Violations); diff != "" {
		t.Errorf("violations mismatch (-want +got):\n%s", diff)
	}
	assertContains(t, ve.Warnings, `Enabler "fortify-always" has no requirements`)
}

func TestLoad_BadRequirements_Fails(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	rs, err := Load("testdata/badreq", WithLogger(zap.New(core)))
	if rs != nil {
		t.Error("structural errors must not return a ruleset")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}

	wantErrors := []string{
		`unknown action "Teleport"`,
		`unknown kind "Mood"`,
		`MinMoves value "lots"`,
		`unknown barbarian type "forest"`,
		`unknown result "Time Travel"`,
	}
	for _, w := range wantErrors {
		assertContains(t, ve.Errors, w)
	}
	if len(ve.Errors) != len(wantErrors) {
		t.Errorf("errors = %d, want %d:\n%v", len(ve.Errors), len(wantErrors), ve.Errors)
	}

	wantWarnings := []string{
		"no Settings{}",
		`Effect "Happiness"`,
		"does not name the action",
	}
	if len(ve.Warnings) != len(wantWarnings) {
		t.Errorf("warnings = %v, want %d", ve.Warnings, len(wantWarnings))
	}
	for _, w := range wantWarnings {
		assertContains(t, ve.Warnings, w)
	}
	if logs.Len() != len(wantWarnings) {
		t.Errorf("logged %d warnings, want %d", logs.Len(), len(wantWarnings))
	}
}

func TestLoad_NoRulesetDef_Fails(t *testing.T) {
	if _, err := Load("testdata/noruleset"); err == nil {
		t.Fatal("expected error without Ruleset{}")
	}
}

func TestLoad_NoLuaFiles_Fails(t *testing.T) {
	if _, err := Load("testdata/empty"); err == nil {
		t.Fatal("expected error for a directory without .lua files")
	}
	if _, err := Load("testdata/does-not-exist"); err == nil {
		t.Fatal("expected error for a missing directory")
	}
}

func TestLoad_SandboxEnforced(t *testing.T) {
	if _, err := Load("testdata/sandbox"); err == nil {
		t.Fatal("expected dofile to be unavailable")
	}

	L, _ := newTestVM()
	defer L.Close()
	for _, src := range []string{
		`os.execute("echo pwned")`,
		`io.open("/etc/passwd")`,
		`require("os")`,
		`math.randomseed(1)`,
		`load("return 1")`,
	} {
		if err := L.DoString(src); err == nil {
			t.Errorf("expected sandbox to block %s", src)
		}
	}
}

func TestLoad_LogsSummary(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	if _, err := Load("testdata/minimal", WithLogger(zap.New(core))); err != nil {
		t.Fatal(err)
	}
	entries := logs.FilterMessage("ruleset loaded").All()
	if len(entries) != 1 {
		t.Fatalf("expected one summary line, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if diff := cmp.Diff(map[string]any{"dir": "testdata/minimal", "name": "minimal", "enablers": int64(1), "effects": int64(0)},
		fields, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FileOrdering(t *testing.T) {
	files := sortedLuaFiles([]string{"military.lua", "ruleset.lua", "effects.lua", "diplomacy.lua"})
	if files[0] != "ruleset.lua" {
		t.Errorf("first file = %q, want ruleset.lua", files[0])
	}
	if files[1] != "diplomacy.lua" {
		t.Errorf("second file = %q, want diplomacy.lua", files[1])
	}
}
