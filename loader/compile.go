package loader

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/actioncore/types"
)

// rawNamed holds a curried definition table before compilation.
type rawNamed struct {
	name  string
	table *lua.LTable
	order int
}

// reqDef is an authored requirement before parsing.
type reqDef struct {
	kind    string
	rng     string
	value   string
	present bool
	quiet   bool
}

func (r reqDef) String() string {
	prefix := ""
	if !r.present {
		prefix = "not "
	}
	return fmt.Sprintf("%s%s %q", prefix, r.kind, r.value)
}

type enablerDef struct {
	action  string
	id      string
	comment string
	actor   []reqDef
	target  []reqDef
	order   int
}

type effectDef struct {
	typ   string
	value int
	reqs  []reqDef
}

type obligDef struct {
	message string
	results []string
	actor   []reqDef
	target  []reqDef
}

// defs is the compiled, not yet validated, content of a ruleset directory.
type defs struct {
	info        types.RulesetInfo
	settings    types.Settings
	hasSettings bool
	nations     []types.Nation
	enablers    []enablerDef
	effects     []effectDef
	obligs      []obligDef
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// getStrings returns the array part of a table field as strings. Non
// string elements are skipped.
func getStrings(tbl *lua.LTable, key string) []string {
	arr := getTable(tbl, key)
	if arr == nil {
		return nil
	}
	var out []string
	for i := 1; i <= arr.MaxN(); i++ {
		if s, ok := arr.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// compile converts all collected Lua data into defs.
func compile(coll *collector) (*defs, error) {
	d := &defs{}

	if coll.ruleset == nil {
		return nil, fmt.Errorf("no Ruleset{} definition found")
	}
	d.info = types.RulesetInfo{
		Name:        getString(coll.ruleset, "name"),
		Version:     getString(coll.ruleset, "version"),
		Description: getString(coll.ruleset, "description"),
	}

	for _, tbl := range coll.settings {
		compileSettings(tbl, &d.settings)
		d.hasSettings = true
	}

	for _, raw := range coll.nations {
		d.nations = append(d.nations, types.Nation{
			ID:        raw.name,
			Barbarian: getString(raw.table, "barbarian"),
		})
	}

	for _, raw := range coll.enablers {
		en, err := compileEnabler(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling enabler for %s: %w", raw.name, err)
		}
		d.enablers = append(d.enablers, en)
	}

	for _, raw := range coll.effects {
		rs, err := compileReqs(getTable(raw.table, "reqs"))
		if err != nil {
			return nil, fmt.Errorf("compiling effect %s: %w", raw.name, err)
		}
		d.effects = append(d.effects, effectDef{
			typ:   raw.name,
			value: getInt(raw.table, "value"),
			reqs:  rs,
		})
	}

	for _, raw := range coll.obligs {
		o, err := compileOblig(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling Oblig %q: %w", raw.name, err)
		}
		d.obligs = append(d.obligs, o)
	}

	return d, nil
}

// compileSettings copies the keys present in tbl over s.
func compileSettings(tbl *lua.LTable, s *types.Settings) {
	if tbl.RawGetString("trade_min_dist") != lua.LNil {
		s.TradeMinDist = getInt(tbl, "trade_min_dist")
	}
	if tbl.RawGetString("add_to_size_limit") != lua.LNil {
		s.AddToSizeLimit = getInt(tbl, "add_to_size_limit")
	}
	if tbl.RawGetString("citymindist") != lua.LNil {
		s.CityMinDist = getInt(tbl, "citymindist")
	}
	s.PreventNewCities = getBool(tbl, "prevent_new_cities", s.PreventNewCities)
	s.TechStealAllowHoles = getBool(tbl, "tech_steal_allow_holes", s.TechStealAllowHoles)
}

func compileEnabler(raw rawNamed) (enablerDef, error) {
	actor, err := compileReqs(getTable(raw.table, "actor"))
	if err != nil {
		return enablerDef{}, fmt.Errorf("actor: %w", err)
	}
	target, err := compileReqs(getTable(raw.table, "target"))
	if err != nil {
		return enablerDef{}, fmt.Errorf("target: %w", err)
	}
	return enablerDef{
		action:  raw.name,
		id:      getString(raw.table, "id"),
		comment: getString(raw.table, "comment"),
		actor:   actor,
		target:  target,
		order:   raw.order,
	}, nil
}

func compileOblig(raw rawNamed) (obligDef, error) {
	actor, err := compileReqs(getTable(raw.table, "actor"))
	if err != nil {
		return obligDef{}, fmt.Errorf("actor: %w", err)
	}
	target, err := compileReqs(getTable(raw.table, "target"))
	if err != nil {
		return obligDef{}, fmt.Errorf("target: %w", err)
	}
	return obligDef{
		message: raw.name,
		results: getStrings(raw.table, "results"),
		actor:   actor,
		target:  target,
	}, nil
}

// compileReqs converts an array of Req()/Not() tables. A nil table is an
// empty vector.
func compileReqs(tbl *lua.LTable) ([]reqDef, error) {
	if tbl == nil {
		return nil, nil
	}
	var out []reqDef
	for i := 1; i <= tbl.MaxN(); i++ {
		rt, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, fmt.Errorf("element %d is not a requirement, use Req() or Not()", i)
		}
		out = append(out, reqDef{
			kind:    getString(rt, "kind"),
			rng:     getString(rt, "range"),
			value:   getString(rt, "value"),
			present: getBool(rt, "present", true),
			quiet:   getBool(rt, "quiet", false),
		})
	}
	return out, nil
}

// sortedLuaFiles returns .lua files in a directory, with ruleset.lua first
// and the rest sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var rulesetFile string
	var others []string
	for _, f := range files {
		if f == "ruleset.lua" {
			rulesetFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if rulesetFile != "" {
		return append([]string{rulesetFile}, others...)
	}
	return others
}
