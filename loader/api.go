package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerRequirementHelpers(L)
}

// curried registers a constructor used as Name "id" { ... }: the first
// call takes the id and returns a function that takes the table.
func curried(L *lua.LState, name string, add func(id string, tbl *lua.LTable)) {
	L.SetGlobal(name, L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			add(id, tbl)
			return 0
		}))
		return 1
	}))
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Ruleset { name = "...", version = "...", description = "..." }
	L.SetGlobal("Ruleset", L.NewFunction(func(L *lua.LState) int {
		coll.ruleset = L.CheckTable(1)
		return 0
	}))

	// Settings { citymindist = 2, ... }. Later calls override earlier keys.
	L.SetGlobal("Settings", L.NewFunction(func(L *lua.LState) int {
		coll.settings = append(coll.settings, L.CheckTable(1))
		return 0
	}))

	// Nation "id" { barbarian = "animal" }
	curried(L, "Nation", func(id string, tbl *lua.LTable) {
		coll.nations = append(coll.nations, rawNamed{name: id, table: tbl})
	})

	// Enabler "Action Rule Name" { id = "...", actor = {...}, target = {...} }
	curried(L, "Enabler", func(action string, tbl *lua.LTable) {
		coll.enablers = append(coll.enablers, rawNamed{name: action, table: tbl, order: coll.nextSourceOrder()})
	})

	// Effect "Spy_Resistant" { value = 50, reqs = {...} }
	curried(L, "Effect", func(typ string, tbl *lua.LTable) {
		coll.effects = append(coll.effects, rawNamed{name: typ, table: tbl})
	})

	// Oblig "message with %s" { results = {...}, actor = {...}, target = {...} }
	// Every listed requirement is one alternative of the contradiction
	// group.
	curried(L, "Oblig", func(message string, tbl *lua.LTable) {
		coll.obligs = append(coll.obligs, rawNamed{name: message, table: tbl})
	})
}

func registerRequirementHelpers(L *lua.LState) {
	// Req("kind", "value" [, "range"])
	L.SetGlobal("Req", L.NewFunction(func(L *lua.LState) int {
		L.Push(newReq(L, true))
		return 1
	}))

	// Not("kind", "value" [, "range"])
	L.SetGlobal("Not", L.NewFunction(func(L *lua.LState) int {
		L.Push(newReq(L, false))
		return 1
	}))

	// Quiet(req) hides a requirement from help texts.
	L.SetGlobal("Quiet", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		tbl.RawSetString("quiet", lua.LTrue)
		L.Push(tbl)
		return 1
	}))
}

func newReq(L *lua.LState, present bool) *lua.LTable {
	kind := L.CheckString(1)
	value := L.CheckString(2)
	rng := L.OptString(3, "")
	tbl := L.NewTable()
	tbl.RawSetString("kind", lua.LString(kind))
	tbl.RawSetString("value", lua.LString(value))
	tbl.RawSetString("range", lua.LString(rng))
	tbl.RawSetString("present", lua.LBool(present))
	return tbl
}
