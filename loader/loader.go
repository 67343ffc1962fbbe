// Package loader loads a Lua ruleset directory into a frozen ruleset.
// The Lua VM is discarded after loading; queries never touch Lua.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/nathoo/actioncore/engine/ruleset"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	ruleset  *lua.LTable
	settings []*lua.LTable
	nations  []rawNamed
	enablers []rawNamed
	effects  []rawNamed
	obligs   []rawNamed
	order    int
}

func (c *collector) nextSourceOrder() int {
	c.order++
	return c.order
}

type options struct {
	log *zap.Logger
}

// Option configures Load.
type Option func(*options)

// WithLogger sets the logger for load progress and validation warnings.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// Load reads all .lua files from dir, compiles them, validates them and
// returns the frozen ruleset.
//
// Structural problems (unknown actions, malformed requirements) fail the
// load with a *ValidationError and a nil ruleset. When the only problems
// are consistency violations the frozen ruleset is returned together with
// the *ValidationError so authoring tools can still inspect it.
func Load(dir string, opts ...Option) (*ruleset.Ruleset, error) {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log.With(zap.String("dir", dir))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading ruleset directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}
	luaFiles = sortedLuaFiles(luaFiles)
	log.Debug("loading ruleset files", zap.Strings("files", luaFiles))

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		path := filepath.Join(dir, f)
		if err := L.DoFile(path); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	d, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling ruleset: %w", err)
	}

	rs, err := validate(d, log)
	if rs != nil {
		log.Info("ruleset loaded",
			zap.String("name", rs.Info.Name),
			zap.Int("enablers", rs.EnablerCount()),
			zap.Int("effects", len(rs.Effects)),
		)
	}
	return rs, err
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that reach outside the VM.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage", "require", "module",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// A ruleset must load the same way every time.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("random", lua.LNil)
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}
