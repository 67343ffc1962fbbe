// Package cli provides the line-oriented query console: terminal I/O,
// output formatting, and meta-command dispatch over one scenario and the
// current ruleset.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nathoo/actioncore/engine"
	"github.com/nathoo/actioncore/engine/actions"
	"github.com/nathoo/actioncore/engine/hardreq"
	"github.com/nathoo/actioncore/engine/oblig"
	"github.com/nathoo/actioncore/engine/reqs"
	"github.com/nathoo/actioncore/engine/resolve"
	"github.com/nathoo/actioncore/engine/ruleset"
	"github.com/nathoo/actioncore/loader"
	"github.com/nathoo/actioncore/scenario"
	"github.com/nathoo/actioncore/types"
)

// DefaultTrials is the number of battles simulate fights when none is
// given.
const DefaultTrials = 1000

// CLI handles terminal interaction with the ruleset author.
type CLI struct {
	Holder     *ruleset.Holder
	Scenario   *scenario.Scenario
	RulesetDir string // reloaded by /reload
	Log        *zap.Logger
	In         io.Reader
	Out        io.Writer
	Trace      bool
	EchoInput  bool   // echo each input line after the prompt (for script playback)
	lastCmd    string // for "again"/"g" repeat
}

// New creates a CLI over the ruleset published by h.
func New(h *ruleset.Holder, sc *scenario.Scenario) *CLI {
	return &CLI{
		Holder:   h,
		Scenario: sc,
		Log:      zap.NewNop(),
		In:       os.Stdin,
		Out:      os.Stdout,
	}
}

// Run shows the banner, then loops: prompt → input → dispatch → output.
func (c *CLI) Run() {
	c.banner()

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}
		if c.Exec(input) {
			return // /quit
		}
	}
}

// Exec runs one command line and reports whether it asked to quit.
func (c *CLI) Exec(input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}
	if strings.HasPrefix(input, "/") {
		return c.handleMeta(input)
	}

	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if c.lastCmd == "" {
			c.printLine("Nothing to repeat.")
			return false
		}
		input = c.lastCmd
	} else {
		c.lastCmd = input
	}
	c.handleQuery(input)
	return false
}

func (c *CLI) banner() {
	for _, line := range c.Banner() {
		c.printLine(line)
	}
}

// Banner describes the ruleset and the scenario.
func (c *CLI) Banner() []string {
	var lines []string
	rs, release := c.Holder.Acquire()
	defer release()
	if rs != nil {
		lines = append(lines, fmt.Sprintf("%s %s (%d enablers)", rs.Info.Name, rs.Info.Version, rs.EnablerCount()))
	}
	if c.Scenario != nil {
		lines = append(lines, "Scenario: "+c.Scenario.Name)
		if c.Scenario.Description != "" {
			lines = append(lines, c.Scenario.Description)
		}
	}
	return append(lines, "")
}

// handleQuery dispatches a query command.
func (c *CLI) handleQuery(input string) {
	verb, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	rs, release := c.Holder.Acquire()
	defer release()
	if rs == nil {
		c.printSystem("No ruleset loaded.")
		return
	}
	eng := engine.New(rs, engine.WithLogger(c.Log))

	switch strings.ToLower(verb) {
	case "actions":
		c.cmdActions(rs)
	case "enablers":
		c.cmdEnablers(rs, arg)
	case "violations":
		c.cmdViolations(rs)
	case "ask", "query", "q":
		c.cmdAsk(eng, arg)
	case "menu", "m":
		c.cmdMenu(eng)
	case "check":
		c.cmdCheck(eng)
	case "simulate", "sim":
		c.cmdSimulate(eng, arg)
	default:
		// A bare action name asks about it.
		c.cmdAsk(eng, input)
	}
}

// handleMeta dispatches meta-commands. Returns true if the console should
// exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/reload":
		c.cmdReload()

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) needScenario() bool {
	if c.Scenario == nil {
		c.printSystem("No scenario loaded. Use /load <file>.")
		return false
	}
	return true
}

func (c *CLI) cmdAsk(eng *engine.Engine, name string) {
	if name == "" {
		c.printLine("Ask about which action?")
		return
	}
	if !c.needScenario() {
		return
	}
	ans := Ask(eng, c.Scenario, scenario.Query{Action: name})
	c.printLine(ans.String())
	if c.Trace && ans.Err == nil {
		c.printTrace(eng.Ruleset(), ans.Action)
	}
}

func (c *CLI) cmdMenu(eng *engine.Engine) {
	if !c.needScenario() {
		return
	}
	title := cases.Title(language.English)
	actor, target := c.Scenario.Contexts()
	for _, e := range eng.Menu(actor, target) {
		if e.Err != nil {
			c.printLine(fmt.Sprintf("  %-28s error: %v", e.Action.RuleName, e.Err))
			continue
		}
		c.printLine(fmt.Sprintf("  %-28s %-6s %s", e.Action.RuleName, title.String(e.Enabled.String()), e.Prob))
	}
}

func (c *CLI) cmdCheck(eng *engine.Engine) {
	if !c.needScenario() {
		return
	}
	if len(c.Scenario.Queries) == 0 {
		c.printLine("The scenario has no queries.")
		return
	}
	failed := 0
	for _, a := range AskAll(eng, c.Scenario) {
		mark := "ok  "
		if !a.Pass() {
			mark = "FAIL"
			failed++
		}
		c.printLine(fmt.Sprintf("%s %s", mark, a))
		for _, m := range a.Mismatch {
			c.printLine("     " + m)
		}
	}
	c.printSystem(fmt.Sprintf("%d of %d queries passed.", len(c.Scenario.Queries)-failed, len(c.Scenario.Queries)))
}

func (c *CLI) cmdSimulate(eng *engine.Engine, arg string) {
	if !c.needScenario() {
		return
	}
	n := DefaultTrials
	if arg != "" {
		v, err := strconv.Atoi(arg)
		if err != nil || v <= 0 {
			c.printLine(fmt.Sprintf("Not a trial count: %s", arg))
			return
		}
		n = v
	}
	actor, target := c.Scenario.Contexts()
	sim, err := eng.SimulateBattle(actor, target, n, engine.NewRNG(c.Scenario.Seed))
	if err != nil {
		c.printLine(err.Error())
		return
	}
	c.printLine(fmt.Sprintf("Defender %s: won %d of %d (%.1f%%), estimate %s",
		sim.Defender, sim.Wins, sim.Trials, sim.Rate()*100, sim.Estimate))
	if !sim.Agrees(0.05) {
		c.printSystem("Simulation disagrees with the estimate.")
	}
}

func (c *CLI) cmdActions(rs *ruleset.Ruleset) {
	for _, a := range rs.Catalog().All() {
		n := len(rs.Enablers(a.ID))
		if n == 0 && !c.Trace {
			continue
		}
		c.printLine(fmt.Sprintf("  %-28s %-6s %d enabler(s)", a.RuleName, actions.TargetKindName(a.TargetKind), n))
	}
}

func (c *CLI) cmdEnablers(rs *ruleset.Ruleset, name string) {
	a, err := resolve.Action(rs.Catalog(), name)
	if err != nil {
		c.printLine(err.Error())
		return
	}
	ens := rs.Enablers(a.ID)
	if len(ens) == 0 {
		c.printLine(fmt.Sprintf("%s has no enablers.", a.RuleName))
		return
	}
	for _, e := range ens {
		c.printLine(e.ID)
		if e.Comment != "" {
			c.printLine("  # " + e.Comment)
		}
		c.printReqs("actor", e.ActorReqs)
		c.printReqs("target", e.TargetReqs)
	}
}

func (c *CLI) printReqs(side string, vec types.RequirementVector) {
	for _, r := range vec {
		c.printLine(fmt.Sprintf("  %-6s %s", side, reqs.String(r)))
	}
}

func (c *CLI) cmdViolations(rs *ruleset.Ruleset) {
	vs := oblig.ValidateAll(rs)
	if len(vs) == 0 {
		c.printSystem("No consistency violations.")
		return
	}
	for _, v := range vs {
		c.printLine(v.String())
	}
	c.printSystem(fmt.Sprintf("%d violation(s).", len(vs)))
}

func (c *CLI) cmdSave(path string) {
	if !c.needScenario() {
		return
	}
	if path == "" {
		path = c.Scenario.Path()
	}
	if path == "" {
		c.printSystem("Save failed: no file name.")
		return
	}
	if err := scenario.Save(c.Scenario, path); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Scenario saved to %s.", path))
}

func (c *CLI) cmdLoad(path string) {
	if path == "" {
		c.printSystem("Load failed: no file name.")
		return
	}
	sc, err := scenario.Load(path)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	c.Scenario = sc
	c.printSystem(fmt.Sprintf("Scenario loaded from %s (%d queries).", path, len(sc.Queries)))
}

func (c *CLI) cmdReload() {
	if c.RulesetDir == "" {
		c.printSystem("Reload failed: no ruleset directory.")
		return
	}
	rs, err := loader.Load(c.RulesetDir, loader.WithLogger(c.Log))
	if err != nil {
		if rs != nil {
			rs.Teardown()
		}
		c.printSystem(fmt.Sprintf("Reload failed, keeping the current ruleset: %v", err))
		return
	}
	c.Holder.Replace(rs)
	c.printSystem(fmt.Sprintf("Reloaded %s (%d enablers).", rs.Info.Name, rs.EnablerCount()))
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /load <file>  — Load a scenario",
		"  /save [file]  — Save the scenario (default: where it was loaded from)",
		"  /reload       — Reload the ruleset directory",
		"  /quit         — Exit",
		"  /help         — Show this help",
		"  /state        — Show the actor and the target",
		"  /trace        — Toggle per-enabler trace output",
		"",
		"Queries:",
		"  ask <action> (q)     — Is the action possible, enabled, and how likely",
		"  <action>             — Same as ask",
		"  menu (m)             — Every action against the target",
		"  check                — Run the scenario's queries",
		"  simulate [n] (sim)   — Fight the diplomatic battle n times",
		"  actions              — Actions with enablers",
		"  enablers <action>    — Show an action's enablers",
		"  violations           — Ruleset consistency violations",
		"  again (g)            — Repeat your last query",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	if !c.needScenario() {
		return
	}
	actor, target := c.Scenario.Contexts()
	c.printSystem("Actor: " + describe(actor))
	c.printSystem("Target: " + describe(target))
}

// describe summarizes what a context holds.
func describe(ctx *types.Context) string {
	if ctx == nil {
		return "none"
	}
	var parts []string
	if ctx.Player != nil {
		parts = append(parts, "player "+ctx.Player.ID)
	}
	if u := ctx.Unit; u != nil {
		s := "unit " + u.ID
		if u.Type != nil {
			s += " (" + u.Type.Name + ")"
		}
		parts = append(parts, s)
	}
	if ctx.City != nil {
		parts = append(parts, "city "+ctx.City.ID)
	}
	if t := ctx.Tile; t != nil {
		parts = append(parts, fmt.Sprintf("tile %d,%d with %d unit(s)", t.X, t.Y, len(t.Units)))
	}
	if len(parts) == 0 {
		return "empty"
	}
	return strings.Join(parts, ", ")
}

// printTrace shows what decided an answer: the hard requirement that
// blocks the action, if any, and each enabler's verdict from the actor's
// point of view.
func (c *CLI) printTrace(rs *ruleset.Ruleset, a *actions.Action) {
	actor, target := targetFor(c.Scenario, a)
	if b := hardreq.Blocker(rs, a, actor, target, false); b != "" {
		c.printSystem("[trace] blocked by " + b)
	}
	ev := reqs.Standard{}
	for _, e := range rs.Enablers(a.ID) {
		av := reqs.EvalVector(ev, e.ActorReqs, actor, target, reqs.Omniscient)
		tv := reqs.EvalVector(ev, e.TargetReqs, target, actor, reqs.ActorKnowledge)
		c.printSystem(fmt.Sprintf("[trace] enabler %s: actor %s, target %s", e.ID, av, tv))
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
