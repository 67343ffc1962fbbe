package loader

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nathoo/actioncore/engine/effects"
	"github.com/nathoo/actioncore/engine/oblig"
	"github.com/nathoo/actioncore/engine/reqs"
	"github.com/nathoo/actioncore/engine/resolve"
	"github.com/nathoo/actioncore/engine/ruleset"
	"github.com/nathoo/actioncore/types"
)

// ValidationError collects all validation errors and warnings.
// Violations holds the consistency findings behind the matching Errors.
type ValidationError struct {
	Errors     []string
	Warnings   []string
	Violations []oblig.Violation
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// Structural reports whether any error is not a consistency violation.
func (e *ValidationError) Structural() bool {
	return len(e.Errors) > len(e.Violations)
}

var barbarianTypes = map[string]bool{
	"":       true,
	"land":   true,
	"sea":    true,
	"animal": true,
}

// validate builds the ruleset from d, collecting every structural error,
// then freezes it and checks each enabler against the obligatory hard
// requirements.
func validate(d *defs, log *zap.Logger) (*ruleset.Ruleset, error) {
	ve := &ValidationError{}

	rs, err := ruleset.New()
	if err != nil {
		return nil, err
	}
	rs.Info = d.info
	rs.Settings = d.settings

	if d.info.Name == "" {
		ve.Errors = append(ve.Errors, "Ruleset.name is required")
	}
	if !d.hasSettings {
		ve.Warnings = append(ve.Warnings, "no Settings{} given, every setting is zero")
	}

	// Nations.
	seenNation := map[string]bool{}
	for _, n := range d.nations {
		if seenNation[n.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("Nation %q defined twice", n.ID))
			continue
		}
		seenNation[n.ID] = true
		if !barbarianTypes[n.Barbarian] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"Nation %q has unknown barbarian type %q", n.ID, n.Barbarian))
			continue
		}
		if err := rs.AddNation(n); err != nil {
			return nil, err
		}
	}

	// Enablers.
	for _, ed := range d.enablers {
		a, ok := rs.Catalog().ByRuleName(ed.action)
		if !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf("Enabler for unknown action %q", ed.action))
			continue
		}
		where := fmt.Sprintf("Enabler %q", ed.action)
		if ed.id != "" {
			where = fmt.Sprintf("Enabler %q", ed.id)
		}
		actor := parseVector(ve, where+" actor", ed.actor)
		target := parseVector(ve, where+" target", ed.target)
		if len(ed.actor)+len(ed.target) == 0 {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf("%s has no requirements", where))
		}
		err := rs.AddEnabler(&types.Enabler{
			ID:         ed.id,
			Action:     a.ID,
			ActorReqs:  actor,
			TargetReqs: target,
			Comment:    ed.comment,
		})
		if err != nil {
			ve.Errors = append(ve.Errors, fmt.Sprintf("%s: %v", where, err))
		}
	}

	// Effects.
	for _, ef := range d.effects {
		if !effects.Types[ef.typ] {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf("Effect %q is not used by any action", ef.typ))
		}
		vec := parseVector(ve, fmt.Sprintf("Effect %q", ef.typ), ef.reqs)
		if err := rs.AddEffect(types.Effect{Type: ef.typ, Value: ef.value, Reqs: vec}); err != nil {
			return nil, err
		}
	}

	// Ruleset authored obligatory requirements.
	for _, od := range d.obligs {
		registerOblig(ve, rs, od)
	}

	if len(ve.Errors) > 0 {
		logWarnings(log, ve.Warnings)
		rs.Teardown()
		return nil, ve
	}

	if err := rs.Freeze(); err != nil {
		return nil, fmt.Errorf("freezing ruleset: %w", err)
	}

	ve.Violations = oblig.ValidateAll(rs)
	for _, v := range ve.Violations {
		ve.Errors = append(ve.Errors, v.String())
	}
	logWarnings(log, ve.Warnings)
	log.Debug("consistency check done", zap.Int("violations", len(ve.Violations)))

	if len(ve.Errors) > 0 {
		return rs, ve
	}
	return rs, nil
}

// parseVector parses authored requirements, recording an error for each
// one that does not parse.
func parseVector(ve *ValidationError, where string, in []reqDef) types.RequirementVector {
	var vec types.RequirementVector
	for _, rd := range in {
		r, err := reqs.Parse(rd.kind, rd.rng, rd.value, rd.present)
		if err != nil {
			ve.Errors = append(ve.Errors, fmt.Sprintf("%s: %s: %v", where, rd, err))
			continue
		}
		r.Quiet = rd.quiet
		vec = append(vec, r)
	}
	return vec
}

func registerOblig(ve *ValidationError, rs *ruleset.Ruleset, od obligDef) {
	where := fmt.Sprintf("Oblig %q", od.message)
	if !strings.Contains(od.message, "%s") {
		ve.Warnings = append(ve.Warnings, where+" message does not name the action (%s)")
	}

	var results []types.ActionResult
	for _, name := range od.results {
		res, err := resolve.Result(name)
		if err != nil {
			ve.Errors = append(ve.Errors, fmt.Sprintf("%s: unknown result %q", where, name))
			continue
		}
		results = append(results, res)
	}
	if len(od.results) == 0 {
		ve.Errors = append(ve.Errors, where+" lists no results")
		return
	}

	var alts []oblig.Alternative
	for _, r := range parseVector(ve, where+" actor", od.actor) {
		alts = append(alts, oblig.Alternative{Req: r})
	}
	for _, r := range parseVector(ve, where+" target", od.target) {
		alts = append(alts, oblig.Alternative{Req: r, IsTarget: true})
	}
	if len(alts) == 0 {
		ve.Errors = append(ve.Errors, where+" lists no requirements")
		return
	}
	if len(results) < len(od.results) {
		return
	}

	id, err := rs.Oblig().NewGroup(alts...)
	if err != nil {
		ve.Errors = append(ve.Errors, fmt.Sprintf("%s: %v", where, err))
		return
	}
	if err := rs.Oblig().Register(id, od.message, results); err != nil {
		ve.Errors = append(ve.Errors, fmt.Sprintf("%s: %v", where, err))
	}
}

func logWarnings(log *zap.Logger, warnings []string) {
	for _, w := range warnings {
		log.Warn("ruleset warning", zap.String("warning", w))
	}
}
