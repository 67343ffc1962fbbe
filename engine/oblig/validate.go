package oblig

import (
	"fmt"
	"strings"

	"github.com/nathoo/actioncore/engine/actions"
	"github.com/nathoo/actioncore/engine/reqs"
	"github.com/nathoo/actioncore/types"
)

// Source is what the validator needs from a ruleset.
type Source interface {
	Catalog() *actions.Catalog
	Enablers(id types.ActionID) []*types.Enabler
	Oblig() *Registry
}

// Violation is an enabler that fails to imply an obligatory requirement.
type Violation struct {
	Action    types.ActionID
	Result    types.ActionResult
	EnablerID string
	Message   string
}

func (v Violation) String() string {
	return fmt.Sprintf("enabler %s: %s", v.EnablerID, v.Message)
}

// Satisfies reports whether e contradicts at least one alternative of o,
// meaning every state that enables e also fulfils the requirement.
func Satisfies(e *types.Enabler, o Obligatory) bool {
	for _, alt := range o.Alternatives {
		side := e.ActorReqs
		if alt.IsTarget {
			side = e.TargetReqs
		}
		if reqs.VectorContradicts(alt.Req, side) {
			return true
		}
	}
	return false
}

// Validate checks every enabler of every action with result res, and the
// sub results those actions have.
func Validate(src Source, res types.ActionResult) []Violation {
	var out []Violation
	reg := src.Oblig()

	for _, a := range src.Catalog().ForResult(res) {
		obligs := reg.Get(res)
		for _, sub := range a.SubResults {
			obligs = append(obligs[:len(obligs):len(obligs)], reg.GetSub(sub)...)
		}
		for _, o := range obligs {
			for _, e := range src.Enablers(a.ID) {
				if Satisfies(e, o) {
					continue
				}
				out = append(out, Violation{
					Action:    a.ID,
					Result:    res,
					EnablerID: e.ID,
					Message:   strings.ReplaceAll(o.Message, "%s", a.UIName),
				})
			}
		}
	}
	return out
}

// ValidateAll validates every result.
func ValidateAll(src Source) []Violation {
	var out []Violation
	for res := types.ActionResult(0); res < types.ResultCount; res++ {
		out = append(out, Validate(src, res)...)
	}
	return out
}
