package resolve

import (
	"errors"
	"strings"
	"testing"

	"github.com/nathoo/actioncore/engine/actions"
	"github.com/nathoo/actioncore/types"
)

func TestAction_ExactRuleName(t *testing.T) {
	c := actions.NewCatalog()

	a, err := Action(c, "Establish Embassy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID != types.ActionEstablishEmbassy {
		t.Errorf("expected Establish Embassy, got %s", a)
	}
}

func TestAction_ByName_CaseInsensitive(t *testing.T) {
	c := actions.NewCatalog()

	tests := []struct {
		query string
		want  types.ActionID
	}{
		{"bribe unit", types.ActionSpyBribeUnit},
		{"BRIBE UNIT", types.ActionSpyBribeUnit},
		{"bribe_unit", types.ActionSpyBribeUnit},
		{"  steal   tech ", types.ActionSpyStealTech},
		{"set home city", types.ActionHomeCity},
		{"establish embassy (and stay)", types.ActionEstablishEmbassyStay},
		{"disband unit recover", types.ActionRecycleUnit},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			a, err := Action(c, tt.query)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if a.ID != tt.want {
				t.Errorf("got %s", a)
			}
		})
	}
}

func TestAction_WordPrefix(t *testing.T) {
	c := actions.NewCatalog()

	a, err := Action(c, "bri")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID != types.ActionSpyBribeUnit {
		t.Errorf("expected Bribe Unit, got %s", a)
	}

	a, err = Action(c, "targ steal")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID != types.ActionSpyTargetedStealTech {
		t.Errorf("expected Targeted Steal Tech, got %s", a)
	}
}

func TestAction_Ambiguous(t *testing.T) {
	c := actions.NewCatalog()

	_, err := Action(c, "embassy")
	var amb *AmbiguityError
	if !errors.As(err, &amb) {
		t.Fatalf("expected AmbiguityError, got %v", err)
	}
	if len(amb.Candidates) != 2 {
		t.Errorf("expected 2 candidates, got %v", amb.Candidates)
	}
	if !strings.Contains(err.Error(), "which embassy?") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestAction_NotFound(t *testing.T) {
	c := actions.NewCatalog()

	for _, q := range []string{"teleport", "", "unit bribe"} {
		_, err := Action(c, q)
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			t.Errorf("%q: expected NotFoundError, got %v", q, err)
		}
	}
}

func TestResult(t *testing.T) {
	r, err := Result("bribe unit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r != types.ResultBribeUnit {
		t.Errorf("got %s", actions.ResultName(r))
	}

	if _, err := Result("nothing at all"); err == nil {
		t.Error("expected error for unknown result")
	}
}
