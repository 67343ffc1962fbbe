// Package engine answers action queries against a frozen ruleset: whether
// an action is structurally possible, whether an enabler allows it, and how
// likely it is to succeed from the actor's point of view.
package engine

import (
	"go.uber.org/zap"

	"github.com/nathoo/actioncore/engine/actions"
	"github.com/nathoo/actioncore/engine/reqs"
	"github.com/nathoo/actioncore/engine/ruleset"
	"github.com/nathoo/actioncore/types"
)

// Engine holds the ruleset snapshot and the requirement evaluator used for
// every query. It keeps no per-query state, so one Engine may serve
// concurrent callers as long as the ruleset is frozen.
type Engine struct {
	rs  *ruleset.Ruleset
	ev  reqs.Evaluator
	log *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithEvaluator replaces the standard requirement evaluator.
func WithEvaluator(ev reqs.Evaluator) Option {
	return func(e *Engine) {
		if ev != nil {
			e.ev = ev
		}
	}
}

// WithLogger sets the logger queries report to at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an engine over rs.
func New(rs *ruleset.Ruleset, opts ...Option) *Engine {
	e := &Engine{
		rs:  rs,
		ev:  reqs.Standard{},
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ruleset returns the ruleset the engine queries.
func (e *Engine) Ruleset() *ruleset.Ruleset {
	return e.rs
}

// action looks up id in the ruleset's catalog.
func (e *Engine) action(id types.ActionID) (*actions.Action, error) {
	return e.rs.Catalog().ByID(id)
}
